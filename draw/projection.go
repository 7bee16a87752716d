package draw

import (
	"image"
	"math"
)

// Vector is a position on the ground plane in world units.
type Vector struct {
	X, Y int32
}

func (v Vector) Div(n int32) Vector {
	return Vector{v.X / n, v.Y / n}
}

// xyFactors holds one unit step for each of the 64 yaw directions, scaled
// by 256. Yaw 0 points along -x and yaw 16 along +y.
var xyFactors = func() (t [64]Vector) {
	for i := range t {
		a := float64(i) * 2 * math.Pi / 64
		t[i] = Vector{
			X: int32(math.Round(-256 * math.Cos(a))),
			Y: int32(math.Round(256 * math.Sin(a))),
		}
	}
	return t
}()

// ComputeXYVector returns the ground offset of a point mag units away in
// direction yaw.
func ComputeXYVector(mag int32, yaw uint8) Vector {
	f := xyFactors[yaw&63]
	return Vector{f.X * mag / 256, f.Y * mag / 256}
}

// GameToScreen projects a world position for one of the four view
// rotations.
func GameToScreen(v Vector, z int32, rotation uint8) image.Point {
	var x, y int32
	switch rotation & 3 {
	case 0:
		x = v.Y - v.X
		y = (v.X+v.Y)>>1 - z
	case 1:
		x = -v.X - v.Y
		y = (v.Y-v.X)>>1 - z
	case 2:
		x = v.X - v.Y
		y = (-v.X-v.Y)>>1 - z
	case 3:
		x = v.X + v.Y
		y = (v.X-v.Y)>>1 - z
	}
	return image.Pt(int(x), int(y))
}

// screenDistance converts a distance along a vehicle viewed at yaw into a
// horizontal screen offset. The division by 4 comes last to keep precision.
func screenDistance(dist int32, yaw uint8) int {
	p := GameToScreen(ComputeXYVector(dist, yaw), 0, 0)
	return -p.X / 4
}
