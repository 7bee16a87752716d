// Package sprite maps a vehicle's pitch, yaw and roll to an image in its
// object's sprite sheets.
package sprite

import (
	"fmt"

	"locoveh/object"
)

// Pitch is the slope class of the track under a vehicle component.
type Pitch uint8

const (
	Flat Pitch = iota
	Up6
	Up12
	Up18
	Up25
	Down6
	Down12
	Down18
	Down25
)

func (p Pitch) String() string {
	switch p {
	case Flat:
		return "flat"
	case Up6:
		return "up6"
	case Up12:
		return "up12"
	case Up18:
		return "up18"
	case Up25:
		return "up25"
	case Down6:
		return "down6"
	case Down12:
		return "down12"
	case Down18:
		return "down18"
	case Down25:
		return "down25"
	}
	return fmt.Sprintf("pitch(%d)", uint8(p))
}

// Yaw has 64 steps to a full turn.
const (
	YawSteps = 64
	halfTurn = YawSteps / 2
)

// yawShift turns a sheet's yaw accuracy class into the number of low yaw
// bits it ignores.
var yawShift = [8]uint8{4, 3, 2, 1, 0, 0, 0, 0}

func flat(s *object.BodySprite, yaw uint8) uint32 {
	if s.Has(object.BodyRotationalSymmetry) {
		yaw &= halfTurn - 1
	}
	return uint32(yaw>>yawShift[s.FlatYawAccuracy&7])*uint32(s.NumFramesPerRotation) + s.FlatImageID
}

// sloped indexes the gentle or steep range; the first frames of the range
// belong to the 6 and 18 degree variants.
func sloped(s *object.BodySprite, yaw uint8, base uint32) uint32 {
	offset := uint32(8)
	if s.Has(object.BodyRotationalSymmetry) {
		offset = 4
	}
	return (uint32(yaw>>yawShift[s.SlopedYawAccuracy&7])+offset)*uint32(s.NumFramesPerRotation) + base
}

// downhill turns a downhill yaw into the matching uphill one.
func downhill(s *object.BodySprite, yaw uint8) uint8 {
	if s.Has(object.BodyRotationalSymmetry) {
		return yaw ^ halfTurn
	}
	return yaw + YawSteps
}

func quarter(yaw uint8) uint32 {
	return uint32((yaw+7)>>4) & 3
}

func up12(s *object.BodySprite, yaw uint8) uint32 {
	if !s.Has(object.BodyHasGentleSprites) {
		return flat(s, yaw)
	}
	return sloped(s, yaw, s.GentleImageID)
}

func down12(s *object.BodySprite, yaw uint8) uint32 {
	if !s.Has(object.BodyHasGentleSprites) {
		return flat(s, yaw)
	}
	return up12(s, downhill(s, yaw))
}

func up6(s *object.BodySprite, yaw uint8) uint32 {
	if !s.Has(object.BodyHasGentleSprites) {
		return flat(s, yaw)
	}
	return quarter(yaw)*uint32(s.NumFramesPerRotation) + s.GentleImageID
}

func down6(s *object.BodySprite, yaw uint8) uint32 {
	if !s.Has(object.BodyHasGentleSprites) {
		return flat(s, yaw)
	}
	if s.Has(object.BodyRotationalSymmetry) {
		return up6(s, yaw^halfTurn)
	}
	return (quarter(yaw)+4)*uint32(s.NumFramesPerRotation) + s.GentleImageID
}

func up25(s *object.BodySprite, yaw uint8) uint32 {
	if !s.Has(object.BodyHasSteepSprites) {
		return up12(s, yaw)
	}
	return sloped(s, yaw, s.SteepImageID)
}

func down25(s *object.BodySprite, yaw uint8) uint32 {
	if !s.Has(object.BodyHasSteepSprites) {
		return down12(s, yaw)
	}
	return up25(s, downhill(s, yaw))
}

func up18(s *object.BodySprite, yaw uint8) uint32 {
	if !s.Has(object.BodyHasSteepSprites) {
		return up12(s, yaw)
	}
	return quarter(yaw)*uint32(s.NumFramesPerRotation) + s.SteepImageID
}

func down18(s *object.BodySprite, yaw uint8) uint32 {
	if !s.Has(object.BodyHasSteepSprites) {
		return down12(s, yaw)
	}
	if s.Has(object.BodyRotationalSymmetry) {
		return up18(s, yaw^halfTurn)
	}
	return (quarter(yaw)+4)*uint32(s.NumFramesPerRotation) + s.SteepImageID
}

// PitchImageIndex returns the first frame of the rotation shown for pitch
// and yaw. Sheets without the sprites for a slope fall back to the next
// shallower one.
func PitchImageIndex(s *object.BodySprite, pitch Pitch, yaw uint8) uint32 {
	switch pitch {
	case Up12:
		return up12(s, yaw)
	case Down12:
		return down12(s, yaw)
	case Up6:
		return up6(s, yaw)
	case Down6:
		return down6(s, yaw)
	case Up25:
		return up25(s, yaw)
	case Down25:
		return down25(s, yaw)
	case Up18:
		return up18(s, yaw)
	case Down18:
		return down18(s, yaw)
	}
	return flat(s, yaw)
}

// BodyImageIndex selects the body frame for a pitch and yaw, offset by the
// roll or animation frame and the cargo frame.
func BodyImageIndex(s *object.BodySprite, pitch Pitch, yaw, roll, cargo uint8) uint32 {
	return PitchImageIndex(s, pitch, yaw) + uint32(roll) + uint32(cargo)
}

// BrakingImageIndex is the last frame of the rotation, which holds the
// braking lights.
func BrakingImageIndex(s *object.BodySprite, pitch Pitch, yaw uint8) uint32 {
	return PitchImageIndex(s, pitch, yaw) + uint32(s.NumFramesPerRotation) - 1
}

// BogieImageIndex selects a bogie frame. Bogie sheets have half the yaw
// resolution of bodies.
func BogieImageIndex(s *object.BogieSprite, yaw, roll uint8) uint32 {
	yaw /= 2
	if s.Has(object.BogieRotationalSymmetry) {
		yaw &= 0xF
	}
	return uint32(s.NumRollSprites)*uint32(yaw) + uint32(roll) + s.FlatImageIDs
}
