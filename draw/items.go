package draw

import (
	"locoveh/company"
	"locoveh/object"
	"locoveh/sprite"
	"locoveh/vehicle"
)

// Item is one sprite placed at a distance along the vehicle, measured from
// its front.
type Item struct {
	Image  Image
	Dist   int32
	IsBody bool
}

// Items is a vehicle's sprites in segment order. At most
// object.MaxSegments * 3 items are produced.
type Items struct {
	Items         []Item
	TotalDistance int32
}

func (d *Items) add(index uint32, colours company.ColourScheme, dist int32, isBody bool) {
	d.Items = append(d.Items, Item{Image: Image{Index: index, Colours: colours}, Dist: dist, IsBody: isBody})
}

// screen converts every distance to a horizontal screen offset.
func (d Items) screen(yaw uint8) (items []Item, total int) {
	items = make([]Item, len(d.Items))
	for i, it := range d.Items {
		it.Dist = int32(screenDistance(it.Dist, yaw))
		items[i] = it
	}
	return items, screenDistance(d.TotalDistance, yaw)
}

// rollFrameOffset picks the lean frame for bodies with roll sprites.
var rollFrameOffset = [8]uint8{0, 1, 1, 1, 0, 2, 2, 2}

const backwards = 32

// drawsBogies reports whether the object's transport mode shows bogies.
func drawsBogies(obj *object.Vehicle) bool {
	return obj.Mode == object.ModeRail || obj.Mode == object.ModeRoad
}

func bogieIndex(s *object.BogieSprite, yaw uint8, flip bool, roll uint8) uint32 {
	if flip {
		yaw ^= backwards
	}
	return sprite.BogieImageIndex(s, yaw, roll)
}

// ObjectItems lays out an unbuilt vehicle object as seen at yaw. Hidden
// end segments are skipped.
func ObjectItems(obj *object.Vehicle, yaw, roll uint8, colours company.ColourScheme) Items {
	var d Items
	n := int(obj.NumSegments)
	for i := range n {
		if i == 0 && obj.Has(object.FlagInvisibleFront) {
			continue
		}
		if i+1 == n && obj.Has(object.FlagInvisibleBack) {
			continue
		}
		seg := obj.Segments[i]
		// a null body sprite also has the reversed bit set
		reversed := seg.BodySprite&object.SpriteReversed != 0
		length := int32(seg.Length)

		if seg.FrontBogieSprite != object.SpriteNull && drawsBogies(obj) {
			s := &obj.BogieSprites[seg.FrontBogieSprite]
			d.add(bogieIndex(s, yaw, reversed, (s.NumRollSprites-1)&roll), colours, d.TotalDistance+length, false)
		}

		var body *object.BodySprite
		var bogiePos int32
		if idx, ok := seg.BodySpriteIndex(); ok {
			body = &obj.BodySprites[idx]
			bogiePos = int32(body.BogeyPosition) * 2
		}
		asymmetry := int32(seg.BackAsymmetry)

		if seg.BackBogieSprite != object.SpriteNull && drawsBogies(obj) {
			s := &obj.BogieSprites[seg.BackBogieSprite]
			d.add(bogieIndex(s, yaw, !reversed, (s.NumRollSprites-1)&roll), colours, d.TotalDistance+bogiePos-asymmetry, false)
		}

		if body != nil {
			y := yaw
			if reversed {
				y ^= backwards
			}
			var frame uint8
			if !body.Has(object.BodyHasSpeedAnimation) {
				frame = (body.NumAnimationFrames - 1) & roll
			}
			if body.NumRollFrames != 1 {
				frame += rollFrameOffset[roll&7]
			}
			dist := d.TotalDistance + (length+bogiePos-asymmetry)/2
			d.add(sprite.BodyImageIndex(body, sprite.Flat, y, frame, 0), colours, dist, true)
		}
		d.TotalDistance += bogiePos
	}
	return d
}

// InlineMode selects whether a live car is drawn with its current
// animation frames.
type InlineMode uint8

const (
	InlineBasic InlineMode = iota
	InlineAnimated
)

// CarItems lays out a built car as seen at yaw. A reversed car walks the
// object's segments from the last, with length and back asymmetry
// swapped. Colours come from each record.
func CarItems(obj *object.Vehicle, car vehicle.Car, yaw uint8, mode InlineMode) Items {
	var d Items
	reversed := car.Body.Flags&vehicle.Flags38IsReversed != 0
	animated := mode == InlineAnimated
	brakeLights := false
	if t := car.Train(); t != nil {
		brakeLights = t.Veh2.BrakeLightTimeout != 0
	}

	index, step := 0, 1
	if reversed {
		index, step = int(obj.NumSegments)-1, -1
	}
	for cc := range car.Components() {
		if index < 0 || index >= object.MaxSegments {
			break
		}
		seg := obj.Segments[index]
		index += step
		front, back := int32(seg.Length), int32(seg.BackAsymmetry)
		if reversed {
			front, back = back, front
		}

		if cc.Front.ObjectSpriteType != object.SpriteNull && drawsBogies(obj) {
			var roll uint8
			if animated {
				roll = cc.Front.AnimationIndex
			}
			s := &obj.BogieSprites[cc.Front.ObjectSpriteType]
			d.add(bogieIndex(s, yaw, reversed, roll), cc.Front.Colours, d.TotalDistance+front, false)
		}

		var bogiePos int32
		if idx, ok := seg.BodySpriteIndex(); ok {
			bogiePos = int32(obj.BodySprites[idx].BogeyPosition) * 2
		}

		if cc.Back.ObjectSpriteType != object.SpriteNull && drawsBogies(obj) {
			var roll uint8
			if animated {
				roll = cc.Back.AnimationIndex
			}
			s := &obj.BogieSprites[cc.Back.ObjectSpriteType]
			d.add(bogieIndex(s, yaw, !reversed, roll), cc.Back.Colours, d.TotalDistance+bogiePos-back, false)
		}

		if cc.Body.ObjectSpriteType != object.SpriteNull {
			body := &obj.BodySprites[cc.Body.ObjectSpriteType]
			y := yaw
			if reversed {
				y ^= backwards
			}
			var frame uint8
			if animated {
				frame = cc.Body.AnimationFrame
			}
			frame += cc.Body.CargoFrame
			dist := d.TotalDistance + (front+bogiePos-back)/2
			d.add(sprite.BodyImageIndex(body, sprite.Flat, y, frame, 0), cc.Body.Colours, dist, true)
			if animated && brakeLights && body.Has(object.BodyHasBrakingLights) {
				d.add(sprite.BrakingImageIndex(body, sprite.Flat, yaw), cc.Body.Colours, dist, true)
			}
		}
		d.TotalDistance += bogiePos
	}
	return d
}
