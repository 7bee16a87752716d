// Package objecttest provides small vehicle object definitions for tests.
package objecttest

import "locoveh/object"

const (
	Locomotive  uint16 = 1
	Carriage    uint16 = 2
	Tram        uint16 = 3
	Bus         uint16 = 4
	Ship        uint16 = 5
	Articulated uint16 = 6
)

func body(bogey uint8, flags object.BodySpriteFlags, base uint32) object.BodySprite {
	return object.BodySprite{
		NumFlatRotationFrames:   64,
		NumSlopedRotationFrames: 32,
		NumAnimationFrames:      1,
		NumCargoLoadFrames:      1,
		NumCargoFrames:          1,
		NumRollFrames:           1,
		BogeyPosition:           bogey,
		Flags:                   object.BodyHasSprites | flags,
		Width:                   24,
		HeightNegative:          8,
		HeightPositive:          16,
		FlatYawAccuracy:         4,
		SlopedYawAccuracy:       3,
		NumFramesPerRotation:    2,
		FlatImageID:             base,
		GentleImageID:           base + 1000,
		SteepImageID:            base + 2000,
	}
}

func bogie(base uint32) object.BogieSprite {
	return object.BogieSprite{
		RollStates:     1,
		Flags:          object.BogieHasSprites | object.BogieRotationalSymmetry,
		Width:          8,
		HeightNegative: 4,
		HeightPositive: 4,
		NumRollSprites: 1,
		FlatImageIDs:   base,
	}
}

// LocomotiveObject is a single segment powered rail vehicle.
func LocomotiveObject() *object.Vehicle {
	v := &object.Vehicle{
		Name:        "Locomotive",
		Mode:        object.ModeRail,
		Type:        object.TypeTrain,
		NumSegments: 1,
		TrackType:   0,
		CostIndex:   1,
		CostFactor:  800,
		Reliability: 200,
		ColourType:  1,
		Power:       900,
		Speed:       100,
		RackSpeed:   40,
		Weight:      80,
		Designed:    1950,
		Obsolete:    1990,
		Flags:       object.FlagCannotCoupleToSelf,

		DrivingSoundType: object.SoundEngine1,
	}
	v.Segments[0] = object.Segment{Length: 10, BackAsymmetry: 2, FrontBogieSprite: 0, BackBogieSprite: 0, BodySprite: 0}
	v.BodySprites[0] = body(12, object.BodyHasGentleSprites|object.BodyHasBrakingLights, 3000)
	v.BogieSprites[0] = bogie(2900)
	return v
}

// CarriageObject is a two segment passenger and mail carriage.
func CarriageObject() *object.Vehicle {
	v := &object.Vehicle{
		Name:                      "Carriage",
		Mode:                      object.ModeRail,
		Type:                      object.TypeTrain,
		NumSegments:               2,
		TrackType:                 0,
		CostIndex:                 1,
		CostFactor:                400,
		Reliability:               200,
		ColourType:                2,
		Speed:                     120,
		Weight:                    30,
		MaxCargo:                  [2]uint8{40, 10},
		CargoTypes:                [2]uint32{1 << 0, 1<<1 | 1<<3},
		NumSimultaneousCargoTypes: 2,
		Designed:                  1950,
		Obsolete:                  2000,
	}
	v.Segments[0] = object.Segment{Length: 8, BackAsymmetry: 8, FrontBogieSprite: 0, BackBogieSprite: 0, BodySprite: 0}
	v.Segments[1] = object.Segment{Length: 8, BackAsymmetry: 8, FrontBogieSprite: 0, BackBogieSprite: 0, BodySprite: 1 | object.SpriteReversed}
	v.BodySprites[0] = body(10, object.BodyRotationalSymmetry, 4000)
	v.BodySprites[1] = body(10, object.BodyRotationalSymmetry, 5000)
	v.BogieSprites[0] = bogie(3900)
	return v
}

// TramObject is a three segment articulated tram whose outer segments are
// hidden.
func TramObject() *object.Vehicle {
	v := &object.Vehicle{
		Name:        "Tram",
		Mode:        object.ModeRoad,
		Type:        object.TypeTram,
		NumSegments: 3,
		TrackType:   1,
		CostIndex:   2,
		CostFactor:  300,
		Reliability: 150,
		ColourType:  3,
		Power:       200,
		Speed:       60,
		Weight:      20,
		Flags:       object.FlagInvisibleFront | object.FlagInvisibleBack,
		Designed:    1960,
	}
	for i := range 3 {
		v.Segments[i] = object.Segment{Length: 6, BackAsymmetry: 6, FrontBogieSprite: 0, BackBogieSprite: object.SpriteNull, BodySprite: 0}
	}
	v.BodySprites[0] = body(8, 0, 6000)
	v.BogieSprites[0] = bogie(5900)
	return v
}

// BusObject runs on any road.
func BusObject() *object.Vehicle {
	v := &object.Vehicle{
		Name:                      "Bus",
		Mode:                      object.ModeRoad,
		Type:                      object.TypeBus,
		NumSegments:               1,
		TrackType:                 object.TrackTypeNone,
		CostIndex:                 2,
		CostFactor:                200,
		Reliability:               180,
		ColourType:                4,
		Power:                     100,
		Speed:                     50,
		Weight:                    10,
		MaxCargo:                  [2]uint8{30, 0},
		CargoTypes:                [2]uint32{1 << 0, 0},
		NumSimultaneousCargoTypes: 1,
		Designed:                  1950,
	}
	v.Segments[0] = object.Segment{Length: 20, BackAsymmetry: 20, FrontBogieSprite: object.SpriteNull, BackBogieSprite: object.SpriteNull, BodySprite: 0}
	v.BodySprites[0] = body(40, 0, 7000)
	return v
}

// ShipObject is a water vehicle.
func ShipObject() *object.Vehicle {
	v := &object.Vehicle{
		Name:        "Ship",
		Mode:        object.ModeWater,
		Type:        object.TypeShip,
		NumSegments: 1,
		TrackType:   object.TrackTypeNone,
		CostIndex:   3,
		CostFactor:  1000,
		Reliability: 220,
		ColourType:  5,
		Power:       500,
		Speed:       30,
		Weight:      300,
		Designed:    1940,
	}
	v.Segments[0] = object.Segment{Length: 40, BackAsymmetry: 40, FrontBogieSprite: object.SpriteNull, BackBogieSprite: object.SpriteNull, BodySprite: 0}
	v.BodySprites[0] = body(48, 0, 8000)
	return v
}

// ArticulatedObject is a four segment rail car, the longest a car can be.
func ArticulatedObject() *object.Vehicle {
	v := &object.Vehicle{
		Name:                      "Articulated",
		Mode:                      object.ModeRail,
		Type:                      object.TypeTrain,
		NumSegments:               4,
		TrackType:                 0,
		CostIndex:                 1,
		CostFactor:                500,
		Reliability:               190,
		ColourType:                2,
		Speed:                     110,
		Weight:                    50,
		MaxCargo:                  [2]uint8{25, 0},
		CargoTypes:                [2]uint32{1 << 2, 0},
		NumSimultaneousCargoTypes: 1,
		Designed:                  1970,
	}
	for i := range 4 {
		v.Segments[i] = object.Segment{Length: 7, BackAsymmetry: 5, FrontBogieSprite: 0, BackBogieSprite: 0, BodySprite: 0}
	}
	v.BodySprites[0] = body(9, 0, 9000)
	v.BogieSprites[0] = bogie(8900)
	return v
}

// Catalogue returns a catalogue holding every test object plus one track,
// one tram road and one passenger and mail cargo.
func Catalogue() *object.Catalogue {
	c := object.NewCatalogue()
	c.Vehicles[Locomotive] = LocomotiveObject()
	c.Vehicles[Carriage] = CarriageObject()
	c.Vehicles[Tram] = TramObject()
	c.Vehicles[Bus] = BusObject()
	c.Vehicles[Ship] = ShipObject()
	c.Vehicles[Articulated] = ArticulatedObject()
	c.Tracks[0] = &object.Track{Name: "Standard gauge", DisplayOffset: 2}
	c.Roads[1] = &object.Road{Name: "Tram track", DisplayOffset: 1}
	c.Cargoes[0] = &object.Cargo{Name: "Passengers", UnitWeight: 64}
	c.Cargoes[1] = &object.Cargo{Name: "Mail", UnitWeight: 32}
	c.Cargoes[2] = &object.Cargo{Name: "Coal", UnitWeight: 256}
	c.Cargoes[3] = &object.Cargo{Name: "Goods", UnitWeight: 128}
	return c
}
