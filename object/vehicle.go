package object

import "fmt"

type Mode uint8

const (
	ModeRail Mode = iota
	ModeRoad
	ModeAir
	ModeWater
)

func (m Mode) String() string {
	switch m {
	case ModeRail:
		return "rail"
	case ModeRoad:
		return "road"
	case ModeAir:
		return "air"
	case ModeWater:
		return "water"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

type VehicleType uint8

const (
	TypeTrain VehicleType = iota
	TypeBus
	TypeTruck
	TypeTram
	TypeAircraft
	TypeShip
	NumVehicleTypes = 6
)

const (
	MaxSegments     = 4
	MaxBodySprites  = 4
	MaxBogieSprites = 2
	MaxCompatible   = 8

	TrackTypeNone = 0xFF // road vehicles that run on any road

	SpriteNull     uint8 = 0xFF
	SpriteReversed uint8 = 0x80 // set on a segment's body sprite index
)

type BodySpriteFlags uint8

const (
	BodyHasSprites         BodySpriteFlags = 1 << 0
	BodyRotationalSymmetry BodySpriteFlags = 1 << 1
	BodyHasUnkSprites      BodySpriteFlags = 1 << 2
	BodyHasGentleSprites   BodySpriteFlags = 1 << 3
	BodyHasSteepSprites    BodySpriteFlags = 1 << 4
	BodyHasBrakingLights   BodySpriteFlags = 1 << 5
	BodyHasSpeedAnimation  BodySpriteFlags = 1 << 6
)

type BogieSpriteFlags uint8

const (
	BogieHasSprites         BogieSpriteFlags = 1 << 0
	BogieRotationalSymmetry BogieSpriteFlags = 1 << 1
	BogieHasGentleSprites   BogieSpriteFlags = 1 << 2
	BogieHasSteepSprites    BogieSpriteFlags = 1 << 3
)

type Flags uint16

const (
	FlagInvisibleFront     Flags = 1 << 2 // first segment is not drawn
	FlagInvisibleBack      Flags = 1 << 3 // last segment is not drawn
	FlagRackRail           Flags = 1 << 6
	FlagAnyTrack           Flags = 1 << 9
	FlagSpeedControl       Flags = 1 << 10
	FlagCannotCoupleToSelf Flags = 1 << 11
	FlagDualHead           Flags = 1 << 12
	FlagIsHelicopter       Flags = 1 << 13
	FlagRefittable         Flags = 1 << 14
)

type DrivingSoundType uint8

const (
	SoundNone DrivingSoundType = iota
	SoundFriction
	SoundEngine1
	SoundEngine2
)

// Segment describes one body segment (bogie, bogie, body) of a car.
type Segment struct {
	Length           uint8 `mapstructure:"length"`
	BackAsymmetry    uint8 `mapstructure:"back_asymmetry"` // distance of the back bogie from the segment end
	FrontBogieSprite uint8 `mapstructure:"front_bogie_sprite"`
	BackBogieSprite  uint8 `mapstructure:"back_bogie_sprite"`
	BodySprite       uint8 `mapstructure:"body_sprite"`
}

// BodySpriteIndex returns the body sheet index with the reversed flag
// stripped, and whether the segment has a body at all.
func (s Segment) BodySpriteIndex() (uint8, bool) {
	if s.BodySprite == SpriteNull {
		return 0, false
	}
	return s.BodySprite &^ SpriteReversed, true
}

func (s Segment) Reversed() bool {
	return s.BodySprite != SpriteNull && s.BodySprite&SpriteReversed != 0
}

type BodySprite struct {
	NumFlatRotationFrames   uint8           `mapstructure:"num_flat_rotation_frames"`
	NumSlopedRotationFrames uint8           `mapstructure:"num_sloped_rotation_frames"`
	NumAnimationFrames      uint8           `mapstructure:"num_animation_frames"`
	NumCargoLoadFrames      uint8           `mapstructure:"num_cargo_load_frames"`
	NumCargoFrames          uint8           `mapstructure:"num_cargo_frames"`
	NumRollFrames           uint8           `mapstructure:"num_roll_frames"`
	BogeyPosition           uint8           `mapstructure:"bogey_position"`
	Flags                   BodySpriteFlags `mapstructure:"flags"`
	Width                   uint8           `mapstructure:"width"`
	HeightNegative          uint8           `mapstructure:"height_negative"`
	HeightPositive          uint8           `mapstructure:"height_positive"`
	FlatYawAccuracy         uint8           `mapstructure:"flat_yaw_accuracy"`
	SlopedYawAccuracy       uint8           `mapstructure:"sloped_yaw_accuracy"`
	NumFramesPerRotation    uint8           `mapstructure:"num_frames_per_rotation"` // animation * cargo * roll frames, plus one braking frame
	FlatImageID             uint32          `mapstructure:"flat_image_id"`
	UnkImageID              uint32          `mapstructure:"unk_image_id"`
	GentleImageID           uint32          `mapstructure:"gentle_image_id"`
	SteepImageID            uint32          `mapstructure:"steep_image_id"`
}

func (s *BodySprite) Has(f BodySpriteFlags) bool {
	return s.Flags&f != 0
}

type BogieSprite struct {
	RollStates     uint8            `mapstructure:"roll_states"`
	Flags          BogieSpriteFlags `mapstructure:"flags"`
	Width          uint8            `mapstructure:"width"`
	HeightNegative uint8            `mapstructure:"height_negative"`
	HeightPositive uint8            `mapstructure:"height_positive"`
	NumRollSprites uint8            `mapstructure:"num_roll_sprites"`
	FlatImageIDs   uint32           `mapstructure:"flat_image_ids"`
	GentleImageIDs uint32           `mapstructure:"gentle_image_ids"`
	SteepImageIDs  uint32           `mapstructure:"steep_image_ids"`
}

func (s *BogieSprite) Has(f BogieSpriteFlags) bool {
	return s.Flags&f != 0
}

// Vehicle is the immutable definition shared by every vehicle built from it.
type Vehicle struct {
	Name                      string                       `mapstructure:"name"`
	Mode                      Mode                         `mapstructure:"mode"`
	Type                      VehicleType                  `mapstructure:"type"`
	NumSegments               uint8                        `mapstructure:"num_segments"`
	TrackType                 uint8                        `mapstructure:"track_type"`
	CostIndex                 uint8                        `mapstructure:"cost_index"`
	CostFactor                int16                        `mapstructure:"cost_factor"`
	Reliability               uint8                        `mapstructure:"reliability"`
	ColourType                uint8                        `mapstructure:"colour_type"`
	CompatibleVehicles        []uint16                     `mapstructure:"compatible_vehicles"`
	Segments                  [MaxSegments]Segment         `mapstructure:"segments"`
	BodySprites               [MaxBodySprites]BodySprite   `mapstructure:"body_sprites"`
	BogieSprites              [MaxBogieSprites]BogieSprite `mapstructure:"bogie_sprites"`
	Power                     uint16                       `mapstructure:"power"`
	Speed                     int16                        `mapstructure:"speed"`
	RackSpeed                 int16                        `mapstructure:"rack_speed"`
	Weight                    uint16                       `mapstructure:"weight"`
	Flags                     Flags                        `mapstructure:"flags"`
	MaxCargo                  [2]uint8                     `mapstructure:"max_cargo"`
	CargoTypes                [2]uint32                    `mapstructure:"cargo_types"`
	NumSimultaneousCargoTypes uint8                        `mapstructure:"num_simultaneous_cargo_types"`
	Designed                  uint16                       `mapstructure:"designed"`
	Obsolete                  uint16                       `mapstructure:"obsolete"`
	DrivingSoundType          DrivingSoundType             `mapstructure:"driving_sound_type"`
}

func (v *Vehicle) Has(f Flags) bool {
	return v.Flags&f != 0
}

// Length is the on-track length of one car built from v.
func (v *Vehicle) Length() int {
	length := 0
	for i := range int(v.NumSegments) {
		seg := v.Segments[i]
		if seg.BodySprite == SpriteNull {
			continue
		}
		length += int(v.BodySprites[seg.BodySprite&(MaxBodySprites-1)].BogeyPosition) * 2
	}
	return length
}

// Validate checks the indices the construction and drawing code trusts.
func (v *Vehicle) Validate() error {
	if v.NumSegments == 0 || v.NumSegments > MaxSegments {
		return fmt.Errorf("%s: number of segments %d out of range 1..%d", v.Name, v.NumSegments, MaxSegments)
	}
	if v.Mode > ModeWater {
		return fmt.Errorf("%s: unknown transport mode %d", v.Name, v.Mode)
	}
	if v.Type >= NumVehicleTypes {
		return fmt.Errorf("%s: unknown vehicle type %d", v.Name, v.Type)
	}
	if len(v.CompatibleVehicles) > MaxCompatible {
		return fmt.Errorf("%s: too many compatible vehicles (%d)", v.Name, len(v.CompatibleVehicles))
	}
	if v.NumSimultaneousCargoTypes > 2 {
		return fmt.Errorf("%s: too many simultaneous cargo types (%d)", v.Name, v.NumSimultaneousCargoTypes)
	}
	for i := range int(v.NumSegments) {
		seg := v.Segments[i]
		for _, b := range []uint8{seg.FrontBogieSprite, seg.BackBogieSprite} {
			if b != SpriteNull && b >= MaxBogieSprites {
				return fmt.Errorf("%s: segment %d bogie sprite %d out of range", v.Name, i, b)
			}
		}
		if idx, ok := seg.BodySpriteIndex(); ok && idx >= MaxBodySprites {
			return fmt.Errorf("%s: segment %d body sprite %d out of range", v.Name, i, idx)
		}
	}
	for i, s := range v.BodySprites {
		if s.FlatYawAccuracy > 7 || s.SlopedYawAccuracy > 7 {
			return fmt.Errorf("%s: body sprite %d yaw accuracy out of range", v.Name, i)
		}
	}
	return nil
}
