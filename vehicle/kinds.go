package vehicle

import "fmt"

// Kind is the vehicle sub kind stored in entity.Base.SubKind.
type Kind uint8

const (
	KindHead Kind = iota
	KindVehicle1
	KindVehicle2
	KindBogie
	KindBodyStart
	KindBodyContinued
	KindTail
)

func (k Kind) String() string {
	switch k {
	case KindHead:
		return "head"
	case KindVehicle1:
		return "vehicle1"
	case KindVehicle2:
		return "vehicle2"
	case KindBogie:
		return "bogie"
	case KindBodyStart:
		return "body_start"
	case KindBodyContinued:
		return "body_continued"
	case KindTail:
		return "tail"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Status is the movement state of a head. Transitions belong to the
// simulation tick; construction only ever sets StatusUnplaced and
// PlaceDown sets StatusStopped.
type Status uint8

const (
	StatusUnplaced Status = iota
	StatusStopped
	StatusTravelling
	StatusWaitingAtSignal
	StatusApproaching
	StatusUnloading
	StatusLoading
	StatusBrokenDown
	StatusCrashed
	StatusStuck
	StatusLanding
	StatusTaxiing1
	StatusTaxiing2
	StatusTakingOff
)

type Flags38 uint8

const (
	Flags38Unk0               Flags38 = 1 << 0
	Flags38IsReversed         Flags38 = 1 << 1
	Flags38Unk2               Flags38 = 1 << 2
	Flags38Unk3               Flags38 = 1 << 3 // hidden first or last segment
	Flags38IsGhost            Flags38 = 1 << 4
	Flags38FasterAroundCurves Flags38 = 1 << 5
)

// Flags38JacobsBogie shares its bit with Flags38Unk3; bogies use it, bodies
// use Unk3.
const Flags38JacobsBogie = Flags38Unk3

// VehicleFlags live in entity.Base.VehicleFlags.
const (
	FlagCommandStop   uint16 = 1 << 1
	FlagShuntCheat    uint16 = 1 << 2
	FlagManualControl uint16 = 1 << 6
)

type Flags73 uint8

const (
	Flags73IsBrokenDown   Flags73 = 1 << 0
	Flags73IsStillPowered Flags73 = 1 << 1
)

const (
	NullStation   uint16 = 0xFFFF
	NullObject    uint16 = 0xFFFF
	NullSound     uint8  = 0xFF
	NullCargoType uint8  = 0xFF
	// TileX of a vehicle that is not on the map.
	Unplaced int16 = -1
)
