package vehicle

import (
	"locoveh/company"
	"locoveh/entity"
	"locoveh/object"
)

// Common holds the fields every vehicle record has at 0x24..0x44. Fields
// only meaningful for bogies and bodies (colours, sprite type, object id)
// stay zero in the other records.
type Common struct {
	Colours           company.ColourScheme // 0x24 bogie and body only
	HeadID            entity.ID            // 0x26
	RemainingDistance int32                // 0x28
	TrackAndDirection uint16               // 0x2C
	SubPosition       uint16               // 0x2E
	TileX             int16                // 0x30 Unplaced when off the map
	TileY             int16                // 0x32
	TileBaseZ         uint8                // 0x34
	TrackType         uint8                // 0x35
	RoutingHandle     uint16               // 0x36
	Flags             Flags38              // 0x38
	ObjectSpriteType  uint8                // 0x39 bogie and body only
	NextCarID         entity.ID            // 0x3A
	Var3C             int32                // 0x3C
	ObjectID          uint16               // 0x40 bogie and body only
	Mode              object.Mode          // 0x42
	pad43             uint8
}

func (c *Common) Vehicle() *Common {
	return c
}

// Component is implemented by every record of a vehicle chain.
type Component interface {
	entity.Entity
	Vehicle() *Common
}

func KindOf(c Component) Kind {
	return Kind(c.Entity().SubKind)
}

type Cargo struct {
	AcceptedTypes uint32 // 0x00
	Type          uint8  // 0x04 NullCargoType when empty
	MaxQty        uint8  // 0x05
	TownFrom      uint16 // 0x06
	NumDays       uint8  // 0x08
	Qty           uint8  // 0x09
}

type IncomeStats struct {
	Day            int32
	CargoTypes     [4]uint8
	CargoQtys      [4]uint16
	CargoDistances [4]uint16
	CargoAges      [4]uint8
	CargoProfits   [4]int32
}

// SoundState is shared in layout by Vehicle2 and Tail.
type SoundState struct {
	DrivingSoundID        uint8  // 0x44
	DrivingSoundVolume    uint8  // 0x45
	DrivingSoundFrequency uint16 // 0x46
	SoundObjectID         uint16 // 0x48 object whose sound plays
	SoundFlags            uint16 // 0x4A
	SoundWindowNumber     uint16 // 0x4C
	SoundWindowType       uint8  // 0x4E
}

type Head struct {
	entity.Base
	Common
	Ordinal                   int16  // 0x44
	OrderTableOffset          uint32 // 0x46
	CurrentOrder              uint16 // 0x4A
	SizeOfOrderTable          uint16 // 0x4C
	TrainAcceptedCargoTypes   uint32 // 0x4E
	Var52                     uint8
	Var53                     uint8  // track mods
	StationID                 uint16 // 0x54
	CargoTransferTimeout      uint16 // 0x56
	Var58                     uint32
	Var5C                     uint8
	Status                    Status             // 0x5D
	VehicleType               object.VehicleType // 0x5E
	BreakdownFlags            uint8              // 0x5F
	AIThoughtID               uint8              // 0x60
	AIPlacementX              int16              // 0x61
	AIPlacementY              int16              // 0x63
	AIPlacementTaD            uint16             // 0x65
	AIPlacementBaseZ          uint8              // 0x67
	AirportMovementEdge       uint8              // 0x68
	TotalRefundCost           uint32             // 0x69
	CrashedTimeout            uint8              // 0x6D
	ManualPower               int8               // 0x6E
	JourneyStartX             int16              // 0x6F
	JourneyStartY             int16              // 0x71
	JourneyStartTicks         uint32             // 0x73
	LastAverageSpeed          int16              // 0x77
	RestartStoppedCarsTimeout uint8              // 0x79
}

type Vehicle1 struct {
	entity.Base
	Common
	TargetSpeed  int16  // 0x44
	TimeAtSignal uint16 // 0x46
	Var48        uint8
	Var49        uint8  // rack rail mods
	DayCreated   uint32 // 0x4A
	Var4E        uint16
	Var50        uint16
	Var52        uint8
	LastIncome   IncomeStats // 0x53
}

type Vehicle2 struct {
	entity.Base
	Common
	SoundState
	Var4F             int8
	TotalPower        uint16   // 0x50
	TotalWeight       uint16   // 0x52
	MaxSpeed          int16    // 0x54
	CurrentSpeed      int32    // 0x56 fixed point
	MotorState        uint8    // 0x5A
	BrakeLightTimeout uint8    // 0x5B
	RackRailMaxSpeed  int16    // 0x5C
	CurMonthRevenue   int32    // 0x5E
	Profit            [4]int32 // 0x62
	Reliability       uint8    // 0x72 lowest front bogie reliability / 256
	Flags73           Flags73  // 0x73
}

type Bogie struct {
	entity.Base
	Common
	Var44              uint16
	AnimationIndex     uint8 // 0x46
	Var47              uint8
	SecondaryCargo     Cargo  // 0x48 first bogie of the first segment only
	TotalCarWeight     uint16 // 0x52 first bogie of the car only
	BodyIndex          uint8  // 0x54
	pad55              uint8
	CreationDay        uint32 // 0x56
	Var5A              uint32
	WheelSlipping      uint8 // 0x5E
	BreakdownFlags     uint8 // 0x5F
	Var60              uint8
	Var61              uint8
	RefundCost         uint32 // 0x62 front bogies only
	Reliability        uint16 // 0x66 front bogies only
	TimeoutToBreakdown uint16 // 0x68 front bogies only, 0xFFFF disables
	BreakdownTimeout   uint8  // 0x6A
}

type Body struct {
	entity.Base
	Common
	Var44            int16
	AnimationFrame   uint8 // 0x46
	CargoFrame       uint8 // 0x47
	PrimaryCargo     Cargo // 0x48 first body of the car only
	pad52            [2]uint8
	BodyIndex        uint8 // 0x54
	ChuffSoundIndex  int8
	CreationDay      uint32 // 0x56
	Var5A            uint32
	WheelSlipping    uint8 // 0x5E
	BreakdownFlags   uint8 // 0x5F
	pad60            [2]uint8
	RefundCost       uint32 // 0x62 unused on bodies
	pad66            [4]uint8
	BreakdownTimeout uint8 // 0x6A
}

type Tail struct {
	entity.Base
	Common
	SoundState
	TrainDanglingTimeout uint16 // 0x4F
}

// Record sizes in the legacy layout.
const (
	HeadSize     = 0x7A
	Vehicle1Size = 0x7F
	Vehicle2Size = 0x74
	BogieSize    = 0x6B
	BodySize     = 0x6B
	TailSize     = 0x51
	CargoSize    = 0x0A
)

func newBase(kind Kind, owner company.ID) entity.Base {
	return entity.Base{
		BaseKind: entity.KindVehicle,
		SubKind:  uint8(kind),
		Owner:    uint8(owner),
	}
}

// NewRecord returns an empty record for a vehicle sub kind, used when
// decoding saved slots.
func NewRecord(kind Kind) Component {
	switch kind {
	case KindHead:
		return &Head{Base: newBase(kind, 0)}
	case KindVehicle1:
		return &Vehicle1{Base: newBase(kind, 0)}
	case KindVehicle2:
		return &Vehicle2{Base: newBase(kind, 0)}
	case KindBogie:
		return &Bogie{Base: newBase(kind, 0)}
	case KindBodyStart, KindBodyContinued:
		return &Body{Base: newBase(kind, 0)}
	case KindTail:
		return &Tail{Base: newBase(kind, 0)}
	}
	return nil
}
