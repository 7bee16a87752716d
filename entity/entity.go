package entity

type ID uint16

const Null ID = 0xFFFF

type BaseKind uint8

const (
	KindVehicle BaseKind = 0
	KindEffect  BaseKind = 1
	KindNull    BaseKind = 0xFF
)

// SlotSize is the size of every record in the legacy entity array.
const SlotSize = 0x80

// Base is the 0x24 byte header shared by every record in the pool.
type Base struct {
	BaseKind             BaseKind // 0x00
	SubKind              uint8    // 0x01 meaning depends on BaseKind
	NextQuadrantID       ID       // 0x02
	NextEntityID         ID       // 0x04
	LLPreviousID         ID       // 0x06
	LinkedListOffset     uint8    // 0x08
	SpriteHeightNegative uint8    // 0x09
	ID                   ID       // 0x0A
	VehicleFlags         uint16   // 0x0C
	X, Y, Z              int16    // 0x0E
	SpriteWidth          uint8    // 0x14
	SpriteHeightPositive uint8    // 0x15
	SpriteLeft           int16    // 0x16
	SpriteTop            int16    // 0x18
	SpriteRight          int16    // 0x1A
	SpriteBottom         int16    // 0x1C
	SpriteYaw            uint8    // 0x1E
	SpritePitch          uint8    // 0x1F
	pad20                uint8
	Owner                uint8  // 0x21
	Name                 uint16 // 0x22
}

func (b *Base) Entity() *Base {
	return b
}

// Entity is implemented by every record stored in a Pool.
type Entity interface {
	Entity() *Base
}

// Misc is any non-vehicle record (smoke, money effects, ...). Its payload is
// kept as raw bytes.
type Misc struct {
	Base
	Data [SlotSize - 0x24]byte
}
