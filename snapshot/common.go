// Package snapshot saves and restores the persisted state of a vehicle
// world: every entity pool slot in its legacy 0x80 byte layout, the order
// table, the routing slots and the PRNG.
package snapshot

import (
	"errors"
	"fmt"

	"locoveh/entity"
)

const (
	fileChecksumAdd = 201100
	MaxTitleLength  = 47
	SlotSize        = entity.SlotSize
	// bytes per run in the compressed body
	maxRun = 127 + 1
)

var ErrChecksum = errors.New("snapshot checksum mismatch")

type InFile interface {
	Read(b []byte) (int, error)
}

type OutFile interface {
	Write(b []byte) (int, error)
}

// Snapshot is a world's persisted state. Slots hold the encoded records so
// a snapshot can be stored and compared without touching a live pool.
type Snapshot struct {
	Checksum uint32 // Do not set, this is calculated automatically
	Title    string
	Year     uint16
	Day      uint32
	Slots    [][]byte // one entity.SlotSize image per pool slot
	Orders   []byte
	// RoutingSlots is the routing table capacity; Routing has one bit per
	// slot, low bit first.
	RoutingSlots uint16
	Routing      []byte
	Seed0, Seed1 uint32
}

func titleChecksum(title []byte) uint16 {
	// add every byte, rotating the 16 bit sum left by one after each, then xor with 0xAAAA
	var sum uint16 = 0
	for _, b := range title {
		sum += uint16(b)
		sum = (sum << 1) | (sum >> 15)
	}
	sum ^= 0xAAAA
	return sum
}

func (s *Snapshot) checkBytes(bs []byte) {
	for _, b := range bs {
		s.Checksum += uint32(b)
		s.Checksum = (s.Checksum << 3) | (s.Checksum >> 29)
	}
}

func (s *Snapshot) Validate() error {
	if len(s.Title) > MaxTitleLength {
		return fmt.Errorf("Title too long (%d), max length %d", len(s.Title), MaxTitleLength)
	}
	if len(s.Slots) == 0 || len(s.Slots) > int(entity.Null) {
		return fmt.Errorf("Pool capacity %d out of range 1..%d", len(s.Slots), entity.Null)
	}
	for i, slot := range s.Slots {
		if len(slot) != entity.SlotSize {
			return fmt.Errorf("Slot %d is %d bytes, expected %d", i, len(slot), entity.SlotSize)
		}
	}
	if want := (int(s.RoutingSlots) + 7) / 8; len(s.Routing) != want {
		return fmt.Errorf("Routing bitmap is %d bytes, %d slots need %d", len(s.Routing), s.RoutingSlots, want)
	}
	return nil
}
