package vehicle

import "fmt"

// RoutingEntriesPerSlot is the number of route entries behind one handle.
const RoutingEntriesPerSlot = 64

// RoutingTable hands out one routing slot per vehicle. A handle is the
// slot number times RoutingEntriesPerSlot.
type RoutingTable struct {
	used []bool
}

func NewRoutingTable(slots int) *RoutingTable {
	return &RoutingTable{used: make([]bool, slots)}
}

func (r *RoutingTable) Capacity() int {
	return len(r.used)
}

func (r *RoutingTable) Available() bool {
	for _, u := range r.used {
		if !u {
			return true
		}
	}
	return false
}

func (r *RoutingTable) InUse() int {
	n := 0
	for _, u := range r.used {
		if u {
			n++
		}
	}
	return n
}

func (r *RoutingTable) Allocate() (uint16, error) {
	for i, u := range r.used {
		if !u {
			r.used[i] = true
			return uint16(i * RoutingEntriesPerSlot), nil
		}
	}
	return 0, ErrRoutingTableFull
}

func (r *RoutingTable) Free(handle uint16) {
	slot := int(handle / RoutingEntriesPerSlot)
	if slot < len(r.used) {
		r.used[slot] = false
	}
}

// Bitmap packs the slot usage, eight slots per byte, low bit first.
func (r *RoutingTable) Bitmap() []byte {
	b := make([]byte, (len(r.used)+7)/8)
	for i, u := range r.used {
		if u {
			b[i/8] |= 1 << (i % 8)
		}
	}
	return b
}

func (r *RoutingTable) Restore(bitmap []byte) error {
	if len(bitmap) != (len(r.used)+7)/8 {
		return fmt.Errorf("routing bitmap of %d bytes for %d slots", len(bitmap), len(r.used))
	}
	for i := range r.used {
		r.used[i] = bitmap[i/8]&(1<<(i%8)) != 0
	}
	return nil
}
