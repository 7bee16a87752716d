package vehicle

import "fmt"

// OrderEnd terminates every head's order list.
const OrderEnd byte = 0

// OrderTable is the shared byte table holding every head's orders. Heads
// own a contiguous range of it; the content is opaque here.
type OrderTable struct {
	data     []byte
	capacity int
}

func NewOrderTable(capacity int) *OrderTable {
	return &OrderTable{capacity: capacity}
}

func (o *OrderTable) Len() int {
	return len(o.data)
}

func (o *OrderTable) Capacity() int {
	return o.capacity
}

// Bytes returns a copy of the used part of the table.
func (o *OrderTable) Bytes() []byte {
	return append([]byte(nil), o.data...)
}

func (o *OrderTable) Restore(b []byte) error {
	if len(b) > o.capacity {
		return fmt.Errorf("order table of %d bytes exceeds capacity %d", len(b), o.capacity)
	}
	o.data = append(o.data[:0], b...)
	return nil
}

// Allocate appends an empty order list for head.
func (o *OrderTable) Allocate(head *Head) error {
	if len(o.data)+1 > o.capacity {
		return ErrOrderTableFull
	}
	head.OrderTableOffset = uint32(len(o.data))
	head.SizeOfOrderTable = 1
	head.CurrentOrder = 0
	o.data = append(o.data, OrderEnd)
	return nil
}

// Remove deletes size bytes at offset and closes the gap. Offsets of the
// heads that own later ranges must be moved down by the caller.
func (o *OrderTable) Remove(offset uint32, size uint16) {
	end := int(offset) + int(size)
	if end > len(o.data) {
		end = len(o.data)
	}
	if int(offset) >= end {
		return
	}
	o.data = append(o.data[:offset], o.data[end:]...)
}
