package vehicle

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderTable(t *testing.T) {
	o := NewOrderTable(3)
	heads := []*Head{{}, {}, {}}
	for i, h := range heads {
		require.NoError(t, o.Allocate(h))
		assert.Equal(t, uint32(i), h.OrderTableOffset)
		assert.Equal(t, uint16(1), h.SizeOfOrderTable)
	}
	assert.ErrorIs(t, o.Allocate(&Head{}), ErrOrderTableFull)

	require.NoError(t, o.Restore([]byte{1, 2, 3}))
	o.Remove(1, 1)
	if want := []byte{1, 3}; !cmp.Equal(want, o.Bytes()) {
		t.Errorf("Diff: %v", cmp.Diff(want, o.Bytes()))
	}
	o.Remove(5, 1)
	assert.Equal(t, 2, o.Len())
	assert.Error(t, o.Restore([]byte{1, 2, 3, 4}))
}

func TestRoutingTable(t *testing.T) {
	r := NewRoutingTable(10)
	var handles []uint16
	for range 10 {
		h, err := r.Allocate()
		require.NoError(t, err)
		handles = append(handles, h)
	}
	assert.Equal(t, uint16(9*RoutingEntriesPerSlot), handles[9])
	assert.False(t, r.Available())
	_, err := r.Allocate()
	assert.ErrorIs(t, err, ErrRoutingTableFull)

	r.Free(handles[3])
	assert.Equal(t, 9, r.InUse())
	bitmap := r.Bitmap()
	if want := []byte{0xF7, 0x03}; !cmp.Equal(want, bitmap) {
		t.Errorf("Diff: %v", cmp.Diff(want, bitmap))
	}

	restored := NewRoutingTable(10)
	require.NoError(t, restored.Restore(bitmap))
	h, err := restored.Allocate()
	require.NoError(t, err)
	assert.Equal(t, handles[3], h)
	assert.Error(t, restored.Restore([]byte{1}))
}
