package vehicle

import (
	"fmt"

	"locoveh/company"
	"locoveh/entity"
)

// DeleteVehicle removes a whole vehicle: its routing slot, its orders and
// every record of its chain.
func (w *World) DeleteVehicle(headID entity.ID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	train, err := w.Train(headID)
	if err != nil {
		return err
	}
	owner := company.ID(train.Head.Owner)
	var ids []entity.ID
	for c := range train.All() {
		ids = append(ids, c.Entity().ID)
	}
	if err := train.Err(); err != nil {
		return fmt.Errorf("delete vehicle %d: %w", headID, err)
	}

	w.Routing.Free(train.Head.RoutingHandle)
	w.freeOrders(train.Head)
	for _, id := range ids {
		w.Pool.Free(id)
	}
	w.RecalculateTransportCounts(owner)
	w.Logger.Debug().Uint16("head", uint16(headID)).Int("records", len(ids)).Msg("vehicle deleted")
	return nil
}

// freeOrders releases the head's range of the order table and moves the
// ranges of the other heads down to close the gap.
func (w *World) freeOrders(head *Head) {
	offset, size := head.OrderTableOffset, head.SizeOfOrderTable
	for _, h := range w.Heads() {
		if h != head && h.OrderTableOffset >= offset+uint32(size) {
			h.OrderTableOffset -= uint32(size)
		}
	}
	w.Orders.Remove(offset, size)
	head.SizeOfOrderTable = 0
}

// RecalculateTransportCounts recounts the vehicles of a company by type.
func (w *World) RecalculateTransportCounts(id company.ID) {
	c, ok := w.Companies.Get(id)
	if !ok {
		return
	}
	clear(c.TransportTypeCount[:])
	for _, h := range w.Heads() {
		if company.ID(h.Owner) == id && int(h.VehicleType) < len(c.TransportTypeCount) {
			c.TransportTypeCount[h.VehicleType]++
		}
	}
}
