package snapshot

import (
	"fmt"

	"locoveh/company"
	"locoveh/entity"
	"locoveh/vehicle"
)

// Capture encodes the persisted state of w under its read lock.
func Capture(w *vehicle.World, title string) (*Snapshot, error) {
	s := &Snapshot{Title: title}
	err := w.Read(func() error {
		s.Year, s.Day = w.Year, w.Day
		s.Slots = make([][]byte, w.Pool.Capacity())
		for i := range s.Slots {
			s.Slots[i] = freeSlot()
		}
		for e := range w.Pool.All() {
			slot, err := EncodeSlot(e)
			if err != nil {
				return err
			}
			s.Slots[e.Entity().ID] = slot
		}
		s.Orders = w.Orders.Bytes()
		s.RoutingSlots = uint16(w.Routing.Capacity())
		s.Routing = w.Routing.Bitmap()
		s.Seed0, s.Seed1 = w.Prng.S0, w.Prng.S1
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, s.Validate()
}

// Apply replaces the state of w with the snapshot. The pool and tables
// must have the capacities the snapshot was taken with. Nothing is changed
// when a slot fails to decode.
func (s *Snapshot) Apply(w *vehicle.World) error {
	if err := s.Validate(); err != nil {
		return err
	}
	records := make([]entity.Entity, len(s.Slots))
	for i, slot := range s.Slots {
		e, err := DecodeSlot(slot)
		if err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		records[i] = e
	}
	return w.Update(func() error {
		if int(s.RoutingSlots) != w.Routing.Capacity() {
			return fmt.Errorf("snapshot has %d routing slots, world has %d", s.RoutingSlots, w.Routing.Capacity())
		}
		if len(s.Orders) > w.Orders.Capacity() {
			return fmt.Errorf("snapshot has %d order bytes, world holds %d", len(s.Orders), w.Orders.Capacity())
		}
		if err := w.Pool.Restore(records); err != nil {
			return err
		}
		if err := w.Orders.Restore(s.Orders); err != nil {
			return err
		}
		if err := w.Routing.Restore(s.Routing); err != nil {
			return err
		}
		w.Year, w.Day = s.Year, s.Day
		w.Prng.S0, w.Prng.S1 = s.Seed0, s.Seed1
		for id := range company.ID(company.MaxCompanies) {
			w.RecalculateTransportCounts(id)
		}
		return nil
	})
}
