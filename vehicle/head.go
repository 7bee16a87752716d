package vehicle

import (
	"fmt"
	"math"

	"locoveh/object"
)

// SmallZStep converts a tile base height to world units.
const SmallZStep = 4

// Position is where a placed vehicle's head sits on the map.
type Position struct {
	TileX, TileY      int16
	TileBaseZ         uint8
	TrackAndDirection uint16
	SubPosition       uint16
}

func (h *Head) Position() Position {
	return Position{
		TileX:             h.TileX,
		TileY:             h.TileY,
		TileBaseZ:         h.TileBaseZ,
		TrackAndDirection: h.TrackAndDirection,
		SubPosition:       h.SubPosition,
	}
}

// CanVehiclesCouple reports whether a car of object newID may run in the
// same vehicle as a car of object sourceID.
func (w *World) CanVehiclesCouple(newID, sourceID uint16) bool {
	newObj, ok := w.Objects.Vehicle(newID)
	if !ok {
		return false
	}
	srcObj, ok := w.Objects.Vehicle(sourceID)
	if !ok {
		return false
	}
	if newObj.Has(object.FlagCannotCoupleToSelf) && srcObj.Has(object.FlagCannotCoupleToSelf) {
		return false
	}
	if newID == sourceID {
		return true
	}
	for _, id := range newObj.CompatibleVehicles {
		if id == sourceID {
			return true
		}
	}
	for _, id := range srcObj.CompatibleVehicles {
		if id == newID {
			return true
		}
	}
	return len(newObj.CompatibleVehicles) == 0 && len(srcObj.CompatibleVehicles) == 0
}

// IsVehicleTypeCompatible checks that a car of objectID can be appended to
// the train.
func (w *World) IsVehicleTypeCompatible(train *Train, objectID uint16) error {
	obj, err := w.vehicleObject(objectID)
	if err != nil {
		return fmt.Errorf("vehicle object %d: %w", objectID, err)
	}
	head := train.Head
	if obj.Mode == object.ModeAir || obj.Mode == object.ModeWater {
		if train.CarCount() != 0 {
			return fmt.Errorf("%s cannot have more than one car: %w", obj.Mode, ErrIncompatibleVehicleType)
		}
	} else if obj.TrackType != head.TrackType {
		return fmt.Errorf("track type %d, vehicle has %d: %w", obj.TrackType, head.TrackType, ErrIncompatibleVehicleType)
	}
	if obj.Mode != head.Mode {
		return fmt.Errorf("mode %s, vehicle has %s: %w", obj.Mode, head.Mode, ErrIncompatibleVehicleType)
	}
	if obj.Type != head.VehicleType {
		return fmt.Errorf("vehicle type %d, vehicle has %d: %w", obj.Type, head.VehicleType, ErrIncompatibleVehicleType)
	}
	for car := range train.Cars() {
		if !w.CanVehiclesCouple(objectID, car.Front.ObjectID) {
			return fmt.Errorf("%s cannot couple to object %d: %w", obj.Name, car.Front.ObjectID, ErrIncompatibleVehicleType)
		}
	}
	if head.Mode != object.ModeRoad || head.TrackType != object.TrackTypeNone {
		return nil
	}
	if w.TotalLength(train)+obj.Length() > w.MaxRoadLength {
		return fmt.Errorf("vehicle too long: %w", ErrIncompatibleVehicleType)
	}
	return nil
}

// TotalLength sums the lengths of the train's cars.
func (w *World) TotalLength(train *Train) int {
	total := 0
	for car := range train.Cars() {
		if obj, ok := w.Objects.Vehicle(car.Body.ObjectID); ok {
			total += obj.Length()
		}
	}
	return total
}

// CanBeModified reports whether cars may be added to or removed from the
// train right now.
func (w *World) CanBeModified(train *Train) error {
	head := train.Head
	switch head.Status {
	case StatusCrashed:
		return fmt.Errorf("vehicle has crashed: %w", ErrCannotModify)
	case StatusStuck:
		return fmt.Errorf("vehicle is stuck: %w", ErrCannotModify)
	case StatusBrokenDown:
		return fmt.Errorf("vehicle has broken down: %w", ErrCannotModify)
	}
	if head.VehicleType == object.TypeAircraft || head.VehicleType == object.TypeShip {
		if train.Veh2.Flags73&Flags73IsBrokenDown != 0 {
			return fmt.Errorf("vehicle has broken down: %w", ErrCannotModify)
		}
		if head.TileX == Unplaced {
			return nil
		}
		if head.Status != StatusLoading && head.Status != StatusStopped {
			return ErrCannotModify
		}
		if train.Veh2.CurrentSpeed == 0 {
			return nil
		}
		return ErrCannotModify
	}
	if head.TileX == Unplaced {
		return nil
	}
	if train.Veh2.CurrentSpeed == 0 {
		return nil
	}
	if train.Veh1.Var3C <= 0x3689 {
		return nil
	}
	return ErrCannotModify
}

// LiftUp takes a placed vehicle off the map and unloads it.
func (w *World) LiftUp(train *Train) {
	if train.Head.TileX == Unplaced {
		return
	}
	for c := range train.All() {
		c.Vehicle().TileX = Unplaced
		c.Entity().X = math.MinInt16
		c.Entity().Y = 0
		c.Entity().Z = 0
	}
	for car := range train.Cars() {
		for cc := range car.Components() {
			cc.Front.SecondaryCargo.Qty = 0
			cc.Back.SecondaryCargo.Qty = 0
			cc.Body.PrimaryCargo.Qty = 0
		}
	}
	train.Veh1.Var3C = 0
	train.Head.Status = StatusUnplaced
	train.Head.StationID = NullStation
}

// PlaceDown puts an unplaced vehicle back at pos, stopped. Placing a vehicle
// that is already on the map does nothing.
func (w *World) PlaceDown(train *Train, pos Position) {
	if train.Head.TileX != Unplaced {
		return
	}
	for c := range train.All() {
		vc := c.Vehicle()
		vc.TileX = pos.TileX
		vc.TileY = pos.TileY
		vc.TileBaseZ = pos.TileBaseZ
		vc.TrackAndDirection = pos.TrackAndDirection
		vc.SubPosition = pos.SubPosition
		c.Entity().X = pos.TileX
		c.Entity().Y = pos.TileY
		c.Entity().Z = int16(pos.TileBaseZ) * SmallZStep
	}
	train.Head.Status = StatusStopped
}

// CalculateRefundCost sums the refund value of every car into the head.
func (w *World) CalculateRefundCost(train *Train) {
	var total uint32
	for car := range train.Cars() {
		total += car.Front.RefundCost
	}
	train.Head.TotalRefundCost = total
}

// UpdateTrainProperties recomputes the values cached on the head and control
// records from the cars.
func (w *World) UpdateTrainProperties(train *Train) {
	canRoll := true
	var (
		power, weight   uint32
		accepted        uint32
		maxSpeed        int16  = math.MaxInt16
		rackMaxSpeed    int16  = math.MaxInt16
		earliestPowered uint32 = math.MaxUint32
		earliest        uint32 = math.MaxUint32
	)
	for car := range train.Cars() {
		obj, ok := w.Objects.Vehicle(car.Front.ObjectID)
		if !ok {
			w.Logger.Warn().Uint16("object", car.Front.ObjectID).Uint16("head", uint16(train.Head.ID)).Msg("car of unknown object")
			continue
		}
		if obj.BodySprites[0].NumRollFrames == 1 {
			canRoll = false
		}
		power += uint32(obj.Power)
		if obj.Power != 0 {
			earliestPowered = min(earliestPowered, car.Front.CreationDay)
		}
		earliest = min(earliest, car.Front.CreationDay)

		carWeight := uint32(obj.Weight)
		for _, c := range []*Cargo{&car.Front.SecondaryCargo, &car.Back.SecondaryCargo, &car.Body.PrimaryCargo} {
			accepted |= c.AcceptedTypes
			carWeight += w.cargoWeight(c)
		}
		car.Front.TotalCarWeight = uint16(carWeight)
		weight += carWeight

		maxSpeed = min(maxSpeed, obj.Speed)
		rackMaxSpeed = min(rackMaxSpeed, obj.Speed)
		if obj.Has(object.FlagRackRail) {
			rackMaxSpeed = min(rackMaxSpeed, obj.RackSpeed)
		}
		if obj.Mode == object.ModeAir {
			rackMaxSpeed = obj.RackSpeed
		}
	}
	train.Head.Flags &^= Flags38FasterAroundCurves
	if canRoll {
		train.Head.Flags |= Flags38FasterAroundCurves
	}
	train.Head.TrainAcceptedCargoTypes = accepted

	created := earliestPowered
	if created == math.MaxUint32 {
		created = earliest
		if created == math.MaxUint32 {
			created = w.Day
		}
	}
	train.Veh1.DayCreated = created
	train.Veh2.TotalPower = uint16(min(power, 0xFFFF))
	train.Veh2.TotalWeight = uint16(min(weight, 0xFFFF))
	train.Veh2.MaxSpeed = maxSpeed
	train.Veh2.RackRailMaxSpeed = rackMaxSpeed
	train.Veh2.Var4F = -1

	w.updateSoundObjects(train)
	w.CalculateRefundCost(train)
	w.recalculateMinReliability(train)
}

func (w *World) cargoWeight(c *Cargo) uint32 {
	if c.Type == NullCargoType {
		return 0
	}
	cargo, ok := w.Objects.Cargo(c.Type)
	if !ok {
		return 0
	}
	return uint32(cargo.UnitWeight) * uint32(c.Qty) / 256
}

// updateSoundObjects picks the first and, if different, a second car
// object that makes driving noise. Vehicle2 plays the front one, the tail
// the back one.
func (w *World) updateSoundObjects(train *Train) {
	front, back := NullObject, NullObject
	for car := range train.Cars() {
		obj, ok := w.Objects.Vehicle(car.Body.ObjectID)
		if !ok || obj.DrivingSoundType == object.SoundNone {
			continue
		}
		if front == NullObject {
			front = car.Body.ObjectID
		}
		if front != car.Body.ObjectID {
			back = car.Body.ObjectID
		}
	}
	veh2, tail := train.Veh2, train.Tail
	// the train has turned around
	if front != veh2.SoundObjectID && front == tail.SoundObjectID {
		veh2.DrivingSoundID, tail.DrivingSoundID = tail.DrivingSoundID, veh2.DrivingSoundID
		veh2.DrivingSoundVolume, tail.DrivingSoundVolume = tail.DrivingSoundVolume, veh2.DrivingSoundVolume
		veh2.DrivingSoundFrequency, tail.DrivingSoundFrequency = tail.DrivingSoundFrequency, veh2.DrivingSoundFrequency
		veh2.SoundFlags, tail.SoundFlags = tail.SoundFlags, veh2.SoundFlags
	}
	veh2.SoundObjectID = front
	tail.SoundObjectID = back
}

// recalculateMinReliability stores the least reliable car's reliability in
// vehicle2. Cars with reliability 0 never break down and are ignored.
func (w *World) recalculateMinReliability(train *Train) {
	lowest := uint16(0xFFFF)
	for car := range train.Cars() {
		r := car.Front.Reliability
		if r == 0 {
			r = 0xFFFF
		}
		lowest = min(lowest, r)
	}
	train.Veh2.Reliability = 0
	if lowest != 0xFFFF {
		train.Veh2.Reliability = uint8(lowest / 256)
	}
}
