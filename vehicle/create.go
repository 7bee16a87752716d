package vehicle

import (
	"fmt"

	"locoveh/company"
	"locoveh/entity"
	"locoveh/object"
)

const (
	BaseRecords       = 4 // head, vehicle1, vehicle2, tail
	RecordsPerSegment = 3 // front bogie, back bogie, body
	MaxRecordsPerCar  = RecordsPerSegment * object.MaxSegments
)

type CreateFlags uint8

// FlagApply performs the command; without it CreateVehicle only checks
// that the command would succeed and returns its cost.
const FlagApply CreateFlags = 1 << 0

// CreateVehicle buys a car built from objectID. With head set to
// entity.Null a new vehicle is created around it, otherwise the car is
// appended to head. It returns the cost and the head of the vehicle (Null
// when FlagApply is not set for a new vehicle).
//
// On failure nothing is left behind: no records, order table space or
// routing slot.
func (w *World) CreateVehicle(flags CreateFlags, objectID uint16, head entity.ID) (int32, entity.ID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	obj, err := w.vehicleObject(objectID)
	if err != nil {
		return 0, entity.Null, fmt.Errorf("vehicle object %d: %w", objectID, err)
	}
	owner, ok := w.Companies.Get(w.UpdatingCompany)
	if !ok {
		return 0, entity.Null, fmt.Errorf("updating company %d does not exist", w.UpdatingCompany)
	}
	if !owner.IsVehicleUnlocked(objectID) && !w.BuildLocked {
		return 0, entity.Null, fmt.Errorf("%s: %w", obj.Name, ErrVehicleLocked)
	}

	prng := *w.Prng
	var cost int32
	if head == entity.Null {
		cost, head, err = w.createNewVehicle(flags, objectID, obj)
	} else {
		cost, err = w.addCarToVehicle(flags, objectID, obj, head)
	}
	if err != nil {
		*w.Prng = prng
		return 0, entity.Null, err
	}
	return cost, head, nil
}

func (w *World) cost(obj *object.Vehicle) int32 {
	return w.Economy.InflationAdjustedCost(obj.CostFactor, obj.CostIndex, 6)
}

func (w *World) aiBelowVehicleLimit() error {
	if w.Companies.IsHuman(w.UpdatingCompany) {
		return nil
	}
	if w.Companies.TotalAIVehicles() > w.MaxAIVehicles {
		return ErrTooManyVehiclesForOwner
	}
	return nil
}

func (w *World) createNewVehicle(flags CreateFlags, objectID uint16, obj *object.Vehicle) (int32, entity.ID, error) {
	if !w.Pool.CheckCapacity(MaxRecordsPerCar + BaseRecords) {
		return 0, entity.Null, entity.ErrPoolExhausted
	}
	if err := w.aiBelowVehicleLimit(); err != nil {
		return 0, entity.Null, err
	}
	if !w.Routing.Available() {
		return 0, entity.Null, ErrRoutingTableFull
	}
	if flags&FlagApply == 0 {
		return w.cost(obj), entity.Null, nil
	}

	head, err := w.createBaseVehicle(obj.Mode, obj.Type, obj.TrackType)
	if err != nil {
		return 0, entity.Null, err
	}
	if err := w.createCar(head, objectID, obj); err != nil {
		w.Logger.Warn().Err(err).Uint16("head", uint16(head.ID)).Uint16("object", objectID).Msg("car creation failed, removing new vehicle")
		w.freeBaseVehicle(head)
		return 0, entity.Null, err
	}
	w.updateWholeVehicle(head, nil)
	w.Logger.Debug().Uint16("head", uint16(head.ID)).Str("object", obj.Name).Int16("ordinal", head.Ordinal).Msg("vehicle created")
	return w.cost(obj), head.ID, nil
}

func (w *World) addCarToVehicle(flags CreateFlags, objectID uint16, obj *object.Vehicle, headID entity.ID) (int32, error) {
	train, err := w.Train(headID)
	if err != nil {
		return 0, err
	}
	if company.ID(train.Head.Owner) != w.UpdatingCompany {
		return 0, ErrNotOwner
	}
	if err := w.CanBeModified(train); err != nil {
		return 0, err
	}
	if err := w.IsVehicleTypeCompatible(train, objectID); err != nil {
		return 0, err
	}
	if !w.Pool.CheckCapacity(MaxRecordsPerCar) {
		return 0, entity.ErrPoolExhausted
	}
	if flags&FlagApply == 0 {
		return w.cost(obj), nil
	}

	var backup *Position
	if train.Head.TileX != Unplaced {
		pos := train.Head.Position()
		backup = &pos
		w.LiftUp(train)
	}
	if err := w.createCar(train.Head, objectID, obj); err != nil {
		w.Logger.Warn().Err(err).Uint16("head", uint16(headID)).Uint16("object", objectID).Msg("car creation failed")
		if backup != nil && train.CarCount() > 0 {
			w.PlaceDown(train, *backup)
		}
		return 0, err
	}
	w.updateWholeVehicle(train.Head, backup)
	w.Logger.Debug().Uint16("head", uint16(headID)).Str("object", obj.Name).Msg("car added")
	return w.cost(obj), nil
}

func (w *World) updateWholeVehicle(head *Head, backup *Position) {
	train, err := w.Train(head.ID)
	if err != nil {
		w.Logger.Error().Err(err).Uint16("head", uint16(head.ID)).Msg("vehicle chain broken after construction")
		return
	}
	w.UpdateTrainProperties(train)
	w.RecalculateTransportCounts(w.UpdatingCompany)
	if backup != nil {
		w.PlaceDown(train, *backup)
	}
}

// createBaseVehicle creates the head, vehicle1, vehicle2 and tail of a
// vehicle without cars.
func (w *World) createBaseVehicle(mode object.Mode, vehicleType object.VehicleType, trackType uint8) (*Head, error) {
	if !w.Pool.CheckCapacity(BaseRecords) {
		return nil, entity.ErrPoolExhausted
	}
	if w.Orders.Len() >= w.Orders.Capacity() {
		return nil, ErrOrderTableFull
	}
	if err := w.aiBelowVehicleLimit(); err != nil {
		return nil, err
	}
	routing, err := w.Routing.Allocate()
	if err != nil {
		return nil, err
	}

	head := w.newHead(trackType, mode, routing, vehicleType)
	veh1 := w.newVehicle1()
	veh2 := w.newVehicle2()
	tail := w.newTail()
	records := []Component{head, veh1, veh2, tail}
	for i, r := range records {
		if err := w.allocate(r); err != nil {
			w.unwind(records[:i])
			w.Routing.Free(routing)
			return nil, err
		}
	}
	head.HeadID = head.ID
	head.Ordinal = w.createUniqueTypeNumber(vehicleType)
	if err := w.Orders.Allocate(head); err != nil {
		w.unwind(records)
		w.Routing.Free(routing)
		return nil, err
	}
	for i := 1; i < len(records); i++ {
		w.link(records[i-1], records[i], head)
	}

	train, err := w.Train(head.ID)
	if err != nil {
		return nil, err
	}
	w.UpdateTrainProperties(train)
	return head, nil
}

// freeBaseVehicle removes a vehicle created by createBaseVehicle whose cars
// were never added.
func (w *World) freeBaseVehicle(head *Head) {
	w.Routing.Free(head.RoutingHandle)
	w.freeOrders(head)
	id := head.ID
	for range BaseRecords {
		c, ok := w.Pool.Get(id).(Component)
		if !ok {
			break
		}
		next := c.Vehicle().NextCarID
		w.Pool.Free(id)
		id = next
	}
}

func (w *World) unwind(records []Component) {
	for i := len(records) - 1; i >= 0; i-- {
		w.Pool.Free(records[i].Entity().ID)
	}
}

// link appends next after last, copying the fields every record of a
// chain shares.
func (w *World) link(last, next Component, head *Head) {
	lc, nc := last.Vehicle(), next.Vehicle()
	nc.HeadID = head.ID
	nc.TrackType = lc.TrackType
	nc.Mode = lc.Mode
	nc.RoutingHandle = lc.RoutingHandle
	lc.NextCarID = next.Entity().ID
}

func (w *World) common() Common {
	return Common{TileX: Unplaced, NextCarID: entity.Null}
}

func (w *World) newHead(trackType uint8, mode object.Mode, routing uint16, vehicleType object.VehicleType) *Head {
	h := &Head{
		Base:        newBase(KindHead, w.UpdatingCompany),
		Common:      w.common(),
		VehicleType: vehicleType,
		Status:      StatusUnplaced,
		StationID:   NullStation,
		AIThoughtID: 0xFF,
	}
	h.VehicleFlags |= FlagCommandStop
	h.Name = uint16(vehicleType) + 4
	h.TrackType = trackType
	h.Mode = mode
	h.RoutingHandle = routing
	return h
}

func (w *World) newVehicle1() *Vehicle1 {
	v := &Vehicle1{Base: newBase(KindVehicle1, w.UpdatingCompany), Common: w.common()}
	v.LastIncome.Day = -1
	return v
}

func (w *World) newVehicle2() *Vehicle2 {
	v := &Vehicle2{Base: newBase(KindVehicle2, w.UpdatingCompany), Common: w.common()}
	v.DrivingSoundID = NullSound
	v.SoundObjectID = NullObject
	return v
}

func (w *World) newTail() *Tail {
	t := &Tail{Base: newBase(KindTail, w.UpdatingCompany), Common: w.common()}
	t.DrivingSoundID = NullSound
	t.SoundObjectID = NullObject
	return t
}

// createUniqueTypeNumber returns the smallest ordinal not used by another
// vehicle of the same type and owner.
func (w *World) createUniqueTypeNumber(vehicleType object.VehicleType) int16 {
	used := map[int16]bool{}
	for _, h := range w.Heads() {
		if company.ID(h.Owner) == w.UpdatingCompany && h.VehicleType == vehicleType && h.Ordinal != 0 {
			used[h.Ordinal] = true
		}
	}
	n := int16(1)
	for used[n] {
		n++
	}
	return n
}

// createCar appends one car built from obj in front of the tail. When an
// allocation fails the records created so far are freed and the chain is
// closed again at the tail.
func (w *World) createCar(head *Head, objectID uint16, obj *object.Vehicle) error {
	if !w.Pool.CheckCapacity(MaxRecordsPerCar) {
		return entity.ErrPoolExhausted
	}
	train, err := w.Train(head.ID)
	if err != nil {
		return err
	}
	owner, ok := w.Companies.Get(w.UpdatingCompany)
	if !ok {
		return fmt.Errorf("updating company %d does not exist", w.UpdatingCompany)
	}
	colours := owner.VehicleColourScheme(obj.ColourType)

	prev := train.LastComponent()
	last := prev
	var created []Component
	for seg := range int(obj.NumSegments) {
		records := []Component{
			w.newFirstBogie(objectID, obj, seg, colours),
			w.newSecondBogie(objectID, obj, seg, colours),
			w.newBody(objectID, obj, seg, colours),
		}
		for _, r := range records {
			if err := w.allocate(r); err != nil {
				w.unwind(created)
				prev.Vehicle().NextCarID = train.Tail.ID
				return err
			}
			created = append(created, r)
			w.link(last, r, head)
			last = r
		}
	}
	last.Vehicle().NextCarID = train.Tail.ID
	w.UpdateTrainProperties(train)
	return nil
}

func (w *World) newBogie(objectID uint16, seg int, colours company.ColourScheme) *Bogie {
	b := &Bogie{Base: newBase(KindBogie, w.UpdatingCompany), Common: w.common()}
	b.BodyIndex = uint8(seg)
	b.ObjectID = objectID
	b.Var44 = uint16(w.Prng.Next())
	b.CreationDay = w.Day
	b.SecondaryCargo.Type = NullCargoType
	b.SpriteWidth = 1
	b.SpriteHeightNegative = 1
	b.SpriteHeightPositive = 1
	b.Colours = colours
	return b
}

func (w *World) newFirstBogie(objectID uint16, obj *object.Vehicle, seg int, colours company.ColourScheme) *Bogie {
	b := w.newBogie(objectID, seg, colours)
	b.Reliability = w.initialReliability(obj)
	b.TimeoutToBreakdown = w.breakdownTimeout(b.Reliability)

	cost := w.cost(obj)
	b.RefundCost = uint32(cost - cost/8)

	if seg == 0 && obj.NumSimultaneousCargoTypes > 1 {
		setCargo(&b.SecondaryCargo, obj.MaxCargo[1], obj.CargoTypes[1])
	}
	b.ObjectSpriteType = obj.Segments[seg].FrontBogieSprite
	setBogieDimensions(&b.Base, obj, b.ObjectSpriteType)
	return b
}

func (w *World) newSecondBogie(objectID uint16, obj *object.Vehicle, seg int, colours company.ColourScheme) *Bogie {
	b := w.newBogie(objectID, seg, colours)
	b.Flags = Flags38IsReversed
	b.ObjectSpriteType = obj.Segments[seg].BackBogieSprite
	setBogieDimensions(&b.Base, obj, b.ObjectSpriteType)
	return b
}

func setBogieDimensions(base *entity.Base, obj *object.Vehicle, sprite uint8) {
	if sprite == object.SpriteNull {
		return
	}
	s := obj.BogieSprites[sprite]
	base.SpriteWidth = s.Width
	base.SpriteHeightNegative = s.HeightNegative
	base.SpriteHeightPositive = s.HeightPositive
}

func (w *World) newBody(objectID uint16, obj *object.Vehicle, seg int, colours company.ColourScheme) *Body {
	kind := KindBodyContinued
	if seg == 0 {
		kind = KindBodyStart
	}
	b := &Body{Base: newBase(kind, w.UpdatingCompany), Common: w.common()}
	b.BodyIndex = uint8(seg)
	b.Flags = Flags38Unk0
	b.ObjectID = objectID
	b.Var44 = int16(w.Prng.Next())
	b.CreationDay = w.Day
	b.PrimaryCargo.Type = NullCargoType
	if seg == 0 && obj.NumSimultaneousCargoTypes != 0 {
		setCargo(&b.PrimaryCargo, obj.MaxCargo[0], obj.CargoTypes[0])
	}
	b.SpriteWidth = 1
	b.SpriteHeightNegative = 1
	b.SpriteHeightPositive = 1

	sprite := obj.Segments[seg].BodySprite
	if sprite != object.SpriteNull && sprite&object.SpriteReversed != 0 {
		b.Flags |= Flags38IsReversed
		sprite &^= object.SpriteReversed
	}
	b.ObjectSpriteType = sprite
	if sprite != object.SpriteNull {
		s := obj.BodySprites[sprite]
		b.SpriteWidth = s.Width
		b.SpriteHeightNegative = s.HeightNegative
		b.SpriteHeightPositive = s.HeightPositive
	}
	b.Colours = colours

	if seg == 0 && obj.Has(object.FlagInvisibleFront) {
		b.Flags |= Flags38Unk3
	}
	if seg+1 == int(obj.NumSegments) && obj.Has(object.FlagInvisibleBack) {
		b.Flags |= Flags38Unk3
	}
	return b
}

// setCargo fills a cargo slot; the loaded type is the lowest accepted one.
func setCargo(c *Cargo, maxQty uint8, accepted uint32) {
	c.MaxQty = maxQty
	c.AcceptedTypes = accepted
	for i := range 32 {
		if accepted&(1<<i) != 0 {
			c.Type = uint8(i)
			break
		}
	}
}

// initialReliability is the object reliability scaled by 256, reduced by an
// eighth once the design is more than two years old and by another eighth
// after more than three.
func (w *World) initialReliability(obj *object.Vehicle) uint16 {
	rel := int32(obj.Reliability) * 256
	if int(w.Year) > int(obj.Designed)+2 {
		rel -= rel / 8
		if int(w.Year) > int(obj.Designed)+3 {
			rel -= rel / 8
		}
	}
	if rel != 0 {
		rel += 255
	}
	return uint16(rel)
}

// breakdownTimeout draws the days until the first breakdown. The integer
// divisions happen in this exact order.
func (w *World) breakdownTimeout(reliability uint16) uint16 {
	if reliability == 0 {
		return 0xFFFF
	}
	factor := int32(reliability) / 256
	factor *= factor
	factor /= 16
	jitter := (w.Prng.NextN(65535) * (factor / 2)) / 65536
	factor -= factor / 4
	factor += jitter
	return uint16(max(4, factor))
}
