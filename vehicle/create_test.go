package vehicle

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locoveh/company"
	"locoveh/economy"
	"locoveh/entity"
	"locoveh/object"
	"locoveh/object/objecttest"
)

func kinds(tr *Train) []Kind {
	var got []Kind
	for c := range tr.All() {
		got = append(got, KindOf(c))
	}
	return got
}

func TestChainIntegrity(t *testing.T) {
	w := newTestWorld(t)
	head := build(t, w, objecttest.Locomotive, objecttest.Carriage, objecttest.Articulated)
	tr := train(t, w, head)

	want := []Kind{KindHead, KindVehicle1, KindVehicle2,
		KindBogie, KindBogie, KindBodyStart,
		KindBogie, KindBogie, KindBodyStart, KindBogie, KindBogie, KindBodyContinued,
		KindBogie, KindBogie, KindBodyStart, KindBogie, KindBogie, KindBodyContinued,
		KindBogie, KindBogie, KindBodyContinued, KindBogie, KindBogie, KindBodyContinued,
		KindTail}
	got := kinds(tr)
	if !cmp.Equal(want, got) {
		t.Errorf("Diff: %v", cmp.Diff(want, got))
	}
	assert.Len(t, got, 4+3*(1+2+4))

	for c := range tr.All() {
		if _, ok := c.(*Tail); ok {
			assert.Equal(t, entity.Null, c.Vehicle().NextCarID)
			continue
		}
		assert.NotNil(t, w.Pool.Get(c.Vehicle().NextCarID), "record %d", c.Entity().ID)
		assert.Equal(t, head, c.Vehicle().HeadID)
	}
	require.NoError(t, tr.Err())

	var segments []int
	for car := range tr.Cars() {
		n := 0
		for range car.Components() {
			n++
		}
		segments = append(segments, n)
	}
	if want := []int{1, 2, 4}; !cmp.Equal(want, segments) {
		t.Errorf("Diff: %v", cmp.Diff(want, segments))
	}
	assert.Equal(t, 3, tr.CarCount())
	assert.Equal(t, w.Pool.Capacity()-len(got), w.Pool.FreeCount())
}

func TestCreateVehicleHead(t *testing.T) {
	w := newTestWorld(t)
	cost, head, err := w.CreateVehicle(FlagApply, objecttest.Locomotive, entity.Null)
	require.NoError(t, err)
	assert.Equal(t, int32(800*1024>>6), cost)

	tr := train(t, w, head)
	h := tr.Head
	assert.Equal(t, head, h.HeadID)
	assert.Equal(t, uint8(0), h.Owner)
	assert.Equal(t, FlagCommandStop, h.VehicleFlags&FlagCommandStop)
	assert.Equal(t, Unplaced, h.TileX)
	assert.Equal(t, StatusUnplaced, h.Status)
	assert.Equal(t, NullStation, h.StationID)
	assert.Equal(t, object.TypeTrain, h.VehicleType)
	assert.Equal(t, uint16(object.TypeTrain)+4, h.Name)
	assert.Equal(t, int16(1), h.Ordinal)
	assert.Equal(t, uint16(1), h.SizeOfOrderTable)
	assert.Equal(t, 1, w.Orders.Len())
	assert.Equal(t, 1, w.Routing.InUse())
	assert.Equal(t, int32(-1), tr.Veh1.LastIncome.Day)

	for c := range tr.All() {
		assert.Equal(t, h.RoutingHandle, c.Vehicle().RoutingHandle)
		assert.Equal(t, object.ModeRail, c.Vehicle().Mode)
		assert.Equal(t, Unplaced, c.Vehicle().TileX)
	}

	p, ok := w.Companies.Get(0)
	require.True(t, ok)
	assert.Equal(t, uint16(1), p.TransportTypeCount[object.TypeTrain])
}

func TestCreateVehicleCheckOnly(t *testing.T) {
	w := newTestWorld(t)
	free := w.Pool.FreeCount()

	cost, head, err := w.CreateVehicle(0, objecttest.Carriage, entity.Null)
	require.NoError(t, err)
	assert.Equal(t, int32(400*1024>>6), cost)
	assert.Equal(t, entity.Null, head)
	assert.Equal(t, free, w.Pool.FreeCount())
	assert.Equal(t, 0, w.Orders.Len())
	assert.Equal(t, 0, w.Routing.InUse())
}

func TestCreateCarRollback(t *testing.T) {
	// the carriage needs 6 records on top of the 4 base records
	for k := range 6 {
		w := newTestWorld(t)
		free := w.Pool.FreeCount()
		prng := *w.Prng

		failAfter(w, BaseRecords+k)
		_, _, err := w.CreateVehicle(FlagApply, objecttest.Carriage, entity.Null)
		assert.ErrorIs(t, err, entity.ErrPoolExhausted, "failing at record %d", k)
		assert.Equal(t, free, w.Pool.FreeCount(), "failing at record %d", k)
		assert.Equal(t, 0, w.Orders.Len())
		assert.Equal(t, 0, w.Routing.InUse())
		assert.Equal(t, prng, *w.Prng)
		assert.Empty(t, w.Heads())
	}
}

func TestCreateBaseVehicleRollback(t *testing.T) {
	for k := range BaseRecords {
		w := newTestWorld(t)
		free := w.Pool.FreeCount()

		failAfter(w, k)
		_, _, err := w.CreateVehicle(FlagApply, objecttest.Locomotive, entity.Null)
		assert.ErrorIs(t, err, entity.ErrPoolExhausted)
		assert.Equal(t, free, w.Pool.FreeCount())
		assert.Equal(t, 0, w.Orders.Len())
		assert.Equal(t, 0, w.Routing.InUse())
	}
}

func TestAddCarRollback(t *testing.T) {
	for k := range 6 {
		w := newTestWorld(t)
		head := build(t, w, objecttest.Locomotive)
		pos := Position{TileX: 12, TileY: 30, TileBaseZ: 4, TrackAndDirection: 9, SubPosition: 3}
		w.PlaceDown(train(t, w, head), pos)
		free := w.Pool.FreeCount()

		failAfter(w, k)
		_, _, err := w.CreateVehicle(FlagApply, objecttest.Carriage, head)
		assert.ErrorIs(t, err, entity.ErrPoolExhausted)
		assert.Equal(t, free, w.Pool.FreeCount())

		tr := train(t, w, head)
		assert.Len(t, kinds(tr), 7)
		assert.Equal(t, tr.Tail.ID, tr.LastComponent().Vehicle().NextCarID)
		assert.Equal(t, pos, tr.Head.Position())
		assert.Equal(t, StatusStopped, tr.Head.Status)
	}
}

func TestAddCarKeepsPosition(t *testing.T) {
	w := newTestWorld(t)
	head := build(t, w, objecttest.Locomotive)
	pos := Position{TileX: 5, TileY: 6, TileBaseZ: 2, TrackAndDirection: 1, SubPosition: 0}
	w.PlaceDown(train(t, w, head), pos)

	_, _, err := w.CreateVehicle(FlagApply, objecttest.Carriage, head)
	require.NoError(t, err)

	tr := train(t, w, head)
	for c := range tr.All() {
		assert.Equal(t, int16(5), c.Vehicle().TileX)
		assert.Equal(t, int16(6), c.Entity().Y)
		assert.Equal(t, int16(2*SmallZStep), c.Entity().Z)
	}
	assert.Equal(t, StatusStopped, tr.Head.Status)
}

func TestCreateBaseVehicleWithThreeFreeSlots(t *testing.T) {
	w := newTestWorld(t)
	for w.Pool.FreeCount() > 3 {
		_, err := w.Pool.Allocate(&entity.Misc{Base: entity.Base{BaseKind: entity.KindEffect}})
		require.NoError(t, err)
	}

	_, err := w.createBaseVehicle(object.ModeRail, object.TypeTrain, 0)
	assert.ErrorIs(t, err, entity.ErrPoolExhausted)
	assert.Equal(t, 3, w.Pool.FreeCount())
	assert.Equal(t, 0, w.Orders.Len())
	assert.Equal(t, 0, w.Routing.InUse())
}

func TestCreateNewVehicleNeedsRoomForACar(t *testing.T) {
	w := newTestWorld(t)
	for w.Pool.FreeCount() > BaseRecords+MaxRecordsPerCar-1 {
		_, err := w.Pool.Allocate(&entity.Misc{Base: entity.Base{BaseKind: entity.KindEffect}})
		require.NoError(t, err)
	}
	_, _, err := w.CreateVehicle(FlagApply, objecttest.Locomotive, entity.Null)
	assert.ErrorIs(t, err, entity.ErrPoolExhausted)
}

func TestOrdinals(t *testing.T) {
	w := newTestWorld(t)
	var heads []entity.ID
	for range 4 {
		heads = append(heads, build(t, w, objecttest.Locomotive))
	}
	var got []int16
	for _, h := range heads {
		got = append(got, train(t, w, h).Head.Ordinal)
	}
	if want := []int16{1, 2, 3, 4}; !cmp.Equal(want, got) {
		t.Errorf("Diff: %v", cmp.Diff(want, got))
	}

	require.NoError(t, w.DeleteVehicle(heads[1]))
	reused := build(t, w, objecttest.Locomotive)
	assert.Equal(t, int16(2), train(t, w, reused).Head.Ordinal)

	// other types and owners count separately
	bus := build(t, w, objecttest.Bus)
	assert.Equal(t, int16(1), train(t, w, bus).Head.Ordinal)
	w.UpdatingCompany = 1
	rival := build(t, w, objecttest.Locomotive)
	assert.Equal(t, int16(1), train(t, w, rival).Head.Ordinal)
}

func TestCargoSlots(t *testing.T) {
	w := newTestWorld(t)
	head := build(t, w, objecttest.Locomotive, objecttest.Carriage)
	tests := []struct {
		name      string
		head      entity.ID
		car       int
		secondary []uint8
		primary   []uint8
	}{
		{"locomotive", head, 0, []uint8{NullCargoType}, []uint8{NullCargoType}},
		{"carriage", head, 1, []uint8{1, NullCargoType}, []uint8{0, NullCargoType}},
	}
	cars := func(h entity.ID) []Car {
		var out []Car
		for car := range train(t, w, h).Cars() {
			out = append(out, car)
		}
		return out
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			car := cars(tc.head)[tc.car]
			var secondary, primary []uint8
			for cc := range car.Components() {
				secondary = append(secondary, cc.Front.SecondaryCargo.Type)
				primary = append(primary, cc.Body.PrimaryCargo.Type)
				assert.Equal(t, NullCargoType, cc.Back.SecondaryCargo.Type)
			}
			if !cmp.Equal(tc.secondary, secondary) {
				t.Errorf("secondary Diff: %v", cmp.Diff(tc.secondary, secondary))
			}
			if !cmp.Equal(tc.primary, primary) {
				t.Errorf("primary Diff: %v", cmp.Diff(tc.primary, primary))
			}
		})
	}

	carriage := cars(head)[1]
	assert.Equal(t, Cargo{AcceptedTypes: 1<<1 | 1<<3, Type: 1, MaxQty: 10}, carriage.Front.SecondaryCargo)
	assert.Equal(t, Cargo{AcceptedTypes: 1, Type: 0, MaxQty: 40}, carriage.Body.PrimaryCargo)
}

func TestBusCargoOnBodyOnly(t *testing.T) {
	w := newTestWorld(t)
	head := build(t, w, objecttest.Bus)
	for car := range train(t, w, head).Cars() {
		assert.Equal(t, NullCargoType, car.Front.SecondaryCargo.Type)
		assert.Equal(t, uint8(0), car.Body.PrimaryCargo.Type)
		assert.Equal(t, uint8(30), car.Body.PrimaryCargo.MaxQty)
	}
}

func TestReliability(t *testing.T) {
	tests := []struct {
		year uint16
		want uint16
	}{
		{1950, 200*256 + 255},
		{1952, 200*256 + 255},
		{1953, 200*256 - 200*256/8 + 255},
		{1954, 44800 - 44800/8 + 255},
		{1990, 44800 - 44800/8 + 255},
	}
	for _, tc := range tests {
		w := newTestWorld(t)
		w.Year = tc.year
		head := build(t, w, objecttest.Locomotive)
		for car := range train(t, w, head).Cars() {
			assert.Equal(t, tc.want, car.Front.Reliability, "year %d", tc.year)
			assert.Equal(t, uint16(0), car.Back.Reliability)
		}
		assert.Equal(t, uint8(tc.want/256), train(t, w, head).Veh2.Reliability)
	}
}

func TestReliabilityScenario(t *testing.T) {
	w := newTestWorld(t)
	w.Year = 1953
	head := build(t, w, objecttest.Carriage)

	base := int32(200 * 256)
	want := uint16(base - base/8 + 255)
	for car := range train(t, w, head).Cars() {
		for cc := range car.Components() {
			assert.Equal(t, want, cc.Front.Reliability)
		}
	}
}

func TestBreakdownTimeout(t *testing.T) {
	w := newTestWorld(t)
	prng := economy.NewPrng(w.Prng.S0, w.Prng.S1)
	head := build(t, w, objecttest.Locomotive)

	prng.Next() // Var44 of the front bogie
	factor := int32(45055 / 256)
	factor *= factor
	factor /= 16
	jitter := (prng.NextN(65535) * (factor / 2)) / 65536
	want := uint16(factor - factor/4 + jitter)

	for car := range train(t, w, head).Cars() {
		assert.Equal(t, want, car.Front.TimeoutToBreakdown)
		assert.GreaterOrEqual(t, car.Front.TimeoutToBreakdown, uint16(4))
	}
}

func TestBreakdownTimeoutZeroReliability(t *testing.T) {
	w := newTestWorld(t)
	assert.Equal(t, uint16(0xFFFF), w.breakdownTimeout(0))
	// small reliabilities are floored
	assert.Equal(t, uint16(4), w.breakdownTimeout(255))
}

func TestRefundCost(t *testing.T) {
	w := newTestWorld(t)
	head := build(t, w, objecttest.Locomotive, objecttest.Carriage)
	tr := train(t, w, head)

	loco := int32(800 * 1024 >> 6)
	carriage := int32(400 * 1024 >> 6)
	var fronts []uint32
	for car := range tr.Cars() {
		for cc := range car.Components() {
			fronts = append(fronts, cc.Front.RefundCost)
			assert.Equal(t, uint32(0), cc.Back.RefundCost)
		}
	}
	want := []uint32{uint32(loco - loco/8), uint32(carriage - carriage/8), uint32(carriage - carriage/8)}
	if !cmp.Equal(want, fronts) {
		t.Errorf("Diff: %v", cmp.Diff(want, fronts))
	}
	assert.Equal(t, want[0]+want[1], tr.Head.TotalRefundCost)
}

func TestColours(t *testing.T) {
	w := newTestWorld(t)
	p, _ := w.Companies.Get(0)
	override := company.ColourScheme{Primary: 20, Secondary: 21}
	require.NoError(t, p.SetVehicleColours(objecttest.CarriageObject().ColourType, override))

	head := build(t, w, objecttest.Locomotive, objecttest.Carriage)
	var got []company.ColourScheme
	for car := range train(t, w, head).Cars() {
		for cc := range car.Components() {
			assert.Equal(t, cc.Front.Colours, cc.Body.Colours)
			got = append(got, cc.Body.Colours)
		}
	}
	want := []company.ColourScheme{p.MainColours, override, override}
	if !cmp.Equal(want, got) {
		t.Errorf("Diff: %v", cmp.Diff(want, got))
	}
}

func TestBodyFlags(t *testing.T) {
	w := newTestWorld(t)
	carriage := build(t, w, objecttest.Carriage)
	var reversed []bool
	var sprites []uint8
	for car := range train(t, w, carriage).Cars() {
		for cc := range car.Components() {
			reversed = append(reversed, cc.Body.Flags&Flags38IsReversed != 0)
			sprites = append(sprites, cc.Body.ObjectSpriteType)
			assert.Equal(t, Flags38IsReversed, cc.Back.Flags)
			assert.Equal(t, Flags38(0), cc.Front.Flags)
			assert.NotZero(t, cc.Body.Flags&Flags38Unk0)
		}
	}
	if want := []bool{false, true}; !cmp.Equal(want, reversed) {
		t.Errorf("Diff: %v", cmp.Diff(want, reversed))
	}
	if want := []uint8{0, 1}; !cmp.Equal(want, sprites) {
		t.Errorf("Diff: %v", cmp.Diff(want, sprites))
	}

	tram := build(t, w, objecttest.Tram)
	var hidden []bool
	for car := range train(t, w, tram).Cars() {
		for cc := range car.Components() {
			hidden = append(hidden, cc.Body.Flags&Flags38Unk3 != 0)
		}
	}
	if want := []bool{true, false, true}; !cmp.Equal(want, hidden) {
		t.Errorf("Diff: %v", cmp.Diff(want, hidden))
	}
}

func TestVehicleLimits(t *testing.T) {
	t.Run("ai cap", func(t *testing.T) {
		w := newTestWorld(t)
		w.MaxAIVehicles = 0
		w.UpdatingCompany = 1
		build(t, w, objecttest.Locomotive)
		free := w.Pool.FreeCount()
		_, _, err := w.CreateVehicle(FlagApply, objecttest.Locomotive, entity.Null)
		assert.ErrorIs(t, err, ErrTooManyVehiclesForOwner)
		assert.Equal(t, free, w.Pool.FreeCount())

		// human companies are not capped
		w.UpdatingCompany = 0
		build(t, w, objecttest.Locomotive)
	})
	t.Run("order table", func(t *testing.T) {
		cfg := testConfig()
		cfg.OrdersCapacity = 1
		w := newTestWorldConfig(t, cfg)
		build(t, w, objecttest.Locomotive)
		free := w.Pool.FreeCount()
		_, _, err := w.CreateVehicle(FlagApply, objecttest.Locomotive, entity.Null)
		assert.ErrorIs(t, err, ErrOrderTableFull)
		assert.Equal(t, free, w.Pool.FreeCount())
		assert.Equal(t, 1, w.Routing.InUse())
	})
	t.Run("routing", func(t *testing.T) {
		cfg := testConfig()
		cfg.RoutingCapacity = 1
		w := newTestWorldConfig(t, cfg)
		build(t, w, objecttest.Locomotive)
		_, _, err := w.CreateVehicle(FlagApply, objecttest.Locomotive, entity.Null)
		assert.ErrorIs(t, err, ErrRoutingTableFull)
		assert.Equal(t, 1, w.Orders.Len())
	})
	t.Run("locked", func(t *testing.T) {
		w := newTestWorld(t)
		p, _ := w.Companies.Get(0)
		delete(p.UnlockedVehicles, objecttest.Ship)
		_, _, err := w.CreateVehicle(FlagApply, objecttest.Ship, entity.Null)
		assert.ErrorIs(t, err, ErrVehicleLocked)

		w.BuildLocked = true
		build(t, w, objecttest.Ship)
	})
	t.Run("unknown object", func(t *testing.T) {
		w := newTestWorld(t)
		_, _, err := w.CreateVehicle(FlagApply, 99, entity.Null)
		assert.ErrorIs(t, err, ErrUnknownObject)
	})
}
