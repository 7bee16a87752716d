package vehicle

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"locoveh/company"
	"locoveh/config"
	"locoveh/entity"
	"locoveh/object/objecttest"
)

func testConfig() config.Config {
	return config.Config{
		PoolCapacity:    128,
		OrdersCapacity:  64,
		RoutingCapacity: 16,
		MaxAIVehicles:   500,
		MaxRoadLength:   176,
		StrictChain:     true,
		ReverseArcStart: 8,
		ReverseArcEnd:   40,
		InlineYaw:       40,
		InlineBaseline:  19,
		BaseCostFactor:  1024,
		Seed0:           0x1234567F,
		Seed1:           0x789ABCDE,
	}
}

func unlockAll() map[uint16]bool {
	unlocked := map[uint16]bool{}
	for _, id := range objecttest.Catalogue().VehicleIDs() {
		unlocked[id] = true
	}
	return unlocked
}

func newTestWorldConfig(t *testing.T, cfg config.Config) *World {
	t.Helper()
	companies := company.NewRegistry()
	require.NoError(t, companies.Add(&company.Company{
		ID:               0,
		Name:             "Player",
		Human:            true,
		MainColours:      company.ColourScheme{Primary: 4, Secondary: 7},
		UnlockedVehicles: unlockAll(),
	}))
	require.NoError(t, companies.Add(&company.Company{
		ID:               1,
		Name:             "Rival",
		MainColours:      company.ColourScheme{Primary: 9, Secondary: 2},
		UnlockedVehicles: unlockAll(),
	}))
	w := NewWorld(cfg, objecttest.Catalogue(), companies, zerolog.Nop())
	w.Year = 1953
	w.Day = 700000
	return w
}

func newTestWorld(t *testing.T) *World {
	return newTestWorldConfig(t, testConfig())
}

// build creates a vehicle from the first object and appends the others.
func build(t *testing.T, w *World, objects ...uint16) entity.ID {
	t.Helper()
	head := entity.Null
	for _, obj := range objects {
		_, id, err := w.CreateVehicle(FlagApply, obj, head)
		require.NoError(t, err)
		head = id
	}
	return head
}

func train(t *testing.T, w *World, head entity.ID) *Train {
	t.Helper()
	tr, err := w.Train(head)
	require.NoError(t, err)
	return tr
}

// failAfter makes the n+1th following allocation fail.
func failAfter(w *World, n int) {
	calls := 0
	w.allocHook = func() error {
		calls++
		if calls > n {
			return entity.ErrPoolExhausted
		}
		return nil
	}
}
