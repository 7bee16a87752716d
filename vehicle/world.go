package vehicle

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"locoveh/company"
	"locoveh/config"
	"locoveh/economy"
	"locoveh/entity"
	"locoveh/object"
)

// World holds the state vehicle construction works on. Commands such as
// CreateVehicle and DeleteVehicle take the write lock themselves; code
// that reads chains from another goroutine, like a render pass, wraps its
// work in Read.
type World struct {
	mu sync.RWMutex

	Pool      *entity.Pool
	Objects   object.Store
	Companies *company.Registry
	Economy   *economy.Economy
	Prng      *economy.Prng
	Orders    *OrderTable
	Routing   *RoutingTable

	Year uint16
	Day  uint32
	// UpdatingCompany owns everything the current command builds.
	UpdatingCompany company.ID

	MaxAIVehicles int
	MaxRoadLength int
	BuildLocked   bool
	// Strict makes chain traversal panic on a malformed chain.
	Strict bool

	Logger zerolog.Logger

	// allocHook runs before every allocation made by construction.
	allocHook func() error
}

func NewWorld(cfg config.Config, objects object.Store, companies *company.Registry, log zerolog.Logger) *World {
	return &World{
		Pool:          entity.NewPool(cfg.PoolCapacity, log),
		Objects:       objects,
		Companies:     companies,
		Economy:       economy.New(cfg.BaseCostFactor),
		Prng:          economy.NewPrng(cfg.Seed0, cfg.Seed1),
		Orders:        NewOrderTable(cfg.OrdersCapacity),
		Routing:       NewRoutingTable(cfg.RoutingCapacity),
		MaxAIVehicles: cfg.MaxAIVehicles,
		MaxRoadLength: cfg.MaxRoadLength,
		BuildLocked:   cfg.BuildLocked,
		Strict:        cfg.StrictChain,
		Logger:        log,
	}
}

// Read runs fn while holding the read lock.
func (w *World) Read(fn func() error) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return fn()
}

// Update runs fn while holding the write lock.
func (w *World) Update(fn func() error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn()
}

// Train returns a view of the vehicle with the given head. A head id that
// no longer names a head fails with ErrNoVehicle; in strict mode only a
// broken chain behind a live head panics.
func (w *World) Train(head entity.ID) (*Train, error) {
	t, err := NewTrain(w.Pool, head)
	if err != nil {
		if w.Strict && errors.Is(err, ErrMalformedChain) {
			panic(err)
		}
		return nil, err
	}
	t.Strict = w.Strict
	return t, nil
}

// Heads returns every vehicle head in the pool in id order.
func (w *World) Heads() []*Head {
	var heads []*Head
	for e := range w.Pool.All() {
		if h, ok := e.(*Head); ok {
			heads = append(heads, h)
		}
	}
	return heads
}

func (w *World) allocate(c Component) error {
	if w.allocHook != nil {
		if err := w.allocHook(); err != nil {
			return err
		}
	}
	_, err := w.Pool.Allocate(c)
	return err
}

func (w *World) vehicleObject(id uint16) (*object.Vehicle, error) {
	obj, ok := w.Objects.Vehicle(id)
	if !ok {
		return nil, ErrUnknownObject
	}
	return obj, nil
}
