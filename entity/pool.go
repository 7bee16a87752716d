package entity

import (
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/rs/zerolog"
)

var (
	ErrPoolExhausted = errors.New("too many objects in game")
	ErrStaleHandle   = errors.New("stale entity handle")
)

// Handle is a weak reference to a record. It stops resolving once the slot
// it points at has been freed, even if the slot was reused since.
type Handle struct {
	ID  ID
	Gen uint32
}

var NullHandle = Handle{ID: Null}

// Pool is a fixed capacity array of entity slots. All methods are safe for
// concurrent use; callers doing several dependent allocations must still
// serialize against each other (see CheckCapacity).
type Pool struct {
	mu    sync.Mutex
	slots []Entity
	gens  []uint32
	free  []ID // stack, top is the next slot handed out

	Logger zerolog.Logger
}

func NewPool(capacity int, log zerolog.Logger) *Pool {
	if capacity <= 0 || capacity > int(Null) {
		panic(fmt.Sprintf("entity pool capacity %d out of range", capacity))
	}
	p := &Pool{
		slots:  make([]Entity, capacity),
		gens:   make([]uint32, capacity),
		Logger: log,
	}
	p.resetFree()
	return p
}

func (p *Pool) resetFree() {
	p.free = p.free[:0]
	for i := len(p.slots) - 1; i >= 0; i-- {
		if p.slots[i] == nil {
			p.free = append(p.free, ID(i))
		}
	}
}

func (p *Pool) Capacity() int {
	return len(p.slots)
}

func (p *Pool) FreeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// CheckCapacity reports whether n records can be allocated right now. It is
// called before multi-record operations so they fail before touching the pool.
func (p *Pool) CheckCapacity(n int) bool {
	return p.FreeCount() >= n
}

// Allocate stores e in a free slot and sets its id.
func (p *Pool) Allocate(e Entity) (Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) == 0 {
		return NullHandle, ErrPoolExhausted
	}
	id := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	e.Entity().ID = id
	p.slots[id] = e
	return Handle{ID: id, Gen: p.gens[id]}, nil
}

// Free releases the slot. Freeing an empty slot is a no-op.
func (p *Pool) Free(id ID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(id) >= len(p.slots) || p.slots[id] == nil {
		p.Logger.Warn().Uint16("id", uint16(id)).Msg("free of empty entity slot")
		return
	}
	p.slots[id] = nil
	p.gens[id]++
	p.free = append(p.free, id)
}

// Get returns the record in slot id, or nil when the slot is empty.
func (p *Pool) Get(id ID) Entity {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(id) >= len(p.slots) {
		return nil
	}
	return p.slots[id]
}

// As returns the record in slot id if it has type T.
func As[T Entity](p *Pool, id ID) (T, bool) {
	t, ok := p.Get(id).(T)
	return t, ok
}

func (p *Pool) HandleOf(id ID) Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(id) >= len(p.slots) || p.slots[id] == nil {
		return NullHandle
	}
	return Handle{ID: id, Gen: p.gens[id]}
}

// Lookup resolves a handle taken earlier with Allocate or HandleOf.
func (p *Pool) Lookup(h Handle) (Entity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(h.ID) >= len(p.slots) || p.slots[h.ID] == nil || p.gens[h.ID] != h.Gen {
		return nil, fmt.Errorf("entity %d gen %d: %w", h.ID, h.Gen, ErrStaleHandle)
	}
	return p.slots[h.ID], nil
}

// All yields the occupied slots in id order. The set of records is taken
// when iteration starts.
func (p *Pool) All() iter.Seq[Entity] {
	p.mu.Lock()
	live := make([]Entity, 0, len(p.slots)-len(p.free))
	for _, e := range p.slots {
		if e != nil {
			live = append(live, e)
		}
	}
	p.mu.Unlock()
	return func(yield func(Entity) bool) {
		for _, e := range live {
			if !yield(e) {
				return
			}
		}
	}
}

// Restore replaces the pool content with records, which must be indexed by
// slot id (nil for free slots) and match the pool capacity. Generations are
// kept so handles taken before the restore go stale.
func (p *Pool) Restore(records []Entity) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(records) != len(p.slots) {
		return fmt.Errorf("restore of %d records into pool of %d", len(records), len(p.slots))
	}
	for i, e := range records {
		if e != nil && e.Entity().ID != ID(i) {
			return fmt.Errorf("record in slot %d has id %d", i, e.Entity().ID)
		}
	}
	for i := range p.slots {
		p.slots[i] = records[i]
		p.gens[i]++
	}
	p.resetFree()
	return nil
}
