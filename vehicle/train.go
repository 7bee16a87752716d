package vehicle

import (
	"fmt"
	"iter"

	"locoveh/entity"
)

// CarComponent is one segment of a car.
type CarComponent struct {
	Front *Bogie
	Back  *Bogie
	Body  *Body
}

// Car is the first segment of a car; Components walks all of its segments.
type Car struct {
	CarComponent
	train *Train
}

// Train is a view over the chain of records starting at a head. Cars and
// components are read from the pool on every iteration, so a view stays
// usable after cars are added, and a new view can be built at any time.
//
// A chain that does not have the expected shape ends the iteration early;
// Err reports what was found. With Strict set the view panics instead.
type Train struct {
	Head *Head
	Veh1 *Vehicle1
	Veh2 *Vehicle2
	Tail *Tail

	Strict bool

	pool *entity.Pool
	err  error
}

func NewTrain(pool *entity.Pool, headID entity.ID) (*Train, error) {
	head, ok := entity.As[*Head](pool, headID)
	if !ok {
		return nil, fmt.Errorf("entity %d is not a vehicle head: %w", headID, ErrNoVehicle)
	}
	t := &Train{Head: head, pool: pool}
	if t.Veh1, ok = entity.As[*Vehicle1](pool, head.NextCarID); !ok {
		return nil, fmt.Errorf("head %d: second record %d is not vehicle1: %w", headID, head.NextCarID, ErrMalformedChain)
	}
	if t.Veh2, ok = entity.As[*Vehicle2](pool, t.Veh1.NextCarID); !ok {
		return nil, fmt.Errorf("head %d: third record %d is not vehicle2: %w", headID, t.Veh1.NextCarID, ErrMalformedChain)
	}
	// the tail is the record after the last segment
	id := t.Veh2.NextCarID
	for range pool.Capacity() {
		switch r := pool.Get(id).(type) {
		case *Tail:
			t.Tail = r
			return t, nil
		case Component:
			id = r.Vehicle().NextCarID
		default:
			return nil, fmt.Errorf("head %d: record %d is not a vehicle component: %w", headID, id, ErrMalformedChain)
		}
	}
	return nil, fmt.Errorf("head %d: chain does not end: %w", headID, ErrMalformedChain)
}

// Err returns the first chain error hit by an iteration.
func (t *Train) Err() error {
	return t.err
}

func (t *Train) fail(err error) {
	if t.Strict {
		panic(err)
	}
	if t.err == nil {
		t.err = err
	}
}

// component reads the segment starting at id. done is true at the tail or
// when the chain is malformed.
func (t *Train) component(id entity.ID) (cc CarComponent, done bool) {
	rec := t.pool.Get(id)
	if _, ok := rec.(*Tail); ok {
		return cc, true
	}
	var ok bool
	if cc.Front, ok = rec.(*Bogie); !ok {
		t.fail(fmt.Errorf("record %d: expected front bogie: %w", id, ErrMalformedChain))
		return cc, true
	}
	if cc.Back, ok = entity.As[*Bogie](t.pool, cc.Front.NextCarID); !ok {
		t.fail(fmt.Errorf("record %d: expected back bogie: %w", cc.Front.NextCarID, ErrMalformedChain))
		return cc, true
	}
	if cc.Body, ok = entity.As[*Body](t.pool, cc.Back.NextCarID); !ok {
		t.fail(fmt.Errorf("record %d: expected body: %w", cc.Back.NextCarID, ErrMalformedChain))
		return cc, true
	}
	return cc, false
}

// Cars yields the cars from front to back.
func (t *Train) Cars() iter.Seq[Car] {
	return func(yield func(Car) bool) {
		id := t.Veh2.NextCarID
		for {
			cc, done := t.component(id)
			if done {
				return
			}
			if KindOf(cc.Body) != KindBodyStart {
				t.fail(fmt.Errorf("record %d: car starts with %s: %w", cc.Body.ID, KindOf(cc.Body), ErrMalformedChain))
				return
			}
			if !yield(Car{CarComponent: cc, train: t}) {
				return
			}
			last := cc
			for {
				next, done := t.component(last.Body.NextCarID)
				if done {
					return
				}
				if KindOf(next.Body) == KindBodyStart {
					break
				}
				last = next
			}
			id = last.Body.NextCarID
		}
	}
}

// Train returns the vehicle the car belongs to.
func (c Car) Train() *Train {
	return c.train
}

// Components yields the segments of the car.
func (c Car) Components() iter.Seq[CarComponent] {
	return func(yield func(CarComponent) bool) {
		cc := c.CarComponent
		for {
			if !yield(cc) {
				return
			}
			next, done := c.train.component(cc.Body.NextCarID)
			if done || KindOf(next.Body) == KindBodyStart {
				return
			}
			cc = next
		}
	}
}

// All yields every record of the chain from head to tail.
func (t *Train) All() iter.Seq[Component] {
	return func(yield func(Component) bool) {
		id := t.Head.ID
		for range t.pool.Capacity() {
			c, ok := t.pool.Get(id).(Component)
			if !ok {
				t.fail(fmt.Errorf("record %d: not a vehicle component: %w", id, ErrMalformedChain))
				return
			}
			if !yield(c) {
				return
			}
			if _, ok := c.(*Tail); ok {
				return
			}
			id = c.Vehicle().NextCarID
		}
		t.fail(fmt.Errorf("head %d: chain does not end: %w", t.Head.ID, ErrMalformedChain))
	}
}

func (t *Train) CarCount() int {
	n := 0
	for range t.Cars() {
		n++
	}
	return n
}

// LastComponent returns the record just before the tail: the body of the
// last segment, or vehicle2 when there are no cars.
func (t *Train) LastComponent() Component {
	var last Component = t.Veh2
	for car := range t.Cars() {
		for cc := range car.Components() {
			last = cc.Body
		}
	}
	return last
}
