// Package store owns the whole workout state. All mutation funnels
// through Dispatch and the pure reducer; persistence and timers react
// to the resulting state as subscribers.
package store

import (
	"sync"

	"github.com/pedrohrf/ironlog/internal/logger"
	"github.com/pedrohrf/ironlog/internal/models"
)

// Subscriber observes every state produced by a dispatch.
type Subscriber func(models.WorkoutState)

// Store holds the current state and its observers. It is safe for use
// from the UI goroutine and the background timers.
type Store struct {
	mu    sync.Mutex
	state models.WorkoutState

	subMu  sync.Mutex
	subs   map[int]Subscriber
	nextID int
}

func New(initial models.WorkoutState) *Store {
	initial.EnsureMaps()
	return &Store{
		state: initial,
		subs:  map[int]Subscriber{},
	}
}

// State returns the current state. Top-level collections are shared
// with the store; callers must treat the value as read-only.
func (s *Store) State() models.WorkoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies an action through the reducer and notifies
// subscribers with the resulting state. Transitions are applied
// strictly in dispatch order; subscribers run outside the state lock.
func (s *Store) Dispatch(a Action) models.WorkoutState {
	s.mu.Lock()
	next := Reduce(s.state, a)
	s.state = next
	s.mu.Unlock()

	logger.Debug("dispatched action", "action", a.name())
	s.notify(next)
	return next
}

// Subscribe registers an observer and returns its unsubscribe func.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(state models.WorkoutState) {
	s.subMu.Lock()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
