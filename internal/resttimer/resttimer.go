// Package resttimer runs the between-set countdown. The manager is a
// process-wide singleton owned by the application, not by any view:
// navigating away from the execution screen never cancels it.
package resttimer

import (
	"sync"
	"time"

	"github.com/pedrohrf/ironlog/internal/logger"
)

// Descriptor describes the single countdown the manager may hold.
type Descriptor struct {
	ExerciseID   string
	ExerciseName string
	CurrentSet   int
	TotalSets    int
	RestSeconds  int

	// OnComplete fires exactly once, on natural expiry or skip.
	OnComplete func()
	// OnReturn navigates back to the in-progress exercise. Invoked by
	// the UI through Return; the countdown is unaffected.
	OnReturn func()
}

// Snapshot is a point-in-time view of the active countdown.
type Snapshot struct {
	ExerciseID   string
	ExerciseName string
	CurrentSet   int
	TotalSets    int
	RestSeconds  int
	Remaining    int
	StartedAt    time.Time
}

// Warning reports whether the countdown is in its final stretch. This
// is derived state; nothing stores it.
func (s Snapshot) Warning() bool {
	return s.Remaining > 0 && s.Remaining <= 10
}

type active struct {
	desc      Descriptor
	remaining int
	startedAt time.Time
	stop      chan struct{}
	fired     bool
}

// Manager holds at most one active timer. Starting a new one
// supersedes the previous countdown without firing its completion.
type Manager struct {
	mu  sync.Mutex
	cur *active

	subMu  sync.Mutex
	subs   map[int]func(Snapshot, bool)
	nextID int

	// tick is overridable in tests.
	tick time.Duration
}

func NewManager() *Manager {
	return &Manager{
		subs: map[int]func(Snapshot, bool){},
		tick: time.Second,
	}
}

// Start begins a countdown for the descriptor, superseding any active
// one. A superseded timer is silently discarded; its OnComplete never
// fires.
func (m *Manager) Start(d Descriptor) {
	m.mu.Lock()
	if m.cur != nil {
		close(m.cur.stop)
	}
	a := &active{
		desc:      d,
		remaining: d.RestSeconds,
		startedAt: time.Now(),
		stop:      make(chan struct{}),
	}
	m.cur = a
	m.mu.Unlock()

	logger.Debug("rest timer started",
		"exercise", d.ExerciseName, "seconds", d.RestSeconds)
	m.notify()

	go m.run(a)
}

func (m *Manager) run(a *active) {
	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()

	for {
		select {
		case <-a.stop:
			return
		case <-ticker.C:
			if m.decrement(a) {
				return
			}
		}
	}
}

// decrement advances the countdown by one second and reports whether
// the timer is finished. Completion is guarded so repeated
// zero-crossings cannot double-fire.
func (m *Manager) decrement(a *active) bool {
	m.mu.Lock()
	if m.cur != a || a.fired {
		m.mu.Unlock()
		return true
	}
	a.remaining--
	done := a.remaining <= 0
	var onComplete func()
	if done {
		a.fired = true
		onComplete = a.desc.OnComplete
		m.cur = nil
	}
	m.mu.Unlock()

	if done && onComplete != nil {
		onComplete()
	}
	m.notify()
	return done
}

// Skip immediately completes the active countdown. There is no pause
// and no silent cancel; the only ways out are skip and natural expiry.
func (m *Manager) Skip() {
	m.mu.Lock()
	a := m.cur
	if a == nil || a.fired {
		m.mu.Unlock()
		return
	}
	a.fired = true
	a.remaining = 0
	close(a.stop)
	onComplete := a.desc.OnComplete
	m.cur = nil
	m.mu.Unlock()

	logger.Debug("rest timer skipped", "exercise", a.desc.ExerciseName)
	if onComplete != nil {
		onComplete()
	}
	m.notify()
}

// Return invokes the active timer's return-to-exercise affordance.
// The countdown keeps running.
func (m *Manager) Return() {
	m.mu.Lock()
	var onReturn func()
	if m.cur != nil {
		onReturn = m.cur.desc.OnReturn
	}
	m.mu.Unlock()

	if onReturn != nil {
		onReturn()
	}
}

// Active returns a snapshot of the running countdown, if any.
func (m *Manager) Active() (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cur == nil {
		return Snapshot{}, false
	}
	return snapshotOf(m.cur), true
}

// Subscribe registers an observer notified on every timer transition
// (start, tick, skip, expiry). The bool is false once the slot is
// empty.
func (m *Manager) Subscribe(fn func(Snapshot, bool)) func() {
	m.subMu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

func (m *Manager) notify() {
	snap, ok := m.Active()

	m.subMu.Lock()
	subs := make([]func(Snapshot, bool), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.subMu.Unlock()

	for _, fn := range subs {
		fn(snap, ok)
	}
}

func snapshotOf(a *active) Snapshot {
	return Snapshot{
		ExerciseID:   a.desc.ExerciseID,
		ExerciseName: a.desc.ExerciseName,
		CurrentSet:   a.desc.CurrentSet,
		TotalSets:    a.desc.TotalSets,
		RestSeconds:  a.desc.RestSeconds,
		Remaining:    a.remaining,
		StartedAt:    a.startedAt,
	}
}
