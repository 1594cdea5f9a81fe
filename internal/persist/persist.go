// Package persist is the versioned local-storage layer: load-on-boot
// with legacy migration, debounced autosave with a heartbeat, quota
// fallback, and the coarse day-rollover poll. It observes store state;
// it never mutates it except by dispatching rollover actions.
package persist

import (
	"fmt"
	"sync"
	"time"

	"github.com/pedrohrf/ironlog/internal/logger"
	"github.com/pedrohrf/ironlog/internal/models"
)

// Load reconstructs the boot state. Order: versioned snapshot, then
// legacy flat files, then the hard-coded initial state. Storage
// failures degrade to the initial state rather than surfacing; nothing
// here is allowed to take the app down.
func Load(backend Backend, dataDir string, today string) models.WorkoutState {
	state, err := load(backend, dataDir)
	if err != nil {
		logger.Error("failed to load state, starting fresh", "error", err)
		state = models.NewInitialState()
	}

	state.EnsureMaps()
	// Ephemeral fields never survive a reload; mid-exercise recovery
	// goes through ExerciseProgress instead.
	state.ResetEphemeral()

	if state.LastSeenDate == "" {
		state.LastSeenDate = today
	}
	return state
}

func load(backend Backend, dataDir string) (models.WorkoutState, error) {
	payload, err := backend.Read()
	if err != nil {
		return models.WorkoutState{}, err
	}

	if payload != nil {
		env, ok, err := DecodeEnvelope(payload)
		if err != nil {
			logger.Warn("snapshot unparseable, trying legacy migration", "error", err)
		} else if !ok {
			logger.Warn("snapshot schema version mismatch, trying legacy migration",
				"found", env.Version, "want", SchemaVersion)
		} else {
			return env.Data, nil
		}
	}

	if state, found := migrateLegacy(dataDir); found {
		return state, nil
	}
	return models.NewInitialState(), nil
}

// Saver coalesces bursts of state changes into debounced writes, backed
// by a heartbeat against missed flushes. A save request arriving while
// one is in flight is queued, never dropped.
type Saver struct {
	backend Backend
	limits  TrimLimits

	debounce  time.Duration
	heartbeat time.Duration

	// OnError surfaces a save failure after the trimmed retry also
	// failed. Called outside the saver lock; must not block.
	OnError func(error)

	mu       sync.Mutex
	pending  *models.WorkoutState // snapshot at schedule time
	timer    *time.Timer
	inFlight bool
	queued   bool
	stop     chan struct{}
	stopOnce sync.Once

	now func() time.Time
}

func NewSaver(backend Backend, debounce, heartbeat time.Duration, limits TrimLimits) *Saver {
	return &Saver{
		backend:   backend,
		limits:    limits,
		debounce:  debounce,
		heartbeat: heartbeat,
		stop:      make(chan struct{}),
		now:       time.Now,
	}
}

// Start launches the heartbeat. The heartbeat only writes when a
// pending snapshot exists, so an idle app does not churn the disk.
func (s *Saver) Start() {
	go func() {
		ticker := time.NewTicker(s.heartbeat)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.flushPending()
			}
		}
	}()
}

// Schedule notes the latest state and (re)arms the debounce timer. The
// eventual write serializes the snapshot captured here; changes that
// arrive later belong to the next cycle.
func (s *Saver) Schedule(state models.WorkoutState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := state
	s.pending = &st

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.flushPending)
}

// Flush writes any pending snapshot immediately. Used on shutdown (the
// page-hide/unload equivalent).
func (s *Saver) Flush() {
	s.flushPending()
}

// Close stops the heartbeat and flushes.
func (s *Saver) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
	s.flushPending()
}

func (s *Saver) flushPending() {
	s.mu.Lock()
	if s.pending == nil {
		s.mu.Unlock()
		return
	}
	if s.inFlight {
		// Queue rather than drop; the in-flight save will rerun.
		s.queued = true
		s.mu.Unlock()
		return
	}
	s.inFlight = true
	state := *s.pending
	s.pending = nil
	s.mu.Unlock()

	err := s.write(state)

	s.mu.Lock()
	s.inFlight = false
	rerun := s.queued || s.pending != nil
	s.queued = false
	s.mu.Unlock()

	if err != nil {
		logger.Error("autosave failed", "error", err)
		if s.OnError != nil {
			s.OnError(err)
		}
	}
	if rerun {
		s.flushPending()
	}
}

// write attempts a full save, falling back once to a trimmed payload
// when storage rejects the write (the quota-exhaustion path).
func (s *Saver) write(state models.WorkoutState) error {
	payload, err := EncodeEnvelope(state, s.now())
	if err != nil {
		return err
	}
	if err := s.backend.Write(payload); err == nil {
		return nil
	} else {
		logger.Warn("snapshot write failed, retrying with trimmed payload", "error", err)
	}

	trimmed := Trim(state, s.limits)
	payload, err = EncodeEnvelope(trimmed, s.now())
	if err != nil {
		return err
	}
	if err := s.backend.Write(payload); err != nil {
		return fmt.Errorf("trimmed retry also failed: %w", err)
	}
	logger.Info("saved trimmed snapshot",
		"sessions", len(trimmed.Sessions), "logged", len(trimmed.LoggedExercises))
	return nil
}
