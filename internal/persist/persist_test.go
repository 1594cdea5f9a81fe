package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedrohrf/ironlog/internal/models"
	"github.com/pedrohrf/ironlog/internal/store"
)

// memBackend is an in-memory Backend with scriptable failures.
type memBackend struct {
	mu       sync.Mutex
	payload  []byte
	writes   int
	failNext int // fail this many upcoming writes
}

func (b *memBackend) Read() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.payload == nil {
		return nil, nil
	}
	return b.payload, nil
}

func (b *memBackend) Write(payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writes++
	if b.failNext > 0 {
		b.failNext--
		return fmt.Errorf("storage quota exceeded")
	}
	b.payload = append([]byte(nil), payload...)
	return nil
}

func (b *memBackend) Close() error { return nil }

func (b *memBackend) writeCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}

func (b *memBackend) stored(t *testing.T) models.WorkoutState {
	t.Helper()
	b.mu.Lock()
	payload := append([]byte(nil), b.payload...)
	b.mu.Unlock()

	env, ok, err := DecodeEnvelope(payload)
	require.NoError(t, err)
	require.True(t, ok)
	return env.Data
}

func sessionAt(id string, start time.Time) models.WorkoutSession {
	return models.WorkoutSession{ID: id, DayID: "day-1", StartTime: start}
}

func TestFileBackendRoundTrip(t *testing.T) {
	backend := NewFileBackend(filepath.Join(t.TempDir(), "state.json"))

	data, err := backend.Read()
	require.NoError(t, err)
	assert.Nil(t, data, "absent snapshot reads as nil, not an error")

	require.NoError(t, backend.Write([]byte(`{"version":"2"}`)))
	data, err = backend.Read()
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"2"}`, string(data))
}

func TestSQLiteBackendRoundTrip(t *testing.T) {
	backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "ironlog.db"))
	require.NoError(t, err)
	defer backend.Close()

	data, err := backend.Read()
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, backend.Write([]byte(`{"version":"2"}`)))
	require.NoError(t, backend.Write([]byte(`{"version":"2","n":2}`)))

	data, err = backend.Read()
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"2","n":2}`, string(data))
}

func TestLoadFreshStart(t *testing.T) {
	state := Load(&memBackend{}, t.TempDir(), "2026-03-14")

	assert.Empty(t, state.Days)
	assert.NotNil(t, state.ExerciseProgress)
	assert.Equal(t, "2026-03-14", state.LastSeenDate)
}

func TestLoadRestoresSnapshotAndResetsEphemeral(t *testing.T) {
	saved := models.NewInitialState()
	saved.LastSeenDate = "2026-03-13"
	saved.Days = []models.WorkoutDay{{ID: "day-1", Name: "Push A"}}
	saved.ExerciseProgress["ex-1"] = models.ExerciseProgress{SavedAt: time.Now()}
	saved.ActiveExercise = "ex-1"
	saved.ActiveExecution = &models.ExerciseExecution{ID: "exec-1"}
	saved.TimerState = &models.RestTimerState{RemainingSeconds: 42}

	payload, err := EncodeEnvelope(saved, time.Now())
	require.NoError(t, err)

	state := Load(&memBackend{payload: payload}, t.TempDir(), "2026-03-14")

	assert.Len(t, state.Days, 1)
	assert.Equal(t, "2026-03-13", state.LastSeenDate)

	// Mid-exercise recovery data survives the reload...
	assert.Contains(t, state.ExerciseProgress, "ex-1")
	// ...but the ephemeral fields never do.
	assert.Empty(t, state.ActiveExercise)
	assert.Nil(t, state.ActiveExecution)
	assert.Nil(t, state.TimerState)
}

func TestLoadRejectsForeignSchemaVersion(t *testing.T) {
	env := Envelope{Version: "1", Data: models.WorkoutState{
		Days: []models.WorkoutDay{{ID: "day-1"}},
	}}
	payload, err := json.Marshal(env)
	require.NoError(t, err)

	state := Load(&memBackend{payload: payload}, t.TempDir(), "2026-03-14")
	assert.Empty(t, state.Days, "a foreign schema version is treated as no state")
}

func TestLoadMigratesLegacyFlatFiles(t *testing.T) {
	dataDir := t.TempDir()

	days := []models.WorkoutDay{{ID: "day-1", Name: "Push A"}}
	logs := []models.LoggedExercise{{ID: "log-1", DefinitionID: "bench"}}
	daysJSON, err := json.Marshal(days)
	require.NoError(t, err)
	logsJSON, err := json.Marshal(logs)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, legacyDaysFile), daysJSON, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, legacyLogsFile), logsJSON, 0600))

	state := Load(&memBackend{}, dataDir, "2026-03-14")
	assert.Len(t, state.Days, 1)
	assert.Len(t, state.LoggedExercises, 1)
}

func TestTrimKeepsMostRecent(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	state := models.NewInitialState()
	for i := 0; i < 5; i++ {
		state.Sessions = append(state.Sessions, sessionAt(fmt.Sprintf("sess-%d", i), base.AddDate(0, 0, i)))
		state.LoggedExercises = append(state.LoggedExercises, models.LoggedExercise{
			ID: fmt.Sprintf("log-%d", i), LoggedAt: base.AddDate(0, 0, i),
		})
	}
	state.Days = []models.WorkoutDay{{ID: "day-1"}}

	trimmed := Trim(state, TrimLimits{MaxSessions: 3, MaxLogged: 2})

	require.Len(t, trimmed.Sessions, 3)
	assert.Equal(t, "sess-2", trimmed.Sessions[0].ID)
	require.Len(t, trimmed.LoggedExercises, 2)
	assert.Equal(t, "log-3", trimmed.LoggedExercises[0].ID)

	// Templates are never shed, and the input is untouched.
	assert.Len(t, trimmed.Days, 1)
	assert.Len(t, state.Sessions, 5)
}

func TestSaverDebounceCoalesces(t *testing.T) {
	backend := &memBackend{}
	saver := NewSaver(backend, 20*time.Millisecond, time.Hour, TrimLimits{})
	defer saver.Close()

	for i := 0; i < 5; i++ {
		state := models.NewInitialState()
		state.LastSeenDate = fmt.Sprintf("2026-03-%02d", i+10)
		saver.Schedule(state)
	}

	require.Eventually(t, func() bool {
		return backend.writeCount() == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, "2026-03-14", backend.stored(t).LastSeenDate,
		"the write carries the last scheduled state")
}

func TestSaverHeartbeatFlushesDespiteDebounce(t *testing.T) {
	backend := &memBackend{}
	// An hour-long debounce never fires inside the test; only the
	// heartbeat can get the write to disk.
	saver := NewSaver(backend, time.Hour, 10*time.Millisecond, TrimLimits{})
	saver.Start()
	defer saver.Close()

	// A steady stream of changes keeps rearming the debounce timer, the
	// starvation case the heartbeat exists for.
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
			}
			state := models.NewInitialState()
			state.LastSeenDate = "2026-03-14"
			saver.Schedule(state)
			time.Sleep(time.Millisecond)
		}
	}()

	require.Eventually(t, func() bool {
		return backend.writeCount() > 0
	}, time.Second, 5*time.Millisecond)
	close(stop)
	<-done

	assert.Equal(t, "2026-03-14", backend.stored(t).LastSeenDate)
}

func TestSaverQuotaFallbackTrims(t *testing.T) {
	backend := &memBackend{failNext: 1}
	saver := NewSaver(backend, time.Millisecond, time.Hour, TrimLimits{MaxSessions: 2, MaxLogged: 2})
	defer saver.Close()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	state := models.NewInitialState()
	for i := 0; i < 4; i++ {
		state.Sessions = append(state.Sessions, sessionAt(fmt.Sprintf("sess-%d", i), base.AddDate(0, 0, i)))
	}

	saver.Schedule(state)
	saver.Flush()

	require.Eventually(t, func() bool {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		return backend.payload != nil
	}, time.Second, 5*time.Millisecond)

	stored := backend.stored(t)
	assert.Len(t, stored.Sessions, 2, "the retry after a rejected write sheds history")
}

func TestSaverSurfacesPersistentFailure(t *testing.T) {
	backend := &memBackend{failNext: 2} // full write and trimmed retry both fail
	saver := NewSaver(backend, time.Millisecond, time.Hour, TrimLimits{MaxSessions: 1})

	var mu sync.Mutex
	var got error
	saver.OnError = func(err error) {
		mu.Lock()
		got = err
		mu.Unlock()
	}

	saver.Schedule(models.NewInitialState())
	saver.Close()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got != nil
	}, time.Second, 5*time.Millisecond)
}

func TestRolloverDispatchesOnDateChange(t *testing.T) {
	initial := models.NewInitialState()
	initial.LastSeenDate = "2026-03-14"
	initial.CompletedExercises["ex-1"] = models.CompletedExerciseInfo{CompletedAt: time.Now()}
	st := store.New(initial)

	r := NewRollover(st, time.Hour)
	r.today = func() string { return "2026-03-15" }

	r.CheckNow()

	state := st.State()
	assert.Equal(t, "2026-03-15", state.LastSeenDate)
	assert.Empty(t, state.CompletedExercises)
	require.Len(t, state.Archive, 1)
	assert.Equal(t, "2026-03-14", state.Archive[0].Date)

	// Same date: no further dispatch, archive unchanged.
	r.CheckNow()
	assert.Len(t, st.State().Archive, 1)
}
