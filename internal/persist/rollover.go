package persist

import (
	"sync"
	"time"

	"github.com/pedrohrf/ironlog/internal/logger"
	"github.com/pedrohrf/ironlog/internal/store"
)

// Rollover is the coarse day-change poll. It is intentionally not an
// exact-midnight scheduler: the check runs on an interval and catches
// up whenever the observed date differs from the last seen one.
type Rollover struct {
	st       *store.Store
	interval time.Duration

	today func() string
	now   func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func NewRollover(st *store.Store, interval time.Duration) *Rollover {
	return &Rollover{
		st:       st,
		interval: interval,
		today:    func() string { return time.Now().Format("2006-01-02") },
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// Start launches the poll loop. CheckNow is also run once immediately
// so an app opened after midnight rolls over without waiting a tick.
func (r *Rollover) Start() {
	r.CheckNow()
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				r.CheckNow()
			}
		}
	}()
}

func (r *Rollover) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// CheckNow archives and resets the day-scoped bookkeeping when the
// date has changed. Durable logs are never touched.
func (r *Rollover) CheckNow() {
	today := r.today()
	state := r.st.State()
	if state.LastSeenDate == today {
		return
	}

	logger.Info("day rollover", "from", state.LastSeenDate, "to", today)
	r.st.Dispatch(store.ArchiveDayRollover{
		NewDate: today,
		Now:     r.now(),
	})
}
