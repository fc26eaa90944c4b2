// Package progress keeps aggregated session counters (started, running,
// completed, timed out, terminated) for one session manager. Counters are
// updated through Delta values and are safe for concurrent use.
package progress

import (
	"sync"
	"time"
)

// Delta represents an incremental counter change. Fields are signed so a
// delta may decrement, e.g. Running: -1 when a process exits.
type Delta struct {
	Started    int
	Running    int
	Completed  int
	TimedOut   int
	Terminated int
	Killed     int
}

// Counters is a read-only snapshot of the tracker
type Counters struct {
	Since      time.Time `json:"since"`
	Started    int       `json:"started"`
	Running    int       `json:"running"`
	Completed  int       `json:"completed"`
	TimedOut   int       `json:"timedOut"`
	Terminated int       `json:"terminated"`
	Killed     int       `json:"killed"`
}

// Progress aggregates session counters
type Progress struct {
	mu       sync.Mutex
	counters Counters
	onChange func(Counters)
}

// Update applies the supplied delta. The onChange callback, if any, runs
// outside the critical section with a copy of the updated counters.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.counters.Started += d.Started
	p.counters.Running += d.Running
	p.counters.Completed += d.Completed
	p.counters.TimedOut += d.TimedOut
	p.counters.Terminated += d.Terminated
	p.counters.Killed += d.Killed
	snapshot := p.counters
	cb := p.onChange
	p.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the counters
func (p *Progress) Snapshot() Counters {
	if p == nil {
		return Counters{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counters
}

// OnChange registers a callback invoked after every Update. Passing nil
// disables the callback; only one callback is active at a time.
func (p *Progress) OnChange(cb func(Counters)) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.onChange = cb
	p.mu.Unlock()
}

// New creates a tracker
func New() *Progress {
	return &Progress{counters: Counters{Since: time.Now()}}
}
