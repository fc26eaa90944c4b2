package terminal

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/viant/commander/logger"
	"github.com/viant/commander/model/session"
)

// Registry owns the active sessions and the completed history. Every read
// and write of session membership goes through it.
type Registry struct {
	mux     sync.RWMutex
	active  map[int]*activeSession
	history *History
	logger  logger.Logger
}

// NewRegistry creates a registry with a history bounded by capacity
func NewRegistry(capacity int, l logger.Logger) *Registry {
	if l == nil {
		l = logger.Nop()
	}
	return &Registry{
		active:  make(map[int]*activeSession),
		history: NewHistory(capacity),
		logger:  l,
	}
}

// add registers a live session; a completed entry with the same pid is dropped
func (r *Registry) add(s *activeSession) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	if _, ok := r.active[s.pid]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicatePid, s.pid)
	}
	if r.history.Remove(s.pid) {
		r.logger.Debug("dropped completed session for reused pid", "pid", s.pid)
	}
	r.active[s.pid] = s
	return nil
}

func (r *Registry) lookup(pid int) *activeSession {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return r.active[pid]
}

// isActive reports whether s is still the live session for its pid
func (r *Registry) isActive(s *activeSession) bool {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return r.active[s.pid] == s
}

// complete moves s from the active map into history
func (r *Registry) complete(s *activeSession, exitCode *int, end time.Time) *session.Completed {
	completed := &session.Completed{
		Pid:       s.pid,
		Output:    s.accumulatedOutput(),
		ExitCode:  exitCode,
		StartTime: s.startTime,
		EndTime:   end,
	}
	r.mux.Lock()
	if r.active[s.pid] == s {
		delete(r.active, s.pid)
	}
	evicted := r.history.Put(completed)
	r.mux.Unlock()
	if evicted != nil {
		r.logger.Debug("evicted completed session", "pid", evicted.Pid)
	}
	s.finish(completed)
	return completed
}

func (r *Registry) completed(pid int) *session.Completed {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return r.history.Get(pid)
}

func (r *Registry) sessions() []*activeSession {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret := make([]*activeSession, 0, len(r.active))
	for _, s := range r.active {
		ret = append(ret, s)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].pid < ret[j].pid })
	return ret
}

func (r *Registry) activeSnapshot(now time.Time) []*session.Active {
	sessions := r.sessions()
	ret := make([]*session.Active, 0, len(sessions))
	for _, s := range sessions {
		ret = append(ret, s.snapshot(now))
	}
	return ret
}

func (r *Registry) completedSnapshot() []*session.Completed {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return r.history.List()
}
