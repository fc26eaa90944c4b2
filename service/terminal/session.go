package terminal

import (
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/viant/commander/internal/clock"
	"github.com/viant/commander/model/session"
)

// activeSession is the mutable record of one spawned process. Buffers are
// only mutated by the output pump and drained under the same mutex.
type activeSession struct {
	pid       int
	command   string
	cmd       *exec.Cmd
	startTime time.Time
	output    *outputWriter

	mux         sync.Mutex
	accumulated strings.Builder
	unread      strings.Builder
	timedOut    bool
	terminating bool
	lastAccess  time.Time
	escalation  *time.Timer

	pumped    chan struct{}
	done      chan struct{}
	completed *session.Completed
}

func newActiveSession(command string, cmd *exec.Cmd, output *outputWriter) *activeSession {
	now := clock.Now()
	return &activeSession{
		command:    command,
		cmd:        cmd,
		startTime:  now,
		lastAccess: now,
		output:     output,
		pumped:     make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// pump appends chunks in arrival order until the writer is closed
func (s *activeSession) pump() {
	defer close(s.pumped)
	for chunk := range s.output.chunks {
		s.mux.Lock()
		s.accumulated.Write(chunk)
		s.unread.Write(chunk)
		s.mux.Unlock()
	}
}

// drain returns unread text and clears it
func (s *activeSession) drain() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	ret := s.unread.String()
	s.unread.Reset()
	s.lastAccess = clock.Now()
	return ret
}

func (s *activeSession) accumulatedOutput() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.accumulated.String()
}

// markTimedOut flags the session and returns the output accumulated so far
func (s *activeSession) markTimedOut() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.timedOut = true
	s.lastAccess = clock.Now()
	return s.accumulated.String()
}

// snapshot counts as an access, so a listed session is not idle
func (s *activeSession) snapshot(now time.Time) *session.Active {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.lastAccess = now
	return &session.Active{
		Pid:       s.pid,
		IsBlocked: s.timedOut,
		RuntimeMs: now.Sub(s.startTime).Milliseconds(),
	}
}

// idle reports whether a timed-out session has not been accessed for longer than timeout
func (s *activeSession) idle(now time.Time, timeout time.Duration) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.timedOut && !s.terminating && now.Sub(s.lastAccess) > timeout
}

// scheduleEscalation replaces any pending escalation with fn after delay
func (s *activeSession) scheduleEscalation(delay time.Duration, fn func()) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.terminating = true
	if s.escalation != nil {
		s.escalation.Stop()
	}
	s.escalation = time.AfterFunc(delay, fn)
}

// finish records the completed snapshot, cancels escalation and releases waiters
func (s *activeSession) finish(completed *session.Completed) {
	s.mux.Lock()
	s.completed = completed
	if s.escalation != nil {
		s.escalation.Stop()
		s.escalation = nil
	}
	s.mux.Unlock()
	close(s.done)
}
