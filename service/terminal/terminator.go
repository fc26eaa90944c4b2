package terminal

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/viant/commander/logger"
)

// Terminator sends a graceful interrupt and escalates to a forced kill when
// the process is still registered after the grace period.
type Terminator struct {
	registry *Registry
	grace    time.Duration
	logger   logger.Logger
	onKill   func(s *activeSession)
}

// NewTerminator creates a terminator
func NewTerminator(registry *Registry, grace time.Duration, l logger.Logger) *Terminator {
	if l == nil {
		l = logger.Nop()
	}
	return &Terminator{registry: registry, grace: grace, logger: l}
}

// Terminate interrupts s and schedules the forced kill. It returns once the
// interrupt was dispatched; exit is observed through the normal wait path.
func (t *Terminator) Terminate(s *activeSession) error {
	select {
	case <-s.done:
		return fmt.Errorf("process %d: %w", s.pid, os.ErrProcessDone)
	default:
	}
	t.logger.Info("terminating process with SIGINT", "pid", s.pid)
	if err := interrupt(s); err != nil {
		return fmt.Errorf("failed to interrupt process %d: %w", s.pid, err)
	}
	s.scheduleEscalation(t.grace, func() { t.escalate(s) })
	return nil
}

func (t *Terminator) escalate(s *activeSession) {
	if !t.registry.isActive(s) {
		return
	}
	t.logger.Info("process still running after SIGINT, sending SIGKILL", "pid", s.pid)
	if err := kill(s); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			t.logger.Debug("process exited before SIGKILL", "pid", s.pid)
			return
		}
		t.logger.Error("failed to kill process", err, "pid", s.pid)
		return
	}
	if t.onKill != nil {
		t.onKill(s)
	}
}
