package terminal

import (
	"time"

	"github.com/viant/commander/internal/clock"
)

// sweep terminates timed-out sessions nobody has read from for longer than
// idle, so abandoned background processes do not stay registered forever.
func (m *Manager) sweep(idle, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweepIdle(idle)
		}
	}
}

func (m *Manager) sweepIdle(idle time.Duration) int {
	now := clock.Now()
	count := 0
	for _, s := range m.registry.sessions() {
		if !s.idle(now, idle) {
			continue
		}
		m.logger.Info("terminating idle timed-out session", "pid", s.pid, "command", s.command)
		if m.ForceTerminate(s.pid) {
			count++
		}
	}
	return count
}
