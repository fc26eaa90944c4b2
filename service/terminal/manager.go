// Package terminal manages shell sessions: it spawns commands, tracks live
// and completed sessions, drains their output and terminates them.
//
// An Execute call settles on whichever comes first, the caller timeout or
// process exit. A timed-out process keeps running; its output stays
// readable through ReadOutput and its exit is still recorded in the
// completed history.
package terminal

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/viant/commander/internal/clock"
	"github.com/viant/commander/logger"
	"github.com/viant/commander/model/session"
	"github.com/viant/commander/progress"
	"github.com/viant/commander/service/event"
	"github.com/viant/commander/tracing"
)

const eventSource = "terminal"

// retireTimeout bounds the wait for a reaped session to leave the registry
const retireTimeout = pipeDrainDelay + 250*time.Millisecond

// Manager is the session manager
type Manager struct {
	config     Config
	logger     logger.Logger
	publisher  *event.Publisher[session.Event]
	progress   *progress.Progress
	registry   *Registry
	executor   *Executor
	terminator *Terminator

	stop      chan struct{}
	closeOnce sync.Once
}

// Execute runs command and waits for the first of timeout, exit or ctx
// cancellation. A zero or negative timeout uses the configured default.
func (m *Manager) Execute(ctx context.Context, command string, timeout time.Duration) (*session.Result, error) {
	if timeout <= 0 {
		timeout = m.config.defaultTimeout()
	}
	ctx, span := tracing.StartSpan(ctx, "terminal.execute")
	span.WithAttributes(map[string]string{"command": command})
	m.logger.Info("executing command", "command", command, "timeoutMs", timeout.Milliseconds())

	s, err := m.executor.Spawn(command)
	if err != nil {
		m.logger.Error("failed to get process ID for command", err, "command", command)
		tracing.EndSpan(span, err)
		return nil, err
	}
	if err = m.register(s); err != nil {
		m.logger.Error("failed to register session", err, "command", command, "pid", s.pid)
		_ = kill(s)
		_ = s.cmd.Wait()
		s.output.Close()
		tracing.EndSpan(span, err)
		return nil, err
	}
	span.WithPid(s.pid)
	m.logger.Debug("process started", "pid", s.pid)
	m.progress.Update(progress.Delta{Started: 1, Running: 1})
	m.publish(session.EventStarted, s, nil)
	go m.wait(s)

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	var result *session.Result
	select {
	case <-s.done:
		result = &session.Result{Pid: s.pid, Output: s.completed.Output}
	case <-timer.C:
		result = m.timedOut(s, "timeout", timeout)
	case <-ctx.Done():
		result = m.timedOut(s, "context done", timeout)
	}
	tracing.EndSpan(span.WithAttributes(map[string]string{"blocked": strconv.FormatBool(result.IsBlocked)}), nil)
	return result, nil
}

func (m *Manager) timedOut(s *activeSession, reason string, timeout time.Duration) *session.Result {
	output := s.markTimedOut()
	m.logger.Debug("command execution timeout reached", "pid", s.pid, "command", s.command, "timeoutMs", timeout.Milliseconds(), "reason", reason)
	m.progress.Update(progress.Delta{TimedOut: 1})
	m.publish(session.EventTimedOut, s, nil)
	return &session.Result{Pid: s.pid, Output: output, IsBlocked: true}
}

// register adds s to the registry. When its pid still names a session whose
// process was reaped but not yet retired, it waits for that session to finish.
func (m *Manager) register(s *activeSession) error {
	err := m.registry.add(s)
	if !errors.Is(err, ErrDuplicatePid) {
		return err
	}
	if previous := m.registry.lookup(s.pid); previous != nil {
		timer := time.NewTimer(retireTimeout)
		select {
		case <-previous.done:
		case <-timer.C:
		}
		timer.Stop()
	}
	return m.registry.add(s)
}

// wait records completion once the process exited and its output was pumped
func (m *Manager) wait(s *activeSession) {
	err := s.cmd.Wait()
	s.output.Close()
	<-s.pumped
	exitCode := exitCodeOf(s.cmd.ProcessState)
	completed := m.registry.complete(s, exitCode, clock.Now())
	m.logger.Debug("process exited", "pid", s.pid, "command", s.command, "exitCode", completed.ExitCodeText(), "waitError", errorText(err))
	m.progress.Update(progress.Delta{Running: -1, Completed: 1})
	m.publish(session.EventExited, s, exitCode)
}

// ReadOutput drains unread output of an active session or returns the
// completion summary of a finished one. The boolean is false when pid is unknown.
func (m *Manager) ReadOutput(pid int) (string, bool) {
	if s := m.registry.lookup(pid); s != nil {
		return s.drain(), true
	}
	if completed := m.registry.completed(pid); completed != nil {
		return completed.Summary(), true
	}
	m.logger.Debug("no output found", "pid", pid)
	return "", false
}

// ForceTerminate interrupts an active session and escalates to a kill after
// the grace period. It returns true once the interrupt was sent.
func (m *Manager) ForceTerminate(pid int) bool {
	s := m.registry.lookup(pid)
	if s == nil {
		m.logger.Info("terminate requested for nonexistent process", "pid", pid)
		return false
	}
	_, span := tracing.StartSpan(context.Background(), "terminal.forceTerminate")
	span.WithPid(pid)
	err := m.terminator.Terminate(s)
	tracing.EndSpan(span, err)
	if err != nil {
		m.logger.Error("failed to terminate process", err, "pid", pid)
		return false
	}
	m.progress.Update(progress.Delta{Terminated: 1})
	m.publish(session.EventTerminateRequested, s, nil)
	return true
}

// ListActive returns live sessions ordered by pid
func (m *Manager) ListActive() []*session.Active {
	ret := m.registry.activeSnapshot(clock.Now())
	m.logger.Debug("listed active sessions", "count", len(ret))
	return ret
}

// ListCompleted returns the completed history oldest first
func (m *Manager) ListCompleted() []*session.Completed {
	ret := m.registry.completedSnapshot()
	m.logger.Debug("listed completed sessions", "count", len(ret))
	return ret
}

// Progress returns a snapshot of the session counters
func (m *Manager) Progress() progress.Counters {
	return m.progress.Snapshot()
}

// Close stops the idle sweeper, terminates every active session and waits
// for them to exit or ctx to end.
func (m *Manager) Close(ctx context.Context) error {
	m.closeOnce.Do(func() { close(m.stop) })
	sessions := m.registry.sessions()
	for _, s := range sessions {
		if err := m.terminator.Terminate(s); err != nil {
			m.logger.Debug("failed to terminate session on close", "pid", s.pid, "error", err.Error())
		}
	}
	for _, s := range sessions {
		select {
		case <-s.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (m *Manager) publish(eventType session.EventType, s *activeSession, exitCode *int) {
	if m.publisher == nil {
		return
	}
	e := event.NewEvent(eventSource, session.Event{
		Type:     eventType,
		Pid:      s.pid,
		Command:  s.command,
		ExitCode: exitCode,
		At:       clock.Now(),
	})
	if err := m.publisher.Publish(context.Background(), e); err != nil {
		m.logger.Debug("failed to publish session event", "pid", s.pid, "type", string(eventType), "error", err.Error())
	}
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// New creates a session manager
func New(options ...Option) *Manager {
	ret := &Manager{
		config:   DefaultConfig(),
		logger:   logger.Nop(),
		progress: progress.New(),
		stop:     make(chan struct{}),
	}
	for _, option := range options {
		option(ret)
	}
	ret.config.Init()
	ret.registry = NewRegistry(ret.config.HistoryCapacity, ret.logger)
	ret.executor = NewExecutor(ret.config.Shell, ret.config.ShellFlag)
	ret.terminator = NewTerminator(ret.registry, ret.config.grace(), ret.logger)
	ret.terminator.onKill = func(s *activeSession) {
		ret.progress.Update(progress.Delta{Killed: 1})
		ret.publish(session.EventKilled, s, nil)
	}
	if idle := ret.config.idleTimeout(); idle > 0 {
		go ret.sweep(idle, ret.config.sweepInterval())
	}
	return ret
}
