//go:build unix

package terminal

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/commander/model/session"
	"github.com/viant/commander/service/event"
	"github.com/viant/commander/service/messaging"
)

func newTestManager(t *testing.T, options ...Option) *Manager {
	t.Helper()
	config := DefaultConfig()
	config.GraceMs = 200
	config.IdleTimeoutMs = -1
	m := New(append([]Option{WithConfig(config)}, options...)...)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = m.Close(ctx)
	})
	return m
}

// waitCompleted polls ReadOutput until the completion summary shows up
func waitCompleted(t *testing.T, m *Manager, pid int) string {
	t.Helper()
	var output string
	require.Eventually(t, func() bool {
		text, ok := m.ReadOutput(pid)
		output += text
		return ok && strings.Contains(text, "Process completed with exit code")
	}, 5*time.Second, 20*time.Millisecond)
	return output
}

func TestManager_Execute(t *testing.T) {
	var testCases = []struct {
		description    string
		command        string
		timeout        time.Duration
		expectBlocked  bool
		expectContains []string
	}{
		{description: "quick command", command: "echo hello", timeout: 2 * time.Second, expectContains: []string{"hello"}},
		{description: "merged streams", command: "echo out; echo err 1>&2", timeout: 2 * time.Second, expectContains: []string{"out", "err"}},
		{description: "no output", command: "true", timeout: 2 * time.Second},
		{description: "long running", command: "echo started; sleep 2", timeout: 300 * time.Millisecond, expectBlocked: true, expectContains: []string{"started"}},
	}

	for _, testCase := range testCases {
		m := newTestManager(t)
		result, err := m.Execute(context.Background(), testCase.command, testCase.timeout)
		require.NoError(t, err, testCase.description)
		assert.Greater(t, result.Pid, 0, testCase.description)
		assert.Equal(t, testCase.expectBlocked, result.IsBlocked, testCase.description)
		for _, fragment := range testCase.expectContains {
			assert.Contains(t, result.Output, fragment, testCase.description)
		}
	}
}

func TestManager_ExecuteOrdering(t *testing.T) {
	m := newTestManager(t)
	result, err := m.Execute(context.Background(), "echo first; echo second 1>&2; echo third", 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\nthird\n", result.Output)
}

func TestManager_ExecuteDefaultTimeout(t *testing.T) {
	m := newTestManager(t)
	started := time.Now()
	result, err := m.Execute(context.Background(), "sleep 3", 0)
	require.NoError(t, err)
	assert.True(t, result.IsBlocked)
	assert.Less(t, time.Since(started), 2500*time.Millisecond)
}

func TestManager_ExecuteContextCancel(t *testing.T) {
	m := newTestManager(t)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	result, err := m.Execute(ctx, "sleep 3", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, result.IsBlocked)
	assert.Len(t, m.ListActive(), 1)
}

func TestManager_ExecuteSpawnFailure(t *testing.T) {
	config := DefaultConfig()
	config.Shell = "/nonexistent/shell"
	config.IdleTimeoutMs = -1
	m := New(WithConfig(config))
	result, err := m.Execute(context.Background(), "echo hello", time.Second)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrSpawn))
	assert.Empty(t, m.ListActive())
}

func TestManager_ReadOutput(t *testing.T) {
	m := newTestManager(t)
	result, err := m.Execute(context.Background(), "echo one; sleep 0.4; echo two", 100*time.Millisecond)
	require.NoError(t, err)
	require.True(t, result.IsBlocked)
	assert.Equal(t, "one\n", result.Output)

	// output returned by the initial result is still unread
	first, ok := m.ReadOutput(result.Pid)
	require.True(t, ok)
	assert.Equal(t, "one\n", first)
	second, ok := m.ReadOutput(result.Pid)
	require.True(t, ok)
	assert.Equal(t, "", second)

	summary := waitCompleted(t, m, result.Pid)
	assert.Contains(t, summary, "Process completed with exit code 0")
	assert.Contains(t, summary, "Runtime: ")
	assert.Contains(t, summary, "Final output:\none\ntwo\n")

	// completed output is returned on every read
	again, ok := m.ReadOutput(result.Pid)
	require.True(t, ok)
	assert.Equal(t, summary[strings.Index(summary, "Process completed"):], again)

	_, ok = m.ReadOutput(999999999)
	assert.False(t, ok)
}

func TestManager_ExitCode(t *testing.T) {
	m := newTestManager(t)
	result, err := m.Execute(context.Background(), "exit 3", 2*time.Second)
	require.NoError(t, err)
	require.False(t, result.IsBlocked)
	completed := m.ListCompleted()
	require.Len(t, completed, 1)
	require.NotNil(t, completed[0].ExitCode)
	assert.Equal(t, 3, *completed[0].ExitCode)
	assert.Equal(t, result.Pid, completed[0].Pid)
	assert.False(t, completed[0].EndTime.Before(completed[0].StartTime))
}

func TestManager_ForceTerminate(t *testing.T) {
	t.Run("interrupt", func(t *testing.T) {
		m := newTestManager(t)
		result, err := m.Execute(context.Background(), "sleep 30", 100*time.Millisecond)
		require.NoError(t, err)
		require.True(t, result.IsBlocked)

		assert.True(t, m.ForceTerminate(result.Pid))
		require.Eventually(t, func() bool { return len(m.ListActive()) == 0 }, 2*time.Second, 20*time.Millisecond)
		completed := m.ListCompleted()
		require.Len(t, completed, 1)
		assert.Nil(t, completed[0].ExitCode)
		assert.Equal(t, "null", completed[0].ExitCodeText())
		assert.Equal(t, 0, m.Progress().Killed)
		assert.Equal(t, 1, m.Progress().Terminated)
	})

	t.Run("escalation", func(t *testing.T) {
		m := newTestManager(t)
		result, err := m.Execute(context.Background(), "trap '' INT; sleep 30", 100*time.Millisecond)
		require.NoError(t, err)
		require.True(t, result.IsBlocked)

		assert.True(t, m.ForceTerminate(result.Pid))
		time.Sleep(50 * time.Millisecond)
		assert.Len(t, m.ListActive(), 1)
		require.Eventually(t, func() bool { return len(m.ListActive()) == 0 }, 3*time.Second, 20*time.Millisecond)
		assert.Equal(t, 1, m.Progress().Killed)
		completed := m.ListCompleted()
		require.Len(t, completed, 1)
		assert.Nil(t, completed[0].ExitCode)
	})

	t.Run("unknown pid", func(t *testing.T) {
		m := newTestManager(t)
		assert.False(t, m.ForceTerminate(999999999))
	})

	t.Run("completed pid", func(t *testing.T) {
		m := newTestManager(t)
		result, err := m.Execute(context.Background(), "true", 2*time.Second)
		require.NoError(t, err)
		assert.False(t, m.ForceTerminate(result.Pid))
	})
}

func TestManager_ListActive(t *testing.T) {
	m := newTestManager(t)
	assert.Empty(t, m.ListActive())
	var pids []int
	for i := 0; i < 2; i++ {
		result, err := m.Execute(context.Background(), "sleep 5", 50*time.Millisecond)
		require.NoError(t, err)
		pids = append(pids, result.Pid)
	}
	active := m.ListActive()
	require.Len(t, active, 2)
	for _, item := range active {
		assert.Contains(t, pids, item.Pid)
		assert.True(t, item.IsBlocked)
		assert.GreaterOrEqual(t, item.RuntimeMs, int64(0))
	}
	assert.Less(t, active[0].Pid, active[1].Pid)
	assert.Empty(t, m.ListCompleted())
}

func TestManager_Events(t *testing.T) {
	events, err := event.New(messaging.VendorMemory)
	require.NoError(t, err)
	defer events.Close()
	publisher, err := event.PublisherOf[session.Event](events)
	require.NoError(t, err)

	m := newTestManager(t, WithPublisher(publisher))
	result, err := m.Execute(context.Background(), "echo hello", 2*time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var types []session.EventType
	for i := 0; i < 2; i++ {
		e, err := publisher.Consume(ctx)
		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, "terminal", e.Source)
		assert.Equal(t, result.Pid, e.Data.Pid)
		types = append(types, e.Data.Type)
	}
	assert.Equal(t, []session.EventType{session.EventStarted, session.EventExited}, types)
}

func TestManager_Progress(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Execute(context.Background(), "true", 2*time.Second)
	require.NoError(t, err)
	_, err = m.Execute(context.Background(), "sleep 5", 50*time.Millisecond)
	require.NoError(t, err)

	counters := m.Progress()
	assert.Equal(t, 2, counters.Started)
	assert.Equal(t, 1, counters.Running)
	assert.Equal(t, 1, counters.Completed)
	assert.Equal(t, 1, counters.TimedOut)
}

func TestManager_SweepIdle(t *testing.T) {
	m := newTestManager(t)
	finished, err := m.Execute(context.Background(), "sleep 5", 50*time.Millisecond)
	require.NoError(t, err)
	time.Sleep(30 * time.Millisecond)
	read, err := m.Execute(context.Background(), "sleep 5", 50*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	m.ReadOutput(read.Pid)
	assert.Equal(t, 1, m.sweepIdle(40*time.Millisecond))
	require.Eventually(t, func() bool { return m.registry.lookup(finished.Pid) == nil }, 2*time.Second, 20*time.Millisecond)
	assert.NotNil(t, m.registry.lookup(read.Pid))
	assert.Equal(t, 0, m.sweepIdle(time.Hour))
}

func TestManager_SweepIdleSkipsListed(t *testing.T) {
	m := newTestManager(t)
	result, err := m.Execute(context.Background(), "sleep 5", 20*time.Millisecond)
	require.NoError(t, err)
	require.True(t, result.IsBlocked)

	time.Sleep(60 * time.Millisecond)
	require.Len(t, m.ListActive(), 1)
	assert.Equal(t, 0, m.sweepIdle(40*time.Millisecond))
	assert.NotNil(t, m.registry.lookup(result.Pid))

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, m.sweepIdle(40*time.Millisecond))
}

func TestManager_ReadOutputConcurrent(t *testing.T) {
	m := newTestManager(t)
	command := `i=0; while [ $i -lt 3000 ]; do echo "line-$i"; i=$((i+1)); done`
	result, err := m.Execute(context.Background(), command, 10*time.Millisecond)
	require.NoError(t, err)

	var (
		mux     sync.Mutex
		drained strings.Builder
		done    = make(chan struct{})
		wg      sync.WaitGroup
	)
	completedPrefix := "Process completed with exit code"
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for {
				mux.Lock()
				text, ok := m.ReadOutput(result.Pid)
				finished := !ok || strings.HasPrefix(text, completedPrefix)
				if !finished {
					drained.WriteString(text)
				}
				mux.Unlock()
				if finished {
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					m.ListActive()
				}
			}
		}()
	}
	require.Eventually(t, func() bool { return len(m.ListCompleted()) == 1 }, 10*time.Second, 20*time.Millisecond)
	close(done)
	wg.Wait()

	output := m.ListCompleted()[0].Output
	assert.Len(t, strings.Split(strings.TrimSuffix(output, "\n"), "\n"), 3000)
	assert.True(t, strings.HasPrefix(output, drained.String()))
	assert.NotEmpty(t, drained.String())
}

func TestManager_RegisterWaitsForRetiringPid(t *testing.T) {
	m := newTestManager(t)
	retiring := &activeSession{pid: 424242, done: make(chan struct{})}
	require.NoError(t, m.registry.add(retiring))
	go func() {
		time.Sleep(50 * time.Millisecond)
		m.registry.complete(retiring, nil, time.Now())
	}()

	reused := &activeSession{pid: 424242, done: make(chan struct{})}
	require.NoError(t, m.register(reused))
	assert.True(t, m.registry.isActive(reused))
	assert.Nil(t, m.registry.completed(424242))

	started := time.Now()
	err := m.register(&activeSession{pid: 424242, done: make(chan struct{})})
	assert.True(t, errors.Is(err, ErrDuplicatePid))
	assert.GreaterOrEqual(t, time.Since(started), pipeDrainDelay)
	m.registry.complete(reused, nil, time.Now())
}

func TestManager_Close(t *testing.T) {
	config := DefaultConfig()
	config.GraceMs = 200
	m := New(WithConfig(config))
	_, err := m.Execute(context.Background(), "sleep 30", 50*time.Millisecond)
	require.NoError(t, err)
	_, err = m.Execute(context.Background(), "trap '' INT; sleep 30", 50*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, m.Close(ctx))
	assert.Empty(t, m.ListActive())
	assert.Len(t, m.ListCompleted(), 2)
	require.NoError(t, m.Close(ctx))
}

func TestRegistry_DuplicatePid(t *testing.T) {
	registry := NewRegistry(10, nil)
	first := &activeSession{pid: 42, done: make(chan struct{})}
	require.NoError(t, registry.add(first))
	err := registry.add(&activeSession{pid: 42, done: make(chan struct{})})
	assert.True(t, errors.Is(err, ErrDuplicatePid))

	registry.complete(first, nil, time.Now())
	assert.NotNil(t, registry.completed(42))
	assert.False(t, registry.isActive(first))

	reused := &activeSession{pid: 42, done: make(chan struct{})}
	require.NoError(t, registry.add(reused))
	assert.Nil(t, registry.completed(42))
	assert.True(t, registry.isActive(reused))
}
