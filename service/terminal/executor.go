package terminal

import (
	"fmt"
	"os"
	"os/exec"
	"time"
)

// pipeDrainDelay bounds how long Wait keeps reading output after the shell
// exited while a background child still holds the pipe open.
const pipeDrainDelay = time.Second

// Executor spawns one shell process per command
type Executor struct {
	shell string
	flag  string
}

// NewExecutor creates an executor running commands as `shell flag command`
func NewExecutor(shell, flag string) *Executor {
	return &Executor{shell: shell, flag: flag}
}

// Spawn starts command and its output pump. The process is detached from any
// caller context; it only ends by exiting or being signalled.
func (e *Executor) Spawn(command string) (*activeSession, error) {
	args := []string{command}
	if e.flag != "" {
		args = []string{e.flag, command}
	}
	cmd := exec.Command(e.shell, args...)
	configureProcess(cmd)
	writer := newOutputWriter()
	cmd.Stdout = writer
	cmd.Stderr = writer
	cmd.WaitDelay = pipeDrainDelay

	if err := cmd.Start(); err != nil {
		writer.Close()
		return nil, fmt.Errorf("%w: %v", ErrSpawn, err)
	}
	if cmd.Process == nil || cmd.Process.Pid <= 0 {
		writer.Close()
		return nil, fmt.Errorf("%w: no process id", ErrSpawn)
	}
	ret := newActiveSession(command, cmd, writer)
	ret.pid = cmd.Process.Pid
	go ret.pump()
	return ret, nil
}

// exitCodeOf returns nil when the process was terminated by a signal
func exitCodeOf(state *os.ProcessState) *int {
	if state == nil {
		return nil
	}
	code := state.ExitCode()
	if code < 0 {
		return nil
	}
	return &code
}
