//go:build unix

package terminal

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// configureProcess puts the shell in its own process group so signals reach
// every process the command line started.
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func interrupt(s *activeSession) error {
	return signalGroup(s, unix.SIGINT)
}

func kill(s *activeSession) error {
	return signalGroup(s, unix.SIGKILL)
}

// signalGroup signals the process group led by s. Once the leader was reaped
// its pid may already belong to another process, so nothing is sent.
func signalGroup(s *activeSession, signal syscall.Signal) error {
	// kill(-1) and kill(0) address far more than one session
	if s.pid <= 1 {
		return os.ErrProcessDone
	}
	if err := s.cmd.Process.Signal(syscall.Signal(0)); errors.Is(err, os.ErrProcessDone) {
		return err
	}
	err := unix.Kill(-s.pid, signal)
	if errors.Is(err, unix.ESRCH) {
		err = s.cmd.Process.Signal(signal)
	}
	return err
}
