//go:build !unix

package terminal

import (
	"os"
	"os/exec"
)

func configureProcess(*exec.Cmd) {}

func interrupt(s *activeSession) error {
	if err := s.cmd.Process.Signal(os.Interrupt); err != nil {
		return s.cmd.Process.Kill()
	}
	return nil
}

func kill(s *activeSession) error {
	return s.cmd.Process.Kill()
}
