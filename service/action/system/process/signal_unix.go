//go:build unix

package process

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func sendSignal(pid int, name string) error {
	signal := unix.SignalNum(name)
	if signal == 0 {
		return fmt.Errorf("unsupported signal: %v", name)
	}
	return unix.Kill(pid, signal)
}
