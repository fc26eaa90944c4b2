package process

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
)

const (
	listCommand      = "ps -eo pid,pcpu,pmem,comm"
	defaultTimeoutMs = 10000
)

// Service lists and signals OS processes
type Service struct {
	shell *gosh.Service
	mux   sync.Mutex
}

// List runs ps through a local shell session and parses its table
func (s *Service) List(ctx context.Context, input *ListInput, output *ListOutput) error {
	shell, err := s.session(ctx)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	timeoutMs := input.TimeoutMs
	if timeoutMs <= 0 {
		timeoutMs = defaultTimeoutMs
	}
	started := time.Now()
	stdout, status, err := shell.Run(ctx, listCommand, runner.WithTimeout(timeoutMs))
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}
	if status != 0 {
		return fmt.Errorf("failed to list processes: %v exited with %d after %s: %s", listCommand, status, time.Since(started), stdout)
	}
	output.Processes = parse(stdout)
	output.Text = format(output.Processes)
	return nil
}

// Kill signals a process
func (s *Service) Kill(_ context.Context, input *KillInput, output *KillOutput) error {
	if input.Pid <= 1 {
		return fmt.Errorf("invalid pid: %d", input.Pid)
	}
	signal := strings.ToUpper(strings.TrimSpace(input.Signal))
	if signal == "" {
		signal = "SIGTERM"
	}
	if !strings.HasPrefix(signal, "SIG") {
		signal = "SIG" + signal
	}
	if err := sendSignal(input.Pid, signal); err != nil {
		return fmt.Errorf("failed to kill process %d: %w", input.Pid, err)
	}
	output.Text = fmt.Sprintf("Successfully sent %s to PID %d", signal, input.Pid)
	return nil
}

func (s *Service) session(ctx context.Context) (*gosh.Service, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.shell != nil {
		return s.shell, nil
	}
	shell, err := gosh.New(ctx, local.New())
	if err != nil {
		return nil, err
	}
	s.shell = shell
	return shell, nil
}

// Close releases the shell session
func (s *Service) Close() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.shell == nil {
		return nil
	}
	err := s.shell.Close()
	s.shell = nil
	return err
}

// parse reads `ps -eo pid,pcpu,pmem,comm` output, skipping the header and
// anything that is not a process row.
func parse(text string) []*Process {
	var ret []*Process
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		cpu, _ := strconv.ParseFloat(fields[1], 64)
		memory, _ := strconv.ParseFloat(fields[2], 64)
		ret = append(ret, &Process{
			Pid:     pid,
			CPU:     cpu,
			Memory:  memory,
			Command: strings.Join(fields[3:], " "),
		})
	}
	return ret
}

func format(processes []*Process) string {
	builder := strings.Builder{}
	builder.WriteString("PID\tCOMMAND\tCPU\tMEMORY")
	for _, p := range processes {
		builder.WriteString(fmt.Sprintf("\n%d\t%s\t%.1f%%\t%.1f%%", p.Pid, p.Command, p.CPU, p.Memory))
	}
	return builder.String()
}

// New creates a process action service
func New() *Service {
	return &Service{}
}
