package terminal

import (
	"fmt"
	"runtime"
	"time"
)

// Config controls the session manager. Zero values fall back to DefaultConfig.
type Config struct {
	DefaultTimeoutMs int    `json:"defaultTimeoutMs,omitempty" yaml:"defaultTimeoutMs,omitempty"`
	GraceMs          int    `json:"graceMs,omitempty" yaml:"graceMs,omitempty"`
	HistoryCapacity  int    `json:"historyCapacity,omitempty" yaml:"historyCapacity,omitempty"`
	IdleTimeoutMs    int    `json:"idleTimeoutMs,omitempty" yaml:"idleTimeoutMs,omitempty"`
	SweepIntervalMs  int    `json:"sweepIntervalMs,omitempty" yaml:"sweepIntervalMs,omitempty"`
	Shell            string `json:"shell,omitempty" yaml:"shell,omitempty"`
	ShellFlag        string `json:"shellFlag,omitempty" yaml:"shellFlag,omitempty"`
}

const (
	defaultTimeoutMs       = 1000
	defaultGraceMs         = 1000
	defaultHistoryCapacity = 100
	defaultIdleTimeoutMs   = 60 * 60 * 1000
	defaultSweepIntervalMs = 60 * 1000
)

// DefaultConfig returns the stock settings
func DefaultConfig() Config {
	shell, flag := "/bin/sh", "-c"
	if runtime.GOOS == "windows" {
		shell, flag = "cmd", "/C"
	}
	return Config{
		DefaultTimeoutMs: defaultTimeoutMs,
		GraceMs:          defaultGraceMs,
		HistoryCapacity:  defaultHistoryCapacity,
		IdleTimeoutMs:    defaultIdleTimeoutMs,
		SweepIntervalMs:  defaultSweepIntervalMs,
		Shell:            shell,
		ShellFlag:        flag,
	}
}

// Init fills unset fields with defaults; a negative IdleTimeoutMs disables the sweeper
func (c *Config) Init() {
	defaults := DefaultConfig()
	if c.DefaultTimeoutMs <= 0 {
		c.DefaultTimeoutMs = defaults.DefaultTimeoutMs
	}
	if c.GraceMs <= 0 {
		c.GraceMs = defaults.GraceMs
	}
	if c.HistoryCapacity <= 0 {
		c.HistoryCapacity = defaults.HistoryCapacity
	}
	if c.IdleTimeoutMs == 0 {
		c.IdleTimeoutMs = defaults.IdleTimeoutMs
	}
	if c.SweepIntervalMs <= 0 {
		c.SweepIntervalMs = defaults.SweepIntervalMs
	}
	if c.Shell == "" {
		c.Shell, c.ShellFlag = defaults.Shell, defaults.ShellFlag
	}
}

// Validate returns an error describing invalid settings
func (c *Config) Validate() error {
	if c.HistoryCapacity < 0 {
		return fmt.Errorf("terminal.historyCapacity must be >= 0")
	}
	if c.DefaultTimeoutMs < 0 || c.GraceMs < 0 || c.SweepIntervalMs < 0 {
		return fmt.Errorf("terminal timeouts must be >= 0")
	}
	return nil
}

func (c *Config) defaultTimeout() time.Duration {
	return time.Duration(c.DefaultTimeoutMs) * time.Millisecond
}

func (c *Config) grace() time.Duration {
	return time.Duration(c.GraceMs) * time.Millisecond
}

func (c *Config) idleTimeout() time.Duration {
	if c.IdleTimeoutMs < 0 {
		return 0
	}
	return time.Duration(c.IdleTimeoutMs) * time.Millisecond
}

func (c *Config) sweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalMs) * time.Millisecond
}
