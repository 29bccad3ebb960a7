package core

import (
	"errors"
	"fmt"
)

// ManagerConfig is the immutable configuration for one manager run.
type ManagerConfig struct {
	Host            string `toml:"host"`
	Port            string `toml:"port"`
	RequiredWorkers int    `toml:"required_workers"`
	MaxTimeSec      int    `toml:"max_time_sec"`
}

// Validate checks the invariants required of a ManagerConfig before a run
// may start: required_workers >= 1, max_time_sec >= 1.
func (c *ManagerConfig) Validate() error {
	if c.Host == "" {
		return errors.New("manager config: host must not be empty")
	}
	if c.Port == "" {
		return errors.New("manager config: port must not be empty")
	}
	if c.RequiredWorkers < 1 {
		return fmt.Errorf("manager config: required_workers must be >= 1, got %d", c.RequiredWorkers)
	}
	if c.MaxTimeSec < 1 {
		return fmt.Errorf("manager config: max_time_sec must be >= 1, got %d", c.MaxTimeSec)
	}
	return nil
}

// WorkerConfig is the immutable configuration for one worker run.
type WorkerConfig struct {
	Host       string `toml:"host"`
	Port       string `toml:"port"`
	MaxCores   int    `toml:"max_cores"`
	MaxTimeSec int    `toml:"max_time_sec"`
}

// Validate checks the invariants required of a WorkerConfig before a run
// may start: max_cores >= 1, max_time_sec >= 1.
func (c *WorkerConfig) Validate() error {
	if c.Host == "" {
		return errors.New("worker config: host must not be empty")
	}
	if c.Port == "" {
		return errors.New("worker config: port must not be empty")
	}
	if c.MaxCores < 1 {
		return fmt.Errorf("worker config: max_cores must be >= 1, got %d", c.MaxCores)
	}
	if c.MaxTimeSec < 1 {
		return fmt.Errorf("worker config: max_time_sec must be >= 1, got %d", c.MaxTimeSec)
	}
	return nil
}

// JobConfig describes the application-defined job the manager partitions
// across workers. It is not interpreted by the core; the manager's caller
// supplies it to the application adapter, which folds it into its
// Capabilities implementation.
type JobConfig struct {
	A float64 `toml:"a"`
	B float64 `toml:"b"`
	N int64   `toml:"n"`
}

// Validate checks the one core-independent invariant the example
// application requires: a non-empty interval and a positive subdivision count.
func (j *JobConfig) Validate() error {
	if j.N < 1 {
		return fmt.Errorf("job config: n must be >= 1, got %d", j.N)
	}
	if j.B <= j.A {
		return fmt.Errorf("job config: b (%v) must be > a (%v)", j.B, j.A)
	}
	return nil
}
