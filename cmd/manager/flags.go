package main

import (
	"flag"
	"fmt"

	"distr/lib/core"

	"github.com/BurntSushi/toml"
)

const (
	commandName = "distr-manager"

	defaultHost       = "0.0.0.0"
	defaultPort       = "5555"
	defaultMaxTimeSec = 30
	defaultJobA       = 0.0
	defaultJobB       = 1.0

	defaultJobN int64 = 100000
)

// fileConfig is the optional TOML config file layout: a superset of
// ManagerConfig/JobConfig's toml-tagged fields, all optional. CLI flags
// take precedence over anything set here.
type fileConfig struct {
	Host            string  `toml:"host"`
	Port            string  `toml:"port"`
	RequiredWorkers int     `toml:"required_workers"`
	MaxTimeSec      int     `toml:"max_time_sec"`
	JobA            float64 `toml:"a"`
	JobB            float64 `toml:"b"`
	JobN            int64   `toml:"n"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	_, err := toml.DecodeFile(path, &fc)
	return fc, err
}

// newConfigFromFlags layers defaults, an optional TOML file, and CLI flags
// (in that order of increasing precedence) into a ManagerConfig and a
// JobConfig, so operators can check a config file into version control
// instead of repeating flags on every invocation.
func newConfigFromFlags(argv []string) (*core.ManagerConfig, *core.JobConfig, error) {
	flagSet := flag.NewFlagSet(commandName, flag.ExitOnError)

	var configPath string
	flagSet.StringVar(&configPath, "config", "", "optional path to a TOML config file")

	// A first pass just to find -config before the full parse, so file
	// values can seed the flag defaults shown in -help and be overridden
	// by any flag actually passed on the command line.
	preParse := flag.NewFlagSet(commandName, flag.ContinueOnError)
	preParse.SetOutput(new(nopWriter))
	preParse.StringVar(&configPath, "config", "", "")
	for _, name := range []string{"host", "port", "workers", "timeout", "a", "b", "n"} {
		preParse.String(name, "", "")
	}
	_ = preParse.Parse(argv[1:])

	fc, err := loadFileConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config file %q: %w", configPath, err)
	}

	mcfg := &core.ManagerConfig{
		Host:            defaultHost,
		Port:            defaultPort,
		RequiredWorkers: 1,
		MaxTimeSec:      defaultMaxTimeSec,
	}
	job := &core.JobConfig{A: defaultJobA, B: defaultJobB, N: defaultJobN}

	if fc.Host != "" {
		mcfg.Host = fc.Host
	}
	if fc.Port != "" {
		mcfg.Port = fc.Port
	}
	if fc.RequiredWorkers > 0 {
		mcfg.RequiredWorkers = fc.RequiredWorkers
	}
	if fc.MaxTimeSec > 0 {
		mcfg.MaxTimeSec = fc.MaxTimeSec
	}
	if fc.JobA != 0 {
		job.A = fc.JobA
	}
	if fc.JobB != 0 {
		job.B = fc.JobB
	}
	if fc.JobN != 0 {
		job.N = fc.JobN
	}

	flagSet.StringVar(&mcfg.Host, "host", mcfg.Host, "listen host")
	flagSet.StringVar(&mcfg.Port, "port", mcfg.Port, "listen port")
	flagSet.IntVar(&mcfg.RequiredWorkers, "workers", mcfg.RequiredWorkers, "number of workers to admit before dispatching")
	flagSet.IntVar(&mcfg.MaxTimeSec, "timeout", mcfg.MaxTimeSec, "run-level wall-clock budget, in seconds")
	flagSet.Float64Var(&job.A, "a", job.A, "lower bound of the integration interval")
	flagSet.Float64Var(&job.B, "b", job.B, "upper bound of the integration interval")
	flagSet.Int64Var(&job.N, "n", job.N, "number of trapezoid subdivisions")

	if err := flagSet.Parse(argv[1:]); err != nil {
		return nil, nil, err
	}
	return mcfg, job, nil
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
