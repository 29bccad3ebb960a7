package main

import (
	"flag"
	"fmt"

	"distr/lib/core"

	"github.com/BurntSushi/toml"
)

const (
	commandName = "distr-worker"

	defaultHost       = "127.0.0.1"
	defaultPort       = "5555"
	defaultMaxCores   = 1
	defaultMaxTimeSec = 30
)

type fileConfig struct {
	Host       string `toml:"host"`
	Port       string `toml:"port"`
	MaxCores   int    `toml:"max_cores"`
	MaxTimeSec int    `toml:"max_time_sec"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	_, err := toml.DecodeFile(path, &fc)
	return fc, err
}

func newConfigFromFlags(argv []string) (*core.WorkerConfig, error) {
	flagSet := flag.NewFlagSet(commandName, flag.ExitOnError)

	var configPath string
	preParse := flag.NewFlagSet(commandName, flag.ContinueOnError)
	preParse.SetOutput(new(nopWriter))
	preParse.StringVar(&configPath, "config", "", "")
	for _, name := range []string{"host", "port", "cores", "timeout"} {
		preParse.String(name, "", "")
	}
	_ = preParse.Parse(argv[1:])

	fc, err := loadFileConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file %q: %w", configPath, err)
	}

	wcfg := &core.WorkerConfig{
		Host:       defaultHost,
		Port:       defaultPort,
		MaxCores:   defaultMaxCores,
		MaxTimeSec: defaultMaxTimeSec,
	}
	if fc.Host != "" {
		wcfg.Host = fc.Host
	}
	if fc.Port != "" {
		wcfg.Port = fc.Port
	}
	if fc.MaxCores > 0 {
		wcfg.MaxCores = fc.MaxCores
	}
	if fc.MaxTimeSec > 0 {
		wcfg.MaxTimeSec = fc.MaxTimeSec
	}

	flagSet.StringVar(&configPath, "config", "", "optional path to a TOML config file")
	flagSet.StringVar(&wcfg.Host, "host", wcfg.Host, "manager host to connect to")
	flagSet.StringVar(&wcfg.Port, "port", wcfg.Port, "manager port to connect to")
	flagSet.IntVar(&wcfg.MaxCores, "cores", wcfg.MaxCores, "cores this worker makes available for intra-task fan-out")
	flagSet.IntVar(&wcfg.MaxTimeSec, "timeout", wcfg.MaxTimeSec, "per-task wall-clock budget, in seconds")

	if err := flagSet.Parse(argv[1:]); err != nil {
		return nil, err
	}
	return wcfg, nil
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
