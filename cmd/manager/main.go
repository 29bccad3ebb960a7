// Command distr-manager runs one manager invocation of the worker
// coordination protocol, using the trapezoidal integrator as its example
// application.
package main

import (
	"fmt"
	"os"
	"time"

	"distr/lib/integrate"
	"distr/lib/manager"
	"distr/lib/obs"
	"distr/lib/slog"

	_ "go.uber.org/automaxprocs/maxprocs"
)

func main() {
	logger := slog.GetDefaultLogger()

	mcfg, job, err := newConfigFromFlags(os.Args)
	if err != nil {
		logger.Error(&slog.LogRecord{Msg: "failed to parse flags", Error: err})
		os.Exit(manager.ExitConfig)
	}
	logger.Info(&slog.LogRecord{Msg: "loaded config", Details: mcfg})

	if err := mcfg.Validate(); err != nil {
		logger.Error(&slog.LogRecord{Msg: "manager configuration is invalid", Error: err})
		os.Exit(manager.ExitConfig)
	}

	appCtx, err := integrate.NewManagerContext(mcfg.RequiredWorkers, *job)
	if err != nil {
		logger.Error(&slog.LogRecord{Msg: "invalid job configuration", Error: err})
		os.Exit(manager.ExitConfig)
	}

	bundle := obs.New()
	defer bundle.Close()
	obs.WireLogging(bundle, logger)

	start := time.Now()
	code := manager.Run(logger, bundle, mcfg, appCtx)
	elapsed := time.Since(start)

	if code == manager.ExitSuccess {
		fmt.Printf("INTEGRAL=%.12f\n", appCtx.Total())
		fmt.Printf("TOTAL_TIME_SEC=%.6f\n", elapsed.Seconds())
		fmt.Printf("TOTAL_CORES=%d\n", appCtx.TotalCores())
	}
	os.Exit(code)
}
