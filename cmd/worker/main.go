// Command distr-worker runs one worker invocation of the worker
// coordination protocol, using the trapezoidal integrator as its example
// application.
//
// Invoked with sandbox.ReexecArg as its sole argument, it instead acts as
// the sandboxed child for its own parent invocation (lib/sandbox, spec.md
// §4.4): this path never goes through flag parsing.
package main

import (
	"os"

	"distr/lib/integrate"
	"distr/lib/obs"
	"distr/lib/sandbox"
	"distr/lib/slog"
	"distr/lib/worker"

	_ "go.uber.org/automaxprocs/maxprocs"
)

func main() {
	if len(os.Args) == 2 && os.Args[1] == sandbox.ReexecArg {
		os.Exit(sandbox.RunChild(integrate.ChildExecute))
	}

	logger := slog.GetDefaultLogger()

	wcfg, err := newConfigFromFlags(os.Args)
	if err != nil {
		logger.Error(&slog.LogRecord{Msg: "failed to parse flags", Error: err})
		os.Exit(worker.ExitConfig)
	}
	logger.Info(&slog.LogRecord{Msg: "loaded config", Details: wcfg})

	if err := wcfg.Validate(); err != nil {
		logger.Error(&slog.LogRecord{Msg: "worker configuration is invalid", Error: err})
		os.Exit(worker.ExitConfig)
	}

	bundle := obs.New()
	defer bundle.Close()
	obs.WireLogging(bundle, logger)

	appCtx := integrate.NewWorkerContext(wcfg)
	os.Exit(worker.Run(logger, bundle, wcfg, appCtx))
}
