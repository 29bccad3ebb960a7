package integrate

import (
	"context"
	"os"
	"strconv"
	"time"

	"distr/lib/core"
	"distr/lib/sandbox"
	"distr/lib/worker"
)

// maxCoresEnvVar and deadlineEnvVar carry state across the sandbox.Execute
// re-exec boundary: the child process is a fresh os/exec invocation, not a
// goroutine, so the only channel available besides stdin/stdout is the
// environment sandbox.Execute inherits from the parent (exec.Cmd leaves
// Env nil, which means "inherit os.Environ()").
const (
	maxCoresEnvVar = "DISTR_WORKER_MAX_CORES"
	deadlineEnvVar = "DISTR_TASK_DEADLINE_UNIX_NANO"
)

// WorkerContext is the worker-side Capabilities implementation for the
// trapezoidal integrator: it reports its configured core count in HELLO,
// and executes an assigned interval via the sandboxed child (lib/sandbox),
// clamping the manager-assigned thread count to its own configured ceiling.
//
// Ported from original_source/examples/integral_app.c's cb_build_hello and
// cb_execute_task.
type WorkerContext struct {
	cfg *core.WorkerConfig
}

var _ worker.Capabilities = (*WorkerContext)(nil)

func NewWorkerContext(cfg *core.WorkerConfig) *WorkerContext {
	return &WorkerContext{cfg: cfg}
}

func (w *WorkerContext) BuildHello(buf []byte) (int, error) {
	return EncodeHello(buf, Hello{Cores: uint32(w.cfg.MaxCores)}), nil
}

func (w *WorkerContext) ExecuteTask(ctx context.Context, taskPayload []byte, buf []byte) (int, error) {
	_ = os.Setenv(maxCoresEnvVar, strconv.Itoa(w.cfg.MaxCores))
	if deadline, ok := ctx.Deadline(); ok {
		_ = os.Setenv(deadlineEnvVar, strconv.FormatInt(deadline.UnixNano(), 10))
	} else {
		_ = os.Unsetenv(deadlineEnvVar)
	}

	reply, err := sandbox.Execute(ctx, taskPayload)
	if err != nil {
		return 0, err
	}
	return copy(buf, reply), nil
}

// ChildExecute is the function a worker's main passes to sandbox.RunChild
// when invoked with sandbox.ReexecArg: it decodes a TASK payload, runs the
// integration fanned out over goroutines (§4.4 option (b), nested inside
// the process-isolated child, §4.4 option (a)), and encodes a RESULT
// payload. If the parent's deadline was communicated via deadlineEnvVar,
// the fan-out's own context is bound to the same deadline, so a task that
// is about to be hard-killed gets a chance to notice and return cleanly
// first.
func ChildExecute(taskPayload []byte) ([]byte, error) {
	task, err := DecodeTask(taskPayload)
	if err != nil {
		return nil, err
	}

	threads := int(task.Threads)
	if threads < 1 {
		threads = 1
	}
	if raw, ok := os.LookupEnv(maxCoresEnvVar); ok {
		if max, err := strconv.Atoi(raw); err == nil && max > 0 && threads > max {
			threads = max
		}
	}

	ctx := context.Background()
	if raw, ok := os.LookupEnv(deadlineEnvVar); ok {
		if nanos, err := strconv.ParseInt(raw, 10, 64); err == nil {
			var cancel context.CancelFunc
			ctx, cancel = context.WithDeadline(ctx, time.Unix(0, nanos))
			defer cancel()
		}
	}

	val, err := IntegrateTrapz(ctx, task.A, task.B, task.N, threads)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, resultWireSize)
	n := EncodeResult(buf, Result{ID: task.ID, Value: val})
	return buf[:n], nil
}
