// Package sandbox realizes spec.md §4.4's process-isolation option for
// sandboxed task execution: the application's task callback runs in a
// re-exec'd child process, never in the worker's own heap or goroutines,
// and a deadline that expires kills the child outright rather than asking
// it to cooperate.
//
// This is the Go equivalent of the original design's fork-plus-alarm
// pattern (original_source/src/worker.c ran the callback in-process and
// never implemented the isolation the header files anticipated; see
// SPEC_FULL.md §4.4). The pattern's shape — spawn self as a hidden
// subcommand, pipe payload in over stdin, pipe reply out over stdout,
// cancel via context — was checked against the general shape used for
// worker supervision in other_examples/e6671570_...cluster-worker.go, but
// no text from that file is reused here; it carries a proprietary license.
package sandbox

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// ErrTimedOut is returned by Execute when ctx's deadline expired before the
// child exited; the child has already been sent SIGKILL by the time this
// is returned.
var ErrTimedOut = errors.New("sandbox: task execution timed out")

// ReexecArg is the hidden subcommand argument the worker binary dispatches
// on to reach RunChild instead of normal CLI parsing. It is never matched
// by any documented flag or subcommand.
const ReexecArg = "execute-task-internal"

// Execute runs one task in an isolated child process: it re-execs the
// current binary (os.Args[0]) with ReexecArg, writes payload to the
// child's stdin, and returns whatever the child wrote to its stdout.
//
// If ctx is canceled or its deadline expires before the child exits, the
// standard library kills the child with SIGKILL and Execute returns
// ErrTimedOut. A child that exits nonzero without the context expiring
// returns its captured stderr as the error text; the parent's own state
// machine, goroutines, and heap are never at risk from a runaway or
// corrupting task.
func Execute(ctx context.Context, payload []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, os.Args[0], ReexecArg)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrTimedOut
		}
		msg := stderr.String()
		if msg == "" {
			return nil, err
		}
		return nil, errors.New("sandbox: child failed: " + msg)
	}
	return stdout.Bytes(), nil
}

// RunChild is the entry point a worker binary's main function dispatches
// to when os.Args[1] == ReexecArg, instead of ordinary flag parsing. It
// reads the full task payload from stdin, invokes fn, and writes fn's
// reply record to stdout verbatim. A non-nil error from fn is written to
// stderr and reported via the process exit code; it never panics or
// leaves a partial reply on stdout.
func RunChild(fn func(taskPayload []byte) ([]byte, error)) int {
	payload, err := io.ReadAll(os.Stdin)
	if err != nil {
		_, _ = os.Stderr.WriteString("sandbox: reading task payload: " + err.Error())
		return 1
	}

	reply, err := fn(payload)
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error())
		return 1
	}

	if _, err := os.Stdout.Write(reply); err != nil {
		return 1
	}
	return 0
}
