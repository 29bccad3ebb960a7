// Package worker implements the worker-side lifecycle state machine:
// connect, send HELLO, await one TASK, execute it, send one RESULT (or
// ERROR), then await SHUTDOWN/ABORT.
//
// As with lib/manager, the worker core never interprets HELLO/TASK/RESULT
// payloads; it calls out to a Capabilities implementation supplied by the
// application (lib/integrate, for the trapezoidal integrator example).
package worker

import "context"

// Capabilities is the worker-side application adapter (spec.md §4.5).
type Capabilities interface {
	// BuildHello writes this worker's HELLO payload into buf (length and
	// capacity wire.MaxPayloadSize) and returns how many bytes were
	// written.
	BuildHello(buf []byte) (n int, err error)

	// ExecuteTask runs the task described by taskPayload to completion or
	// until ctx is done, writing the RESULT payload into buf and
	// returning how many bytes were written. A non-nil error causes the
	// worker to send ERROR instead of RESULT; ctx.Err() distinguishes a
	// timeout from an application-level failure.
	ExecuteTask(ctx context.Context, taskPayload []byte, buf []byte) (n int, err error)
}
