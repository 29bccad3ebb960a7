// Package manager implements the manager-side lifecycle state machine:
// admitting exactly RequiredWorkers workers, dispatching one task to each,
// collecting one result from each, and broadcasting SHUTDOWN or ABORT.
//
// The manager never interprets HELLO/TASK/RESULT payloads; it calls out to
// a Capabilities implementation supplied by the application (lib/integrate,
// for the trapezoidal integrator example) for everything payload-shaped.
package manager

// Capabilities is the manager-side application adapter (spec.md §4.5): the
// three callbacks the lifecycle state machine invokes, plus whatever
// opaque state the application keeps in its implementing type. An
// interface implemented by the application's own type stands in for the
// original's function-pointer-plus-context-pointer pairing; no core code
// ever needs to see the application's context type.
type Capabilities interface {
	// OnWorkerHello validates and records a newly admitted worker's HELLO
	// payload. A non-nil error causes the connection to be dropped and
	// admission to continue waiting for a replacement (the manager does
	// not retry or otherwise interpret the failure).
	OnWorkerHello(workerIndex int, helloPayload []byte) error

	// BuildTask produces the TASK payload for the given slot by writing
	// into buf (which has length and capacity wire.MaxPayloadSize) and
	// returning how many bytes were written. No allocation is required
	// in the common path.
	BuildTask(workerIndex int, buf []byte) (n int, err error)

	// OnWorkerResult integrates one worker's RESULT payload into the
	// application's accumulators. A non-nil error fails the run.
	OnWorkerResult(workerIndex int, resultPayload []byte) error
}
