// Package obs wires the manager and worker lifecycle state machines to a
// shared observability bundle: an injectable clock (so deadline logic is
// deterministically testable), counters and gauges, tracing spans, and
// event hooks for near-deadline/deadline-exceeded conditions.
//
// The shape is lifted from zoobzio/pipz's Timeout connector: a
// clockz.Clock for time, a metricz.Registry for counters/gauges, a
// tracez.Tracer for spans, and a hookz.Hooks for fire-and-forget events.
package obs

import (
	"context"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Metric and span keys shared by both the manager and worker lifecycles.
const (
	WorkersAdmitted   = metricz.Key("run.workers.admitted")
	TasksDispatched   = metricz.Key("run.tasks.dispatched")
	ResultsCollected  = metricz.Key("run.results.collected")
	RunOutcomeSuccess = metricz.Key("run.outcome.success.total")
	RunOutcomeFailure = metricz.Key("run.outcome.failure.total")
	RunDurationMs     = metricz.Key("run.duration.ms")

	PhaseAdmitting   = tracez.Key("phase.admitting")
	PhaseDispatching = tracez.Key("phase.dispatching")
	PhaseCollecting  = tracez.Key("phase.collecting")
	PhaseBroadcast   = tracez.Key("phase.broadcast")
	PhaseExecuting   = tracez.Key("phase.executing")

	TagWorkerIndex = tracez.Tag("worker_index")
	TagOutcome     = tracez.Tag("outcome")
)

// DeadlineEvent is emitted through Hooks when a wall-clock deadline is
// close to expiry or has just expired.
type DeadlineEvent struct {
	Phase     string
	Budget    time.Duration
	Elapsed   time.Duration
	Timestamp time.Time
}

const (
	// EventDeadlineNear fires once a phase has used more than 80% of its
	// wall-clock budget.
	EventDeadlineNear = hookz.Key("deadline.near")
	// EventDeadlineExceeded fires when a phase's wall-clock budget has
	// fully expired.
	EventDeadlineExceeded = hookz.Key("deadline.exceeded")
)

// Bundle holds the observability primitives a manager or worker run shares
// across its lifecycle phases. The zero value is not usable; construct one
// with New.
type Bundle struct {
	Clock   clockz.Clock
	Metrics *metricz.Registry
	Tracer  *tracez.Tracer
	Hooks   *hookz.Hooks[DeadlineEvent]
}

// New builds a Bundle using the real wall clock. Tests that need
// deterministic deadline behaviour should construct a Bundle directly with
// a clockz.NewFakeClock() in place of Clock.
func New() *Bundle {
	b := &Bundle{
		Clock:   clockz.RealClock,
		Metrics: metricz.New(),
		Tracer:  tracez.New(),
		Hooks:   hookz.New[DeadlineEvent](),
	}
	b.Metrics.Counter(WorkersAdmitted)
	b.Metrics.Counter(TasksDispatched)
	b.Metrics.Counter(ResultsCollected)
	b.Metrics.Counter(RunOutcomeSuccess)
	b.Metrics.Counter(RunOutcomeFailure)
	b.Metrics.Gauge(RunDurationMs)
	return b
}

// Close releases the Bundle's tracer and hook resources. Call once at the
// end of a manager or worker run.
func (b *Bundle) Close() {
	b.Tracer.Close()
	b.Hooks.Close()
}

// NotifyNearDeadline emits EventDeadlineNear if elapsed has passed
// threshold (fraction, e.g. 0.8) of budget. Errors from hook handlers are
// intentionally discarded: deadline notification is best-effort telemetry,
// never a control-flow signal.
func (b *Bundle) NotifyNearDeadline(ctx context.Context, phase string, budget, elapsed time.Duration, threshold float64) {
	if budget <= 0 || float64(elapsed) < threshold*float64(budget) {
		return
	}
	_ = b.Hooks.Emit(ctx, EventDeadlineNear, DeadlineEvent{
		Phase:     phase,
		Budget:    budget,
		Elapsed:   elapsed,
		Timestamp: b.Clock.Now(),
	})
}

// NotifyDeadlineExceeded emits EventDeadlineExceeded for the given phase.
func (b *Bundle) NotifyDeadlineExceeded(ctx context.Context, phase string, budget, elapsed time.Duration) {
	_ = b.Hooks.Emit(ctx, EventDeadlineExceeded, DeadlineEvent{
		Phase:     phase,
		Budget:    budget,
		Elapsed:   elapsed,
		Timestamp: b.Clock.Now(),
	})
}
