package manager

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"time"

	"distr/lib/core"
	liberrors "distr/lib/errors"
	"distr/lib/obs"
	"distr/lib/slog"
	"distr/lib/wire"
)

const (
	helloDeadline    = 5 * time.Second
	taskSendDeadline = 5 * time.Second
	broadcastTimeout = 5 * time.Second
	acceptPollPeriod = 1 * time.Second
	// deadlineNearThreshold is the fraction of the run budget that must
	// elapse before an obs.EventDeadlineNear hook fires.
	deadlineNearThreshold = 0.8
)

// Run drives one manager invocation end to end: listen, admit
// cfg.RequiredWorkers workers, dispatch one TASK to each, collect one
// RESULT from each, then broadcast SHUTDOWN (success) or ABORT (failure).
// It returns the process exit code the caller should use (spec.md §6).
func Run(logger slog.Logger, bundle *obs.Bundle, cfg *core.ManagerConfig, caps Capabilities) int {
	listener, err := wire.Listen(cfg.Host, cfg.Port)
	if err != nil {
		logger.Error(&slog.LogRecord{Msg: "listen failed", Error: err})
		return ExitConfig
	}
	defer func() { _ = listener.Close() }()

	logger.Info(&slog.LogRecord{
		Msg:   "listening, awaiting workers",
		Phase: "admitting",
		Details: map[string]any{
			"host":             cfg.Host,
			"port":             cfg.Port,
			"required_workers": cfg.RequiredWorkers,
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := bundle.Clock.Now()
	runDeadline := start.Add(time.Duration(cfg.MaxTimeSec) * time.Second)
	runTimeout := time.Duration(cfg.MaxTimeSec) * time.Second

	slots := make([]core.WorkerSlot, cfg.RequiredWorkers)

	admitted, admitErr := admit(ctx, logger, bundle, listener, cfg, caps, slots, runDeadline)
	if admitErr != nil {
		broadcast(logger, bundle, slots[:admitted], core.PacketAbort)
		closeSlots(logger, slots[:admitted])
		recordOutcome(bundle, start, false)
		return ExitFailure
	}

	drainLateConnection(listener)

	if err := dispatch(logger, bundle, cfg, caps, slots); err != nil {
		broadcast(logger, bundle, slots, core.PacketAbort)
		closeSlots(logger, slots)
		recordOutcome(bundle, start, false)
		return ExitFailure
	}

	if err := collect(ctx, logger, bundle, cfg, caps, slots, runTimeout, runDeadline); err != nil {
		broadcast(logger, bundle, slots, core.PacketAbort)
		closeSlots(logger, slots)
		recordOutcome(bundle, start, false)
		return ExitFailure
	}

	broadcast(logger, bundle, slots, core.PacketShutdown)
	closeSlots(logger, slots)
	recordOutcome(bundle, start, true)
	return ExitSuccess
}

func recordOutcome(bundle *obs.Bundle, start time.Time, success bool) {
	if success {
		bundle.Metrics.Counter(obs.RunOutcomeSuccess).Inc()
	} else {
		bundle.Metrics.Counter(obs.RunOutcomeFailure).Inc()
	}
	bundle.Metrics.Gauge(obs.RunDurationMs).Set(float64(bundle.Clock.Now().Sub(start).Milliseconds()))
}

// admit implements the Admitting state: repeatedly accept with a short
// poll deadline until RequiredWorkers slots are filled, the run deadline
// expires, or an interrupt is observed. It returns the number of slots
// successfully filled; a non-nil error means admission failed before
// filling every slot and the run must transition to Failing.
func admit(
	ctx context.Context,
	logger slog.Logger,
	bundle *obs.Bundle,
	listener net.Listener,
	cfg *core.ManagerConfig,
	caps Capabilities,
	slots []core.WorkerSlot,
	runDeadline time.Time,
) (int, error) {
	ctx, span := bundle.Tracer.StartSpan(ctx, obs.PhaseAdmitting)
	defer span.Finish()

	admitted := 0
	for admitted < cfg.RequiredWorkers {
		if ctx.Err() != nil {
			logger.Error(&slog.LogRecord{Msg: "interrupted during admission", Phase: "admitting"})
			return admitted, errInterrupted
		}

		remaining := runDeadline.Sub(bundle.Clock.Now())
		if remaining <= 0 {
			logger.Error(&slog.LogRecord{Msg: "timeout waiting for workers", Phase: "admitting"})
			bundle.NotifyDeadlineExceeded(ctx, "admitting", time.Duration(cfg.MaxTimeSec)*time.Second, time.Duration(cfg.MaxTimeSec)*time.Second-remaining)
			return admitted, wire.ErrTimeout
		}
		bundle.NotifyNearDeadline(ctx, "admitting", time.Duration(cfg.MaxTimeSec)*time.Second, time.Duration(cfg.MaxTimeSec)*time.Second-remaining, deadlineNearThreshold)

		pollDeadline := acceptPollPeriod
		if remaining < pollDeadline {
			pollDeadline = remaining
		}
		conn, err := wire.AcceptWithDeadline(listener, pollDeadline)
		if err != nil {
			continue
		}

		t, payload, err := wire.RecvPacket(conn, helloDeadline, wire.MaxPayloadSize)
		if err != nil || t != core.PacketHello {
			_ = conn.Close()
			continue
		}
		if err := caps.OnWorkerHello(admitted, payload); err != nil {
			_ = conn.Close()
			continue
		}

		slots[admitted] = core.WorkerSlot{Conn: conn, Alive: true}
		admitted++
		bundle.Metrics.Counter(obs.WorkersAdmitted).Inc()
		idx := admitted - 1
		logger.Info(&slog.LogRecord{Msg: "worker joined", Phase: "admitting", WorkerIndex: slog.WorkerIdx(idx)})
	}
	return admitted, nil
}

// drainLateConnection handles spec.md §9 open question (b): a connection
// accepted in the brief window after admission has completed (but before
// the listener is closed, which happens only at the very end of Run) must
// be closed immediately without being read.
func drainLateConnection(listener net.Listener) {
	conn, err := wire.AcceptWithDeadline(listener, 10*time.Millisecond)
	if err == nil {
		_ = conn.Close()
	}
}

// dispatch implements the Dispatching state: build and send one TASK to
// every admitted slot, in slot order.
func dispatch(logger slog.Logger, bundle *obs.Bundle, cfg *core.ManagerConfig, caps Capabilities, slots []core.WorkerSlot) error {
	_, span := bundle.Tracer.StartSpan(context.Background(), obs.PhaseDispatching)
	defer span.Finish()

	buf := make([]byte, wire.MaxPayloadSize)
	for i := range slots {
		n, err := caps.BuildTask(i, buf)
		if err != nil {
			logger.Error(&slog.LogRecord{Msg: "build_task failed", Phase: "dispatching", WorkerIndex: slog.WorkerIdx(i), Error: err})
			return err
		}
		if err := wire.SendPacket(slots[i].Conn, core.PacketTask, buf[:n], taskSendDeadline); err != nil {
			logger.Error(&slog.LogRecord{Msg: "send TASK failed", Phase: "dispatching", WorkerIndex: slog.WorkerIdx(i), Error: err})
			return err
		}
		bundle.Metrics.Counter(obs.TasksDispatched).Inc()
	}
	return nil
}

// collect implements the Collecting state: receive one RESULT from every
// admitted slot, in slot order. Per the original manager's recv deadline
// (original_source/src/manager.c passes mcfg->max_time_sec, not a
// recomputed remaining duration, to every recv call), each call's own
// deadline is the full run timeout; what actually bounds total collect
// time is the runDeadline check performed before each call.
func collect(
	ctx context.Context,
	logger slog.Logger,
	bundle *obs.Bundle,
	cfg *core.ManagerConfig,
	caps Capabilities,
	slots []core.WorkerSlot,
	runTimeout time.Duration,
	runDeadline time.Time,
) error {
	ctx, span := bundle.Tracer.StartSpan(ctx, obs.PhaseCollecting)
	defer span.Finish()

	for i := range slots {
		if ctx.Err() != nil {
			logger.Error(&slog.LogRecord{Msg: "interrupted during collect", Phase: "collecting", WorkerIndex: slog.WorkerIdx(i)})
			return errInterrupted
		}
		if bundle.Clock.Now().After(runDeadline) {
			logger.Error(&slog.LogRecord{Msg: "timeout during collect", Phase: "collecting", WorkerIndex: slog.WorkerIdx(i)})
			return wire.ErrTimeout
		}

		t, payload, err := wire.RecvPacket(slots[i].Conn, runTimeout, wire.MaxPayloadSize)
		if err != nil {
			logger.Error(&slog.LogRecord{Msg: "worker disconnected or timed out", Phase: "collecting", WorkerIndex: slog.WorkerIdx(i), Error: err})
			return err
		}

		switch t {
		case core.PacketResult:
			if err := caps.OnWorkerResult(i, payload); err != nil {
				logger.Error(&slog.LogRecord{Msg: "on_worker_result rejected payload", Phase: "collecting", WorkerIndex: slog.WorkerIdx(i), Error: err})
				return err
			}
			bundle.Metrics.Counter(obs.ResultsCollected).Inc()
		case core.PacketError:
			logger.Error(&slog.LogRecord{Msg: "worker error: " + string(payload), Phase: "collecting", WorkerIndex: slog.WorkerIdx(i)})
			return errWorkerReportedError
		default:
			logger.Error(&slog.LogRecord{Msg: "malformed reply", Phase: "collecting", WorkerIndex: slog.WorkerIdx(i)})
			return wire.ErrInvalidPacketType
		}
	}
	return nil
}

// broadcast sends msgType with an empty payload to every slot marked
// Alive, in slot order, ignoring send errors per spec.md §4.2: a peer that
// has already disconnected cannot be notified, and that is not itself a
// new failure.
func broadcast(logger slog.Logger, bundle *obs.Bundle, slots []core.WorkerSlot, msgType core.PacketType) {
	_, span := bundle.Tracer.StartSpan(context.Background(), obs.PhaseBroadcast)
	span.SetTag(obs.TagOutcome, msgType.String())
	defer span.Finish()

	for i := range slots {
		if !slots[i].Alive || slots[i].Conn == nil {
			continue
		}
		if err := wire.SendPacket(slots[i].Conn, msgType, nil, broadcastTimeout); err != nil {
			logger.Warn(&slog.LogRecord{Msg: "broadcast send failed", Phase: "broadcast", WorkerIndex: slog.WorkerIdx(i), Error: err})
		}
	}
}

// closeSlots closes every admitted slot's connection, aggregating any
// close errors (tagged by slot index, so the logged line stays
// diagnosable) for a single log line rather than one line per slot.
func closeSlots(logger slog.Logger, slots []core.WorkerSlot) {
	errCh := make(chan liberrors.IndexedError, len(slots))
	for i := range slots {
		if slots[i].Conn == nil {
			continue
		}
		errCh <- liberrors.IndexedError{Index: i, Err: slots[i].Conn.Close()}
	}
	close(errCh)
	if err := liberrors.AggregateErrorFromChannel(errCh); err != nil {
		logger.Warn(&slog.LogRecord{Msg: "errors closing worker connections", Error: err})
	}
}

var (
	errInterrupted         = errors.New("manager: interrupted")
	errWorkerReportedError = errors.New("manager: worker reported an error")
)
