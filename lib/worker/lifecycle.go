package worker

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"distr/lib/core"
	"distr/lib/obs"
	"distr/lib/slog"
	"distr/lib/wire"
)

const (
	connectDeadline      = 5 * time.Second
	helloSendDeadline    = 5 * time.Second
	resultSendDeadline   = 5 * time.Second
	shutdownRecvDeadline = 5 * time.Second
)

// Run drives one worker invocation end to end: connect, send HELLO, await
// exactly one TASK, execute it, send RESULT (or ERROR on failure), then
// await SHUTDOWN or ABORT. It returns the process exit code the caller
// should use (spec.md §6).
func Run(logger slog.Logger, bundle *obs.Bundle, cfg *core.WorkerConfig, caps Capabilities) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	conn, err := wire.ConnectWithDeadline(cfg.Host, cfg.Port, connectDeadline)
	if err != nil {
		logger.Error(&slog.LogRecord{Msg: "connect failed", Phase: "connecting", Error: err})
		return ExitConfig
	}
	defer func() { _ = conn.Close() }()

	buf := make([]byte, wire.MaxPayloadSize)

	n, err := caps.BuildHello(buf)
	if err != nil {
		logger.Error(&slog.LogRecord{Msg: "build_hello failed", Phase: "connecting", Error: err})
		return ExitConfig
	}
	if err := wire.SendPacket(conn, core.PacketHello, buf[:n], helloSendDeadline); err != nil {
		logger.Error(&slog.LogRecord{Msg: "send HELLO failed", Phase: "connecting", Error: err})
		return ExitConfig
	}

	runDeadline := time.Duration(cfg.MaxTimeSec) * time.Second
	_, taskSpan := bundle.Tracer.StartSpan(ctx, obs.PhaseDispatching)
	t, payload, err := wire.RecvPacket(conn, runDeadline, wire.MaxPayloadSize)
	taskSpan.Finish()
	if err != nil {
		logger.Error(&slog.LogRecord{Msg: "recv after HELLO failed", Phase: "awaiting_task", Error: err})
		return ExitConfig
	}
	switch t {
	case core.PacketAbort, core.PacketShutdown:
		logger.Info(&slog.LogRecord{Msg: "turned away before a task was assigned", Phase: "awaiting_task"})
		return ExitFailure
	case core.PacketTask:
		// fall through to execution below
	default:
		_ = wire.SendPacket(conn, core.PacketError, []byte("bad_task_format"), resultSendDeadline)
		logger.Error(&slog.LogRecord{Msg: "unexpected packet type while awaiting task", Phase: "awaiting_task"})
		return ExitConfig
	}

	taskPayload := payload

	execCtx, cancel := context.WithTimeout(ctx, runDeadline)
	defer cancel()

	_, execSpan := bundle.Tracer.StartSpan(execCtx, obs.PhaseExecuting)
	resultBuf := make([]byte, wire.MaxPayloadSize)
	n, execErr := caps.ExecuteTask(execCtx, taskPayload, resultBuf)
	execSpan.Finish()

	if execErr != nil {
		if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			logger.Error(&slog.LogRecord{Msg: "task execution timed out", Phase: "executing", Error: execErr})
			_ = wire.SendPacket(conn, core.PacketError, []byte("timed_out"), resultSendDeadline)
			return ExitFailure
		}
		logger.Error(&slog.LogRecord{Msg: "task execution failed", Phase: "executing", Error: execErr})
		_ = wire.SendPacket(conn, core.PacketError, []byte(execErr.Error()), resultSendDeadline)
		return ExitFailure
	}

	if err := wire.SendPacket(conn, core.PacketResult, resultBuf[:n], resultSendDeadline); err != nil {
		logger.Error(&slog.LogRecord{Msg: "send RESULT failed", Phase: "sent_reply", Error: err})
		return ExitConfig
	}

	t, _, err = wire.RecvPacket(conn, shutdownRecvDeadline, wire.MaxPayloadSize)
	if err != nil {
		logger.Error(&slog.LogRecord{Msg: "recv after RESULT failed", Phase: "awaiting_shutdown", Error: err})
		return ExitConfig
	}
	if t != core.PacketShutdown {
		logger.Error(&slog.LogRecord{Msg: "expected SHUTDOWN, got " + t.String(), Phase: "awaiting_shutdown"})
		return ExitFailure
	}

	logger.Info(&slog.LogRecord{Msg: "run complete", Phase: "done"})
	return ExitSuccess
}
