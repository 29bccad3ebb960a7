package worker

import (
	"context"
	"net"
	"testing"
	"time"

	"distr/lib/core"
	"distr/lib/obs"
	"distr/lib/slog"
	"distr/lib/wire"

	"github.com/stretchr/testify/require"
)

type fakeCapabilities struct {
	helloPayload []byte
	execResult   []byte
	// execErr, if set, blocks ExecuteTask until ctx is done (simulating a
	// runaway task) and then returns execErr, so the worker observes
	// ctx.Err() == context.DeadlineExceeded and reports "timed_out".
	execErr error
	// execImmediateErr, if set, is returned by ExecuteTask right away,
	// simulating an application-level failure unrelated to the deadline.
	execImmediateErr error
}

func (f *fakeCapabilities) BuildHello(buf []byte) (int, error) {
	return copy(buf, f.helloPayload), nil
}

func (f *fakeCapabilities) ExecuteTask(ctx context.Context, taskPayload []byte, buf []byte) (int, error) {
	if f.execImmediateErr != nil {
		return 0, f.execImmediateErr
	}
	if f.execErr != nil {
		<-ctx.Done()
		return 0, f.execErr
	}
	return copy(buf, f.execResult), nil
}

func reservePort(t *testing.T) string {
	t.Helper()
	l, err := wire.Listen("127.0.0.1", "0")
	require.NoError(t, err)
	_, port, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	require.NoError(t, l.Close())
	return port
}

// acceptOne listens once on host:port and returns the first accepted
// connection, standing in for the manager side of the protocol so worker
// lifecycle phases can be driven deterministically.
func acceptOne(t *testing.T, host, port string) net.Conn {
	t.Helper()
	l, err := wire.Listen(host, port)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	conn, err := l.Accept()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestRunSucceedsOnFullRoundTrip(t *testing.T) {
	port := reservePort(t)
	cfg := &core.WorkerConfig{Host: "127.0.0.1", Port: port, MaxCores: 1, MaxTimeSec: 5}
	caps := &fakeCapabilities{helloPayload: []byte("hi"), execResult: []byte("done")}
	bundle := obs.New()
	defer bundle.Close()
	logger := &slog.RecordingLogger{}

	connCh := make(chan net.Conn, 1)
	go func() { connCh <- acceptOne(t, cfg.Host, cfg.Port) }()

	done := make(chan int, 1)
	go func() { done <- Run(logger, bundle, cfg, caps) }()

	conn := <-connCh
	typ, payload, err := wire.RecvPacket(conn, 2*time.Second, wire.MaxPayloadSize)
	require.NoError(t, err)
	require.Equal(t, core.PacketHello, typ)
	require.Equal(t, []byte("hi"), payload)

	require.NoError(t, wire.SendPacket(conn, core.PacketTask, []byte("task"), 2*time.Second))

	typ, payload, err = wire.RecvPacket(conn, 2*time.Second, wire.MaxPayloadSize)
	require.NoError(t, err)
	require.Equal(t, core.PacketResult, typ)
	require.Equal(t, []byte("done"), payload)

	require.NoError(t, wire.SendPacket(conn, core.PacketShutdown, nil, 2*time.Second))

	select {
	case code := <-done:
		require.Equal(t, ExitSuccess, code)
	case <-time.After(5 * time.Second):
		t.Fatal("worker Run did not complete in time")
	}
}

func TestRunExitsFailureWhenAbortReceivedBeforeTask(t *testing.T) {
	port := reservePort(t)
	cfg := &core.WorkerConfig{Host: "127.0.0.1", Port: port, MaxCores: 1, MaxTimeSec: 5}
	caps := &fakeCapabilities{helloPayload: []byte("hi")}
	bundle := obs.New()
	defer bundle.Close()
	logger := &slog.RecordingLogger{}

	connCh := make(chan net.Conn, 1)
	go func() { connCh <- acceptOne(t, cfg.Host, cfg.Port) }()

	done := make(chan int, 1)
	go func() { done <- Run(logger, bundle, cfg, caps) }()

	conn := <-connCh
	_, _, err := wire.RecvPacket(conn, 2*time.Second, wire.MaxPayloadSize)
	require.NoError(t, err)
	require.NoError(t, wire.SendPacket(conn, core.PacketAbort, nil, 2*time.Second))

	select {
	case code := <-done:
		require.Equal(t, ExitFailure, code)
	case <-time.After(5 * time.Second):
		t.Fatal("worker Run did not complete in time")
	}
}

func TestRunExitsFailureOnTaskTimeout(t *testing.T) {
	port := reservePort(t)
	cfg := &core.WorkerConfig{Host: "127.0.0.1", Port: port, MaxCores: 1, MaxTimeSec: 1}
	caps := &fakeCapabilities{helloPayload: []byte("hi"), execErr: errRunawayTask}
	bundle := obs.New()
	defer bundle.Close()
	logger := &slog.RecordingLogger{}

	connCh := make(chan net.Conn, 1)
	go func() { connCh <- acceptOne(t, cfg.Host, cfg.Port) }()

	done := make(chan int, 1)
	go func() { done <- Run(logger, bundle, cfg, caps) }()

	conn := <-connCh
	_, _, err := wire.RecvPacket(conn, 2*time.Second, wire.MaxPayloadSize)
	require.NoError(t, err)
	require.NoError(t, wire.SendPacket(conn, core.PacketTask, []byte("task"), 2*time.Second))

	typ, payload, err := wire.RecvPacket(conn, 2*time.Second, wire.MaxPayloadSize)
	require.NoError(t, err)
	require.Equal(t, core.PacketError, typ)
	require.Equal(t, "timed_out", string(payload))

	select {
	case code := <-done:
		require.Equal(t, ExitFailure, code)
	case <-time.After(5 * time.Second):
		t.Fatal("worker Run did not complete in time")
	}
}

func TestRunExitsFailureOnApplicationTaskError(t *testing.T) {
	port := reservePort(t)
	cfg := &core.WorkerConfig{Host: "127.0.0.1", Port: port, MaxCores: 1, MaxTimeSec: 5}
	caps := &fakeCapabilities{helloPayload: []byte("hi"), execImmediateErr: errBadInput}
	bundle := obs.New()
	defer bundle.Close()
	logger := &slog.RecordingLogger{}

	connCh := make(chan net.Conn, 1)
	go func() { connCh <- acceptOne(t, cfg.Host, cfg.Port) }()

	done := make(chan int, 1)
	go func() { done <- Run(logger, bundle, cfg, caps) }()

	conn := <-connCh
	_, _, err := wire.RecvPacket(conn, 2*time.Second, wire.MaxPayloadSize)
	require.NoError(t, err)
	require.NoError(t, wire.SendPacket(conn, core.PacketTask, []byte("task"), 2*time.Second))

	typ, payload, err := wire.RecvPacket(conn, 2*time.Second, wire.MaxPayloadSize)
	require.NoError(t, err)
	require.Equal(t, core.PacketError, typ)
	require.Equal(t, errBadInput.Error(), string(payload))

	select {
	case code := <-done:
		require.Equal(t, ExitFailure, code)
	case <-time.After(5 * time.Second):
		t.Fatal("worker Run did not complete in time")
	}
}

func TestRunExitsConfigOnBadPacketTypeAfterHello(t *testing.T) {
	port := reservePort(t)
	cfg := &core.WorkerConfig{Host: "127.0.0.1", Port: port, MaxCores: 1, MaxTimeSec: 5}
	caps := &fakeCapabilities{helloPayload: []byte("hi")}
	bundle := obs.New()
	defer bundle.Close()
	logger := &slog.RecordingLogger{}

	connCh := make(chan net.Conn, 1)
	go func() { connCh <- acceptOne(t, cfg.Host, cfg.Port) }()

	done := make(chan int, 1)
	go func() { done <- Run(logger, bundle, cfg, caps) }()

	conn := <-connCh
	_, _, err := wire.RecvPacket(conn, 2*time.Second, wire.MaxPayloadSize)
	require.NoError(t, err)
	require.NoError(t, wire.SendPacket(conn, core.PacketResult, nil, 2*time.Second))

	typ, payload, err := wire.RecvPacket(conn, 2*time.Second, wire.MaxPayloadSize)
	require.NoError(t, err)
	require.Equal(t, core.PacketError, typ)
	require.Equal(t, "bad_task_format", string(payload))

	select {
	case code := <-done:
		require.Equal(t, ExitConfig, code)
	case <-time.After(5 * time.Second):
		t.Fatal("worker Run did not complete in time")
	}
}

var (
	errRunawayTask = errTaskDeadline{}
	errBadInput    = errApplicationFailure{}
)

type errTaskDeadline struct{}

func (errTaskDeadline) Error() string { return "task execution exceeded its deadline" }

type errApplicationFailure struct{}

func (errApplicationFailure) Error() string { return "bad_input" }
