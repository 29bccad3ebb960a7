package integrate

import (
	"testing"

	"distr/lib/core"

	"github.com/stretchr/testify/require"
)

func TestManagerContextPartitionsByCoreCount(t *testing.T) {
	ctx, err := NewManagerContext(2, core.JobConfig{A: 0, B: 10, N: 100})
	require.NoError(t, err)

	require.NoError(t, ctx.OnWorkerHello(0, helloPayload(t, 1)))
	require.NoError(t, ctx.OnWorkerHello(1, helloPayload(t, 3)))
	require.Equal(t, 4, ctx.TotalCores())

	buf := make([]byte, taskWireSize)

	n, err := ctx.BuildTask(0, buf)
	require.NoError(t, err)
	task0, err := DecodeTask(buf[:n])
	require.NoError(t, err)
	require.Equal(t, uint32(0), task0.ID)
	require.Equal(t, 0.0, task0.A)
	require.InDelta(t, 2.5, task0.B, 1e-9)
	require.Equal(t, uint32(1), task0.Threads)

	n, err = ctx.BuildTask(1, buf)
	require.NoError(t, err)
	task1, err := DecodeTask(buf[:n])
	require.NoError(t, err)
	require.Equal(t, uint32(1), task1.ID)
	require.InDelta(t, task0.B, task1.A, 1e-9)
	require.InDelta(t, 10.0, task1.B, 1e-9)
	require.Equal(t, task1.N+task0.N, int64(100))

	require.NoError(t, ctx.OnWorkerResult(0, resultPayload(t, 0, 1.0)))
	require.NoError(t, ctx.OnWorkerResult(1, resultPayload(t, 1, 2.0)))
	require.InDelta(t, 3.0, ctx.Total(), 1e-9)
}

func TestManagerContextRejectsBadHello(t *testing.T) {
	ctx, err := NewManagerContext(1, core.JobConfig{A: 0, B: 1, N: 10})
	require.NoError(t, err)
	require.Error(t, ctx.OnWorkerHello(0, []byte{1}))
}

func TestNewManagerContextRejectsBadJob(t *testing.T) {
	_, err := NewManagerContext(1, core.JobConfig{A: 1, B: 0, N: 10})
	require.Error(t, err)

	_, err = NewManagerContext(0, core.JobConfig{A: 0, B: 1, N: 10})
	require.Error(t, err)
}

func helloPayload(t *testing.T, cores uint32) []byte {
	t.Helper()
	buf := make([]byte, helloWireSize)
	EncodeHello(buf, Hello{Cores: cores})
	return buf
}

func resultPayload(t *testing.T, id uint32, value float64) []byte {
	t.Helper()
	buf := make([]byte, resultWireSize)
	EncodeResult(buf, Result{ID: id, Value: value})
	return buf
}
