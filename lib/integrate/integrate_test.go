package integrate

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntegrateTrapzKnownIntegral(t *testing.T) {
	// ∫0..1 4/(1+x^2) dx = pi
	got, err := IntegrateTrapz(context.Background(), 0, 1, 2_000_000, 4)
	require.NoError(t, err)
	require.InDelta(t, math.Pi, got, 1e-6)
}

func TestIntegrateTrapzSingleThreadMatchesMultiThread(t *testing.T) {
	single, err := IntegrateTrapz(context.Background(), 0, 1, 100000, 1)
	require.NoError(t, err)
	multi, err := IntegrateTrapz(context.Background(), 0, 1, 100000, 8)
	require.NoError(t, err)
	require.InDelta(t, single, multi, 1e-9)
}

func TestIntegrateTrapzEmptyInterval(t *testing.T) {
	got, err := IntegrateTrapz(context.Background(), 1, 1, 1000, 4)
	require.NoError(t, err)
	require.Zero(t, got)
}

func TestIntegrateTrapzZeroSubdivisions(t *testing.T) {
	got, err := IntegrateTrapz(context.Background(), 0, 1, 0, 4)
	require.NoError(t, err)
	require.Zero(t, got)
}

func TestIntegrateTrapzClampsThreadsToN(t *testing.T) {
	got, err := IntegrateTrapz(context.Background(), 0, 1, 3, 100)
	require.NoError(t, err)
	require.Greater(t, got, 0.0)
}

func TestIntegrateTrapzCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := IntegrateTrapz(ctx, 0, 1, 10_000_000, 4)
	require.Error(t, err)
}
