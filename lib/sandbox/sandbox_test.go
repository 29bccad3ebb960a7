package sandbox

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestMain lets this test binary also act as its own sandboxed child,
// following the standard library's own os/exec_test.go helper-process
// idiom: when invoked with the magic env var set, run as a child instead
// of as the test suite, so Execute's re-exec contract can be tested
// without a separate worker binary.
func TestMain(m *testing.M) {
	if os.Getenv("DISTR_SANDBOX_TEST_HELPER") == "1" {
		os.Exit(RunChild(helperChildFn))
	}
	os.Exit(m.Run())
}

func helperChildFn(taskPayload []byte) ([]byte, error) {
	switch string(taskPayload) {
	case "sleep":
		time.Sleep(5 * time.Second)
		return []byte("should never get here"), nil
	case "fail":
		return nil, errors.New("boom")
	default:
		reply := append([]byte("echo:"), taskPayload...)
		return reply, nil
	}
}

func execHelper(t *testing.T, ctx context.Context, payload []byte) ([]byte, error) {
	t.Helper()
	t.Setenv("DISTR_SANDBOX_TEST_HELPER", "1")
	return Execute(ctx, payload)
}

func TestExecuteRoundTrip(t *testing.T) {
	reply, err := execHelper(t, context.Background(), []byte("hello"))
	require.NoError(t, err)
	require.Equal(t, "echo:hello", string(reply))
}

func TestExecuteReturnsErrTimedOutOnDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := execHelper(t, ctx, []byte("sleep"))
	require.ErrorIs(t, err, ErrTimedOut)
}

func TestExecuteSurfacesChildError(t *testing.T) {
	_, err := execHelper(t, context.Background(), []byte("fail"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrTimedOut)
}
