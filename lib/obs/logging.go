package obs

import (
	"context"
	"distr/lib/slog"
)

// WireLogging registers a hook handler that logs DeadlineEvents through the
// given Logger. This is the default handler cmd/manager and cmd/worker
// install; tests that want to observe deadline events directly can instead
// call Hooks.Hook themselves.
func WireLogging(b *Bundle, logger slog.Logger) {
	_, _ = b.Hooks.Hook(EventDeadlineNear, func(_ context.Context, e DeadlineEvent) error {
		logger.Warn(&slog.LogRecord{
			Msg:     "approaching deadline",
			Phase:   e.Phase,
			Details: e,
		})
		return nil
	})
	_, _ = b.Hooks.Hook(EventDeadlineExceeded, func(_ context.Context, e DeadlineEvent) error {
		logger.Warn(&slog.LogRecord{
			Msg:     "deadline exceeded",
			Phase:   e.Phase,
			Details: e,
		})
		return nil
	})
}
