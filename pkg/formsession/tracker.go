package formsession

import (
	"context"
	"log/slog"
)

// Tracker records analytics events. Failures never affect the form.
type Tracker interface {
	Track(ctx context.Context, event string, props map[string]any) error
}

// LogTracker writes events to a structured logger
type LogTracker struct {
	Log *slog.Logger
}

func (t LogTracker) Track(ctx context.Context, event string, props map[string]any) error {
	args := make([]any, 0, len(props)*2)
	for k, v := range props {
		args = append(args, k, v)
	}
	t.Log.InfoContext(ctx, event, args...)
	return nil
}
