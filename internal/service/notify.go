package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/danielbloch/gantry/internal/contract"
)

// NoopSink discards all commit events.
type NoopSink struct{}

func (NoopSink) Notify(context.Context, contract.CommitEvent) {}

// SinkFunc adapts a function to the NotificationSink interface.
type SinkFunc func(ctx context.Context, event contract.CommitEvent)

func (f SinkFunc) Notify(ctx context.Context, event contract.CommitEvent) { f(ctx, event) }

type logSink struct {
	logger *slog.Logger
}

// NewLogSink writes commit events to the provided writer as structured
// log lines.
func NewLogSink(w io.Writer) NotificationSink {
	if w == nil {
		return NoopSink{}
	}
	return &logSink{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (s *logSink) Notify(ctx context.Context, event contract.CommitEvent) {
	attrs := []any{
		"task_id", event.TaskID,
		"start", event.Start.Format("2006-01-02"),
		"end", event.End.Format("2006-01-02"),
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		s.logger.ErrorContext(ctx, "schedule_commit", attrs...)
		return
	}
	s.logger.InfoContext(ctx, "schedule_commit", attrs...)
}

// fanoutSink delivers each event to every wrapped sink.
type fanoutSink struct {
	sinks []NotificationSink
}

// NewFanoutSink combines sinks; nil entries are dropped.
func NewFanoutSink(sinks ...NotificationSink) NotificationSink {
	var kept []NotificationSink
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return &fanoutSink{sinks: kept}
}

func (f *fanoutSink) Notify(ctx context.Context, event contract.CommitEvent) {
	for _, s := range f.sinks {
		s.Notify(ctx, event)
	}
}
