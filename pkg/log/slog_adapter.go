package log

import (
	"context"
	"log/slog"
)

// SlogAdapter mirrors protocol events into an operational slog.Logger, so
// a console session can follow the traffic without a log file.
//
// Error events are emitted at Warn, everything else at Debug. The
// kind-specific fields are grouped under "frame", "message", "state" or "error".
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter returns an adapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log implements Logger.
func (a *SlogAdapter) Log(event Event) {
	level := slog.LevelDebug
	if event.Error != nil {
		level = slog.LevelWarn
	}
	ctx := context.Background()
	if !a.logger.Enabled(ctx, level) {
		return
	}

	attrs := make([]slog.Attr, 0, 8)
	attrs = append(attrs,
		slog.String("conn_id", event.ConnectionID),
		slog.String("role", event.LocalRole.String()),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
	)
	if event.RemoteAddr != "" {
		attrs = append(attrs, slog.String("remote", event.RemoteAddr))
	}
	if detail, ok := eventDetail(event); ok {
		attrs = append(attrs, detail)
	}

	a.logger.LogAttrs(ctx, level, "protocol "+event.Category.String(), attrs...)
}

// eventDetail groups the fields of whichever payload the event carries.
func eventDetail(event Event) (slog.Attr, bool) {
	switch {
	case event.Frame != nil:
		return slog.Group("frame",
			slog.Int("size", event.Frame.Size),
			slog.Bool("truncated", event.Frame.Truncated),
		), true

	case event.Message != nil:
		m := event.Message
		args := []any{
			slog.String("type", m.Type.String()),
			slog.Uint64("id", uint64(m.MessageID)),
		}
		if m.Operation != nil {
			args = append(args, slog.String("op", m.Operation.String()))
		}
		if m.Target != "" {
			args = append(args, slog.String("target", m.Target))
		}
		if m.Status != nil {
			args = append(args, slog.String("status", m.Status.String()))
		}
		if m.ProcessingTime != nil {
			args = append(args, slog.Duration("took", *m.ProcessingTime))
		}
		return slog.Group("message", args...), true

	case event.StateChange != nil:
		sc := event.StateChange
		args := []any{
			slog.String("entity", sc.Entity.String()),
			slog.String("from", sc.OldState),
			slog.String("to", sc.NewState),
		}
		if sc.Reason != "" {
			args = append(args, slog.String("reason", sc.Reason))
		}
		return slog.Group("state", args...), true

	case event.Error != nil:
		args := []any{
			slog.String("layer", event.Error.Layer.String()),
			slog.String("message", event.Error.Message),
		}
		if event.Error.Context != "" {
			args = append(args, slog.String("context", event.Error.Context))
		}
		if event.Error.Code != nil {
			args = append(args, slog.Int("code", *event.Error.Code))
		}
		return slog.Group("error", args...), true
	}
	return slog.Attr{}, false
}

var _ Logger = (*SlogAdapter)(nil)
