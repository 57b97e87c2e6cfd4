package notify

import "context"

// Fanout dispatches notices to all configured sinks and implements the
// fire-and-forget Notifier surface the request client consumes. Sink delivery
// failures are logged, never propagated: a broken webhook must not turn a
// successful API call into a failed one.
type Fanout struct {
	sinks []Sink
	log   Logger
}

// NewFanout builds a dispatcher that fans notices out across sinks.
func NewFanout(sinks []Sink, log Logger) *Fanout {
	cp := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s == nil {
			continue
		}
		cp = append(cp, s)
	}
	return &Fanout{sinks: cp, log: ensureLogger(log)}
}

// Success emits a success notice.
func (f *Fanout) Success(ctx context.Context, text string) {
	f.send(ctx, NewNotice(LevelSuccess, text))
}

// Error emits an error notice.
func (f *Fanout) Error(ctx context.Context, text string) {
	f.send(ctx, NewNotice(LevelError, text))
}

// Info emits an informational notice.
func (f *Fanout) Info(ctx context.Context, text string) {
	f.send(ctx, NewNotice(LevelInfo, text))
}

// Send forwards the notice to every registered sink and returns the number of
// sinks that handled it.
func (f *Fanout) Send(ctx context.Context, n Notice) int {
	if f == nil || len(f.sinks) == 0 {
		return 0
	}

	successful := 0
	for _, s := range f.sinks {
		if err := s.Send(ctx, n); err != nil {
			f.log.WarnObj("notice delivery failed", "sink_error", map[string]any{
				"sink_id":   s.ID(),
				"sink_type": s.Type(),
				"error":     err.Error(),
			})
		} else {
			successful++
		}
	}
	return successful
}

func (f *Fanout) send(ctx context.Context, n Notice) {
	if f == nil {
		return
	}
	f.Send(ctx, n)
}

// Size returns the number of active sinks.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.sinks)
}
