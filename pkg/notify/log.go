package notify

import "context"

// logSink writes notices to the structured logger. It is the default surface
// for headless environments where no UI consumes notifications.
type logSink struct {
	id  string
	log Logger
}

func newLogSink(_ context.Context, cfg SinkConfig, log Logger) (Sink, error) {
	return &logSink{id: cfg.ID, log: ensureLogger(log)}, nil
}

func (s *logSink) ID() string   { return s.id }
func (s *logSink) Type() string { return TypeLog }

func (s *logSink) Send(_ context.Context, n Notice) error {
	fields := map[string]any{
		"level": string(n.Level),
		"text":  n.Text,
		"at":    n.At,
	}
	if n.Level == LevelError {
		s.log.ErrorObj("notice", "notice", fields)
	} else {
		s.log.InfoObj("notice", "notice", fields)
	}
	return nil
}
