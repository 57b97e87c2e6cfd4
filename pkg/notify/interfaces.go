package notify

import "context"

// Sink delivers notices to a downstream surface (log, webhook, queue, broker).
type Sink interface {
	ID() string
	Type() string
	Send(ctx context.Context, n Notice) error
}
