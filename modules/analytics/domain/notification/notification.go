package notification

import "context"

// Message is the opaque triple the engine emits for notification-worthy
// events. How it is delivered (and whether at all) is the host's business.
type Message struct {
	Title string
	Body  string
	Link  string
}

// Dispatcher is the outbound port for notifications. Implementations get
// exactly one delivery attempt per event; the engine neither retries nor
// surfaces dispatch failures.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) error
}

// NopDispatcher drops every message. It is the default when the host wires
// no delivery channel.
type NopDispatcher struct{}

func (NopDispatcher) Dispatch(ctx context.Context, msg Message) error { return nil }
