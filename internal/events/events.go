// Package events carries ledger mutations to interested sinks (the websocket
// hub, the audit journal) after they have been committed.
package events

import (
	"context"
	"time"
)

type Kind string

const (
	TradeCreated   Kind = "trade.created"
	TradeCancelled Kind = "trade.cancelled"
	PositionClosed Kind = "position.closed"
)

// Channel groups kinds for websocket subscriptions.
func (k Kind) Channel() string {
	switch k {
	case TradeCreated, TradeCancelled:
		return "trades"
	case PositionClosed:
		return "positions"
	default:
		return ""
	}
}

type Event struct {
	Type      Kind      `json:"type"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

func New(kind Kind, data any, at time.Time) Event {
	return Event{Type: kind, Data: data, Timestamp: at.UTC()}
}

// Publisher must not block for long: it is called on the request path.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

type PublisherFunc func(ctx context.Context, e Event)

func (f PublisherFunc) Publish(ctx context.Context, e Event) { f(ctx, e) }

// Fanout publishes to every non-nil publisher in order.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, e Event) {
	for _, p := range f {
		if p != nil {
			p.Publish(ctx, e)
		}
	}
}

type nop struct{}

func (nop) Publish(context.Context, Event) {}

// Nop discards every event.
var Nop Publisher = nop{}
