package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// ReviewSubject is the NATS subject review events are published on.
const ReviewSubject = "speak90.analytics.review"

// NATSEmitter publishes review events to a NATS subject. Publish is
// asynchronous on the client side, so Emit does not wait for delivery.
type NATSEmitter struct {
	conn *nats.Conn
}

// NewNATSEmitter connects to the NATS server at url.
func NewNATSEmitter(url string) (*NATSEmitter, error) {
	nc, err := nats.Connect(url,
		nats.Timeout(5*time.Second),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSEmitter{conn: nc}, nil
}

func (e *NATSEmitter) Emit(ctx context.Context, ev ReviewEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal review event: %w", err)
	}
	if err := e.conn.Publish(ReviewSubject, payload); err != nil {
		return fmt.Errorf("publish review event: %w", err)
	}
	return nil
}

func (e *NATSEmitter) Close() {
	e.conn.Close()
}
