// Package notifications provides real-time delivery of request lifecycle
// events to connected clients.
package notifications

import (
	"context"
	"encoding/json"
	"log"
	"runtime/debug"

	"github.com/redis/go-redis/v9"
)

const requestEventsChannel = "foms:requests"

// Event types published on the request events channel.
const (
	EventRequestCreated       = "request.created"
	EventRequestStatusChanged = "request.status_changed"
)

// RequestEvent is the payload published for request lifecycle changes.
type RequestEvent struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id"`
	StatusID  string `json:"status_id"`
	At        int64  `json:"at"`
}

// Notifier publishes request events into Redis channels.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishRequestEvent publishes an event to the shared request channel.
// A nil Notifier or Redis client drops the event silently; event delivery
// is best effort and never blocks the write path.
func (n *Notifier) PublishRequestEvent(ctx context.Context, ev RequestEvent) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, requestEventsChannel, payload).Err()
}

// StartSubscriber subscribes to the request events channel and calls
// onMessage for each incoming payload until ctx is cancelled.
func (n *Notifier) StartSubscriber(ctx context.Context, onMessage func(payload string)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, requestEventsChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in event subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Payload)
				}()
			}
		}
	}()

	return nil
}
