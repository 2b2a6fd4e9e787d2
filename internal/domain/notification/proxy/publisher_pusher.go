package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/threadhub-lab/backend/pkg/pubsub"
	"github.com/threadhub-lab/backend/pkg/xcontext"
)

type transportEvent struct {
	To   string          `json:"to"`
	Op   string          `json:"o"`
	Data json.RawMessage `json:"d"`
}

// PublisherPusher forwards live events to the proxy processes through the
// message queue.
type PublisherPusher struct {
	publisher pubsub.Publisher
	topic     string
}

func NewPublisherPusher(publisher pubsub.Publisher, topic string) *PublisherPusher {
	return &PublisherPusher{publisher: publisher, topic: topic}
}

func (p *PublisherPusher) PushToUser(ctx context.Context, userID, op string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal payload: %w", err)
	}

	msg, err := json.Marshal(transportEvent{To: userID, Op: op, Data: data})
	if err != nil {
		return fmt.Errorf("cannot marshal event: %w", err)
	}

	return p.publisher.Publish(ctx, p.topic, &pubsub.Pack{Key: []byte(userID), Msg: msg})
}

// NewSubscribeHandler returns the handler consuming the events published by
// PublisherPusher and pushing them to the local registry.
func NewSubscribeHandler(registry *Registry) pubsub.SubscribeHandler {
	return func(ctx context.Context, topic string, pack *pubsub.Pack, t time.Time) {
		var ev transportEvent
		if err := json.Unmarshal(pack.Msg, &ev); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot unmarshal live event: %v", err)
			return
		}

		if err := registry.PushToUser(ctx, ev.To, ev.Op, ev.Data); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot push live event to user %s: %v", ev.To, err)
		}
	}
}
