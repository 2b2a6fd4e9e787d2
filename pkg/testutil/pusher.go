package testutil

import (
	"context"
	"sync"

	"github.com/threadhub-lab/backend/pkg/pubsub"
)

type PushedEvent struct {
	UserID  string
	Op      string
	Payload any
}

// MockPusher records every pushed event. PushToUserFunc may override the
// behavior, for example to simulate a broken live channel.
type MockPusher struct {
	PushToUserFunc func(ctx context.Context, userID, op string, payload any) error

	mutex  sync.Mutex
	Events []PushedEvent
}

func (m *MockPusher) PushToUser(ctx context.Context, userID, op string, payload any) error {
	m.mutex.Lock()
	m.Events = append(m.Events, PushedEvent{UserID: userID, Op: op, Payload: payload})
	m.mutex.Unlock()

	if m.PushToUserFunc != nil {
		return m.PushToUserFunc(ctx, userID, op, payload)
	}

	return nil
}

func (m *MockPusher) EventsOf(userID string) []PushedEvent {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result := []PushedEvent{}
	for _, e := range m.Events {
		if e.UserID == userID {
			result = append(result, e)
		}
	}

	return result
}

type MockPublisher struct {
	PublishFunc func(ctx context.Context, topic string, pack *pubsub.Pack) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	return nil
}
