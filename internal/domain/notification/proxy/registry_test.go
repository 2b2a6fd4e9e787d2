package proxy

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/threadhub-lab/backend/internal/domain/notification/event"
	"github.com/threadhub-lab/backend/pkg/pubsub"
	"github.com/threadhub-lab/backend/pkg/testutil"
)

func Test_Registry_PushToUser(t *testing.T) {
	ctx := testutil.MockContext()
	registry := NewRegistry()

	session := NewSession("user1")
	registry.Register("user1", session)

	require.NoError(t, registry.PushToUser(ctx, "user1", event.NewNotificationOp, "hello"))
	require.NoError(t, registry.PushToUser(ctx, "user2", event.NewNotificationOp, "nobody"))

	require.Len(t, session.C, 1)
	ev := <-session.C
	require.Equal(t, event.NewNotificationOp, ev.Op)
	require.Equal(t, "hello", ev.Data)
}

func Test_Registry_PushToUser_FullBuffer(t *testing.T) {
	ctx := testutil.MockContext()
	registry := NewRegistry()

	session := NewSession("user1")
	registry.Register("user1", session)

	for i := 0; i < sessionBufferSize+10; i++ {
		require.NoError(t, registry.PushToUser(ctx, "user1", event.NewNotificationOp, i))
	}

	require.Len(t, session.C, sessionBufferSize)
}

func Test_Registry_Unregister_KeepsNewerSession(t *testing.T) {
	registry := NewRegistry()

	oldSession := NewSession("user1")
	newSession := NewSession("user1")
	registry.Register("user1", oldSession)
	registry.Register("user1", newSession)

	registry.Unregister("user1", oldSession)
	require.True(t, registry.IsOnline("user1"))

	registry.Unregister("user1", newSession)
	require.False(t, registry.IsOnline("user1"))
}

func Test_Registry_Broadcast(t *testing.T) {
	ctx := testutil.MockContext()
	registry := NewRegistry()

	s1 := NewSession("user1")
	s2 := NewSession("user2")
	s3 := NewSession("user3")
	registry.Register("user1", s1)
	registry.Register("user2", s2)
	registry.Register("user3", s3)

	registry.Broadcast(ctx, "user1", event.VoteUpdatedOp, event.VoteUpdatedEvent{UserID: "user1", Value: 1})

	require.Len(t, s1.C, 0)
	require.Len(t, s2.C, 1)
	require.Len(t, s3.C, 1)
}

type capturePublisher struct {
	topic string
	pack  *pubsub.Pack
}

func (p *capturePublisher) Publish(_ context.Context, topic string, pack *pubsub.Pack) error {
	p.topic = topic
	p.pack = pack
	return nil
}

func Test_PublisherPusher_RoundTrip(t *testing.T) {
	ctx := testutil.MockContext()
	publisher := &capturePublisher{}
	pusher := NewPublisherPusher(publisher, "live_event")

	require.NoError(t, pusher.PushToUser(ctx, "user2", event.NewPrivateMessageOp, map[string]string{"content": "hi"}))
	require.Equal(t, "live_event", publisher.topic)
	require.Equal(t, []byte("user2"), publisher.pack.Key)

	registry := NewRegistry()
	session := NewSession("user2")
	registry.Register("user2", session)

	handler := NewSubscribeHandler(registry)
	handler(ctx, publisher.topic, publisher.pack, time.Now())

	require.Len(t, session.C, 1)
	ev := <-session.C
	require.Equal(t, event.NewPrivateMessageOp, ev.Op)

	b, err := json.Marshal(ev.Data)
	require.NoError(t, err)
	require.JSONEq(t, `{"content":"hi"}`, string(b))
}
