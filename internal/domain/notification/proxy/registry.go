package proxy

import (
	"context"

	"github.com/puzpuzpuz/xsync"
	"github.com/threadhub-lab/backend/internal/domain/notification/event"
	"github.com/threadhub-lab/backend/pkg/xcontext"
)

// Pusher delivers a live event to a user. Delivery is best effort.
type Pusher interface {
	PushToUser(ctx context.Context, userID, op string, payload any) error
}

// Registry maps a user to its live session. The latest registered session of
// a user wins.
type Registry struct {
	sessions *xsync.MapOf[string, *Session]
}

func NewRegistry() *Registry {
	return &Registry{sessions: xsync.NewMapOf[*Session]()}
}

func (r *Registry) Register(userID string, session *Session) {
	r.sessions.Store(userID, session)
}

// Unregister removes the session only if it is still the registered session
// of the user, a newer connection is kept.
func (r *Registry) Unregister(userID string, session *Session) {
	current, ok := r.sessions.Load(userID)
	if !ok || current != session {
		return
	}

	r.sessions.Delete(userID)
}

func (r *Registry) IsOnline(userID string) bool {
	_, ok := r.sessions.Load(userID)
	return ok
}

func (r *Registry) Size() int {
	return r.sessions.Size()
}

// PushToUser is a no-op when the user has no live session.
func (r *Registry) PushToUser(ctx context.Context, userID, op string, payload any) error {
	session, ok := r.sessions.Load(userID)
	if !ok {
		return nil
	}

	if !session.Send(event.New(op, payload)) {
		xcontext.Logger(ctx).Warnf("Session buffer of user %s is full, drop event %s", userID, op)
	}

	return nil
}

// Broadcast pushes the event to every connected user except exceptUserID.
func (r *Registry) Broadcast(ctx context.Context, exceptUserID, op string, payload any) {
	r.sessions.Range(func(userID string, session *Session) bool {
		if userID == exceptUserID {
			return true
		}

		if !session.Send(event.New(op, payload)) {
			xcontext.Logger(ctx).Warnf("Session buffer of user %s is full, drop event %s", userID, op)
		}

		return true
	})
}
