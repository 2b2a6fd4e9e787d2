package proxy

import (
	"github.com/google/uuid"
	"github.com/threadhub-lab/backend/internal/domain/notification/event"
)

const sessionBufferSize = 64

// Session is one live connection of a user.
type Session struct {
	C chan *event.EventRequest

	id     string
	userID string
}

func NewSession(userID string) *Session {
	return &Session{
		C:      make(chan *event.EventRequest, sessionBufferSize),
		id:     uuid.NewString(),
		userID: userID,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) UserID() string {
	return s.userID
}

// Send never blocks. It returns false when the buffer is full and the event
// was dropped.
func (s *Session) Send(ev *event.EventRequest) bool {
	select {
	case s.C <- ev:
		return true
	default:
		return false
	}
}
