package event

const (
	NewNotificationOp   = "new_notification"
	NewMessageOp        = "new_message"
	NewPrivateMessageOp = "new_private_message"
	MessageSentOp       = "message_sent"
	VoteUpdatedOp       = "vote_updated"
	ErrorOp             = "error"
)

type EventRequest struct {
	Op   string `json:"o"`
	Data any    `json:"d"`
}

type EventResponse struct {
	Op   string `json:"o"`
	Seq  int64  `json:"s"`
	Data any    `json:"d"`
}

func New(op string, data any) *EventRequest {
	return &EventRequest{Op: op, Data: data}
}

func Format(event *EventRequest, seq int64) *EventResponse {
	return &EventResponse{
		Op:   event.Op,
		Seq:  seq,
		Data: event.Data,
	}
}
