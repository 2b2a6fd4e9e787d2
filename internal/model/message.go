package model

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
	ReplyToID  string `json:"reply_to_id"`
}

type SendMessageResponse struct {
	Message PrivateMessage `json:"message"`
}

type GetConversationsRequest struct{}

type GetConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
}

type GetConversationRequest struct {
	UserID string `json:"user_id"`
}

type GetConversationResponse struct {
	User     ShortUser        `json:"user"`
	Messages []PrivateMessage `json:"messages"`
}

type ReadConversationRequest struct {
	UserID string `json:"user_id"`
}

type ReadConversationResponse struct {
	Count int64 `json:"count"`
}
