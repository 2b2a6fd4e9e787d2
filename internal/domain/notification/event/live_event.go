package event

type VoteUpdatedEvent struct {
	UserID    string `json:"user_id"`
	PostID    string `json:"post_id,omitempty"`
	CommentID string `json:"comment_id,omitempty"`
	Value     int    `json:"value"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}
