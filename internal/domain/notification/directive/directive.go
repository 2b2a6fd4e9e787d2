package directive

import "encoding/json"

type DirectiveOp string

const (
	SendPrivateMessageDirectiveOp DirectiveOp = "send_private_message"
	VoteUpdateDirectiveOp         DirectiveOp = "vote_update"
	PingDirectiveOp               DirectiveOp = "ping"
)

type ClientDirective struct {
	Op   DirectiveOp     `json:"o"`
	Data json.RawMessage `json:"d"`
}

type SendPrivateMessageDirective struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
	ReplyToID  string `json:"reply_to_id"`
}

type VoteUpdateDirective struct {
	PostID    string `json:"post_id"`
	CommentID string `json:"comment_id"`
	Value     int    `json:"value"`
}
