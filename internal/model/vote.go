package model

type VotePostRequest struct {
	PostID string `json:"post_id"`
	Value  int    `json:"value"`
}

type VotePostResponse struct {
	Action    string `json:"action"`
	Vote      Vote   `json:"vote"`
	VoteCount int64  `json:"vote_count"`
}

type VoteCommentRequest struct {
	CommentID string `json:"comment_id"`
	Value     int    `json:"value"`
}

type VoteCommentResponse struct {
	Action    string `json:"action"`
	Vote      Vote   `json:"vote"`
	VoteCount int64  `json:"vote_count"`
}
