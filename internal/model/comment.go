package model

type CreateCommentRequest struct {
	PostID   string `json:"post_id"`
	Content  string `json:"content"`
	ParentID string `json:"parent_id"`
}

type CreateCommentResponse struct {
	Comment Comment `json:"comment"`
}

type GetCommentsRequest struct {
	PostID string `json:"post_id"`
}

type GetCommentsResponse struct {
	Comments []Comment `json:"comments"`
}

type GetCommentRequest struct {
	ID string `json:"id"`
}

type GetCommentResponse struct {
	Comment Comment `json:"comment"`
}

type UpdateCommentRequest struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

type UpdateCommentResponse struct {
	Comment Comment `json:"comment"`
}

type DeleteCommentRequest struct {
	ID string `json:"id"`
}

type DeleteCommentResponse struct{}
