package model

type MediaInput struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type CreatePostRequest struct {
	SubredditID string       `json:"subreddit_id"`
	Title       string       `json:"title" validate:"max=300"`
	Content     string       `json:"content"`
	Media       []MediaInput `json:"media"`
}

type CreatePostResponse struct {
	Post        Post          `json:"post"`
	FailedMedia []FailedMedia `json:"failed_media,omitempty"`
}

type GetPostRequest struct {
	ID string `json:"id"`
}

type GetPostResponse struct {
	Post Post `json:"post"`
}

// UpdatePostRequest only updates the non-empty title and content.
type UpdatePostRequest struct {
	ID             string       `json:"id" structs:"-"`
	Title          string       `json:"title" structs:"title,omitempty" validate:"max=300"`
	Content        string       `json:"content" structs:"content,omitempty"`
	DeleteMediaIDs []string     `json:"delete_media_ids" structs:"-"`
	Media          []MediaInput `json:"media" structs:"-"`
}

type UpdatePostResponse struct {
	Post        Post          `json:"post"`
	FailedMedia []FailedMedia `json:"failed_media,omitempty"`
}

type DeletePostRequest struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type DeletePostResponse struct{}
