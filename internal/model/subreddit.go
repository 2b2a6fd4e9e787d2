package model

type CreateSubredditRequest struct {
	Name        string `json:"name" validate:"max=64"`
	Description string `json:"description"`
	Rules       string `json:"rules"`
	Theme       string `json:"theme"`
}

type CreateSubredditResponse struct {
	Subreddit Subreddit `json:"subreddit"`
}

type GetSubredditsRequest struct {
	Offset int `json:"offset" validate:"min=0"`
	Limit  int `json:"limit" validate:"min=0"`
}

type GetSubredditsResponse struct {
	Subreddits []Subreddit `json:"subreddits"`
}

type GetSubredditRequest struct {
	ID string `json:"id"`
}

type GetSubredditResponse struct {
	Subreddit       Subreddit   `json:"subreddit"`
	SubscriberCount int64       `json:"subscriber_count"`
	PostCount       int64       `json:"post_count"`
	Moderators      []Moderator `json:"moderators"`
	IsSubscribed    bool        `json:"is_subscribed"`
}

// UpdateSubredditRequest only updates the non-empty fields.
type UpdateSubredditRequest struct {
	ID          string `json:"id" structs:"-"`
	Description string `json:"description" structs:"description,omitempty"`
	Rules       string `json:"rules" structs:"rules,omitempty"`
	Theme       string `json:"theme" structs:"theme,omitempty"`
}

type UpdateSubredditResponse struct {
	Subreddit Subreddit `json:"subreddit"`
}

type DeleteSubredditRequest struct {
	ID string `json:"id"`
}

type DeleteSubredditResponse struct{}

type SubscribeRequest struct {
	SubredditID string `json:"subreddit_id"`
}

type SubscribeResponse struct{}

type UnsubscribeRequest struct {
	SubredditID string `json:"subreddit_id"`
}

type UnsubscribeResponse struct{}

type GetSubscribedSubredditsRequest struct{}

type GetSubscribedSubredditsResponse struct {
	Subreddits []Subreddit `json:"subreddits"`
}

type GetSubredditPostsRequest struct {
	ID     string `json:"id"`
	Offset int    `json:"offset" validate:"min=0"`
	Limit  int    `json:"limit" validate:"min=0"`
}

type GetSubredditPostsResponse struct {
	Posts []Post `json:"posts"`
}
