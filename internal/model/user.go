package model

type GetUserRequest struct {
	ID string `json:"id"`
}

type GetUserResponse struct {
	User           User      `json:"user"`
	DisplayKarma   int64     `json:"display_karma"`
	PostCount      int64     `json:"post_count"`
	CommentCount   int64     `json:"comment_count"`
	FollowerCount  int64     `json:"follower_count"`
	FollowingCount int64     `json:"following_count"`
	RecentPosts    []Post    `json:"recent_posts"`
	RecentComments []Comment `json:"recent_comments"`
	IsFollowing    bool      `json:"is_following"`
	IsOnline       bool      `json:"is_online"`
}

type GetUserPostsRequest struct {
	UserID string `json:"user_id"`
	Offset int    `json:"offset" validate:"min=0"`
	Limit  int    `json:"limit" validate:"min=0"`
}

type GetUserPostsResponse struct {
	Posts []Post `json:"posts"`
}

type GetUserCommentsRequest struct {
	UserID string `json:"user_id"`
	Offset int    `json:"offset" validate:"min=0"`
	Limit  int    `json:"limit" validate:"min=0"`
}

type GetUserCommentsResponse struct {
	Comments []Comment `json:"comments"`
}

type BanUserRequest struct {
	UserID       string `json:"user_id"`
	Reason       string `json:"reason"`
	DurationDays int    `json:"duration_days"`
}

type BanUserResponse struct {
	User User `json:"user"`
}

type UnbanUserRequest struct {
	UserID string `json:"user_id"`
}

type UnbanUserResponse struct{}
