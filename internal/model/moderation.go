package model

type BanCommunityUserRequest struct {
	SubredditID string `json:"subreddit_id"`
	UserID      string `json:"user_id"`
	Reason      string `json:"reason"`
}

type BanCommunityUserResponse struct{}

type UnbanCommunityUserRequest struct {
	SubredditID string `json:"subreddit_id"`
	UserID      string `json:"user_id"`
}

type UnbanCommunityUserResponse struct{}

type AddModeratorRequest struct {
	SubredditID string   `json:"subreddit_id"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

type AddModeratorResponse struct {
	Moderator     Moderator `json:"moderator"`
	AlreadyExists bool      `json:"already_exists"`
}

type UpdateModeratorRequest struct {
	SubredditID string   `json:"subreddit_id"`
	UserID      string   `json:"user_id"`
	Permissions []string `json:"permissions"`
}

type UpdateModeratorResponse struct {
	Moderator Moderator `json:"moderator"`
}

type RemoveModeratorRequest struct {
	SubredditID string `json:"subreddit_id"`
	UserID      string `json:"user_id"`
}

type RemoveModeratorResponse struct{}

type GetModeratorsRequest struct {
	SubredditID string `json:"subreddit_id"`
}

type GetModeratorsResponse struct {
	Moderators []Moderator `json:"moderators"`
}

type RemoveSubscriberRequest struct {
	SubredditID string `json:"subreddit_id"`
	UserID      string `json:"user_id"`
}

type RemoveSubscriberResponse struct{}

type GetSubscribersRequest struct {
	SubredditID string `json:"subreddit_id"`
}

type GetSubscribersResponse struct {
	Subscribers []Subscriber `json:"subscribers"`
}
