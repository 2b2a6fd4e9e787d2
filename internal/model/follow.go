package model

type FollowRequest struct {
	UserID string `json:"user_id"`
}

type FollowResponse struct{}

type UnfollowRequest struct {
	UserID string `json:"user_id"`
}

type UnfollowResponse struct{}

type GetFollowersRequest struct {
	UserID string `json:"user_id"`
	Page   int    `json:"page" validate:"min=0"`
	Limit  int    `json:"limit" validate:"min=0"`
}

type GetFollowersResponse struct {
	Users []ShortUser `json:"users"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

type GetFollowingRequest struct {
	UserID string `json:"user_id"`
	Page   int    `json:"page" validate:"min=0"`
	Limit  int    `json:"limit" validate:"min=0"`
}

type GetFollowingResponse struct {
	Users []ShortUser `json:"users"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}
