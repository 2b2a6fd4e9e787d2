package model

type GetNotificationsRequest struct{}

type GetNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

type ReadNotificationRequest struct {
	ID string `json:"id"`
}

type ReadNotificationResponse struct{}

type GetKarmaLeaderboardRequest struct {
	Offset int `json:"offset" validate:"min=0"`
	Limit  int `json:"limit" validate:"min=0"`
}

type GetKarmaLeaderboardResponse struct {
	Records []KarmaRecord `json:"records"`
}

type ServeLiveRequest struct{}
