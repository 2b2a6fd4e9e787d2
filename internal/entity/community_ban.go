package entity

import "time"

type CommunityBan struct {
	CreatedAt time.Time

	SubredditID string `gorm:"primaryKey;size:36"`
	UserID      string `gorm:"primaryKey;size:36"`
	Reason      string
	BannedBy    string `gorm:"size:36"`
}
