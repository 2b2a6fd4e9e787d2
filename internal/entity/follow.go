package entity

import "time"

type Follow struct {
	CreatedAt time.Time

	FollowerID  string `gorm:"primaryKey;size:36"`
	FollowingID string `gorm:"primaryKey;size:36;index"`
}
