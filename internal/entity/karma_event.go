package entity

import "time"

// KarmaEvent is append-only. The cached karma of a user is the sum of its
// events.
type KarmaEvent struct {
	ID        int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time

	UserID     string `gorm:"index;size:36"`
	Amount     int64
	Reason     string
	SourceID   string `gorm:"size:36"`
	SourceType SourceType
}
