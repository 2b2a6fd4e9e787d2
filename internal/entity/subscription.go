package entity

import "time"

type Subscription struct {
	CreatedAt time.Time

	SubredditID string    `gorm:"primaryKey;size:36"`
	Subreddit   Subreddit `gorm:"foreignKey:SubredditID"`

	UserID string `gorm:"primaryKey;size:36"`
	User   User   `gorm:"foreignKey:UserID"`
}
