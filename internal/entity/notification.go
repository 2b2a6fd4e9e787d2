package entity

import (
	"time"

	"github.com/threadhub-lab/backend/pkg/enum"
)

type NotificationType string

var (
	NotificationVote    = enum.New(NotificationType("vote"), "vote")
	NotificationComment = enum.New(NotificationType("comment"), "comment")
	NotificationFollow  = enum.New(NotificationType("follow"), "follow")
	NotificationMessage = enum.New(NotificationType("message"), "message")
	NotificationPost    = enum.New(NotificationType("post"), "post")
)

type SourceType string

var (
	SourcePost    = enum.New(SourceType("post"), "post")
	SourceComment = enum.New(SourceType("comment"), "comment")
	SourceUser    = enum.New(SourceType("user"), "user")
	SourceMessage = enum.New(SourceType("message"), "message")
)

type Notification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `gorm:"index"`

	UserID     string `gorm:"index;size:36"`
	Type       NotificationType
	Content    string
	SourceID   string `gorm:"size:36"`
	SourceType SourceType
	IsRead     bool
}
