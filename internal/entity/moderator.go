package entity

import (
	"time"

	"github.com/threadhub-lab/backend/pkg/enum"
)

type ModeratorRole string

var (
	ModeratorRoleOwner     = enum.New(ModeratorRole("OWNER"), "OWNER")
	ModeratorRoleModerator = enum.New(ModeratorRole("MODERATOR"), "MODERATOR")
)

type Moderator struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	SubredditID string    `gorm:"primaryKey;size:36"`
	Subreddit   Subreddit `gorm:"foreignKey:SubredditID"`

	UserID string `gorm:"primaryKey;size:36"`
	User   User   `gorm:"foreignKey:UserID"`

	Role        ModeratorRole
	Permissions PermissionSet
}
