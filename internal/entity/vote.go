package entity

import (
	"time"

	"github.com/threadhub-lab/backend/pkg/enum"
)

type VoteTargetType string

var (
	VoteTargetPost    = enum.New(VoteTargetType("post"), "post")
	VoteTargetComment = enum.New(VoteTargetType("comment"), "comment")
)

// Vote is the single live vote of a user on a target. A neutral vote has no
// row at all.
type Vote struct {
	ID        string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID     string         `gorm:"uniqueIndex:idx_votes_user_target;size:36"`
	TargetType VoteTargetType `gorm:"uniqueIndex:idx_votes_user_target;index:idx_votes_target;size:16"`
	TargetID   string         `gorm:"uniqueIndex:idx_votes_user_target;index:idx_votes_target;size:36"`
	Value      int
}
