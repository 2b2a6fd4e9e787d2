package entity

import "github.com/threadhub-lab/backend/pkg/enum"

type Post struct {
	Base
	Title        string
	Content      string `gorm:"type:text"`
	AuthorID     string `gorm:"index;size:36"`
	Author       User   `gorm:"foreignKey:AuthorID"`
	SubredditID  string `gorm:"index;size:36"`
	IsDeleted    bool
	DeleteReason string
}

type MediaType string

var (
	MediaImage = enum.New(MediaType("image"), "image")
	MediaVideo = enum.New(MediaType("video"), "video")
)

type Media struct {
	Base
	PostID string `gorm:"index;size:36"`
	Type   MediaType
	URL    string
}
