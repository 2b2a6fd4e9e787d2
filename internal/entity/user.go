package entity

import (
	"database/sql"
	"time"
)

type User struct {
	Base
	Username     string `gorm:"unique;size:64"`
	Email        string `gorm:"unique;size:255"`
	Password     string
	DisplayName  string
	Bio          string
	Karma        int64
	IsAdmin      bool
	IsBanned     bool
	BanReason    string
	BanExpiresAt sql.NullTime
	LastActiveAt sql.NullTime
}

// BanExpired reports whether the user carries a temporary ban which is already
// over at the given time.
func (u User) BanExpired(now time.Time) bool {
	return u.IsBanned && u.BanExpiresAt.Valid && !u.BanExpiresAt.Time.After(now)
}
