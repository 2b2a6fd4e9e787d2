package entity

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUser_BanExpired(t *testing.T) {
	now := time.Now()

	require.False(t, User{}.BanExpired(now))
	require.False(t, User{IsBanned: true}.BanExpired(now))
	require.False(t, User{
		IsBanned:     true,
		BanExpiresAt: sql.NullTime{Valid: true, Time: now.Add(time.Hour)},
	}.BanExpired(now))
	require.True(t, User{
		IsBanned:     true,
		BanExpiresAt: sql.NullTime{Valid: true, Time: now.Add(-time.Hour)},
	}.BanExpired(now))
}
