package common

const (
	RedisKeyKarmaLeaderboard = "karma_leaderboard"
	RedisKeyOnlineUsers      = "online_users"
)
