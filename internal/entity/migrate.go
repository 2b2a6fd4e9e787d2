package entity

import (
	"context"

	"github.com/threadhub-lab/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Subreddit{},
		&Moderator{},
		&Subscription{},
		&CommunityBan{},
		&Post{},
		&Media{},
		&Comment{},
		&Vote{},
		&KarmaEvent{},
		&Notification{},
		&Follow{},
		&PrivateMessage{},
	)
}
