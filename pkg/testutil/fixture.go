package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const FixturePassword = "123456"

var (
	// User1 owns Subreddit1.
	User1 = &entity.User{
		Base:        entity.Base{ID: "user1"},
		Username:    "alice",
		Email:       "alice@threadhub.dev",
		DisplayName: "Alice",
	}

	// User2 moderates Subreddit1 with MANAGE_POSTS and owns Subreddit2.
	User2 = &entity.User{
		Base:        entity.Base{ID: "user2"},
		Username:    "bob",
		Email:       "bob@threadhub.dev",
		DisplayName: "Bob",
	}

	// User3 moderates Subreddit1 with MANAGE_USERS and MANAGE_MODERATORS.
	User3 = &entity.User{
		Base:        entity.Base{ID: "user3"},
		Username:    "carol",
		Email:       "carol@threadhub.dev",
		DisplayName: "Carol",
	}

	// User4 subscribes to Subreddit1 and writes Post1.
	User4 = &entity.User{
		Base:        entity.Base{ID: "user4"},
		Username:    "dave",
		Email:       "dave@threadhub.dev",
		DisplayName: "Dave",
	}

	// User5 has no relation with any subreddit.
	User5 = &entity.User{
		Base:        entity.Base{ID: "user5"},
		Username:    "eve",
		Email:       "eve@threadhub.dev",
		DisplayName: "Eve",
	}

	AdminUser = &entity.User{
		Base:        entity.Base{ID: "admin"},
		Username:    "root",
		Email:       "root@threadhub.dev",
		DisplayName: "Root",
		IsAdmin:     true,
	}

	BannedUser = &entity.User{
		Base:         entity.Base{ID: "banned"},
		Username:     "mallory",
		Email:        "mallory@threadhub.dev",
		DisplayName:  "Mallory",
		IsBanned:     true,
		BanReason:    "spam",
		BanExpiresAt: sql.NullTime{Valid: true, Time: time.Now().Add(24 * time.Hour)},
	}

	ExpiredBanUser = &entity.User{
		Base:         entity.Base{ID: "expired"},
		Username:     "trent",
		Email:        "trent@threadhub.dev",
		DisplayName:  "Trent",
		IsBanned:     true,
		BanReason:    "flood",
		BanExpiresAt: sql.NullTime{Valid: true, Time: time.Now().Add(-time.Hour)},
	}

	Users = []*entity.User{User1, User2, User3, User4, User5, AdminUser, BannedUser, ExpiredBanUser}

	Subreddit1 = &entity.Subreddit{
		Base:        entity.Base{ID: "subreddit1"},
		Name:        "golang",
		Description: "The Go programming language",
		CreatedBy:   User1.ID,
	}

	Subreddit2 = &entity.Subreddit{
		Base:        entity.Base{ID: "subreddit2"},
		Name:        "rust",
		Description: "The Rust programming language",
		CreatedBy:   User2.ID,
	}

	Subreddits = []*entity.Subreddit{Subreddit1, Subreddit2}

	Moderators = []*entity.Moderator{
		{
			SubredditID: Subreddit1.ID,
			UserID:      User1.ID,
			Role:        entity.ModeratorRoleOwner,
			Permissions: entity.AllPermissions,
		},
		{
			SubredditID: Subreddit1.ID,
			UserID:      User2.ID,
			Role:        entity.ModeratorRoleModerator,
			Permissions: entity.ManagePosts,
		},
		{
			SubredditID: Subreddit1.ID,
			UserID:      User3.ID,
			Role:        entity.ModeratorRoleModerator,
			Permissions: entity.ManageUsers | entity.ManageModerators,
		},
		{
			SubredditID: Subreddit2.ID,
			UserID:      User2.ID,
			Role:        entity.ModeratorRoleOwner,
			Permissions: entity.AllPermissions,
		},
	}

	Subscriptions = []*entity.Subscription{
		{SubredditID: Subreddit1.ID, UserID: User1.ID},
		{SubredditID: Subreddit1.ID, UserID: User4.ID},
		{SubredditID: Subreddit2.ID, UserID: User2.ID},
	}

	Post1 = &entity.Post{
		Base:        entity.Base{ID: "post1"},
		Title:       "Hello gophers",
		Content:     "My first post",
		AuthorID:    User4.ID,
		SubredditID: Subreddit1.ID,
	}

	Post2 = &entity.Post{
		Base:        entity.Base{ID: "post2"},
		Title:       "Weekly thread",
		Content:     "Ask anything",
		AuthorID:    User1.ID,
		SubredditID: Subreddit1.ID,
	}

	DeletedPost = &entity.Post{
		Base:         entity.Base{ID: "deleted_post"},
		Title:        "Removed",
		Content:      "Spam",
		AuthorID:     User4.ID,
		SubredditID:  Subreddit1.ID,
		IsDeleted:    true,
		DeleteReason: "spam",
	}

	Posts = []*entity.Post{Post1, Post2, DeletedPost}

	// Comment1 is a top-level comment of User1 on Post1.
	Comment1 = &entity.Comment{
		Base:     entity.Base{ID: "comment1"},
		Content:  "Welcome!",
		AuthorID: User1.ID,
		PostID:   Post1.ID,
	}

	// Comment2 is the reply of User4 to Comment1.
	Comment2 = &entity.Comment{
		Base:     entity.Base{ID: "comment2"},
		Content:  "Thanks",
		AuthorID: User4.ID,
		PostID:   Post1.ID,
		ParentID: sql.NullString{Valid: true, String: "comment1"},
	}

	Comments = []*entity.Comment{Comment1, Comment2}
)

// CreateFixtureDb seeds the database of ctx with the fixtures above.
func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertSubreddits(ctx)
	InsertModerators(ctx)
	InsertSubscriptions(ctx)
	InsertPosts(ctx)
	InsertComments(ctx)
}

func InsertUsers(ctx context.Context) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	userRepo := repository.NewUserRepository()
	for _, u := range Users {
		u.Password = string(hashed)
		if err := userRepo.Create(ctx, u); err != nil {
			panic(err)
		}
	}
}

func InsertSubreddits(ctx context.Context) {
	subredditRepo := repository.NewSubredditRepository()
	for _, s := range Subreddits {
		if err := subredditRepo.Create(ctx, s); err != nil {
			panic(err)
		}
	}
}

func InsertModerators(ctx context.Context) {
	moderatorRepo := repository.NewModeratorRepository()
	for _, m := range Moderators {
		if err := moderatorRepo.Create(ctx, m); err != nil {
			panic(err)
		}
	}
}

func InsertSubscriptions(ctx context.Context) {
	subscriptionRepo := repository.NewSubscriptionRepository()
	for _, s := range Subscriptions {
		if err := subscriptionRepo.Create(ctx, s); err != nil {
			panic(err)
		}
	}
}

func InsertPosts(ctx context.Context) {
	postRepo := repository.NewPostRepository()
	for _, p := range Posts {
		if err := postRepo.Create(ctx, p); err != nil {
			panic(err)
		}
	}
}

func InsertComments(ctx context.Context) {
	commentRepo := repository.NewCommentRepository()
	for _, c := range Comments {
		if err := commentRepo.Create(ctx, c); err != nil {
			panic(err)
		}
	}
}
