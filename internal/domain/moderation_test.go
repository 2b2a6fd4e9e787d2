package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/threadhub-lab/backend/internal/common"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/testutil"
)

func Test_moderationDomain_BanCommunityUser(t *testing.T) {
	type args struct {
		actorID string
		req     *model.BanCommunityUserRequest
	}

	tests := []struct {
		name    string
		args    args
		wantErr error
	}{
		{
			name: "happy case",
			args: args{
				actorID: testutil.User3.ID,
				req: &model.BanCommunityUserRequest{
					SubredditID: testutil.Subreddit1.ID, UserID: testutil.User4.ID, Reason: "spam",
				},
			},
		},
		{
			name: "admin can ban",
			args: args{
				actorID: testutil.AdminUser.ID,
				req: &model.BanCommunityUserRequest{
					SubredditID: testutil.Subreddit1.ID, UserID: testutil.User5.ID, Reason: "spam",
				},
			},
		},
		{
			name: "owner cannot be banned even by admin",
			args: args{
				actorID: testutil.AdminUser.ID,
				req: &model.BanCommunityUserRequest{
					SubredditID: testutil.Subreddit1.ID, UserID: testutil.User1.ID, Reason: "spam",
				},
			},
			wantErr: errorx.New(errorx.PermissionDenied, "Cannot ban the owner of subreddit"),
		},
		{
			name: "moderator without MANAGE_USERS",
			args: args{
				actorID: testutil.User2.ID,
				req: &model.BanCommunityUserRequest{
					SubredditID: testutil.Subreddit1.ID, UserID: testutil.User4.ID, Reason: "spam",
				},
			},
			wantErr: errorx.New(errorx.PermissionDenied, "Permission denied"),
		},
		{
			name: "empty reason",
			args: args{
				actorID: testutil.User3.ID,
				req: &model.BanCommunityUserRequest{
					SubredditID: testutil.Subreddit1.ID, UserID: testutil.User4.ID,
				},
			},
			wantErr: errorx.New(errorx.BadRequest, "Not allow empty reason"),
		},
		{
			name: "unknown subreddit",
			args: args{
				actorID: testutil.User3.ID,
				req: &model.BanCommunityUserRequest{
					SubredditID: "unknown", UserID: testutil.User4.ID, Reason: "spam",
				},
			},
			wantErr: errorx.New(errorx.NotFound, "Not found subreddit"),
		},
		{
			name: "unknown user",
			args: args{
				actorID: testutil.User3.ID,
				req: &model.BanCommunityUserRequest{
					SubredditID: testutil.Subreddit1.ID, UserID: "unknown", Reason: "spam",
				},
			},
			wantErr: errorx.New(errorx.NotFound, "Not found user"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := fixtureContext(tt.args.actorID)
			s := newTestSuite()

			_, err := s.moderation.BanCommunityUser(ctx, tt.args.req)
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				return
			}

			require.NoError(t, err)

			ban, err := s.communityBanRepo.Get(ctx, tt.args.req.SubredditID, tt.args.req.UserID)
			require.NoError(t, err)
			require.Equal(t, tt.args.req.Reason, ban.Reason)
			require.Equal(t, tt.args.actorID, ban.BannedBy)
		})
	}
}

func Test_moderationDomain_BanCommunityUser_Twice(t *testing.T) {
	ctx := fixtureContext(testutil.User3.ID)
	s := newTestSuite()

	req := &model.BanCommunityUserRequest{
		SubredditID: testutil.Subreddit1.ID, UserID: testutil.User4.ID, Reason: "spam",
	}

	_, err := s.moderation.BanCommunityUser(ctx, req)
	require.NoError(t, err)

	_, err = s.moderation.BanCommunityUser(ctx, req)
	require.Equal(t, errorx.New(errorx.AlreadyExists, "User is already banned from this subreddit"), err)

	// The ban does not remove the subscription.
	_, err = s.subscriptionRepo.Get(ctx, testutil.Subreddit1.ID, testutil.User4.ID)
	require.NoError(t, err)

	_, err = s.moderation.UnbanCommunityUser(ctx, &model.UnbanCommunityUserRequest{
		SubredditID: testutil.Subreddit1.ID, UserID: testutil.User4.ID,
	})
	require.NoError(t, err)

	_, err = s.moderation.UnbanCommunityUser(ctx, &model.UnbanCommunityUserRequest{
		SubredditID: testutil.Subreddit1.ID, UserID: testutil.User4.ID,
	})
	require.Equal(t, errorx.New(errorx.NotFound, "User is not banned from this subreddit"), err)
}

func Test_moderationDomain_AddModerator(t *testing.T) {
	type args struct {
		actorID string
		req     *model.AddModeratorRequest
	}

	tests := []struct {
		name            string
		args            args
		wantPermissions []string
		wantRole        string
		wantExisting    bool
		wantErr         error
	}{
		{
			name: "explicit permissions",
			args: args{
				actorID: testutil.User3.ID,
				req: &model.AddModeratorRequest{
					SubredditID: testutil.Subreddit1.ID,
					Username:    testutil.User4.Username,
					Permissions: []string{"MANAGE_COMMENTS", "MANAGE_POSTS"},
				},
			},
			wantRole:        "MODERATOR",
			wantPermissions: []string{"MANAGE_POSTS", "MANAGE_COMMENTS"},
		},
		{
			name: "admin gets default permissions",
			args: args{
				actorID: testutil.AdminUser.ID,
				req: &model.AddModeratorRequest{
					SubredditID: testutil.Subreddit1.ID,
					Username:    testutil.User5.Username,
				},
			},
			wantRole:        "MODERATOR",
			wantPermissions: []string{"MANAGE_POSTS"},
		},
		{
			name: "non admin must give permissions",
			args: args{
				actorID: testutil.User3.ID,
				req: &model.AddModeratorRequest{
					SubredditID: testutil.Subreddit1.ID,
					Username:    testutil.User5.Username,
				},
			},
			wantErr: errorx.New(errorx.BadRequest, "Not allow empty permissions"),
		},
		{
			name: "ALL cannot be combined",
			args: args{
				actorID: testutil.User3.ID,
				req: &model.AddModeratorRequest{
					SubredditID: testutil.Subreddit1.ID,
					Username:    testutil.User5.Username,
					Permissions: []string{"ALL", "MANAGE_POSTS"},
				},
			},
			wantErr: errorx.New(errorx.BadRequest, "Invalid permissions: %v", entity.ErrAllPermissionCombined),
		},
		{
			name: "invalid role",
			args: args{
				actorID: testutil.User3.ID,
				req: &model.AddModeratorRequest{
					SubredditID: testutil.Subreddit1.ID,
					Username:    testutil.User5.Username,
					Role:        "KING",
					Permissions: []string{"MANAGE_POSTS"},
				},
			},
			wantErr: errorx.New(errorx.BadRequest, "Invalid role KING"),
		},
		{
			name: "moderator cannot add an owner",
			args: args{
				actorID: testutil.User3.ID,
				req: &model.AddModeratorRequest{
					SubredditID: testutil.Subreddit1.ID,
					Username:    testutil.User5.Username,
					Role:        "OWNER",
					Permissions: []string{"MANAGE_POSTS"},
				},
			},
			wantErr: errorx.New(errorx.PermissionDenied, "Only owner can add another owner"),
		},
		{
			name: "owner adds another owner",
			args: args{
				actorID: testutil.User1.ID,
				req: &model.AddModeratorRequest{
					SubredditID: testutil.Subreddit1.ID,
					Username:    testutil.User5.Username,
					Role:        "OWNER",
					Permissions: []string{"MANAGE_POSTS"},
				},
			},
			wantRole:        "OWNER",
			wantPermissions: []string{"MANAGE_POSTS"},
		},
		{
			name: "already a moderator",
			args: args{
				actorID: testutil.User3.ID,
				req: &model.AddModeratorRequest{
					SubredditID: testutil.Subreddit1.ID,
					Username:    testutil.User2.Username,
					Permissions: []string{"MANAGE_USERS"},
				},
			},
			wantRole:        "MODERATOR",
			wantPermissions: []string{"MANAGE_POSTS"},
			wantExisting:    true,
		},
		{
			name: "without MANAGE_MODERATORS",
			args: args{
				actorID: testutil.User2.ID,
				req: &model.AddModeratorRequest{
					SubredditID: testutil.Subreddit1.ID,
					Username:    testutil.User5.Username,
					Permissions: []string{"MANAGE_POSTS"},
				},
			},
			wantErr: errorx.New(errorx.PermissionDenied, "Permission denied"),
		},
		{
			name: "unknown username",
			args: args{
				actorID: testutil.User3.ID,
				req: &model.AddModeratorRequest{
					SubredditID: testutil.Subreddit1.ID,
					Username:    "nobody",
					Permissions: []string{"MANAGE_POSTS"},
				},
			},
			wantErr: errorx.New(errorx.NotFound, "Not found user"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := fixtureContext(tt.args.actorID)
			s := newTestSuite()

			resp, err := s.moderation.AddModerator(ctx, tt.args.req)
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantExisting, resp.AlreadyExists)
			require.Equal(t, tt.wantRole, resp.Moderator.Role)
			require.Equal(t, tt.wantPermissions, resp.Moderator.Permissions)
		})
	}
}

func Test_moderationDomain_UpdateAndRemoveModerator(t *testing.T) {
	ctx := fixtureContext(testutil.User3.ID)
	s := newTestSuite()

	resp, err := s.moderation.UpdateModerator(ctx, &model.UpdateModeratorRequest{
		SubredditID: testutil.Subreddit1.ID,
		UserID:      testutil.User2.ID,
		Permissions: []string{"ALL"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"ALL"}, resp.Moderator.Permissions)

	moderator, err := s.moderatorRepo.Get(ctx, testutil.Subreddit1.ID, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, entity.AllPermissions, moderator.Permissions)

	_, err = s.moderation.UpdateModerator(ctx, &model.UpdateModeratorRequest{
		SubredditID: testutil.Subreddit1.ID,
		UserID:      testutil.User4.ID,
		Permissions: []string{"MANAGE_POSTS"},
	})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found moderator"), err)

	_, err = s.moderation.RemoveModerator(ctx, &model.RemoveModeratorRequest{
		SubredditID: testutil.Subreddit1.ID,
		UserID:      testutil.User2.ID,
	})
	require.NoError(t, err)

	_, err = s.moderation.RemoveModerator(ctx, &model.RemoveModeratorRequest{
		SubredditID: testutil.Subreddit1.ID,
		UserID:      testutil.User2.ID,
	})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found moderator"), err)

	moderators, err := s.moderation.GetModerators(ctx, &model.GetModeratorsRequest{SubredditID: testutil.Subreddit1.ID})
	require.NoError(t, err)
	require.Len(t, moderators.Moderators, 2)
}

func Test_moderationDomain_RemoveSubscriber(t *testing.T) {
	ctx := fixtureContext(testutil.User3.ID)
	s := newTestSuite()

	// User1 owns the subreddit and is also subscribed.
	_, err := s.moderation.RemoveSubscriber(ctx, &model.RemoveSubscriberRequest{
		SubredditID: testutil.Subreddit1.ID, UserID: testutil.User1.ID,
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Cannot remove a moderator from subscribers"), err)

	_, err = s.moderation.RemoveSubscriber(ctx, &model.RemoveSubscriberRequest{
		SubredditID: testutil.Subreddit1.ID, UserID: testutil.User5.ID,
	})
	require.Equal(t, errorx.New(errorx.NotFound, "User is not subscribed"), err)

	_, err = s.moderation.RemoveSubscriber(ctx, &model.RemoveSubscriberRequest{
		SubredditID: testutil.Subreddit1.ID, UserID: testutil.User4.ID,
	})
	require.NoError(t, err)

	resp, err := s.moderation.GetSubscribers(ctx, &model.GetSubscribersRequest{SubredditID: testutil.Subreddit1.ID})
	require.NoError(t, err)
	require.Len(t, resp.Subscribers, 1)
	require.Equal(t, testutil.User1.ID, resp.Subscribers[0].User.ID)

	_, err = s.moderation.GetSubscribers(asUser(ctx, testutil.User2.ID), &model.GetSubscribersRequest{
		SubredditID: testutil.Subreddit1.ID,
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)
}

func Test_moderationDomain_BanUser(t *testing.T) {
	ctx := fixtureContext(testutil.AdminUser.ID)
	s := newTestSuite()

	_, err := s.moderation.BanUser(asUser(ctx, testutil.User1.ID), &model.BanUserRequest{
		UserID: testutil.User4.ID, Reason: "spam",
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Only admin can do this action"), err)

	_, err = s.moderation.BanUser(ctx, &model.BanUserRequest{UserID: testutil.AdminUser.ID, Reason: "spam"})
	require.Equal(t, errorx.New(errorx.BadRequest, "Cannot ban yourself"), err)

	_, err = s.moderation.BanUser(ctx, &model.BanUserRequest{UserID: testutil.User4.ID})
	require.Equal(t, errorx.New(errorx.BadRequest, "Not allow empty reason"), err)

	resp, err := s.moderation.BanUser(ctx, &model.BanUserRequest{
		UserID: testutil.User4.ID, Reason: "spam", DurationDays: 3,
	})
	require.NoError(t, err)
	require.True(t, resp.User.IsBanned)
	require.Equal(t, "spam", resp.User.BanReason)

	user, err := s.userRepo.GetByID(ctx, testutil.User4.ID)
	require.NoError(t, err)
	require.True(t, user.IsBanned)
	require.True(t, user.BanExpiresAt.Valid)

	_, err = s.moderation.UnbanUser(ctx, &model.UnbanUserRequest{UserID: testutil.User4.ID})
	require.NoError(t, err)

	user, err = s.userRepo.GetByID(ctx, testutil.User4.ID)
	require.NoError(t, err)
	require.False(t, user.IsBanned)
	require.False(t, user.BanExpiresAt.Valid)

	_, err = s.moderation.UnbanUser(ctx, &model.UnbanUserRequest{UserID: testutil.User4.ID})
	require.Equal(t, errorx.New(errorx.BadRequest, "User is not banned"), err)
}

func Test_moderationDomain_BanUser_Duration(t *testing.T) {
	ctx := fixtureContext(testutil.AdminUser.ID)
	s := newTestSuite()

	_, err := s.moderation.BanUser(ctx, &model.BanUserRequest{
		UserID: testutil.User4.ID, Reason: "spam", DurationDays: 200000,
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Ban duration must not exceed %d days", 36500), err)

	user, err := s.userRepo.GetByID(ctx, testutil.User4.ID)
	require.NoError(t, err)
	require.False(t, user.IsBanned)

	_, err = s.moderation.BanUser(ctx, &model.BanUserRequest{
		UserID: testutil.User4.ID, Reason: "spam", DurationDays: 36500,
	})
	require.NoError(t, err)

	user, err = s.userRepo.GetByID(ctx, testutil.User4.ID)
	require.NoError(t, err)
	require.True(t, user.BanExpiresAt.Valid)
	require.True(t, user.BanExpiresAt.Time.After(time.Now().AddDate(99, 0, 0)))

	err = common.CheckGlobalBan(ctx, s.userRepo, user)
	require.Error(t, err)
	require.True(t, user.IsBanned)
}
