package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/testutil"
)

func Test_subredditDomain_Create(t *testing.T) {
	ctx := fixtureContext(testutil.User5.ID)
	s := newTestSuite()

	resp, err := s.subreddit.Create(ctx, &model.CreateSubredditRequest{
		Name:        "  python ",
		Description: "snakes",
	})
	require.NoError(t, err)
	require.Equal(t, "python", resp.Subreddit.Name)
	require.Equal(t, testutil.User5.ID, resp.Subreddit.CreatedBy)

	owner, err := s.moderatorRepo.Get(ctx, resp.Subreddit.ID, testutil.User5.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ModeratorRoleOwner, owner.Role)
	require.Equal(t, entity.AllPermissions, owner.Permissions)

	_, err = s.subreddit.Create(ctx, &model.CreateSubredditRequest{Name: testutil.Subreddit1.Name})
	require.Equal(t, errorx.New(errorx.AlreadyExists, "Subreddit name is already taken"), err)

	_, err = s.subreddit.Create(ctx, &model.CreateSubredditRequest{Name: "   "})
	require.Equal(t, errorx.New(errorx.BadRequest, "Not allow empty name"), err)
}

func Test_subredditDomain_Get(t *testing.T) {
	ctx := fixtureContext(testutil.User4.ID)
	s := newTestSuite()

	resp, err := s.subreddit.Get(ctx, &model.GetSubredditRequest{ID: testutil.Subreddit1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Subreddit1.Name, resp.Subreddit.Name)
	require.Equal(t, int64(2), resp.SubscriberCount)
	require.Equal(t, int64(2), resp.PostCount)
	require.Len(t, resp.Moderators, 3)
	require.True(t, resp.IsSubscribed)

	resp, err = s.subreddit.Get(asUser(ctx, ""), &model.GetSubredditRequest{ID: testutil.Subreddit1.ID})
	require.NoError(t, err)
	require.False(t, resp.IsSubscribed)

	_, err = s.subreddit.Get(ctx, &model.GetSubredditRequest{ID: "unknown"})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found subreddit"), err)
}

func Test_subredditDomain_GetList(t *testing.T) {
	ctx := fixtureContext(testutil.User4.ID)
	s := newTestSuite()

	resp, err := s.subreddit.GetList(ctx, &model.GetSubredditsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Subreddits, 2)

	resp, err = s.subreddit.GetList(ctx, &model.GetSubredditsRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, resp.Subreddits, 1)
}

func Test_subredditDomain_UpdateByID(t *testing.T) {
	tests := []struct {
		name    string
		actorID string
		req     *model.UpdateSubredditRequest
		wantErr error
	}{
		{
			name:    "moderator updates",
			actorID: testutil.User2.ID,
			req:     &model.UpdateSubredditRequest{ID: testutil.Subreddit1.ID, Rules: "be nice"},
		},
		{
			name:    "admin updates",
			actorID: testutil.AdminUser.ID,
			req:     &model.UpdateSubredditRequest{ID: testutil.Subreddit1.ID, Theme: "dark"},
		},
		{
			name:    "subscriber cannot update",
			actorID: testutil.User4.ID,
			req:     &model.UpdateSubredditRequest{ID: testutil.Subreddit1.ID, Rules: "be nice"},
			wantErr: errorx.New(errorx.PermissionDenied, "Only admin can do this action"),
		},
		{
			name:    "nothing to update",
			actorID: testutil.User1.ID,
			req:     &model.UpdateSubredditRequest{ID: testutil.Subreddit1.ID},
			wantErr: errorx.New(errorx.BadRequest, "Nothing to update"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := fixtureContext(tt.actorID)
			s := newTestSuite()

			resp, err := s.subreddit.UpdateByID(ctx, tt.req)
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, testutil.Subreddit1.Description, resp.Subreddit.Description)
			if tt.req.Rules != "" {
				require.Equal(t, tt.req.Rules, resp.Subreddit.Rules)
			}

			if tt.req.Theme != "" {
				require.Equal(t, tt.req.Theme, resp.Subreddit.Theme)
			}
		})
	}
}

func Test_subredditDomain_DeleteByID(t *testing.T) {
	ctx := fixtureContext(testutil.User4.ID)
	s := newTestSuite()

	_, err := s.subreddit.DeleteByID(ctx, &model.DeleteSubredditRequest{ID: testutil.Subreddit1.ID})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Only admin can do this action"), err)

	_, err = s.subreddit.DeleteByID(asUser(ctx, testutil.User1.ID), &model.DeleteSubredditRequest{
		ID: testutil.Subreddit1.ID,
	})
	require.NoError(t, err)

	_, err = s.subreddit.Get(ctx, &model.GetSubredditRequest{ID: testutil.Subreddit1.ID})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found subreddit"), err)
}

func Test_subredditDomain_Subscribe(t *testing.T) {
	ctx := fixtureContext(testutil.User5.ID)
	s := newTestSuite()

	_, err := s.subreddit.Subscribe(ctx, &model.SubscribeRequest{SubredditID: testutil.Subreddit1.ID})
	require.NoError(t, err)

	_, err = s.subreddit.Subscribe(ctx, &model.SubscribeRequest{SubredditID: testutil.Subreddit1.ID})
	require.Equal(t, errorx.New(errorx.AlreadyExists, "Already subscribed"), err)

	subscribed, err := s.subreddit.GetSubscribed(ctx, &model.GetSubscribedSubredditsRequest{})
	require.NoError(t, err)
	require.Len(t, subscribed.Subreddits, 1)
	require.Equal(t, testutil.Subreddit1.ID, subscribed.Subreddits[0].ID)

	_, err = s.subreddit.Unsubscribe(ctx, &model.UnsubscribeRequest{SubredditID: testutil.Subreddit1.ID})
	require.NoError(t, err)

	_, err = s.subreddit.Unsubscribe(ctx, &model.UnsubscribeRequest{SubredditID: testutil.Subreddit1.ID})
	require.Equal(t, errorx.New(errorx.NotFound, "Not subscribed"), err)
}

func Test_subredditDomain_Subscribe_Banned(t *testing.T) {
	ctx := fixtureContext(testutil.User5.ID)
	s := newTestSuite()

	require.NoError(t, s.communityBanRepo.Create(ctx, &entity.CommunityBan{
		SubredditID: testutil.Subreddit1.ID,
		UserID:      testutil.User5.ID,
		Reason:      "trolling",
		BannedBy:    testutil.User3.ID,
	}))

	_, err := s.subreddit.Subscribe(ctx, &model.SubscribeRequest{SubredditID: testutil.Subreddit1.ID})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "You are banned from this subreddit").
		WithDetail(map[string]string{"reason": "trolling"}), err)

	_, err = s.subreddit.Subscribe(ctx, &model.SubscribeRequest{SubredditID: testutil.Subreddit2.ID})
	require.NoError(t, err)
}

func Test_subredditDomain_GetPosts(t *testing.T) {
	ctx := fixtureContext(testutil.User1.ID)
	s := newTestSuite()

	_, _, err := s.vote.CastVote(ctx, testutil.User1.ID, entity.VoteTargetPost, testutil.Post1.ID, 1)
	require.NoError(t, err)

	resp, err := s.subreddit.GetPosts(ctx, &model.GetSubredditPostsRequest{ID: testutil.Subreddit1.ID})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 2)

	posts := map[string]model.Post{}
	for _, p := range resp.Posts {
		posts[p.ID] = p
	}

	require.Equal(t, int64(1), posts[testutil.Post1.ID].VoteCount)
	require.Equal(t, 1, posts[testutil.Post1.ID].UserVote)
	require.Equal(t, int64(2), posts[testutil.Post1.ID].CommentCount)
	require.Equal(t, int64(0), posts[testutil.Post2.ID].VoteCount)
	require.NotContains(t, posts, testutil.DeletedPost.ID)
}
