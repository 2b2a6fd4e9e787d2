package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/testutil"
)

func Test_followDomain_Follow(t *testing.T) {
	ctx := fixtureContext(testutil.User1.ID)
	s := newTestSuite()

	_, err := s.follow.Follow(ctx, &model.FollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	_, err = s.follow.Follow(ctx, &model.FollowRequest{UserID: testutil.User2.ID})
	require.Equal(t, errorx.New(errorx.AlreadyExists, "Already followed this user"), err)

	_, err = s.follow.Follow(ctx, &model.FollowRequest{UserID: testutil.User1.ID})
	require.Equal(t, errorx.New(errorx.BadRequest, "Cannot follow yourself"), err)

	_, err = s.follow.Follow(ctx, &model.FollowRequest{UserID: "unknown"})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found user"), err)

	notifications := notificationsOf(t, ctx, testutil.User2.ID)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationFollow, notifications[0].Type)
	require.Equal(t, "alice started following you", notifications[0].Content)
	require.Equal(t, testutil.User1.ID, notifications[0].SourceID)
	require.Equal(t, entity.SourceUser, notifications[0].SourceType)
}

func Test_followDomain_Unfollow(t *testing.T) {
	ctx := fixtureContext(testutil.User1.ID)
	s := newTestSuite()

	_, err := s.follow.Unfollow(ctx, &model.UnfollowRequest{UserID: testutil.User2.ID})
	require.Equal(t, errorx.New(errorx.NotFound, "Not followed this user"), err)

	_, err = s.follow.Follow(ctx, &model.FollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	_, err = s.follow.Unfollow(ctx, &model.UnfollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	_, err = s.follow.Unfollow(ctx, &model.UnfollowRequest{})
	require.Equal(t, errorx.New(errorx.BadRequest, "Not allow empty user id"), err)
}

func Test_followDomain_GetFollowersAndFollowing(t *testing.T) {
	ctx := fixtureContext(testutil.User1.ID)
	s := newTestSuite()

	for _, followerID := range []string{testutil.User2.ID, testutil.User3.ID, testutil.User4.ID} {
		_, err := s.follow.Follow(asUser(ctx, followerID), &model.FollowRequest{UserID: testutil.User1.ID})
		require.NoError(t, err)
	}

	_, err := s.follow.Follow(ctx, &model.FollowRequest{UserID: testutil.User5.ID})
	require.NoError(t, err)

	followers, err := s.follow.GetFollowers(ctx, &model.GetFollowersRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(3), followers.Total)
	require.Equal(t, 1, followers.Page)
	require.Equal(t, 10, followers.Limit)

	ids := []string{}
	for _, u := range followers.Users {
		ids = append(ids, u.ID)
	}
	require.ElementsMatch(t, []string{testutil.User2.ID, testutil.User3.ID, testutil.User4.ID}, ids)

	page, err := s.follow.GetFollowers(ctx, &model.GetFollowersRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), page.Total)
	require.Len(t, page.Users, 1)

	following, err := s.follow.GetFollowing(ctx, &model.GetFollowingRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), following.Total)
	require.Equal(t, []model.ShortUser{model.ConvertShortUser(testutil.User5)}, following.Users)

	following, err = s.follow.GetFollowing(ctx, &model.GetFollowingRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), following.Total)
	require.Equal(t, testutil.User1.ID, following.Users[0].ID)
}
