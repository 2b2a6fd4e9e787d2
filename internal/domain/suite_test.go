package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/testutil"
	"github.com/threadhub-lab/backend/pkg/xcontext"
)

type testSuite struct {
	pusher *testutil.MockPusher
	redis  *testutil.MockRedisClient

	userRepo         repository.UserRepository
	voteRepo         repository.VoteRepository
	karmaEventRepo   repository.KarmaEventRepository
	subredditRepo    repository.SubredditRepository
	moderatorRepo    repository.ModeratorRepository
	subscriptionRepo repository.SubscriptionRepository
	communityBanRepo repository.CommunityBanRepository
	notificationRepo repository.NotificationRepository
	postRepo         repository.PostRepository
	mediaRepo        repository.MediaRepository
	commentRepo      repository.CommentRepository
	followRepo       repository.FollowRepository
	messageRepo      repository.PrivateMessageRepository

	karma        *karmaDomain
	notification *notificationDomain
	vote         *voteDomain
	moderation   *moderationDomain
	subreddit    *subredditDomain
	post         *postDomain
	comment      *commentDomain
	follow       *followDomain
	message      *messageDomain
	user         *userDomain
	auth         *authDomain
}

func newTestSuite() *testSuite {
	s := &testSuite{
		pusher: &testutil.MockPusher{},
		redis:  &testutil.MockRedisClient{},

		userRepo:         repository.NewUserRepository(),
		voteRepo:         repository.NewVoteRepository(),
		karmaEventRepo:   repository.NewKarmaEventRepository(),
		subredditRepo:    repository.NewSubredditRepository(),
		moderatorRepo:    repository.NewModeratorRepository(),
		subscriptionRepo: repository.NewSubscriptionRepository(),
		communityBanRepo: repository.NewCommunityBanRepository(),
		notificationRepo: repository.NewNotificationRepository(),
		postRepo:         repository.NewPostRepository(),
		mediaRepo:        repository.NewMediaRepository(),
		commentRepo:      repository.NewCommentRepository(),
		followRepo:       repository.NewFollowRepository(),
		messageRepo:      repository.NewPrivateMessageRepository(),
	}

	s.karma = NewKarmaDomain(s.karmaEventRepo, s.userRepo, s.voteRepo, s.redis)
	s.notification = NewNotificationDomain(s.notificationRepo, s.pusher)
	s.vote = NewVoteDomain(s.voteRepo, s.postRepo, s.commentRepo, s.userRepo, s.notification)
	s.moderation = NewModerationDomain(
		s.subredditRepo, s.moderatorRepo, s.subscriptionRepo, s.communityBanRepo, s.userRepo)
	s.subreddit = NewSubredditDomain(
		s.subredditRepo, s.moderatorRepo, s.subscriptionRepo, s.communityBanRepo,
		s.postRepo, s.mediaRepo, s.voteRepo, s.commentRepo, s.userRepo)
	s.post = NewPostDomain(
		s.postRepo, s.mediaRepo, s.subredditRepo, s.subscriptionRepo, s.moderatorRepo,
		s.communityBanRepo, s.userRepo, s.voteRepo, s.commentRepo, s.karma, s.notification)
	s.comment = NewCommentDomain(
		s.commentRepo, s.postRepo, s.mediaRepo, s.voteRepo, s.userRepo,
		s.moderatorRepo, s.subscriptionRepo, s.notification)
	s.follow = NewFollowDomain(s.followRepo, s.userRepo, s.notification)
	s.message = NewMessageDomain(s.messageRepo, s.userRepo, s.notification, s.pusher)
	s.user = NewUserDomain(
		s.userRepo, s.postRepo, s.commentRepo, s.followRepo, s.mediaRepo, s.voteRepo, s.karma, s.redis)
	s.auth = NewAuthDomain(
		s.userRepo, s.postRepo, s.commentRepo, s.followRepo, s.subredditRepo, s.moderatorRepo)

	return s
}

// fixtureContext returns a seeded context acting as userID.
func fixtureContext(userID string) context.Context {
	ctx := testutil.MockContextWithUserID(userID)
	testutil.CreateFixtureDb(ctx)
	return ctx
}

func asUser(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}

func requireErrorCode(t *testing.T, err error, code errorx.Code) {
	t.Helper()
	require.Error(t, err)

	errx, ok := err.(errorx.Error)
	require.True(t, ok, "unexpected error type %T: %v", err, err)
	require.Equal(t, code, errx.Code, errx.Message)
}

func notificationsOf(t *testing.T, ctx context.Context, userID string) []entity.Notification {
	t.Helper()

	var result []entity.Notification
	require.NoError(t, xcontext.DB(ctx).Where("user_id=?", userID).Find(&result).Error)
	return result
}
