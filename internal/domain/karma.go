package domain

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/threadhub-lab/backend/internal/common"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"github.com/threadhub-lab/backend/pkg/xredis"
)

// KarmaDomain keeps two distinct numbers per user. The cached karma is the
// sum of the karma events of the user and is stored in users.karma. The
// display karma is the live sum of the votes on the posts and comments of the
// user and is never stored.
type KarmaDomain interface {
	AddEvent(ctx context.Context, event *entity.KarmaEvent) error
	Recompute(ctx context.Context, userID string) (int64, error)
	DisplayKarma(ctx context.Context, userID string) (int64, error)
	GetLeaderboard(context.Context, *model.GetKarmaLeaderboardRequest) (*model.GetKarmaLeaderboardResponse, error)
}

type karmaDomain struct {
	karmaEventRepo repository.KarmaEventRepository
	userRepo       repository.UserRepository
	voteRepo       repository.VoteRepository
	redisClient    xredis.Client
}

func NewKarmaDomain(
	karmaEventRepo repository.KarmaEventRepository,
	userRepo repository.UserRepository,
	voteRepo repository.VoteRepository,
	redisClient xredis.Client,
) *karmaDomain {
	return &karmaDomain{
		karmaEventRepo: karmaEventRepo,
		userRepo:       userRepo,
		voteRepo:       voteRepo,
		redisClient:    redisClient,
	}
}

func (d *karmaDomain) AddEvent(ctx context.Context, event *entity.KarmaEvent) error {
	if event.ID == 0 {
		event.ID = xcontext.SnowFlake(ctx).Generate().Int64()
	}

	if err := d.karmaEventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("cannot create karma event: %w", err)
	}

	return nil
}

// Recompute is idempotent as long as no new event is appended in between.
func (d *karmaDomain) Recompute(ctx context.Context, userID string) (int64, error) {
	total, err := d.karmaEventRepo.SumByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("cannot sum karma events: %w", err)
	}

	if err := d.userRepo.UpdateKarma(ctx, userID, total); err != nil {
		return 0, fmt.Errorf("cannot update karma: %w", err)
	}

	if d.redisClient != nil {
		err := d.redisClient.ZAdd(ctx, common.RedisKeyKarmaLeaderboard, redis.Z{
			Score:  float64(total),
			Member: userID,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update karma leaderboard of user %s: %v", userID, err)
		}
	}

	return total, nil
}

func (d *karmaDomain) DisplayKarma(ctx context.Context, userID string) (int64, error) {
	onPosts, err := d.voteRepo.SumOnPostsOfAuthor(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("cannot sum votes on posts: %w", err)
	}

	onComments, err := d.voteRepo.SumOnCommentsOfAuthor(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("cannot sum votes on comments: %w", err)
	}

	return onPosts + onComments, nil
}

func (d *karmaDomain) GetLeaderboard(
	ctx context.Context, req *model.GetKarmaLeaderboardRequest,
) (*model.GetKarmaLeaderboardResponse, error) {
	if d.redisClient == nil {
		return nil, errorx.New(errorx.Unavailable, "Leaderboard is not available")
	}

	limit := common.ClampLimit(ctx, req.Limit)
	scores, err := d.redisClient.ZRevRangeWithScores(ctx, common.RedisKeyKarmaLeaderboard, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get karma leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := []string{}
	for _, z := range scores {
		if id, ok := z.Member.(string); ok {
			userIDs = append(userIDs, id)
		}
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard users: %v", err)
		return nil, errorx.Unknown
	}

	userMap := map[string]*entity.User{}
	for i := range users {
		userMap[users[i].ID] = &users[i]
	}

	records := []model.KarmaRecord{}
	for i, z := range scores {
		id, _ := z.Member.(string)
		user, ok := userMap[id]
		if !ok {
			continue
		}

		records = append(records, model.KarmaRecord{
			Rank:  req.Offset + i + 1,
			User:  model.ConvertShortUser(user),
			Karma: int64(z.Score),
		})
	}

	return &model.GetKarmaLeaderboardResponse{Records: records}, nil
}
