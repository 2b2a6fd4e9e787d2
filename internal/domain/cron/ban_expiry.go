package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/xcontext"
)

// BanExpiryCronJob lifts every expired global ban in bulk. Requests of a user
// whose ban is over are let through by the auth middleware anyway, this job
// only keeps the table clean for users who do not come back.
type BanExpiryCronJob struct {
	userRepo repository.UserRepository
	schedule cron.Schedule
	now      func() time.Time
}

func NewBanExpiryCronJob(userRepo repository.UserRepository, spec string) (*BanExpiryCronJob, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid ban expiry schedule %q: %w", spec, err)
	}

	return &BanExpiryCronJob{userRepo: userRepo, schedule: schedule, now: time.Now}, nil
}

func (job *BanExpiryCronJob) Do(ctx context.Context) {
	count, err := job.userRepo.UnbanExpired(ctx, job.now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot lift expired bans: %v", err)
		return
	}

	if count > 0 {
		xcontext.Logger(ctx).Infof("Lifted %d expired bans", count)
	}
}

func (job *BanExpiryCronJob) RunNow() bool {
	return true
}

func (job *BanExpiryCronJob) Next() time.Time {
	return job.schedule.Next(job.now())
}
