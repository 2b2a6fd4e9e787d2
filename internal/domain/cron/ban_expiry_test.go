package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/testutil"
)

func Test_BanExpiryCronJob_Do(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	userRepo := repository.NewUserRepository()
	job, err := NewBanExpiryCronJob(userRepo, "*/10 * * * *")
	require.NoError(t, err)

	job.Do(ctx)

	expired, err := userRepo.GetByID(ctx, testutil.ExpiredBanUser.ID)
	require.NoError(t, err)
	require.False(t, expired.IsBanned)
	require.Empty(t, expired.BanReason)
	require.False(t, expired.BanExpiresAt.Valid)

	banned, err := userRepo.GetByID(ctx, testutil.BannedUser.ID)
	require.NoError(t, err)
	require.True(t, banned.IsBanned)
}

func Test_BanExpiryCronJob_Next(t *testing.T) {
	job, err := NewBanExpiryCronJob(nil, "*/10 * * * *")
	require.NoError(t, err)

	job.now = func() time.Time { return time.Date(2024, 1, 1, 10, 3, 0, 0, time.UTC) }
	require.Equal(t, time.Date(2024, 1, 1, 10, 10, 0, 0, time.UTC), job.Next())

	_, err = NewBanExpiryCronJob(nil, "every tuesday")
	require.Error(t, err)
}

type countingJob struct {
	done chan struct{}
}

func (j *countingJob) Do(context.Context) { j.done <- struct{}{} }
func (j *countingJob) RunNow() bool       { return true }
func (j *countingJob) Next() time.Time    { return time.Now().Add(time.Hour) }

func Test_CronJobManager_Start(t *testing.T) {
	ctx, cancel := context.WithCancel(testutil.MockContext())
	job := &countingJob{done: make(chan struct{}, 1)}

	stopped := make(chan struct{})
	go func() {
		NewCronJobManager().Start(ctx, job)
		close(stopped)
	}()

	select {
	case <-job.done:
	case <-time.After(time.Second):
		require.FailNow(t, "job did not run")
	}

	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		require.FailNow(t, "manager did not stop")
	}
}
