package main

import (
	"os/signal"
	"syscall"

	"github.com/threadhub-lab/backend/internal/domain/cron"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRepos()

	banExpiry, err := cron.NewBanExpiryCronJob(s.userRepo, xcontext.Configs(s.ctx).Cron.BanExpirySpec)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cron.NewCronJobManager().Start(ctx, banExpiry)
	return nil
}
