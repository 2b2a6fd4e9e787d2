package main

import (
	"net/http"
	"strings"

	"github.com/threadhub-lab/backend/internal/domain/notification/proxy"
	"github.com/threadhub-lab/backend/internal/middleware"
	"github.com/threadhub-lab/backend/pkg/kafka"
	"github.com/threadhub-lab/backend/pkg/router"
	"github.com/threadhub-lab/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startProxy(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	if err := s.loadPusher(); err != nil {
		return err
	}
	s.loadRepos()
	s.loadDomains()

	cfg := xcontext.Configs(s.ctx)
	if cfg.Kafka.Addr != "" {
		// Every proxy must receive every event, so each one joins its own
		// consumer group.
		subscriber, err := kafka.NewSubscriber(
			snowflakeClientID(s.ctx),
			strings.Split(cfg.Kafka.Addr, ","),
			[]string{cfg.Kafka.Topic},
			proxy.NewSubscribeHandler(s.registry),
		)
		if err != nil {
			return err
		}
		defer subscriber.Stop(s.ctx)

		subscriber.Subscribe(s.ctx)
	}

	liveProxy := proxy.NewProxyServer(s.registry, s.redisClient, s.messageDomain)

	defaultRouter := router.New(s.ctx)
	defaultRouter.AddCloser(middleware.Logger())
	router.GET(defaultRouter, "/healthz", s.authDomain.Healthz)

	liveRouter := defaultRouter.Branch()
	liveRouter.Before(middleware.NewAuthVerifier(s.userRepo).Middleware())
	router.Websocket(liveRouter, "/live", liveProxy.ServeProxy)

	httpSrv := &http.Server{
		Addr:    cfg.ProxyServer.Address(),
		Handler: defaultRouter.Handler(cfg.ProxyServer),
	}

	xcontext.Logger(s.ctx).Infof("Server start in port: %s", cfg.ProxyServer.Port)
	if err := httpSrv.ListenAndServe(); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}
