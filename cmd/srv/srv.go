package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bwmarrin/snowflake"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/threadhub-lab/backend/config"
	"github.com/threadhub-lab/backend/internal/domain"
	"github.com/threadhub-lab/backend/internal/domain/notification/proxy"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/authenticator"
	"github.com/threadhub-lab/backend/pkg/kafka"
	"github.com/threadhub-lab/backend/pkg/logger"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"github.com/threadhub-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

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

	authDomain         domain.AuthDomain
	userDomain         domain.UserDomain
	karmaDomain        domain.KarmaDomain
	notificationDomain domain.NotificationDomain
	voteDomain         domain.VoteDomain
	moderationDomain   domain.ModerationDomain
	subredditDomain    domain.SubredditDomain
	postDomain         domain.PostDomain
	commentDomain      domain.CommentDomain
	followDomain       domain.FollowDomain
	messageDomain      domain.MessageDomain

	redisClient xredis.Client
	registry    *proxy.Registry
	pusher      proxy.Pusher
}

// setup runs before every command and fills the base context with configs,
// logger, token engine and snowflake node.
func (s *srv) setup(cctx *cli.Context) error {
	cfg, err := s.loadConfig(cctx.String("config"))
	if err != nil {
		return err
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logger.ParseLevel(cfg.LogLevel)))
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
	return nil
}

func (s *srv) loadConfig(path string) (config.Configs, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Configs{}, err
	}

	cfg := config.Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return config.Configs{}, err
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return config.Configs{}, err
	}

	return cfg, nil
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database

	logLevel := gormlogger.Error
	switch strings.ToLower(cfg.LogLevel) {
	case "silent":
		logLevel = gormlogger.Silent
	case "warn":
		logLevel = gormlogger.Warn
	case "info":
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       cfg.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot open database: %v", err)
		os.Exit(1)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := entity.MigrateTable(s.ctx); err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot migrate database: %v", err)
		os.Exit(1)
	}
}

// loadRedisClient leaves redisClient as a nil interface when redis is not
// configured or unreachable, karma and presence then run without cache.
func (s *srv) loadRedisClient() {
	if xcontext.Configs(s.ctx).Redis.Addr == "" {
		xcontext.Logger(s.ctx).Warnf("Redis is not configured, leaderboard and presence are disabled")
		return
	}

	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		xcontext.Logger(s.ctx).Warnf("Cannot connect to redis, leaderboard and presence are disabled: %v", err)
		return
	}

	s.redisClient = client
}

// loadPusher pushes live events through kafka when it is configured, so that
// they reach the proxy processes. Otherwise events go straight to the local
// registry.
func (s *srv) loadPusher() error {
	s.registry = proxy.NewRegistry()

	cfg := xcontext.Configs(s.ctx).Kafka
	if cfg.Addr == "" {
		s.pusher = s.registry
		return nil
	}

	publisher, err := kafka.NewPublisher(snowflakeClientID(s.ctx), strings.Split(cfg.Addr, ","))
	if err != nil {
		return err
	}

	s.pusher = proxy.NewPublisherPusher(publisher, cfg.Topic)
	return nil
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.voteRepo = repository.NewVoteRepository()
	s.karmaEventRepo = repository.NewKarmaEventRepository()
	s.subredditRepo = repository.NewSubredditRepository()
	s.moderatorRepo = repository.NewModeratorRepository()
	s.subscriptionRepo = repository.NewSubscriptionRepository()
	s.communityBanRepo = repository.NewCommunityBanRepository()
	s.notificationRepo = repository.NewNotificationRepository()
	s.postRepo = repository.NewPostRepository()
	s.mediaRepo = repository.NewMediaRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.followRepo = repository.NewFollowRepository()
	s.messageRepo = repository.NewPrivateMessageRepository()
}

func (s *srv) loadDomains() {
	s.karmaDomain = domain.NewKarmaDomain(s.karmaEventRepo, s.userRepo, s.voteRepo, s.redisClient)
	s.notificationDomain = domain.NewNotificationDomain(s.notificationRepo, s.pusher)
	s.voteDomain = domain.NewVoteDomain(s.voteRepo, s.postRepo, s.commentRepo, s.userRepo, s.notificationDomain)
	s.moderationDomain = domain.NewModerationDomain(
		s.subredditRepo, s.moderatorRepo, s.subscriptionRepo, s.communityBanRepo, s.userRepo)
	s.subredditDomain = domain.NewSubredditDomain(
		s.subredditRepo, s.moderatorRepo, s.subscriptionRepo, s.communityBanRepo,
		s.postRepo, s.mediaRepo, s.voteRepo, s.commentRepo, s.userRepo)
	s.postDomain = domain.NewPostDomain(
		s.postRepo, s.mediaRepo, s.subredditRepo, s.subscriptionRepo, s.moderatorRepo,
		s.communityBanRepo, s.userRepo, s.voteRepo, s.commentRepo, s.karmaDomain, s.notificationDomain)
	s.commentDomain = domain.NewCommentDomain(
		s.commentRepo, s.postRepo, s.mediaRepo, s.voteRepo, s.userRepo,
		s.moderatorRepo, s.subscriptionRepo, s.notificationDomain)
	s.followDomain = domain.NewFollowDomain(s.followRepo, s.userRepo, s.notificationDomain)
	s.messageDomain = domain.NewMessageDomain(s.messageRepo, s.userRepo, s.notificationDomain, s.pusher)
	s.userDomain = domain.NewUserDomain(
		s.userRepo, s.postRepo, s.commentRepo, s.followRepo, s.mediaRepo, s.voteRepo, s.karmaDomain, s.redisClient)
	s.authDomain = domain.NewAuthDomain(
		s.userRepo, s.postRepo, s.commentRepo, s.followRepo, s.subredditRepo, s.moderatorRepo)
}

func snowflakeClientID(ctx context.Context) string {
	return "threadhub-" + xcontext.SnowFlake(ctx).Generate().String()
}
