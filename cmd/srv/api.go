package main

import (
	"net/http"

	"github.com/threadhub-lab/backend/internal/domain/notification/proxy"
	"github.com/threadhub-lab/backend/internal/middleware"
	"github.com/threadhub-lab/backend/pkg/router"
	"github.com/threadhub-lab/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	if err := s.loadPusher(); err != nil {
		return err
	}
	s.loadRepos()
	s.loadDomains()

	cfg := xcontext.Configs(s.ctx)
	httpSrv := &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: s.loadRouter().Handler(cfg.ApiServer.ServerConfigs),
	}

	xcontext.Logger(s.ctx).Infof("Server start in port: %s", cfg.ApiServer.Port)
	if err := httpSrv.ListenAndServe(); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() *router.Router {
	defaultRouter := router.New(s.ctx)
	defaultRouter.AddCloser(middleware.Logger())
	router.GET(defaultRouter, "/healthz", s.authDomain.Healthz)

	authVerifier := middleware.NewAuthVerifier(s.userRepo)

	// Auth API, these set or clear the token cookie.
	authRouter := defaultRouter.Branch()
	authRouter.After(middleware.HandleSetCookie())
	{
		router.POST(authRouter, "/register", s.authDomain.Register)
		router.POST(authRouter, "/login", s.authDomain.Login)
		router.POST(authRouter, "/logout", s.authDomain.Logout)
	}

	// Public APIs, a token is optional and only used to fill user specific
	// fields such as user_vote or is_subscribed.
	publicRouter := defaultRouter.Branch()
	publicRouter.Before(authVerifier.OptionalMiddleware())
	{
		router.GET(publicRouter, "/getSubreddits", s.subredditDomain.GetList)
		router.GET(publicRouter, "/getSubreddit", s.subredditDomain.Get)
		router.GET(publicRouter, "/getSubredditPosts", s.subredditDomain.GetPosts)
		router.GET(publicRouter, "/getModerators", s.moderationDomain.GetModerators)

		router.GET(publicRouter, "/getPost", s.postDomain.Get)
		router.GET(publicRouter, "/getComments", s.commentDomain.GetList)
		router.GET(publicRouter, "/getComment", s.commentDomain.Get)

		router.GET(publicRouter, "/getUser", s.userDomain.GetUser)
		router.GET(publicRouter, "/getUserPosts", s.userDomain.GetPosts)
		router.GET(publicRouter, "/getUserComments", s.userDomain.GetComments)
		router.GET(publicRouter, "/getFollowers", s.followDomain.GetFollowers)
		router.GET(publicRouter, "/getFollowing", s.followDomain.GetFollowing)

		router.GET(publicRouter, "/getKarmaLeaderboard", s.karmaDomain.GetLeaderboard)
	}

	// These following APIs need authentication.
	userRouter := defaultRouter.Branch()
	userRouter.Before(authVerifier.Middleware())
	{
		router.GET(userRouter, "/getMe", s.authDomain.GetMe)
		router.GET(userRouter, "/getSocketToken", s.authDomain.GetSocketToken)

		// Subreddit API
		router.POST(userRouter, "/createSubreddit", s.subredditDomain.Create)
		router.POST(userRouter, "/updateSubreddit", s.subredditDomain.UpdateByID)
		router.POST(userRouter, "/deleteSubreddit", s.subredditDomain.DeleteByID)
		router.POST(userRouter, "/subscribe", s.subredditDomain.Subscribe)
		router.POST(userRouter, "/unsubscribe", s.subredditDomain.Unsubscribe)
		router.GET(userRouter, "/getSubscribedSubreddits", s.subredditDomain.GetSubscribed)

		// Moderation API
		router.POST(userRouter, "/banCommunityUser", s.moderationDomain.BanCommunityUser)
		router.POST(userRouter, "/unbanCommunityUser", s.moderationDomain.UnbanCommunityUser)
		router.POST(userRouter, "/addModerator", s.moderationDomain.AddModerator)
		router.POST(userRouter, "/updateModerator", s.moderationDomain.UpdateModerator)
		router.POST(userRouter, "/removeModerator", s.moderationDomain.RemoveModerator)
		router.POST(userRouter, "/removeSubscriber", s.moderationDomain.RemoveSubscriber)
		router.GET(userRouter, "/getSubscribers", s.moderationDomain.GetSubscribers)
		router.POST(userRouter, "/banUser", s.moderationDomain.BanUser)
		router.POST(userRouter, "/unbanUser", s.moderationDomain.UnbanUser)

		// Post API
		router.POST(userRouter, "/createPost", s.postDomain.Create)
		router.POST(userRouter, "/updatePost", s.postDomain.Update)
		router.POST(userRouter, "/deletePost", s.postDomain.Delete)

		// Comment API
		router.POST(userRouter, "/createComment", s.commentDomain.Create)
		router.POST(userRouter, "/updateComment", s.commentDomain.Update)
		router.POST(userRouter, "/deleteComment", s.commentDomain.Delete)

		// Vote API
		router.POST(userRouter, "/votePost", s.voteDomain.VotePost)
		router.POST(userRouter, "/voteComment", s.voteDomain.VoteComment)

		// Follow API
		router.POST(userRouter, "/follow", s.followDomain.Follow)
		router.POST(userRouter, "/unfollow", s.followDomain.Unfollow)

		// Message API
		router.POST(userRouter, "/sendMessage", s.messageDomain.SendMessage)
		router.GET(userRouter, "/getConversations", s.messageDomain.GetConversations)
		router.GET(userRouter, "/getConversation", s.messageDomain.GetConversation)
		router.POST(userRouter, "/readConversation", s.messageDomain.ReadConversation)

		// Notification API
		router.GET(userRouter, "/getNotifications", s.notificationDomain.GetNotifications)
		router.POST(userRouter, "/readNotification", s.notificationDomain.ReadNotification)
	}

	// Without kafka there is no proxy process, the api serves the live
	// channel itself.
	if xcontext.Configs(s.ctx).Kafka.Addr == "" {
		liveProxy := proxy.NewProxyServer(s.registry, s.redisClient, s.messageDomain)
		router.Websocket(userRouter, "/live", liveProxy.ServeProxy)
	}

	return defaultRouter
}
