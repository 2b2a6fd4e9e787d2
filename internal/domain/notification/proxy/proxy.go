package proxy

import (
	"context"
	"encoding/json"

	"github.com/threadhub-lab/backend/internal/common"
	"github.com/threadhub-lab/backend/internal/domain/notification/directive"
	"github.com/threadhub-lab/backend/internal/domain/notification/event"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"github.com/threadhub-lab/backend/pkg/xredis"
)

// MessageSender sends a private message coming from the live channel.
type MessageSender interface {
	SendLiveMessage(ctx context.Context, req *model.SendMessageRequest) (*model.SendMessageResponse, error)
}

type ProxyServer struct {
	registry      *Registry
	redisClient   xredis.Client
	messageSender MessageSender
}

func NewProxyServer(
	registry *Registry,
	redisClient xredis.Client,
	messageSender MessageSender,
) *ProxyServer {
	return &ProxyServer{
		registry:      registry,
		redisClient:   redisClient,
		messageSender: messageSender,
	}
}

func (server *ProxyServer) ServeProxy(ctx context.Context, req *model.ServeLiveRequest) error {
	userID := xcontext.RequestUserID(ctx)
	wsClient := xcontext.WSClient(ctx)
	if userID == "" || wsClient == nil {
		return errorx.New(errorx.Unauthenticated, "Need authenticated")
	}

	session := NewSession(userID)
	server.registry.Register(userID, session)
	server.setOnline(ctx, userID, true)
	defer func() {
		server.registry.Unregister(userID, session)
		if !server.registry.IsOnline(userID) {
			server.setOnline(ctx, userID, false)
		}
	}()

	xcontext.Logger(ctx).Debugf("User %s connected to live channel", userID)

	var seq int64
	for {
		select {
		case ev := <-session.C:
			b, err := json.Marshal(event.Format(ev, seq))
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot marshal event: %v", err)
				continue
			}
			seq++

			if err := wsClient.Write(b, false); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot send event to user %s: %v", userID, err)
				return nil
			}

		case msg, ok := <-wsClient.R:
			if !ok {
				xcontext.Logger(ctx).Debugf("User %s disconnected from live channel", userID)
				return nil
			}

			if err := server.handleDirective(ctx, msg); err != nil {
				session.Send(event.New(event.ErrorOp, event.ErrorEvent{Message: errorMessage(err)}))
			}
		}
	}
}

func (server *ProxyServer) handleDirective(ctx context.Context, msg []byte) error {
	var d directive.ClientDirective
	if err := json.Unmarshal(msg, &d); err != nil {
		return errorx.New(errorx.BadRequest, "Invalid directive")
	}

	switch d.Op {
	case directive.PingDirectiveOp:
		return nil

	case directive.SendPrivateMessageDirectiveOp:
		var data directive.SendPrivateMessageDirective
		if err := json.Unmarshal(d.Data, &data); err != nil {
			return errorx.New(errorx.BadRequest, "Invalid directive data")
		}

		_, err := server.messageSender.SendLiveMessage(ctx, &model.SendMessageRequest{
			ReceiverID: data.ReceiverID,
			Content:    data.Content,
			ReplyToID:  data.ReplyToID,
		})
		return err

	case directive.VoteUpdateDirectiveOp:
		var data directive.VoteUpdateDirective
		if err := json.Unmarshal(d.Data, &data); err != nil {
			return errorx.New(errorx.BadRequest, "Invalid directive data")
		}

		userID := xcontext.RequestUserID(ctx)
		server.registry.Broadcast(ctx, userID, event.VoteUpdatedOp, event.VoteUpdatedEvent{
			UserID:    userID,
			PostID:    data.PostID,
			CommentID: data.CommentID,
			Value:     data.Value,
		})
		return nil

	default:
		return errorx.New(errorx.BadRequest, "Unknown directive %s", d.Op)
	}
}

func (server *ProxyServer) setOnline(ctx context.Context, userID string, online bool) {
	if server.redisClient == nil {
		return
	}

	var err error
	if online {
		err = server.redisClient.SAdd(ctx, common.RedisKeyOnlineUsers, userID)
	} else {
		err = server.redisClient.SRem(ctx, common.RedisKeyOnlineUsers, userID)
	}

	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update presence of user %s: %v", userID, err)
	}
}

func errorMessage(err error) string {
	if errx, ok := err.(errorx.Error); ok {
		return errx.Message
	}

	return errorx.Unknown.Message
}
