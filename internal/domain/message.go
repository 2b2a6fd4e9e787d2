package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/threadhub-lab/backend/internal/domain/notification/event"
	"github.com/threadhub-lab/backend/internal/domain/notification/proxy"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type MessageDomain interface {
	SendMessage(context.Context, *model.SendMessageRequest) (*model.SendMessageResponse, error)
	SendLiveMessage(context.Context, *model.SendMessageRequest) (*model.SendMessageResponse, error)
	GetConversations(context.Context, *model.GetConversationsRequest) (*model.GetConversationsResponse, error)
	GetConversation(context.Context, *model.GetConversationRequest) (*model.GetConversationResponse, error)
	ReadConversation(context.Context, *model.ReadConversationRequest) (*model.ReadConversationResponse, error)
}

type messageDomain struct {
	messageRepo        repository.PrivateMessageRepository
	userRepo           repository.UserRepository
	notificationDomain NotificationDomain
	pusher             proxy.Pusher
}

func NewMessageDomain(
	messageRepo repository.PrivateMessageRepository,
	userRepo repository.UserRepository,
	notificationDomain NotificationDomain,
	pusher proxy.Pusher,
) *messageDomain {
	return &messageDomain{
		messageRepo:        messageRepo,
		userRepo:           userRepo,
		notificationDomain: notificationDomain,
		pusher:             pusher,
	}
}

func (d *messageDomain) SendMessage(
	ctx context.Context, req *model.SendMessageRequest,
) (*model.SendMessageResponse, error) {
	message, err := d.send(ctx, req)
	if err != nil {
		return nil, err
	}

	d.push(ctx, message.ReceiverID, event.NewMessageOp, message)
	return &model.SendMessageResponse{Message: message}, nil
}

// SendLiveMessage is the path of messages sent through the live channel. The
// sender receives an acknowledgement on its own live channel.
func (d *messageDomain) SendLiveMessage(
	ctx context.Context, req *model.SendMessageRequest,
) (*model.SendMessageResponse, error) {
	message, err := d.send(ctx, req)
	if err != nil {
		return nil, err
	}

	d.push(ctx, message.ReceiverID, event.NewMessageOp, message)
	d.push(ctx, message.ReceiverID, event.NewPrivateMessageOp, message)
	d.push(ctx, message.SenderID, event.MessageSentOp, message)
	return &model.SendMessageResponse{Message: message}, nil
}

func (d *messageDomain) send(ctx context.Context, req *model.SendMessageRequest) (model.PrivateMessage, error) {
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return model.PrivateMessage{}, errorx.New(errorx.BadRequest, "Not allow empty content")
	}

	senderID := xcontext.RequestUserID(ctx)
	if req.ReceiverID == senderID {
		return model.PrivateMessage{}, errorx.New(errorx.BadRequest, "Cannot send message to yourself")
	}

	if _, err := getUser(ctx, d.userRepo, req.ReceiverID); err != nil {
		return model.PrivateMessage{}, err
	}

	message := &entity.PrivateMessage{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		SenderID:      senderID,
		ReceiverID:    req.ReceiverID,
		Content:       req.Content,
	}

	if req.ReplyToID != "" {
		replyToID, err := strconv.ParseInt(req.ReplyToID, 10, 64)
		if err != nil {
			return model.PrivateMessage{}, errorx.New(errorx.BadRequest, "Invalid reply message id")
		}

		if _, err := d.messageRepo.GetByID(ctx, replyToID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.PrivateMessage{}, errorx.New(errorx.NotFound, "Not found reply message")
			}

			xcontext.Logger(ctx).Errorf("Cannot get reply message: %v", err)
			return model.PrivateMessage{}, errorx.Unknown
		}

		message.ReplyToID = sql.NullInt64{Valid: true, Int64: replyToID}
	}

	if err := d.messageRepo.Create(ctx, message); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create message: %v", err)
		return model.PrivateMessage{}, errorx.Unknown
	}

	sender, err := d.userRepo.GetByID(ctx, senderID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get sender: %v", err)
		return model.PrivateMessage{}, errorx.Unknown
	}

	messageID := strconv.FormatInt(message.ID, 10)
	notifyQuietly(ctx, d.notificationDomain, NotifyParams{
		ActorID:     senderID,
		RecipientID: req.ReceiverID,
		Type:        entity.NotificationMessage,
		Content:     fmt.Sprintf("%s sent you a message", sender.Username),
		SourceID:    messageID,
		SourceType:  entity.SourceMessage,
	})

	return model.ConvertPrivateMessage(message), nil
}

func (d *messageDomain) push(ctx context.Context, userID, op string, payload any) {
	if d.pusher == nil {
		return
	}

	if err := d.pusher.PushToUser(ctx, userID, op, payload); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot push %s to user %s: %v", op, userID, err)
	}
}

func (d *messageDomain) GetConversations(
	ctx context.Context, req *model.GetConversationsRequest,
) (*model.GetConversationsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	messages, err := d.messageRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get messages: %v", err)
		return nil, errorx.Unknown
	}

	// Messages are newest first, so the first message seen of every other user
	// is the latest of the conversation.
	order := []string{}
	conversations := map[string]*model.Conversation{}
	for i := range messages {
		otherID := messages[i].SenderID
		if otherID == userID {
			otherID = messages[i].ReceiverID
		}

		conversation, ok := conversations[otherID]
		if !ok {
			conversation = &model.Conversation{LatestMessage: model.ConvertPrivateMessage(&messages[i])}
			conversations[otherID] = conversation
			order = append(order, otherID)
		}

		if messages[i].ReceiverID == userID && !messages[i].IsRead {
			conversation.UnreadCount++
		}
	}

	users, err := d.userRepo.GetByIDs(ctx, order)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	for i := range users {
		if c, ok := conversations[users[i].ID]; ok {
			c.User = model.ConvertShortUser(&users[i])
		}
	}

	result := []model.Conversation{}
	for _, id := range order {
		result = append(result, *conversations[id])
	}

	return &model.GetConversationsResponse{Conversations: result}, nil
}

func (d *messageDomain) GetConversation(
	ctx context.Context, req *model.GetConversationRequest,
) (*model.GetConversationResponse, error) {
	other, err := getUser(ctx, d.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	messages, err := d.messageRepo.GetConversation(ctx, xcontext.RequestUserID(ctx), other.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get conversation: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.PrivateMessage{}
	for i := range messages {
		result = append(result, model.ConvertPrivateMessage(&messages[i]))
	}

	return &model.GetConversationResponse{User: model.ConvertShortUser(other), Messages: result}, nil
}

func (d *messageDomain) ReadConversation(
	ctx context.Context, req *model.ReadConversationRequest,
) (*model.ReadConversationResponse, error) {
	if _, err := getUser(ctx, d.userRepo, req.UserID); err != nil {
		return nil, err
	}

	count, err := d.messageRepo.MarkConversationRead(ctx, xcontext.RequestUserID(ctx), req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark conversation as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReadConversationResponse{Count: count}, nil
}
