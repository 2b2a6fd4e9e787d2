package domain

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/threadhub-lab/backend/internal/domain/notification/event"
	"github.com/threadhub-lab/backend/internal/domain/notification/proxy"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const notificationPageSize = 20

type NotifyParams struct {
	ActorID     string
	RecipientID string
	Type        entity.NotificationType
	Content     string
	SourceID    string
	SourceType  entity.SourceType
}

type NotificationDomain interface {
	Notify(ctx context.Context, params NotifyParams) (*entity.Notification, error)
	GetNotifications(context.Context, *model.GetNotificationsRequest) (*model.GetNotificationsResponse, error)
	ReadNotification(context.Context, *model.ReadNotificationRequest) (*model.ReadNotificationResponse, error)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
	pusher           proxy.Pusher
}

func NewNotificationDomain(
	notificationRepo repository.NotificationRepository,
	pusher proxy.Pusher,
) *notificationDomain {
	return &notificationDomain{
		notificationRepo: notificationRepo,
		pusher:           pusher,
	}
}

// Notify persists the notification and pushes it to the live channel of the
// recipient. An actor never notifies itself. A failed push is only logged.
func (d *notificationDomain) Notify(ctx context.Context, params NotifyParams) (*entity.Notification, error) {
	if params.RecipientID == params.ActorID {
		return nil, nil
	}

	notification := &entity.Notification{
		ID:         xcontext.SnowFlake(ctx).Generate().Int64(),
		UserID:     params.RecipientID,
		Type:       params.Type,
		Content:    params.Content,
		SourceID:   params.SourceID,
		SourceType: params.SourceType,
	}

	if err := d.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("cannot create notification: %w", err)
	}

	if d.pusher != nil {
		err := d.pusher.PushToUser(ctx, params.RecipientID, event.NewNotificationOp,
			model.ConvertNotification(notification))
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot push notification to user %s: %v", params.RecipientID, err)
		}
	}

	return notification, nil
}

func (d *notificationDomain) GetNotifications(
	ctx context.Context, req *model.GetNotificationsRequest,
) (*model.GetNotificationsResponse, error) {
	notifications, err := d.notificationRepo.GetListByUserID(
		ctx, xcontext.RequestUserID(ctx), notificationPageSize)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Notification{}
	for i := range notifications {
		result = append(result, model.ConvertNotification(&notifications[i]))
	}

	return &model.GetNotificationsResponse{Notifications: result}, nil
}

func (d *notificationDomain) ReadNotification(
	ctx context.Context, req *model.ReadNotificationRequest,
) (*model.ReadNotificationResponse, error) {
	id, err := strconv.ParseInt(req.ID, 10, 64)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid notification id")
	}

	notification, err := d.notificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found notification")
		}

		xcontext.Logger(ctx).Errorf("Cannot get notification: %v", err)
		return nil, errorx.Unknown
	}

	// Another user's notification is reported as missing.
	if notification.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.NotFound, "Not found notification")
	}

	if err := d.notificationRepo.MarkRead(ctx, id); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark notification as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReadNotificationResponse{}, nil
}

// notifyQuietly is used by actions which must not fail because of a
// notification.
func notifyQuietly(ctx context.Context, d NotificationDomain, params NotifyParams) {
	if _, err := d.Notify(ctx, params); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot notify user %s: %v", params.RecipientID, err)
	}
}
