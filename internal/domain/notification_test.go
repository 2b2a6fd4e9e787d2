package domain

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/threadhub-lab/backend/internal/domain/notification/event"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/testutil"
)

func Test_notificationDomain_Notify(t *testing.T) {
	ctx := fixtureContext(testutil.User1.ID)
	s := newTestSuite()

	notification, err := s.notification.Notify(ctx, NotifyParams{
		ActorID:     testutil.User1.ID,
		RecipientID: testutil.User2.ID,
		Type:        entity.NotificationFollow,
		Content:     "alice started following you",
		SourceID:    testutil.User1.ID,
		SourceType:  entity.SourceUser,
	})
	require.NoError(t, err)
	require.NotNil(t, notification)
	require.NotZero(t, notification.ID)

	require.Len(t, notificationsOf(t, ctx, testutil.User2.ID), 1)

	events := s.pusher.EventsOf(testutil.User2.ID)
	require.Len(t, events, 1)
	require.Equal(t, event.NewNotificationOp, events[0].Op)
	require.Equal(t, model.ConvertNotification(notification), events[0].Payload)
}

func Test_notificationDomain_Notify_Self(t *testing.T) {
	ctx := fixtureContext(testutil.User1.ID)
	s := newTestSuite()

	notification, err := s.notification.Notify(ctx, NotifyParams{
		ActorID:     testutil.User1.ID,
		RecipientID: testutil.User1.ID,
		Type:        entity.NotificationVote,
	})
	require.NoError(t, err)
	require.Nil(t, notification)
	require.Empty(t, notificationsOf(t, ctx, testutil.User1.ID))
	require.Empty(t, s.pusher.Events)
}

func Test_notificationDomain_Notify_PushFailure(t *testing.T) {
	ctx := fixtureContext(testutil.User1.ID)
	s := newTestSuite()
	s.pusher.PushToUserFunc = func(ctx context.Context, userID, op string, payload any) error {
		return errors.New("connection reset")
	}

	notification, err := s.notification.Notify(ctx, NotifyParams{
		ActorID:     testutil.User1.ID,
		RecipientID: testutil.User2.ID,
		Type:        entity.NotificationVote,
	})
	require.NoError(t, err)
	require.NotNil(t, notification)
	require.Len(t, notificationsOf(t, ctx, testutil.User2.ID), 1)
}

func Test_notificationDomain_GetAndRead(t *testing.T) {
	ctx := fixtureContext(testutil.User2.ID)
	s := newTestSuite()

	notification, err := s.notification.Notify(ctx, NotifyParams{
		ActorID:     testutil.User1.ID,
		RecipientID: testutil.User2.ID,
		Type:        entity.NotificationComment,
		Content:     "hello",
	})
	require.NoError(t, err)

	id := strconv.FormatInt(notification.ID, 10)

	// Only the recipient can read it.
	_, err = s.notification.ReadNotification(asUser(ctx, testutil.User3.ID), &model.ReadNotificationRequest{ID: id})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found notification"), err)

	_, err = s.notification.ReadNotification(ctx, &model.ReadNotificationRequest{ID: "abc"})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid notification id"), err)

	_, err = s.notification.ReadNotification(ctx, &model.ReadNotificationRequest{ID: id})
	require.NoError(t, err)

	resp, err := s.notification.GetNotifications(ctx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 1)
	require.Equal(t, id, resp.Notifications[0].ID)
	require.True(t, resp.Notifications[0].IsRead)

	resp, err = s.notification.GetNotifications(asUser(ctx, testutil.User3.ID), &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Notifications)
}
