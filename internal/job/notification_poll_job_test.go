package job

import (
	"Bobmap/internal/gateway"
	"Bobmap/internal/model"
	"Bobmap/internal/repository"
	"Bobmap/internal/service"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pollGateway struct {
	gateway.SyncGateway
	events []*model.NotificationEvent
	err    error
}

func (s *pollGateway) FetchNotifications(ctx context.Context, userID uint64) ([]*model.NotificationEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.events, nil
}

func TestNotificationPollJobRun(t *testing.T) {
	ctx := context.Background()

	t.Run("AppendsFetchedEvents", func(t *testing.T) {
		notificationService := service.NewNotificationService(repository.NewNotificationRepo(0), repository.NewUserRepo())
		gw := &pollGateway{events: []*model.NotificationEvent{
			{ID: "n1", Type: model.EventFollow, ActorID: 3, TargetUserID: 1},
			{ID: "n2", Type: model.EventLike, ActorID: 4, TargetUserID: 1},
		}}

		j := NewNotificationPollJob(gw, notificationService, 1)
		j.Run()

		unread, err := notificationService.GetUnreadCount(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), unread.UnreadCount)

		// 与上一轮重叠的事件按 ID 吸收，不会重复入列
		j.Run()
		unread, err = notificationService.GetUnreadCount(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), unread.UnreadCount)
	})

	t.Run("FetchErrorLeavesFeedUntouched", func(t *testing.T) {
		notificationService := service.NewNotificationService(repository.NewNotificationRepo(0), repository.NewUserRepo())
		gw := &pollGateway{err: errors.New("gateway unreachable")}

		j := NewNotificationPollJob(gw, notificationService, 1)
		j.Run()

		unread, err := notificationService.GetUnreadCount(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(0), unread.UnreadCount)
	})
}
