package job

import (
	"Bobmap/internal/gateway"
	"Bobmap/internal/pkg/logger"
	"Bobmap/internal/service"
	"context"
	"errors"
	log "log/slog"
)

// NotificationPollJob 周期性拉取通知，作为推送断线时的兜底。
// 与推送重叠到的事件靠 ID/签名去重吸收。
type NotificationPollJob struct {
	gw                  gateway.SyncGateway
	notificationService service.NotificationService
	userID              uint64
}

func NewNotificationPollJob(gw gateway.SyncGateway, notificationService service.NotificationService, userID uint64) *NotificationPollJob {
	return &NotificationPollJob{
		gw:                  gw,
		notificationService: notificationService,
		userID:              userID,
	}
}

func (s *NotificationPollJob) Run() {
	ctx := logger.WithTraceID(context.Background(), "job-notification-poll")

	events, err := s.gw.FetchNotifications(ctx, s.userID)
	if err != nil {
		log.ErrorContext(ctx, "poll notifications error", "user", s.userID, "err", err)
		return
	}

	var appended int
	for _, event := range events {
		_, err := s.notificationService.Append(ctx, event)
		if err != nil {
			if errors.Is(err, service.ErrDuplicateEvent) {
				continue
			}
			log.ErrorContext(ctx, "append polled notification error", "event_id", event.ID, "err", err)
			continue
		}
		appended++
	}

	log.InfoContext(ctx, "NotificationPollJob finished", "fetched", len(events), "appended", appended)
}
