package gateway

import (
	"Bobmap/internal/dto"
	"Bobmap/internal/service"
	"context"
	"errors"
	log "log/slog"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const wsReadTimeout = 90 * time.Second

// NotificationStream 订阅后端的实时通知推送并灌入本地通知服务。
// 断线由调用方决定是否重连（轮询任务兜底）。
type NotificationStream struct {
	wsURL               string
	token               string
	notificationService service.NotificationService
}

func NewNotificationStream(wsURL, token string, notificationService service.NotificationService) *NotificationStream {
	return &NotificationStream{
		wsURL:               wsURL,
		token:               token,
		notificationService: notificationService,
	}
}

// Listen 建立连接并阻塞读取，直到 ctx 取消或连接出错
func (s *NotificationStream) Listen(ctx context.Context) error {
	endpoint := s.wsURL + "?token=" + url.QueryEscape(s.token)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	// ctx 取消时关闭连接解除 ReadMessage 阻塞
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	for {
		if err := conn.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
			return err
		}
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		var d dto.NotificationEventDTO
		if err := json.Unmarshal(msg, &d); err != nil {
			log.WarnContext(ctx, "通知推送解析失败", "err", err)
			continue
		}
		event, err := toNotificationEvent(&d)
		if err != nil {
			log.WarnContext(ctx, "通知推送校验失败", "err", err)
			continue
		}

		// 与轮询重叠到的同一事件按 no-op 处理
		if _, err := s.notificationService.Append(ctx, event); err != nil && !errors.Is(err, service.ErrDuplicateEvent) {
			log.WarnContext(ctx, "通知事件写入失败", "event_id", event.ID, "err", err)
		}
	}
}
