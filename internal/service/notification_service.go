package service

import (
	"Bobmap/internal/config"
	"Bobmap/internal/dto"
	"Bobmap/internal/model"
	"Bobmap/internal/pkg/consts"
	"Bobmap/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/jinzhu/copier"
)

const DefaultNotificationPageSize = 20

func defaultPageSize() int {
	if config.Cfg != nil && config.Cfg.Notification.PageSize > 0 {
		return config.Cfg.Notification.PageSize
	}
	return DefaultNotificationPageSize
}

type NotificationService interface {
	Append(ctx context.Context, event *model.NotificationEvent) (*model.NotificationEvent, error)
	Emit(ctx context.Context, eventType model.EventType, actorID, targetUserID uint64, payload map[string]any) error
	GetNotificationList(ctx context.Context, userID uint64, unreadOnly bool, page, pageSize int) ([]*dto.NotificationDTO, error)
	GetUnreadCount(ctx context.Context, userID uint64) (*dto.NotificationUnreadDTO, error)
	MarkRead(ctx context.Context, userID uint64, eventID string) error
	MarkAllRead(ctx context.Context, userID uint64) error
}

type notificationServiceImpl struct {
	notificationRepo repository.NotificationRepo
	userRepo         repository.UserRepo
}

func NewNotificationService(notificationRepo repository.NotificationRepo, userRepo repository.UserRepo) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// Append 追加事件。去重窗口内的内容重复提交返回 ErrDuplicateEvent
func (s *notificationServiceImpl) Append(ctx context.Context, event *model.NotificationEvent) (*model.NotificationEvent, error) {
	if event == nil || event.Type == "" || event.TargetUserID == 0 {
		return nil, ErrParamInvalid
	}
	stored, err := s.notificationRepo.Append(ctx, event)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSignature) {
			return nil, ErrDuplicateEvent
		}
		return nil, err
	}
	return stored, nil
}

// Emit 以当前时间构造并追加一条事件
func (s *notificationServiceImpl) Emit(ctx context.Context, eventType model.EventType, actorID, targetUserID uint64, payload map[string]any) error {
	_, err := s.Append(ctx, &model.NotificationEvent{
		Type:         eventType,
		ActorID:      actorID,
		TargetUserID: targetUserID,
		Payload:      payload,
	})
	return err
}

// GetNotificationList 获取通知列表并补全发送者信息
func (s *notificationServiceImpl) GetNotificationList(ctx context.Context, userID uint64, unreadOnly bool, page, pageSize int) ([]*dto.NotificationDTO, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize()
	}
	limit := pageSize
	offset := (page - 1) * pageSize

	list, err := s.notificationRepo.ListByReceiver(ctx, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NotificationDTO, 0, len(list))
	for _, m := range list {
		d := &dto.NotificationDTO{}
		_ = copier.Copy(d, m)
		d.Type = string(m.Type)
		d.IsRead = m.IsRead()
		d.CreatedAt = m.CreatedAt.UTC().Format(time.RFC3339)

		// 补全发送者信息 (ActorID 为 0 代表系统事件)
		if m.ActorID > 0 {
			user, err := s.userRepo.GetUserByID(ctx, m.ActorID)
			if err == nil && user != nil {
				d.SenderName = user.Nickname
				d.AvatarURL = user.AvatarURL
			}
		} else {
			d.SenderName = consts.SystemSenderName
			d.AvatarURL = consts.DefaultAvatarURL
		}

		res = append(res, d)
	}

	return res, nil
}

// GetUnreadCount 获取未读数
func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (*dto.NotificationUnreadDTO, error) {
	count, err := s.notificationRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationUnreadDTO{UnreadCount: count}, nil
}

// MarkRead 标记单条已读。未知 ID 与已读事件均为 no-op
func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID uint64, eventID string) error {
	notice, err := s.notificationRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if notice == nil {
		return nil
	}

	if notice.TargetUserID != userID {
		return UnauthorizedError
	}

	if notice.IsRead() {
		return nil
	}

	return s.notificationRepo.MarkAsRead(ctx, eventID)
}

// MarkAllRead 一键已读
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}
