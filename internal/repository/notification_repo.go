package repository

import (
	"Bobmap/internal/model"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrDuplicateSignature 由 Append 在去重窗口内命中相同签名时返回，
// 上层映射为业务错误。
type duplicateSignatureError struct{}

func (duplicateSignatureError) Error() string { return "duplicate event signature" }

var ErrDuplicateSignature error = duplicateSignatureError{}

type NotificationRepo interface {
	Append(ctx context.Context, event *model.NotificationEvent) (*model.NotificationEvent, error)
	GetByID(ctx context.Context, eventID string) (*model.NotificationEvent, error)
	ListByReceiver(ctx context.Context, userID uint64, unreadOnly bool, limit, offset int) ([]*model.NotificationEvent, error)
	GetUnreadCount(ctx context.Context, userID uint64) (int64, error)
	MarkAsRead(ctx context.Context, eventID string) error
	MarkAllAsRead(ctx context.Context, userID uint64) error
}

// NotificationRepoImpl 仅追加的事件日志。events 保持插入顺序；
// 本地补齐的时间戳单调不减，网关带来的历史时间戳原样保留。
type NotificationRepoImpl struct {
	mu          sync.RWMutex
	events      []*model.NotificationEvent
	byID        map[string]*model.NotificationEvent
	bySignature map[string]time.Time
	lastCreated time.Time
	dedupWindow time.Duration
}

func NewNotificationRepo(dedupWindow time.Duration) NotificationRepo {
	return &NotificationRepoImpl{
		byID:        make(map[string]*model.NotificationEvent),
		bySignature: make(map[string]time.Time),
		dedupWindow: dedupWindow,
	}
}

// Append 追加事件。缺失的 ID/CreatedAt 会被补齐；同一去重窗口内
// 完全相同的 (type, actor, target, payload) 视为重复提交被拒绝，
// 不同时间的同内容事件是两条独立记录。
func (s *NotificationRepoImpl) Append(ctx context.Context, event *model.NotificationEvent) (*model.NotificationEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneEvent(event)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
		// 本地生成的时间戳保持单调不减；显式时间戳原样保留
		if stored.CreatedAt.Before(s.lastCreated) {
			stored.CreatedAt = s.lastCreated
		}
	}

	sig := stored.Signature()
	if s.dedupWindow > 0 {
		if prev, ok := s.bySignature[sig]; ok {
			gap := stored.CreatedAt.Sub(prev)
			if gap < 0 {
				gap = -gap
			}
			if gap < s.dedupWindow {
				return nil, ErrDuplicateSignature
			}
		}
	}

	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if _, ok := s.byID[stored.ID]; ok {
		// 同一事件重复注入（例如轮询与推送重叠）按 no-op 处理
		return cloneEvent(s.byID[stored.ID]), nil
	}

	s.events = append(s.events, stored)
	s.byID[stored.ID] = stored
	s.bySignature[sig] = stored.CreatedAt
	if stored.CreatedAt.After(s.lastCreated) {
		s.lastCreated = stored.CreatedAt
	}

	return cloneEvent(stored), nil
}

func (s *NotificationRepoImpl) GetByID(ctx context.Context, eventID string) (*model.NotificationEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byID[eventID]
	if !ok {
		return nil, nil
	}
	return cloneEvent(e), nil
}

// ListByReceiver 按 CreatedAt 倒序返回快照分页，同一时刻按插入顺序倒序
func (s *NotificationRepoImpl) ListByReceiver(ctx context.Context, userID uint64, unreadOnly bool, limit, offset int) ([]*model.NotificationEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*model.NotificationEvent, 0)
	// 先倒序遍历取反插入序，再按 CreatedAt 稳定排序，
	// 历史事件乱序注入时列表仍然最新在前
	for i := len(s.events) - 1; i >= 0; i-- {
		e := s.events[i]
		if e.TargetUserID != userID {
			continue
		}
		if unreadOnly && e.IsRead() {
			continue
		}
		matched = append(matched, e)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if offset >= len(matched) {
		return []*model.NotificationEvent{}, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	res := make([]*model.NotificationEvent, 0, end-offset)
	for _, e := range matched[offset:end] {
		res = append(res, cloneEvent(e))
	}
	return res, nil
}

func (s *NotificationRepoImpl) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, e := range s.events {
		if e.TargetUserID == userID && !e.IsRead() {
			count++
		}
	}
	return count, nil
}

// MarkAsRead 设置 ReadAt，未知 ID 或已读均为 no-op
func (s *NotificationRepoImpl) MarkAsRead(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[eventID]
	if !ok || e.IsRead() {
		return nil
	}
	now := time.Now()
	e.ReadAt = &now
	return nil
}

// MarkAllAsRead 将该用户所有未读事件置为已读
func (s *NotificationRepoImpl) MarkAllAsRead(ctx context.Context, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, e := range s.events {
		if e.TargetUserID == userID && !e.IsRead() {
			readAt := now
			e.ReadAt = &readAt
		}
	}
	return nil
}

func cloneEvent(e *model.NotificationEvent) *model.NotificationEvent {
	c := *e
	if e.Payload != nil {
		c.Payload = make(map[string]any, len(e.Payload))
		for k, v := range e.Payload {
			c.Payload[k] = v
		}
	}
	if e.ReadAt != nil {
		readAt := *e.ReadAt
		c.ReadAt = &readAt
	}
	return &c
}
