package dto

// NotificationDTO 通知流的展示对象，补全了发送者信息
type NotificationDTO struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	ActorID    uint64         `json:"actor_id"`
	SenderName string         `json:"sender_name"`
	AvatarURL  string         `json:"avatar_url"`
	Payload    map[string]any `json:"payload,omitempty"`
	IsRead     bool           `json:"is_read"`
	CreatedAt  string         `json:"created_at"`
}

// NotificationUnreadDTO 未读数返回
type NotificationUnreadDTO struct {
	UnreadCount int64 `json:"unread_count"`
}

// NotificationEventDTO 网关推送/返回的原始事件
type NotificationEventDTO struct {
	ID           string         `json:"id" validate:"required"`
	Type         string         `json:"type" validate:"required"`
	ActorID      uint64         `json:"actor_id"`
	TargetUserID uint64         `json:"target_user_id" validate:"required"`
	Payload      map[string]any `json:"payload,omitempty"`
	CreatedAt    string         `json:"created_at"`
	ReadAt       *string        `json:"read_at,omitempty"`
}
