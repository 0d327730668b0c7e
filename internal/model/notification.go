package model

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// EventType 通知事件类型
type EventType string

const (
	EventLike            EventType = "like"
	EventFollow          EventType = "follow"
	EventMatch           EventType = "match"
	EventBuddyRequest    EventType = "buddy_request"
	EventRestaurantShare EventType = "restaurant_share"
	EventReview          EventType = "review"
	EventMessage         EventType = "message"
)

// NotificationEvent 社交动作的不可变记录，只有 ReadAt 可以被设置一次
type NotificationEvent struct {
	ID           string         `json:"id"`
	Type         EventType      `json:"type"`
	ActorID      uint64         `json:"actor_id"` // 0 代表系统事件
	TargetUserID uint64         `json:"target_user_id"`
	Payload      map[string]any `json:"payload,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	ReadAt       *time.Time     `json:"read_at,omitempty"`
}

func (e *NotificationEvent) IsRead() bool {
	return e.ReadAt != nil
}

// Signature 依据 (type, actor, target, payload) 生成内容签名，用于同一 tick 内的去重。
// payload 按 key 排序后序列化，保证签名稳定。
func (e *NotificationEvent) Signature() string {
	var b strings.Builder
	b.WriteString(string(e.Type))
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(e.ActorID, 10))
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(e.TargetUserID, 10))
	b.WriteByte('|')

	if len(e.Payload) > 0 {
		keys := make([]string, 0, len(e.Payload))
		for k := range e.Payload {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v, _ := json.Marshal(e.Payload[k])
			b.WriteString(k)
			b.WriteByte('=')
			b.Write(v)
			b.WriteByte(';')
		}
	}
	return b.String()
}
