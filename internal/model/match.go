package model

import "time"

// MatchScore 两个口味向量的派生投影，不作为事实来源持久化
type MatchScore struct {
	UserA      uint64    `json:"user_a"`
	UserB      uint64    `json:"user_b"`
	Percentage int       `json:"percentage"` // 0~100
	ComputedAt time.Time `json:"computed_at"`
}
