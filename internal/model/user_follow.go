package model

import "time"

// UserFollow 单向关注边，(follower, following) 对唯一，不允许自环
type UserFollow struct {
	FollowerID  uint64    `json:"followerId"`
	FollowingID uint64    `json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
}
