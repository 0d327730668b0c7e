package dto

// UserDTO 网关返回的用户对象
type UserDTO struct {
	UserID        uint64           `json:"user_id" validate:"required"`
	Username      *string          `json:"username,omitempty"`
	Nickname      string           `json:"nickname"`
	AvatarURL     string           `json:"avatar_url"`
	TasteVector   map[string]int64 `json:"taste_vector" validate:"omitempty,dive,min=0,max=5"`
	VectorVersion uint64           `json:"vector_version"`
	PrimaryType   string           `json:"primary_type"`
	CreatedAt     string           `json:"created_at,omitempty"`
}

// FollowEdgeDTO 网关返回的关注边
type FollowEdgeDTO struct {
	FollowerID  uint64 `json:"follower_id" validate:"required"`
	FollowingID uint64 `json:"following_id" validate:"required,nefield=FollowerID"`
	CreatedAt   string `json:"created_at"`
}

// FollowActionDTO 关注/取关的持久化请求体
type FollowActionDTO struct {
	TargetUserID uint64 `json:"target_user_id" validate:"required"`
}
