package model

import (
	"time"
)

type User struct {
	ID        uint64  `json:"id"`
	Username  *string `json:"username,omitempty"`
	Nickname  string  `json:"nickname"`
	AvatarURL string  `json:"avatar_url"`

	// TasteVector 只由问卷计分更新，VectorVersion 随之自增
	TasteVector   TasteMap  `json:"taste_vector"`
	VectorVersion uint64    `json:"vector_version"`
	PrimaryType   Archetype `json:"primary_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
