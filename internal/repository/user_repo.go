package repository

import (
	"Bobmap/internal/model"
	"context"
	"sync"
	"time"
)

type UserRepo interface {
	GetUserByID(ctx context.Context, userID uint64) (*model.User, error)
	GetUsersByIDs(ctx context.Context, userIDs []uint64) ([]*model.User, error)
	SaveUser(ctx context.Context, user *model.User) error
	UpdateTasteVector(ctx context.Context, userID uint64, vector model.TasteMap, primary model.Archetype) (*model.User, error)
}

type UserRepoImpl struct {
	mu    sync.RWMutex
	users map[uint64]*model.User
}

func NewUserRepo() UserRepo {
	return &UserRepoImpl{users: make(map[uint64]*model.User)}
}

// GetUserByID 获取用户，不存在时返回 (nil, nil)
func (s *UserRepoImpl) GetUserByID(ctx context.Context, userID uint64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

// GetUsersByIDs 批量获取，未知 ID 会被跳过
func (s *UserRepoImpl) GetUsersByIDs(ctx context.Context, userIDs []uint64) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]*model.User, 0, len(userIDs))
	for _, id := range userIDs {
		if u, ok := s.users[id]; ok {
			res = append(res, cloneUser(u))
		}
	}
	return res, nil
}

// SaveUser 插入或整体覆盖用户记录
func (s *UserRepoImpl) SaveUser(ctx context.Context, user *model.User) error {
	if user == nil || user.ID == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := cloneUser(user)
	if saved.UpdatedAt.IsZero() {
		saved.UpdatedAt = time.Now()
	}
	s.users[saved.ID] = saved
	return nil
}

// UpdateTasteVector 覆盖口味向量并自增版本号
func (s *UserRepoImpl) UpdateTasteVector(ctx context.Context, userID uint64, vector model.TasteMap, primary model.Archetype) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	u.TasteVector = vector.Clone()
	u.PrimaryType = primary
	u.VectorVersion++
	u.UpdatedAt = time.Now()
	return cloneUser(u), nil
}

func cloneUser(u *model.User) *model.User {
	c := *u
	c.TasteVector = u.TasteVector.Clone()
	return &c
}
