package repository

import (
	"Bobmap/internal/model"
	"context"
	"sort"
	"sync"
	"time"
)

type UserFollowRepo interface {
	GetUserFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error)
	GetUserFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error)
	GetUserFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetUserFollowingCount(ctx context.Context, userID uint64) (int64, error)
	GetUserFollow(ctx context.Context, followerID, followingID uint64) (*model.UserFollow, error)
	CreateUserFollow(ctx context.Context, userFollow *model.UserFollow) error
	DeleteUserFollow(ctx context.Context, followerID, followingID uint64) error
}

type followEdge struct {
	model.UserFollow
	seq uint64
}

// UserFollowRepoImpl 内存中的权威边集。粉丝数/关注数永远从边集派生，
// 不维护独立计数器。
type UserFollowRepoImpl struct {
	mu        sync.RWMutex
	following map[uint64]map[uint64]*followEdge // follower -> following set
	followers map[uint64]map[uint64]*followEdge // following -> follower set
	seq       uint64
}

func NewUserFollowRepo() UserFollowRepo {
	return &UserFollowRepoImpl{
		following: make(map[uint64]map[uint64]*followEdge),
		followers: make(map[uint64]map[uint64]*followEdge),
	}
}

// GetUserFollowers 获取用户的粉丝列表，按关注时间倒序
func (s *UserFollowRepoImpl) GetUserFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pageEdges(s.followers[userID], limit, offset), nil
}

// GetUserFollowing 获取用户的关注列表，按关注时间倒序
func (s *UserFollowRepoImpl) GetUserFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pageEdges(s.following[userID], limit, offset), nil
}

// GetUserFollowerCount 获取用户的粉丝数量
func (s *UserFollowRepoImpl) GetUserFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.followers[userID])), nil
}

// GetUserFollowingCount 获取用户的关注数量
func (s *UserFollowRepoImpl) GetUserFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.following[userID])), nil
}

// GetUserFollow 获取关注关系，不存在时返回 (nil, nil)
func (s *UserFollowRepoImpl) GetUserFollow(ctx context.Context, followerID, followingID uint64) (*model.UserFollow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.following[followerID][followingID]
	if !ok {
		return nil, nil
	}
	edge := e.UserFollow
	return &edge, nil
}

// CreateUserFollow 插入关注边，已存在时静默跳过
func (s *UserFollowRepoImpl) CreateUserFollow(ctx context.Context, userFollow *model.UserFollow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	follower, following := userFollow.FollowerID, userFollow.FollowingID
	if _, ok := s.following[follower][following]; ok {
		return nil
	}

	s.seq++
	e := &followEdge{UserFollow: *userFollow, seq: s.seq}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	if s.following[follower] == nil {
		s.following[follower] = make(map[uint64]*followEdge)
	}
	if s.followers[following] == nil {
		s.followers[following] = make(map[uint64]*followEdge)
	}
	s.following[follower][following] = e
	s.followers[following][follower] = e
	return nil
}

// DeleteUserFollow 删除关注边，不存在时为 no-op
func (s *UserFollowRepoImpl) DeleteUserFollow(ctx context.Context, followerID, followingID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.following[followerID], followingID)
	delete(s.followers[followingID], followerID)
	return nil
}

func pageEdges(set map[uint64]*followEdge, limit, offset int) []*model.UserFollow {
	edges := make([]*followEdge, 0, len(set))
	for _, e := range set {
		edges = append(edges, e)
	}
	// 时间倒序，同一时刻按插入顺序倒序，保证分页稳定
	sort.Slice(edges, func(i, j int) bool {
		if !edges[i].CreatedAt.Equal(edges[j].CreatedAt) {
			return edges[i].CreatedAt.After(edges[j].CreatedAt)
		}
		return edges[i].seq > edges[j].seq
	})

	if offset >= len(edges) {
		return []*model.UserFollow{}
	}
	end := len(edges)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	res := make([]*model.UserFollow, 0, end-offset)
	for _, e := range edges[offset:end] {
		edge := e.UserFollow
		res = append(res, &edge)
	}
	return res
}
