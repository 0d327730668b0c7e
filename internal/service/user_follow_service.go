package service

import (
	"Bobmap/internal/model"
	"Bobmap/internal/repository"
	"context"
	"errors"
	log "log/slog"
)

const DefaultMaxFollowingCount = 1000

type UserFollowService interface {
	Follow(ctx context.Context, actorID, targetID uint64) error
	Unfollow(ctx context.Context, actorID, targetID uint64) error
	IsFollowing(ctx context.Context, actorID, targetID uint64) (bool, error)
	IsMutual(ctx context.Context, a, b uint64) (bool, error)
	GetUserFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error)
	GetUserFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error)
	GetUserFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetUserFollowingCount(ctx context.Context, userID uint64) (int64, error)
}

type userFollowServiceImpl struct {
	userFollowRepo      repository.UserFollowRepo
	userRepo            repository.UserRepo
	notificationService NotificationService
	maxFollowingCount   int64
}

func NewUserFollowService(
	userFollowRepo repository.UserFollowRepo,
	userRepo repository.UserRepo,
	notificationService NotificationService,
	maxFollowingCount int,
) UserFollowService {
	if maxFollowingCount <= 0 {
		maxFollowingCount = DefaultMaxFollowingCount
	}
	return &userFollowServiceImpl{
		userFollowRepo:      userFollowRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		maxFollowingCount:   int64(maxFollowingCount),
	}
}

// Follow 建立关注边。重复关注是 no-op 而不是错误；
// 只有真正新建的边会产生 follow 通知事件。
func (s *userFollowServiceImpl) Follow(ctx context.Context, actorID, targetID uint64) error {
	if actorID == targetID {
		return ErrFollowSelf
	}
	if err := s.checkUsersExist(ctx, actorID, targetID); err != nil {
		return err
	}

	existing, err := s.userFollowRepo.GetUserFollow(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	count, err := s.userFollowRepo.GetUserFollowingCount(ctx, actorID)
	if err != nil {
		return err
	}
	if count >= s.maxFollowingCount {
		return ErrFollowLimit
	}

	err = s.userFollowRepo.CreateUserFollow(ctx, &model.UserFollow{
		FollowerID:  actorID,
		FollowingID: targetID,
	})
	if err != nil {
		return err
	}

	// 事件去重窗口里撞到重复不影响关注本身
	err = s.notificationService.Emit(ctx, model.EventFollow, actorID, targetID, nil)
	if err != nil && !errors.Is(err, ErrDuplicateEvent) {
		log.WarnContext(ctx, "emit follow event failed", "actor", actorID, "target", targetID, "err", err)
	}
	return nil
}

// Unfollow 删除关注边，删除不存在的边是 no-op
func (s *userFollowServiceImpl) Unfollow(ctx context.Context, actorID, targetID uint64) error {
	return s.userFollowRepo.DeleteUserFollow(ctx, actorID, targetID)
}

func (s *userFollowServiceImpl) IsFollowing(ctx context.Context, actorID, targetID uint64) (bool, error) {
	edge, err := s.userFollowRepo.GetUserFollow(ctx, actorID, targetID)
	if err != nil {
		return false, err
	}
	return edge != nil, nil
}

// IsMutual 双向边同时存在才算互关，纯派生读取
func (s *userFollowServiceImpl) IsMutual(ctx context.Context, a, b uint64) (bool, error) {
	ab, err := s.IsFollowing(ctx, a, b)
	if err != nil || !ab {
		return false, err
	}
	return s.IsFollowing(ctx, b, a)
}

func (s *userFollowServiceImpl) GetUserFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error) {
	return s.userFollowRepo.GetUserFollowers(ctx, userID, limit, offset)
}

func (s *userFollowServiceImpl) GetUserFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error) {
	return s.userFollowRepo.GetUserFollowing(ctx, userID, limit, offset)
}

func (s *userFollowServiceImpl) GetUserFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	return s.userFollowRepo.GetUserFollowerCount(ctx, userID)
}

func (s *userFollowServiceImpl) GetUserFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	return s.userFollowRepo.GetUserFollowingCount(ctx, userID)
}

func (s *userFollowServiceImpl) checkUsersExist(ctx context.Context, ids ...uint64) error {
	for _, id := range ids {
		u, err := s.userRepo.GetUserByID(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrUserNotFound
		}
	}
	return nil
}
