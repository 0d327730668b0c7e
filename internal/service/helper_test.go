package service

import (
	"Bobmap/internal/model"
	"Bobmap/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testStack 一组共享同一批内存仓库的服务实例
type testStack struct {
	userRepo            repository.UserRepo
	userFollowRepo      repository.UserFollowRepo
	notificationRepo    repository.NotificationRepo
	playlistRepo        repository.PlaylistRepo
	notificationService NotificationService
	followService       UserFollowService
	profileService      ProfileService
	matchService        MatchService
	playlistService     PlaylistService
}

func newTestStack(t *testing.T, dedupWindow time.Duration) *testStack {
	t.Helper()
	s := &testStack{
		userRepo:         repository.NewUserRepo(),
		userFollowRepo:   repository.NewUserFollowRepo(),
		notificationRepo: repository.NewNotificationRepo(dedupWindow),
		playlistRepo:     repository.NewPlaylistRepo(),
	}
	s.notificationService = NewNotificationService(s.notificationRepo, s.userRepo)
	s.followService = NewUserFollowService(s.userFollowRepo, s.userRepo, s.notificationService, 0)
	s.profileService = NewProfileService(s.userRepo)
	s.matchService = NewMatchService(s.userRepo, s.notificationService, 0, 0)
	s.playlistService = NewPlaylistService(s.playlistRepo, s.userRepo, s.notificationService)
	return s
}

func (s *testStack) seedUser(t *testing.T, id uint64, vector model.TasteMap) *model.User {
	t.Helper()
	u := &model.User{
		ID:          id,
		Nickname:    "user",
		TasteVector: vector,
	}
	require.NoError(t, s.userRepo.SaveUser(context.Background(), u))
	return u
}

func (s *testStack) unreadCount(t *testing.T, userID uint64) int64 {
	t.Helper()
	count, err := s.notificationRepo.GetUnreadCount(context.Background(), userID)
	require.NoError(t, err)
	return count
}
