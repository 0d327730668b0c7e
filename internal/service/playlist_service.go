package service

import (
	"Bobmap/internal/model"
	"Bobmap/internal/pkg/consts"
	"Bobmap/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

type PlaylistService interface {
	CreatePlaylist(ctx context.Context, ownerID uint64, title string) (*model.Playlist, error)
	RenamePlaylist(ctx context.Context, ownerID uint64, playlistID, title string) (*model.Playlist, error)
	AddRestaurant(ctx context.Context, ownerID uint64, playlistID string, restaurantID uint64, name string) (*model.Playlist, error)
	RemoveRestaurant(ctx context.Context, ownerID uint64, playlistID string, restaurantID uint64) (*model.Playlist, error)
	SharePlaylist(ctx context.Context, ownerID uint64, playlistID string, targetUserID uint64) error
	DeletePlaylist(ctx context.Context, ownerID uint64, playlistID string) error
	GetUserPlaylists(ctx context.Context, ownerID uint64) ([]*model.Playlist, error)
}

type playlistServiceImpl struct {
	playlistRepo        repository.PlaylistRepo
	userRepo            repository.UserRepo
	notificationService NotificationService
}

func NewPlaylistService(
	playlistRepo repository.PlaylistRepo,
	userRepo repository.UserRepo,
	notificationService NotificationService,
) PlaylistService {
	return &playlistServiceImpl{
		playlistRepo:        playlistRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

// CreatePlaylist 创建餐厅清单
func (s *playlistServiceImpl) CreatePlaylist(ctx context.Context, ownerID uint64, title string) (*model.Playlist, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrParamInvalid
	}
	owner, err := s.userRepo.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}

	now := time.Now()
	playlist := &model.Playlist{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     title,
		Entries:   []model.PlaylistEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.playlistRepo.SavePlaylist(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// RenamePlaylist 重命名清单，只有所有者可以操作
func (s *playlistServiceImpl) RenamePlaylist(ctx context.Context, ownerID uint64, playlistID, title string) (*model.Playlist, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrParamInvalid
	}
	playlist, err := s.getOwnedPlaylist(ctx, ownerID, playlistID)
	if err != nil {
		return nil, err
	}
	playlist.Title = title
	playlist.UpdatedAt = time.Now()
	if err := s.playlistRepo.SavePlaylist(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// AddRestaurant 向清单追加餐厅，条目按加入顺序保存且不重复
func (s *playlistServiceImpl) AddRestaurant(ctx context.Context, ownerID uint64, playlistID string, restaurantID uint64, name string) (*model.Playlist, error) {
	if restaurantID == 0 {
		return nil, ErrParamInvalid
	}
	playlist, err := s.getOwnedPlaylist(ctx, ownerID, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.HasRestaurant(restaurantID) {
		return nil, ErrRestaurantExist
	}

	playlist.Entries = append(playlist.Entries, model.PlaylistEntry{
		RestaurantID: restaurantID,
		Name:         name,
		AddedAt:      time.Now(),
	})
	playlist.UpdatedAt = time.Now()
	if err := s.playlistRepo.SavePlaylist(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// RemoveRestaurant 从清单移除餐厅，移除不存在的条目是 no-op
func (s *playlistServiceImpl) RemoveRestaurant(ctx context.Context, ownerID uint64, playlistID string, restaurantID uint64) (*model.Playlist, error) {
	playlist, err := s.getOwnedPlaylist(ctx, ownerID, playlistID)
	if err != nil {
		return nil, err
	}

	entries := playlist.Entries[:0]
	for _, e := range playlist.Entries {
		if e.RestaurantID != restaurantID {
			entries = append(entries, e)
		}
	}
	if len(entries) == len(playlist.Entries) {
		return playlist, nil
	}
	playlist.Entries = entries
	playlist.UpdatedAt = time.Now()
	if err := s.playlistRepo.SavePlaylist(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// SharePlaylist 把清单分享给另一个用户，向对方投递 restaurant_share 事件
func (s *playlistServiceImpl) SharePlaylist(ctx context.Context, ownerID uint64, playlistID string, targetUserID uint64) error {
	if targetUserID == ownerID {
		return ErrParamInvalid
	}
	playlist, err := s.getOwnedPlaylist(ctx, ownerID, playlistID)
	if err != nil {
		return err
	}
	target, err := s.userRepo.GetUserByID(ctx, targetUserID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	err = s.notificationService.Emit(ctx, model.EventRestaurantShare, ownerID, targetUserID, map[string]any{
		consts.PayloadPlaylistID:    playlist.ID,
		consts.PayloadPlaylistTitle: playlist.Title,
	})
	if errors.Is(err, ErrDuplicateEvent) {
		// 同一 tick 内的重复分享提交
		return ErrDuplicateEvent
	}
	if err != nil {
		log.WarnContext(ctx, "emit share event failed", "playlist", playlist.ID, "target", targetUserID, "err", err)
		return err
	}
	return nil
}

// DeletePlaylist 删除清单，只有所有者可以操作
func (s *playlistServiceImpl) DeletePlaylist(ctx context.Context, ownerID uint64, playlistID string) error {
	playlist, err := s.getOwnedPlaylist(ctx, ownerID, playlistID)
	if err != nil {
		return err
	}
	return s.playlistRepo.DeletePlaylist(ctx, playlist.ID)
}

func (s *playlistServiceImpl) GetUserPlaylists(ctx context.Context, ownerID uint64) ([]*model.Playlist, error) {
	return s.playlistRepo.GetPlaylistsByOwner(ctx, ownerID)
}

func (s *playlistServiceImpl) getOwnedPlaylist(ctx context.Context, ownerID uint64, playlistID string) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, ErrPlaylistNotFound
	}
	if playlist.OwnerID != ownerID {
		return nil, UnauthorizedError
	}
	return playlist, nil
}
