package repository

import (
	"Bobmap/internal/model"
	"context"
	"sort"
	"sync"
)

type PlaylistRepo interface {
	GetPlaylistByID(ctx context.Context, playlistID string) (*model.Playlist, error)
	GetPlaylistsByOwner(ctx context.Context, ownerID uint64) ([]*model.Playlist, error)
	SavePlaylist(ctx context.Context, playlist *model.Playlist) error
	DeletePlaylist(ctx context.Context, playlistID string) error
}

type PlaylistRepoImpl struct {
	mu        sync.RWMutex
	playlists map[string]*model.Playlist
}

func NewPlaylistRepo() PlaylistRepo {
	return &PlaylistRepoImpl{playlists: make(map[string]*model.Playlist)}
}

// GetPlaylistByID 获取清单，不存在时返回 (nil, nil)
func (s *PlaylistRepoImpl) GetPlaylistByID(ctx context.Context, playlistID string) (*model.Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.playlists[playlistID]
	if !ok {
		return nil, nil
	}
	return clonePlaylist(p), nil
}

// GetPlaylistsByOwner 获取用户的全部清单，按更新时间倒序
func (s *PlaylistRepoImpl) GetPlaylistsByOwner(ctx context.Context, ownerID uint64) ([]*model.Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]*model.Playlist, 0)
	for _, p := range s.playlists {
		if p.OwnerID == ownerID {
			res = append(res, clonePlaylist(p))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].UpdatedAt.Equal(res[j].UpdatedAt) {
			return res[i].UpdatedAt.After(res[j].UpdatedAt)
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

// SavePlaylist 插入或整体覆盖清单
func (s *PlaylistRepoImpl) SavePlaylist(ctx context.Context, playlist *model.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlists[playlist.ID] = clonePlaylist(playlist)
	return nil
}

// DeletePlaylist 删除清单，不存在时为 no-op
func (s *PlaylistRepoImpl) DeletePlaylist(ctx context.Context, playlistID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.playlists, playlistID)
	return nil
}

func clonePlaylist(p *model.Playlist) *model.Playlist {
	c := *p
	c.Entries = make([]model.PlaylistEntry, len(p.Entries))
	copy(c.Entries, p.Entries)
	return &c
}
