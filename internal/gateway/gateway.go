package gateway

import (
	"Bobmap/internal/model"
	"context"
)

// SyncGateway 是核心与 REST/WebSocket 后端之间的协作边界。
// 核心只消费已解析好的数据，不感知传输细节。
type SyncGateway interface {
	FetchUser(ctx context.Context, userID uint64) (*model.User, error)
	FetchFollowEdges(ctx context.Context, userID uint64) ([]*model.UserFollow, error)
	PersistFollow(ctx context.Context, actorID, targetID uint64) error
	PersistUnfollow(ctx context.Context, actorID, targetID uint64) error
	FetchNotifications(ctx context.Context, userID uint64) ([]*model.NotificationEvent, error)
	FetchPlaylists(ctx context.Context, userID uint64) ([]*model.Playlist, error)
	PersistPlaylist(ctx context.Context, playlist *model.Playlist) error
}
