package session

import (
	"Bobmap/internal/gateway"
	"Bobmap/internal/model"
	"Bobmap/internal/pkg/consts"
	"Bobmap/internal/pkg/security"
	"Bobmap/internal/repository"
	"Bobmap/internal/service"
	"context"
	"errors"
	log "log/slog"

	"golang.org/x/sync/errgroup"
)

// Session 当前登录用户的会话。所有变更先同步落在本地状态，
// 再经网关持久化；被服务器拒绝时回滚本地边并投递补偿事件，
// 而不是悄悄丢弃。
type Session struct {
	claims *security.UserClaims

	gw                  gateway.SyncGateway
	userRepo            repository.UserRepo
	followRepo          repository.UserFollowRepo
	playlistRepo        repository.PlaylistRepo
	followService       service.UserFollowService
	notificationService service.NotificationService
}

func NewSession(
	token string,
	gw gateway.SyncGateway,
	userRepo repository.UserRepo,
	followRepo repository.UserFollowRepo,
	playlistRepo repository.PlaylistRepo,
	followService service.UserFollowService,
	notificationService service.NotificationService,
) (*Session, error) {
	claims, err := security.ValidateToken(token)
	if err != nil {
		return nil, service.UnauthorizedError
	}
	return &Session{
		claims:              claims,
		gw:                  gw,
		userRepo:            userRepo,
		followRepo:          followRepo,
		playlistRepo:        playlistRepo,
		followService:       followService,
		notificationService: notificationService,
	}, nil
}

func (s *Session) UserID() uint64 {
	return s.claims.UserID
}

// Hydrate 并发拉取用户、关注边、通知与清单，填充本地状态
func (s *Session) Hydrate(ctx context.Context) error {
	userID := s.UserID()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		user, err := s.gw.FetchUser(ctx, userID)
		if err != nil {
			return err
		}
		return s.userRepo.SaveUser(ctx, user)
	})

	g.Go(func() error {
		edges, err := s.gw.FetchFollowEdges(ctx, userID)
		if err != nil {
			return err
		}
		for _, edge := range edges {
			if edge.FollowerID == edge.FollowingID {
				// 自环边不进入本地状态
				continue
			}
			if err := s.followRepo.CreateUserFollow(ctx, edge); err != nil {
				return err
			}
		}
		return nil
	})

	g.Go(func() error {
		events, err := s.gw.FetchNotifications(ctx, userID)
		if err != nil {
			return err
		}
		for _, event := range events {
			_, err := s.notificationService.Append(ctx, event)
			if err != nil && !errors.Is(err, service.ErrDuplicateEvent) {
				return err
			}
		}
		return nil
	})

	g.Go(func() error {
		playlists, err := s.gw.FetchPlaylists(ctx, userID)
		if err != nil {
			return err
		}
		for _, p := range playlists {
			if err := s.playlistRepo.SavePlaylist(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})

	return g.Wait()
}

// Follow 乐观关注：本地先生效，持久化失败时回滚并补偿
func (s *Session) Follow(ctx context.Context, targetID uint64) error {
	actorID := s.UserID()

	if err := s.ensureUserLocal(ctx, targetID); err != nil {
		return err
	}

	already, err := s.followService.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if err := s.followService.Follow(ctx, actorID, targetID); err != nil {
		return err
	}
	if already {
		// 边已存在，本地与服务器都无事可做
		return nil
	}

	if err := s.gw.PersistFollow(ctx, actorID, targetID); err != nil {
		log.WarnContext(ctx, "follow 持久化被拒，回滚本地状态", "target", targetID, "err", err)
		_ = s.followService.Unfollow(ctx, actorID, targetID)
		s.emitReverted(ctx, model.EventFollow, targetID, err)
		return err
	}
	return nil
}

// Unfollow 乐观取关：本地先生效，持久化失败时恢复原边并补偿
func (s *Session) Unfollow(ctx context.Context, targetID uint64) error {
	actorID := s.UserID()

	existing, err := s.followRepo.GetUserFollow(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if err := s.followService.Unfollow(ctx, actorID, targetID); err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	if err := s.gw.PersistUnfollow(ctx, actorID, targetID); err != nil {
		log.WarnContext(ctx, "unfollow 持久化被拒，恢复本地状态", "target", targetID, "err", err)
		// 直接恢复原边，不触发新的 follow 事件
		_ = s.followRepo.CreateUserFollow(ctx, existing)
		s.emitReverted(ctx, model.EventFollow, targetID, err)
		return err
	}
	return nil
}

// SharePlaylist 清单分享需要先保证目标用户在本地可见
func (s *Session) SharePlaylist(ctx context.Context, playlistService service.PlaylistService, playlistID string, targetID uint64) error {
	if err := s.ensureUserLocal(ctx, targetID); err != nil {
		return err
	}
	return playlistService.SharePlaylist(ctx, s.UserID(), playlistID, targetID)
}

// ensureUserLocal 本地没有该用户时从网关补拉一份
func (s *Session) ensureUserLocal(ctx context.Context, userID uint64) error {
	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if u != nil {
		return nil
	}
	fetched, err := s.gw.FetchUser(ctx, userID)
	if err != nil {
		return service.ErrUserNotFound
	}
	return s.userRepo.SaveUser(ctx, fetched)
}

// emitReverted 投递补偿事件，告知该动作已被服务器拒绝并回滚
func (s *Session) emitReverted(ctx context.Context, eventType model.EventType, targetID uint64, cause error) {
	err := s.notificationService.Emit(ctx, eventType, 0, s.UserID(), map[string]any{
		consts.PayloadStatus: consts.PayloadStatusReverted,
		consts.PayloadReason: cause.Error(),
		"target_user_id":     targetID,
	})
	if err != nil && !errors.Is(err, service.ErrDuplicateEvent) {
		log.WarnContext(ctx, "补偿事件写入失败", "err", err)
	}
}
