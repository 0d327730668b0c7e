package gateway

import (
	"Bobmap/internal/config"
	"Bobmap/internal/dto"
	"Bobmap/internal/model"
	"Bobmap/internal/pkg/logger"
	"Bobmap/internal/service"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// envelope 网关统一返回体，Data 延迟解码
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RestGateway 基于 REST 的 SyncGateway 实现
type RestGateway struct {
	client *resty.Client
}

func NewRestGateway(cfg *config.GatewayConfig, token string) *RestGateway {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetRetryCount(cfg.RetryCount).
		SetAuthToken(token).
		SetTransport(&logger.GatewayTransport{}).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &RestGateway{client: client}
}

func (g *RestGateway) FetchUser(ctx context.Context, userID uint64) (*model.User, error) {
	var d dto.UserDTO
	if err := g.get(ctx, fmt.Sprintf("/api/users/%d", userID), &d); err != nil {
		return nil, err
	}
	return toUser(&d)
}

func (g *RestGateway) FetchFollowEdges(ctx context.Context, userID uint64) ([]*model.UserFollow, error) {
	var ds []dto.FollowEdgeDTO
	if err := g.get(ctx, fmt.Sprintf("/api/users/%d/follows", userID), &ds); err != nil {
		return nil, err
	}
	edges := make([]*model.UserFollow, 0, len(ds))
	for i := range ds {
		edge, err := toFollowEdge(&ds[i])
		if err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

func (g *RestGateway) PersistFollow(ctx context.Context, actorID, targetID uint64) error {
	body := &dto.FollowActionDTO{TargetUserID: targetID}
	return g.send(ctx, resty.MethodPost, fmt.Sprintf("/api/users/%d/follows", actorID), body)
}

func (g *RestGateway) PersistUnfollow(ctx context.Context, actorID, targetID uint64) error {
	return g.send(ctx, resty.MethodDelete, fmt.Sprintf("/api/users/%d/follows/%d", actorID, targetID), nil)
}

func (g *RestGateway) FetchNotifications(ctx context.Context, userID uint64) ([]*model.NotificationEvent, error) {
	var ds []dto.NotificationEventDTO
	if err := g.get(ctx, fmt.Sprintf("/api/users/%d/notifications", userID), &ds); err != nil {
		return nil, err
	}
	events := make([]*model.NotificationEvent, 0, len(ds))
	for i := range ds {
		e, err := toNotificationEvent(&ds[i])
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func (g *RestGateway) FetchPlaylists(ctx context.Context, userID uint64) ([]*model.Playlist, error) {
	var ds []dto.PlaylistDTO
	if err := g.get(ctx, fmt.Sprintf("/api/users/%d/playlists", userID), &ds); err != nil {
		return nil, err
	}
	playlists := make([]*model.Playlist, 0, len(ds))
	for i := range ds {
		p, err := toPlaylist(&ds[i])
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, p)
	}
	return playlists, nil
}

func (g *RestGateway) PersistPlaylist(ctx context.Context, playlist *model.Playlist) error {
	return g.send(ctx, resty.MethodPut, "/api/playlists/"+playlist.ID, fromPlaylist(playlist))
}

func (g *RestGateway) get(ctx context.Context, path string, out any) error {
	resp, err := g.client.R().SetContext(ctx).Get(path)
	if err != nil {
		return errors.Wrapf(err, "gateway GET %s", path)
	}
	env, err := decodeEnvelope(resp)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrapf(err, "gateway GET %s: decode data", path)
	}
	return nil
}

func (g *RestGateway) send(ctx context.Context, method, path string, body any) error {
	req := g.client.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return errors.Wrapf(err, "gateway %s %s", method, path)
	}
	_, err = decodeEnvelope(resp)
	return err
}

// decodeEnvelope 校验 HTTP 状态与业务码，业务码映射回本地错误
func decodeEnvelope(resp *resty.Response) (*envelope, error) {
	if resp.IsError() {
		return nil, errors.Errorf("gateway: http %d for %s", resp.StatusCode(), resp.Request.URL)
	}
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, errors.Wrap(err, "gateway: decode envelope")
	}
	switch env.Code {
	case service.Ok:
		return &env, nil
	case service.Unauthorized:
		return nil, service.UnauthorizedError
	case service.NotFound:
		return nil, service.ErrUserNotFound
	default:
		return nil, errors.Wrapf(service.ErrSyncRejected, "gateway: code %d message %s", env.Code, env.Message)
	}
}
