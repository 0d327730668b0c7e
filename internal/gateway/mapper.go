package gateway

import (
	"Bobmap/internal/dto"
	"Bobmap/internal/model"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

var validate = validator.New()

func toUser(d *dto.UserDTO) (*model.User, error) {
	if err := validate.Struct(d); err != nil {
		return nil, errors.Wrap(err, "invalid user payload")
	}
	u := &model.User{}
	_ = copier.Copy(u, d)
	u.ID = d.UserID
	u.TasteVector = model.TasteMap(d.TasteVector)
	u.PrimaryType = model.Archetype(d.PrimaryType)
	u.CreatedAt = parseTime(d.CreatedAt)
	return u, nil
}

func toFollowEdge(d *dto.FollowEdgeDTO) (*model.UserFollow, error) {
	if err := validate.Struct(d); err != nil {
		return nil, errors.Wrap(err, "invalid follow edge payload")
	}
	return &model.UserFollow{
		FollowerID:  d.FollowerID,
		FollowingID: d.FollowingID,
		CreatedAt:   parseTime(d.CreatedAt),
	}, nil
}

func toNotificationEvent(d *dto.NotificationEventDTO) (*model.NotificationEvent, error) {
	if err := validate.Struct(d); err != nil {
		return nil, errors.Wrap(err, "invalid notification payload")
	}
	e := &model.NotificationEvent{
		ID:           d.ID,
		Type:         model.EventType(d.Type),
		ActorID:      d.ActorID,
		TargetUserID: d.TargetUserID,
		Payload:      d.Payload,
		CreatedAt:    parseTime(d.CreatedAt),
	}
	if d.ReadAt != nil {
		readAt := parseTime(*d.ReadAt)
		e.ReadAt = &readAt
	}
	return e, nil
}

func toPlaylist(d *dto.PlaylistDTO) (*model.Playlist, error) {
	if err := validate.Struct(d); err != nil {
		return nil, errors.Wrap(err, "invalid playlist payload")
	}
	p := &model.Playlist{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Title:     d.Title,
		Entries:   make([]model.PlaylistEntry, 0, len(d.Entries)),
		CreatedAt: parseTime(d.CreatedAt),
		UpdatedAt: parseTime(d.UpdatedAt),
	}
	for _, e := range d.Entries {
		p.Entries = append(p.Entries, model.PlaylistEntry{
			RestaurantID: e.RestaurantID,
			Name:         e.Name,
			AddedAt:      parseTime(e.AddedAt),
		})
	}
	return p, nil
}

func fromPlaylist(p *model.Playlist) *dto.PlaylistDTO {
	d := &dto.PlaylistDTO{}
	_ = copier.Copy(d, p)
	d.CreatedAt = p.CreatedAt.UTC().Format(time.RFC3339)
	d.UpdatedAt = p.UpdatedAt.UTC().Format(time.RFC3339)
	d.Entries = make([]dto.PlaylistEntryDTO, 0, len(p.Entries))
	for _, e := range p.Entries {
		d.Entries = append(d.Entries, dto.PlaylistEntryDTO{
			RestaurantID: e.RestaurantID,
			Name:         e.Name,
			AddedAt:      e.AddedAt.UTC().Format(time.RFC3339),
		})
	}
	return d
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
