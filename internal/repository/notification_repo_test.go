package repository

import (
	"Bobmap/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendEvent(t *testing.T, repo NotificationRepo, e *model.NotificationEvent) *model.NotificationEvent {
	t.Helper()
	stored, err := repo.Append(context.Background(), e)
	require.NoError(t, err)
	return stored
}

func TestNotificationRepoAppend(t *testing.T) {
	ctx := context.Background()

	t.Run("ExplicitTimestampPreserved", func(t *testing.T) {
		repo := NewNotificationRepo(0)
		now := time.Now()
		historic := now.Add(-2 * time.Hour)

		appendEvent(t, repo, &model.NotificationEvent{
			Type: model.EventLike, ActorID: 1, TargetUserID: 2, CreatedAt: now,
		})
		// 网关带来的历史时间戳不被改写
		old := appendEvent(t, repo, &model.NotificationEvent{
			Type: model.EventFollow, ActorID: 1, TargetUserID: 2, CreatedAt: historic,
		})
		assert.True(t, old.CreatedAt.Equal(historic))

		fetched, err := repo.GetByID(ctx, old.ID)
		require.NoError(t, err)
		assert.True(t, fetched.CreatedAt.Equal(historic))
	})

	t.Run("AssignedTimestampMonotonic", func(t *testing.T) {
		repo := NewNotificationRepo(0)
		future := time.Now().Add(time.Hour)

		appendEvent(t, repo, &model.NotificationEvent{
			Type: model.EventLike, ActorID: 1, TargetUserID: 2, CreatedAt: future,
		})
		// 本地补齐的时间戳被钳制为不早于已见过的最大时间
		assigned := appendEvent(t, repo, &model.NotificationEvent{
			Type: model.EventFollow, ActorID: 1, TargetUserID: 2,
		})
		assert.False(t, assigned.CreatedAt.Before(future))
	})

	t.Run("SignatureDedupWithinWindow", func(t *testing.T) {
		repo := NewNotificationRepo(time.Minute)
		base := time.Now()

		appendEvent(t, repo, &model.NotificationEvent{
			Type: model.EventLike, ActorID: 1, TargetUserID: 2, CreatedAt: base,
		})

		_, err := repo.Append(ctx, &model.NotificationEvent{
			Type: model.EventLike, ActorID: 1, TargetUserID: 2, CreatedAt: base.Add(time.Second),
		})
		assert.ErrorIs(t, err, ErrDuplicateSignature)

		// 窗口之外的同内容事件是独立记录
		_, err = repo.Append(ctx, &model.NotificationEvent{
			Type: model.EventLike, ActorID: 1, TargetUserID: 2, CreatedAt: base.Add(2 * time.Minute),
		})
		assert.NoError(t, err)
	})

	t.Run("SameIDReinjectIsNoOp", func(t *testing.T) {
		repo := NewNotificationRepo(0)
		e := appendEvent(t, repo, &model.NotificationEvent{
			ID: "evt-1", Type: model.EventLike, ActorID: 1, TargetUserID: 2,
		})

		again, err := repo.Append(ctx, &model.NotificationEvent{
			ID: "evt-1", Type: model.EventLike, ActorID: 1, TargetUserID: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, e.ID, again.ID)

		count, err := repo.GetUnreadCount(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("StoredEventIsisolated", func(t *testing.T) {
		repo := NewNotificationRepo(0)
		payload := map[string]any{"k": "v"}
		stored := appendEvent(t, repo, &model.NotificationEvent{
			Type: model.EventLike, ActorID: 1, TargetUserID: 2, Payload: payload,
		})

		// 修改调用方持有的 map 不影响仓库内的记录
		payload["k"] = "mutated"
		stored.Payload["k"] = "mutated"

		fetched, err := repo.GetByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, "v", fetched.Payload["k"])
	})
}

func TestNotificationRepoListByReceiver(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepo(0)
	base := time.Now()

	var ids []string
	for i := 0; i < 5; i++ {
		e := appendEvent(t, repo, &model.NotificationEvent{
			Type: model.EventReview, ActorID: uint64(i + 1), TargetUserID: 2,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		ids = append(ids, e.ID)
	}
	appendEvent(t, repo, &model.NotificationEvent{
		Type: model.EventReview, ActorID: 1, TargetUserID: 9,
		CreatedAt: base.Add(10 * time.Second),
	})

	t.Run("NewestFirst", func(t *testing.T) {
		list, err := repo.ListByReceiver(ctx, 2, false, 0, 0)
		require.NoError(t, err)
		require.Len(t, list, 5)
		for i, e := range list {
			assert.Equal(t, ids[len(ids)-1-i], e.ID)
		}
	})

	t.Run("LimitOffset", func(t *testing.T) {
		page, err := repo.ListByReceiver(ctx, 2, false, 2, 2)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, ids[2], page[0].ID)
		assert.Equal(t, ids[1], page[1].ID)
	})

	t.Run("OffsetBeyondEnd", func(t *testing.T) {
		page, err := repo.ListByReceiver(ctx, 2, false, 10, 100)
		require.NoError(t, err)
		assert.Empty(t, page)
	})

	t.Run("UnreadOnly", func(t *testing.T) {
		require.NoError(t, repo.MarkAsRead(ctx, ids[4]))
		list, err := repo.ListByReceiver(ctx, 2, true, 0, 0)
		require.NoError(t, err)
		assert.Len(t, list, 4)
	})

	t.Run("OutOfOrderBatch", func(t *testing.T) {
		// 网关批次可能按时间倒序到达，列表仍按 CreatedAt 倒序返回
		repo := NewNotificationRepo(0)
		now := time.Now()
		stamps := []time.Time{now, now.Add(-time.Minute), now.Add(-time.Hour)}

		for i, ts := range stamps {
			appendEvent(t, repo, &model.NotificationEvent{
				Type: model.EventReview, ActorID: uint64(i + 1), TargetUserID: 7,
				CreatedAt: ts,
			})
		}

		list, err := repo.ListByReceiver(ctx, 7, false, 0, 0)
		require.NoError(t, err)
		require.Len(t, list, 3)
		for i, e := range list {
			assert.True(t, e.CreatedAt.Equal(stamps[i]))
		}
		assert.Equal(t, uint64(3), list[2].ActorID)
	})
}

func TestNotificationRepoMarkAsRead(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepo(0)

	e := appendEvent(t, repo, &model.NotificationEvent{
		Type: model.EventLike, ActorID: 1, TargetUserID: 2,
	})

	require.NoError(t, repo.MarkAsRead(ctx, e.ID))
	fetched, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	require.True(t, fetched.IsRead())
	firstReadAt := *fetched.ReadAt

	// 重复标记不改写 ReadAt
	require.NoError(t, repo.MarkAsRead(ctx, e.ID))
	fetched, err = repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, firstReadAt.Equal(*fetched.ReadAt))

	// 未知 ID 为 no-op
	assert.NoError(t, repo.MarkAsRead(ctx, "missing"))
}

func TestNotificationRepoMarkAllAsRead(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepo(0)

	for i := 0; i < 3; i++ {
		appendEvent(t, repo, &model.NotificationEvent{
			Type: model.EventLike, ActorID: uint64(i + 1), TargetUserID: 2,
		})
	}

	require.NoError(t, repo.MarkAllAsRead(ctx, 2))
	count, err := repo.GetUnreadCount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
