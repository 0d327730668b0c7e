package service

import (
	"Bobmap/internal/model"
	"Bobmap/internal/pkg/consts"
	"Bobmap/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"math"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	DefaultMatchCacheSize = 2048
	DefaultMatchThreshold = 80
)

type MatchService interface {
	ScoreUsers(ctx context.Context, userA, userB uint64) (*model.MatchScore, error)
	Rank(ctx context.Context, targetID uint64, candidateIDs []uint64) ([]*model.MatchScore, error)
}

type matchServiceImpl struct {
	userRepo            repository.UserRepo
	notificationService NotificationService
	cache               *lru.Cache[string, int]
	threshold           int
}

func NewMatchService(
	userRepo repository.UserRepo,
	notificationService NotificationService,
	cacheSize, threshold int,
) MatchService {
	if cacheSize <= 0 {
		cacheSize = DefaultMatchCacheSize
	}
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	cache, _ := lru.New[string, int](cacheSize)
	return &matchServiceImpl{
		userRepo:            userRepo,
		notificationService: notificationService,
		cache:               cache,
		threshold:           threshold,
	}
}

// ScoreVectors 计算两个口味向量的匹配百分比。对称、确定，
// 完全一致为 100，在 0~5 边界下最大分歧为 0。
func ScoreVectors(a, b model.TasteMap) int {
	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}
	if len(keys) == 0 {
		// 两个空向量视为一致
		return 100
	}

	var sum float64
	for k := range keys {
		diff := float64(a[k] - b[k])
		sum += diff * diff
	}
	dist := math.Sqrt(sum)
	maxDist := float64(model.TasteScoreMax) * math.Sqrt(float64(len(keys)))

	return int(math.Round(100 * (1 - dist/maxDist)))
}

// ScoreUsers 计算并缓存一对用户的匹配度。缓存键包含双方向量版本，
// 任一方向量更新后自动失效。首次达到阈值的计算会向双方投递 match 事件。
func (s *matchServiceImpl) ScoreUsers(ctx context.Context, userA, userB uint64) (*model.MatchScore, error) {
	a, err := s.userRepo.GetUserByID(ctx, userA)
	if err != nil {
		return nil, err
	}
	b, err := s.userRepo.GetUserByID(ctx, userB)
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		return nil, ErrUserNotFound
	}

	return s.newMatchScore(userA, userB, s.pairPercentage(ctx, a, b)), nil
}

// pairPercentage 取缓存或新算一对用户的匹配百分比。
// 只有新算且达到阈值的结果会向双方投递 match 事件，缓存命中不重复投递。
func (s *matchServiceImpl) pairPercentage(ctx context.Context, a, b *model.User) int {
	key := pairCacheKey(a, b)
	if pct, ok := s.cache.Get(key); ok {
		return pct
	}

	pct := ScoreVectors(a.TasteVector, b.TasteVector)
	s.cache.Add(key, pct)

	if pct >= s.threshold && a.ID != b.ID {
		s.emitMatch(ctx, a.ID, b.ID, pct)
		s.emitMatch(ctx, b.ID, a.ID, pct)
	}
	return pct
}

// Rank 对候选列表按匹配度降序排序，平分按候选 ID 升序，稳定可复现。
// 空候选列表返回空结果而不是错误。
func (s *matchServiceImpl) Rank(ctx context.Context, targetID uint64, candidateIDs []uint64) ([]*model.MatchScore, error) {
	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	candidates, err := s.userRepo.GetUsersByIDs(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}
	if len(candidates) != len(candidateIDs) {
		// 未知候选不静默跳过
		return nil, ErrUserNotFound
	}

	results := make([]*model.MatchScore, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, s.newMatchScore(targetID, c.ID, s.pairPercentage(ctx, target, c)))
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Percentage != results[j].Percentage {
			return results[i].Percentage > results[j].Percentage
		}
		return results[i].UserB < results[j].UserB
	})

	return results, nil
}

func (s *matchServiceImpl) newMatchScore(userA, userB uint64, pct int) *model.MatchScore {
	return &model.MatchScore{
		UserA:      userA,
		UserB:      userB,
		Percentage: pct,
		ComputedAt: time.Now(),
	}
}

func (s *matchServiceImpl) emitMatch(ctx context.Context, actorID, targetID uint64, pct int) {
	err := s.notificationService.Emit(ctx, model.EventMatch, actorID, targetID, map[string]any{
		consts.PayloadPercentage: pct,
	})
	if err != nil && !errors.Is(err, ErrDuplicateEvent) {
		log.WarnContext(ctx, "emit match event failed", "actor", actorID, "target", targetID, "err", err)
	}
}

// pairCacheKey 与顺序无关：小 ID 在前，并带上双方向量版本
func pairCacheKey(a, b *model.User) string {
	lo, hi := a, b
	if lo.ID > hi.ID {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("match:score:%d:%d:%d:%d", lo.ID, hi.ID, lo.VectorVersion, hi.VectorVersion)
}
