package service

import (
	"Bobmap/internal/model"
	"Bobmap/internal/repository"
	"context"
)

// ProfileResult 一次问卷计分的完整输出
type ProfileResult struct {
	Scores      map[model.Archetype]int64
	PrimaryType model.Archetype
	TasteVector model.TasteMap
}

type ProfileService interface {
	ScoreAnswers(answers []model.Answer) (*ProfileResult, error)
	ApplyAnswers(ctx context.Context, userID uint64, answers []model.Answer) (*model.User, error)
}

type profileServiceImpl struct {
	userRepo repository.UserRepo
}

func NewProfileService(userRepo repository.UserRepo) ProfileService {
	return &profileServiceImpl{userRepo: userRepo}
}

// ScoreAnswers 对问卷计分，纯函数。必答题缺失返回 ErrIncompleteAnswers，
// 不做静默补零；未知问题或选项返回 ErrParamInvalid。
func (s *profileServiceImpl) ScoreAnswers(answers []model.Answer) (*ProfileResult, error) {
	byQuestion := make(map[string]string, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a.Option
	}

	known := make(map[string]Question, len(ProfileQuestions))
	for _, q := range ProfileQuestions {
		known[q.ID] = q
	}
	for qid := range byQuestion {
		if _, ok := known[qid]; !ok {
			return nil, ErrParamInvalid
		}
	}

	scores := make(map[model.Archetype]int64, len(model.ArchetypePriority))
	for _, a := range model.ArchetypePriority {
		scores[a] = 0
	}
	vector := make(model.TasteMap)

	for _, q := range ProfileQuestions {
		chosen, answered := byQuestion[q.ID]
		if !answered {
			if q.Required {
				return nil, ErrIncompleteAnswers
			}
			continue
		}
		opt, ok := q.Options[chosen]
		if !ok {
			return nil, ErrParamInvalid
		}
		for archetype, weight := range opt.Archetypes {
			scores[archetype] += weight
		}
		for category, affinity := range opt.Categories {
			vector[category] += affinity
		}
	}
	vector.Clamp()

	return &ProfileResult{
		Scores:      scores,
		PrimaryType: primaryArchetype(scores),
		TasteVector: vector,
	}, nil
}

// ApplyAnswers 计分并写回用户的口味向量，版本号随之自增
func (s *profileServiceImpl) ApplyAnswers(ctx context.Context, userID uint64, answers []model.Answer) (*model.User, error) {
	result, err := s.ScoreAnswers(answers)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateTasteVector(ctx, userID, result.TasteVector, result.PrimaryType)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// primaryArchetype 取严格最高分，平分按 ArchetypePriority 固定顺序裁决
func primaryArchetype(scores map[model.Archetype]int64) model.Archetype {
	best := model.ArchetypePriority[0]
	bestScore := scores[best]
	for _, a := range model.ArchetypePriority[1:] {
		if scores[a] > bestScore {
			best = a
			bestScore = scores[a]
		}
	}
	return best
}
