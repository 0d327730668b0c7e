package service

import (
	"Bobmap/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileServiceScoreAnswers(t *testing.T) {
	s := newTestStack(t, 0)

	t.Run("TieResolvedByFixedPriority", func(t *testing.T) {
		// adventurer / value_hunter / social_diner 三方同分，
		// 裁决顺序固定，adventurer 胜出
		result, err := s.profileService.ScoreAnswers([]model.Answer{
			{QuestionID: "food_style", Option: "adventure"},
			{QuestionID: "price_range", Option: "value"},
			{QuestionID: "dining_vibe", Option: "social"},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(5), result.Scores[model.ArchetypeAdventurer])
		assert.Equal(t, int64(5), result.Scores[model.ArchetypeValueHunter])
		assert.Equal(t, int64(5), result.Scores[model.ArchetypeSocialDiner])
		assert.Equal(t, model.ArchetypeAdventurer, result.PrimaryType)

		assert.Equal(t, int64(5), result.TasteVector["adventurous"])
		assert.Equal(t, int64(5), result.TasteVector["budget"])
	})

	t.Run("StrictMaximumWins", func(t *testing.T) {
		result, err := s.profileService.ScoreAnswers([]model.Answer{
			{QuestionID: "food_style", Option: "comfort"},
			{QuestionID: "price_range", Option: "moderate"},
			{QuestionID: "dining_vibe", Option: "quiet"},
		})
		require.NoError(t, err)
		// comfort_seeker 5+2+3，远高于其他
		assert.Equal(t, model.ArchetypeComfortSeeker, result.PrimaryType)
	})

	t.Run("VectorClampedToBounds", func(t *testing.T) {
		// budget 贡献 4+5 超出上界，必须被钳制到 5
		result, err := s.profileService.ScoreAnswers([]model.Answer{
			{QuestionID: "food_style", Option: "street_food"},
			{QuestionID: "price_range", Option: "value"},
			{QuestionID: "dining_vibe", Option: "social"},
		})
		require.NoError(t, err)
		for category, score := range result.TasteVector {
			assert.LessOrEqual(t, score, model.TasteScoreMax, "category %s", category)
			assert.GreaterOrEqual(t, score, model.TasteScoreMin, "category %s", category)
		}
		assert.Equal(t, model.TasteScoreMax, result.TasteVector["budget"])
	})

	t.Run("MissingRequiredAnswer", func(t *testing.T) {
		_, err := s.profileService.ScoreAnswers([]model.Answer{
			{QuestionID: "food_style", Option: "adventure"},
		})
		assert.ErrorIs(t, err, ErrIncompleteAnswers)
	})

	t.Run("OptionalAnswerMayBeOmitted", func(t *testing.T) {
		base := []model.Answer{
			{QuestionID: "food_style", Option: "adventure"},
			{QuestionID: "price_range", Option: "premium"},
			{QuestionID: "dining_vibe", Option: "hotspot"},
		}
		withOptional := append(append([]model.Answer{}, base...),
			model.Answer{QuestionID: "spice_level", Option: "fire"})

		r1, err := s.profileService.ScoreAnswers(base)
		require.NoError(t, err)
		r2, err := s.profileService.ScoreAnswers(withOptional)
		require.NoError(t, err)

		assert.Equal(t, r1.Scores[model.ArchetypeAdventurer]+3, r2.Scores[model.ArchetypeAdventurer])
	})

	t.Run("UnknownQuestion", func(t *testing.T) {
		_, err := s.profileService.ScoreAnswers([]model.Answer{
			{QuestionID: "favorite_color", Option: "red"},
		})
		assert.ErrorIs(t, err, ErrParamInvalid)
	})

	t.Run("UnknownOption", func(t *testing.T) {
		_, err := s.profileService.ScoreAnswers([]model.Answer{
			{QuestionID: "food_style", Option: "molecular"},
			{QuestionID: "price_range", Option: "value"},
			{QuestionID: "dining_vibe", Option: "social"},
		})
		assert.ErrorIs(t, err, ErrParamInvalid)
	})

	t.Run("Deterministic", func(t *testing.T) {
		answers := []model.Answer{
			{QuestionID: "food_style", Option: "fine_dining"},
			{QuestionID: "price_range", Option: "premium"},
			{QuestionID: "dining_vibe", Option: "quiet"},
			{QuestionID: "dessert_habit", Option: "sometimes"},
		}
		first, err := s.profileService.ScoreAnswers(answers)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := s.profileService.ScoreAnswers(answers)
			require.NoError(t, err)
			assert.Equal(t, first.PrimaryType, again.PrimaryType)
			assert.Equal(t, first.Scores, again.Scores)
			assert.Equal(t, first.TasteVector, again.TasteVector)
		}
	})
}

func TestProfileServiceApplyAnswers(t *testing.T) {
	ctx := context.Background()
	answers := []model.Answer{
		{QuestionID: "food_style", Option: "adventure"},
		{QuestionID: "price_range", Option: "value"},
		{QuestionID: "dining_vibe", Option: "social"},
	}

	t.Run("UpdatesVectorAndBumpsVersion", func(t *testing.T) {
		s := newTestStack(t, 0)
		s.seedUser(t, 1, nil)

		updated, err := s.profileService.ApplyAnswers(ctx, 1, answers)
		require.NoError(t, err)
		assert.Equal(t, model.ArchetypeAdventurer, updated.PrimaryType)
		assert.Equal(t, uint64(1), updated.VectorVersion)
		assert.Equal(t, int64(5), updated.TasteVector["adventurous"])

		again, err := s.profileService.ApplyAnswers(ctx, 1, answers)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), again.VectorVersion)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		s := newTestStack(t, 0)
		_, err := s.profileService.ApplyAnswers(ctx, 404, answers)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("InvalidAnswersLeaveUserUntouched", func(t *testing.T) {
		s := newTestStack(t, 0)
		s.seedUser(t, 1, model.TasteMap{"spicy": 2})

		_, err := s.profileService.ApplyAnswers(ctx, 1, []model.Answer{
			{QuestionID: "food_style", Option: "adventure"},
		})
		require.ErrorIs(t, err, ErrIncompleteAnswers)

		u, err := s.userRepo.GetUserByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), u.VectorVersion)
		assert.Equal(t, int64(2), u.TasteVector["spicy"])
	})
}
