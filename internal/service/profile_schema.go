package service

import "Bobmap/internal/model"

// QuestionOption 单个选项对人格得分和口味向量的固定贡献
type QuestionOption struct {
	Archetypes map[model.Archetype]int64
	Categories map[string]int64
}

type Question struct {
	ID       string
	Required bool
	Options  map[string]QuestionOption
}

// ProfileQuestions 美食人格问卷的静态计分表。顺序与权重是产品定义的
// 一部分，平分裁决只依赖 model.ArchetypePriority，与 map 遍历顺序无关。
var ProfileQuestions = []Question{
	{
		ID:       "food_style",
		Required: true,
		Options: map[string]QuestionOption{
			"adventure": {
				Archetypes: map[model.Archetype]int64{model.ArchetypeAdventurer: 5, model.ArchetypeTrendsetter: 2},
				Categories: map[string]int64{"adventurous": 5, "spicy": 3},
			},
			"comfort": {
				Archetypes: map[model.Archetype]int64{model.ArchetypeComfortSeeker: 5, model.ArchetypeSocialDiner: 1},
				Categories: map[string]int64{"traditional": 4, "savory": 3},
			},
			"fine_dining": {
				Archetypes: map[model.Archetype]int64{model.ArchetypeGourmet: 5, model.ArchetypeTrendsetter: 1},
				Categories: map[string]int64{"light": 3, "trendy": 2, "savory": 2},
			},
			"street_food": {
				Archetypes: map[model.Archetype]int64{model.ArchetypeValueHunter: 3, model.ArchetypeAdventurer: 2},
				Categories: map[string]int64{"budget": 4, "spicy": 2, "traditional": 2},
			},
		},
	},
	{
		ID:       "price_range",
		Required: true,
		Options: map[string]QuestionOption{
			"value": {
				Archetypes: map[model.Archetype]int64{model.ArchetypeValueHunter: 5},
				Categories: map[string]int64{"budget": 5},
			},
			"moderate": {
				Archetypes: map[model.Archetype]int64{model.ArchetypeSocialDiner: 2, model.ArchetypeComfortSeeker: 2},
				Categories: map[string]int64{"budget": 2},
			},
			"premium": {
				Archetypes: map[model.Archetype]int64{model.ArchetypeGourmet: 4, model.ArchetypeTrendsetter: 2},
				Categories: map[string]int64{"trendy": 3, "light": 2},
			},
		},
	},
	{
		ID:       "dining_vibe",
		Required: true,
		Options: map[string]QuestionOption{
			"social": {
				Archetypes: map[model.Archetype]int64{model.ArchetypeSocialDiner: 5, model.ArchetypeTrendsetter: 1},
				Categories: map[string]int64{"trendy": 2, "sweet": 1},
			},
			"quiet": {
				Archetypes: map[model.Archetype]int64{model.ArchetypeComfortSeeker: 3, model.ArchetypeGourmet: 2},
				Categories: map[string]int64{"light": 2, "traditional": 1},
			},
			"hotspot": {
				Archetypes: map[model.Archetype]int64{model.ArchetypeTrendsetter: 5},
				Categories: map[string]int64{"trendy": 5, "sweet": 2},
			},
		},
	},
	{
		ID: "spice_level",
		Options: map[string]QuestionOption{
			"fire": {
				Archetypes: map[model.Archetype]int64{model.ArchetypeAdventurer: 3},
				Categories: map[string]int64{"spicy": 5},
			},
			"mild": {
				Archetypes: map[model.Archetype]int64{model.ArchetypeComfortSeeker: 2},
				Categories: map[string]int64{"spicy": 1, "sweet": 2},
			},
			"none": {
				Categories: map[string]int64{"sweet": 3, "light": 2},
			},
		},
	},
	{
		ID: "dessert_habit",
		Options: map[string]QuestionOption{
			"always": {
				Archetypes: map[model.Archetype]int64{model.ArchetypeSocialDiner: 1},
				Categories: map[string]int64{"sweet": 5},
			},
			"sometimes": {
				Categories: map[string]int64{"sweet": 2},
			},
			"never": {
				Categories: map[string]int64{"savory": 2},
			},
		},
	},
}
