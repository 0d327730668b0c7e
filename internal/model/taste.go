package model

// 口味分值边界
const (
	TasteScoreMin int64 = 0
	TasteScoreMax int64 = 5
)

// Categories 口味向量的固定分类集合
var Categories = []string{
	"spicy",
	"sweet",
	"savory",
	"light",
	"adventurous",
	"traditional",
	"trendy",
	"budget",
}

// TasteMap 存储口味得分: map[category]score (0~5)
type TasteMap map[string]int64

// Archetype 美食人格类型
type Archetype string

const (
	ArchetypeAdventurer    Archetype = "adventurer"
	ArchetypeTrendsetter   Archetype = "trendsetter"
	ArchetypeGourmet       Archetype = "gourmet"
	ArchetypeComfortSeeker Archetype = "comfort_seeker"
	ArchetypeSocialDiner   Archetype = "social_diner"
	ArchetypeValueHunter   Archetype = "value_hunter"
)

// ArchetypePriority 平分时的裁决顺序，固定不变
var ArchetypePriority = []Archetype{
	ArchetypeAdventurer,
	ArchetypeTrendsetter,
	ArchetypeGourmet,
	ArchetypeComfortSeeker,
	ArchetypeSocialDiner,
	ArchetypeValueHunter,
}

// Clamp 将所有分值收敛到 [TasteScoreMin, TasteScoreMax]
func (t TasteMap) Clamp() {
	for k, v := range t {
		if v < TasteScoreMin {
			t[k] = TasteScoreMin
		} else if v > TasteScoreMax {
			t[k] = TasteScoreMax
		}
	}
}

// Clone 深拷贝
func (t TasteMap) Clone() TasteMap {
	if t == nil {
		return nil
	}
	c := make(TasteMap, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}
