package model

import "time"

// Playlist 用户的餐厅清单，条目按加入顺序排列且不重复
type Playlist struct {
	ID        string          `json:"id"`
	OwnerID   uint64          `json:"owner_id"`
	Title     string          `json:"title"`
	Entries   []PlaylistEntry `json:"entries"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type PlaylistEntry struct {
	RestaurantID uint64    `json:"restaurant_id"`
	Name         string    `json:"name"`
	AddedAt      time.Time `json:"added_at"`
}

func (p *Playlist) HasRestaurant(restaurantID uint64) bool {
	for _, e := range p.Entries {
		if e.RestaurantID == restaurantID {
			return true
		}
	}
	return false
}
