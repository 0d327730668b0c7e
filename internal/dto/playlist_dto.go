package dto

// PlaylistDTO 网关侧的餐厅清单对象
type PlaylistDTO struct {
	ID        string             `json:"id" validate:"required"`
	OwnerID   uint64             `json:"owner_id" validate:"required"`
	Title     string             `json:"title" validate:"required,max=100"`
	Entries   []PlaylistEntryDTO `json:"entries" validate:"dive"`
	CreatedAt string             `json:"created_at"`
	UpdatedAt string             `json:"updated_at"`
}

type PlaylistEntryDTO struct {
	RestaurantID uint64 `json:"restaurant_id" validate:"required"`
	Name         string `json:"name"`
	AddedAt      string `json:"added_at"`
}
