package dto

type CreateRestaurantRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
}

type UpdateRestaurantRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}
