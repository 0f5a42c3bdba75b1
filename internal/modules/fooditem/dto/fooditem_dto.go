package dto

type CreateFoodItemRequest struct {
	Name         string   `form:"name" binding:"required"`
	Description  *string  `form:"description"`
	Price        *float64 `form:"price"`
	RestaurantID uint     `form:"restaurant_id" binding:"required"`
}

// UpdateFoodItemRequest carries a partial update. Pointer fields distinguish
// "not supplied" from a supplied zero value.
type UpdateFoodItemRequest struct {
	Name         *string  `form:"name"`
	Description  *string  `form:"description"`
	Price        *float64 `form:"price"`
	RestaurantID *uint    `form:"restaurant_id"`
}
