package dto

type CreateReviewRequest struct {
	FoodItemID uint    `form:"food_item_id" binding:"required"`
	Rating     *int    `form:"rating" binding:"required"`
	Comment    *string `form:"comment"`
}

// UpdateReviewRequest carries a partial update. Pointer fields distinguish
// "not supplied" from a supplied zero value.
type UpdateReviewRequest struct {
	FoodItemID *uint   `form:"food_item_id"`
	Rating     *int    `form:"rating"`
	Comment    *string `form:"comment"`
}
