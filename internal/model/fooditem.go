package model

import "time"

type FoodItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Description  *string   `gorm:"type:text" json:"description,omitempty"`
	Price        *float64  `json:"price,omitempty"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	ImagePath    *string   `gorm:"type:text" json:"image_path,omitempty"`
	Reviews      []Review  `gorm:"constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
