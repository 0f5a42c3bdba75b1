package model

import "time"

type Restaurant struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Location  *string    `gorm:"size:255" json:"location,omitempty"`
	FoodItems []FoodItem `gorm:"constraint:OnDelete:CASCADE" json:"food_items,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
