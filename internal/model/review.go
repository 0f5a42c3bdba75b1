package model

import "time"

type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FoodItemID uint      `gorm:"not null;index" json:"food_item_id"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    *string   `gorm:"type:text" json:"comment,omitempty"`
	ImagePath  *string   `gorm:"type:text" json:"image_path,omitempty"`
	Date       time.Time `gorm:"autoUpdateTime" json:"date"`
}
