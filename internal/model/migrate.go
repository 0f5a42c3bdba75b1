package model

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for all entity kinds.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Restaurant{},
		&FoodItem{},
		&Review{},
	)
}
