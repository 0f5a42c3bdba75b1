package repository

import (
	"context"

	"bitescout.app/bitescout/internal/model"
	"gorm.io/gorm"
)

type FoodItemRepository interface {
	Create(ctx context.Context, item *model.FoodItem) error
	FindByID(ctx context.Context, id uint) (*model.FoodItem, error)
	// FindWithReviews loads the item with its reviews, for attachment
	// cleanup on cascade delete.
	FindWithReviews(ctx context.Context, id uint) (*model.FoodItem, error)
	FindAll(ctx context.Context) ([]model.FoodItem, error)
	FindByRestaurant(ctx context.Context, restaurantID uint) ([]model.FoodItem, error)
	Update(ctx context.Context, item *model.FoodItem) error
	Delete(ctx context.Context, id uint) error
}

type foodItemRepository struct {
	db *gorm.DB
}

func NewFoodItemRepository(db *gorm.DB) FoodItemRepository {
	return &foodItemRepository{db: db}
}

func (r *foodItemRepository) Create(ctx context.Context, item *model.FoodItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *foodItemRepository) FindByID(ctx context.Context, id uint) (*model.FoodItem, error) {
	var item model.FoodItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *foodItemRepository) FindWithReviews(ctx context.Context, id uint) (*model.FoodItem, error) {
	var item model.FoodItem
	if err := r.db.WithContext(ctx).Preload("Reviews").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *foodItemRepository) FindAll(ctx context.Context) ([]model.FoodItem, error) {
	var items []model.FoodItem
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	return items, err
}

func (r *foodItemRepository) FindByRestaurant(ctx context.Context, restaurantID uint) ([]model.FoodItem, error) {
	var items []model.FoodItem
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	return items, err
}

func (r *foodItemRepository) Update(ctx context.Context, item *model.FoodItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *foodItemRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.FoodItem{}, "id = ?", id).Error
}
