package restaurant

import (
	"context"
	"errors"
	"fmt"

	"bitescout.app/bitescout/internal/model"
	"bitescout.app/bitescout/internal/modules/restaurant/dto"
	"bitescout.app/bitescout/internal/modules/restaurant/repository"
	"bitescout.app/bitescout/internal/pipeline"
	"bitescout.app/bitescout/pkg/apperror"
	"bitescout.app/bitescout/pkg/storage"
	"gorm.io/gorm"
)

type RestaurantService interface {
	Create(ctx context.Context, req dto.CreateRestaurantRequest) (*model.Restaurant, error)
	GetByID(ctx context.Context, id uint) (*model.Restaurant, error)
	GetAll(ctx context.Context) ([]model.Restaurant, error)
	Update(ctx context.Context, id uint, req dto.UpdateRestaurantRequest) (*model.Restaurant, error)
	Delete(ctx context.Context, id uint) error
}

type restaurantService struct {
	repo   repository.RestaurantRepository
	images storage.ImageStorage
}

func NewRestaurantService(repo repository.RestaurantRepository, images storage.ImageStorage) RestaurantService {
	return &restaurantService{repo: repo, images: images}
}

func (s *restaurantService) Create(ctx context.Context, req dto.CreateRestaurantRequest) (*model.Restaurant, error) {
	if err := pipeline.Run(ctx, pipeline.Required("name", req.Name)); err != nil {
		return nil, err
	}

	restaurant := &model.Restaurant{
		Name:     req.Name,
		Location: req.Location,
	}

	if err := s.repo.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

func (s *restaurantService) GetByID(ctx context.Context, id uint) (*model.Restaurant, error) {
	restaurant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("restaurant not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return restaurant, nil
}

func (s *restaurantService) GetAll(ctx context.Context) ([]model.Restaurant, error) {
	return s.repo.FindAll(ctx)
}

func (s *restaurantService) Update(ctx context.Context, id uint, req dto.UpdateRestaurantRequest) (*model.Restaurant, error) {
	restaurant, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name == "" {
		return nil, fmt.Errorf("name cannot be empty: %w", apperror.ErrValidation)
	}

	pipeline.Merge(&restaurant.Name, req.Name)
	if req.Location != nil {
		restaurant.Location = req.Location
	}

	if err := s.repo.Update(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

func (s *restaurantService) Delete(ctx context.Context, id uint) error {
	restaurant, err := s.repo.FindWithDependents(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("restaurant not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// The store cascades to food items and reviews; their files are
	// released here, after the delete is authoritative.
	for _, item := range restaurant.FoodItems {
		if item.ImagePath != nil {
			storage.Discard(ctx, s.images, *item.ImagePath)
		}
		for _, review := range item.Reviews {
			if review.ImagePath != nil {
				storage.Discard(ctx, s.images, *review.ImagePath)
			}
		}
	}

	return nil
}
