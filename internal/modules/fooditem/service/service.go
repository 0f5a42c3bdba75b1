package fooditem

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"bitescout.app/bitescout/internal/model"
	"bitescout.app/bitescout/internal/modules/fooditem/dto"
	"bitescout.app/bitescout/internal/modules/fooditem/repository"
	restaurantRepo "bitescout.app/bitescout/internal/modules/restaurant/repository"
	"bitescout.app/bitescout/internal/pipeline"
	"bitescout.app/bitescout/pkg/apperror"
	"bitescout.app/bitescout/pkg/storage"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

const uploadFolder = "food-items"

type FoodItemService interface {
	Create(ctx context.Context, req dto.CreateFoodItemRequest, image *multipart.FileHeader) (*model.FoodItem, error)
	GetByID(ctx context.Context, id uint) (*model.FoodItem, error)
	GetAll(ctx context.Context) ([]model.FoodItem, error)
	GetByRestaurant(ctx context.Context, restaurantID uint) ([]model.FoodItem, error)
	Update(ctx context.Context, id uint, req dto.UpdateFoodItemRequest, image *multipart.FileHeader) (*model.FoodItem, error)
	Delete(ctx context.Context, id uint) error
}

type foodItemService struct {
	repo           repository.FoodItemRepository
	restaurantRepo restaurantRepo.RestaurantRepository
	images         storage.ImageStorage
	maxUploadBytes int64
	sanitizer      *bluemonday.Policy
}

func NewFoodItemService(
	repo repository.FoodItemRepository,
	restaurantRepo restaurantRepo.RestaurantRepository,
	images storage.ImageStorage,
	maxUploadBytes int64,
) FoodItemService {
	return &foodItemService{
		repo:           repo,
		restaurantRepo: restaurantRepo,
		images:         images,
		maxUploadBytes: maxUploadBytes,
		sanitizer:      bluemonday.StrictPolicy(),
	}
}

func (s *foodItemService) Create(ctx context.Context, req dto.CreateFoodItemRequest, image *multipart.FileHeader) (*model.FoodItem, error) {
	var imagePath *string
	if image != nil {
		p, err := storage.SaveUpload(ctx, s.images, image, uploadFolder, s.maxUploadBytes)
		if err != nil {
			return nil, err
		}
		imagePath = &p
	}

	err := pipeline.Run(ctx,
		pipeline.Required("name", req.Name),
		pipeline.Reference("restaurant", func(ctx context.Context) error {
			_, err := s.restaurantRepo.FindByID(ctx, req.RestaurantID)
			return err
		}),
	)
	if err != nil {
		s.discard(ctx, imagePath)
		return nil, err
	}

	item := &model.FoodItem{
		Name:         req.Name,
		Description:  s.sanitize(req.Description),
		Price:        req.Price,
		RestaurantID: req.RestaurantID,
		ImagePath:    imagePath,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.discard(ctx, imagePath)
		return nil, err
	}

	return item, nil
}

func (s *foodItemService) GetByID(ctx context.Context, id uint) (*model.FoodItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("food item not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return item, nil
}

func (s *foodItemService) GetAll(ctx context.Context) ([]model.FoodItem, error) {
	return s.repo.FindAll(ctx)
}

func (s *foodItemService) GetByRestaurant(ctx context.Context, restaurantID uint) ([]model.FoodItem, error) {
	if _, err := s.restaurantRepo.FindByID(ctx, restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("restaurant not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return s.repo.FindByRestaurant(ctx, restaurantID)
}

func (s *foodItemService) Update(ctx context.Context, id uint, req dto.UpdateFoodItemRequest, image *multipart.FileHeader) (*model.FoodItem, error) {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var newPath *string
	if image != nil {
		p, err := storage.SaveUpload(ctx, s.images, image, uploadFolder, s.maxUploadBytes)
		if err != nil {
			return nil, err
		}
		newPath = &p
	}

	var checks []pipeline.Check
	if req.Name != nil {
		checks = append(checks, pipeline.Required("name", *req.Name))
	}
	// Skip the lookup when the reference does not change
	if req.RestaurantID != nil && *req.RestaurantID != item.RestaurantID {
		checks = append(checks, pipeline.Reference("restaurant", func(ctx context.Context) error {
			_, err := s.restaurantRepo.FindByID(ctx, *req.RestaurantID)
			return err
		}))
	}

	if err := pipeline.Run(ctx, checks...); err != nil {
		s.discard(ctx, newPath)
		return nil, err
	}

	oldPath := item.ImagePath
	pipeline.Merge(&item.Name, req.Name)
	if req.Description != nil {
		item.Description = s.sanitize(req.Description)
	}
	pipeline.Merge(&item.RestaurantID, req.RestaurantID)
	if req.Price != nil {
		item.Price = req.Price
	}
	if newPath != nil {
		item.ImagePath = newPath
	}

	if err := s.repo.Update(ctx, item); err != nil {
		s.discard(ctx, newPath)
		return nil, err
	}

	// The previous file is orphaned only once the new path is persisted
	if newPath != nil && oldPath != nil {
		storage.Discard(ctx, s.images, *oldPath)
	}

	return item, nil
}

func (s *foodItemService) Delete(ctx context.Context, id uint) error {
	item, err := s.repo.FindWithReviews(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("food item not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.discard(ctx, item.ImagePath)
	for _, review := range item.Reviews {
		s.discard(ctx, review.ImagePath)
	}

	return nil
}

func (s *foodItemService) sanitize(text *string) *string {
	if text == nil {
		return nil
	}
	clean := s.sanitizer.Sanitize(*text)
	return &clean
}

func (s *foodItemService) discard(ctx context.Context, path *string) {
	if path != nil {
		storage.Discard(ctx, s.images, *path)
	}
}
