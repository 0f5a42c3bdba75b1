package review

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"bitescout.app/bitescout/internal/model"
	fooditemRepo "bitescout.app/bitescout/internal/modules/fooditem/repository"
	"bitescout.app/bitescout/internal/modules/review/dto"
	"bitescout.app/bitescout/internal/modules/review/repository"
	"bitescout.app/bitescout/internal/pipeline"
	"bitescout.app/bitescout/pkg/apperror"
	"bitescout.app/bitescout/pkg/storage"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

const (
	uploadFolder = "reviews"

	minRating = 1
	maxRating = 5
)

type ReviewService interface {
	Create(ctx context.Context, req dto.CreateReviewRequest, image *multipart.FileHeader) (*model.Review, error)
	GetByID(ctx context.Context, id uint) (*model.Review, error)
	GetAll(ctx context.Context) ([]model.Review, error)
	Update(ctx context.Context, id uint, req dto.UpdateReviewRequest, image *multipart.FileHeader) (*model.Review, error)
	Delete(ctx context.Context, id uint) error
}

type reviewService struct {
	repo           repository.ReviewRepository
	foodItemRepo   fooditemRepo.FoodItemRepository
	images         storage.ImageStorage
	maxUploadBytes int64
	sanitizer      *bluemonday.Policy
}

func NewReviewService(
	repo repository.ReviewRepository,
	foodItemRepo fooditemRepo.FoodItemRepository,
	images storage.ImageStorage,
	maxUploadBytes int64,
) ReviewService {
	return &reviewService{
		repo:           repo,
		foodItemRepo:   foodItemRepo,
		images:         images,
		maxUploadBytes: maxUploadBytes,
		sanitizer:      bluemonday.StrictPolicy(),
	}
}

func (s *reviewService) Create(ctx context.Context, req dto.CreateReviewRequest, image *multipart.FileHeader) (*model.Review, error) {
	if req.Rating == nil {
		return nil, fmt.Errorf("rating is required: %w", apperror.ErrValidation)
	}

	var imagePath *string
	if image != nil {
		p, err := storage.SaveUpload(ctx, s.images, image, uploadFolder, s.maxUploadBytes)
		if err != nil {
			return nil, err
		}
		imagePath = &p
	}

	err := pipeline.Run(ctx,
		pipeline.Range("rating", *req.Rating, minRating, maxRating),
		pipeline.Reference("food item", func(ctx context.Context) error {
			_, err := s.foodItemRepo.FindByID(ctx, req.FoodItemID)
			return err
		}),
	)
	if err != nil {
		s.discard(ctx, imagePath)
		return nil, err
	}

	review := &model.Review{
		FoodItemID: req.FoodItemID,
		Rating:     *req.Rating,
		Comment:    s.sanitize(req.Comment),
		ImagePath:  imagePath,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		s.discard(ctx, imagePath)
		return nil, err
	}

	return review, nil
}

func (s *reviewService) GetByID(ctx context.Context, id uint) (*model.Review, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) GetAll(ctx context.Context) ([]model.Review, error) {
	return s.repo.FindAll(ctx)
}

func (s *reviewService) Update(ctx context.Context, id uint, req dto.UpdateReviewRequest, image *multipart.FileHeader) (*model.Review, error) {
	review, err := s.GetByID(ctx, id)
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
	if req.Rating != nil {
		checks = append(checks, pipeline.Range("rating", *req.Rating, minRating, maxRating))
	}
	// Skip the lookup when the reference does not change
	if req.FoodItemID != nil && *req.FoodItemID != review.FoodItemID {
		checks = append(checks, pipeline.Reference("food item", func(ctx context.Context) error {
			_, err := s.foodItemRepo.FindByID(ctx, *req.FoodItemID)
			return err
		}))
	}

	if err := pipeline.Run(ctx, checks...); err != nil {
		s.discard(ctx, newPath)
		return nil, err
	}

	oldPath := review.ImagePath
	pipeline.Merge(&review.FoodItemID, req.FoodItemID)
	pipeline.Merge(&review.Rating, req.Rating)
	if req.Comment != nil {
		review.Comment = s.sanitize(req.Comment)
	}
	if newPath != nil {
		review.ImagePath = newPath
	}

	if err := s.repo.Update(ctx, review); err != nil {
		s.discard(ctx, newPath)
		return nil, err
	}

	// The previous file is orphaned only once the new path is persisted
	if newPath != nil && oldPath != nil {
		storage.Discard(ctx, s.images, *oldPath)
	}

	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, id uint) error {
	review, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.discard(ctx, review.ImagePath)
	return nil
}

func (s *reviewService) sanitize(text *string) *string {
	if text == nil {
		return nil
	}
	clean := s.sanitizer.Sanitize(*text)
	return &clean
}

func (s *reviewService) discard(ctx context.Context, path *string) {
	if path != nil {
		storage.Discard(ctx, s.images, *path)
	}
}
