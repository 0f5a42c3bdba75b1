package server

import (
	"net/http"
	"strings"
	"time"

	"bitescout.app/bitescout/internal/config"
	"bitescout.app/bitescout/internal/middleware"
	"bitescout.app/bitescout/pkg/storage"

	fooditemHttp "bitescout.app/bitescout/internal/modules/fooditem/delivery/http"
	fooditemRepo "bitescout.app/bitescout/internal/modules/fooditem/repository"
	fooditemService "bitescout.app/bitescout/internal/modules/fooditem/service"

	restaurantHttp "bitescout.app/bitescout/internal/modules/restaurant/delivery/http"
	restaurantRepo "bitescout.app/bitescout/internal/modules/restaurant/repository"
	restaurantService "bitescout.app/bitescout/internal/modules/restaurant/service"

	reviewHttp "bitescout.app/bitescout/internal/modules/review/delivery/http"
	reviewRepo "bitescout.app/bitescout/internal/modules/review/repository"
	reviewService "bitescout.app/bitescout/internal/modules/review/service"

	userHttp "bitescout.app/bitescout/internal/modules/user/delivery/http"
	userRepo "bitescout.app/bitescout/internal/modules/user/repository"
	userService "bitescout.app/bitescout/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
}

func NewServer(db *gorm.DB, cfg *config.Config) (*Server, error) {
	imageStorage, err := storage.NewDiskStorage(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	usersRepository := userRepo.NewUserRepository(db)
	authSvc := userService.NewAuthService(usersRepository, cfg.JWTSecret, cfg.TokenTTL)
	authHandler := userHttp.NewAuthHandler(authSvc)

	restaurantsRepository := restaurantRepo.NewRestaurantRepository(db)
	restaurantSvc := restaurantService.NewRestaurantService(restaurantsRepository, imageStorage)
	restaurantHandler := restaurantHttp.NewRestaurantHandler(restaurantSvc)

	foodItemsRepository := fooditemRepo.NewFoodItemRepository(db)
	foodItemSvc := fooditemService.NewFoodItemService(foodItemsRepository, restaurantsRepository, imageStorage, cfg.MaxUploadBytes)
	foodItemHandler := fooditemHttp.NewFoodItemHandler(foodItemSvc)

	reviewsRepository := reviewRepo.NewReviewRepository(db)
	reviewSvc := reviewService.NewReviewService(reviewsRepository, foodItemsRepository, imageStorage, cfg.MaxUploadBytes)
	reviewHandler := reviewHttp.NewReviewHandler(reviewSvc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	setupCORS(router, cfg)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Uploaded images are served back under a static prefix
	router.Static(storage.URLPrefix, cfg.UploadDir)

	// Public routes (no auth required)
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	router.GET("/restaurants", restaurantHandler.GetAll)
	router.GET("/restaurants/:id", restaurantHandler.GetByID)
	router.GET("/restaurants/:id/food-items", foodItemHandler.GetByRestaurant)
	router.GET("/food-items", foodItemHandler.GetAll)
	router.GET("/food-items/:id", foodItemHandler.GetByID)
	router.GET("/reviews", reviewHandler.GetAll)
	router.GET("/reviews/:id", reviewHandler.GetByID)

	// Protected routes
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)
	protected := router.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/me", authHandler.Me)

		protected.POST("/restaurants", restaurantHandler.Create)
		protected.PUT("/restaurants/:id", restaurantHandler.Update)
		protected.DELETE("/restaurants/:id", restaurantHandler.Delete)

		protected.POST("/food-items", foodItemHandler.Create)
		protected.PUT("/food-items/:id", foodItemHandler.Update)
		protected.DELETE("/food-items/:id", foodItemHandler.Delete)

		protected.POST("/reviews", reviewHandler.Create)
		protected.PUT("/reviews/:id", reviewHandler.Update)
		protected.DELETE("/reviews/:id", reviewHandler.Delete)
	}

	return &Server{
		engine: router,
		db:     db,
	}, nil
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
