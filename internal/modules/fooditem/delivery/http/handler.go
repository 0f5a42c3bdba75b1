package handler

import (
	"net/http"
	"strconv"

	"bitescout.app/bitescout/internal/modules/fooditem/dto"
	fooditem "bitescout.app/bitescout/internal/modules/fooditem/service"
	"bitescout.app/bitescout/pkg/apperror"
	"bitescout.app/bitescout/pkg/response"
	"bitescout.app/bitescout/pkg/validator"
	"github.com/gin-gonic/gin"
)

type FoodItemHandler struct {
	service fooditem.FoodItemService
}

func NewFoodItemHandler(service fooditem.FoodItemService) *FoodItemHandler {
	return &FoodItemHandler{service: service}
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.New(http.StatusBadRequest, "invalid id", apperror.ErrValidation)
	}
	return uint(id), nil
}

func (h *FoodItemHandler) Create(c *gin.Context) {
	var req dto.CreateFoodItemRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	image, _ := c.FormFile("image")

	item, err := h.service.Create(c.Request.Context(), req, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"food_item": item})
}

func (h *FoodItemHandler) GetAll(c *gin.Context) {
	items, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"food_items": items})
}

func (h *FoodItemHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"food_item": item})
}

func (h *FoodItemHandler) GetByRestaurant(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.service.GetByRestaurant(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"food_items": items})
}

func (h *FoodItemHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateFoodItemRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	image, _ := c.FormFile("image")

	item, err := h.service.Update(c.Request.Context(), id, req, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"food_item": item})
}

func (h *FoodItemHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "food item deleted successfully"})
}
