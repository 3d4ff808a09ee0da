package handlers

import (
	"errors"
	"strconv"

	"github.com/davidmodfyi/feather-api/internal/middleware"
	"github.com/davidmodfyi/feather-api/internal/services"
	apperrors "github.com/davidmodfyi/feather-api/pkg/errors"
	"github.com/davidmodfyi/feather-api/pkg/logger"
	"github.com/davidmodfyi/feather-api/pkg/response"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type AddCartItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// List 购物车内容
func (h *CartHandler) List(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	lines, err := h.cartService.List(sess.UserID)
	if err != nil {
		logger.GetLogger().Errorf("list cart for user %d failed: %v", sess.UserID, err)
		response.ServerError(c, "Failed to load cart")
		return
	}
	response.Success(c, lines)
}

// Add 加入购物车（重复添加覆盖数量）
func (h *CartHandler) Add(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "productId and a quantity of at least 1 are required")
		return
	}

	item, err := h.cartService.AddOrUpdate(sess.UserID, sess.DistributorID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidArgument):
			response.BadRequest(c, "quantity must be at least 1")
		case errors.Is(err, apperrors.ErrNotFound):
			response.NotFound(c, "Product not found")
		default:
			logger.GetLogger().Errorf("add cart item for user %d failed: %v", sess.UserID, err)
			response.ServerError(c, "Failed to update cart")
		}
		return
	}

	response.Success(c, item)
}

// Update 修改行项目数量
func (h *CartHandler) Update(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid item id")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "a quantity of at least 1 is required")
		return
	}

	if err := h.cartService.UpdateQuantity(sess.UserID, uint(itemID), req.Quantity); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidArgument):
			response.BadRequest(c, "quantity must be at least 1")
		case errors.Is(err, apperrors.ErrNotFound):
			response.NotFound(c, "Cart item not found")
		default:
			logger.GetLogger().Errorf("update cart item %d for user %d failed: %v", itemID, sess.UserID, err)
			response.ServerError(c, "Failed to update cart")
		}
		return
	}

	response.Success(c, gin.H{"status": "updated"})
}

// Remove 删除行项目
func (h *CartHandler) Remove(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid item id")
		return
	}

	if err := h.cartService.Remove(sess.UserID, uint(itemID)); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Cart item not found")
			return
		}
		logger.GetLogger().Errorf("remove cart item %d for user %d failed: %v", itemID, sess.UserID, err)
		response.ServerError(c, "Failed to update cart")
		return
	}

	response.Success(c, gin.H{"status": "removed"})
}

// Clear 清空购物车
func (h *CartHandler) Clear(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.cartService.Clear(sess.UserID); err != nil {
		logger.GetLogger().Errorf("clear cart for user %d failed: %v", sess.UserID, err)
		response.ServerError(c, "Failed to clear cart")
		return
	}

	response.Success(c, gin.H{"status": "cleared"})
}
