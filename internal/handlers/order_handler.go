package handlers

import (
	"errors"
	"strconv"

	"github.com/davidmodfyi/feather-api/internal/middleware"
	"github.com/davidmodfyi/feather-api/internal/services"
	apperrors "github.com/davidmodfyi/feather-api/pkg/errors"
	"github.com/davidmodfyi/feather-api/pkg/logger"
	"github.com/davidmodfyi/feather-api/pkg/pagination"
	"github.com/davidmodfyi/feather-api/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type SubmitOrderRequest struct {
	Items []services.OrderLineInput `json:"items"`
}

// Submit 提交订单
func (h *OrderHandler) Submit(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErr, ok := err.(validator.ValidationErrors); ok {
			response.BadRequest(c, "invalid order line: "+validationErr.Error())
			return
		}
		response.BadRequest(c, "invalid request body")
		return
	}

	order, err := h.orderService.Submit(c.Request.Context(), sess.UserID, req.Items)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotificationFailed):
			// 订单已落库，报表投递失败走补偿策略：如实上报但不算下单失败
			response.Success(c, gin.H{
				"status":       "submitted",
				"success":      true,
				"order_id":     order.ID,
				"notification": "failed",
			})
		case errors.Is(err, apperrors.ErrInvalidArgument):
			response.BadRequest(c, "order must contain at least one item")
		case errors.Is(err, apperrors.ErrNotFound):
			response.NotFound(c, "User not found")
		default:
			logger.GetLogger().Errorf("submit order for user %d failed: %v", sess.UserID, err)
			response.ServerError(c, "Failed to submit order")
		}
		return
	}

	response.Success(c, gin.H{
		"status":       "submitted",
		"success":      true,
		"order_id":     order.ID,
		"notification": "sent",
	})
}

// List 订单历史（分页）
func (h *OrderHandler) List(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	params := pagination.ParsePageParams(c)
	orders, total, err := h.orderService.ListOrders(
		sess.DistributorID, sess.Role, sess.AccountID, params.Page, params.PageSize)
	if err != nil {
		logger.GetLogger().Errorf("list orders for user %d failed: %v", sess.UserID, err)
		response.ServerError(c, "Failed to load orders")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, orders, pageInfo)
}

// Items 订单行项目
func (h *OrderHandler) Items(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid order id")
		return
	}

	items, err := h.orderService.ListOrderItems(
		uint(orderID), sess.DistributorID, sess.Role, sess.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Order not found")
			return
		}
		logger.GetLogger().Errorf("list order %d items failed: %v", orderID, err)
		response.ServerError(c, "Failed to load order items")
		return
	}

	response.Success(c, items)
}
