package handlers

import (
	"errors"

	"github.com/davidmodfyi/feather-api/internal/middleware"
	"github.com/davidmodfyi/feather-api/internal/services"
	apperrors "github.com/davidmodfyi/feather-api/pkg/errors"
	"github.com/davidmodfyi/feather-api/pkg/logger"
	"github.com/davidmodfyi/feather-api/pkg/response"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	userService *services.UserService
}

func NewAccountHandler(userService *services.UserService) *AccountHandler {
	return &AccountHandler{userService: userService}
}

type ConnectAccountRequest struct {
	AccountID uint   `json:"accountId" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

// Connect 给门店账户开通Customer登录（仅管理员）。
// 生成的口令只在响应里出现一次，由管理员线下交付
func (h *AccountHandler) Connect(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req ConnectAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "accountId and a valid email are required")
		return
	}

	credential, err := h.userService.ConnectAccount(sess.DistributorID, req.AccountID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			response.NotFound(c, "Account not found")
		case errors.Is(err, apperrors.ErrAlreadyExists):
			response.Conflict(c, "A user with this email already exists")
		default:
			logger.GetLogger().Errorf("connect account %d failed: %v", req.AccountID, err)
			response.ServerError(c, "Failed to connect account")
		}
		return
	}

	response.Success(c, gin.H{
		"status":     "connected",
		"account_id": req.AccountID,
		"username":   req.Email,
		"credential": credential,
	})
}
