package handlers

import (
	"errors"

	"github.com/davidmodfyi/feather-api/internal/middleware"
	"github.com/davidmodfyi/feather-api/internal/services"
	apperrors "github.com/davidmodfyi/feather-api/pkg/errors"
	"github.com/davidmodfyi/feather-api/pkg/logger"
	"github.com/davidmodfyi/feather-api/pkg/response"
	"github.com/davidmodfyi/feather-api/pkg/session"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService *services.UserService
	sessions    *session.Manager
}

func NewAuthHandler(userService *services.UserService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 用户登录，建立服务端会话并下发Cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username and password are required")
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			response.Unauthorized(c, "Invalid username or password")
			return
		}
		logger.GetLogger().Errorf("login failed for %s: %v", req.Username, err)
		response.ServerError(c, "Login failed")
		return
	}

	distributorName := ""
	if user.Distributor != nil {
		distributorName = user.Distributor.Name
	}

	sess := &session.Session{
		UserID:          user.ID,
		Username:        user.Username,
		DistributorID:   user.DistributorID,
		DistributorName: distributorName,
		Role:            user.Role,
		AccountID:       user.AccountID,
	}
	if err := h.sessions.Start(c, sess); err != nil {
		logger.GetLogger().Errorf("start session for user %d failed: %v", user.ID, err)
		response.ServerError(c, "Login failed")
		return
	}

	response.Success(c, gin.H{
		"status":          "logged_in",
		"user_id":         user.ID,
		"distributorName": distributorName,
		"userType":        user.Role,
	})
}

// Logout 销毁会话并清除Cookie，无会话时也算登出成功
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Destroy(c); err != nil {
		logger.GetLogger().Errorf("destroy session failed: %v", err)
		response.ServerError(c, "Logout failed")
		return
	}

	response.Success(c, gin.H{"status": "logged_out"})
}

// Me 当前登录身份
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	response.Success(c, gin.H{
		"user_id":         sess.UserID,
		"username":        sess.Username,
		"distributorId":   sess.DistributorID,
		"distributorName": sess.DistributorName,
		"userType":        sess.Role,
		"accountId":       sess.AccountID,
	})
}
