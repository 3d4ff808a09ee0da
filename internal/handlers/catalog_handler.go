package handlers

import (
	"github.com/davidmodfyi/feather-api/internal/middleware"
	"github.com/davidmodfyi/feather-api/internal/services"
	"github.com/davidmodfyi/feather-api/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Items 当前经销商的产品列表
func (h *CatalogHandler) Items(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	products := h.catalogService.ListProducts(sess.DistributorID)
	response.Success(c, products)
}

// Accounts 账户列表，按角色决定可见范围
func (h *CatalogHandler) Accounts(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	accounts := h.catalogService.ListAccounts(sess.DistributorID, sess.Role, sess.AccountID)
	response.Success(c, accounts)
}
