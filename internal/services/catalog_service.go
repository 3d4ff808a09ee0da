package services

import (
	"github.com/davidmodfyi/feather-api/internal/models"
	"github.com/davidmodfyi/feather-api/pkg/logger"

	"gorm.io/gorm"
)

// CatalogService 经销商范围的产品/账户查询
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListProducts 当前经销商的产品列表。
// 列表读失败降级为空结果，只记日志不报错
func (s *CatalogService) ListProducts(distributorID uint) []*models.Product {
	var products []*models.Product
	err := s.db.Where("distributor_id = ?", distributorID).
		Order("sku").
		Find(&products).Error
	if err != nil {
		logger.GetLogger().Errorf("list products for distributor %d failed: %v", distributorID, err)
		return []*models.Product{}
	}
	return products
}

// ListAccounts 账户列表。管理员看全经销商，客户只看自己绑定的账户
func (s *CatalogService) ListAccounts(distributorID uint, role string, accountID *uint) []*models.Account {
	query := s.db.Where("distributor_id = ?", distributorID)
	if role != models.RoleAdmin {
		if accountID == nil {
			return []*models.Account{}
		}
		query = query.Where("id = ?", *accountID)
	}

	var accounts []*models.Account
	if err := query.Order("name").Find(&accounts).Error; err != nil {
		logger.GetLogger().Errorf("list accounts for distributor %d failed: %v", distributorID, err)
		return []*models.Account{}
	}
	return accounts
}
