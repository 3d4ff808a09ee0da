package services

import (
	"errors"
	"fmt"

	"github.com/davidmodfyi/feather-api/internal/models"
	apperrors "github.com/davidmodfyi/feather-api/pkg/errors"

	"gorm.io/gorm"
)

// CartService 购物车操作。
// 同一用户并发写同一产品为最后写入生效，应用层不做串行化
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// CartLine 购物车行：行ID + 数量 + 产品快照
type CartLine struct {
	CartItemID uint           `json:"cart_item_id"`
	Quantity   int            `json:"quantity"`
	Product    models.Product `json:"product"`
}

// List 用户购物车内容，按行项目ID排序
func (s *CartService) List(userID uint) ([]CartLine, error) {
	var items []models.CartItem
	err := s.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list cart: %v", err)
	}

	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		line := CartLine{
			CartItemID: item.ID,
			Quantity:   item.Quantity,
		}
		if item.Product != nil {
			line.Product = *item.Product
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// AddOrUpdate 加入购物车。同一(user, product)已存在时覆盖数量，
// 不做累加,重复添加是替换语义
func (s *CartService) AddOrUpdate(userID, distributorID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, apperrors.ErrInvalidArgument
	}

	// 产品必须存在且属于当前经销商
	var product models.Product
	err := s.db.Where("id = ? AND distributor_id = ?", productID, distributorID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("lookup product: %v", err)
	}

	var item models.CartItem
	err = s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err == nil {
		if err := s.db.Model(&item).Update("quantity", quantity).Error; err != nil {
			return nil, fmt.Errorf("update cart item: %v", err)
		}
		item.Quantity = quantity
		return &item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup cart item: %v", err)
	}

	item = models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create cart item: %v", err)
	}
	return &item, nil
}

// UpdateQuantity 修改行项目数量，行必须属于当前用户
func (s *CartService) UpdateQuantity(userID, itemID uint, quantity int) error {
	if quantity < 1 {
		return apperrors.ErrInvalidArgument
	}

	result := s.db.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("quantity", quantity)
	if result.Error != nil {
		return fmt.Errorf("update cart item: %v", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Remove 删除行项目，行不存在或不属于当前用户都按不存在处理
func (s *CartService) Remove(userID, itemID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return fmt.Errorf("remove cart item: %v", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Clear 清空用户购物车，空车时为无操作
func (s *CartService) Clear(userID uint) error {
	err := s.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("clear cart: %v", err)
	}
	return nil
}
