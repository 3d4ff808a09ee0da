package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davidmodfyi/feather-api/internal/models"
	apperrors "github.com/davidmodfyi/feather-api/pkg/errors"
	"github.com/davidmodfyi/feather-api/pkg/logger"
	"github.com/davidmodfyi/feather-api/pkg/mailer"
	"github.com/davidmodfyi/feather-api/pkg/report"

	"gorm.io/gorm"
)

// OrderService 订单提交与查询
type OrderService struct {
	db     *gorm.DB
	mailer mailer.Mailer
}

func NewOrderService(db *gorm.DB, m mailer.Mailer) *OrderService {
	return &OrderService{db: db, mailer: m}
}

// OrderLineInput 提交订单的行项目。
// 价格和数量来自客户端请求体，不从服务端购物车重新推导，
// 前端依赖这个合同，不要擅自改成以购物车为准
type OrderLineInput struct {
	ID        uint    `json:"id"`
	SKU       string  `json:"sku" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	UnitPrice float64 `json:"unitPrice" binding:"gte=0"`
}

// Submit 提交订单。Order与OrderItem在同一事务中落库；
// 报表邮件在事务提交后发送，发送失败返回ErrNotificationFailed但订单保留
func (s *OrderService) Submit(ctx context.Context, userID uint, lines []OrderLineInput) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, apperrors.ErrInvalidArgument
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, apperrors.ErrInvalidArgument
		}
	}

	// 解析下单用户及其绑定账户
	var user models.User
	err := s.db.Preload("Account").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("lookup user: %v", err)
	}
	if user.AccountID == nil || user.Account == nil {
		return nil, apperrors.ErrInvalidArgument
	}
	account := user.Account

	// 计算合计并组装订单
	var total float64
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		total += float64(line.Quantity) * line.UnitPrice
		var productID *uint
		if line.ID != 0 {
			id := line.ID
			productID = &id
		}
		items = append(items, models.OrderItem{
			ProductID: productID,
			SKU:       line.SKU,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	order := &models.Order{
		UserID:      userID,
		AccountID:   *user.AccountID,
		OrderDate:   time.Now(),
		TotalAmount: total,
		Status:      models.OrderStatusSubmitted,
	}

	// Order和全部OrderItem要么同时存在要么都不存在
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("persist order: %v", err)
	}
	order.Items = items

	// 订单已提交，购物车随之清空。清空失败不影响订单结果
	if err := s.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		logger.GetLogger().Errorf("clear cart after order %d failed: %v", order.ID, err)
	}

	// 事务已提交，通知失败走补偿策略而不是回滚
	if err := s.dispatchReport(ctx, order, account, lines); err != nil {
		logger.GetLogger().Errorf("order %d report dispatch failed: %v", order.ID, err)
		return order, apperrors.ErrNotificationFailed
	}

	return order, nil
}

// dispatchReport 生成CSV报表并投递给运营邮箱
func (s *OrderService) dispatchReport(ctx context.Context, order *models.Order, account *models.Account, lines []OrderLineInput) error {
	if s.mailer == nil {
		return nil
	}

	rep := &report.OrderReport{
		OrderID:       order.ID,
		OrderDate:     order.OrderDate,
		CustomerID:    account.ID,
		CustomerName:  account.Name,
		CustomerEmail: account.Email,
	}
	for _, line := range lines {
		rep.Lines = append(rep.Lines, report.Line{
			SKU:       line.SKU,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	return s.mailer.SendOrderReport(ctx, rep)
}

// ListOrders 订单历史。管理员看全经销商，客户只看自己账户的订单
func (s *OrderService) ListOrders(distributorID uint, role string, accountID *uint, page, pageSize int) ([]*models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).
		Joins("JOIN accounts ON accounts.id = orders.account_id").
		Where("accounts.distributor_id = ?", distributorID)
	if role != models.RoleAdmin {
		if accountID == nil {
			return []*models.Order{}, 0, nil
		}
		query = query.Where("orders.account_id = ?", *accountID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %v", err)
	}

	var orders []*models.Order
	offset := (page - 1) * pageSize
	err := query.Preload("Account").
		Order("orders.id DESC").
		Offset(offset).Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %v", err)
	}
	return orders, total, nil
}

// ListOrderItems 订单行项目，越权访问一律按不存在处理
func (s *OrderService) ListOrderItems(orderID, distributorID uint, role string, accountID *uint) ([]*models.OrderItem, error) {
	var order models.Order
	err := s.db.Preload("Account").First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("lookup order: %v", err)
	}

	// 同经销商才可见；客户还必须是订单所属账户
	if order.Account == nil || order.Account.DistributorID != distributorID {
		return nil, apperrors.ErrNotFound
	}
	if role != models.RoleAdmin {
		if accountID == nil || order.AccountID != *accountID {
			return nil, apperrors.ErrNotFound
		}
	}

	var items []*models.OrderItem
	if err := s.db.Where("order_id = ?", orderID).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list order items: %v", err)
	}
	return items, nil
}
