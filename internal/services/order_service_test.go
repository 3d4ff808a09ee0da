package services

import (
	"context"
	"errors"
	"testing"

	"github.com/davidmodfyi/feather-api/internal/models"
	apperrors "github.com/davidmodfyi/feather-api/pkg/errors"
	"github.com/davidmodfyi/feather-api/pkg/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMailer 记录投递过的报表，可配置为失败
type fakeMailer struct {
	sent []*report.OrderReport
	err  error
}

func (m *fakeMailer) SendOrderReport(ctx context.Context, rep *report.OrderReport) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, rep)
	return nil
}

func TestSubmitRejectsEmptyItems(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	m := &fakeMailer{}
	svc := NewOrderService(db, m)

	_, err := svc.Submit(context.Background(), f.joesCustomer.ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = svc.Submit(context.Background(), f.joesCustomer.ID, []OrderLineInput{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	// 没有产生任何订单行
	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
	assert.Empty(t, m.sent)
}

func TestSubmitComputesTotals(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	m := &fakeMailer{}
	svc := NewOrderService(db, m)

	order, err := svc.Submit(context.Background(), f.joesCustomer.ID, []OrderLineInput{
		{ID: f.banana.ID, SKU: "BAN001", Name: "Bananas", Quantity: 2, UnitPrice: 1.99},
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.InDelta(t, 3.98, order.TotalAmount, 0.0001)
	assert.Equal(t, models.OrderStatusSubmitted, order.Status)
	assert.Equal(t, f.joes.ID, order.AccountID)

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 1.99, items[0].UnitPrice, 0.0001)

	// 报表已投递且带上了账户信息
	require.Len(t, m.sent, 1)
	assert.Equal(t, order.ID, m.sent[0].OrderID)
	assert.Equal(t, "Joe's Grocery", m.sent[0].CustomerName)
}

func TestSubmitRejectsInvalidLineQuantity(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewOrderService(db, &fakeMailer{})

	_, err := svc.Submit(context.Background(), f.joesCustomer.ID, []OrderLineInput{
		{SKU: "BAN001", Name: "Bananas", Quantity: 0, UnitPrice: 1.99},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestSubmitClearsCart(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	cart := NewCartService(db)
	svc := NewOrderService(db, &fakeMailer{})

	_, err := cart.AddOrUpdate(f.joesCustomer.ID, f.sunshine.ID, f.banana.ID, 2)
	require.NoError(t, err)
	_, err = cart.AddOrUpdate(f.joesCustomer.ID, f.sunshine.ID, f.almond.ID, 1)
	require.NoError(t, err)

	// 提交的行项目与购物车内容无关，提交后购物车都要清空
	_, err = svc.Submit(context.Background(), f.joesCustomer.ID, []OrderLineInput{
		{SKU: "HNY004", Name: "Wildflower Honey", Quantity: 1, UnitPrice: 6.99},
	})
	require.NoError(t, err)

	lines, err := cart.List(f.joesCustomer.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	// 别人的购物车不受影响
	_, err = cart.AddOrUpdate(f.freshCustomer.ID, f.sunshine.ID, f.banana.ID, 3)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), f.joesCustomer.ID, []OrderLineInput{
		{SKU: "BAN001", Name: "Bananas", Quantity: 1, UnitPrice: 1.99},
	})
	require.NoError(t, err)

	otherLines, err := cart.List(f.freshCustomer.ID)
	require.NoError(t, err)
	assert.Len(t, otherLines, 1)
}

func TestSubmitNotificationFailureKeepsOrder(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	cart := NewCartService(db)
	m := &fakeMailer{err: errors.New("smtp unreachable")}
	svc := NewOrderService(db, m)

	_, err := cart.AddOrUpdate(f.joesCustomer.ID, f.sunshine.ID, f.banana.ID, 2)
	require.NoError(t, err)

	order, err := svc.Submit(context.Background(), f.joesCustomer.ID, []OrderLineInput{
		{SKU: "BAN001", Name: "Bananas", Quantity: 2, UnitPrice: 1.99},
	})

	// 通知失败是补偿策略：报错但订单保留，购物车照常清空
	assert.ErrorIs(t, err, apperrors.ErrNotificationFailed)
	require.NotNil(t, order)

	var persisted models.Order
	require.NoError(t, db.First(&persisted, order.ID).Error)
	assert.InDelta(t, 3.98, persisted.TotalAmount, 0.0001)

	lines, err := cart.List(f.joesCustomer.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestSubmitRequiresBoundAccount(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewOrderService(db, &fakeMailer{})

	// 管理员没有绑定账户，不能下单
	_, err := svc.Submit(context.Background(), f.sunshineAdmin.ID, []OrderLineInput{
		{SKU: "BAN001", Name: "Bananas", Quantity: 1, UnitPrice: 1.99},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func submitOrder(t *testing.T, svc *OrderService, userID uint, sku string) *models.Order {
	t.Helper()
	order, err := svc.Submit(context.Background(), userID, []OrderLineInput{
		{SKU: sku, Name: sku, Quantity: 1, UnitPrice: 2.50},
	})
	require.NoError(t, err)
	return order
}

func TestListOrdersScopedByRole(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewOrderService(db, &fakeMailer{})

	joesOrder := submitOrder(t, svc, f.joesCustomer.ID, "BAN001")
	freshOrder := submitOrder(t, svc, f.freshCustomer.ID, "ALM002")

	// 管理员看到全经销商的订单
	orders, total, err := svc.ListOrders(f.sunshine.ID, models.RoleAdmin, nil, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, orders, 2)

	// 客户只看到自己账户的订单
	orders, total, err = svc.ListOrders(f.sunshine.ID, models.RoleCustomer, &f.joes.ID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, orders, 1)
	assert.Equal(t, joesOrder.ID, orders[0].ID)

	// 其他经销商什么都看不到
	orders, total, err = svc.ListOrders(f.northwind.ID, models.RoleAdmin, nil, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, orders)

	_ = freshOrder
}

func TestListOrderItemsOwnership(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewOrderService(db, &fakeMailer{})

	order := submitOrder(t, svc, f.joesCustomer.ID, "BAN001")

	items, err := svc.ListOrderItems(order.ID, f.sunshine.ID, models.RoleCustomer, &f.joes.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "BAN001", items[0].SKU)

	// 其他账户的客户按不存在处理
	_, err = svc.ListOrderItems(order.ID, f.sunshine.ID, models.RoleCustomer, &f.fresh.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// 其他经销商的管理员同样不可见
	_, err = svc.ListOrderItems(order.ID, f.northwind.ID, models.RoleAdmin, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// 不存在的订单
	_, err = svc.ListOrderItems(9999, f.sunshine.ID, models.RoleAdmin, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
