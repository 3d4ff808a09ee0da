package models

import (
	"time"
)

// Order 订单。与OrderItem在同一事务中创建，total_amount为提交时点的快照
type Order struct {
	BaseModel
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	AccountID   uint      `json:"account_id" gorm:"not null;index"`
	OrderDate   time.Time `json:"order_date" gorm:"not null"`
	TotalAmount float64   `json:"total_amount" gorm:"not null"`
	Status      string    `json:"status" gorm:"not null;size:20"`

	User    *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Account *Account    `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	Items   []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// TableName 表名
func (o *Order) TableName() string {
	return "orders"
}

// 订单状态常量
const (
	OrderStatusSubmitted = "Submitted"
)

// OrderItem 订单行项目，单价为提交时点快照，创建后不再变更
type OrderItem struct {
	BaseModel
	OrderID   uint    `json:"order_id" gorm:"not null;index"`
	ProductID *uint   `json:"product_id" gorm:"index"`
	SKU       string  `json:"sku" gorm:"not null;size:50"`
	Name      string  `json:"name" gorm:"not null;size:200"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unit_price" gorm:"not null"`
}

// TableName 表名
func (oi *OrderItem) TableName() string {
	return "order_items"
}

// LineTotal 行小计
func (oi *OrderItem) LineTotal() float64 {
	return float64(oi.Quantity) * oi.UnitPrice
}
