package models

// CartItem 购物车行项目。(user_id, product_id)唯一；数量永远≥1，
// 清零语义通过删除行实现，不落库0
type CartItem struct {
	BaseModel
	UserID    uint `json:"user_id" gorm:"not null;index;index:idx_cart_user_product,unique"`
	ProductID uint `json:"product_id" gorm:"not null;index:idx_cart_user_product,unique"`
	Quantity  int  `json:"quantity" gorm:"not null"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName 表名
func (ci *CartItem) TableName() string {
	return "cart_items"
}
