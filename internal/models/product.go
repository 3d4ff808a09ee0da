package models

import (
	"gorm.io/datatypes"
)

// Product 产品模型，按经销商隔离
type Product struct {
	BaseModel
	DistributorID uint           `json:"distributor_id" gorm:"not null;index;index:idx_products_dist_sku,unique"`
	Name          string         `json:"name" gorm:"not null;size:200"`
	SKU           string         `json:"sku" gorm:"not null;size:50;index:idx_products_dist_sku,unique"`
	UnitPrice     float64        `json:"unitPrice" gorm:"not null"`
	Category      string         `json:"category" gorm:"size:100"`
	Attributes    datatypes.JSON `json:"attributes,omitempty"` // 种子数据里经销商各自的附加列

	Distributor *Distributor `json:"distributor,omitempty" gorm:"foreignKey:DistributorID"`
}

// TableName 表名
func (p *Product) TableName() string {
	return "products"
}
