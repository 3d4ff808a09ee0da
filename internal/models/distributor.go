package models

// Distributor 经销商（租户）模型 - 贫血模型，只包含数据结构
type Distributor struct {
	BaseModel
	Code   string `json:"code" gorm:"unique;not null;size:50;index"`
	Name   string `json:"name" gorm:"not null;size:100"`
	Status string `json:"status" gorm:"default:'active';size:20"`
}

// TableName 表名
func (d *Distributor) TableName() string {
	return "distributors"
}

// 经销商状态常量
const (
	DistributorStatusActive   = "active"
	DistributorStatusInactive = "inactive"
)
