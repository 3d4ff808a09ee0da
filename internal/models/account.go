package models

// Account 客户门店账户，归属且仅归属一个经销商
type Account struct {
	BaseModel
	DistributorID uint   `json:"distributor_id" gorm:"not null;index"`
	Code          string `json:"code" gorm:"unique;not null;size:50;index"`
	Name          string `json:"name" gorm:"not null;size:200"`
	Address1      string `json:"address1" gorm:"size:200"`
	Address2      string `json:"address2" gorm:"size:200"`
	City          string `json:"city" gorm:"size:100"`
	State         string `json:"state" gorm:"size:50"`
	Zip           string `json:"zip" gorm:"size:20"`
	PriceLevel    string `json:"price_level" gorm:"size:20"`
	PaymentTerms  string `json:"payment_terms" gorm:"size:50"`
	Email         string `json:"email" gorm:"size:200"`

	Distributor *Distributor `json:"distributor,omitempty" gorm:"foreignKey:DistributorID"`
}

// TableName 表名
func (a *Account) TableName() string {
	return "accounts"
}
