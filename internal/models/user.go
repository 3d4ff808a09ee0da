package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User 用户模型。Customer必须绑定account_id，Admin可以不绑定
type User struct {
	BaseModel
	Username      string `json:"username" gorm:"unique;not null;size:100;index"`
	PasswordHash  string `json:"-" gorm:"not null;size:255"`
	DistributorID uint   `json:"distributor_id" gorm:"not null;index"`
	Role          string `json:"role" gorm:"not null;size:20"`
	AccountID     *uint  `json:"account_id" gorm:"index"`

	Distributor *Distributor `json:"distributor,omitempty" gorm:"foreignKey:DistributorID"`
	Account     *Account     `json:"account,omitempty" gorm:"foreignKey:AccountID"`
}

// TableName 表名
func (u *User) TableName() string {
	return "users"
}

// 用户角色常量
const (
	RoleAdmin    = "Admin"
	RoleCustomer = "Customer"
)

// SetPassword 设置密码 - 数据操作方法
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码 - 数据操作方法
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
