package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/davidmodfyi/feather-api/internal/models"
	apperrors "github.com/davidmodfyi/feather-api/pkg/errors"

	"gorm.io/gorm"
)

// UserService 登录校验与账户开通
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Authenticate 按用户名+密码校验登录。
// 用户不存在和密码错误返回同一个错误，不区分
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).
		Preload("Distributor").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("lookup user: %v", err)
	}

	if !user.CheckPassword(password) {
		return nil, apperrors.ErrUnauthenticated
	}
	return &user, nil
}

// GetByID 根据ID获取用户
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Distributor").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ConnectAccount 管理员给门店账户开通登录：
// 生成6位数字口令，创建绑定该账户的Customer用户。
// 口令只在这里返回一次，由管理员线下交付，长期有效直到修改
func (s *UserService) ConnectAccount(distributorID, accountID uint, email string) (string, error) {
	// 账户必须存在且属于当前经销商
	var account models.Account
	err := s.db.Where("id = ? AND distributor_id = ?", accountID, distributorID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("lookup account: %v", err)
	}

	// 用户名（邮箱）必须未被占用
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", email).Count(&count).Error; err != nil {
		return "", fmt.Errorf("check username: %v", err)
	}
	if count > 0 {
		return "", apperrors.ErrAlreadyExists
	}

	credential, err := generateCredential()
	if err != nil {
		return "", fmt.Errorf("generate credential: %v", err)
	}

	user := &models.User{
		Username:      email,
		DistributorID: distributorID,
		Role:          models.RoleCustomer,
		AccountID:     &account.ID,
	}
	if err := user.SetPassword(credential); err != nil {
		return "", fmt.Errorf("hash credential: %v", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		// 并发开通撞到唯一索引也按已存在处理
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", apperrors.ErrAlreadyExists
		}
		return "", fmt.Errorf("create user: %v", err)
	}

	return credential, nil
}

// generateCredential 生成6位数字口令
func generateCredential() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
