package main

import (
	"fmt"

	"github.com/davidmodfyi/feather-api/internal/database"
	"github.com/davidmodfyi/feather-api/internal/models"
	"github.com/davidmodfyi/feather-api/pkg/logger"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// seedData 初始化种子数据
func seedData() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	db := database.GetDB()

	// 1. 创建经销商
	if err := seedDistributors(db); err != nil {
		return fmt.Errorf("seed distributors: %v", err)
	}

	// 2. 创建门店账户
	if err := seedAccounts(db); err != nil {
		return fmt.Errorf("seed accounts: %v", err)
	}

	// 3. 创建产品目录
	if err := seedProducts(db); err != nil {
		return fmt.Errorf("seed products: %v", err)
	}

	// 4. 创建每个经销商的管理员用户
	if err := seedAdminUsers(db); err != nil {
		return fmt.Errorf("seed admin users: %v", err)
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

// seedDistributors 创建经销商，已存在则跳过
func seedDistributors(db *gorm.DB) error {
	distributors := []models.Distributor{
		{Code: "dist001", Name: "Sunshine Distributors", Status: models.DistributorStatusActive},
		{Code: "dist002", Name: "Northwind Wholesalers", Status: models.DistributorStatusActive},
	}

	for _, d := range distributors {
		var count int64
		db.Model(&models.Distributor{}).Where("code = ?", d.Code).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&d).Error; err != nil {
			return err
		}
		logger.GetLogger().Infof("Seeded distributor %s", d.Code)
	}
	return nil
}

func distributorIDByCode(db *gorm.DB, code string) (uint, error) {
	var d models.Distributor
	if err := db.Where("code = ?", code).First(&d).Error; err != nil {
		return 0, err
	}
	return d.ID, nil
}

// seedAccounts 创建门店账户，已存在则跳过
func seedAccounts(db *gorm.DB) error {
	dist001, err := distributorIDByCode(db, "dist001")
	if err != nil {
		return err
	}
	dist002, err := distributorIDByCode(db, "dist002")
	if err != nil {
		return err
	}

	accounts := []models.Account{
		{
			DistributorID: dist001, Code: "acct101", Name: "Joe's Grocery",
			Address1: "18 Birch St", City: "Portland", State: "OR", Zip: "97201",
			PriceLevel: "A", PaymentTerms: "NET30", Email: "orders@joesgrocery.example.com",
		},
		{
			DistributorID: dist001, Code: "acct102", Name: "Fresh Farm Market",
			Address1: "240 Orchard Ave", City: "Salem", State: "OR", Zip: "97301",
			PriceLevel: "B", PaymentTerms: "NET15", Email: "buyer@freshfarm.example.com",
		},
		{
			DistributorID: dist002, Code: "acct201", Name: "City Mini Mart",
			Address1: "77 Pine Rd", City: "Seattle", State: "WA", Zip: "98101",
			PriceLevel: "A", PaymentTerms: "COD", Email: "shop@cityminimart.example.com",
		},
	}

	for _, a := range accounts {
		var count int64
		db.Model(&models.Account{}).Where("code = ?", a.Code).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&a).Error; err != nil {
			return err
		}
		logger.GetLogger().Infof("Seeded account %s", a.Code)
	}
	return nil
}

// seedProducts 创建产品目录，已存在则跳过
func seedProducts(db *gorm.DB) error {
	dist001, err := distributorIDByCode(db, "dist001")
	if err != nil {
		return err
	}
	dist002, err := distributorIDByCode(db, "dist002")
	if err != nil {
		return err
	}

	products := []models.Product{
		{DistributorID: dist001, SKU: "BAN001", Name: "Organic Bananas", UnitPrice: 1.99, Category: "Produce",
			Attributes: datatypes.JSON([]byte(`{"origin":"Ecuador","organic":true}`))},
		{DistributorID: dist001, SKU: "ALM002", Name: "Almond Milk", UnitPrice: 3.49, Category: "Dairy Alternatives",
			Attributes: datatypes.JSON([]byte(`{"size_oz":32}`))},
		{DistributorID: dist001, SKU: "GRN003", Name: "Granola Clusters", UnitPrice: 4.29, Category: "Breakfast"},
		{DistributorID: dist001, SKU: "HNY004", Name: "Wildflower Honey", UnitPrice: 6.99, Category: "Pantry"},
		{DistributorID: dist002, SKU: "SPK003", Name: "Sparkling Water", UnitPrice: 0.99, Category: "Beverages",
			Attributes: datatypes.JSON([]byte(`{"size_oz":12,"carbonated":true}`))},
		{DistributorID: dist002, SKU: "CHP005", Name: "Kettle Chips", UnitPrice: 2.79, Category: "Snacks"},
		{DistributorID: dist002, SKU: "SAL006", Name: "Garden Salsa", UnitPrice: 3.19, Category: "Pantry"},
	}

	for _, p := range products {
		var count int64
		db.Model(&models.Product{}).
			Where("distributor_id = ? AND sku = ?", p.DistributorID, p.SKU).
			Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			return err
		}
		logger.GetLogger().Infof("Seeded product %s", p.SKU)
	}
	return nil
}

// seedAdminUsers 创建每个经销商的默认管理员
func seedAdminUsers(db *gorm.DB) error {
	admins := []struct {
		username string
		distCode string
		password string
	}{
		{username: "admin@sunshine.example.com", distCode: "dist001", password: "sunshine-admin"},
		{username: "admin@northwind.example.com", distCode: "dist002", password: "northwind-admin"},
	}

	for _, a := range admins {
		var count int64
		db.Model(&models.User{}).Where("username = ?", a.username).Count(&count)
		if count > 0 {
			continue
		}

		distID, err := distributorIDByCode(db, a.distCode)
		if err != nil {
			return err
		}

		user := &models.User{
			Username:      a.username,
			DistributorID: distID,
			Role:          models.RoleAdmin,
		}
		if err := user.SetPassword(a.password); err != nil {
			return err
		}
		if err := db.Create(user).Error; err != nil {
			return err
		}
		logger.GetLogger().Infof("Seeded admin user %s", a.username)
	}
	return nil
}
