package services

import (
	"testing"

	"github.com/davidmodfyi/feather-api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB 每个测试用独立的内存数据库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Distributor{},
		&models.Account{},
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

// fixture 两个经销商、各自的账户/用户/产品
type fixture struct {
	sunshine  models.Distributor
	northwind models.Distributor

	joes     models.Account // sunshine
	fresh    models.Account // sunshine
	miniMart models.Account // northwind

	joesCustomer  models.User // 绑定joes
	freshCustomer models.User // 绑定fresh
	sunshineAdmin models.User

	banana    models.Product // sunshine
	almond    models.Product // sunshine
	sparkling models.Product // northwind
}

func seedFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	f := &fixture{}

	f.sunshine = models.Distributor{Code: "dist001", Name: "Sunshine Distributors", Status: models.DistributorStatusActive}
	f.northwind = models.Distributor{Code: "dist002", Name: "Northwind Wholesalers", Status: models.DistributorStatusActive}
	require.NoError(t, db.Create(&f.sunshine).Error)
	require.NoError(t, db.Create(&f.northwind).Error)

	f.joes = models.Account{DistributorID: f.sunshine.ID, Code: "acct101", Name: "Joe's Grocery", Email: "orders@joes.example.com"}
	f.fresh = models.Account{DistributorID: f.sunshine.ID, Code: "acct102", Name: "Fresh Farm Market", Email: "buyer@freshfarm.example.com"}
	f.miniMart = models.Account{DistributorID: f.northwind.ID, Code: "acct201", Name: "City Mini Mart", Email: "shop@minimart.example.com"}
	require.NoError(t, db.Create(&f.joes).Error)
	require.NoError(t, db.Create(&f.fresh).Error)
	require.NoError(t, db.Create(&f.miniMart).Error)

	f.joesCustomer = newUser(t, db, "joe@joes.example.com", f.sunshine.ID, models.RoleCustomer, &f.joes.ID)
	f.freshCustomer = newUser(t, db, "anna@freshfarm.example.com", f.sunshine.ID, models.RoleCustomer, &f.fresh.ID)
	f.sunshineAdmin = newUser(t, db, "admin@sunshine.example.com", f.sunshine.ID, models.RoleAdmin, nil)

	f.banana = models.Product{DistributorID: f.sunshine.ID, SKU: "BAN001", Name: "Organic Bananas", UnitPrice: 1.99, Category: "Produce"}
	f.almond = models.Product{DistributorID: f.sunshine.ID, SKU: "ALM002", Name: "Almond Milk", UnitPrice: 3.49, Category: "Dairy Alternatives"}
	f.sparkling = models.Product{DistributorID: f.northwind.ID, SKU: "SPK003", Name: "Sparkling Water", UnitPrice: 0.99, Category: "Beverages"}
	require.NoError(t, db.Create(&f.banana).Error)
	require.NoError(t, db.Create(&f.almond).Error)
	require.NoError(t, db.Create(&f.sparkling).Error)

	return f
}

func newUser(t *testing.T, db *gorm.DB, username string, distributorID uint, role string, accountID *uint) models.User {
	t.Helper()
	user := models.User{
		Username:      username,
		DistributorID: distributorID,
		Role:          role,
		AccountID:     accountID,
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(&user).Error)
	return user
}
