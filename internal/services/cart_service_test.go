package services

import (
	"testing"

	"github.com/davidmodfyi/feather-api/internal/models"
	apperrors "github.com/davidmodfyi/feather-api/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddOrUpdateReplacesQuantity(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewCartService(db)

	_, err := svc.AddOrUpdate(f.joesCustomer.ID, f.sunshine.ID, f.banana.ID, 2)
	require.NoError(t, err)

	// 重复添加是替换，不是累加
	_, err = svc.AddOrUpdate(f.joesCustomer.ID, f.sunshine.ID, f.banana.ID, 5)
	require.NoError(t, err)

	lines, err := svc.List(f.joesCustomer.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, "BAN001", lines[0].Product.SKU)
}

func TestAddOrUpdateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewCartService(db)

	_, err := svc.AddOrUpdate(f.joesCustomer.ID, f.sunshine.ID, f.banana.ID, 3)
	require.NoError(t, err)
	_, err = svc.AddOrUpdate(f.joesCustomer.ID, f.sunshine.ID, f.banana.ID, 3)
	require.NoError(t, err)

	lines, err := svc.List(f.joesCustomer.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestAddOrUpdateRejectsInvalidQuantity(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewCartService(db)

	for _, qty := range []int{0, -1} {
		_, err := svc.AddOrUpdate(f.joesCustomer.ID, f.sunshine.ID, f.banana.ID, qty)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	}

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.Zero(t, count)
}

func TestAddOrUpdateRejectsForeignProduct(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewCartService(db)

	// 其他经销商的产品不可见
	_, err := svc.AddOrUpdate(f.joesCustomer.ID, f.sunshine.ID, f.sparkling.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// 不存在的产品
	_, err = svc.AddOrUpdate(f.joesCustomer.ID, f.sunshine.ID, 9999, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateQuantity(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewCartService(db)

	item, err := svc.AddOrUpdate(f.joesCustomer.ID, f.sunshine.ID, f.banana.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity(f.joesCustomer.ID, item.ID, 7))

	lines, err := svc.List(f.joesCustomer.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 7, lines[0].Quantity)

	assert.ErrorIs(t, svc.UpdateQuantity(f.joesCustomer.ID, item.ID, 0), apperrors.ErrInvalidArgument)
	assert.ErrorIs(t, svc.UpdateQuantity(f.joesCustomer.ID, 9999, 2), apperrors.ErrNotFound)
}

func TestRemoveRequiresOwnership(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewCartService(db)

	item, err := svc.AddOrUpdate(f.joesCustomer.ID, f.sunshine.ID, f.banana.ID, 2)
	require.NoError(t, err)

	// 别人的行项目按不存在处理，且不会动到原用户的购物车
	assert.ErrorIs(t, svc.Remove(f.freshCustomer.ID, item.ID), apperrors.ErrNotFound)

	lines, err := svc.List(f.joesCustomer.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	require.NoError(t, svc.Remove(f.joesCustomer.ID, item.ID))
	assert.ErrorIs(t, svc.Remove(f.joesCustomer.ID, item.ID), apperrors.ErrNotFound)
}

func TestUpdateQuantityRequiresOwnership(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewCartService(db)

	item, err := svc.AddOrUpdate(f.joesCustomer.ID, f.sunshine.ID, f.banana.ID, 2)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UpdateQuantity(f.freshCustomer.ID, item.ID, 9), apperrors.ErrNotFound)

	lines, err := svc.List(f.joesCustomer.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestClearIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewCartService(db)

	_, err := svc.AddOrUpdate(f.joesCustomer.ID, f.sunshine.ID, f.banana.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddOrUpdate(f.joesCustomer.ID, f.sunshine.ID, f.almond.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(f.joesCustomer.ID))
	lines, err := svc.List(f.joesCustomer.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	// 空车再清一次是无操作
	require.NoError(t, svc.Clear(f.joesCustomer.ID))
}

func TestListOrderedByItemID(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewCartService(db)

	_, err := svc.AddOrUpdate(f.joesCustomer.ID, f.sunshine.ID, f.almond.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddOrUpdate(f.joesCustomer.ID, f.sunshine.ID, f.banana.ID, 4)
	require.NoError(t, err)

	lines, err := svc.List(f.joesCustomer.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "ALM002", lines[0].Product.SKU)
	assert.Equal(t, "BAN001", lines[1].Product.SKU)
}
