package repository

import (
	"context"
	"testing"

	"inventory-management/internal/domain"
	apperrors "inventory-management/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type productFixture struct {
	products  *ProductStore
	suppliers *SupplierStore
	supplier  *domain.Supplier
}

func newProductFixture(t *testing.T) productFixture {
	t.Helper()
	db := newTestDB(t)
	suppliers := NewSupplierStore(db, zap.NewNop(), nil)
	return productFixture{
		products:  NewProductStore(db, zap.NewNop(), nil),
		suppliers: suppliers,
		supplier:  saveSupplier(t, suppliers, "Acme", rating("4.5")),
	}
}

func (f productFixture) save(t *testing.T, name, code, category string, stock, reorder int) *domain.Product {
	t.Helper()
	p := domain.NewProduct(name, category, decimal.RequireFromString("9.99"), f.supplier.ID)
	p.Code = domain.OptionalString(code)
	p.StockQuantity = stock
	p.ReorderLevel = reorder
	saved, err := f.products.Save(context.Background(), p)
	require.NoError(t, err)
	return saved
}

func names(views []domain.ProductView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Name)
	}
	return out
}

func TestProductStore_SaveAndFindByID(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	p := f.save(t, "Widget", "W-1", "Tools", 5, 10)

	assert.Equal(t, int64(1), p.ID)

	found, err := f.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	got, ok := found.Get()
	require.True(t, ok)

	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, domain.Some("W-1"), got.Code)
	assert.Equal(t, "Tools", got.Category)
	assert.True(t, decimal.RequireFromString("9.99").Equal(got.UnitPrice))
	assert.Equal(t, 5, got.StockQuantity)
	assert.Equal(t, 10, got.ReorderLevel)
	assert.Equal(t, f.supplier.ID, got.SupplierID)
	assert.Equal(t, domain.Some("Acme"), got.SupplierName)
	assert.True(t, decimal.RequireFromString("4.5").Equal(got.SupplierRating.Decimal))
	assert.True(t, got.IsLowStock())
	assert.Equal(t, 5, got.Shortage())
}

func TestProductStore_SaveWithoutCode(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	p := f.save(t, "Nameless", "", "Tools", 20, 10)

	found, err := f.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	got, _ := found.Get()
	assert.False(t, got.Code.IsPresent())
	assert.False(t, got.Description.IsPresent())
}

func TestProductStore_SaveUnknownSupplier(t *testing.T) {
	f := newProductFixture(t)
	p := domain.NewProduct("Orphan", "Tools", decimal.RequireFromString("1.00"), 999)

	_, err := f.products.Save(context.Background(), p)

	require.Error(t, err)
	assert.True(t, apperrors.IsPersistence(err))
}

func TestProductStore_Update(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	p := f.save(t, "Widget", "W-1", "Tools", 5, 10)

	p.Name = "Widget Pro"
	p.UnitPrice = decimal.RequireFromString("12.50")
	p.Description = domain.Some("Improved")
	_, err := f.products.Update(ctx, p)
	require.NoError(t, err)

	found, err := f.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	got, _ := found.Get()
	assert.Equal(t, "Widget Pro", got.Name)
	assert.True(t, decimal.RequireFromString("12.5").Equal(got.UnitPrice))
	assert.Equal(t, domain.Some("Improved"), got.Description)
}

func TestProductStore_Update_Missing(t *testing.T) {
	f := newProductFixture(t)
	p := domain.NewProduct("Ghost", "Tools", decimal.Zero, f.supplier.ID)
	p.ID = 7

	_, err := f.products.Update(context.Background(), p)

	require.Error(t, err)
	assert.True(t, apperrors.IsPersistence(err))
	assert.Equal(t, "Updating product failed, product not found: 7", err.Error())
}

func TestProductStore_SoftDelete(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	p := f.save(t, "Widget", "W-1", "Tools", 5, 10)

	deleted, err := f.products.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	found, err := f.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, found.IsPresent())

	byCode, err := f.products.FindByCode(ctx, "W-1")
	require.NoError(t, err)
	assert.False(t, byCode.IsPresent())

	exists, err := f.products.Exists(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.False(t, rawIsActive(t, f.products.db, "products", "product_id", p.ID))

	updated, err := f.products.UpdateStockQuantity(ctx, p.ID, 50)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestProductStore_Searches(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	other := saveSupplier(t, f.suppliers, "Other", rating("3.0"))

	f.save(t, "Hammer", "H-1", "Tools", 20, 5)
	f.save(t, "Claw Hammer", "H-2", "Tools", 15, 5)
	f.save(t, "Paint", "P-1", "Supplies", 3, 5)
	p := domain.NewProduct("Brush", "Supplies", decimal.RequireFromString("2.00"), other.ID)
	_, err := f.products.Save(ctx, p)
	require.NoError(t, err)

	byName, err := f.products.FindByName(ctx, "HAMMER")
	require.NoError(t, err)
	assert.Equal(t, []string{"Claw Hammer", "Hammer"}, names(byName))

	byCategory, err := f.products.FindByCategory(ctx, "Supplies")
	require.NoError(t, err)
	assert.Equal(t, []string{"Brush", "Paint"}, names(byCategory))

	bySupplier, err := f.products.FindBySupplier(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Brush"}, names(bySupplier))
	assert.Equal(t, domain.Some("Other"), bySupplier[0].SupplierName)

	byCode, err := f.products.FindByCode(ctx, "P-1")
	require.NoError(t, err)
	got, ok := byCode.Get()
	require.True(t, ok)
	assert.Equal(t, "Paint", got.Name)

	all, err := f.products.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Brush", "Claw Hammer", "Hammer", "Paint"}, names(all))

	summary, err := f.products.StockSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, names(all), names(summary))

	categories, err := f.products.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Supplies", "Tools"}, categories)

	count, err := f.products.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestProductStore_LowStock_OrderedByShortage(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	f.save(t, "Plenty", "", "Tools", 50, 10)
	f.save(t, "AtLevel", "", "Tools", 10, 10)
	f.save(t, "Short3", "", "Tools", 7, 10)
	f.save(t, "Empty", "", "Tools", 0, 10)
	f.save(t, "Short8", "", "Tools", 2, 10)
	deleted := f.save(t, "Deleted", "", "Tools", 0, 100)
	_, err := f.products.Delete(ctx, deleted.ID)
	require.NoError(t, err)

	low, err := f.products.LowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Empty", "Short8", "Short3", "AtLevel"}, names(low))

	out, err := f.products.OutOfStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Empty"}, names(out))
}

func TestProductStore_UpdateStockQuantity(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	p := f.save(t, "Widget", "W-1", "Tools", 5, 10)

	updated, err := f.products.UpdateStockQuantity(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.True(t, updated)

	found, err := f.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	got, _ := found.Get()
	assert.Equal(t, 0, got.StockQuantity)
	assert.Equal(t, domain.StockOutOfStock, got.StockStatus())
	assert.Equal(t, "Widget", got.Name)

	missing, err := f.products.UpdateStockQuantity(ctx, 404, 3)
	require.NoError(t, err)
	assert.False(t, missing)
}
