package service

import (
	"context"
	"testing"

	"inventory-management/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func stockedView(category, price string, stock, reorder int) domain.ProductView {
	p := domain.NewProduct("item", category, decimal.RequireFromString(price), 1)
	p.StockQuantity = stock
	p.ReorderLevel = reorder
	return domain.ProductView{Product: *p}
}

func ratedSupplier(id int64, rating string) domain.Supplier {
	s := domain.Supplier{ID: id, CompanyName: "S"}
	if rating != "" {
		s.Rating = decimal.NewNullDecimal(decimal.RequireFromString(rating))
	}
	return s
}

func newReportService() (*ReportService, *MockProductRepository, *MockSupplierRepository) {
	products := new(MockProductRepository)
	suppliers := new(MockSupplierRepository)
	return NewReportService(products, suppliers, zap.NewNop()), products, suppliers
}

func TestStockSummaryReport(t *testing.T) {
	svc, products, _ := newReportService()
	products.On("StockSummary", mock.Anything).Return([]domain.ProductView{
		stockedView("Tools", "2.50", 4, 10),
		stockedView("Tools", "1.00", 0, 5),
		stockedView("Food", "10.00", 20, 5),
	}, nil)

	report, err := svc.StockSummary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalProducts)
	assert.Equal(t, 24, report.TotalUnits)
	assert.True(t, decimal.RequireFromString("210.00").Equal(report.TotalValue))
	assert.Equal(t, 2, report.LowStockCount)
	assert.Equal(t, 1, report.OutOfStockCount)
}

func TestReorderList_SuggestsAtLeastOne(t *testing.T) {
	svc, products, _ := newReportService()
	products.On("LowStock", mock.Anything).Return([]domain.ProductView{
		stockedView("Tools", "1", 2, 10),
		stockedView("Tools", "1", 5, 5),
	}, nil)

	lines, err := svc.ReorderList(context.Background())

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 8, lines[0].SuggestedOrder)
	assert.Equal(t, 1, lines[1].SuggestedOrder)
}

func TestCategoryBreakdown_SortedByName(t *testing.T) {
	svc, products, _ := newReportService()
	products.On("StockSummary", mock.Anything).Return([]domain.ProductView{
		stockedView("Tools", "2", 3, 1),
		stockedView("Food", "1", 4, 1),
		stockedView("Tools", "5", 1, 1),
	}, nil)

	breakdown, err := svc.CategoryBreakdown(context.Background())

	require.NoError(t, err)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Food", breakdown[0].Category)
	assert.Equal(t, "Tools", breakdown[1].Category)
	assert.Equal(t, 2, breakdown[1].ProductCount)
	assert.Equal(t, 4, breakdown[1].TotalUnits)
	assert.True(t, decimal.NewFromInt(11).Equal(breakdown[1].TotalValue))
}

func TestSupplierPerformance(t *testing.T) {
	svc, _, suppliers := newReportService()
	suppliers.On("FindAll", mock.Anything).Return([]domain.Supplier{
		ratedSupplier(1, ""),
		ratedSupplier(2, "3.0"),
		ratedSupplier(3, "4.5"),
	}, nil)

	perf, err := svc.SupplierPerformance(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, perf.RatedCount)
	require.True(t, perf.AverageRating.Valid)
	assert.True(t, decimal.RequireFromString("3.75").Equal(perf.AverageRating.Decimal))
	assert.Equal(t, []int64{3, 2, 1}, []int64{perf.Suppliers[0].ID, perf.Suppliers[1].ID, perf.Suppliers[2].ID})
}

func TestSupplierPerformance_NoRatings(t *testing.T) {
	svc, _, suppliers := newReportService()
	suppliers.On("FindAll", mock.Anything).Return([]domain.Supplier{ratedSupplier(1, "")}, nil)

	perf, err := svc.SupplierPerformance(context.Background())

	require.NoError(t, err)
	assert.False(t, perf.AverageRating.Valid)
}

func TestValuation(t *testing.T) {
	svc, products, _ := newReportService()
	products.On("StockSummary", mock.Anything).Return([]domain.ProductView{
		stockedView("Tools", "0.10", 3, 1),
		stockedView("Food", "0.20", 1, 1),
	}, nil)

	v, err := svc.Valuation(context.Background())

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.5").Equal(v.TotalValue))
	assert.Len(t, v.Categories, 2)
}
