package service

import (
	"context"
	"sort"

	"inventory-management/internal/domain"
	"inventory-management/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockReport summarizes all active products.
type StockReport struct {
	Products        []domain.ProductView
	TotalProducts   int
	TotalUnits      int
	TotalValue      decimal.Decimal
	LowStockCount   int
	OutOfStockCount int
}

// ReorderLine is a low-stock product with the quantity to order.
type ReorderLine struct {
	Product        domain.ProductView
	SuggestedOrder int
}

type CategorySummary struct {
	Category     string
	ProductCount int
	TotalUnits   int
	TotalValue   decimal.Decimal
}

// SupplierPerformance lists suppliers best rated first. AverageRating only
// counts suppliers that have a rating and is invalid when none do.
type SupplierPerformance struct {
	Suppliers     []domain.Supplier
	RatedCount    int
	AverageRating decimal.NullDecimal
}

type Valuation struct {
	TotalValue decimal.Decimal
	Categories []CategorySummary
}

// ReportService computes read-only reports from store results.
type ReportService struct {
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	logger    *zap.Logger
}

func NewReportService(products repository.ProductRepository, suppliers repository.SupplierRepository, logger *zap.Logger) *ReportService {
	return &ReportService{products: products, suppliers: suppliers, logger: logger}
}

func (s *ReportService) StockSummary(ctx context.Context) (*StockReport, error) {
	products, err := s.products.StockSummary(ctx)
	if err != nil {
		return nil, err
	}

	report := &StockReport{Products: products, TotalProducts: len(products), TotalValue: decimal.Zero}
	for i := range products {
		p := &products[i].Product
		report.TotalUnits += p.StockQuantity
		report.TotalValue = report.TotalValue.Add(p.StockValue())
		if p.IsOutOfStock() {
			report.OutOfStockCount++
		}
		if p.IsLowStock() {
			report.LowStockCount++
		}
	}

	s.logger.Debug("Stock summary computed",
		zap.Int("products", report.TotalProducts),
		zap.String("total_value", report.TotalValue.StringFixed(2)),
	)
	return report, nil
}

// ReorderList suggests how much of each low-stock product to order: enough
// to reach the reorder level, and at least one unit.
func (s *ReportService) ReorderList(ctx context.Context) ([]ReorderLine, error) {
	low, err := s.products.LowStock(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]ReorderLine, 0, len(low))
	for _, p := range low {
		qty := p.Shortage()
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, ReorderLine{Product: p, SuggestedOrder: qty})
	}
	return lines, nil
}

func (s *ReportService) CategoryBreakdown(ctx context.Context) ([]CategorySummary, error) {
	products, err := s.products.StockSummary(ctx)
	if err != nil {
		return nil, err
	}
	return summarizeCategories(products), nil
}

func (s *ReportService) SupplierPerformance(ctx context.Context) (*SupplierPerformance, error) {
	suppliers, err := s.suppliers.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(suppliers, func(i, j int) bool {
		a, b := suppliers[i].Rating, suppliers[j].Rating
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Valid && a.Decimal.GreaterThan(b.Decimal)
	})

	report := &SupplierPerformance{Suppliers: suppliers}
	sum := decimal.Zero
	for _, sup := range suppliers {
		if sup.Rating.Valid {
			report.RatedCount++
			sum = sum.Add(sup.Rating.Decimal)
		}
	}
	if report.RatedCount > 0 {
		report.AverageRating = decimal.NewNullDecimal(sum.Div(decimal.NewFromInt(int64(report.RatedCount))).Round(2))
	}
	return report, nil
}

func (s *ReportService) Valuation(ctx context.Context) (*Valuation, error) {
	products, err := s.products.StockSummary(ctx)
	if err != nil {
		return nil, err
	}

	categories := summarizeCategories(products)
	total := decimal.Zero
	for _, c := range categories {
		total = total.Add(c.TotalValue)
	}
	return &Valuation{TotalValue: total, Categories: categories}, nil
}

func summarizeCategories(products []domain.ProductView) []CategorySummary {
	byCategory := make(map[string]*CategorySummary)
	for i := range products {
		p := &products[i].Product
		c, ok := byCategory[p.Category]
		if !ok {
			c = &CategorySummary{Category: p.Category, TotalValue: decimal.Zero}
			byCategory[p.Category] = c
		}
		c.ProductCount++
		c.TotalUnits += p.StockQuantity
		c.TotalValue = c.TotalValue.Add(p.StockValue())
	}

	out := make([]CategorySummary, 0, len(byCategory))
	for _, c := range byCategory {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
