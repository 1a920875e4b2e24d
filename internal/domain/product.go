package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultStockQuantity = 0
	DefaultReorderLevel  = 10
)

// StockStatus classifies a product's stock position
type StockStatus string

const (
	StockOutOfStock StockStatus = "OUT_OF_STOCK"
	StockLow        StockStatus = "LOW_STOCK"
	StockNormal     StockStatus = "NORMAL"
)

// Product is a stocked item supplied by exactly one supplier
type Product struct {
	ID            int64
	Name          string
	Code          Optional[string]
	Category      string
	Description   Optional[string]
	UnitPrice     decimal.Decimal
	StockQuantity int
	ReorderLevel  int
	SupplierID    int64
	AuditInfo
}

// ProductView is a product as read back from storage, together with the
// supplier attributes fetched alongside it. Stores only accept Product for
// writes, so these joined fields never travel back to the database.
type ProductView struct {
	Product
	SupplierName   Optional[string]
	SupplierRating decimal.NullDecimal
}

// NewProduct creates a new product with default stock settings
func NewProduct(name, category string, unitPrice decimal.Decimal, supplierID int64) *Product {
	return &Product{
		Name:          name,
		Category:      category,
		UnitPrice:     unitPrice,
		StockQuantity: DefaultStockQuantity,
		ReorderLevel:  DefaultReorderLevel,
		SupplierID:    supplierID,
		AuditInfo:     NewAuditInfo(time.Now().UTC()),
	}
}

// StockValue returns unit price times quantity on hand
func (p *Product) StockValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
}

func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.ReorderLevel
}

func (p *Product) IsOutOfStock() bool {
	return p.StockQuantity == 0
}

// Shortage is how many units are missing to reach the reorder level.
func (p *Product) Shortage() int {
	if p.StockQuantity >= p.ReorderLevel {
		return 0
	}
	return p.ReorderLevel - p.StockQuantity
}

// StockStatus returns the stock classification; out of stock takes precedence.
func (p *Product) StockStatus() StockStatus {
	switch {
	case p.IsOutOfStock():
		return StockOutOfStock
	case p.IsLowStock():
		return StockLow
	default:
		return StockNormal
	}
}

func (p *Product) HasSufficientStock(required int) bool {
	return p.StockQuantity >= required
}

// IncreaseStock adds quantity units; non-positive quantities are ignored.
func (p *Product) IncreaseStock(quantity int) {
	if quantity > 0 {
		p.StockQuantity += quantity
	}
}

// DecreaseStock removes quantity units when enough stock is on hand.
func (p *Product) DecreaseStock(quantity int) bool {
	if quantity <= 0 || !p.HasSufficientStock(quantity) {
		return false
	}
	p.StockQuantity -= quantity
	return true
}

// DisplayName renders "Name (CODE)" when the product has a code.
func (p *Product) DisplayName() string {
	if code, ok := p.Code.Get(); ok {
		return p.Name + " (" + code + ")"
	}
	return p.Name
}
