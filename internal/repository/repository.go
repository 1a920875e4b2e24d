package repository

import (
	"context"
	"errors"

	"inventory-management/internal/domain"

	"github.com/shopspring/decimal"
)

// Repository is the persistence contract shared by every entity store.
// E is the entity written to storage, V the shape read back from it.
// All reads and write-by-id statements only see active rows.
type Repository[E any, V any] interface {
	// Save inserts e and sets its generated ID.
	Save(ctx context.Context, e *E) (*E, error)
	// Update overwrites every column of the row with e's ID. A missing row and
	// an unchanged row both surface as a persistence error.
	Update(ctx context.Context, e *E) (*E, error)
	FindByID(ctx context.Context, id int64) (domain.Optional[V], error)
	FindAll(ctx context.Context) ([]V, error)
	// Delete soft-deletes the row and reports whether one was changed.
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// SupplierRepository stores suppliers
type SupplierRepository interface {
	Repository[domain.Supplier, domain.Supplier]
	FindByName(ctx context.Context, name string) ([]domain.Supplier, error)
	FindByEmail(ctx context.Context, email string) (domain.Optional[domain.Supplier], error)
	FindByRatingRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Supplier, error)
	TopSuppliers(ctx context.Context, limit int) ([]domain.Supplier, error)
	HasProducts(ctx context.Context, supplierID int64) (bool, error)
}

// ProductRepository stores products. Reads return the product joined with its supplier.
type ProductRepository interface {
	Repository[domain.Product, domain.ProductView]
	FindByName(ctx context.Context, name string) ([]domain.ProductView, error)
	FindByCategory(ctx context.Context, category string) ([]domain.ProductView, error)
	FindBySupplier(ctx context.Context, supplierID int64) ([]domain.ProductView, error)
	FindByCode(ctx context.Context, code string) (domain.Optional[domain.ProductView], error)
	LowStock(ctx context.Context) ([]domain.ProductView, error)
	OutOfStock(ctx context.Context) ([]domain.ProductView, error)
	StockSummary(ctx context.Context) ([]domain.ProductView, error)
	Categories(ctx context.Context) ([]string, error)
	UpdateStockQuantity(ctx context.Context, productID int64, quantity int) (bool, error)
}

// Repository errors, wrapped inside persistence errors
var (
	ErrNoRowsAffected = errors.New("no rows affected")
	ErrNoGeneratedID  = errors.New("no generated id returned")
)
