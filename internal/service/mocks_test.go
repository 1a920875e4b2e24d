package service

import (
	"context"

	"inventory-management/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockSupplierRepository is a mock implementation of repository.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) Save(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	args := m.Called(ctx, s)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Supplier) *domain.Supplier); ok {
		return fn(ctx, s), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Update(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	args := m.Called(ctx, s)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Supplier) *domain.Supplier); ok {
		return fn(ctx, s), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id int64) (domain.Optional[domain.Supplier], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Optional[domain.Supplier]), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context) ([]domain.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) FindByName(ctx context.Context, name string) ([]domain.Supplier, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByEmail(ctx context.Context, email string) (domain.Optional[domain.Supplier], error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.Optional[domain.Supplier]), args.Error(1)
}

func (m *MockSupplierRepository) FindByRatingRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Supplier, error) {
	args := m.Called(ctx, min, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) TopSuppliers(ctx context.Context, limit int) ([]domain.Supplier, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) HasProducts(ctx context.Context, supplierID int64) (bool, error) {
	args := m.Called(ctx, supplierID)
	return args.Bool(0), args.Error(1)
}

// MockProductRepository is a mock implementation of repository.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, p)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Product) *domain.Product); ok {
		return fn(ctx, p), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, p)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Product) *domain.Product); ok {
		return fn(ctx, p), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (domain.Optional[domain.ProductView], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Optional[domain.ProductView]), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]domain.ProductView, error) {
	return m.views(m.Called(ctx))
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindByName(ctx context.Context, name string) ([]domain.ProductView, error) {
	return m.views(m.Called(ctx, name))
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, category string) ([]domain.ProductView, error) {
	return m.views(m.Called(ctx, category))
}

func (m *MockProductRepository) FindBySupplier(ctx context.Context, supplierID int64) ([]domain.ProductView, error) {
	return m.views(m.Called(ctx, supplierID))
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (domain.Optional[domain.ProductView], error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.Optional[domain.ProductView]), args.Error(1)
}

func (m *MockProductRepository) LowStock(ctx context.Context) ([]domain.ProductView, error) {
	return m.views(m.Called(ctx))
}

func (m *MockProductRepository) OutOfStock(ctx context.Context) ([]domain.ProductView, error) {
	return m.views(m.Called(ctx))
}

func (m *MockProductRepository) StockSummary(ctx context.Context) ([]domain.ProductView, error) {
	return m.views(m.Called(ctx))
}

func (m *MockProductRepository) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) UpdateStockQuantity(ctx context.Context, productID int64, quantity int) (bool, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) views(args mock.Arguments) ([]domain.ProductView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductView), args.Error(1)
}

// MockEventPublisher is a mock implementation of events.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event interface{}) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
