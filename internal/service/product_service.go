package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"inventory-management/internal/domain"
	"inventory-management/internal/events"
	"inventory-management/internal/repository"
	apperrors "inventory-management/pkg/errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	maxProductNameLength = 100
	maxProductCodeLength = 50
	maxCategoryLength    = 50
)

// ProductInput carries raw product fields as entered by a user. Numeric
// fields are optional so that "not provided" differs from zero.
type ProductInput struct {
	Name          string
	Code          string
	Category      string
	Description   string
	UnitPrice     domain.Optional[decimal.Decimal]
	StockQuantity domain.Optional[int]
	ReorderLevel  domain.Optional[int]
	SupplierID    domain.Optional[int64]
}

// ProductService validates product input and applies business rules
// before delegating to the stores.
type ProductService struct {
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	eventBus  events.EventPublisher
	logger    *zap.Logger
}

func NewProductService(products repository.ProductRepository, suppliers repository.SupplierRepository,
	eventBus events.EventPublisher, logger *zap.Logger) *ProductService {
	return &ProductService{
		products:  products,
		suppliers: suppliers,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// CreateProduct validates in and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	s.logger.Info("Creating new product", zap.String("product_name", in.Name))

	if err := validateProduct(in); err != nil {
		return nil, err
	}

	code := domain.OptionalString(in.Code)
	if c, ok := code.Get(); ok {
		existing, err := s.products.FindByCode(ctx, c)
		if err != nil {
			return nil, err
		}
		if existing.IsPresent() {
			return nil, apperrors.NewValidationError("Product code already exists: "+c, "code")
		}
	}

	supplierID, _ := in.SupplierID.Get()
	if err := s.requireSupplier(ctx, supplierID); err != nil {
		return nil, err
	}

	product := domain.NewProduct(strings.TrimSpace(in.Name), strings.TrimSpace(in.Category), in.UnitPrice.OrElse(decimal.Zero), supplierID)
	applyInput(product, in)

	saved, err := s.products.Save(ctx, product)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product created successfully", zap.Int64("product_id", saved.ID))
	s.publish(ctx, events.ProductCreatedEvent{
		ProductID:     saved.ID,
		Name:          saved.Name,
		Code:          saved.Code.OrElse(""),
		Category:      saved.Category,
		UnitPrice:     saved.UnitPrice,
		StockQuantity: saved.StockQuantity,
		SupplierID:    saved.SupplierID,
		OccurredAt:    time.Now().UTC(),
	})
	return saved, nil
}

// UpdateProduct validates in and overwrites the product with the given id.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*domain.Product, error) {
	s.logger.Info("Updating product", zap.Int64("product_id", id))

	if err := validateProduct(in); err != nil {
		return nil, err
	}

	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current, ok := existing.Get()
	if !ok {
		return nil, productNotFound(id)
	}

	code := domain.OptionalString(in.Code)
	if c, ok := code.Get(); ok {
		withCode, err := s.products.FindByCode(ctx, c)
		if err != nil {
			return nil, err
		}
		if other, ok := withCode.Get(); ok && other.ID != id {
			return nil, apperrors.NewValidationError("Product code already exists: "+c, "code")
		}
	}

	supplierID, _ := in.SupplierID.Get()
	if err := s.requireSupplier(ctx, supplierID); err != nil {
		return nil, err
	}

	product := current.Product
	product.Name = strings.TrimSpace(in.Name)
	product.Category = strings.TrimSpace(in.Category)
	product.UnitPrice, _ = in.UnitPrice.Get()
	product.SupplierID = supplierID
	applyInput(&product, in)

	updated, err := s.products.Update(ctx, &product)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product updated successfully", zap.Int64("product_id", id))
	s.publish(ctx, events.ProductUpdatedEvent{
		ProductID:     updated.ID,
		Name:          updated.Name,
		Category:      updated.Category,
		UnitPrice:     updated.UnitPrice,
		StockQuantity: updated.StockQuantity,
		SupplierID:    updated.SupplierID,
		OccurredAt:    time.Now().UTC(),
	})
	return updated, nil
}

// UpdateStockQuantity overwrites the quantity on hand. It reports whether a product was changed.
func (s *ProductService) UpdateStockQuantity(ctx context.Context, productID int64, quantity int) (bool, error) {
	s.logger.Info("Updating stock quantity", zap.Int64("product_id", productID), zap.Int("quantity", quantity))

	if quantity < 0 {
		return false, apperrors.NewValidationError("Stock quantity cannot be negative", "stock_quantity")
	}

	updated, err := s.products.UpdateStockQuantity(ctx, productID, quantity)
	if err != nil {
		return false, err
	}
	if updated {
		s.publish(ctx, events.StockQuantityUpdatedEvent{
			ProductID:   productID,
			NewQuantity: quantity,
			OccurredAt:  time.Now().UTC(),
		})
	}
	return updated, nil
}

// DeleteProduct soft-deletes an existing product.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	s.logger.Info("Deleting product", zap.Int64("product_id", id))

	exists, err := s.products.Exists(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, productNotFound(id)
	}

	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publish(ctx, events.ProductDeletedEvent{ProductID: id, OccurredAt: time.Now().UTC()})
	}
	return deleted, nil
}

func (s *ProductService) FindProductByID(ctx context.Context, id int64) (domain.Optional[domain.ProductView], error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) FindAllProducts(ctx context.Context) ([]domain.ProductView, error) {
	return s.products.FindAll(ctx)
}

// SearchProductsByName matches name anywhere in the product name. Blank input lists everything.
func (s *ProductService) SearchProductsByName(ctx context.Context, name string) ([]domain.ProductView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.products.FindAll(ctx)
	}
	return s.products.FindByName(ctx, name)
}

func (s *ProductService) FindProductsByCategory(ctx context.Context, category string) ([]domain.ProductView, error) {
	return s.products.FindByCategory(ctx, strings.TrimSpace(category))
}

func (s *ProductService) FindProductsBySupplier(ctx context.Context, supplierID int64) ([]domain.ProductView, error) {
	return s.products.FindBySupplier(ctx, supplierID)
}

func (s *ProductService) FindProductByCode(ctx context.Context, code string) (domain.Optional[domain.ProductView], error) {
	return s.products.FindByCode(ctx, strings.TrimSpace(code))
}

func (s *ProductService) LowStockProducts(ctx context.Context) ([]domain.ProductView, error) {
	return s.products.LowStock(ctx)
}

func (s *ProductService) OutOfStockProducts(ctx context.Context) ([]domain.ProductView, error) {
	return s.products.OutOfStock(ctx)
}

func (s *ProductService) StockSummary(ctx context.Context) ([]domain.ProductView, error) {
	return s.products.StockSummary(ctx)
}

func (s *ProductService) DistinctCategories(ctx context.Context) ([]string, error) {
	return s.products.Categories(ctx)
}

func (s *ProductService) ProductCount(ctx context.Context) (int64, error) {
	return s.products.Count(ctx)
}

func (s *ProductService) ProductExists(ctx context.Context, id int64) (bool, error) {
	return s.products.Exists(ctx, id)
}

// AllSuppliers lists active suppliers, for picking one while editing a product.
func (s *ProductService) AllSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.suppliers.FindAll(ctx)
}

func (s *ProductService) requireSupplier(ctx context.Context, supplierID int64) error {
	supplier, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil {
		return err
	}
	if !supplier.IsPresent() {
		return apperrors.NewValidationError(fmt.Sprintf("Supplier not found with ID: %d", supplierID), "supplier_id")
	}
	return nil
}

func (s *ProductService) publish(ctx context.Context, event interface{}) {
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("event-type", events.EventType(event)), zap.Error(err))
	}
}

// applyInput copies the optional and defaulted fields shared by create and update.
func applyInput(p *domain.Product, in ProductInput) {
	p.Code = domain.OptionalString(in.Code)
	p.Description = domain.OptionalString(in.Description)
	p.StockQuantity = in.StockQuantity.OrElse(domain.DefaultStockQuantity)
	p.ReorderLevel = in.ReorderLevel.OrElse(domain.DefaultReorderLevel)
}

func productNotFound(id int64) error {
	return apperrors.NewValidationError(fmt.Sprintf("Product not found with ID: %d", id), "product_id")
}

// validateProduct checks fields in a fixed order; the first failure is returned.
func validateProduct(in ProductInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return apperrors.NewValidationError("Product name is required", "name")
	}
	if utf8.RuneCountInString(name) > maxProductNameLength {
		return apperrors.NewValidationError("Product name cannot exceed 100 characters", "name")
	}

	if utf8.RuneCountInString(strings.TrimSpace(in.Code)) > maxProductCodeLength {
		return apperrors.NewValidationError("Product code cannot exceed 50 characters", "code")
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		return apperrors.NewValidationError("Category is required", "category")
	}
	if utf8.RuneCountInString(category) > maxCategoryLength {
		return apperrors.NewValidationError("Category cannot exceed 50 characters", "category")
	}

	price, ok := in.UnitPrice.Get()
	if !ok {
		return apperrors.NewValidationError("Unit price is required", "unit_price")
	}
	if price.IsNegative() {
		return apperrors.NewValidationError("Unit price cannot be negative", "unit_price")
	}

	stock, ok := in.StockQuantity.Get()
	if !ok {
		return apperrors.NewValidationError("Stock quantity is required", "stock_quantity")
	}
	if stock < 0 {
		return apperrors.NewValidationError("Stock quantity cannot be negative", "stock_quantity")
	}

	reorder, ok := in.ReorderLevel.Get()
	if !ok {
		return apperrors.NewValidationError("Reorder level is required", "reorder_level")
	}
	if reorder < 0 {
		return apperrors.NewValidationError("Reorder level cannot be negative", "reorder_level")
	}

	if !in.SupplierID.IsPresent() {
		return apperrors.NewValidationError("Supplier ID is required", "supplier_id")
	}
	return nil
}
