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
	maxCompanyNameLength = 100
	maxContactLength     = 100
	maxPhoneLength       = 20
	maxEmailLength       = 100
)

// SupplierInput carries raw supplier fields as entered by a user.
type SupplierInput struct {
	CompanyName   string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	Rating        domain.Optional[decimal.Decimal]
}

// DeleteOutcome reports a supplier deletion. HadProducts is informational:
// the supplier is deleted regardless and its products keep referencing it.
type DeleteOutcome struct {
	Deleted     bool
	HadProducts bool
}

type SupplierService struct {
	suppliers repository.SupplierRepository
	eventBus  events.EventPublisher
	logger    *zap.Logger
}

func NewSupplierService(suppliers repository.SupplierRepository, eventBus events.EventPublisher, logger *zap.Logger) *SupplierService {
	return &SupplierService{
		suppliers: suppliers,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// CreateSupplier validates in and stores a new supplier. Email uniqueness is
// left to the database; a clash surfaces as a persistence error.
func (s *SupplierService) CreateSupplier(ctx context.Context, in SupplierInput) (*domain.Supplier, error) {
	s.logger.Info("Creating new supplier", zap.String("company_name", in.CompanyName))

	if err := validateSupplier(in); err != nil {
		return nil, err
	}

	supplier := domain.NewSupplier(strings.TrimSpace(in.CompanyName),
		domain.OptionalString(in.ContactPerson),
		domain.OptionalString(in.Phone),
		domain.OptionalString(in.Email),
		domain.OptionalString(in.Address),
		nullRating(in.Rating))

	saved, err := s.suppliers.Save(ctx, supplier)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Supplier created successfully", zap.Int64("supplier_id", saved.ID))
	s.publish(ctx, events.SupplierCreatedEvent{
		SupplierID:  saved.ID,
		CompanyName: saved.CompanyName,
		Email:       saved.Email.OrElse(""),
		Rating:      ratingPtr(saved.Rating),
		OccurredAt:  time.Now().UTC(),
	})
	return saved, nil
}

// UpdateSupplier overwrites every field of an existing supplier with in.
func (s *SupplierService) UpdateSupplier(ctx context.Context, id int64, in SupplierInput) (*domain.Supplier, error) {
	s.logger.Info("Updating supplier", zap.Int64("supplier_id", id))

	if err := validateSupplier(in); err != nil {
		return nil, err
	}

	existing, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	supplier, ok := existing.Get()
	if !ok {
		return nil, supplierNotFound(id)
	}

	supplier.CompanyName = strings.TrimSpace(in.CompanyName)
	supplier.ContactPerson = domain.OptionalString(in.ContactPerson)
	supplier.Phone = domain.OptionalString(in.Phone)
	supplier.Email = domain.OptionalString(in.Email)
	supplier.Address = domain.OptionalString(in.Address)
	supplier.Rating = nullRating(in.Rating)

	updated, err := s.suppliers.Update(ctx, &supplier)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.SupplierUpdatedEvent{
		SupplierID:  updated.ID,
		CompanyName: updated.CompanyName,
		Rating:      ratingPtr(updated.Rating),
		OccurredAt:  time.Now().UTC(),
	})
	return updated, nil
}

// DeleteSupplier soft-deletes a supplier. Active products do not block it.
func (s *SupplierService) DeleteSupplier(ctx context.Context, id int64) (DeleteOutcome, error) {
	s.logger.Info("Deleting supplier", zap.Int64("supplier_id", id))

	exists, err := s.suppliers.Exists(ctx, id)
	if err != nil {
		return DeleteOutcome{}, err
	}
	if !exists {
		return DeleteOutcome{}, supplierNotFound(id)
	}

	hadProducts, err := s.suppliers.HasProducts(ctx, id)
	if err != nil {
		return DeleteOutcome{}, err
	}
	if hadProducts {
		s.logger.Warn("Deleting supplier that still has active products", zap.Int64("supplier_id", id))
	}

	deleted, err := s.suppliers.Delete(ctx, id)
	if err != nil {
		return DeleteOutcome{}, err
	}
	if deleted {
		s.publish(ctx, events.SupplierDeletedEvent{SupplierID: id, HadProducts: hadProducts, OccurredAt: time.Now().UTC()})
	}
	return DeleteOutcome{Deleted: deleted, HadProducts: hadProducts}, nil
}

func (s *SupplierService) FindSupplierByID(ctx context.Context, id int64) (domain.Optional[domain.Supplier], error) {
	return s.suppliers.FindByID(ctx, id)
}

func (s *SupplierService) FindAllSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.suppliers.FindAll(ctx)
}

// SearchSuppliersByName matches name anywhere in the company name. Blank input lists everything.
func (s *SupplierService) SearchSuppliersByName(ctx context.Context, name string) ([]domain.Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.suppliers.FindAll(ctx)
	}
	return s.suppliers.FindByName(ctx, name)
}

func (s *SupplierService) FindSupplierByEmail(ctx context.Context, email string) (domain.Optional[domain.Supplier], error) {
	return s.suppliers.FindByEmail(ctx, strings.TrimSpace(email))
}

func (s *SupplierService) FindSuppliersByRatingRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Supplier, error) {
	if !domain.RatingInRange(min) || !domain.RatingInRange(max) {
		return nil, apperrors.NewValidationError("Rating must be between 1.0 and 5.0", "rating")
	}
	if min.GreaterThan(max) {
		return nil, apperrors.NewValidationError("Minimum rating cannot be greater than maximum rating", "rating")
	}
	return s.suppliers.FindByRatingRange(ctx, min, max)
}

func (s *SupplierService) TopSuppliers(ctx context.Context, limit int) ([]domain.Supplier, error) {
	if limit <= 0 {
		return nil, apperrors.NewValidationError("Limit must be positive", "limit")
	}
	return s.suppliers.TopSuppliers(ctx, limit)
}

func (s *SupplierService) SupplierHasProducts(ctx context.Context, id int64) (bool, error) {
	return s.suppliers.HasProducts(ctx, id)
}

func (s *SupplierService) SupplierCount(ctx context.Context) (int64, error) {
	return s.suppliers.Count(ctx)
}

func (s *SupplierService) publish(ctx context.Context, event interface{}) {
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("event-type", events.EventType(event)), zap.Error(err))
	}
}

func supplierNotFound(id int64) error {
	return apperrors.NewValidationError(fmt.Sprintf("Supplier not found with ID: %d", id), "supplier_id")
}

func nullRating(r domain.Optional[decimal.Decimal]) decimal.NullDecimal {
	if v, ok := r.Get(); ok {
		return decimal.NewNullDecimal(v)
	}
	return decimal.NullDecimal{}
}

func ratingPtr(r decimal.NullDecimal) *decimal.Decimal {
	if !r.Valid {
		return nil
	}
	d := r.Decimal
	return &d
}

func validateSupplier(in SupplierInput) error {
	name := strings.TrimSpace(in.CompanyName)
	if name == "" {
		return apperrors.NewValidationError("Company name is required", "company_name")
	}
	if utf8.RuneCountInString(name) > maxCompanyNameLength {
		return apperrors.NewValidationError("Company name cannot exceed 100 characters", "company_name")
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.ContactPerson)) > maxContactLength {
		return apperrors.NewValidationError("Contact person cannot exceed 100 characters", "contact_person")
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Phone)) > maxPhoneLength {
		return apperrors.NewValidationError("Phone cannot exceed 20 characters", "phone")
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Email)) > maxEmailLength {
		return apperrors.NewValidationError("Email cannot exceed 100 characters", "email")
	}
	if r, ok := in.Rating.Get(); ok && !domain.RatingInRange(r) {
		return apperrors.NewValidationError("Rating must be between 1.0 and 5.0", "rating")
	}
	return nil
}
