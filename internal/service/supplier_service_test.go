package service

import (
	"context"
	"strings"
	"testing"

	"inventory-management/internal/domain"
	apperrors "inventory-management/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSupplierService() (*SupplierService, *MockSupplierRepository, *MockEventPublisher) {
	suppliers := new(MockSupplierRepository)
	eventBus := new(MockEventPublisher)
	return NewSupplierService(suppliers, eventBus, zap.NewNop()), suppliers, eventBus
}

func validSupplierInput() SupplierInput {
	return SupplierInput{
		CompanyName:   "  Acme Corp ",
		ContactPerson: "Jane Roe",
		Phone:         "555-0100",
		Email:         "sales@acme.test",
		Address:       "",
		Rating:        domain.Some(decimal.RequireFromString("4.5")),
	}
}

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperrors.IsValidation(err))
	se, _ := apperrors.As(err)
	return se.Message
}

func TestValidateSupplier(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *SupplierInput)
		message string
	}{
		{"blank company", func(in *SupplierInput) { in.CompanyName = " " }, "Company name is required"},
		{"long company", func(in *SupplierInput) { in.CompanyName = strings.Repeat("a", 101) }, "Company name cannot exceed 100 characters"},
		{"long contact", func(in *SupplierInput) { in.ContactPerson = strings.Repeat("b", 101) }, "Contact person cannot exceed 100 characters"},
		{"long phone", func(in *SupplierInput) { in.Phone = strings.Repeat("9", 21) }, "Phone cannot exceed 20 characters"},
		{"long email", func(in *SupplierInput) { in.Email = strings.Repeat("e", 101) }, "Email cannot exceed 100 characters"},
		{"rating too low", func(in *SupplierInput) { in.Rating = domain.Some(decimal.RequireFromString("0.9")) }, "Rating must be between 1.0 and 5.0"},
		{"rating too high", func(in *SupplierInput) { in.Rating = domain.Some(decimal.RequireFromString("5.1")) }, "Rating must be between 1.0 and 5.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSupplierInput()
			tt.mutate(&in)
			assert.Equal(t, tt.message, validationMessage(t, validateSupplier(in)))
		})
	}

	in := validSupplierInput()
	in.Rating = domain.None[decimal.Decimal]()
	assert.NoError(t, validateSupplier(in))
}

func TestCreateSupplier_Success(t *testing.T) {
	svc, suppliers, eventBus := newSupplierService()

	suppliers.On("Save", mock.Anything, mock.MatchedBy(func(s *domain.Supplier) bool {
		return s.CompanyName == "Acme Corp" && !s.Address.IsPresent() && s.Rating.Valid && s.IsActive
	})).Return(func(_ context.Context, s *domain.Supplier) *domain.Supplier {
		s.ID = 11
		return s
	}, nil)
	eventBus.On("Publish", mock.Anything, mock.AnythingOfType("events.SupplierCreatedEvent")).Return(nil)

	saved, err := svc.CreateSupplier(context.Background(), validSupplierInput())

	require.NoError(t, err)
	assert.Equal(t, int64(11), saved.ID)
	suppliers.AssertExpectations(t)
	eventBus.AssertExpectations(t)
}

func TestCreateSupplier_DuplicateEmailSurfacesPersistenceError(t *testing.T) {
	svc, suppliers, _ := newSupplierService()
	suppliers.On("Save", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewPersistenceError("Error saving supplier", assert.AnError))

	_, err := svc.CreateSupplier(context.Background(), validSupplierInput())

	assert.True(t, apperrors.IsPersistence(err))
}

func TestUpdateSupplier_NotFound(t *testing.T) {
	svc, suppliers, _ := newSupplierService()
	suppliers.On("FindByID", mock.Anything, int64(3)).Return(domain.None[domain.Supplier](), nil)

	_, err := svc.UpdateSupplier(context.Background(), 3, validSupplierInput())

	assert.Equal(t, "Supplier not found with ID: 3", validationMessage(t, err))
	suppliers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateSupplier_ClearsRating(t *testing.T) {
	svc, suppliers, eventBus := newSupplierService()
	suppliers.On("FindByID", mock.Anything, int64(3)).Return(activeSupplier(3), nil)
	suppliers.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.Supplier) bool {
		return s.ID == 3 && !s.Rating.Valid
	})).Return(func(_ context.Context, s *domain.Supplier) *domain.Supplier { return s }, nil)
	eventBus.On("Publish", mock.Anything, mock.AnythingOfType("events.SupplierUpdatedEvent")).Return(nil)

	in := validSupplierInput()
	in.Rating = domain.None[decimal.Decimal]()
	updated, err := svc.UpdateSupplier(context.Background(), 3, in)

	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.CompanyName)
	suppliers.AssertExpectations(t)
}

func TestDeleteSupplier(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc, suppliers, _ := newSupplierService()
		suppliers.On("Exists", mock.Anything, int64(8)).Return(false, nil)

		_, err := svc.DeleteSupplier(context.Background(), 8)

		assert.Equal(t, "Supplier not found with ID: 8", validationMessage(t, err))
	})

	t.Run("with products still deletes", func(t *testing.T) {
		svc, suppliers, eventBus := newSupplierService()
		suppliers.On("Exists", mock.Anything, int64(8)).Return(true, nil)
		suppliers.On("HasProducts", mock.Anything, int64(8)).Return(true, nil)
		suppliers.On("Delete", mock.Anything, int64(8)).Return(true, nil)
		eventBus.On("Publish", mock.Anything, mock.AnythingOfType("events.SupplierDeletedEvent")).Return(nil)

		outcome, err := svc.DeleteSupplier(context.Background(), 8)

		require.NoError(t, err)
		assert.Equal(t, DeleteOutcome{Deleted: true, HadProducts: true}, outcome)
		eventBus.AssertExpectations(t)
	})
}

func TestFindSuppliersByRatingRange(t *testing.T) {
	svc, suppliers, _ := newSupplierService()
	ctx := context.Background()
	one, three, six := decimal.NewFromInt(1), decimal.NewFromInt(3), decimal.NewFromInt(6)

	_, err := svc.FindSuppliersByRatingRange(ctx, one, six)
	assert.Equal(t, "Rating must be between 1.0 and 5.0", validationMessage(t, err))

	_, err = svc.FindSuppliersByRatingRange(ctx, three, one)
	assert.Equal(t, "Minimum rating cannot be greater than maximum rating", validationMessage(t, err))

	suppliers.On("FindByRatingRange", mock.Anything, three, three).Return([]domain.Supplier{}, nil)
	found, err := svc.FindSuppliersByRatingRange(ctx, three, three)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestTopSuppliers_RequiresPositiveLimit(t *testing.T) {
	svc, suppliers, _ := newSupplierService()

	_, err := svc.TopSuppliers(context.Background(), 0)
	assert.Equal(t, "Limit must be positive", validationMessage(t, err))

	suppliers.On("TopSuppliers", mock.Anything, 3).Return([]domain.Supplier{{ID: 1}}, nil)
	top, err := svc.TopSuppliers(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestSearchSuppliersByName_BlankListsAll(t *testing.T) {
	svc, suppliers, _ := newSupplierService()
	suppliers.On("FindAll", mock.Anything).Return([]domain.Supplier{{ID: 1}, {ID: 2}}, nil)

	found, err := svc.SearchSuppliersByName(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, found, 2)
}
