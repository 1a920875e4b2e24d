package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rating bounds, inclusive.
var (
	MinRating = decimal.NewFromInt(1)
	MaxRating = decimal.NewFromInt(5)
)

// Supplier is a vendor that products are sourced from
type Supplier struct {
	ID            int64
	CompanyName   string
	ContactPerson Optional[string]
	Phone         Optional[string]
	Email         Optional[string]
	Address       Optional[string]
	Rating        decimal.NullDecimal
	AuditInfo
}

// NewSupplier creates a new, not yet persisted supplier
func NewSupplier(companyName string, contactPerson, phone, email, address Optional[string], rating decimal.NullDecimal) *Supplier {
	return &Supplier{
		CompanyName:   companyName,
		ContactPerson: contactPerson,
		Phone:         phone,
		Email:         email,
		Address:       address,
		Rating:        rating,
		AuditInfo:     NewAuditInfo(time.Now().UTC()),
	}
}

// RatingInRange reports whether r lies within MinRating..MaxRating.
func RatingInRange(r decimal.Decimal) bool {
	return r.GreaterThanOrEqual(MinRating) && r.LessThanOrEqual(MaxRating)
}

func (s *Supplier) HasContact() bool {
	return s.ContactPerson.IsPresent()
}

func (s *Supplier) HasEmail() bool {
	return s.Email.IsPresent()
}

func (s *Supplier) HasPhone() bool {
	return s.Phone.IsPresent()
}

// DisplayName renders "Company (Contact)" when a contact person is known.
func (s *Supplier) DisplayName() string {
	if contact, ok := s.ContactPerson.Get(); ok {
		return s.CompanyName + " (" + contact + ")"
	}
	return s.CompanyName
}
