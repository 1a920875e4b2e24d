package handlers

import (
	"time"

	"inventory-management/internal/domain"
	"inventory-management/internal/service"

	"github.com/shopspring/decimal"
)

// ErrorResponse represents an error response
// @Description Error response returned for every failed request
type ErrorResponse struct {
	// Error code
	Error string `json:"error" example:"ValidationError"`
	// Human readable message
	Message string `json:"message" example:"Category is required"`
	// Additional details
	Details string `json:"details" example:"Field: category"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message" example:"product deleted successfully"`
}

// HealthResponse reports service and database status
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Service  string `json:"service" example:"inventory-api"`
	Database string `json:"database" example:"up"`
}

// SupplierRequest is the body for creating or replacing a supplier
// @Description Supplier fields. Blank optional strings are stored as absent.
type SupplierRequest struct {
	CompanyName   string           `json:"company_name" example:"Acme Corp"`
	ContactPerson string           `json:"contact_person" example:"Jane Roe"`
	Phone         string           `json:"phone" example:"555-0100"`
	Email         string           `json:"email" example:"sales@acme.test"`
	Address       string           `json:"address" example:"1 Main St"`
	Rating        *decimal.Decimal `json:"rating" swaggertype:"number" example:"4.5"`
}

func (r SupplierRequest) toInput() service.SupplierInput {
	in := service.SupplierInput{
		CompanyName:   r.CompanyName,
		ContactPerson: r.ContactPerson,
		Phone:         r.Phone,
		Email:         r.Email,
		Address:       r.Address,
	}
	if r.Rating != nil {
		in.Rating = domain.Some(*r.Rating)
	}
	return in
}

// SupplierResponse is a supplier as returned by the API
type SupplierResponse struct {
	ID            int64            `json:"id" example:"1"`
	CompanyName   string           `json:"company_name" example:"Acme Corp"`
	ContactPerson *string          `json:"contact_person,omitempty" example:"Jane Roe"`
	Phone         *string          `json:"phone,omitempty" example:"555-0100"`
	Email         *string          `json:"email,omitempty" example:"sales@acme.test"`
	Address       *string          `json:"address,omitempty" example:"1 Main St"`
	Rating        *decimal.Decimal `json:"rating,omitempty" swaggertype:"string" example:"4.5"`
	DisplayName   string           `json:"display_name" example:"Acme Corp (Jane Roe)"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func newSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		CompanyName:   s.CompanyName,
		ContactPerson: optionalPtr(s.ContactPerson),
		Phone:         optionalPtr(s.Phone),
		Email:         optionalPtr(s.Email),
		Address:       optionalPtr(s.Address),
		Rating:        nullDecimalPtr(s.Rating),
		DisplayName:   s.DisplayName(),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func newSupplierResponses(suppliers []domain.Supplier) []SupplierResponse {
	out := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, newSupplierResponse(&suppliers[i]))
	}
	return out
}

// DeleteSupplierResponse reports a supplier deletion
type DeleteSupplierResponse struct {
	Deleted     bool `json:"deleted" example:"true"`
	HadProducts bool `json:"had_products" example:"false"`
}

// ProductRequest is the body for creating or replacing a product
type ProductRequest struct {
	Name          string           `json:"name" example:"Laptop"`
	Code          string           `json:"code" example:"LP-100"`
	Category      string           `json:"category" example:"Electronics"`
	Description   string           `json:"description" example:"14 inch"`
	UnitPrice     *decimal.Decimal `json:"unit_price" swaggertype:"number" example:"999.99"`
	StockQuantity *int             `json:"stock_quantity" example:"5"`
	ReorderLevel  *int             `json:"reorder_level" example:"2"`
	SupplierID    *int64           `json:"supplier_id" example:"1"`
}

func (r ProductRequest) toInput() service.ProductInput {
	in := service.ProductInput{
		Name:        r.Name,
		Code:        r.Code,
		Category:    r.Category,
		Description: r.Description,
	}
	if r.UnitPrice != nil {
		in.UnitPrice = domain.Some(*r.UnitPrice)
	}
	if r.StockQuantity != nil {
		in.StockQuantity = domain.Some(*r.StockQuantity)
	}
	if r.ReorderLevel != nil {
		in.ReorderLevel = domain.Some(*r.ReorderLevel)
	}
	if r.SupplierID != nil {
		in.SupplierID = domain.Some(*r.SupplierID)
	}
	return in
}

// StockRequest sets a product's quantity on hand
type StockRequest struct {
	Quantity *int `json:"quantity" binding:"required" example:"25"`
}

// ProductResponse is a product as returned by the API
type ProductResponse struct {
	ID             int64            `json:"id" example:"1"`
	Name           string           `json:"name" example:"Laptop"`
	Code           *string          `json:"code,omitempty" example:"LP-100"`
	Category       string           `json:"category" example:"Electronics"`
	Description    *string          `json:"description,omitempty" example:"14 inch"`
	UnitPrice      decimal.Decimal  `json:"unit_price" swaggertype:"string" example:"999.99"`
	StockQuantity  int              `json:"stock_quantity" example:"5"`
	ReorderLevel   int              `json:"reorder_level" example:"2"`
	StockValue     decimal.Decimal  `json:"stock_value" swaggertype:"string" example:"4999.95"`
	StockStatus    string           `json:"stock_status" example:"NORMAL"`
	SupplierID     int64            `json:"supplier_id" example:"1"`
	SupplierName   *string          `json:"supplier_name,omitempty" example:"Acme Corp"`
	SupplierRating *decimal.Decimal `json:"supplier_rating,omitempty" swaggertype:"string" example:"4.5"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func newProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Code:          optionalPtr(p.Code),
		Category:      p.Category,
		Description:   optionalPtr(p.Description),
		UnitPrice:     p.UnitPrice,
		StockQuantity: p.StockQuantity,
		ReorderLevel:  p.ReorderLevel,
		StockValue:    p.StockValue(),
		StockStatus:   string(p.StockStatus()),
		SupplierID:    p.SupplierID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func newProductViewResponse(v *domain.ProductView) ProductResponse {
	resp := newProductResponse(&v.Product)
	resp.SupplierName = optionalPtr(v.SupplierName)
	resp.SupplierRating = nullDecimalPtr(v.SupplierRating)
	return resp
}

func newProductViewResponses(views []domain.ProductView) []ProductResponse {
	out := make([]ProductResponse, 0, len(views))
	for i := range views {
		out = append(out, newProductViewResponse(&views[i]))
	}
	return out
}

// StockSummaryResponse is the stock summary report
type StockSummaryResponse struct {
	TotalProducts   int               `json:"total_products" example:"12"`
	TotalUnits      int               `json:"total_units" example:"340"`
	TotalValue      decimal.Decimal   `json:"total_value" swaggertype:"string" example:"15230.50"`
	LowStockCount   int               `json:"low_stock_count" example:"3"`
	OutOfStockCount int               `json:"out_of_stock_count" example:"1"`
	Products        []ProductResponse `json:"products"`
}

// ReorderLineResponse is one line of the reorder list
type ReorderLineResponse struct {
	Product        ProductResponse `json:"product"`
	SuggestedOrder int             `json:"suggested_order" example:"8"`
}

// CategorySummaryResponse aggregates the products of one category
type CategorySummaryResponse struct {
	Category     string          `json:"category" example:"Electronics"`
	ProductCount int             `json:"product_count" example:"4"`
	TotalUnits   int             `json:"total_units" example:"40"`
	TotalValue   decimal.Decimal `json:"total_value" swaggertype:"string" example:"3999.60"`
}

func newCategoryResponses(categories []service.CategorySummary) []CategorySummaryResponse {
	out := make([]CategorySummaryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategorySummaryResponse(c))
	}
	return out
}

// SupplierPerformanceResponse lists suppliers best rated first
type SupplierPerformanceResponse struct {
	RatedCount    int                `json:"rated_count" example:"3"`
	AverageRating *decimal.Decimal   `json:"average_rating,omitempty" swaggertype:"string" example:"4.10"`
	Suppliers     []SupplierResponse `json:"suppliers"`
}

// ValuationResponse is the inventory valuation report
type ValuationResponse struct {
	TotalValue decimal.Decimal           `json:"total_value" swaggertype:"string" example:"15230.50"`
	Categories []CategorySummaryResponse `json:"categories"`
}

func optionalPtr(o domain.Optional[string]) *string {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}

func nullDecimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
