package handlers

import (
	"net/http"
	"strings"

	"inventory-management/internal/service"
	apperrors "inventory-management/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultTopSuppliers = 5

type SupplierHandler struct {
	logger    *zap.Logger
	suppliers *service.SupplierService
	products  *service.ProductService
}

func NewSupplierHandler(logger *zap.Logger, suppliers *service.SupplierService, products *service.ProductService) *SupplierHandler {
	return &SupplierHandler{
		logger:    logger,
		suppliers: suppliers,
		products:  products,
	}
}

// Register mounts the supplier routes on rg.
func (h *SupplierHandler) Register(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	{
		suppliers.GET("", h.ListSuppliers)
		suppliers.POST("", h.CreateSupplier)
		suppliers.GET("/top", h.TopSuppliers)
		suppliers.GET("/by-email", h.GetSupplierByEmail)
		suppliers.GET("/:id", h.GetSupplier)
		suppliers.PUT("/:id", h.UpdateSupplier)
		suppliers.DELETE("/:id", h.DeleteSupplier)
		suppliers.GET("/:id/products", h.ListSupplierProducts)
	}
}

// ListSuppliers handles GET /api/v1/suppliers
// @Summary      List suppliers
// @Description  Lists active suppliers ordered by company name. Filters by name substring, or by an inclusive rating range when min_rating and max_rating are both given.
// @Tags         suppliers
// @Produce      json
// @Param        name        query     string  false  "Company name substring (case-insensitive)"
// @Param        min_rating  query     number  false  "Minimum rating (1.0 - 5.0)"
// @Param        max_rating  query     number  false  "Maximum rating (1.0 - 5.0)"
// @Success      200         {array}   SupplierResponse
// @Failure      400         {object}  ErrorResponse
// @Failure      500         {object}  ErrorResponse
// @Router       /suppliers [get]
func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("min_rating") != "" || c.Query("max_rating") != "" {
		min, ok := queryDecimal(c, "min_rating")
		if !ok {
			return
		}
		max, ok := queryDecimal(c, "max_rating")
		if !ok {
			return
		}
		suppliers, err := h.suppliers.FindSuppliersByRatingRange(ctx, min, max)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, newSupplierResponses(suppliers))
		return
	}

	suppliers, err := h.suppliers.SearchSuppliersByName(ctx, c.Query("name"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newSupplierResponses(suppliers))
}

// CreateSupplier handles POST /api/v1/suppliers
// @Summary      Create a supplier
// @Description  Email must be unique among active suppliers; a clash is reported as a persistence error.
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        X-Request-ID  header    string           false  "Request ID"
// @Param        request       body      SupplierRequest  true   "Supplier"
// @Success      201           {object}  SupplierResponse
// @Failure      400           {object}  ErrorResponse  "Validation failed"
// @Failure      500           {object}  ErrorResponse  "Persistence error"
// @Router       /suppliers [post]
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req SupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	supplier, err := h.suppliers.CreateSupplier(c.Request.Context(), req.toInput())
	if err != nil {
		fail(c, err)
		return
	}

	h.logger.Info("Supplier created", zap.Int64("supplier_id", supplier.ID))
	c.JSON(http.StatusCreated, newSupplierResponse(supplier))
}

// GetSupplier handles GET /api/v1/suppliers/:id
// @Summary      Get a supplier
// @Tags         suppliers
// @Produce      json
// @Param        id   path      int  true  "Supplier ID"
// @Success      200  {object}  SupplierResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /suppliers/{id} [get]
func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	found, err := h.suppliers.FindSupplierByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	supplier, ok := found.Get()
	if !ok {
		fail(c, apperrors.NewNotFound("Supplier", id))
		return
	}
	c.JSON(http.StatusOK, newSupplierResponse(&supplier))
}

// GetSupplierByEmail handles GET /api/v1/suppliers/by-email
// @Summary      Find a supplier by email
// @Tags         suppliers
// @Produce      json
// @Param        email  query     string  true  "Exact email"
// @Success      200    {object}  SupplierResponse
// @Failure      404    {object}  ErrorResponse
// @Router       /suppliers/by-email [get]
func (h *SupplierHandler) GetSupplierByEmail(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		fail(c, apperrors.NewInvalidRequest("email is required", "query: email"))
		return
	}

	found, err := h.suppliers.FindSupplierByEmail(c.Request.Context(), email)
	if err != nil {
		fail(c, err)
		return
	}
	supplier, ok := found.Get()
	if !ok {
		fail(c, apperrors.NewStandardError(apperrors.CodeResourceNotFound, "Supplier not found with email: "+email, "email"))
		return
	}
	c.JSON(http.StatusOK, newSupplierResponse(&supplier))
}

// UpdateSupplier handles PUT /api/v1/suppliers/:id
// @Summary      Replace a supplier
// @Description  Every field is overwritten; omitted optional fields become absent.
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        id       path      int              true  "Supplier ID"
// @Param        request  body      SupplierRequest  true  "Supplier"
// @Success      200      {object}  SupplierResponse
// @Failure      400      {object}  ErrorResponse  "Validation failed or supplier not found"
// @Failure      500      {object}  ErrorResponse
// @Router       /suppliers/{id} [put]
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req SupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	supplier, err := h.suppliers.UpdateSupplier(c.Request.Context(), id, req.toInput())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newSupplierResponse(supplier))
}

// DeleteSupplier handles DELETE /api/v1/suppliers/:id
// @Summary      Delete a supplier
// @Description  Soft delete. Suppliers with active products are still deleted; had_products reports it.
// @Tags         suppliers
// @Produce      json
// @Param        id   path      int  true  "Supplier ID"
// @Success      200  {object}  DeleteSupplierResponse
// @Failure      400  {object}  ErrorResponse  "Supplier not found"
// @Router       /suppliers/{id} [delete]
func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	outcome, err := h.suppliers.DeleteSupplier(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, DeleteSupplierResponse{Deleted: outcome.Deleted, HadProducts: outcome.HadProducts})
}

// TopSuppliers handles GET /api/v1/suppliers/top
// @Summary      Best rated suppliers
// @Tags         suppliers
// @Produce      json
// @Param        limit  query    int  false  "How many (default 5)"
// @Success      200    {array}  SupplierResponse
// @Failure      400    {object} ErrorResponse
// @Router       /suppliers/top [get]
func (h *SupplierHandler) TopSuppliers(c *gin.Context) {
	limit, ok := queryInt(c, "limit", defaultTopSuppliers)
	if !ok {
		return
	}

	suppliers, err := h.suppliers.TopSuppliers(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newSupplierResponses(suppliers))
}

// ListSupplierProducts handles GET /api/v1/suppliers/:id/products
// @Summary      Products of a supplier
// @Tags         suppliers
// @Produce      json
// @Param        id   path     int  true  "Supplier ID"
// @Success      200  {array}  ProductResponse
// @Router       /suppliers/{id}/products [get]
func (h *SupplierHandler) ListSupplierProducts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	products, err := h.products.FindProductsBySupplier(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductViewResponses(products))
}
