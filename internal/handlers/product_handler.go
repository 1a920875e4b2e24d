package handlers

import (
	"net/http"
	"strconv"

	"inventory-management/internal/service"
	apperrors "inventory-management/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	logger   *zap.Logger
	products *service.ProductService
}

func NewProductHandler(logger *zap.Logger, products *service.ProductService) *ProductHandler {
	return &ProductHandler{
		logger:   logger,
		products: products,
	}
}

// Register mounts the product routes on rg.
func (h *ProductHandler) Register(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.GET("/low-stock", h.LowStock)
		products.GET("/out-of-stock", h.OutOfStock)
		products.GET("/categories", h.Categories)
		products.GET("/code/:code", h.GetProductByCode)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.PATCH("/:id/stock", h.UpdateStock)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

// ListProducts handles GET /api/v1/products
// @Summary      List products
// @Description  Lists active products with their supplier. At most one filter applies, checked in the order supplier_id, category, name.
// @Tags         products
// @Produce      json
// @Param        name         query    string  false  "Product name substring (case-insensitive)"
// @Param        category     query    string  false  "Exact category"
// @Param        supplier_id  query    int     false  "Supplier ID"
// @Success      200          {array}  ProductResponse
// @Failure      400          {object} ErrorResponse
// @Router       /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if raw := c.Query("supplier_id"); raw != "" {
		supplierID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fail(c, apperrors.NewInvalidRequest("invalid supplier_id", raw))
			return
		}
		products, err := h.products.FindProductsBySupplier(ctx, supplierID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, newProductViewResponses(products))
		return
	}

	if category := c.Query("category"); category != "" {
		products, err := h.products.FindProductsByCategory(ctx, category)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, newProductViewResponses(products))
		return
	}

	products, err := h.products.SearchProductsByName(ctx, c.Query("name"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductViewResponses(products))
}

// CreateProduct handles POST /api/v1/products
// @Summary      Create a product
// @Description  Code is optional but unique; the supplier must exist and be active.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        X-Request-ID  header    string          false  "Request ID"
// @Param        request       body      ProductRequest  true   "Product"
// @Success      201           {object}  ProductResponse
// @Failure      400           {object}  ErrorResponse  "Validation failed"
// @Failure      500           {object}  ErrorResponse  "Persistence error"
// @Router       /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.products.CreateProduct(c.Request.Context(), req.toInput())
	if err != nil {
		fail(c, err)
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID))
	c.JSON(http.StatusCreated, newProductResponse(product))
}

// GetProduct handles GET /api/v1/products/:id
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  ProductResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	found, err := h.products.FindProductByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	product, ok := found.Get()
	if !ok {
		fail(c, apperrors.NewNotFound("Product", id))
		return
	}
	c.JSON(http.StatusOK, newProductViewResponse(&product))
}

// GetProductByCode handles GET /api/v1/products/code/:code
// @Summary      Find a product by code
// @Tags         products
// @Produce      json
// @Param        code  path      string  true  "Product code"
// @Success      200   {object}  ProductResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /products/code/{code} [get]
func (h *ProductHandler) GetProductByCode(c *gin.Context) {
	code := c.Param("code")

	found, err := h.products.FindProductByCode(c.Request.Context(), code)
	if err != nil {
		fail(c, err)
		return
	}
	product, ok := found.Get()
	if !ok {
		fail(c, apperrors.NewStandardError(apperrors.CodeResourceNotFound, "Product not found with code: "+code, "code"))
		return
	}
	c.JSON(http.StatusOK, newProductViewResponse(&product))
}

// UpdateProduct handles PUT /api/v1/products/:id
// @Summary      Replace a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "Product ID"
// @Param        request  body      ProductRequest  true  "Product"
// @Success      200      {object}  ProductResponse
// @Failure      400      {object}  ErrorResponse  "Validation failed or product not found"
// @Failure      500      {object}  ErrorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), id, req.toInput())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductResponse(product))
}

// UpdateStock handles PATCH /api/v1/products/:id/stock
// @Summary      Set stock quantity
// @Description  Overwrites the quantity on hand. Returns 404 when no active product has the id.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id       path      int           true  "Product ID"
// @Param        request  body      StockRequest  true  "New quantity"
// @Success      200      {object}  SuccessResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /products/{id}/stock [patch]
func (h *ProductHandler) UpdateStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req StockRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.products.UpdateStockQuantity(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	if !updated {
		fail(c, apperrors.NewNotFound("Product", id))
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "stock quantity updated"})
}

// DeleteProduct handles DELETE /api/v1/products/:id
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse  "Product not found"
// @Router       /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "product deleted successfully"})
}

// LowStock handles GET /api/v1/products/low-stock
// @Summary      Products at or below their reorder level
// @Tags         products
// @Produce      json
// @Success      200  {array}  ProductResponse
// @Router       /products/low-stock [get]
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.products.LowStockProducts(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductViewResponses(products))
}

// OutOfStock handles GET /api/v1/products/out-of-stock
// @Summary      Products with no stock
// @Tags         products
// @Produce      json
// @Success      200  {array}  ProductResponse
// @Router       /products/out-of-stock [get]
func (h *ProductHandler) OutOfStock(c *gin.Context) {
	products, err := h.products.OutOfStockProducts(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductViewResponses(products))
}

// Categories handles GET /api/v1/products/categories
// @Summary      Distinct categories of active products
// @Tags         products
// @Produce      json
// @Success      200  {array}  string
// @Router       /products/categories [get]
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.products.DistinctCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
