package handlers

import (
	"net/http"

	"inventory-management/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportHandler struct {
	logger  *zap.Logger
	reports *service.ReportService
}

func NewReportHandler(logger *zap.Logger, reports *service.ReportService) *ReportHandler {
	return &ReportHandler{logger: logger, reports: reports}
}

// Register mounts the report routes on rg.
func (h *ReportHandler) Register(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/stock-summary", h.StockSummary)
		reports.GET("/reorder", h.ReorderList)
		reports.GET("/categories", h.CategoryBreakdown)
		reports.GET("/suppliers", h.SupplierPerformance)
		reports.GET("/valuation", h.Valuation)
	}
}

// StockSummary godoc
// @Summary      Stock summary
// @Tags         reports
// @Produce      json
// @Success      200  {object}  StockSummaryResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /reports/stock-summary [get]
func (h *ReportHandler) StockSummary(c *gin.Context) {
	report, err := h.reports.StockSummary(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, StockSummaryResponse{
		TotalProducts:   report.TotalProducts,
		TotalUnits:      report.TotalUnits,
		TotalValue:      report.TotalValue,
		LowStockCount:   report.LowStockCount,
		OutOfStockCount: report.OutOfStockCount,
		Products:        newProductViewResponses(report.Products),
	})
}

// ReorderList godoc
// @Summary      Reorder suggestions for low-stock products
// @Tags         reports
// @Produce      json
// @Success      200  {array}   ReorderLineResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /reports/reorder [get]
func (h *ReportHandler) ReorderList(c *gin.Context) {
	lines, err := h.reports.ReorderList(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]ReorderLineResponse, 0, len(lines))
	for i := range lines {
		out = append(out, ReorderLineResponse{
			Product:        newProductViewResponse(&lines[i].Product),
			SuggestedOrder: lines[i].SuggestedOrder,
		})
	}
	c.JSON(http.StatusOK, out)
}

// CategoryBreakdown godoc
// @Summary      Products, units and value per category
// @Tags         reports
// @Produce      json
// @Success      200  {array}   CategorySummaryResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /reports/categories [get]
func (h *ReportHandler) CategoryBreakdown(c *gin.Context) {
	categories, err := h.reports.CategoryBreakdown(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newCategoryResponses(categories))
}

// SupplierPerformance godoc
// @Summary      Suppliers by rating
// @Tags         reports
// @Produce      json
// @Success      200  {object}  SupplierPerformanceResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /reports/suppliers [get]
func (h *ReportHandler) SupplierPerformance(c *gin.Context) {
	perf, err := h.reports.SupplierPerformance(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SupplierPerformanceResponse{
		RatedCount:    perf.RatedCount,
		AverageRating: nullDecimalPtr(perf.AverageRating),
		Suppliers:     newSupplierResponses(perf.Suppliers),
	})
}

// Valuation godoc
// @Summary      Inventory valuation
// @Tags         reports
// @Produce      json
// @Success      200  {object}  ValuationResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /reports/valuation [get]
func (h *ReportHandler) Valuation(c *gin.Context) {
	v, err := h.reports.Valuation(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ValuationResponse{
		TotalValue: v.TotalValue,
		Categories: newCategoryResponses(v.Categories),
	})
}
