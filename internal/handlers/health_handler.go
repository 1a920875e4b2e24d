package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ConnectionTester reports whether the database answers.
type ConnectionTester interface {
	TestConnection(ctx context.Context) bool
}

type HealthHandler struct {
	service string
	db      ConnectionTester
}

func NewHealthHandler(service string, db ConnectionTester) *HealthHandler {
	return &HealthHandler{service: service, db: db}
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if !h.db.TestConnection(ctx) {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Service: h.service, Database: "down"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Service: h.service, Database: "up"})
}
