package handlers

import (
	"strconv"

	apperrors "inventory-management/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// fail hands err to middleware.ErrorHandler, which renders it.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		fail(c, apperrors.NewInvalidRequest("invalid "+name, c.Param(name)))
		return 0, false
	}
	return id, true
}

func queryDecimal(c *gin.Context, name string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(c.Query(name))
	if err != nil {
		fail(c, apperrors.NewInvalidRequest("invalid "+name, c.Query(name)))
		return decimal.Zero, false
	}
	return d, true
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fail(c, apperrors.NewInvalidRequest("invalid "+name, raw))
		return 0, false
	}
	return n, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fail(c, apperrors.NewInvalidRequest("invalid request body", err.Error()))
		return false
	}
	return true
}
