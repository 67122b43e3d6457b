package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mining-ops-api-server/internal/store"
)

// storeError maps store errors onto HTTP status codes.
func storeError(c *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": entity + " with this ID already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error", "details": err.Error()})
	}
}

// parseDate accepts RFC3339 or plain yyyy-mm-dd query values.
func parseDate(value string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// queryDateRange reads startDate/endDate; the range only applies when both
// parse, matching the original behavior.
func queryDateRange(c *gin.Context) store.DateRange {
	var dateRange store.DateRange
	from, okFrom := parseDate(c.Query("startDate"))
	to, okTo := parseDate(c.Query("endDate"))
	if okFrom && okTo {
		dateRange.From = &from
		dateRange.To = &to
	}
	return dateRange
}
