package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/feedlot/internal/repository/memory"
)

const dateLayout = "2006-01-02"

// respondStoreError maps store sentinel errors onto HTTP statuses.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, memory.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, memory.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, memory.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseDay(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s", value, dateLayout)
	}
	return t, nil
}

func parseOptionalDay(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDay(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
