package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cbisgaard/repairdesk/internal/common"
)

// writeError maps the error taxonomy onto HTTP status codes. NotFound and
// InvalidInput are surfaced with their message; anything else is hidden
// behind a generic 500 so store internals never leak to callers.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrInvalidInput), errors.Is(err, common.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
