package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cbisgaard/repairdesk/internal/services/parts"
)

// attachProducts handles the batch attach endpoint. The payload is a JSON
// array of {repairId, productId, quantity?} objects. Items are processed
// independently; the response carries a per-item outcome and the call as a
// whole succeeds even when single items fail.
func (s *Server) attachProducts(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	if err := validateJSONAgainstSchema(buildAttachSchema(), body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var reqs []parts.AttachRequest
	if err := json.Unmarshal(body, &reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := s.parts.AttachProducts(c.Request.Context(), reqs)

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"failed":  failed,
	})
}
