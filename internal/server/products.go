package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cbisgaard/repairdesk/internal/entity"
)

func (s *Server) listProducts(c *gin.Context) {
	products, err := s.productRepo.ListProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) createProduct(c *gin.Context) {
	var product entity.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product.ID = 0

	saved, err := s.productRepo.CreateProduct(c.Request.Context(), &product)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// updateProduct applies a partial update: only the fields present in the
// body are changed, unknown fields are ignored.
func (s *Server) updateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := s.productRepo.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	for field, value := range updates {
		switch field {
		case "product_number":
			if v, ok := value.(string); ok {
				product.ProductNumber = v
			}
		case "name":
			if v, ok := value.(string); ok {
				product.Name = v
			}
		case "ean":
			if v, ok := value.(string); ok {
				product.EAN = v
			}
		case "type":
			if v, ok := value.(string); ok {
				product.Type = v
			}
		case "price":
			switch v := value.(type) {
			case float64:
				product.Price = v
			case string:
				if parsed, err := strconv.ParseFloat(v, 64); err == nil {
					product.Price = parsed
				}
			}
		default:
			s.logger.Debug("ignoring unknown product field", "field", field)
		}
	}

	saved, err := s.productRepo.SaveProduct(c.Request.Context(), product)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := s.productRepo.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
