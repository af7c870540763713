package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) searchJobs(c *gin.Context) {
	jobs, err := s.search.SearchJobs(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (s *Server) searchProducts(c *gin.Context) {
	products, err := s.search.SearchProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
