package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) exportJobs(c *gin.Context) {
	data, err := s.export.ExportJobsXLSX(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	filename := fmt.Sprintf("jobs-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
