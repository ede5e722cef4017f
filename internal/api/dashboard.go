package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// dashboardStats returns aggregate counts for the dashboard
func (s *Server) dashboardStats(c *gin.Context) {
	stats, err := s.stats.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
