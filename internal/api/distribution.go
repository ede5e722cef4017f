package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/relieftrack/services/tracker/internal/service"
)

// listDistributions returns the distribution ledger, newest first
func (s *Server) listDistributions(c *gin.Context) {
	req := service.ListDistributionsRequest{
		Purok: c.Query("purok"),
		Query: c.Query("q"),
	}

	distributions, err := s.distributions.List(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"distributions": distributions})
}

// recordDistribution records a delivery and decrements the item's stock
func (s *Server) recordDistribution(c *gin.Context) {
	var req service.RecordDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	distribution, err := s.distributions.Record(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, distribution)
}
