package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"example.com/relieftrack/services/tracker/internal/repository"
	"example.com/relieftrack/services/tracker/internal/service"
)

// listHouseholds returns registered households, optionally filtered
func (s *Server) listHouseholds(c *gin.Context) {
	filter := repository.HouseholdFilter{
		Purok: c.Query("purok"),
		Query: c.Query("q"),
	}

	households, err := s.households.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"households": households})
}

// getHousehold returns a single household by ID
func (s *Server) getHousehold(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	household, err := s.households.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, household)
}

// createHousehold registers a new household
func (s *Server) createHousehold(c *gin.Context) {
	var req service.CreateHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	household, err := s.households.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, household)
}

// updateHousehold updates an existing household
func (s *Server) updateHousehold(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req service.UpdateHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	household, err := s.households.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, household)
}

// deleteHousehold removes a household and its distribution records
func (s *Server) deleteHousehold(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := s.households.Delete(c.Request.Context(), id, c.Query("performed_by")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "household deleted"})
}
