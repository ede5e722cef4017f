package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"example.com/relieftrack/services/tracker/internal/model"
	"example.com/relieftrack/services/tracker/internal/repository"
	"example.com/relieftrack/services/tracker/internal/service"
)

// DecrementRequest is the request to reduce an item's stock
type DecrementRequest struct {
	Amount int `json:"amount"`
}

// listInventory returns inventory items, optionally filtered
func (s *Server) listInventory(c *gin.Context) {
	filter := repository.InventoryFilter{
		Category: model.ItemCategory(c.Query("category")),
		Query:    c.Query("q"),
		InStock:  c.Query("in_stock") == "true",
	}

	items, err := s.inventory.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// getInventoryItem returns a single inventory item by ID
func (s *Server) getInventoryItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	item, err := s.inventory.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// createInventoryItem adds a new item to the inventory
func (s *Server) createInventoryItem(c *gin.Context) {
	var req service.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := s.inventory.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// updateInventoryItem updates an existing inventory item
func (s *Server) updateInventoryItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req service.UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := s.inventory.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// deleteInventoryItem removes an inventory item
func (s *Server) deleteInventoryItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := s.inventory.Delete(c.Request.Context(), id, c.Query("performed_by")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "inventory item deleted"})
}

// decrementInventoryItem reduces an item's quantity without recording a distribution
func (s *Server) decrementInventoryItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req DecrementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Allow amount via query string as well
		amount, qerr := strconv.Atoi(c.Query("amount"))
		if qerr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		req.Amount = amount
	}

	if err := s.inventory.Decrement(c.Request.Context(), id, req.Amount); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "quantity updated"})
}
