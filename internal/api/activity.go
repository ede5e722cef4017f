package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"example.com/relieftrack/services/tracker/internal/service"
)

// listActivity returns recent activity log entries, newest first
func (s *Server) listActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	req := service.ListActivityRequest{
		EntityType: c.Query("entity_type"),
		ActionType: c.Query("action_type"),
		Query:      c.Query("q"),
		Limit:      limit,
	}

	entries, err := s.activity.List(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": entries})
}

// searchActivity performs a full text search over the activity log
func (s *Server) searchActivity(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := s.activity.Search(c.Request.Context(), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": entries})
}

// streamActivity pushes new activity entries to the client as server sent events
func (s *Server) streamActivity(c *gin.Context) {
	ch, cancel := s.liveFeed.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case entry, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("activity", entry)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
