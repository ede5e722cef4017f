package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"example.com/relieftrack/services/tracker/config"
	"example.com/relieftrack/services/tracker/internal/feed"
	"example.com/relieftrack/services/tracker/internal/service"
)

// Server is the HTTP server for the API
type Server struct {
	cfg           config.Config
	router        *gin.Engine
	httpServer    *http.Server
	inventory     service.InventoryService
	households    service.HouseholdService
	distributions service.DistributionService
	activity      service.ActivityService
	stats         service.StatsService
	liveFeed      *feed.Feed
}

// NewServer creates a new API server
func NewServer(
	cfg config.Config,
	inventory service.InventoryService,
	households service.HouseholdService,
	distributions service.DistributionService,
	activity service.ActivityService,
	stats service.StatsService,
	liveFeed *feed.Feed,
) *Server {
	server := &Server{
		cfg:           cfg,
		router:        gin.Default(),
		inventory:     inventory,
		households:    households,
		distributions: distributions,
		activity:      activity,
		stats:         stats,
		liveFeed:      liveFeed,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes()

	return server
}

// setupMiddleware adds middleware to the router
func (s *Server) setupMiddleware() {
	// Add request ID middleware
	s.router.Use(RequestIDMiddleware())

	// Add CORS middleware
	if s.cfg.CorsEnabled {
		s.router.Use(CORSMiddleware(s.cfg.CorsOrigins))
	}

	// Add recovery middleware
	s.router.Use(gin.Recovery())

	// Add logging middleware
	s.router.Use(LoggingMiddleware())
}

// setupRoutes defines the API routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	// API v1 group
	v1 := s.router.Group("/api/v1")

	// Inventory routes
	inventoryRoutes := v1.Group("/inventory")
	{
		inventoryRoutes.GET("", s.listInventory)
		inventoryRoutes.POST("", s.createInventoryItem)
		inventoryRoutes.GET("/:id", s.getInventoryItem)
		inventoryRoutes.PUT("/:id", s.updateInventoryItem)
		inventoryRoutes.DELETE("/:id", s.deleteInventoryItem)
		inventoryRoutes.POST("/:id/decrement", s.decrementInventoryItem)
	}

	// Household routes
	householdRoutes := v1.Group("/households")
	{
		householdRoutes.GET("", s.listHouseholds)
		householdRoutes.POST("", s.createHousehold)
		householdRoutes.GET("/:id", s.getHousehold)
		householdRoutes.PUT("/:id", s.updateHousehold)
		householdRoutes.DELETE("/:id", s.deleteHousehold)
	}

	// Distribution routes
	distributionRoutes := v1.Group("/distributions")
	{
		distributionRoutes.GET("", s.listDistributions)
		distributionRoutes.POST("", s.recordDistribution)
	}

	// Activity routes
	activityRoutes := v1.Group("/activity")
	{
		activityRoutes.GET("", s.listActivity)
		activityRoutes.GET("/search", s.searchActivity)
		activityRoutes.GET("/stream", s.streamActivity)
	}

	// Dashboard routes
	v1.GET("/dashboard/stats", s.dashboardStats)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.HTTPServerAddress,
		Handler: s.router,
	}

	log.Info().Msgf("HTTP server starting on %s", s.cfg.HTTPServerAddress)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
