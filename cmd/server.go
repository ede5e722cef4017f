package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"example.com/relieftrack/services/tracker/internal/api"
	"example.com/relieftrack/services/tracker/internal/cache"
	"example.com/relieftrack/services/tracker/internal/db"
	"example.com/relieftrack/services/tracker/internal/feed"
	"example.com/relieftrack/services/tracker/internal/messagebus"
	"example.com/relieftrack/services/tracker/internal/repository"
	"example.com/relieftrack/services/tracker/internal/search"
	"example.com/relieftrack/services/tracker/internal/service"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Run:   runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, args []string) {
	log.Info().Msg("Starting server")

	// Connect to database
	database, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Initialize Redis cache (no-op client when disabled)
	cacheClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	// Initialize Azure Service Bus publisher when configured
	var bus messagebus.Client
	if cfg.AzurePublishEnabled {
		bus, err = messagebus.NewClient(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Azure Service Bus")
		}
		defer bus.Close(context.Background())
	}

	// Initialize Elasticsearch client when configured
	var searchClient *search.Client
	if cfg.ElasticSearchEnabled {
		searchClient, err = search.NewClient(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Elasticsearch")
		}
	}

	// Initialize live feed
	liveFeed := feed.New(cfg.FeedBufferSize)
	defer liveFeed.Close()

	// Initialize repositories
	inventoryRepo := repository.NewInventoryRepository(database)
	householdRepo := repository.NewHouseholdRepository(database)
	distributionRepo := repository.NewDistributionRepository(database)
	activityRepo := repository.NewActivityRepository(database)

	// Initialize services
	activityService := service.NewActivityService(activityRepo, liveFeed, bus, cfg.AzureActivityQueue, searchClient, cfg.ActivityListLimit)
	inventoryService := service.NewInventoryService(inventoryRepo, activityService, cacheClient)
	householdService := service.NewHouseholdService(householdRepo, activityService, cacheClient)
	distributionService := service.NewDistributionService(distributionRepo, inventoryRepo, householdRepo, activityService, cacheClient)
	statsService := service.NewStatsService(inventoryRepo, householdRepo, distributionRepo, activityRepo, cacheClient)

	// Initialize server
	server := api.NewServer(cfg, inventoryService, householdService, distributionService, activityService, statsService, liveFeed)

	// Start HTTP server
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
