package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"example.com/relieftrack/services/tracker/internal/messagebus"
	"example.com/relieftrack/services/tracker/internal/search"
	"example.com/relieftrack/services/tracker/internal/worker"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the activity indexing worker",
	Run:   runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) {
	log.Info().Msg("Starting worker")

	// Initialize Elasticsearch client
	searchClient, err := search.NewClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Elasticsearch")
	}

	if err := searchClient.EnsureIndex(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure activity index")
	}

	// Initialize Azure Service Bus client
	bus, err := messagebus.NewClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Azure Service Bus")
	}
	defer bus.Close(context.Background())

	// Initialize message processor
	processor := worker.NewProcessor(searchClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start queue consumer
	go func() {
		err := bus.ReceiveLoop(ctx, cfg.AzureActivityQueue, processor)
		if fatalConsumerErr(err) {
			log.Fatal().Err(err).Msg("Activity queue consumer failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down worker...")
	cancel()

	log.Info().Msg("Worker exited properly")
}

// fatalConsumerErr reports whether the consumer stopped for a reason other
// than a shutdown-triggered context cancellation
func fatalConsumerErr(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}
