package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"example.com/relieftrack/services/tracker/internal/model"
	"example.com/relieftrack/services/tracker/internal/search"
)

// Processor consumes activity entries from the audit queue and indexes them
// for full-text search
type Processor struct {
	searchClient *search.Client
}

// NewProcessor creates a new audit index processor
func NewProcessor(searchClient *search.Client) *Processor {
	return &Processor{searchClient: searchClient}
}

// HandleMessage indexes one queued activity entry
func (p *Processor) HandleMessage(ctx context.Context, body []byte) error {
	var entry model.ActivityLog
	if err := json.Unmarshal(body, &entry); err != nil {
		return fmt.Errorf("error unmarshalling activity entry: %w", err)
	}

	log.Info().
		Str("entryID", entry.ID.String()).
		Str("entityType", string(entry.EntityType)).
		Str("actionType", string(entry.ActionType)).
		Msg("Indexing activity entry")

	if err := p.searchClient.IndexActivity(ctx, &entry); err != nil {
		return fmt.Errorf("error indexing activity entry: %w", err)
	}
	return nil
}
