package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"example.com/relieftrack/services/tracker/internal/feed"
	"example.com/relieftrack/services/tracker/internal/messagebus"
	"example.com/relieftrack/services/tracker/internal/model"
	"example.com/relieftrack/services/tracker/internal/repository"
	"example.com/relieftrack/services/tracker/internal/search"
)

// ActivityRecorder appends audit entries. Failures never propagate to the
// caller: the triggering business action has already succeeded and the audit
// trail is advisory.
type ActivityRecorder interface {
	Record(ctx context.Context, entry model.ActivityLog)
}

// ListActivityRequest filters an activity listing.
type ListActivityRequest struct {
	EntityType string
	ActionType string
	Query      string
	Limit      int
}

// ActivityService defines the interface for the activity log
type ActivityService interface {
	ActivityRecorder
	List(ctx context.Context, req ListActivityRequest) ([]*model.ActivityLog, error)
	Search(ctx context.Context, query string, limit int) ([]*model.ActivityLog, error)
}

// activityService implements ActivityService
type activityService struct {
	repo         repository.ActivityRepository
	feed         *feed.Feed
	bus          messagebus.Client
	queueName    string
	searchClient *search.Client
	defaultLimit int
}

// NewActivityService creates a new activity service. bus and searchClient
// may be nil when the corresponding backends are not configured.
func NewActivityService(
	repo repository.ActivityRepository,
	liveFeed *feed.Feed,
	bus messagebus.Client,
	queueName string,
	searchClient *search.Client,
	defaultLimit int,
) ActivityService {
	if defaultLimit <= 0 {
		defaultLimit = 200
	}
	return &activityService{
		repo:         repo,
		feed:         liveFeed,
		bus:          bus,
		queueName:    queueName,
		searchClient: searchClient,
		defaultLimit: defaultLimit,
	}
}

// Record appends an audit entry, publishes it to live subscribers and, when
// a message bus is configured, to the audit queue. All failures are logged
// and swallowed.
func (s *activityService) Record(ctx context.Context, entry model.ActivityLog) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	saved, err := s.repo.Create(ctx, &entry)
	if err != nil {
		log.Error().Err(err).
			Str("entityType", string(entry.EntityType)).
			Str("actionType", string(entry.ActionType)).
			Msg("Failed to append activity entry")
		return
	}

	if s.feed != nil {
		s.feed.Publish(*saved)
	}

	if s.bus != nil {
		go func(entry model.ActivityLog) {
			pubCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			err := messagebus.RetryWithBackoff(pubCtx, func() error {
				return s.bus.PublishMessage(pubCtx, entry, s.queueName)
			}, 3)
			if err != nil {
				log.Error().Err(err).Str("entryID", entry.ID.String()).Msg("Failed to publish activity entry")
			}
		}(*saved)
	}
}

// List returns activity entries matching the request, newest first
func (s *activityService) List(ctx context.Context, req ListActivityRequest) ([]*model.ActivityLog, error) {
	limit := req.Limit
	if limit <= 0 || limit > s.defaultLimit {
		limit = s.defaultLimit
	}

	return s.repo.Find(ctx, repository.ActivityFilter{
		EntityType: model.EntityType(req.EntityType),
		ActionType: model.ActionType(req.ActionType),
		Query:      req.Query,
		Limit:      limit,
	})
}

// Search runs a full-text query over the activity index. Without a search
// backend it falls back to the database.
func (s *activityService) Search(ctx context.Context, query string, limit int) ([]*model.ActivityLog, error) {
	if s.searchClient == nil {
		return s.List(ctx, ListActivityRequest{Query: query, Limit: limit})
	}
	return s.searchClient.SearchActivity(ctx, query, limit)
}
