package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"example.com/relieftrack/services/tracker/internal/cache"
	"example.com/relieftrack/services/tracker/internal/model"
	"example.com/relieftrack/services/tracker/internal/repository"
	"example.com/relieftrack/services/tracker/internal/validation"
)

// RecordDistributionRequest defines the request to record a hand-out
type RecordDistributionRequest struct {
	HouseholdID         string `json:"household_id" validate:"required,uuid"`
	InventoryID         string `json:"inventory_id" validate:"required,uuid"`
	QuantityDistributed int    `json:"quantity_distributed" validate:"required,gte=1"`
	DistributedBy       string `json:"distributed_by" validate:"required"`
	Notes               string `json:"notes"`
}

// ListDistributionsRequest filters a distribution listing.
type ListDistributionsRequest struct {
	Purok string
	Query string
}

// DistributionService defines the interface for the distribution ledger
type DistributionService interface {
	Record(ctx context.Context, req *RecordDistributionRequest) (*model.Distribution, error)
	List(ctx context.Context, req ListDistributionsRequest) ([]*model.Distribution, error)
}

// distributionService implements DistributionService
type distributionService struct {
	repo          repository.DistributionRepository
	inventoryRepo repository.InventoryRepository
	householdRepo repository.HouseholdRepository
	activity      ActivityRecorder
	cache         cache.CacheClient
}

// NewDistributionService creates a new distribution service
func NewDistributionService(
	repo repository.DistributionRepository,
	inventoryRepo repository.InventoryRepository,
	householdRepo repository.HouseholdRepository,
	activity ActivityRecorder,
	cacheClient cache.CacheClient,
) DistributionService {
	return &distributionService{
		repo:          repo,
		inventoryRepo: inventoryRepo,
		householdRepo: householdRepo,
		activity:      activity,
		cache:         cacheClient,
	}
}

// Record registers a hand-out of an inventory item to a household. The
// distribution insert and the inventory decrement commit together; if the
// stock guard rejects the decrement the insert rolls back and nothing is
// recorded. The audit entry is appended after the commit and is non-fatal.
func (s *distributionService) Record(ctx context.Context, req *RecordDistributionRequest) (*model.Distribution, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	householdID, err := uuid.Parse(req.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid household_id", ErrValidation)
	}
	inventoryID, err := uuid.Parse(req.InventoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid inventory_id", ErrValidation)
	}

	household, err := s.householdRepo.GetByID(ctx, householdID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	item, err := s.inventoryRepo.GetByID(ctx, inventoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Advisory pre-check; the transactional guard below is what actually
	// protects the invariant.
	if req.QuantityDistributed > item.Quantity {
		return nil, ErrInsufficientStock
	}

	distribution := &model.Distribution{
		HouseholdID:         householdID,
		InventoryID:         inventoryID,
		QuantityDistributed: req.QuantityDistributed,
		DistributedBy:       req.DistributedBy,
		DistributedAt:       time.Now().UTC(),
	}
	if req.Notes != "" {
		distribution.Notes = &req.Notes
	}

	distribution, err = s.repo.Record(ctx, distribution)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientQuantity):
			return nil, ErrInsufficientStock
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.cache.DeleteItem(ctx, inventoryID.String()); err != nil {
		log.Warn().Err(err).Msg("Failed to evict inventory item from cache")
	}
	if err := s.cache.InvalidateStats(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate stats cache")
	}

	s.activity.Record(ctx, model.ActivityLog{
		ActionType:  model.ActionCreate,
		EntityType:  model.EntityDistribution,
		EntityID:    &distribution.ID,
		EntityName:  fmt.Sprintf("%s to %s", item.ItemName, household.HouseholdNumber),
		PerformedBy: req.DistributedBy,
		Details: model.MarshalDetails(model.DistributionDetails{
			Quantity:  distribution.QuantityDistributed,
			Item:      item.ItemName,
			Household: household.HouseholdNumber,
			Purok:     household.Purok,
		}),
	})

	return distribution, nil
}

// List returns distributions with their household and inventory fields,
// newest first, optionally narrowed by purok or a text query over the
// joined fields
func (s *distributionService) List(ctx context.Context, req ListDistributionsRequest) ([]*model.Distribution, error) {
	distributions, err := s.repo.List(ctx, repository.DistributionFilter{})
	if err != nil {
		return nil, err
	}

	if req.Purok == "" && req.Query == "" {
		return distributions, nil
	}

	query := strings.ToLower(req.Query)
	filtered := make([]*model.Distribution, 0, len(distributions))
	for _, d := range distributions {
		if req.Purok != "" && (d.Household == nil || d.Household.Purok != req.Purok) {
			continue
		}
		if query != "" && !matchesQuery(d, query) {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered, nil
}

func matchesQuery(d *model.Distribution, query string) bool {
	if d.Household != nil {
		if strings.Contains(strings.ToLower(d.Household.HouseholdNumber), query) ||
			strings.Contains(strings.ToLower(d.Household.HeadOfFamily), query) {
			return true
		}
	}
	if d.Inventory != nil && strings.Contains(strings.ToLower(d.Inventory.ItemName), query) {
		return true
	}
	return false
}
