package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"example.com/relieftrack/services/tracker/internal/cache"
	"example.com/relieftrack/services/tracker/internal/model"
	"example.com/relieftrack/services/tracker/internal/repository"
	"example.com/relieftrack/services/tracker/internal/validation"
)

// CreateHouseholdRequest defines the request to register a household
type CreateHouseholdRequest struct {
	HouseholdNumber string `json:"household_number" validate:"required"`
	HeadOfFamily    string `json:"head_of_family" validate:"required"`
	Purok           string `json:"purok" validate:"required,purok"`
	Address         string `json:"address" validate:"required"`
	ContactNumber   string `json:"contact_number"`
	FamilyMembers   int    `json:"family_members" validate:"required,gte=1"`
	PerformedBy     string `json:"performed_by" validate:"required"`
}

// UpdateHouseholdRequest defines the request to update a household
type UpdateHouseholdRequest struct {
	HouseholdNumber string `json:"household_number" validate:"required"`
	HeadOfFamily    string `json:"head_of_family" validate:"required"`
	Purok           string `json:"purok" validate:"required,purok"`
	Address         string `json:"address" validate:"required"`
	ContactNumber   string `json:"contact_number"`
	FamilyMembers   int    `json:"family_members" validate:"required,gte=1"`
	PerformedBy     string `json:"performed_by" validate:"required"`
}

// HouseholdService defines the interface for the household registry
type HouseholdService interface {
	List(ctx context.Context, filter repository.HouseholdFilter) ([]*model.Household, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Household, error)
	Create(ctx context.Context, req *CreateHouseholdRequest) (*model.Household, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateHouseholdRequest) (*model.Household, error)
	Delete(ctx context.Context, id uuid.UUID, performedBy string) error
}

// householdService implements HouseholdService
type householdService struct {
	repo     repository.HouseholdRepository
	activity ActivityRecorder
	cache    cache.CacheClient
}

// NewHouseholdService creates a new household service
func NewHouseholdService(
	repo repository.HouseholdRepository,
	activity ActivityRecorder,
	cacheClient cache.CacheClient,
) HouseholdService {
	return &householdService{
		repo:     repo,
		activity: activity,
		cache:    cacheClient,
	}
}

// List returns households matching the filter
func (s *householdService) List(ctx context.Context, filter repository.HouseholdFilter) ([]*model.Household, error) {
	return s.repo.List(ctx, filter)
}

// Get gets a household by ID
func (s *householdService) Get(ctx context.Context, id uuid.UUID) (*model.Household, error) {
	household, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return household, nil
}

// Create registers a new household. The household number must not already be
// in use: the pre-check gives a friendly error, the unique index closes the
// race two concurrent registrations would otherwise win together.
func (s *householdService) Create(ctx context.Context, req *CreateHouseholdRequest) (*model.Household, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	existing, err := s.repo.GetByNumber(ctx, req.HouseholdNumber)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateHouseholdNumber
	}

	household := &model.Household{
		HouseholdNumber: req.HouseholdNumber,
		HeadOfFamily:    req.HeadOfFamily,
		Purok:           req.Purok,
		Address:         req.Address,
		FamilyMembers:   req.FamilyMembers,
	}
	if req.ContactNumber != "" {
		household.ContactNumber = &req.ContactNumber
	}

	household, err = s.repo.Create(ctx, household)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateHouseholdNumber
		}
		return nil, err
	}

	s.invalidateStats(ctx)

	s.activity.Record(ctx, model.ActivityLog{
		ActionType:  model.ActionCreate,
		EntityType:  model.EntityHousehold,
		EntityID:    &household.ID,
		EntityName:  household.HouseholdNumber,
		PerformedBy: req.PerformedBy,
		Details: model.MarshalDetails(model.HouseholdDetails{
			Purok:         household.Purok,
			FamilyMembers: household.FamilyMembers,
		}),
	})

	return household, nil
}

// Update updates a household, keeping the household number unique across all
// other registrations
func (s *householdService) Update(ctx context.Context, id uuid.UUID, req *UpdateHouseholdRequest) (*model.Household, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	existing, err := s.repo.GetByNumber(ctx, req.HouseholdNumber)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, ErrDuplicateHouseholdNumber
	}

	household := &model.Household{
		ID:              id,
		HouseholdNumber: req.HouseholdNumber,
		HeadOfFamily:    req.HeadOfFamily,
		Purok:           req.Purok,
		Address:         req.Address,
		FamilyMembers:   req.FamilyMembers,
	}
	if req.ContactNumber != "" {
		household.ContactNumber = &req.ContactNumber
	}

	household, err = s.repo.Update(ctx, household)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrDuplicateHouseholdNumber
		}
		return nil, err
	}

	s.activity.Record(ctx, model.ActivityLog{
		ActionType:  model.ActionUpdate,
		EntityType:  model.EntityHousehold,
		EntityID:    &household.ID,
		EntityName:  household.HouseholdNumber,
		PerformedBy: req.PerformedBy,
		Details: model.MarshalDetails(model.HouseholdDetails{
			Purok: household.Purok,
		}),
	})

	return household, nil
}

// Delete removes a household and its distributions, and records the action
func (s *householdService) Delete(ctx context.Context, id uuid.UUID, performedBy string) error {
	if performedBy == "" {
		return fmt.Errorf("%w: performed_by is required", ErrValidation)
	}

	household, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.invalidateStats(ctx)

	s.activity.Record(ctx, model.ActivityLog{
		ActionType:  model.ActionDelete,
		EntityType:  model.EntityHousehold,
		EntityID:    &household.ID,
		EntityName:  household.HouseholdNumber,
		PerformedBy: performedBy,
		Details: model.MarshalDetails(model.HouseholdDetails{
			Purok: household.Purok,
		}),
	})

	return nil
}

func (s *householdService) invalidateStats(ctx context.Context) {
	if err := s.cache.InvalidateStats(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate stats cache")
	}
}
