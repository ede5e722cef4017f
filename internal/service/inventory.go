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

// CreateInventoryRequest defines the request to create an inventory item
type CreateInventoryRequest struct {
	ItemName          string `json:"item_name" validate:"required"`
	Category          string `json:"category" validate:"required,category"`
	Quantity          int    `json:"quantity" validate:"gte=0"`
	Unit              string `json:"unit" validate:"required"`
	LowStockThreshold int    `json:"low_stock_threshold" validate:"gte=0"`
	PerformedBy       string `json:"performed_by" validate:"required"`
}

// UpdateInventoryRequest defines the request to update an inventory item
type UpdateInventoryRequest struct {
	ItemName          string `json:"item_name" validate:"required"`
	Category          string `json:"category" validate:"required,category"`
	Quantity          int    `json:"quantity" validate:"gte=0"`
	Unit              string `json:"unit" validate:"required"`
	LowStockThreshold int    `json:"low_stock_threshold" validate:"gte=0"`
	PerformedBy       string `json:"performed_by" validate:"required"`
}

// InventoryService defines the interface for the inventory store
type InventoryService interface {
	List(ctx context.Context, filter repository.InventoryFilter) ([]*model.InventoryItem, error)
	Get(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	Create(ctx context.Context, req *CreateInventoryRequest) (*model.InventoryItem, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateInventoryRequest) (*model.InventoryItem, error)
	Delete(ctx context.Context, id uuid.UUID, performedBy string) error
	Decrement(ctx context.Context, id uuid.UUID, amount int) error
}

// inventoryService implements InventoryService
type inventoryService struct {
	repo     repository.InventoryRepository
	activity ActivityRecorder
	cache    cache.CacheClient
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	repo repository.InventoryRepository,
	activity ActivityRecorder,
	cacheClient cache.CacheClient,
) InventoryService {
	return &inventoryService{
		repo:     repo,
		activity: activity,
		cache:    cacheClient,
	}
}

// List returns inventory items matching the filter
func (s *inventoryService) List(ctx context.Context, filter repository.InventoryFilter) ([]*model.InventoryItem, error) {
	return s.repo.List(ctx, filter)
}

// Get gets an inventory item by ID
func (s *inventoryService) Get(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	// Try to get from cache first
	item, err := s.cache.GetItem(ctx, id.String())
	if err == nil {
		return item, nil
	}
	if !cache.IsMiss(err) {
		log.Warn().Err(err).Msg("Failed to get inventory item from cache")
	}

	item, err = s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.cache.SetItem(ctx, item); err != nil {
		log.Warn().Err(err).Msg("Failed to cache inventory item")
	}
	return item, nil
}

// Create creates a new inventory item and records the action
func (s *inventoryService) Create(ctx context.Context, req *CreateInventoryRequest) (*model.InventoryItem, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	item := &model.InventoryItem{
		ItemName:          req.ItemName,
		Category:          model.ItemCategory(req.Category),
		Quantity:          req.Quantity,
		Unit:              req.Unit,
		LowStockThreshold: req.LowStockThreshold,
	}

	item, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, item)

	s.activity.Record(ctx, model.ActivityLog{
		ActionType:  model.ActionCreate,
		EntityType:  model.EntityInventory,
		EntityID:    &item.ID,
		EntityName:  item.ItemName,
		PerformedBy: req.PerformedBy,
		Details: model.MarshalDetails(model.InventoryDetails{
			Category: item.Category,
			Quantity: item.Quantity,
		}),
	})

	return item, nil
}

// Update updates an inventory item and records the action
func (s *inventoryService) Update(ctx context.Context, id uuid.UUID, req *UpdateInventoryRequest) (*model.InventoryItem, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	item := &model.InventoryItem{
		ID:                id,
		ItemName:          req.ItemName,
		Category:          model.ItemCategory(req.Category),
		Quantity:          req.Quantity,
		Unit:              req.Unit,
		LowStockThreshold: req.LowStockThreshold,
	}

	item, err := s.repo.Update(ctx, item)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.afterWrite(ctx, item)

	s.activity.Record(ctx, model.ActivityLog{
		ActionType:  model.ActionUpdate,
		EntityType:  model.EntityInventory,
		EntityID:    &item.ID,
		EntityName:  item.ItemName,
		PerformedBy: req.PerformedBy,
		Details: model.MarshalDetails(model.InventoryDetails{
			Category: item.Category,
			Quantity: item.Quantity,
		}),
	})

	return item, nil
}

// Delete removes an inventory item and records the action
func (s *inventoryService) Delete(ctx context.Context, id uuid.UUID, performedBy string) error {
	if performedBy == "" {
		return fmt.Errorf("%w: performed_by is required", ErrValidation)
	}

	item, err := s.repo.GetByID(ctx, id)
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

	if err := s.cache.DeleteItem(ctx, id.String()); err != nil {
		log.Warn().Err(err).Msg("Failed to evict inventory item from cache")
	}
	if err := s.cache.InvalidateStats(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate stats cache")
	}

	s.activity.Record(ctx, model.ActivityLog{
		ActionType:  model.ActionDelete,
		EntityType:  model.EntityInventory,
		EntityID:    &item.ID,
		EntityName:  item.ItemName,
		PerformedBy: performedBy,
		Details: model.MarshalDetails(model.InventoryDetails{
			Category: item.Category,
			Quantity: item.Quantity,
		}),
	})

	return nil
}

// Decrement reduces an item's quantity. The guard lives in the store, so a
// concurrent decrement can never push the quantity negative.
func (s *inventoryService) Decrement(ctx context.Context, id uuid.UUID, amount int) error {
	if amount < 1 {
		return fmt.Errorf("%w: amount must be at least 1", ErrValidation)
	}

	err := s.repo.Decrement(ctx, id, amount)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrInsufficientQuantity):
			return ErrInsufficientStock
		}
		return err
	}

	if err := s.cache.DeleteItem(ctx, id.String()); err != nil {
		log.Warn().Err(err).Msg("Failed to evict inventory item from cache")
	}
	if err := s.cache.InvalidateStats(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate stats cache")
	}
	return nil
}

// afterWrite refreshes the cached copies touched by a successful write
func (s *inventoryService) afterWrite(ctx context.Context, item *model.InventoryItem) {
	if err := s.cache.SetItem(ctx, item); err != nil {
		log.Warn().Err(err).Msg("Failed to cache inventory item")
	}
	if err := s.cache.InvalidateStats(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate stats cache")
	}
}
