package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"example.com/relieftrack/services/tracker/internal/cache"
	"example.com/relieftrack/services/tracker/internal/model"
	"example.com/relieftrack/services/tracker/internal/repository"
)

// Stats is the dashboard summary
type Stats struct {
	TotalHouseholds    int64                  `json:"total_households"`
	TotalInventory     int64                  `json:"total_inventory"`
	TotalDistributions int64                  `json:"total_distributions"`
	TotalActivities    int64                  `json:"total_activities"`
	LowStockItems      []*model.InventoryItem `json:"low_stock_items"`
}

// StatsService defines the interface for dashboard statistics
type StatsService interface {
	Stats(ctx context.Context) (*Stats, error)
}

// statsService implements StatsService
type statsService struct {
	inventoryRepo    repository.InventoryRepository
	householdRepo    repository.HouseholdRepository
	distributionRepo repository.DistributionRepository
	activityRepo     repository.ActivityRepository
	cache            cache.CacheClient
}

// NewStatsService creates a new stats service
func NewStatsService(
	inventoryRepo repository.InventoryRepository,
	householdRepo repository.HouseholdRepository,
	distributionRepo repository.DistributionRepository,
	activityRepo repository.ActivityRepository,
	cacheClient cache.CacheClient,
) StatsService {
	return &statsService{
		inventoryRepo:    inventoryRepo,
		householdRepo:    householdRepo,
		distributionRepo: distributionRepo,
		activityRepo:     activityRepo,
		cache:            cacheClient,
	}
}

// Stats returns the dashboard summary, served from cache when fresh
func (s *statsService) Stats(ctx context.Context) (*Stats, error) {
	if data, err := s.cache.GetStats(ctx); err == nil {
		var stats Stats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	} else if !cache.IsMiss(err) {
		log.Warn().Err(err).Msg("Failed to get stats from cache")
	}

	stats := &Stats{}

	var err error
	if stats.TotalHouseholds, err = s.householdRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalInventory, err = s.inventoryRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalDistributions, err = s.distributionRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalActivities, err = s.activityRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.LowStockItems, err = s.inventoryRepo.ListLowStock(ctx); err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := s.cache.SetStats(ctx, data); err != nil {
			log.Warn().Err(err).Msg("Failed to cache stats")
		}
	}

	return stats, nil
}
