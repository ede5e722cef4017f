package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/relieftrack/services/tracker/internal/model"
)

func TestStats(t *testing.T) {
	mockInvRepo := new(MockInventoryRepository)
	mockHhRepo := new(MockHouseholdRepository)
	mockDistRepo := new(MockDistributionRepository)
	mockActRepo := new(MockActivityRepository)

	mockHhRepo.On("Count", mock.Anything).Return(int64(42), nil)
	mockInvRepo.On("Count", mock.Anything).Return(int64(7), nil)
	mockDistRepo.On("Count", mock.Anything).Return(int64(120), nil)
	mockActRepo.On("Count", mock.Anything).Return(int64(300), nil)
	mockInvRepo.On("ListLowStock", mock.Anything).Return([]*model.InventoryItem{
		{ItemName: "Rice Pack", Quantity: 3, LowStockThreshold: 20},
	}, nil)

	service := NewStatsService(mockInvRepo, mockHhRepo, mockDistRepo, mockActRepo, noopCache{})

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(42), stats.TotalHouseholds)
	require.Equal(t, int64(7), stats.TotalInventory)
	require.Equal(t, int64(120), stats.TotalDistributions)
	require.Equal(t, int64(300), stats.TotalActivities)
	require.Len(t, stats.LowStockItems, 1)
}
