package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/relieftrack/services/tracker/internal/model"
	"example.com/relieftrack/services/tracker/internal/repository"
)

func TestCreateInventoryItem(t *testing.T) {
	mockRepo := new(MockInventoryRepository)
	recorder := &recorderStub{}

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.InventoryItem")).
		Return(&model.InventoryItem{
			ID:                uuid.New(),
			ItemName:          "Rice Pack",
			Category:          model.CategoryFoodPack,
			Quantity:          100,
			Unit:              "packs",
			LowStockThreshold: 20,
		}, nil)

	service := NewInventoryService(mockRepo, recorder, noopCache{})

	item, err := service.Create(context.Background(), &CreateInventoryRequest{
		ItemName:          "Rice Pack",
		Category:          "food_pack",
		Quantity:          100,
		Unit:              "packs",
		LowStockThreshold: 20,
		PerformedBy:       "admin",
	})

	require.NoError(t, err)
	require.Equal(t, "Rice Pack", item.ItemName)

	entries := recorder.recorded()
	require.Len(t, entries, 1)
	require.Equal(t, model.ActionCreate, entries[0].ActionType)
	require.Equal(t, model.EntityInventory, entries[0].EntityType)
	require.Equal(t, "Rice Pack", entries[0].EntityName)
	require.Equal(t, "admin", entries[0].PerformedBy)

	mockRepo.AssertExpectations(t)
}

func TestCreateInventoryItemInvalidCategory(t *testing.T) {
	service := NewInventoryService(new(MockInventoryRepository), &recorderStub{}, noopCache{})

	_, err := service.Create(context.Background(), &CreateInventoryRequest{
		ItemName:    "Mystery Box",
		Category:    "gadgets",
		Quantity:    5,
		Unit:        "boxes",
		PerformedBy: "admin",
	})

	require.ErrorIs(t, err, ErrValidation)
}

func TestDecrementInventoryItem(t *testing.T) {
	mockRepo := new(MockInventoryRepository)
	id := uuid.New()
	mockRepo.On("Decrement", mock.Anything, id, 3).Return(nil)

	service := NewInventoryService(mockRepo, &recorderStub{}, noopCache{})

	require.NoError(t, service.Decrement(context.Background(), id, 3))
	mockRepo.AssertExpectations(t)
}

func TestDecrementInventoryItemErrors(t *testing.T) {
	id := uuid.New()

	t.Run("insufficient quantity", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)
		mockRepo.On("Decrement", mock.Anything, id, 50).Return(repository.ErrInsufficientQuantity)

		service := NewInventoryService(mockRepo, &recorderStub{}, noopCache{})
		require.ErrorIs(t, service.Decrement(context.Background(), id, 50), ErrInsufficientStock)
	})

	t.Run("unknown item", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)
		mockRepo.On("Decrement", mock.Anything, id, 1).Return(repository.ErrNotFound)

		service := NewInventoryService(mockRepo, &recorderStub{}, noopCache{})
		require.ErrorIs(t, service.Decrement(context.Background(), id, 1), ErrNotFound)
	})

	t.Run("non positive amount", func(t *testing.T) {
		service := NewInventoryService(new(MockInventoryRepository), &recorderStub{}, noopCache{})
		require.ErrorIs(t, service.Decrement(context.Background(), id, 0), ErrValidation)
	})
}

func TestDeleteInventoryItemRecordsName(t *testing.T) {
	mockRepo := new(MockInventoryRepository)
	recorder := &recorderStub{}

	id := uuid.New()
	mockRepo.On("GetByID", mock.Anything, id).Return(&model.InventoryItem{
		ID:       id,
		ItemName: "Hygiene Kit",
		Category: model.CategoryHygieneKit,
		Quantity: 12,
	}, nil)
	mockRepo.On("Delete", mock.Anything, id).Return(nil)

	service := NewInventoryService(mockRepo, recorder, noopCache{})

	require.NoError(t, service.Delete(context.Background(), id, "admin"))

	entries := recorder.recorded()
	require.Len(t, entries, 1)
	require.Equal(t, model.ActionDelete, entries[0].ActionType)
	require.Equal(t, "Hygiene Kit", entries[0].EntityName)
}
