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

func TestCreateHousehold(t *testing.T) {
	mockRepo := new(MockHouseholdRepository)
	recorder := &recorderStub{}

	mockRepo.On("GetByNumber", mock.Anything, "HH-001").Return(nil, repository.ErrNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Household")).
		Return(&model.Household{
			ID:              uuid.New(),
			HouseholdNumber: "HH-001",
			HeadOfFamily:    "Juan dela Cruz",
			Purok:           "Purok 1",
			Address:         "Sitio Centro",
			FamilyMembers:   4,
		}, nil)

	service := NewHouseholdService(mockRepo, recorder, noopCache{})

	household, err := service.Create(context.Background(), &CreateHouseholdRequest{
		HouseholdNumber: "HH-001",
		HeadOfFamily:    "Juan dela Cruz",
		Purok:           "Purok 1",
		Address:         "Sitio Centro",
		FamilyMembers:   4,
		PerformedBy:     "admin",
	})

	require.NoError(t, err)
	require.Equal(t, "HH-001", household.HouseholdNumber)

	entries := recorder.recorded()
	require.Len(t, entries, 1)
	require.Equal(t, model.ActionCreate, entries[0].ActionType)
	require.Equal(t, model.EntityHousehold, entries[0].EntityType)
	require.Equal(t, "HH-001", entries[0].EntityName)

	mockRepo.AssertExpectations(t)
}

func TestCreateHouseholdDuplicateNumber(t *testing.T) {
	mockRepo := new(MockHouseholdRepository)
	recorder := &recorderStub{}

	mockRepo.On("GetByNumber", mock.Anything, "HH-001").Return(&model.Household{
		ID:              uuid.New(),
		HouseholdNumber: "HH-001",
	}, nil)

	service := NewHouseholdService(mockRepo, recorder, noopCache{})

	_, err := service.Create(context.Background(), &CreateHouseholdRequest{
		HouseholdNumber: "HH-001",
		HeadOfFamily:    "Pedro Penduko",
		Purok:           "Purok 2",
		Address:         "Sitio Ibaba",
		FamilyMembers:   3,
		PerformedBy:     "admin",
	})

	require.ErrorIs(t, err, ErrDuplicateHouseholdNumber)
	require.Empty(t, recorder.recorded())
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateHouseholdDuplicateRace(t *testing.T) {
	mockRepo := new(MockHouseholdRepository)

	// Pre-check passed but the unique index rejected the insert
	mockRepo.On("GetByNumber", mock.Anything, "HH-009").Return(nil, repository.ErrNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Household")).
		Return(nil, repository.ErrDuplicateKey)

	service := NewHouseholdService(mockRepo, &recorderStub{}, noopCache{})

	_, err := service.Create(context.Background(), &CreateHouseholdRequest{
		HouseholdNumber: "HH-009",
		HeadOfFamily:    "Ana Reyes",
		Purok:           "Purok 6",
		Address:         "Sitio Wawa",
		FamilyMembers:   2,
		PerformedBy:     "admin",
	})

	require.ErrorIs(t, err, ErrDuplicateHouseholdNumber)
}

func TestCreateHouseholdInvalidPurok(t *testing.T) {
	service := NewHouseholdService(new(MockHouseholdRepository), &recorderStub{}, noopCache{})

	_, err := service.Create(context.Background(), &CreateHouseholdRequest{
		HouseholdNumber: "HH-010",
		HeadOfFamily:    "Jose Rizal",
		Purok:           "Purok 9",
		Address:         "Sitio Itaas",
		FamilyMembers:   6,
		PerformedBy:     "admin",
	})

	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateHouseholdKeepsOwnNumber(t *testing.T) {
	mockRepo := new(MockHouseholdRepository)
	recorder := &recorderStub{}

	id := uuid.New()

	// The number is already held by the household being updated, which is
	// not a conflict
	mockRepo.On("GetByNumber", mock.Anything, "HH-001").Return(&model.Household{
		ID:              id,
		HouseholdNumber: "HH-001",
	}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Household")).
		Return(&model.Household{
			ID:              id,
			HouseholdNumber: "HH-001",
			HeadOfFamily:    "Juan dela Cruz",
			Purok:           "Purok 4",
			Address:         "Sitio Centro",
			FamilyMembers:   5,
		}, nil)

	service := NewHouseholdService(mockRepo, recorder, noopCache{})

	household, err := service.Update(context.Background(), id, &UpdateHouseholdRequest{
		HouseholdNumber: "HH-001",
		HeadOfFamily:    "Juan dela Cruz",
		Purok:           "Purok 4",
		Address:         "Sitio Centro",
		FamilyMembers:   5,
		PerformedBy:     "admin",
	})

	require.NoError(t, err)
	require.Equal(t, "Purok 4", household.Purok)

	entries := recorder.recorded()
	require.Len(t, entries, 1)
	require.Equal(t, model.ActionUpdate, entries[0].ActionType)
}

func TestDeleteHousehold(t *testing.T) {
	mockRepo := new(MockHouseholdRepository)
	recorder := &recorderStub{}

	id := uuid.New()
	mockRepo.On("GetByID", mock.Anything, id).Return(&model.Household{
		ID:              id,
		HouseholdNumber: "HH-007",
		Purok:           "Purok 2",
	}, nil)
	mockRepo.On("Delete", mock.Anything, id).Return(nil)

	service := NewHouseholdService(mockRepo, recorder, noopCache{})

	err := service.Delete(context.Background(), id, "admin")
	require.NoError(t, err)

	entries := recorder.recorded()
	require.Len(t, entries, 1)
	require.Equal(t, model.ActionDelete, entries[0].ActionType)
	require.Equal(t, "HH-007", entries[0].EntityName)
	mockRepo.AssertExpectations(t)
}

func TestDeleteHouseholdNotFound(t *testing.T) {
	mockRepo := new(MockHouseholdRepository)
	id := uuid.New()
	mockRepo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)

	service := NewHouseholdService(mockRepo, &recorderStub{}, noopCache{})

	err := service.Delete(context.Background(), id, "admin")
	require.ErrorIs(t, err, ErrNotFound)
}
