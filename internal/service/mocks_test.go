package service

import (
	"context"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"example.com/relieftrack/services/tracker/internal/model"
	"example.com/relieftrack/services/tracker/internal/repository"
)

// errCacheMiss mirrors what the Redis cache returns on a miss
var errCacheMiss = redis.Nil

// Mock repositories for testing

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) List(ctx context.Context, filter repository.InventoryFilter) ([]*model.InventoryItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) Create(ctx context.Context, item *model.InventoryItem) (*model.InventoryItem, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) Update(ctx context.Context, item *model.InventoryItem) (*model.InventoryItem, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryRepository) Decrement(ctx context.Context, id uuid.UUID, amount int) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockInventoryRepository) ListLowStock(ctx context.Context) ([]*model.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockHouseholdRepository struct {
	mock.Mock
}

func (m *MockHouseholdRepository) List(ctx context.Context, filter repository.HouseholdFilter) ([]*model.Household, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Household), args.Error(1)
}

func (m *MockHouseholdRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Household, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Household), args.Error(1)
}

func (m *MockHouseholdRepository) GetByNumber(ctx context.Context, number string) (*model.Household, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Household), args.Error(1)
}

func (m *MockHouseholdRepository) Create(ctx context.Context, household *model.Household) (*model.Household, error) {
	args := m.Called(ctx, household)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Household), args.Error(1)
}

func (m *MockHouseholdRepository) Update(ctx context.Context, household *model.Household) (*model.Household, error) {
	args := m.Called(ctx, household)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Household), args.Error(1)
}

func (m *MockHouseholdRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHouseholdRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockDistributionRepository struct {
	mock.Mock
}

func (m *MockDistributionRepository) Record(ctx context.Context, distribution *model.Distribution) (*model.Distribution, error) {
	args := m.Called(ctx, distribution)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Distribution), args.Error(1)
}

func (m *MockDistributionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Distribution, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Distribution), args.Error(1)
}

func (m *MockDistributionRepository) List(ctx context.Context, filter repository.DistributionFilter) ([]*model.Distribution, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Distribution), args.Error(1)
}

func (m *MockDistributionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, entry *model.ActivityLog) (*model.ActivityLog, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ActivityLog), args.Error(1)
}

func (m *MockActivityRepository) Find(ctx context.Context, filter repository.ActivityFilter) ([]*model.ActivityLog, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ActivityLog), args.Error(1)
}

func (m *MockActivityRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// recorderStub captures activity entries instead of persisting them
type recorderStub struct {
	mu      sync.Mutex
	entries []model.ActivityLog
}

func (r *recorderStub) Record(_ context.Context, entry model.ActivityLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *recorderStub) recorded() []model.ActivityLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.ActivityLog(nil), r.entries...)
}

// noopCache is a cache that always misses
type noopCache struct{}

func (noopCache) GetItem(context.Context, string) (*model.InventoryItem, error) {
	return nil, errCacheMiss
}
func (noopCache) SetItem(context.Context, *model.InventoryItem) error { return nil }
func (noopCache) DeleteItem(context.Context, string) error            { return nil }
func (noopCache) GetStats(context.Context) ([]byte, error)            { return nil, errCacheMiss }
func (noopCache) SetStats(context.Context, []byte) error              { return nil }
func (noopCache) InvalidateStats(context.Context) error               { return nil }
