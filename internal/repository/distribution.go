package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"example.com/relieftrack/services/tracker/internal/model"
)

// DistributionFilter narrows distribution listings.
type DistributionFilter struct {
	HouseholdID uuid.UUID
	InventoryID uuid.UUID
}

// DistributionRepository defines the interface for distribution data access
type DistributionRepository interface {
	Record(ctx context.Context, distribution *model.Distribution) (*model.Distribution, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Distribution, error)
	List(ctx context.Context, filter DistributionFilter) ([]*model.Distribution, error)
	Count(ctx context.Context) (int64, error)
}

// distributionRepository implements DistributionRepository
type distributionRepository struct {
	db *gorm.DB
}

// NewDistributionRepository creates a new distribution repository
func NewDistributionRepository(db *gorm.DB) DistributionRepository {
	return &distributionRepository{db: db}
}

// Record inserts the distribution row and applies the inventory decrement in
// one transaction. If the guarded decrement matches no rows the insert is
// rolled back and ErrInsufficientQuantity (or ErrNotFound) is returned, so a
// distribution can never exist without its stock having been taken.
func (r *distributionRepository) Record(ctx context.Context, distribution *model.Distribution) (*model.Distribution, error) {
	if distribution.ID == uuid.Nil {
		distribution.ID = uuid.New()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Household", "Inventory").Create(distribution).Error; err != nil {
			return err
		}
		return decrementQuantity(tx, distribution.InventoryID, distribution.QuantityDistributed)
	})
	if err != nil {
		return nil, err
	}
	return distribution, nil
}

// GetByID gets a distribution by ID with its household and inventory fields
func (r *distributionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Distribution, error) {
	var distribution model.Distribution
	err := r.db.WithContext(ctx).
		Preload("Household").
		Preload("Inventory").
		Where("id = ?", id).
		First(&distribution).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &distribution, nil
}

// List returns distributions joined with their household and inventory
// fields, newest hand-outs first
func (r *distributionRepository) List(ctx context.Context, filter DistributionFilter) ([]*model.Distribution, error) {
	query := r.db.WithContext(ctx).
		Preload("Household").
		Preload("Inventory").
		Order("distributed_at DESC")

	if filter.HouseholdID != uuid.Nil {
		query = query.Where("household_id = ?", filter.HouseholdID)
	}
	if filter.InventoryID != uuid.Nil {
		query = query.Where("inventory_id = ?", filter.InventoryID)
	}

	var distributions []*model.Distribution
	if err := query.Find(&distributions).Error; err != nil {
		return nil, err
	}
	return distributions, nil
}

// Count returns the total number of recorded distributions
func (r *distributionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Distribution{}).Count(&count).Error
	return count, err
}
