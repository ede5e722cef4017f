package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"example.com/relieftrack/services/tracker/internal/db"
	"example.com/relieftrack/services/tracker/internal/model"
)

// HouseholdFilter narrows household listings.
type HouseholdFilter struct {
	Purok string
	Query string
}

// HouseholdRepository defines the interface for household data access
type HouseholdRepository interface {
	List(ctx context.Context, filter HouseholdFilter) ([]*model.Household, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Household, error)
	GetByNumber(ctx context.Context, number string) (*model.Household, error)
	Create(ctx context.Context, household *model.Household) (*model.Household, error)
	Update(ctx context.Context, household *model.Household) (*model.Household, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// householdRepository implements HouseholdRepository
type householdRepository struct {
	db *gorm.DB
}

// NewHouseholdRepository creates a new household repository
func NewHouseholdRepository(db *gorm.DB) HouseholdRepository {
	return &householdRepository{db: db}
}

// List returns households matching the filter, ordered by household number
func (r *householdRepository) List(ctx context.Context, filter HouseholdFilter) ([]*model.Household, error) {
	query := r.db.WithContext(ctx).Model(&model.Household{}).Order("household_number")

	if filter.Purok != "" {
		query = query.Where("purok = ?", filter.Purok)
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("household_number ILIKE ? OR head_of_family ILIKE ? OR address ILIKE ?",
			pattern, pattern, pattern)
	}

	var households []*model.Household
	if err := query.Find(&households).Error; err != nil {
		return nil, err
	}
	return households, nil
}

// GetByID gets a household by ID
func (r *householdRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Household, error) {
	var household model.Household
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&household).Error
	if err != nil {
		if db.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &household, nil
}

// GetByNumber gets a household by its user-supplied number
func (r *householdRepository) GetByNumber(ctx context.Context, number string) (*model.Household, error) {
	var household model.Household
	err := r.db.WithContext(ctx).Where("household_number = ?", number).First(&household).Error
	if err != nil {
		if db.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &household, nil
}

// Create creates a new household. The unique index on household_number backs
// the application-level duplicate check.
func (r *householdRepository) Create(ctx context.Context, household *model.Household) (*model.Household, error) {
	if household.ID == uuid.Nil {
		household.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(household).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return household, nil
}

// Update updates a household
func (r *householdRepository) Update(ctx context.Context, household *model.Household) (*model.Household, error) {
	res := r.db.WithContext(ctx).Model(&model.Household{}).
		Where("id = ?", household.ID).
		Select("household_number", "head_of_family", "purok", "address", "contact_number", "family_members").
		Updates(household)
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error) {
			return nil, ErrDuplicateKey
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, household.ID)
}

// Delete removes a household. Its distributions go with it via the
// ON DELETE CASCADE constraint.
func (r *householdRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Household{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of registered households
func (r *householdRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Household{}).Count(&count).Error
	return count, err
}
