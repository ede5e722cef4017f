package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"example.com/relieftrack/services/tracker/internal/model"
)

// ActivityFilter narrows activity log listings.
type ActivityFilter struct {
	EntityType model.EntityType
	ActionType model.ActionType
	Query      string
	Limit      int
}

// ActivityRepository defines the interface for activity log data access.
// The log is append-only; there is no update or delete.
type ActivityRepository interface {
	Create(ctx context.Context, entry *model.ActivityLog) (*model.ActivityLog, error)
	Find(ctx context.Context, filter ActivityFilter) ([]*model.ActivityLog, error)
	Count(ctx context.Context) (int64, error)
}

// activityRepository implements ActivityRepository
type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity log repository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// Create appends an activity entry
func (r *activityRepository) Create(ctx context.Context, entry *model.ActivityLog) (*model.ActivityLog, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Find returns activity entries matching the filter, newest first
func (r *activityRepository) Find(ctx context.Context, filter ActivityFilter) ([]*model.ActivityLog, error) {
	query := r.db.WithContext(ctx).Model(&model.ActivityLog{}).Order("created_at DESC")

	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.ActionType != "" {
		query = query.Where("action_type = ?", filter.ActionType)
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("entity_name ILIKE ? OR performed_by ILIKE ?", pattern, pattern)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var entries []*model.ActivityLog
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the total number of activity entries
func (r *activityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ActivityLog{}).Count(&count).Error
	return count, err
}
