package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"example.com/relieftrack/services/tracker/internal/db"
	"example.com/relieftrack/services/tracker/internal/model"
)

// InventoryFilter narrows inventory listings.
type InventoryFilter struct {
	Category model.ItemCategory
	Query    string
	InStock  bool
}

// InventoryRepository defines the interface for inventory data access
type InventoryRepository interface {
	List(ctx context.Context, filter InventoryFilter) ([]*model.InventoryItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	Create(ctx context.Context, item *model.InventoryItem) (*model.InventoryItem, error)
	Update(ctx context.Context, item *model.InventoryItem) (*model.InventoryItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Decrement(ctx context.Context, id uuid.UUID, amount int) error
	ListLowStock(ctx context.Context) ([]*model.InventoryItem, error)
	Count(ctx context.Context) (int64, error)
}

// inventoryRepository implements InventoryRepository
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// List returns inventory items matching the filter, ordered by name
func (r *inventoryRepository) List(ctx context.Context, filter InventoryFilter) ([]*model.InventoryItem, error) {
	query := r.db.WithContext(ctx).Model(&model.InventoryItem{}).Order("item_name")

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Query != "" {
		query = query.Where("item_name ILIKE ?", "%"+filter.Query+"%")
	}
	if filter.InStock {
		query = query.Where("quantity > 0")
	}

	var items []*model.InventoryItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID gets an inventory item by ID
func (r *inventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if db.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create creates a new inventory item
func (r *inventoryRepository) Create(ctx context.Context, item *model.InventoryItem) (*model.InventoryItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Update updates an inventory item
func (r *inventoryRepository) Update(ctx context.Context, item *model.InventoryItem) (*model.InventoryItem, error) {
	res := r.db.WithContext(ctx).Model(&model.InventoryItem{}).
		Where("id = ?", item.ID).
		Select("item_name", "category", "quantity", "unit", "low_stock_threshold").
		Updates(item)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, item.ID)
}

// Delete removes an inventory item
func (r *inventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.InventoryItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Decrement reduces an item's quantity by amount. The update is guarded so
// quantity can never go below zero, even under concurrent decrements.
func (r *inventoryRepository) Decrement(ctx context.Context, id uuid.UUID, amount int) error {
	return decrementQuantity(r.db.WithContext(ctx), id, amount)
}

// decrementQuantity applies the guarded decrement on the given handle, which
// may be a transaction.
func decrementQuantity(tx *gorm.DB, id uuid.UUID, amount int) error {
	res := tx.Model(&model.InventoryItem{}).
		Where("id = ? AND quantity >= ?", id, amount).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Either the row is gone or the guard rejected the decrement.
		var count int64
		if err := tx.Model(&model.InventoryItem{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrInsufficientQuantity
	}
	return nil
}

// ListLowStock returns items below their restock threshold, lowest first
func (r *inventoryRepository) ListLowStock(ctx context.Context) ([]*model.InventoryItem, error) {
	var items []*model.InventoryItem
	err := r.db.WithContext(ctx).
		Where("quantity < low_stock_threshold").
		Order("quantity").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the total number of inventory items
func (r *inventoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.InventoryItem{}).Count(&count).Error
	return count, err
}
