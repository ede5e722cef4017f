package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ItemCategory classifies a relief-supply item.
type ItemCategory string

const (
	CategoryFoodPack   ItemCategory = "food_pack"
	CategoryHygieneKit ItemCategory = "hygiene_kit"
	CategoryMedical    ItemCategory = "medical"
	CategoryClothing   ItemCategory = "clothing"
	CategoryOther      ItemCategory = "other"
)

// Valid reports whether the category is one of the known values.
func (c ItemCategory) Valid() bool {
	switch c {
	case CategoryFoodPack, CategoryHygieneKit, CategoryMedical, CategoryClothing, CategoryOther:
		return true
	}
	return false
}

// ActionType is the kind of mutation recorded in the activity log.
type ActionType string

const (
	ActionCreate ActionType = "create"
	ActionUpdate ActionType = "update"
	ActionDelete ActionType = "delete"
)

// EntityType names the entity set an activity entry refers to.
type EntityType string

const (
	EntityInventory    EntityType = "inventory"
	EntityHousehold    EntityType = "household"
	EntityDistribution EntityType = "distribution"
)

// Puroks lists the sub-district groupings households belong to.
var Puroks = []string{"Purok 1", "Purok 2", "Purok 3", "Purok 4", "Purok 5", "Purok 6"}

// ValidPurok reports whether the purok is one of the configured groupings.
func ValidPurok(p string) bool {
	for _, purok := range Puroks {
		if p == purok {
			return true
		}
	}
	return false
}

// InventoryItem represents a relief-supply item in the database
type InventoryItem struct {
	ID                uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ItemName          string       `gorm:"index" json:"item_name"`
	Category          ItemCategory `gorm:"index" json:"category"`
	Quantity          int          `json:"quantity"`
	Unit              string       `json:"unit"`
	LowStockThreshold int          `json:"low_stock_threshold"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// LowStock reports whether the item is below its restock threshold.
// Equality counts as in stock.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity < i.LowStockThreshold
}

// Household represents a registered beneficiary household in the database
type Household struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HouseholdNumber string    `gorm:"uniqueIndex" json:"household_number"`
	HeadOfFamily    string    `json:"head_of_family"`
	Purok           string    `gorm:"index" json:"purok"`
	Address         string    `json:"address"`
	ContactNumber   *string   `json:"contact_number"`
	FamilyMembers   int       `json:"family_members"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Distribution records a single hand-out of an inventory item to a household
type Distribution struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	HouseholdID         uuid.UUID      `gorm:"type:uuid;index" json:"household_id"`
	InventoryID         uuid.UUID      `gorm:"type:uuid;index" json:"inventory_id"`
	QuantityDistributed int            `json:"quantity_distributed"`
	DistributedBy       string         `json:"distributed_by"`
	DistributedAt       time.Time      `json:"distributed_at"`
	Notes               *string        `json:"notes"`
	Household           *Household     `gorm:"foreignKey:HouseholdID;constraint:OnDelete:CASCADE" json:"household,omitempty"`
	Inventory           *InventoryItem `gorm:"foreignKey:InventoryID" json:"inventory,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
}

// ActivityLog is an append-only audit entry for a mutating action
type ActivityLog struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ActionType  ActionType      `gorm:"index" json:"action_type"`
	EntityType  EntityType      `gorm:"index" json:"entity_type"`
	EntityID    *uuid.UUID      `gorm:"type:uuid" json:"entity_id"`
	EntityName  string          `gorm:"index" json:"entity_name"`
	PerformedBy string          `gorm:"index" json:"performed_by"`
	Details     json.RawMessage `gorm:"type:jsonb" json:"details"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
}
