package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestItemCategoryValid(t *testing.T) {
	for _, c := range []ItemCategory{CategoryFoodPack, CategoryHygieneKit, CategoryMedical, CategoryClothing, CategoryOther} {
		require.True(t, c.Valid(), "category %q should be valid", c)
	}
	require.False(t, ItemCategory("gadgets").Valid())
	require.False(t, ItemCategory("").Valid())
}

func TestValidPurok(t *testing.T) {
	require.True(t, ValidPurok("Purok 1"))
	require.True(t, ValidPurok("Purok 6"))
	require.False(t, ValidPurok("Purok 7"))
	require.False(t, ValidPurok("purok 1"))
	require.False(t, ValidPurok(""))
}

func TestLowStockBoundary(t *testing.T) {
	item := InventoryItem{Quantity: 20, LowStockThreshold: 20}
	// Quantity equal to the threshold still counts as in stock
	require.False(t, item.LowStock())

	item.Quantity = 19
	require.True(t, item.LowStock())

	item.Quantity = 0
	require.True(t, item.LowStock())
}

func TestMarshalDetails(t *testing.T) {
	raw := MarshalDetails(DistributionDetails{
		Quantity:  4,
		Item:      "Rice Pack",
		Household: "HH-001",
		Purok:     "Purok 3",
	})
	require.NotNil(t, raw)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "Rice Pack", decoded["item"])
	require.Equal(t, "HH-001", decoded["household"])
	require.EqualValues(t, 4, decoded["quantity"])
}

func TestActivityLogDetailsRenderInline(t *testing.T) {
	entry := ActivityLog{
		ActionType: ActionCreate,
		EntityType: EntityInventory,
		EntityName: "Rice Pack",
		Details: MarshalDetails(InventoryDetails{
			Category: CategoryFoodPack,
			Quantity: 5,
		}),
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Details must come through as a JSON object, not an encoded string
	details, ok := decoded["details"].(map[string]any)
	require.True(t, ok, "details should be an object, got %T", decoded["details"])
	require.Equal(t, "food_pack", details["category"])
	require.EqualValues(t, 5, details["quantity"])
}

func TestHouseholdDetailsOmitsEmptyFamilyMembers(t *testing.T) {
	raw := MarshalDetails(HouseholdDetails{Purok: "Purok 2"})

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.NotContains(t, decoded, "family_members")
}
