package model

import "encoding/json"

// Activity detail payloads form a closed set keyed by entity type. The
// service layer only ever stores one of these shapes in ActivityLog.Details.

// InventoryDetails captures the inventory fields worth auditing.
type InventoryDetails struct {
	Category ItemCategory `json:"category"`
	Quantity int          `json:"quantity"`
}

// HouseholdDetails captures the household fields worth auditing.
type HouseholdDetails struct {
	Purok         string `json:"purok"`
	FamilyMembers int    `json:"family_members,omitempty"`
}

// DistributionDetails summarizes a recorded hand-out.
type DistributionDetails struct {
	Quantity  int    `json:"quantity"`
	Item      string `json:"item"`
	Household string `json:"household"`
	Purok     string `json:"purok"`
}

// MarshalDetails serializes a detail payload for storage.
func MarshalDetails(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
