package models

import (
	"strings"

	inventory "pedalbuild/feature/inventory/models"
)

// CircuitBOMItem represents one line of a circuit's bill of materials.
//
// The id is a generated surrogate key: two legitimately distinct lines may
// share (circuit, type, value, quantity), so the content tuple is kept as a
// plain non-unique index for lookup instead of being the identity.
type CircuitBOMItem struct {
	ID                  string                  `gorm:"column:id;primaryKey" json:"id"`
	CircuitID           string                  `gorm:"column:circuit_id;index:idx_circuit_bom_content" json:"circuit_id"`
	ComponentType       inventory.ComponentType `gorm:"column:component_type;index:idx_circuit_bom_content" json:"component_type"`
	ComponentValue      string                  `gorm:"column:component_value;index:idx_circuit_bom_content" json:"component_value"`
	Quantity            int                     `gorm:"column:quantity;index:idx_circuit_bom_content" json:"quantity"`
	ReferenceDesignator string                  `gorm:"column:reference_designator" json:"reference_designator,omitempty"`
	SubstitutionAllowed bool                    `gorm:"column:substitution_allowed" json:"substitution_allowed"`
	SubstitutionNotes   string                  `gorm:"column:substitution_notes" json:"substitution_notes,omitempty"`
	IsCritical          bool                    `gorm:"column:is_critical" json:"is_critical"`
	PositionX           *float64                `gorm:"column:position_x" json:"position_x,omitempty"`
	PositionY           *float64                `gorm:"column:position_y" json:"position_y,omitempty"`
	ConfidenceScore     float64                 `gorm:"column:confidence_score" json:"confidence_score"`
}

// TableName overrides GORM's pluralization to keep the original schema name.
func (CircuitBOMItem) TableName() string {
	return "circuit_bom"
}

// References splits the comma-separated reference designators.
// A missing designator yields an empty slice, never nil.
func (i CircuitBOMItem) References() []string {
	if i.ReferenceDesignator == "" {
		return []string{}
	}
	return strings.Split(i.ReferenceDesignator, ",")
}

// TypeGroup is one bucket of the by-type grouping. Groups appear in
// first-occurrence order of their type; items keep the fetch order.
type TypeGroup struct {
	Type  inventory.ComponentType `json:"type"`
	Items []CircuitBOMItem        `json:"items"`
}

// Match pairs a BOM item with the inventory component chosen for it.
// For misses, Component is the closest candidate of the right type (or nil
// when none exists) and QuantityAvailable is that candidate's stock (or 0).
type Match struct {
	BOMItem           CircuitBOMItem       `json:"bom_item"`
	Component         *inventory.Component `json:"component"`
	Available         bool                 `json:"available"`
	QuantityNeeded    int                  `json:"quantity_needed"`
	QuantityAvailable int                  `json:"quantity_available"`
}

// ValidationReport is the outcome of reconciling a BOM against inventory.
type ValidationReport struct {
	TotalItems     int     `json:"total_items"`
	AvailableCount int     `json:"available_count"`
	MissingCount   int     `json:"missing_count"`
	// Completeness is AvailableCount/TotalItems, defined as 0 for an empty BOM.
	Completeness float64 `json:"completeness"`
	Matches      []Match `json:"matches"`
	Missing      []Match `json:"missing"`
}

// ShoppingItem is one line of the derived shopping list.
type ShoppingItem struct {
	Type       inventory.ComponentType `json:"type"`
	Value      string                  `json:"value"`
	Quantity   int                     `json:"quantity"`
	References []string                `json:"references"`
}

// ShoppingList projects the misses of a validation run into purchasable lines.
type ShoppingList struct {
	MissingItems []ShoppingItem `json:"missing_items"`
	TotalMissing int            `json:"total_missing"`
}

// Stats aggregates counts over a circuit's BOM.
type Stats struct {
	TotalItems         int            `json:"total_items"`
	ByType             map[string]int `json:"by_type"`
	CriticalCount      int            `json:"critical_count"`
	LowConfidenceCount int            `json:"low_confidence_count"`
}
