package models

import "time"

// ComponentType enumerates the supported component categories.
type ComponentType string

const (
	TypeResistor      ComponentType = "resistor"
	TypeCapacitor     ComponentType = "capacitor"
	TypeIC            ComponentType = "ic"
	TypeTransistor    ComponentType = "transistor"
	TypeDiode         ComponentType = "diode"
	TypePotentiometer ComponentType = "potentiometer"
	TypeSwitch        ComponentType = "switch"
	TypeLED           ComponentType = "led"
	TypeJack          ComponentType = "jack"
	TypeHardware      ComponentType = "hardware"
	TypeOther         ComponentType = "other"
)

// AllTypes lists every valid component type in display order.
func AllTypes() []ComponentType {
	return []ComponentType{
		TypeResistor, TypeCapacitor, TypeIC, TypeTransistor, TypeDiode,
		TypePotentiometer, TypeSwitch, TypeLED, TypeJack, TypeHardware, TypeOther,
	}
}

// IsValid checks whether the type is one of the known categories.
func (t ComponentType) IsValid() bool {
	switch t {
	case TypeResistor, TypeCapacitor, TypeIC, TypeTransistor, TypeDiode,
		TypePotentiometer, TypeSwitch, TypeLED, TypeJack, TypeHardware, TypeOther:
		return true
	default:
		return false
	}
}

// Component represents one inventory record.
// The ID is derived deterministically from type, value and package so that
// re-imported vendor rows collide instead of duplicating.
type Component struct {
	ID              string        `gorm:"column:id;primaryKey" json:"id"`
	Type            ComponentType `gorm:"column:type;index" json:"type"`
	Name            string        `gorm:"column:name" json:"name"`
	Value           string        `gorm:"column:value;index" json:"value"`
	Tolerance       string        `gorm:"column:tolerance" json:"tolerance,omitempty"`
	Package         string        `gorm:"column:package" json:"package,omitempty"`
	Manufacturer    string        `gorm:"column:manufacturer" json:"manufacturer,omitempty"`
	PartNumber      string        `gorm:"column:part_number" json:"part_number,omitempty"`
	DatasheetURL    string        `gorm:"column:datasheet_url" json:"datasheet_url,omitempty"`
	QuantityInStock int           `gorm:"column:quantity_in_stock" json:"quantity_in_stock"`
	MinimumQuantity int           `gorm:"column:minimum_quantity" json:"minimum_quantity"`
	UnitPrice       *float64      `gorm:"column:unit_price" json:"unit_price,omitempty"`
	Location        string        `gorm:"column:location" json:"location,omitempty"`
	Voltage         string        `gorm:"column:voltage" json:"voltage,omitempty"`
	Notes           string        `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt       time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides GORM's pluralization to keep the original schema name.
func (Component) TableName() string {
	return "components"
}

// IsLowStock reports whether the component is at or below its reorder threshold.
func (c Component) IsLowStock() bool {
	return c.QuantityInStock <= c.MinimumQuantity
}

// TypeStats aggregates inventory counts for a single component type.
type TypeStats struct {
	// Types is the number of distinct components of this type.
	Types int `json:"types"`
	// Units is the summed quantity_in_stock across those components.
	Units int `json:"units"`
}

// InventoryStats aggregates inventory counts across all types.
type InventoryStats struct {
	TotalTypes      int                  `json:"total_types"`
	TotalUnits      int                  `json:"total_units"`
	ByType          map[string]TypeStats `json:"by_type"`
	LowStockCount   int                  `json:"low_stock_count"`
	OutOfStockCount int                  `json:"out_of_stock_count"`
}
