package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pedalbuild/core/utils"
	inventory "pedalbuild/feature/inventory/models"
)

// RequiredColumns are the CSV columns every import file must carry.
var RequiredColumns = []string{"Category", "HumanReadableValue", "Quantity"}

// categoryTable maps normalized vendor categories to component types.
// Lookups are upper-cased and trimmed first, so trailing-space and plural
// variants collapse onto the same key.
var categoryTable = map[string]inventory.ComponentType{
	"RESISTOR":       inventory.TypeResistor,
	"RESISTORS":      inventory.TypeResistor,
	"CAPACITOR":      inventory.TypeCapacitor,
	"CAPACITORS":     inventory.TypeCapacitor,
	"IC":             inventory.TypeIC,
	"ICS":            inventory.TypeIC,
	"TRANSISTOR":     inventory.TypeTransistor,
	"TRANSISTORS":    inventory.TypeTransistor,
	"DIODE":          inventory.TypeDiode,
	"DIODES":         inventory.TypeDiode,
	"POT":            inventory.TypePotentiometer,
	"POTS":           inventory.TypePotentiometer,
	"POTENTIOMETER":  inventory.TypePotentiometer,
	"POTENTIOMETERS": inventory.TypePotentiometer,
	"HARDWARE":       inventory.TypeHardware,
	"SWITCH":         inventory.TypeSwitch,
	"LED":            inventory.TypeLED,
	"JACK":           inventory.TypeJack,
}

// NormalizeCategory maps a raw vendor category onto the component type enum.
// Unrecognized categories become "other".
func NormalizeCategory(category string) inventory.ComponentType {
	if t, ok := categoryTable[strings.ToUpper(strings.TrimSpace(category))]; ok {
		return t
	}
	return inventory.TypeOther
}

// ComponentID derives the deterministic component id from type, value and
// package. Each segment is lowercased with spaces, slashes, dots and hyphens
// replaced by underscores; the package segment is capped at 20 characters.
func ComponentID(compType inventory.ComponentType, value, pkg string) string {
	parts := []string{cleanSegment(string(compType))}
	if value != "" {
		parts = append(parts, cleanSegment(value))
	}
	if pkg != "" {
		if len(pkg) > 20 {
			pkg = pkg[:20]
		}
		parts = append(parts, cleanSegment(pkg))
	}
	return strings.Join(parts, "_")
}

var segmentReplacer = strings.NewReplacer(" ", "_", "/", "_", "-", "_", ".", "_")

func cleanSegment(s string) string {
	return segmentReplacer.Replace(strings.ToLower(s))
}

// Row is one CSV record keyed by header name. Missing columns read as "".
type Row map[string]string

// ParseCSV reads a vendor spreadsheet and transforms its rows into inventory
// components. Rows missing a required field (or with an unparsable quantity)
// are dropped, matching the documented import contract. A missing required
// column fails the whole parse.
func ParseCSV(r io.Reader) ([]inventory.Component, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // vendor sheets are frequently ragged

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("csv has no header row")
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	components := make([]inventory.Component, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(index))
		empty := true
		for col, i := range index {
			if i < len(record) {
				row[col] = record[i]
				if strings.TrimSpace(record[i]) != "" {
					empty = false
				}
			}
		}
		if empty {
			continue
		}

		if component, ok := transformRow(row); ok {
			components = append(components, *component)
		}
	}

	return components, nil
}

// transformRow converts one CSV row into a component.
// The second return value is false when the row must be dropped.
func transformRow(row Row) (*inventory.Component, bool) {
	category := strings.TrimSpace(row["Category"])
	value := strings.TrimSpace(row["HumanReadableValue"])
	quantityRaw := strings.TrimSpace(row["Quantity"])
	if category == "" || value == "" || quantityRaw == "" {
		return nil, false
	}

	quantity, err := strconv.Atoi(quantityRaw)
	if err != nil || quantity < 0 {
		return nil, false
	}

	compType := NormalizeCategory(category)
	pkg := strings.TrimSpace(row["Footprint"])

	component := &inventory.Component{
		ID:              ComponentID(compType, value, pkg),
		Type:            compType,
		Name:            buildName(row["SubType"], value),
		Value:           value,
		Package:         pkg,
		PartNumber:      strings.TrimSpace(row["MfrPartNumber"]),
		QuantityInStock: quantity,
		MinimumQuantity: utils.ToInt(strings.TrimSpace(row["ReorderLevel"])),
		Voltage:         strings.TrimSpace(row["Voltage"]),
		Notes:           buildNotes(row),
	}

	return component, true
}

// buildName assembles the display name from SubType and value.
func buildName(subType, value string) string {
	subType = strings.TrimSpace(subType)
	value = strings.TrimSpace(value)

	switch {
	case subType != "" && value != "":
		return subType + " " + value
	case subType != "":
		return subType
	case value != "":
		return value
	default:
		return "Unknown Component"
	}
}

// buildNotes assembles the notes field from the optional CSV columns.
func buildNotes(row Row) string {
	var parts []string

	if keyNotes := strings.TrimSpace(row["KeyNotes"]); keyNotes != "" {
		parts = append(parts, keyNotes)
	}
	if related := strings.TrimSpace(row["RelatedPart"]); related != "" {
		parts = append(parts, "Related: "+related)
	}
	if vendor := strings.TrimSpace(row["Vendor"]); vendor != "" {
		if sku := strings.TrimSpace(row["VendorSKU"]); sku != "" {
			parts = append(parts, fmt.Sprintf("Vendor: %s (SKU: %s)", vendor, sku))
		} else {
			parts = append(parts, "Vendor: "+vendor)
		}
	}
	numeric := strings.TrimSpace(row["NumericBaseValue"])
	unit := strings.TrimSpace(row["UnitType"])
	if numeric != "" && unit != "" {
		parts = append(parts, fmt.Sprintf("Numeric: %s %s", numeric, unit))
	}

	return strings.Join(parts, "\n")
}
