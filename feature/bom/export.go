package bom

import (
	"context"
	"fmt"
	"strings"

	"pedalbuild/feature/bom/models"
)

// CSVHeader is the first line of every BOM export.
const CSVHeader = "Type,Value,Quantity,Reference Designators,Critical,Confidence"

// ExportCSV renders the circuit's BOM as comma-separated text.
// An empty BOM yields just the header line.
func (s *Service) ExportCSV(ctx context.Context, circuitID string) (string, error) {
	items, err := s.GetBOM(ctx, circuitID)
	if err != nil {
		return "", err
	}
	return RenderCSV(items), nil
}

// RenderCSV formats BOM items in the fixed export layout: reference
// designators are always quoted, criticality is Yes/No, and confidence
// is rendered to two decimal places.
func RenderCSV(items []models.CircuitBOMItem) string {
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, CSVHeader)

	for _, item := range items {
		critical := "No"
		if item.IsCritical {
			critical = "Yes"
		}
		lines = append(lines, fmt.Sprintf("%s,%s,%d,%q,%s,%.2f",
			item.ComponentType,
			item.ComponentValue,
			item.Quantity,
			item.ReferenceDesignator,
			critical,
			item.ConfidenceScore,
		))
	}

	return strings.Join(lines, "\n")
}
