package bom

import (
	"context"

	"pedalbuild/feature/bom/models"
	inventory "pedalbuild/feature/inventory/models"
)

// Validate reconciles a circuit's BOM against the current inventory.
//
// For each BOM line the inventory is searched by component value; candidates
// of a different type are discarded. The first remaining candidate — the
// search ranking's top hit — is "the" match. A line is available iff that
// candidate exists and its stock covers the required quantity; otherwise it
// is missing, carrying the closest candidate (if any) and its stock so the
// caller can distinguish "wrong part" from "not enough of it".
func (s *Service) Validate(ctx context.Context, circuitID string) (*models.ValidationReport, error) {
	items, err := s.GetBOM(ctx, circuitID)
	if err != nil {
		return nil, err
	}

	report := &models.ValidationReport{
		TotalItems: len(items),
		Matches:    []models.Match{},
		Missing:    []models.Match{},
	}

	for _, item := range items {
		candidates, err := s.searcher.Search(ctx, item.ComponentValue)
		if err != nil {
			return nil, err
		}

		candidate := firstOfType(candidates, item.ComponentType)

		match := models.Match{
			BOMItem:        item,
			Component:      candidate,
			QuantityNeeded: item.Quantity,
		}
		if candidate != nil {
			match.QuantityAvailable = candidate.QuantityInStock
		}

		if candidate != nil && candidate.QuantityInStock >= item.Quantity {
			match.Available = true
			report.Matches = append(report.Matches, match)
			report.AvailableCount++
		} else {
			report.Missing = append(report.Missing, match)
		}
	}

	report.MissingCount = len(report.Missing)
	if report.TotalItems > 0 {
		report.Completeness = float64(report.AvailableCount) / float64(report.TotalItems)
	}

	return report, nil
}

// ShoppingList projects the misses of a validation run into purchasable
// lines. Every miss appears exactly once; matched lines never do.
func (s *Service) ShoppingList(ctx context.Context, circuitID string) (*models.ShoppingList, error) {
	report, err := s.Validate(ctx, circuitID)
	if err != nil {
		return nil, err
	}

	list := &models.ShoppingList{
		MissingItems: make([]models.ShoppingItem, 0, len(report.Missing)),
	}
	for _, miss := range report.Missing {
		list.MissingItems = append(list.MissingItems, models.ShoppingItem{
			Type:       miss.BOMItem.ComponentType,
			Value:      miss.BOMItem.ComponentValue,
			Quantity:   miss.BOMItem.Quantity,
			References: miss.BOMItem.References(),
		})
	}
	list.TotalMissing = len(list.MissingItems)

	return list, nil
}

// firstOfType returns the highest-ranked candidate of the required type.
// The candidate slice arrives in ranking order, so the scan preserves it.
func firstOfType(candidates []inventory.Component, t inventory.ComponentType) *inventory.Component {
	for i := range candidates {
		if candidates[i].Type == t {
			return &candidates[i]
		}
	}
	return nil
}
