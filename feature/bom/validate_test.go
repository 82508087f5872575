package bom_test

import (
	"context"
	"testing"

	"pedalbuild/feature/bom/models"
	invmodels "pedalbuild/feature/inventory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePartialAvailability(t *testing.T) {
	svc, db := setupBOMTest(t)
	seedStock(t, db,
		invmodels.Component{ID: "resistor_10k", Type: invmodels.TypeResistor, Name: "Metal Film", Value: "10k", QuantityInStock: 100},
	)

	addItem(t, svc, "fuzz_face", models.CircuitBOMItem{ComponentType: invmodels.TypeResistor, ComponentValue: "10k", Quantity: 2, ConfidenceScore: 1})
	addItem(t, svc, "fuzz_face", models.CircuitBOMItem{ComponentType: invmodels.TypeCapacitor, ComponentValue: "100nF", Quantity: 1, ConfidenceScore: 1})

	report, err := svc.Validate(context.Background(), "fuzz_face")
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalItems)
	assert.Equal(t, 1, report.AvailableCount)
	assert.Equal(t, 1, report.MissingCount)
	assert.InDelta(t, 0.5, report.Completeness, 1e-9)

	require.Len(t, report.Matches, 1)
	assert.Equal(t, "resistor_10k", report.Matches[0].Component.ID)
	assert.True(t, report.Matches[0].Available)

	require.Len(t, report.Missing, 1)
	assert.Equal(t, invmodels.TypeCapacitor, report.Missing[0].BOMItem.ComponentType)
	assert.Nil(t, report.Missing[0].Component)
}

func TestValidateEmptyBOM(t *testing.T) {
	svc, _ := setupBOMTest(t)

	report, err := svc.Validate(context.Background(), "unknown_circuit")
	require.NoError(t, err)

	assert.Zero(t, report.TotalItems)
	assert.Zero(t, report.Completeness)
	assert.Empty(t, report.Matches)
	assert.Empty(t, report.Missing)
}

func TestValidateTypeMismatchIsMissing(t *testing.T) {
	svc, db := setupBOMTest(t)
	// a potentiometer whose value matches the query must not satisfy a resistor line
	seedStock(t, db,
		invmodels.Component{ID: "pot_b10k", Type: invmodels.TypePotentiometer, Name: "B10k Linear", Value: "10k", QuantityInStock: 50},
	)

	addItem(t, svc, "fuzz_face", models.CircuitBOMItem{ComponentType: invmodels.TypeResistor, ComponentValue: "10k", Quantity: 1, ConfidenceScore: 1})

	report, err := svc.Validate(context.Background(), "fuzz_face")
	require.NoError(t, err)

	assert.Zero(t, report.AvailableCount)
	require.Len(t, report.Missing, 1)
	assert.Nil(t, report.Missing[0].Component)
}

func TestValidateInsufficientStockCarriesCandidate(t *testing.T) {
	svc, db := setupBOMTest(t)
	seedStock(t, db,
		invmodels.Component{ID: "transistor_ac128", Type: invmodels.TypeTransistor, Name: "Germanium", Value: "AC128", QuantityInStock: 1},
	)

	addItem(t, svc, "fuzz_face", models.CircuitBOMItem{ComponentType: invmodels.TypeTransistor, ComponentValue: "AC128", Quantity: 2, ConfidenceScore: 1})

	report, err := svc.Validate(context.Background(), "fuzz_face")
	require.NoError(t, err)

	require.Len(t, report.Missing, 1)
	miss := report.Missing[0]
	require.NotNil(t, miss.Component)
	assert.Equal(t, "transistor_ac128", miss.Component.ID)
	assert.Equal(t, 2, miss.QuantityNeeded)
	assert.Equal(t, 1, miss.QuantityAvailable)
	assert.False(t, miss.Available)
}

func TestValidatePicksTopRankedCandidate(t *testing.T) {
	svc, db := setupBOMTest(t)
	// exact value match outranks the prefix match even with more stock on the latter
	seedStock(t, db,
		invmodels.Component{ID: "resistor_10k2", Type: invmodels.TypeResistor, Name: "Metal Film", Value: "10k2", QuantityInStock: 500},
		invmodels.Component{ID: "resistor_10k", Type: invmodels.TypeResistor, Name: "Metal Film", Value: "10k", QuantityInStock: 10},
	)

	addItem(t, svc, "fuzz_face", models.CircuitBOMItem{ComponentType: invmodels.TypeResistor, ComponentValue: "10k", Quantity: 2, ConfidenceScore: 1})

	report, err := svc.Validate(context.Background(), "fuzz_face")
	require.NoError(t, err)

	require.Len(t, report.Matches, 1)
	assert.Equal(t, "resistor_10k", report.Matches[0].Component.ID)
}

func TestShoppingListProjectsMissesOnly(t *testing.T) {
	svc, db := setupBOMTest(t)
	seedStock(t, db,
		invmodels.Component{ID: "resistor_10k", Type: invmodels.TypeResistor, Name: "Metal Film", Value: "10k", QuantityInStock: 100},
	)

	addItem(t, svc, "fuzz_face", models.CircuitBOMItem{ComponentType: invmodels.TypeResistor, ComponentValue: "10k", Quantity: 2, ReferenceDesignator: "R1,R2", ConfidenceScore: 1})
	addItem(t, svc, "fuzz_face", models.CircuitBOMItem{ComponentType: invmodels.TypeCapacitor, ComponentValue: "100nF", Quantity: 1, ReferenceDesignator: "C3", ConfidenceScore: 1})
	addItem(t, svc, "fuzz_face", models.CircuitBOMItem{ComponentType: invmodels.TypeTransistor, ComponentValue: "AC128", Quantity: 2, ConfidenceScore: 1})

	list, err := svc.ShoppingList(context.Background(), "fuzz_face")
	require.NoError(t, err)

	assert.Equal(t, 2, list.TotalMissing)
	require.Len(t, list.MissingItems, 2)

	// matched resistor never appears
	for _, item := range list.MissingItems {
		assert.NotEqual(t, "10k", item.Value)
	}

	assert.Equal(t, []string{"C3"}, list.MissingItems[0].References)
	// items without designators carry an empty slice, not null
	assert.Equal(t, []string{}, list.MissingItems[1].References)
}
