package bom_test

import (
	"context"
	"strings"
	"testing"

	"pedalbuild/feature/bom"
	"pedalbuild/feature/bom/models"
	invmodels "pedalbuild/feature/inventory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCSVFormatsRows(t *testing.T) {
	items := []models.CircuitBOMItem{
		{
			ComponentType:       invmodels.TypeResistor,
			ComponentValue:      "10k",
			Quantity:            2,
			ReferenceDesignator: "R1,R2",
			IsCritical:          true,
			ConfidenceScore:     0.9,
		},
		{
			ComponentType:   invmodels.TypeCapacitor,
			ComponentValue:  "100nF",
			Quantity:        1,
			ConfidenceScore: 1,
		},
	}

	csv := bom.RenderCSV(items)
	lines := strings.Split(csv, "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, bom.CSVHeader, lines[0])
	assert.Equal(t, `resistor,10k,2,"R1,R2",Yes,0.90`, lines[1])
	assert.Equal(t, `capacitor,100nF,1,"",No,1.00`, lines[2])
}

func TestRenderCSVEmptyBOMIsHeaderOnly(t *testing.T) {
	assert.Equal(t, bom.CSVHeader, bom.RenderCSV(nil))
}

func TestExportCSVReadsFromStore(t *testing.T) {
	svc, _ := setupBOMTest(t)

	addItem(t, svc, "fuzz_face", models.CircuitBOMItem{
		ComponentType: invmodels.TypeTransistor, ComponentValue: "AC128", Quantity: 2, ConfidenceScore: 1,
	})

	csv, err := svc.ExportCSV(context.Background(), "fuzz_face")
	require.NoError(t, err)

	lines := strings.Split(csv, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "transistor,AC128,2,"))
}
