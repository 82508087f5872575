// Package bom owns circuit bill-of-materials records and the
// validation/reconciliation engine.
//
// Validation joins each BOM line to inventory by an inexact value search
// filtered to the line's component type; the search ranking's top hit decides
// availability. The same engine backs the validate, shopping-list and stats
// operations, plus the CSV export.
package bom
