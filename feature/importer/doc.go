// Package importer loads vendor CSV spreadsheets into the components table.
//
// Parsing, row transformation and id derivation live in csv.go; the service
// applies the insert-or-skip policy and optionally archives the raw upload
// to object storage.
package importer
