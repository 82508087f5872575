// Package utils provides small type conversion helpers shared across features.
package utils
