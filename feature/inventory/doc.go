// Package inventory owns the authoritative view of on-hand components.
//
// It provides listing, ranked substring search, point lookup, low-stock
// queries, guarded quantity-delta updates, and per-type statistics. The
// search ranking is load-bearing: BOM validation takes the first result
// as "the" matching component.
package inventory
