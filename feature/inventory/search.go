package inventory

import (
	"sort"
	"strings"

	"pedalbuild/feature/inventory/models"
)

// Match tiers, strongest first. The tier decides the primary sort order;
// ties fall back to (type, value).
const (
	tierExactValue  = 1
	tierValuePrefix = 2
	tierNamePrefix  = 3
	tierSubstring   = 4
)

// rankTier classifies how strongly a component matches the query.
// Comparisons are case-folded to mirror the LIKE collation used to fetch
// the candidate set.
func rankTier(c models.Component, query string) int {
	switch {
	case strings.EqualFold(c.Value, query):
		return tierExactValue
	case hasFoldPrefix(c.Value, query):
		return tierValuePrefix
	case hasFoldPrefix(c.Name, query):
		return tierNamePrefix
	default:
		return tierSubstring
	}
}

// RankMatches sorts components in place by match strength against the query:
// exact value match, then value prefix, then name prefix, then everything
// else; within a tier by (type, value). The sort is stable so candidates the
// database returned in a defined order keep that order on full ties.
func RankMatches(query string, components []models.Component) {
	sort.SliceStable(components, func(i, j int) bool {
		ti, tj := rankTier(components[i], query), rankTier(components[j], query)
		if ti != tj {
			return ti < tj
		}
		if components[i].Type != components[j].Type {
			return components[i].Type < components[j].Type
		}
		return components[i].Value < components[j].Value
	})
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
