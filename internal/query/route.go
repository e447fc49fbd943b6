// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query serves free-text queries over the persisted lexical
// artifacts: a keyword router picks the target domain, a date-span
// extractor pulls literal or fuzzy dates from the query text, and the
// reranker weights vector similarity by record recency.
package query

import (
	"strings"

	"github.com/pdiddy/pogo-digest/pkg/types"
)

// routeRules are checked in priority order; the first rule whose
// keyword list matches wins, and an unmatched query falls through to
// events. Ambiguity is resolved by order, not by scoring — this is a
// coarse heuristic router, not a classifier.
var routeRules = []struct {
	domain   types.Domain
	keywords []string
}{
	{types.DomainBalance, []string{"balance", "nerf", "buff", "move update", "rebalance", "gbl"}},
	{types.DomainFeatures, []string{"feature", "now available", "introducing", "coming soon"}},
	{types.DomainWiki, []string{"guide", "tips", "how to", "best", "wiki"}},
}

// Route classifies a free-text query into its target domain.
func Route(q string) types.Domain {
	ql := strings.ToLower(q)
	for _, rule := range routeRules {
		for _, k := range rule.keywords {
			if strings.Contains(ql, k) {
				return rule.domain
			}
		}
	}
	return types.DomainEvents
}
