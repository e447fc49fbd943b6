// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup merges canonical records that describe the same
// real-world item across sources. Grouping is keyed per domain;
// conflicting field values resolve by length preference and provenance
// sets union monotonically.
package dedup

import "github.com/pdiddy/pogo-digest/pkg/types"

// Merge collapses records sharing a non-empty grouping key into one
// record per key, preserving first-seen order. Records whose key is
// unknown bypass merging and come through as singletons. The removed
// count is the number of records folded into an earlier one.
func Merge(domain types.Domain, records []types.Record) (merged []types.Record, removed int) {
	keyFn := KeyFor(domain)
	seen := make(map[string]int) // grouping key → index in merged

	for _, r := range records {
		key := safeKey(keyFn, r)
		if key == "" {
			merged = append(merged, r.Clone())
			continue
		}
		if idx, ok := seen[key]; ok {
			mergeInto(merged[idx], r)
			removed++
			continue
		}
		seen[key] = len(merged)
		merged = append(merged, r.Clone())
	}
	return merged, removed
}

// mergeInto folds src into dst field by field. For each field the
// longer non-empty string representation wins — a completeness
// heuristic that favors detailed text over terse duplicates, not a
// correctness rule. Booleans or-together; lists keep the longer side;
// provenance always unions.
func mergeInto(dst, src types.Record) {
	for field, sv := range src {
		if field == types.SourcesField {
			continue
		}
		switch v := sv.(type) {
		case bool:
			dst.SetBool(field, dst.Bool(field) || v)
		case []string:
			if len(v) > len(dst.List(field)) {
				dst.SetList(field, append([]string(nil), v...))
			}
		case []any:
			// JSON-decoded records carry []any for list fields.
			if list := src.List(field); len(list) > len(dst.List(field)) {
				dst.SetList(field, list)
			}
		case string:
			if v != "" && len(v) > len(dst.Str(field)) {
				dst.SetStr(field, v)
			}
		}
	}
	dst.AddSources(src.Sources())
}
