// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dedup

import (
	"strings"
	"unicode"

	"github.com/pdiddy/pogo-digest/pkg/types"
)

// KeyFunc computes the grouping key identifying one real-world item.
// An empty result means the key is unknown and the record must not be
// merged with anything.
type KeyFunc func(types.Record) string

// NormalizeTitle returns a lowercased, punctuation-stripped,
// whitespace-collapsed version of a title for key comparison.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// joinKey builds a composite key, or "" when every part is empty.
func joinKey(parts ...string) string {
	nonEmpty := false
	for _, p := range parts {
		if p != "" {
			nonEmpty = true
			break
		}
	}
	if !nonEmpty {
		return ""
	}
	return strings.Join(parts, "|")
}

var keyFuncs = map[types.Domain]KeyFunc{
	types.DomainEvents: func(r types.Record) string {
		t := NormalizeTitle(r.Str("Event Name"))
		if t == "" {
			return ""
		}
		return joinKey(t, r.Str("Start Date"), r.Str("End Date"))
	},
	types.DomainFeatures: func(r types.Record) string {
		t := NormalizeTitle(r.Str("Feature Name"))
		if t == "" {
			return ""
		}
		return joinKey(r.Str("Date Announced"), t)
	},
	types.DomainBalance: func(r types.Record) string {
		t := NormalizeTitle(r.Str("Change Title"))
		if t == "" {
			return ""
		}
		return joinKey(r.Str("Date Announced"), t)
	},
	types.DomainWiki: func(r types.Record) string {
		t := NormalizeTitle(r.Str("Title"))
		if t == "" {
			return ""
		}
		return joinKey(strings.ToLower(r.Str("Source")), t)
	},
	types.DomainAttackers: func(r types.Record) string {
		return NormalizeTitle(r.Str("Pokemon"))
	},
	types.DomainPVP: func(r types.Record) string {
		t := NormalizeTitle(r.Str("Pokemon"))
		if t == "" {
			return ""
		}
		return joinKey(strings.ToLower(r.Str("League")), strings.ToLower(r.Str("Cup")), t)
	},
	types.DomainResearch: func(r types.Record) string {
		return NormalizeTitle(r.Str("Task"))
	},
	types.DomainEggs: func(r types.Record) string {
		t := NormalizeTitle(r.Str("Pokemon"))
		if t == "" {
			return ""
		}
		return joinKey(t, r.Str("Distance"))
	},
	types.DomainItems: func(r types.Record) string {
		return NormalizeTitle(r.Str("Name"))
	},
	types.DomainShinies: func(r types.Record) string {
		return NormalizeTitle(r.Str("Pokemon"))
	},
}

// KeyFor returns the grouping key function for a domain. Unknown
// domains get a function that never groups anything.
func KeyFor(domain types.Domain) KeyFunc {
	if fn, ok := keyFuncs[domain]; ok {
		return fn
	}
	return func(types.Record) string { return "" }
}

// safeKey evaluates fn, treating a panic as "key unknown" so a broken
// key function degrades to singleton records instead of aborting the
// batch.
func safeKey(fn KeyFunc, r types.Record) (key string) {
	defer func() {
		if recover() != nil {
			key = ""
		}
	}()
	return fn(r)
}
