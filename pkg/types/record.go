// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"sort"
	"strings"
)

// Domain identifies one of the fixed content categories the pipeline
// aggregates. The set is closed; per-domain field mappings are ad hoc
// rather than schema-driven.
type Domain string

const (
	DomainEvents    Domain = "events"
	DomainFeatures  Domain = "features"
	DomainBalance   Domain = "balance"
	DomainWiki      Domain = "wiki"
	DomainAttackers Domain = "attackers"
	DomainPVP       Domain = "pvp"
	DomainResearch  Domain = "research"
	DomainEggs      Domain = "eggs"
	DomainItems     Domain = "items"
	DomainShinies   Domain = "shinies"
)

// Domains lists every domain in pipeline order.
var Domains = []Domain{
	DomainEvents, DomainFeatures, DomainBalance, DomainWiki,
	DomainAttackers, DomainPVP, DomainResearch, DomainEggs,
	DomainItems, DomainShinies,
}

// ParseDomain returns the Domain matching name and whether it is one
// of the known domains.
func ParseDomain(name string) (Domain, bool) {
	d := Domain(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Domains {
		if d == known {
			return d, true
		}
	}
	return "", false
}

// RawRecord is an arbitrary field-name-to-value mapping produced by a
// scraper. No shape is assumed; the normalizer copes with absent,
// misnamed, and mistyped fields. Raw records exist only at the
// normalization boundary.
type RawRecord map[string]any

// Record is a canonical normalized row for one domain. Values are
// restricted to string, bool, or []string; the typed setters below are
// the only write path, so a Record built through them is always
// JSON-round-trippable.
type Record map[string]any

// SourcesField holds the provenance set: the distinct source names that
// contributed at least one raw record to this row.
const SourcesField = "Sources"

// Str returns the string value of key, or "" when absent or non-string.
func (r Record) Str(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns the bool value of key, defaulting to false.
func (r Record) Bool(key string) bool {
	if v, ok := r[key].(bool); ok {
		return v
	}
	return false
}

// List returns the string-sequence value of key. A JSON-decoded record
// carries []any; both representations are accepted.
func (r Record) List(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// SetStr stores a string field.
func (r Record) SetStr(key, value string) { r[key] = value }

// SetBool stores a bool field.
func (r Record) SetBool(key string, value bool) { r[key] = value }

// SetList stores a string-sequence field.
func (r Record) SetList(key string, value []string) { r[key] = value }

// Sources returns the provenance set, sorted for stable output.
func (r Record) Sources() []string {
	out := append([]string(nil), r.List(SourcesField)...)
	sort.Strings(out)
	return out
}

// AddSource unions src into the provenance set. Empty names are ignored;
// the set only ever grows.
func (r Record) AddSource(src string) {
	src = strings.TrimSpace(src)
	if src == "" {
		return
	}
	cur := r.List(SourcesField)
	for _, s := range cur {
		if s == src {
			return
		}
	}
	r.SetList(SourcesField, append(cur, src))
}

// AddSources unions every name in srcs into the provenance set.
func (r Record) AddSources(srcs []string) {
	for _, s := range srcs {
		r.AddSource(s)
	}
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		if list, ok := v.([]string); ok {
			out[k] = append([]string(nil), list...)
			continue
		}
		out[k] = v
	}
	return out
}
