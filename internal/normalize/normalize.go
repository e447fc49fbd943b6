// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize maps raw scraped records onto per-domain canonical
// field sets: candidate field resolution, type coercion, date and
// category normalization, and URL fallback. Parse failures always
// recover to a safe default; a record is only rejected when it lacks
// the minimum identifying field for its domain.
package normalize

import (
	"fmt"
	"strings"

	"github.com/pdiddy/pogo-digest/pkg/types"
)

// Normalize converts one raw record into the canonical record for
// domain. It returns an error only when the record has no derivable
// value for the domain's identifying field; every other defect is
// repaired in place (empty date, placeholder URL, "Other" category).
func Normalize(domain types.Domain, raw types.RawRecord) (types.Record, error) {
	table, ok := TableFor(domain)
	if !ok {
		return nil, fmt.Errorf("unknown domain %q", domain)
	}

	rec := make(types.Record, len(table.Fields)+4)

	for _, f := range table.Fields {
		v := firstCandidate(raw, f.Candidates)
		switch f.Kind {
		case KindDate:
			d, _ := NormalizeDate(v)
			rec.SetStr(f.Name, d)
		case KindBool:
			rec.SetBool(f.Name, AsBool(v))
		case KindList:
			rec.SetList(f.Name, AsList(v))
		default:
			s := strings.TrimSpace(AsString(v))
			if s == "" {
				s = f.Default
			}
			rec.SetStr(f.Name, s)
		}
	}

	title := rec.Str(table.TitleField)
	if title == "" {
		return nil, fmt.Errorf("%s: no derivable %s", domain, table.TitleField)
	}

	rec.SetStr("Source URL", ValidURL(rec.Str("Source URL")))

	// Provenance: seed from the record's own source, then union any
	// Sources array the raw record already carried.
	rec.AddSource(rec.Str("Source"))
	rec.AddSources(AsList(raw[types.SourcesField]))

	if domain == types.DomainEvents {
		finishEvent(raw, rec)
	}

	return rec, nil
}

// firstCandidate returns the first non-empty raw value among the
// candidate field names, in priority order.
func firstCandidate(raw types.RawRecord, candidates []string) any {
	for _, name := range candidates {
		v, ok := raw[name]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v
	}
	return nil
}

// finishEvent derives the event-only columns: the normalized category
// bucket, the preserved raw label, and the date validity flags.
func finishEvent(raw types.RawRecord, rec types.Record) {
	rawLabel := rec.Str("Category")
	if v, ok := raw[verboseCategoryKey]; ok {
		rawLabel = strings.TrimSpace(AsString(v))
	}
	if rawLabel == "" {
		rawLabel = rec.Str("Category")
	}
	if rec.Str("Category") == "" {
		rec.SetStr("Category", CategorizeTitle(rec.Str("Event Name")))
	}
	rec.SetStr("Category (raw)", rawLabel)
	rec.SetStr("Category Normalized", NormalizeCategory(rec.Str("Category")))

	start := rec.Str("Start Date")
	end := rec.Str("End Date")
	switch {
	case start != "" && end != "":
		rec.SetBool("Has Valid Dates", true)
		rec.SetStr("Date Parse Status", string(StatusParsed))
	case start != "":
		// Single-day event.
		rec.SetStr("End Date", start)
		rec.SetBool("Has Valid Dates", true)
		rec.SetStr("Date Parse Status", string(StatusParsed))
	case end != "":
		rec.SetStr("Start Date", end)
		rec.SetBool("Has Valid Dates", true)
		rec.SetStr("Date Parse Status", string(StatusParsed))
	default:
		rec.SetBool("Has Valid Dates", false)
		rec.SetStr("Date Parse Status", string(StatusMissing))
	}

	// When the dates came through empty, an upstream status label still
	// explains why; clamp it to the allowed set and keep it.
	if rec.Str("Start Date") == "" {
		if v, ok := raw["Date Parse Status"]; ok {
			rec.SetStr("Date Parse Status", string(NormalizeStatus(AsString(v))))
		}
	}
}

// Batch normalizes a slice of raw records, dropping the ones that fail
// and reporting each drop through onDrop (which may be nil).
func Batch(domain types.Domain, raws []types.RawRecord, onDrop func(i int, err error)) []types.Record {
	out := make([]types.Record, 0, len(raws))
	for i, raw := range raws {
		rec, err := Normalize(domain, raw)
		if err != nil {
			if onDrop != nil {
				onDrop(i, err)
			}
			continue
		}
		out = append(out, rec)
	}
	return out
}
