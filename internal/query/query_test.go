// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pogo-digest/internal/index"
	"github.com/pdiddy/pogo-digest/internal/library"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		q    string
		want types.Domain
	}{
		{"when is the next community day", types.DomainEvents},
		{"hydro cannon nerf details", types.DomainBalance},
		{"gbl move update", types.DomainBalance},
		{"new feature now available", types.DomainFeatures},
		{"best counters guide", types.DomainWiki},
		{"how to beat giratina", types.DomainWiki},
		{"", types.DomainEvents},
		{"raikou raid schedule", types.DomainEvents},
	}
	for _, tt := range tests {
		if got := Route(tt.q); got != tt.want {
			t.Errorf("Route(%q) = %s, want %s", tt.q, got, tt.want)
		}
	}
}

func TestDateSpan(t *testing.T) {
	tests := []struct {
		q          string
		start, end string
	}{
		{"events on 2025-06-02", "2025-06-02", ""},
		{"events 2025-06-01 to 2025-06-30", "2025-06-01", "2025-06-30"},
		{"events on June 2 2025", "2025-06-02", ""},
		{"community day June 2, 2025 bonuses", "2025-06-02", ""},
		{"no dates here at all", "", ""},
		{"best june community day picks", "", ""},
	}
	for _, tt := range tests {
		start, end := DateSpan(tt.q)
		if start != tt.start || end != tt.end {
			t.Errorf("DateSpan(%q) = (%q, %q), want (%q, %q)", tt.q, start, end, tt.start, tt.end)
		}
	}
}

func TestRecencyWeight(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		date string
		want float64
	}{
		{"2025-06-01", 1.5},    // today
		{"2026-06-01", 1.5},    // future, clamped high
		{"2020-01-01", 0.5},    // ancient, clamped low
		{"not a date", 1.0},    // unparseable: neutral
		{"", 1.0},              // missing: neutral
	}
	for _, tt := range tests {
		got := RecencyWeight(tt.date, now)
		if got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("RecencyWeight(%q) = %f, want %f", tt.date, got, tt.want)
		}
	}

	// Half a year old sits between the clamps.
	mid := RecencyWeight("2024-12-01", now)
	if mid <= 0.5 || mid >= 1.5 {
		t.Errorf("half-year weight = %f, want inside (0.5, 1.5)", mid)
	}
}

func buildEventsIndex(t *testing.T) *library.Library {
	t.Helper()
	lib := library.New(t.TempDir())

	mk := func(name, date string) types.Record {
		rec := types.Record{}
		rec.SetStr("Event Name", name)
		rec.SetStr("Category", "Raid")
		rec.SetStr("Source", "test")
		rec.SetStr("Start Date", date)
		return rec
	}
	records := []types.Record{
		mk("Giratina raid weekend battles", "2023-01-15"),
		mk("Giratina raid weekend returns", "2025-05-20"),
		mk("Bidoof spotlight hour candy", "2025-05-01"),
	}
	if err := lib.Publish(types.DomainEvents, records); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := index.BuildDomain(lib, types.DomainEvents, types.IndexConfig{}, zerolog.Nop()); err != nil {
		t.Fatalf("BuildDomain: %v", err)
	}
	return lib
}

func TestSearchRecencyBreaksTie(t *testing.T) {
	lib := buildEventsIndex(t)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	domain, results, err := Search(lib, "giratina raid weekend", Options{Now: now})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if domain != types.DomainEvents {
		t.Errorf("routed to %s", domain)
	}
	if len(results) < 2 {
		t.Fatalf("got %d results", len(results))
	}
	// Both giratina docs match about equally; the 2025 one must lead.
	if !strings.Contains(results[0].Title, "returns") {
		t.Errorf("recent record not first: %v", results[0].Title)
	}
	if results[0].Record == nil {
		t.Error("canonical record not attached")
	}
}

func TestSearchBM25(t *testing.T) {
	lib := buildEventsIndex(t)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, results, err := Search(lib, "giratina raid", Options{UseBM25: true, Now: now})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("no results")
	}
	if !strings.Contains(strings.ToLower(results[0].Title), "giratina") {
		t.Errorf("top hit = %q", results[0].Title)
	}
}

func TestSearchTopK(t *testing.T) {
	lib := buildEventsIndex(t)
	_, results, err := Search(lib, "raid", Options{TopK: 1, Now: time.Now()})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestSearchMissingArtifact(t *testing.T) {
	lib := library.New(t.TempDir())
	if _, _, err := Search(lib, "anything", Options{Domain: types.DomainEggs}); err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

func TestFormatTableAndJSON(t *testing.T) {
	results := []Result{{ID: "event:x", Title: "X Event", Score: 1.23}}

	var buf bytes.Buffer
	FormatTable(types.DomainEvents, results, &buf)
	if !strings.Contains(buf.String(), "X Event") {
		t.Errorf("table output = %q", buf.String())
	}

	buf.Reset()
	if err := FormatJSON(results, &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"event:x"`) {
		t.Errorf("json output = %q", buf.String())
	}

	buf.Reset()
	FormatTable(types.DomainEvents, nil, &buf)
	if !strings.Contains(buf.String(), "No results") {
		t.Errorf("empty table output = %q", buf.String())
	}
}
