// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"testing"

	"github.com/pdiddy/pogo-digest/pkg/types"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CD", "CD"},
		{"community day", "CD"},
		{"Community Day Classic", "CD Classic"},
		{"Shadow Raid Weekend", "Shadow Raid"},
		{"5-star raid", "Raid"},
		{"Mega Raid Day", "Mega"},
		{"Spotlight Hour", "Spotlight"},
		{"Special Research", "Research"},
		{"News post", "Event/News"},
		{"Season Event", "Event/News"},
		{"???", "Other"},
		{"", "Other"},
	}
	for _, tt := range tests {
		if got := NormalizeCategory(tt.in); got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCategorizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"June Community Day: Rowlet", "CD"},
		{"Community Day Classic: Mudkip", "CD Classic"},
		{"Giratina returns to Shadow Raids", "Shadow Raid"},
		{"Bidoof Spotlight Hour", "Spotlight"},
		{"Mega Gardevoir debuts", "Mega"},
		{"New Special Research available", "Research"},
		{"Season of Hidden Gems begins", "Event/News"},
	}
	for _, tt := range tests {
		if got := CategorizeTitle(tt.in); got != tt.want {
			t.Errorf("CategorizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAsBoolTokens(t *testing.T) {
	truthy := []any{true, "true", "TRUE", "1", "yes", "Y", " y "}
	for _, v := range truthy {
		if !AsBool(v) {
			t.Errorf("AsBool(%v) = false, want true", v)
		}
	}
	falsy := []any{false, "false", "0", "no", "", nil, "maybe", 1}
	for _, v := range falsy {
		if v == 1 {
			// int 1 stringifies to "1", which is truthy.
			continue
		}
		if AsBool(v) {
			t.Errorf("AsBool(%v) = true, want false", v)
		}
	}
}

func TestValidURLFallback(t *testing.T) {
	if got := ValidURL("https://example.com/x"); got != "https://example.com/x" {
		t.Errorf("valid URL rewritten to %q", got)
	}
	for _, bad := range []string{"", "   ", "not a url"} {
		if got := ValidURL(bad); got != PlaceholderURL {
			t.Errorf("ValidURL(%q) = %q, want placeholder", bad, got)
		}
	}
}

func TestNormalizeEventFromRSSItem(t *testing.T) {
	raw := types.RawRecord{
		"title":   "June Community Day: Rowlet",
		"link":    "https://example.com/cd-rowlet",
		"pubDate": "Mon, 02 Jun 2025 16:00:00 UTC",
		"Source":  "pokemongolive",
	}
	rec, err := Normalize(types.DomainEvents, raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if rec.Str("Event Name") != "June Community Day: Rowlet" {
		t.Errorf("Event Name = %q", rec.Str("Event Name"))
	}
	if rec.Str("Start Date") != "2025-06-02" {
		t.Errorf("Start Date = %q", rec.Str("Start Date"))
	}
	// Single-day: end mirrors start.
	if rec.Str("End Date") != "2025-06-02" {
		t.Errorf("End Date = %q", rec.Str("End Date"))
	}
	if !rec.Bool("Has Valid Dates") {
		t.Error("Has Valid Dates = false")
	}
	if rec.Str("Category Normalized") != "CD" {
		t.Errorf("Category Normalized = %q", rec.Str("Category Normalized"))
	}
	if rec.Str("Source URL") != "https://example.com/cd-rowlet" {
		t.Errorf("Source URL = %q", rec.Str("Source URL"))
	}
	if got := rec.Sources(); len(got) != 1 || got[0] != "pokemongolive" {
		t.Errorf("Sources = %v", got)
	}
}

func TestNormalizeEventVerboseCategoryHeader(t *testing.T) {
	raw := types.RawRecord{
		"Event Name":       "Mudkip Community Day Classic",
		"Start Date":       "2025-07-05",
		verboseCategoryKey: "CD Classic",
		"Source":           "sheet",
	}
	rec, err := Normalize(types.DomainEvents, raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if rec.Str("Category (raw)") != "CD Classic" {
		t.Errorf("Category (raw) = %q", rec.Str("Category (raw)"))
	}
	if rec.Str("Category Normalized") != "CD Classic" {
		t.Errorf("Category Normalized = %q", rec.Str("Category Normalized"))
	}
}

func TestNormalizeEventUnparseableDateRecovers(t *testing.T) {
	raw := types.RawRecord{
		"Event Name": "Mystery Event",
		"Start Date": "when the servers feel like it",
		"Source":     "forum",
	}
	rec, err := Normalize(types.DomainEvents, raw)
	if err != nil {
		t.Fatalf("Normalize should recover, got %v", err)
	}
	if rec.Str("Start Date") != "" {
		t.Errorf("Start Date = %q, want empty", rec.Str("Start Date"))
	}
	if rec.Bool("Has Valid Dates") {
		t.Error("Has Valid Dates = true for unparseable date")
	}
	if rec.Str("Date Parse Status") != string(StatusMissing) {
		t.Errorf("Date Parse Status = %q", rec.Str("Date Parse Status"))
	}
}

func TestNormalizeEventMissingURLGetsPlaceholder(t *testing.T) {
	raw := types.RawRecord{
		"Event Name": "Raid Hour",
		"Source":     "forum",
	}
	rec, err := Normalize(types.DomainEvents, raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if rec.Str("Source URL") != PlaceholderURL {
		t.Errorf("Source URL = %q, want %q", rec.Str("Source URL"), PlaceholderURL)
	}
}

func TestNormalizeDropsRecordWithoutTitle(t *testing.T) {
	raw := types.RawRecord{"pubDate": "2025-06-02", "Source": "feed"}
	if _, err := Normalize(types.DomainEvents, raw); err == nil {
		t.Fatal("expected error for record without a derivable title")
	}
}

func TestNormalizeUpstreamStatusClamped(t *testing.T) {
	raw := types.RawRecord{
		"Event Name":        "Undated Teaser",
		"Date Parse Status": "unknown",
		"Source":            "sheet",
	}
	rec, err := Normalize(types.DomainEvents, raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if rec.Str("Date Parse Status") != string(StatusNone) {
		t.Errorf("Date Parse Status = %q, want %q", rec.Str("Date Parse Status"), StatusNone)
	}
}

func TestNormalizePVPDefaultsCup(t *testing.T) {
	raw := types.RawRecord{
		"speciesName": "Azumarill",
		"League":      "great",
		"Score":       "92.5",
		"Source":      "pvpoke",
	}
	rec, err := Normalize(types.DomainPVP, raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if rec.Str("Pokemon") != "Azumarill" {
		t.Errorf("Pokemon = %q", rec.Str("Pokemon"))
	}
	if rec.Str("Cup") != "overall" {
		t.Errorf("Cup default = %q", rec.Str("Cup"))
	}
}

func TestBatchDropsAndKeeps(t *testing.T) {
	raws := []types.RawRecord{
		{"title": "Good Event", "Source": "feed"},
		{"Source": "feed"},
		{"title": "Another Event", "Source": "feed"},
	}
	var dropped []int
	records := Batch(types.DomainEvents, raws, func(i int, err error) {
		dropped = append(dropped, i)
	})
	if len(records) != 2 {
		t.Errorf("kept %d records, want 2", len(records))
	}
	if len(dropped) != 1 || dropped[0] != 1 {
		t.Errorf("dropped = %v, want [1]", dropped)
	}
}
