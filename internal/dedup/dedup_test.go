// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dedup

import (
	"reflect"
	"testing"

	"github.com/pdiddy/pogo-digest/internal/normalize"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

func eventRecord(name, start, end, source string) types.Record {
	rec := types.Record{}
	rec.SetStr("Event Name", name)
	rec.SetStr("Start Date", start)
	rec.SetStr("End Date", end)
	rec.SetStr("Source", source)
	rec.AddSource(source)
	return rec
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"June Community Day: Rowlet!", "june community day rowlet"},
		{"  Rowlet   CD  ", "rowlet cd"},
		{"ROWLET cd", "rowlet cd"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTitle(tt.in); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMergeCollapsesSameEvent(t *testing.T) {
	a := eventRecord("Rowlet Community Day", "2025-06-02", "2025-06-02", "leekduck")
	b := eventRecord("Rowlet Community Day!", "2025-06-02", "2025-06-02", "pokemongolive")

	merged, removed := Merge(types.DomainEvents, []types.Record{a, b})
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if len(merged) != 1 {
		t.Fatalf("merged = %d records, want 1", len(merged))
	}

	// Provenance is the union of both sides.
	want := []string{"leekduck", "pokemongolive"}
	if got := merged[0].Sources(); !reflect.DeepEqual(got, want) {
		t.Errorf("Sources = %v, want %v", got, want)
	}
	// Longer title wins.
	if merged[0].Str("Event Name") != "Rowlet Community Day!" {
		t.Errorf("Event Name = %q", merged[0].Str("Event Name"))
	}
}

func TestMergeKeepsDistinctDates(t *testing.T) {
	a := eventRecord("Raid Hour", "2025-06-04", "2025-06-04", "leekduck")
	b := eventRecord("Raid Hour", "2025-06-11", "2025-06-11", "leekduck")

	merged, removed := Merge(types.DomainEvents, []types.Record{a, b})
	if removed != 0 || len(merged) != 2 {
		t.Fatalf("merged=%d removed=%d, want 2/0 (different dates are different events)", len(merged), removed)
	}
}

func TestMergeIdempotent(t *testing.T) {
	records := []types.Record{
		eventRecord("Rowlet Community Day", "2025-06-02", "2025-06-02", "leekduck"),
		eventRecord("Rowlet Community Day", "2025-06-02", "2025-06-02", "pokemongolive"),
		eventRecord("Raid Hour", "2025-06-04", "2025-06-04", "leekduck"),
	}

	once, _ := Merge(types.DomainEvents, records)
	twice, removed := Merge(types.DomainEvents, once)
	if removed != 0 {
		t.Errorf("second merge removed %d records, want 0", removed)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestMergeProvenanceMonotonic(t *testing.T) {
	a := eventRecord("Rowlet Community Day", "2025-06-02", "2025-06-02", "leekduck")
	a.AddSources([]string{"forum", "sheet"})
	b := eventRecord("Rowlet Community Day", "2025-06-02", "2025-06-02", "pokemongolive")

	merged, _ := Merge(types.DomainEvents, []types.Record{a, b})
	got := merged[0].Sources()
	for _, s := range []string{"leekduck", "forum", "sheet", "pokemongolive"} {
		found := false
		for _, g := range got {
			if g == s {
				found = true
			}
		}
		if !found {
			t.Errorf("source %q lost in merge: %v", s, got)
		}
	}
}

func TestMergeBooleansOrTogether(t *testing.T) {
	a := eventRecord("Rowlet Community Day", "2025-06-02", "2025-06-02", "a")
	a.SetBool("Has Valid Dates", true)
	b := eventRecord("Rowlet Community Day", "2025-06-02", "2025-06-02", "b")
	b.SetBool("Has Valid Dates", false)

	merged, _ := Merge(types.DomainEvents, []types.Record{a, b})
	if !merged[0].Bool("Has Valid Dates") {
		t.Error("true OR false lost the true")
	}

	// Order must not matter for the boolean.
	merged, _ = Merge(types.DomainEvents, []types.Record{b, a})
	if !merged[0].Bool("Has Valid Dates") {
		t.Error("false then true lost the true")
	}
}

func TestMergeLongerListWins(t *testing.T) {
	a := types.Record{}
	a.SetStr("Pokemon", "Rayquaza")
	a.SetList("Moves", []string{"Dragon Tail"})
	b := types.Record{}
	b.SetStr("Pokemon", "Rayquaza")
	b.SetList("Moves", []string{"Dragon Tail", "Outrage"})

	merged, _ := Merge(types.DomainAttackers, []types.Record{a, b})
	if got := merged[0].List("Moves"); len(got) != 2 {
		t.Errorf("Moves = %v, want the longer list", got)
	}
}

func TestMergeUnknownKeyPassesThrough(t *testing.T) {
	rec := types.Record{}
	rec.SetStr("Whatever", "x")
	merged, removed := Merge(types.Domain("mystery"), []types.Record{rec, rec})
	if len(merged) != 2 || removed != 0 {
		t.Errorf("unknown domain merged records: %d/%d", len(merged), removed)
	}
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	a := eventRecord("Rowlet Community Day", "2025-06-02", "2025-06-02", "leekduck")
	b := eventRecord("Rowlet Community Day", "2025-06-02", "2025-06-02", "pokemongolive")

	Merge(types.DomainEvents, []types.Record{a, b})
	if got := a.Sources(); len(got) != 1 {
		t.Errorf("input record mutated: %v", got)
	}
}

func TestKeyForDomains(t *testing.T) {
	pvp := types.Record{}
	pvp.SetStr("League", "great")
	pvp.SetStr("Cup", "overall")
	pvp.SetStr("Pokemon", "Azumarill")

	egg := types.Record{}
	egg.SetStr("Pokemon", "Larvitar")
	egg.SetStr("Distance", "10 km")

	if k := KeyFor(types.DomainPVP)(pvp); k == "" {
		t.Error("pvp key empty")
	}
	if KeyFor(types.DomainEggs)(egg) == KeyFor(types.DomainEggs)(pvp) {
		t.Error("distinct records share a key")
	}
}

func TestMergeKeepsSummaryThroughNormalization(t *testing.T) {
	raws := []types.RawRecord{
		{
			"title":       "Rowlet Community Day",
			"Start Date":  "2024-05-04",
			"description": "Rowlet appears more often.",
			"Source":      "siteA",
			"link":        "https://a.example/cd",
		},
		{
			"title":       "Rowlet Community Day",
			"Start Date":  "2024-05-04",
			"description": "Rowlet appears more often in the wild, with bonus candy and a featured attack.",
			"Source":      "siteB",
			"link":        "https://b.example/cd",
		},
	}

	records := normalize.Batch(types.DomainEvents, raws, nil)
	if len(records) != 2 {
		t.Fatalf("normalized %d records, want 2", len(records))
	}

	merged, removed := Merge(types.DomainEvents, records)
	if removed != 1 || len(merged) != 1 {
		t.Fatalf("merge: %d records, %d removed", len(merged), removed)
	}

	rec := merged[0]
	if got := rec.Str("Summary"); got != "Rowlet appears more often in the wild, with bonus candy and a featured attack." {
		t.Errorf("Summary = %q, want the longer source's text", got)
	}
	if got := rec.Sources(); !reflect.DeepEqual(got, []string{"siteA", "siteB"}) {
		t.Errorf("Sources = %v, want [siteA siteB]", got)
	}
}
