// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/pdiddy/pogo-digest/pkg/types"
)

func TestPublishLoadRoundTrip(t *testing.T) {
	lib := New(t.TempDir())

	rec := types.Record{}
	rec.SetStr("Event Name", "Rowlet Community Day")
	rec.SetStr("Start Date", "2025-06-02")
	rec.SetBool("Has Valid Dates", true)
	rec.SetList("Tags", []string{"cd", "june"})
	rec.AddSource("leekduck")

	if err := lib.Publish(types.DomainEvents, []types.Record{rec}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	got, err := lib.Load(types.DomainEvents)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Str("Event Name") != "Rowlet Community Day" {
		t.Errorf("Event Name = %q", got[0].Str("Event Name"))
	}
	if !got[0].Bool("Has Valid Dates") {
		t.Error("bool field lost in round trip")
	}
	// JSON decodes lists as []any; the accessor must still read them.
	if tags := got[0].List("Tags"); len(tags) != 2 || tags[0] != "cd" {
		t.Errorf("Tags = %v", tags)
	}
	if sources := got[0].Sources(); len(sources) != 1 || sources[0] != "leekduck" {
		t.Errorf("Sources = %v", sources)
	}
}

func TestLoadMissingDomainIsEmpty(t *testing.T) {
	lib := New(t.TempDir())
	got, err := lib.Load(types.DomainEggs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestSaveLoadRaw(t *testing.T) {
	lib := New(t.TempDir())
	rows := []types.RawRecord{
		{"title": "Rowlet CD", "Source": "feed"},
	}
	if err := lib.SaveRaw(types.DomainEvents, rows); err != nil {
		t.Fatalf("SaveRaw: %v", err)
	}
	got, err := lib.LoadRaw(types.DomainEvents)
	if err != nil {
		t.Fatalf("LoadRaw: %v", err)
	}
	if len(got) != 1 || got[0]["title"] != "Rowlet CD" {
		t.Errorf("got %v", got)
	}
}

func TestPublishWritesNDJSONSidecar(t *testing.T) {
	lib := New(t.TempDir())
	records := []types.Record{}
	for _, name := range []string{"A", "B", "C"} {
		rec := types.Record{}
		rec.SetStr("Event Name", name)
		records = append(records, rec)
	}
	if err := lib.Publish(types.DomainEvents, records); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	f, err := os.Open(lib.DomainDir(types.DomainEvents) + "/index.ndjson")
	if err != nil {
		t.Fatalf("open sidecar: %v", err)
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var obj map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &obj); err != nil {
			t.Fatalf("line %d not valid JSON: %v", lines+1, err)
		}
		lines++
	}
	if lines != 3 {
		t.Errorf("sidecar has %d lines, want 3", lines)
	}
}

func TestPublishReplacesWholesale(t *testing.T) {
	lib := New(t.TempDir())

	first := types.Record{}
	first.SetStr("Event Name", "Old Event")
	if err := lib.Publish(types.DomainEvents, []types.Record{first}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	second := types.Record{}
	second.SetStr("Event Name", "New Event")
	if err := lib.Publish(types.DomainEvents, []types.Record{second}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	data, err := os.ReadFile(lib.CanonicalPath(types.DomainEvents))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(data), "Old Event") {
		t.Error("stale record survived republish")
	}
}

func TestPublishLeavesNoTempFiles(t *testing.T) {
	lib := New(t.TempDir())
	rec := types.Record{}
	rec.SetStr("Event Name", "X")
	if err := lib.Publish(types.DomainEvents, []types.Record{rec}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	entries, err := os.ReadDir(lib.DomainDir(types.DomainEvents))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
