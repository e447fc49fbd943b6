// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders the canonical library into the digest
// artifacts people actually consume: per-domain CSVs, an Excel
// workbook with All/Events/Undated sheets, an ICS calendar of dated
// events, and JSON sidecars for undated and upcoming events.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pogo-digest/internal/library"
	"github.com/pdiddy/pogo-digest/internal/normalize"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

// UpcomingWindow is the horizon for the upcoming-events sidecar.
const UpcomingWindow = 30 * 24 * time.Hour

// Header returns the CSV/Excel column order for a domain: the
// canonical fields in table order, then the provenance column.
func Header(domain types.Domain) []string {
	table, ok := normalize.TableFor(domain)
	if !ok {
		return nil
	}
	header := make([]string, 0, len(table.Fields)+1)
	for _, f := range table.Fields {
		header = append(header, f.Name)
	}
	return append(header, types.SourcesField)
}

// Row flattens one record into the domain's column order. List fields
// join with ", "; the provenance set joins with "; ".
func Row(domain types.Domain, rec types.Record) []string {
	table, ok := normalize.TableFor(domain)
	if !ok {
		return nil
	}
	row := make([]string, 0, len(table.Fields)+1)
	for _, f := range table.Fields {
		switch f.Kind {
		case normalize.KindList:
			row = append(row, strings.Join(rec.List(f.Name), ", "))
		case normalize.KindBool:
			if rec.Bool(f.Name) {
				row = append(row, "true")
			} else {
				row = append(row, "false")
			}
		default:
			row = append(row, rec.Str(f.Name))
		}
	}
	return append(row, strings.Join(rec.Sources(), "; "))
}

// WriteAll renders every artifact into outDir.
func WriteAll(lib *library.Library, outDir string, now time.Time, log zerolog.Logger) error {
	return WriteDomains(lib, types.Domains, outDir, now, log)
}

// WriteDomains renders the artifacts for the given domains into outDir.
// Empty domains still get a header-only CSV so downstream diffs stay
// stable; the events-only artifacts (workbook, calendar, JSON sidecars)
// are rendered only when the events domain is among the selection.
func WriteDomains(lib *library.Library, domains []types.Domain, outDir string, now time.Time, log zerolog.Logger) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	withEvents := false
	var events []types.Record
	for _, domain := range domains {
		records, err := lib.Load(domain)
		if err != nil {
			return fmt.Errorf("loading %s records: %w", domain, err)
		}
		if domain == types.DomainEvents {
			withEvents = true
			events = records
		}

		path := filepath.Join(outDir, string(domain)+".csv")
		if err := WriteCSV(path, domain, records); err != nil {
			return err
		}
		log.Info().Str("domain", string(domain)).Int("rows", len(records)).Str("file", path).Msg("csv written")
	}

	if withEvents {
		if err := WriteWorkbook(filepath.Join(outDir, "digest.xlsx"), events); err != nil {
			return err
		}
		if err := WriteCalendar(filepath.Join(outDir, "events.ics"), events); err != nil {
			return err
		}
		if err := writeJSONFile(filepath.Join(outDir, "events_undated.json"), Undated(events)); err != nil {
			return err
		}
		if err := writeJSONFile(filepath.Join(outDir, "events_upcoming_30d.json"), Upcoming(events, now)); err != nil {
			return err
		}
	}

	log.Info().Str("dir", outDir).Msg("export complete")
	return nil
}

// Undated returns the events with no parsed start date.
func Undated(events []types.Record) []types.Record {
	out := []types.Record{}
	for _, rec := range events {
		if rec.Str("Start Date") == "" {
			out = append(out, rec)
		}
	}
	return out
}

// Upcoming returns events starting within the window from now,
// inclusive of today.
func Upcoming(events []types.Record, now time.Time) []types.Record {
	today := now.Truncate(24 * time.Hour)
	horizon := today.Add(UpcomingWindow)

	out := []types.Record{}
	for _, rec := range events {
		start, err := time.Parse("2006-01-02", rec.Str("Start Date"))
		if err != nil {
			continue
		}
		if !start.Before(today) && start.Before(horizon) {
			out = append(out, rec)
		}
	}
	return out
}

func writeJSONFile(path string, v any) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publishing %s: %w", path, err)
	}
	return nil
}
