// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/pdiddy/pogo-digest/pkg/types"
)

// WriteCalendar renders dated events as an ICS calendar of all-day
// entries. An event without an end date spans a single day; DTEND is
// exclusive, so the end date gains one day. Undated events are left to
// the JSON sidecar.
func WriteCalendar(path string, events []types.Record) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//pogo-digest//EN")

	for _, rec := range events {
		start, err := time.Parse("2006-01-02", rec.Str("Start Date"))
		if err != nil {
			continue
		}
		end := start
		if t, err := time.Parse("2006-01-02", rec.Str("End Date")); err == nil {
			end = t
		}

		name := rec.Str("Event Name")
		ev := cal.AddEvent(eventUID(name, rec.Str("Start Date")))
		ev.SetSummary(name)
		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(end.AddDate(0, 0, 1))
		ev.SetDtStampTime(start)
		if cat := rec.Str("Category Normalized"); cat != "" {
			ev.SetDescription(cat)
		}
		if url := rec.Str("Source URL"); url != "" && url != "about:blank" {
			ev.SetURL(url)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".ics-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	if _, err := tmp.WriteString(cal.Serialize()); err != nil {
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

// eventUID derives a stable calendar UID from the event identity.
func eventUID(name, start string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, name)
	return fmt.Sprintf("%s-%s@pogo-digest", slug, start)
}
