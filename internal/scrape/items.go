// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/pogo-digest/internal/httputil"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

// itemSeed is the baseline item catalog. The Help Center scrape layers
// on top of it, so the items domain is populated even when the scrape
// finds nothing.
var itemSeed = []struct {
	name     string
	category string
	effects  []string
}{
	{"Poke Ball", "Capture", []string{"Catch Pokemon"}},
	{"Great Ball", "Capture", []string{"Catch Pokemon", "Improved catch rate"}},
	{"Ultra Ball", "Capture", []string{"Catch Pokemon", "Best catch rate"}},
	{"Razz Berry", "Berry", []string{"Improved catch rate"}},
	{"Golden Razz Berry", "Berry", []string{"Greatly improved catch rate"}},
	{"Silver Pinap Berry", "Berry", []string{"Improved catch rate", "Double candy"}},
	{"Pinap Berry", "Berry", []string{"Double candy"}},
	{"Nanab Berry", "Berry", []string{"Calms wild Pokemon"}},
	{"Potion", "Healing", []string{"Restores 20 HP"}},
	{"Super Potion", "Healing", []string{"Restores 50 HP"}},
	{"Hyper Potion", "Healing", []string{"Restores 200 HP"}},
	{"Max Potion", "Healing", []string{"Fully restores HP"}},
	{"Revive", "Healing", []string{"Revives with half HP"}},
	{"Max Revive", "Healing", []string{"Revives with full HP"}},
	{"Lucky Egg", "Boost", []string{"Double XP for 30 minutes"}},
	{"Star Piece", "Boost", []string{"1.5x Stardust for 30 minutes"}},
	{"Incense", "Boost", []string{"Attracts wild Pokemon"}},
	{"Lure Module", "Boost", []string{"Attracts Pokemon to a PokeStop"}},
	{"Rare Candy", "Candy", []string{"Converts to any species candy"}},
	{"Fast TM", "TM", []string{"Rerolls fast move"}},
	{"Charged TM", "TM", []string{"Rerolls charged move"}},
	{"Elite Fast TM", "TM", []string{"Choose fast move"}},
	{"Elite Charged TM", "TM", []string{"Choose charged move"}},
	{"Egg Incubator", "Incubation", []string{"Hatches eggs"}},
	{"Super Incubator", "Incubation", []string{"Hatches eggs 1.5x faster"}},
	{"Remote Raid Pass", "Raid", []string{"Join raids remotely"}},
	{"Premium Battle Pass", "Raid", []string{"Join in-person raids"}},
}

// SeedItems returns the static item records. The seed is data, not a
// network source, so it is always present in a scrape snapshot.
func SeedItems(sourceName string) []types.RawRecord {
	records := make([]types.RawRecord, 0, len(itemSeed))
	for _, it := range itemSeed {
		records = append(records, types.RawRecord{
			"Name":     it.name,
			"Category": it.category,
			"Effects":  append([]string(nil), it.effects...),
			"Source":   sourceName,
		})
	}
	return records
}

// ItemsSource combines the static seed with a Help Center style page
// scrape. Page headings become item names; their following paragraph
// becomes the notes field. A failing page still yields the seed.
type ItemsSource struct {
	SourceName string
	URL        string // empty means seed-only
}

func (s *ItemsSource) Name() string         { return s.SourceName }
func (s *ItemsSource) Domain() types.Domain { return types.DomainItems }

func (s *ItemsSource) Fetch(ctx context.Context, client *httputil.Client) ([]types.RawRecord, error) {
	records := SeedItems(s.SourceName)
	if s.URL == "" {
		return records, nil
	}

	doc, err := fetchDoc(ctx, client, s.URL)
	if err != nil {
		// Seed still stands; the page scrape is supplementary.
		return records, nil
	}

	doc.Find("h2, h3").Each(func(_ int, h *goquery.Selection) {
		name := strings.TrimSpace(h.Text())
		if name == "" || len(name) > 60 {
			return
		}
		notes := strings.TrimSpace(h.NextFiltered("p").Text())
		records = append(records, types.RawRecord{
			"Name":       name,
			"Notes":      notes,
			"Source":     s.SourceName,
			"Source URL": s.URL,
		})
	})
	return records, nil
}
