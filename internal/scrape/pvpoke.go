// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pdiddy/pogo-digest/internal/httputil"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

// pvpokeBase is the PvPoke ranking export root. Declared as a var so
// tests can substitute an httptest server.
var pvpokeBase = "https://pvpoke.com/data/rankings"

// LeagueCP maps league names to their CP caps as PvPoke spells them in
// export paths.
var LeagueCP = map[string]int{
	"little": 500,
	"great":  1500,
	"ultra":  2500,
	"master": 10000,
}

// DefaultLeagues are pulled when the config does not name any.
var DefaultLeagues = []string{"great", "ultra", "master"}

// PVPSource pulls one league/cup ranking export from PvPoke.
type PVPSource struct {
	SourceName string
	League     string
	Cup        string // "overall" uses PvPoke's "all" meta
}

type pvpokeEntry struct {
	SpeciesName string   `json:"speciesName"`
	Score       float64  `json:"score"`
	Moveset     []string `json:"moveset"`
}

func (s *PVPSource) Name() string {
	return fmt.Sprintf("%s-%s-%s", s.SourceName, s.League, s.cup())
}

func (s *PVPSource) Domain() types.Domain { return types.DomainPVP }

func (s *PVPSource) cup() string {
	if s.Cup == "" {
		return "overall"
	}
	return s.Cup
}

// Fetch downloads the ranking JSON for the source's league and cup.
// Rank is positional: PvPoke exports are already sorted by score.
func (s *PVPSource) Fetch(ctx context.Context, client *httputil.Client) ([]types.RawRecord, error) {
	cp, ok := LeagueCP[s.League]
	if !ok {
		return nil, fmt.Errorf("unknown league %q", s.League)
	}

	meta := s.cup()
	if meta == "overall" {
		meta = "all"
	}
	url := fmt.Sprintf("%s/%s/overall/rankings-%d.json", pvpokeBase, meta, cp)

	var entries []pvpokeEntry
	if err := client.GetJSON(ctx, url, &entries); err != nil {
		return nil, err
	}

	records := make([]types.RawRecord, 0, len(entries))
	for i, e := range entries {
		if e.SpeciesName == "" {
			continue
		}
		records = append(records, types.RawRecord{
			"Pokemon":    e.SpeciesName,
			"League":     s.League,
			"Cup":        s.cup(),
			"Score":      strconv.FormatFloat(e.Score, 'f', 1, 64),
			"Rank":       strconv.Itoa(i + 1),
			"Source":     s.SourceName,
			"Source URL": url,
		})
	}
	return records, nil
}
