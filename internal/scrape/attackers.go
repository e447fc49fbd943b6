// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"strconv"

	"github.com/pdiddy/pogo-digest/internal/httputil"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

// AttackersSource pulls the raid attacker tier export: a JSON list of
// species with typing, DPS, and recommended moves.
type AttackersSource struct {
	SourceName string
	URL        string
}

type attackerEntry struct {
	Name  string   `json:"name"`
	Type  string   `json:"type"`
	DPS   float64  `json:"dps"`
	Moves []string `json:"moves"`
}

func (s *AttackersSource) Name() string         { return s.SourceName }
func (s *AttackersSource) Domain() types.Domain { return types.DomainAttackers }

func (s *AttackersSource) Fetch(ctx context.Context, client *httputil.Client) ([]types.RawRecord, error) {
	var entries []attackerEntry
	if err := client.GetJSON(ctx, s.URL, &entries); err != nil {
		return nil, err
	}

	var records []types.RawRecord
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		rec := types.RawRecord{
			"Pokemon":    e.Name,
			"Type":       e.Type,
			"Moves":      append([]string(nil), e.Moves...),
			"Source":     s.SourceName,
			"Source URL": s.URL,
		}
		if e.DPS > 0 {
			rec["DPS"] = strconv.FormatFloat(e.DPS, 'f', 1, 64)
		}
		records = append(records, rec)
	}
	return records, nil
}
