// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/pogo-digest/internal/httputil"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

// ShinySource pulls the shiny checklist from a JSON export, falling
// back to scraping a LeekDuck-style HTML page when the primary source
// is down or malformed.
type ShinySource struct {
	SourceName  string
	JSONURL     string
	FallbackURL string
}

type shinyEntry struct {
	Name     string `json:"name"`
	Released string `json:"released"`
	Notes    string `json:"notes"`
}

func (s *ShinySource) Name() string         { return s.SourceName }
func (s *ShinySource) Domain() types.Domain { return types.DomainShinies }

func (s *ShinySource) Fetch(ctx context.Context, client *httputil.Client) ([]types.RawRecord, error) {
	records, err := s.fetchJSON(ctx, client)
	if err == nil && len(records) > 0 {
		return records, nil
	}
	if s.FallbackURL == "" {
		return nil, err
	}
	return s.fetchHTML(ctx, client)
}

func (s *ShinySource) fetchJSON(ctx context.Context, client *httputil.Client) ([]types.RawRecord, error) {
	var entries []shinyEntry
	if err := client.GetJSON(ctx, s.JSONURL, &entries); err != nil {
		return nil, err
	}
	var records []types.RawRecord
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		records = append(records, types.RawRecord{
			"Pokemon":    e.Name,
			"Released":   e.Released,
			"Notes":      e.Notes,
			"Source":     s.SourceName,
			"Source URL": s.JSONURL,
		})
	}
	return records, nil
}

func (s *ShinySource) fetchHTML(ctx context.Context, client *httputil.Client) ([]types.RawRecord, error) {
	doc, err := fetchDoc(ctx, client, s.FallbackURL)
	if err != nil {
		return nil, err
	}
	var records []types.RawRecord
	doc.Find(".pokemon-card .name").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Text())
		if name == "" {
			return
		}
		records = append(records, types.RawRecord{
			"Pokemon":    name,
			"Source":     s.SourceName,
			"Source URL": s.FallbackURL,
		})
	})
	return records, nil
}
