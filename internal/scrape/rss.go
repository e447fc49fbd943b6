// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/pdiddy/pogo-digest/internal/httputil"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

// defaultKeywords gates RSS items for the domains that only want a
// slice of the news firehose. Events takes everything; the bucketing
// happens downstream during normalization.
var defaultKeywords = map[types.Domain][]string{
	types.DomainFeatures: {"feature", "now available", "introducing", "update", "coming soon"},
	types.DomainBalance:  {"balance", "nerf", "buff", "move", "rebalance", "gbl", "attack", "stat"},
}

// RSSSource reads an RSS 2.0 feed and emits one raw record per item.
type RSSSource struct {
	SourceName string
	Target     types.Domain
	URL        string

	// Keywords overrides the domain's default item filter. Empty keeps
	// the default; events sources always take every item.
	Keywords []string
}

type rssFeed struct {
	XMLName xml.Name  `xml:"rss"`
	Items   []rssItem `xml:"channel>item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

func (s *RSSSource) Name() string         { return s.SourceName }
func (s *RSSSource) Domain() types.Domain { return s.Target }

// Fetch downloads and parses the feed. Items are keyword-filtered for
// feature and balance domains; raw field names stay as the feed spells
// them so the normalizer's candidate tables can resolve them.
func (s *RSSSource) Fetch(ctx context.Context, client *httputil.Client) ([]types.RawRecord, error) {
	body, err := client.GetText(ctx, s.URL)
	if err != nil {
		return nil, err
	}

	var feed rssFeed
	if err := xml.Unmarshal([]byte(body), &feed); err != nil {
		return nil, fmt.Errorf("parsing RSS from %s: %w", s.URL, err)
	}

	keywords := s.Keywords
	if len(keywords) == 0 {
		keywords = defaultKeywords[s.Target]
	}

	var records []types.RawRecord
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		if len(keywords) > 0 && !matchesAny(title+" "+item.Description, keywords) {
			continue
		}
		records = append(records, types.RawRecord{
			"title":       title,
			"link":        strings.TrimSpace(item.Link),
			"pubDate":     strings.TrimSpace(item.PubDate),
			"description": strings.TrimSpace(item.Description),
			"Source":      s.SourceName,
		})
	}
	return records, nil
}

func matchesAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
