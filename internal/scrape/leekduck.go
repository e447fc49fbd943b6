// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/pogo-digest/internal/httputil"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

// EventsSource scrapes the LeekDuck events page. Cards come in several
// historical markups, so the selectors cast a wide net: headed blocks
// with a title node, an optional date ribbon, a snippet paragraph, and
// a link.
type EventsSource struct {
	SourceName string
	URL        string
}

func (s *EventsSource) Name() string         { return s.SourceName }
func (s *EventsSource) Domain() types.Domain { return types.DomainEvents }

// eventSummaryMax caps the snippet length carried into raw records.
const eventSummaryMax = 400

func (s *EventsSource) Fetch(ctx context.Context, client *httputil.Client) ([]types.RawRecord, error) {
	doc, err := fetchDoc(ctx, client, s.URL)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var records []types.RawRecord
	doc.Find(".cards .card, article.post, .post, .event, .event-item, .card").Each(func(_ int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find("h2, h3, .title, .card-title, .entry-title").First().Text())
		if title == "" {
			title = strings.TrimSpace(card.Find("strong").First().Text())
		}
		// Short titles are navigation chrome, not events.
		if len(title) < 4 || seen[title] {
			return
		}
		seen[title] = true

		date := strings.TrimSpace(card.Find(".date, .dates, time, .event-date, .meta-date").First().Text())

		summary := strings.TrimSpace(card.Find(".summary, .excerpt, .content, .entry-content, p").First().Text())
		if len(summary) > eventSummaryMax {
			summary = summary[:eventSummaryMax]
		}

		href, _ := card.Find("a").First().Attr("href")
		if strings.HasPrefix(href, "/") {
			href = "https://leekduck.com" + href
		}

		records = append(records, types.RawRecord{
			"title":   title,
			"date":    date,
			"summary": summary,
			"link":    href,
			"Source":  s.SourceName,
		})
	})

	if len(records) == 0 {
		return nil, fmt.Errorf("no event cards found at %s", s.URL)
	}
	return records, nil
}

// EggsSource scrapes the LeekDuck egg pool page. Each hatchable sits
// in a ".pokemon-card" inside a distance section headed by an
// ".egg-list-title" such as "2 km Eggs".
type EggsSource struct {
	SourceName string
	URL        string
}

func (s *EggsSource) Name() string         { return s.SourceName }
func (s *EggsSource) Domain() types.Domain { return types.DomainEggs }

func (s *EggsSource) Fetch(ctx context.Context, client *httputil.Client) ([]types.RawRecord, error) {
	doc, err := fetchDoc(ctx, client, s.URL)
	if err != nil {
		return nil, err
	}

	var records []types.RawRecord
	doc.Find(".egg-list-flex").Each(func(_ int, section *goquery.Selection) {
		distance := strings.TrimSpace(section.PrevAllFiltered(".egg-list-title").First().Text())
		section.Find(".pokemon-card").Each(func(_ int, card *goquery.Selection) {
			name := strings.TrimSpace(card.Find(".name").First().Text())
			if name == "" {
				return
			}
			records = append(records, types.RawRecord{
				"Pokemon":    name,
				"Distance":   distance,
				"Tier":       distance,
				"Source":     s.SourceName,
				"Source URL": s.URL,
			})
		})
	})

	if len(records) == 0 {
		return nil, fmt.Errorf("no egg entries found at %s", s.URL)
	}
	return records, nil
}

// ResearchSource scrapes the LeekDuck field research page: task rows
// carry a ".task-text" and one or more ".reward" entries.
type ResearchSource struct {
	SourceName string
	URL        string
}

func (s *ResearchSource) Name() string         { return s.SourceName }
func (s *ResearchSource) Domain() types.Domain { return types.DomainResearch }

func (s *ResearchSource) Fetch(ctx context.Context, client *httputil.Client) ([]types.RawRecord, error) {
	doc, err := fetchDoc(ctx, client, s.URL)
	if err != nil {
		return nil, err
	}

	var records []types.RawRecord
	doc.Find(".task-item").Each(func(_ int, row *goquery.Selection) {
		task := strings.TrimSpace(row.Find(".task-text").First().Text())
		if task == "" {
			return
		}
		var rewards []string
		row.Find(".reward").Each(func(_ int, reward *goquery.Selection) {
			if text := strings.TrimSpace(reward.Text()); text != "" {
				rewards = append(rewards, text)
			}
		})
		records = append(records, types.RawRecord{
			"Task":       task,
			"Reward":     strings.Join(rewards, ", "),
			"Source":     s.SourceName,
			"Source URL": s.URL,
		})
	})

	if len(records) == 0 {
		return nil, fmt.Errorf("no research tasks found at %s", s.URL)
	}
	return records, nil
}

// WikiSource extracts guide links from a hub page. Only anchors whose
// text contains one of the allow terms become records, which keeps
// navigation chrome out of the wiki domain.
type WikiSource struct {
	SourceName string
	URL        string
	Allow      []string
}

func (s *WikiSource) Name() string         { return s.SourceName }
func (s *WikiSource) Domain() types.Domain { return types.DomainWiki }

func (s *WikiSource) Fetch(ctx context.Context, client *httputil.Client) ([]types.RawRecord, error) {
	doc, err := fetchDoc(ctx, client, s.URL)
	if err != nil {
		return nil, err
	}

	allow := s.Allow
	if len(allow) == 0 {
		allow = []string{"guide", "tips", "how to", "best"}
	}

	seen := make(map[string]bool)
	var records []types.RawRecord
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		title := strings.TrimSpace(a.Text())
		href, _ := a.Attr("href")
		if title == "" || href == "" || !matchesAny(title, allow) {
			return
		}
		if seen[title] {
			return
		}
		seen[title] = true
		records = append(records, types.RawRecord{
			"Title":  title,
			"link":   href,
			"Source": s.SourceName,
		})
	})
	return records, nil
}

func fetchDoc(ctx context.Context, client *httputil.Client, url string) (*goquery.Document, error) {
	body, err := client.GetText(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML from %s: %w", url, err)
	}
	return doc, nil
}
