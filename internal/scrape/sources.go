// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"fmt"

	"github.com/pdiddy/pogo-digest/pkg/types"
)

// FromConfig materializes the configured source list. Each configured
// entry maps to a strategy by domain and kind; the PvP rankings come
// from the leagues/cups lists rather than per-source entries, and the
// items domain always gets at least the static seed.
func FromConfig(cfg types.ScrapeConfig) ([]Source, error) {
	var sources []Source
	itemsConfigured := false

	for domainName, entries := range cfg.Sources {
		domain, ok := types.ParseDomain(domainName)
		if !ok {
			return nil, fmt.Errorf("unknown domain %q in sources config", domainName)
		}
		for _, sc := range entries {
			if !sc.Enabled {
				continue
			}
			src, err := buildSource(domain, sc)
			if err != nil {
				return nil, err
			}
			if domain == types.DomainItems {
				itemsConfigured = true
			}
			sources = append(sources, src)
		}
	}

	if !itemsConfigured {
		sources = append(sources, &ItemsSource{SourceName: "item-seed"})
	}

	leagues := cfg.Leagues
	if len(leagues) == 0 {
		leagues = DefaultLeagues
	}
	cups := append([]string{"overall"}, cfg.Cups...)
	for _, league := range leagues {
		for _, cup := range cups {
			sources = append(sources, &PVPSource{SourceName: "pvpoke", League: league, Cup: cup})
		}
	}

	return sources, nil
}

func buildSource(domain types.Domain, sc types.SourceConfig) (Source, error) {
	switch sc.Kind {
	case types.SourceRSS:
		return &RSSSource{SourceName: sc.Name, Target: domain, URL: sc.URL, Keywords: sc.Keywords}, nil
	case types.SourceHTML:
		switch domain {
		case types.DomainEvents:
			return &EventsSource{SourceName: sc.Name, URL: sc.URL}, nil
		case types.DomainEggs:
			return &EggsSource{SourceName: sc.Name, URL: sc.URL}, nil
		case types.DomainResearch:
			return &ResearchSource{SourceName: sc.Name, URL: sc.URL}, nil
		case types.DomainWiki:
			return &WikiSource{SourceName: sc.Name, URL: sc.URL, Allow: sc.Allow}, nil
		case types.DomainItems:
			return &ItemsSource{SourceName: sc.Name, URL: sc.URL}, nil
		case types.DomainShinies:
			return &ShinySource{SourceName: sc.Name, FallbackURL: sc.URL}, nil
		default:
			return nil, fmt.Errorf("no HTML scraper for domain %q", domain)
		}
	case types.SourceJSON:
		switch domain {
		case types.DomainAttackers:
			return &AttackersSource{SourceName: sc.Name, URL: sc.URL}, nil
		case types.DomainShinies:
			return &ShinySource{SourceName: sc.Name, JSONURL: sc.URL}, nil
		default:
			return nil, fmt.Errorf("no JSON source for domain %q", domain)
		}
	default:
		return nil, fmt.Errorf("unknown source kind %q for %s", sc.Kind, sc.Name)
	}
}
