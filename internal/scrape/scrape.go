// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape collects raw records from the upstream sources: RSS
// news feeds, LeekDuck pages, PvPoke ranking exports, and the static
// item seed. Each source implements the Source strategy interface;
// the runner fans out across sources and isolates per-source failures
// so one unreachable site never empties the whole snapshot.
package scrape

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pogo-digest/internal/httputil"
	"github.com/pdiddy/pogo-digest/internal/library"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

// DefaultSourceDelay spaces consecutive source launches to stay polite
// with upstream sites.
const DefaultSourceDelay = 700 * time.Millisecond

// Source fetches raw records for one domain from one upstream site.
type Source interface {
	Name() string
	Domain() types.Domain
	Fetch(ctx context.Context, client *httputil.Client) ([]types.RawRecord, error)
}

// Output holds the scraped raw records per domain plus the failures
// encountered along the way.
type Output struct {
	Raw          map[types.Domain][]types.RawRecord
	SourceErrors []string
}

// Run fetches every source concurrently, staggered by delay, and
// gathers raw records per domain. A failing source is logged and
// reported in SourceErrors; the run itself only fails when every
// source failed.
func Run(ctx context.Context, sources []Source, client *httputil.Client, delay time.Duration, log zerolog.Logger) (Output, error) {
	if len(sources) == 0 {
		return Output{}, fmt.Errorf("no sources configured")
	}
	if delay <= 0 {
		delay = DefaultSourceDelay
	}

	type sourceResult struct {
		domain  types.Domain
		name    string
		records []types.RawRecord
		err     error
	}

	ch := make(chan sourceResult, len(sources))
	var wg sync.WaitGroup

	for i, s := range sources {
		if i > 0 {
			select {
			case <-ctx.Done():
				return Output{}, ctx.Err()
			case <-time.After(delay):
			}
		}
		wg.Add(1)
		go func(s Source) {
			defer wg.Done()
			records, err := s.Fetch(ctx, client)
			ch <- sourceResult{domain: s.Domain(), name: s.Name(), records: records, err: err}
		}(s)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	out := Output{Raw: make(map[types.Domain][]types.RawRecord)}
	for sr := range ch {
		if sr.err != nil {
			msg := fmt.Sprintf("%s: %v", sr.name, sr.err)
			out.SourceErrors = append(out.SourceErrors, msg)
			log.Warn().Str("source", sr.name).Str("domain", string(sr.domain)).Err(sr.err).Msg("source failed")
			continue
		}
		out.Raw[sr.domain] = append(out.Raw[sr.domain], sr.records...)
		log.Info().Str("source", sr.name).Str("domain", string(sr.domain)).Int("records", len(sr.records)).Msg("source fetched")
	}

	if len(out.SourceErrors) == len(sources) {
		return out, fmt.Errorf("all %d sources failed", len(sources))
	}
	return out, nil
}

// Save persists the scraped snapshot into the library's raw area, one
// file per domain.
func Save(lib *library.Library, out Output) error {
	for domain, records := range out.Raw {
		if err := lib.SaveRaw(domain, records); err != nil {
			return fmt.Errorf("saving raw %s records: %w", domain, err)
		}
	}
	return nil
}
