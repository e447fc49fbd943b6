// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/pogo-digest/internal/index"
	"github.com/pdiddy/pogo-digest/internal/library"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

// DefaultTopK caps ranked results when the caller does not say
// otherwise.
const DefaultTopK = 20

// Result is one ranked hit with its weighted score and, when the
// canonical record is still resolvable, the record itself.
type Result struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Score  float64      `json:"score"`
	Record types.Record `json:"record,omitempty"`
}

// Options tunes one search.
type Options struct {
	// Domain overrides the router; empty routes by query keywords.
	Domain types.Domain

	// TopK caps the result count (default DefaultTopK).
	TopK int

	// UseBM25 ranks with the BM25 artifact instead of TF-IDF cosine.
	UseBM25 bool

	// Now anchors the recency weight; the zero value means time.Now().
	Now time.Time
}

// Search routes the query, scores it against the target domain's
// persisted artifact, reweights each similarity by record recency, and
// returns the top K results with raw weighted scores attached.
func Search(lib *library.Library, q string, opts Options) (types.Domain, []Result, error) {
	domain := opts.Domain
	if domain == "" {
		domain = Route(q)
	}
	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	var (
		ids, titles, dates []string
		scores             []float64
	)
	if opts.UseBM25 {
		artifact, err := index.LoadBM25(lib.IndexDir(), domain)
		if err != nil {
			return domain, nil, fmt.Errorf("loading %s bm25 artifact: %w", domain, err)
		}
		ids, titles, dates = artifact.IDs, artifact.Titles, artifact.Dates
		scores = artifact.Model.Scores(index.Tokenize(q))
	} else {
		artifact, err := index.LoadTFIDF(lib.IndexDir(), domain)
		if err != nil {
			return domain, nil, fmt.Errorf("loading %s tfidf artifact: %w", domain, err)
		}
		ids, titles, dates = artifact.IDs, artifact.Titles, artifact.Dates
		qv := artifact.Model.TransformQuery(q)
		scores = make([]float64, len(artifact.Docs))
		for i, dv := range artifact.Docs {
			scores[i] = index.Cosine(qv, dv)
		}
	}

	results := make([]Result, 0, len(ids))
	for i := range ids {
		results = append(results, Result{
			ID:    ids[i],
			Title: titles[i],
			Score: scores[i] * RecencyWeight(dates[i], now),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}

	attachRecords(lib, domain, results)
	return domain, results, nil
}

// RecencyWeight favors recently dated records: 1.5 at zero days old,
// decaying by 1.0 per 365 days, clamped to [0.5, 1.5]. A record with
// no parseable date is neither boosted nor punished.
func RecencyWeight(date string, now time.Time) float64 {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 1.0
	}
	days := now.Sub(t).Hours() / 24
	w := 1.5 - days/365.0
	if w < 0.5 {
		return 0.5
	}
	if w > 1.5 {
		return 1.5
	}
	return w
}

// attachRecords resolves result ids back to canonical records. The
// lookup is best-effort: a record republished since indexing may no
// longer match, and the hit still stands on id and title.
func attachRecords(lib *library.Library, domain types.Domain, results []Result) {
	records, err := lib.Load(domain)
	if err != nil {
		return
	}
	// index.Docs is positionally aligned with records.
	byID := make(map[string]types.Record, len(records))
	for i, d := range index.Docs(domain, records) {
		byID[d.ID] = records[i]
	}
	for i := range results {
		if rec, ok := byID[results[i].ID]; ok {
			results[i].Record = rec
		}
	}
}

// FormatTable writes ranked results as a human-readable table.
func FormatTable(domain types.Domain, results []Result, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-8s  %s\n", "Rank", "Title", "Score", "Domain")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for i, r := range results {
		title := r.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-8.4f  %s\n", i+1, title, r.Score, domain)
	}
	fmt.Fprintf(w, "\n%d results\n", len(results))
}

// FormatJSON writes ranked results as indented JSON.
func FormatJSON(results []Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
