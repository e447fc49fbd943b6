// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/pogo-digest/pkg/types"
)

// QueryOptions holds parameters for structured record queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string.
	Query string

	// Domain restricts results to one domain.
	Domain types.Domain

	// Since keeps only records dated on or after this ISO date.
	Since string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Domain == "" && q.Since == ""
}

// RetrieveResult is one stored record with its library context.
type RetrieveResult struct {
	Domain  types.Domain `json:"domain"`
	Key     string       `json:"key"`
	Title   string       `json:"title"`
	Date    string       `json:"date,omitempty"`
	Record  types.Record `json:"record"`
	Sources []string     `json:"sources,omitempty"`
}

// Retrieve queries the mirrored records with optional full-text search
// and structured filters. Full-text queries rank by FTS5 relevance;
// structured-only queries sort by domain, date descending, title.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]RetrieveResult, error) {
	if opts.IsEmpty() {
		return nil, fmt.Errorf("empty query: provide search text or a filter")
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT r.domain, r.key, r.title, r.date, r.payload, r.sources
			FROM records_fts
			JOIN records r ON r.rowid = records_fts.rowid
			WHERE records_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT r.domain, r.key, r.title, r.date, r.payload, r.sources
			FROM records r
			WHERE 1=1`)
	}

	if opts.Domain != "" {
		qb.WriteString(` AND r.domain = ?`)
		args = append(args, string(opts.Domain))
	}
	if opts.Since != "" {
		qb.WriteString(` AND r.date >= ?`)
		args = append(args, opts.Since)
	}

	if useFTS {
		qb.WriteString(` ORDER BY records_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY r.domain, r.date DESC, r.title`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying store: %w", err)
	}
	defer rows.Close()

	var results []RetrieveResult
	for rows.Next() {
		var (
			r       RetrieveResult
			domain  string
			date    sql.NullString
			payload string
			sources sql.NullString
		)
		if err := rows.Scan(&domain, &r.Key, &r.Title, &date, &payload, &sources); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Domain = types.Domain(domain)
		r.Date = date.String
		if err := json.Unmarshal([]byte(payload), &r.Record); err != nil {
			return nil, fmt.Errorf("decoding record payload: %w", err)
		}
		if sources.Valid && sources.String != "" {
			if err := json.Unmarshal([]byte(sources.String), &r.Sources); err != nil {
				return nil, fmt.Errorf("decoding sources: %w", err)
			}
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return results, nil
}

// Stats returns the record count per domain.
func (s *Store) Stats(ctx context.Context) (map[types.Domain]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT domain, count(*) FROM records GROUP BY domain`)
	if err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.Domain]int)
	for rows.Next() {
		var domain string
		var n int
		if err := rows.Scan(&domain, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[types.Domain(domain)] = n
	}
	return counts, rows.Err()
}
