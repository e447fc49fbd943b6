// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"regexp"
	"strings"

	"github.com/araddon/dateparse"
)

var literalDateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

var digitRe = regexp.MustCompile(`\d`)

// DateSpan extracts a date constraint from query text. One literal
// YYYY-MM-DD substring produces (start, ""); two produce the
// half-open [start, end) pair. Without literals the date is fished out
// of the surrounding words by parsing token windows, so "events on
// June 2 2025" still yields 2025-06-02. No parse at all yields
// ("", "") — the absence of a constraint, never an error.
func DateSpan(q string) (start, end string) {
	m := literalDateRe.FindAllString(q, 2)
	if len(m) > 0 {
		start = m[0]
		if len(m) > 1 {
			end = m[1]
		}
		return start, end
	}
	if t, err := dateparse.ParseAny(q); err == nil {
		return t.UTC().Format("2006-01-02"), ""
	}
	if t, ok := fuzzyDate(q); ok {
		return t, ""
	}
	return "", ""
}

// maxDateTokens bounds the token window handed to the date parser;
// "June 2 2025" and "Mon, 02 Jun 2025" both fit in four tokens.
const maxDateTokens = 4

// fuzzyDate scans token windows of the query, longest first, for a
// parseable date. Windows without a digit are skipped so bare month
// names and ordinary words never turn into constraints.
func fuzzyDate(q string) (string, bool) {
	tokens := strings.Fields(q)
	max := maxDateTokens
	if max > len(tokens) {
		max = len(tokens)
	}
	for size := max; size >= 1; size-- {
		for i := 0; i+size <= len(tokens); i++ {
			window := strings.Join(tokens[i:i+size], " ")
			if !digitRe.MatchString(window) {
				continue
			}
			if t, err := dateparse.ParseAny(window); err == nil {
				return t.UTC().Format("2006-01-02"), true
			}
		}
	}
	return "", false
}
