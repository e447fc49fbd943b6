// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateStatus records how a date field survived normalization.
type DateStatus string

const (
	StatusParsed   DateStatus = "parsed"
	StatusMissing  DateStatus = "missing"
	StatusInferred DateStatus = "inferred"
	StatusInvalid  DateStatus = "invalid"
	StatusNone     DateStatus = ""
)

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// millisThreshold disambiguates UNIX seconds from milliseconds by
// magnitude: 1e12 seconds is past the year 33000.
const millisThreshold = 1e12

// NormalizeDate reduces an arbitrary raw date value to a calendar date
// in YYYY-MM-DD form, or "" when no date can be derived. It is a total
// function: every input maps to a (date, status) pair and nothing
// panics or errors.
//
// Parse strategies are attempted in order, first success wins:
// literal ISO date, UNIX timestamp (seconds or milliseconds), then a
// fuzzy natural-language parse. Fuzzy results are marked inferred
// rather than parsed.
func NormalizeDate(v any) (string, DateStatus) {
	switch x := v.(type) {
	case nil:
		return "", StatusMissing
	case string:
		return normalizeDateString(x)
	case float64:
		return dateFromUnix(x)
	case int:
		return dateFromUnix(float64(x))
	case int64:
		return dateFromUnix(float64(x))
	case time.Time:
		if x.IsZero() {
			return "", StatusMissing
		}
		return x.UTC().Format("2006-01-02"), StatusParsed
	default:
		return "", StatusInvalid
	}
}

func normalizeDateString(s string) (string, DateStatus) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", StatusMissing
	}

	if isoDateRe.MatchString(s) {
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return "", StatusInvalid
		}
		return s, StatusParsed
	}

	// Digit-only strings are UNIX timestamps, not calendar text.
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return dateFromUnix(n)
	}

	if t, err := dateparse.ParseAny(s); err == nil {
		return t.UTC().Format("2006-01-02"), StatusInferred
	}
	return "", StatusInvalid
}

// dateFromUnix converts a numeric timestamp to a calendar date. Values
// at or above millisThreshold are milliseconds; small values (below the
// rough 10 000 guard) are rejected as non-timestamps.
func dateFromUnix(n float64) (string, DateStatus) {
	if n < 10_000 {
		return "", StatusInvalid
	}
	secs := int64(n)
	if n >= millisThreshold {
		secs = int64(n / 1000)
	}
	return time.Unix(secs, 0).UTC().Format("2006-01-02"), StatusParsed
}

// NormalizeStatus clamps a raw status label to the allowed set, folding
// the legacy labels the upstream sheets used.
func NormalizeStatus(raw string) DateStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch DateStatus(s) {
	case StatusParsed, StatusMissing, StatusInferred, StatusInvalid, StatusNone:
		return DateStatus(s)
	}
	switch s {
	case "ok", "single", "end_only":
		return StatusParsed
	case "none", "unknown", "n/a":
		return StatusNone
	}
	return StatusInvalid
}
