// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"net/url"
	"strconv"
	"strings"
)

// PlaceholderURL substitutes for an empty or missing source link so the
// published record still carries a well-formed URI.
const PlaceholderURL = "about:blank"

// AsString coerces an arbitrary raw value to its string form. nil maps
// to ""; numbers print without a trailing ".0" when integral.
func AsString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case []string:
		return strings.Join(x, ", ")
	default:
		return ""
	}
}

// AsBool coerces a raw value to a strict boolean. Recognized textual
// tokens are matched case-insensitively; anything unrecognized is false.
func AsBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	switch strings.ToLower(strings.TrimSpace(AsString(v))) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}

// AsList coerces a raw value to an ordered string sequence. Scalars
// become single-element lists; empty input yields nil.
func AsList(v any) []string {
	switch x := v.(type) {
	case nil:
		return nil
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s := strings.TrimSpace(AsString(e)); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		s := strings.TrimSpace(AsString(x))
		if s == "" {
			return nil
		}
		return []string{s}
	}
}

// ValidURL returns raw when it parses as a request URI, otherwise the
// placeholder. Downstream schema validation requires a well-formed URI
// and must never fail solely on a missing link.
func ValidURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return PlaceholderURL
	}
	if _, err := url.ParseRequestURI(s); err != nil {
		return PlaceholderURL
	}
	return s
}
