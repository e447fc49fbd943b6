// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "strings"

// CategoryBuckets is the fixed set of normalized event categories.
var CategoryBuckets = []string{
	"CD",
	"CD Classic",
	"Raid",
	"Mega",
	"Shadow Raid",
	"Spotlight",
	"Research",
	"Event/News",
	"Other",
}

// NormalizeCategory maps an arbitrary source category label to a stable
// bucket. Rules run in order, most specific term first; an unmatched
// label falls to "Other". The raw label itself is never modified — the
// caller preserves it in a separate field.
func NormalizeCategory(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))

	switch s {
	case "cd", "community day":
		return "CD"
	case "cd classic", "community day classic":
		return "CD Classic"
	}

	switch {
	case strings.Contains(s, "shadow raid"):
		return "Shadow Raid"
	case strings.Contains(s, "spotlight"):
		return "Spotlight"
	case strings.Contains(s, "research"):
		return "Research"
	case strings.Contains(s, "mega"):
		return "Mega"
	case strings.Contains(s, "raid"):
		return "Raid"
	case strings.Contains(s, "event"), strings.Contains(s, "news"):
		return "Event/News"
	}
	return "Other"
}

// CategorizeTitle buckets an event by its title when the source gave no
// category at all. Used by RSS sources, which only carry a headline.
func CategorizeTitle(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "community day classic"):
		return "CD Classic"
	case strings.Contains(t, "community day"):
		return "CD"
	case strings.Contains(t, "shadow raid"):
		return "Shadow Raid"
	case strings.Contains(t, "spotlight"):
		return "Spotlight"
	case strings.Contains(t, "mega"):
		return "Mega"
	case strings.Contains(t, "raid"):
		return "Raid"
	case strings.Contains(t, "research"):
		return "Research"
	}
	return "Event/News"
}
