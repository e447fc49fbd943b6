// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "github.com/pdiddy/pogo-digest/pkg/types"

// Kind is the coercion applied to a canonical field.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindList
	KindDate
)

// FieldSpec declares one canonical field: its published name, the raw
// source field names that may carry it (evaluated in priority order),
// the coercion kind, and an optional default for absent values.
type FieldSpec struct {
	Name       string
	Candidates []string
	Kind       Kind
	Default    string
}

// Table is the declarative field mapping for one domain. TitleField
// names the minimum identifying field: a raw record that yields an
// empty value there is dropped rather than published.
type Table struct {
	Domain     types.Domain
	TitleField string
	Fields     []FieldSpec
}

// verboseCategoryKey is the spreadsheet-era header some upstream sheets
// still use for the event category column.
const verboseCategoryKey = "Category (CD / CD Classic / Raid / Mega / Shadow Raid / Spotlight / Research / Other)"

var tables = map[types.Domain]Table{
	types.DomainEvents: {
		Domain:     types.DomainEvents,
		TitleField: "Event Name",
		Fields: []FieldSpec{
			{Name: "Start Date", Candidates: []string{"Start Date", "start_date", "start", "pubDate", "date"}, Kind: KindDate},
			{Name: "End Date", Candidates: []string{"End Date", "end_date", "end"}, Kind: KindDate},
			{Name: "Event Name", Candidates: []string{"Event Name", "Title", "title", "name"}},
			{Name: "Category", Candidates: []string{"Category", verboseCategoryKey, "category"}},
			{Name: "Summary", Candidates: []string{"Summary", "summary", "Body", "description"}},
			{Name: "Source", Candidates: []string{"Source", "source"}},
			{Name: "Source URL", Candidates: []string{"Source URL", "link", "url"}},
		},
	},
	types.DomainFeatures: {
		Domain:     types.DomainFeatures,
		TitleField: "Feature Name",
		Fields: []FieldSpec{
			{Name: "Date Announced", Candidates: []string{"Date Announced", "pubDate", "date"}, Kind: KindDate},
			{Name: "Feature Name", Candidates: []string{"Feature Name", "Title", "title", "name"}},
			{Name: "Category", Candidates: []string{"Category", "category"}, Default: "Feature"},
			{Name: "Summary", Candidates: []string{"Summary", "Body", "description"}},
			{Name: "Source", Candidates: []string{"Source", "source"}},
			{Name: "Source URL", Candidates: []string{"Source URL", "link", "url"}},
		},
	},
	types.DomainBalance: {
		Domain:     types.DomainBalance,
		TitleField: "Change Title",
		Fields: []FieldSpec{
			{Name: "Date Announced", Candidates: []string{"Date Announced", "pubDate", "date"}, Kind: KindDate},
			{Name: "Change Title", Candidates: []string{"Change Title", "What", "Move", "Pokemon", "Title", "title"}},
			{Name: "Type", Candidates: []string{"Type", "type"}, Default: "Balance"},
			{Name: "Summary", Candidates: []string{"Summary", "Detail", "Notes", "description"}},
			{Name: "Source", Candidates: []string{"Source", "source"}},
			{Name: "Source URL", Candidates: []string{"Source URL", "link", "url"}},
		},
	},
	types.DomainWiki: {
		Domain:     types.DomainWiki,
		TitleField: "Title",
		Fields: []FieldSpec{
			{Name: "Title", Candidates: []string{"Title", "title", "name"}},
			{Name: "Category", Candidates: []string{"Category", "category"}, Default: "Guide/Tip"},
			{Name: "Summary", Candidates: []string{"Summary", "Text", "Body", "description"}},
			{Name: "Source", Candidates: []string{"Source", "source"}},
			{Name: "Source URL", Candidates: []string{"Source URL", "link", "url"}},
		},
	},
	types.DomainAttackers: {
		Domain:     types.DomainAttackers,
		TitleField: "Pokemon",
		Fields: []FieldSpec{
			{Name: "Pokemon", Candidates: []string{"Pokemon", "pokemon", "name"}},
			{Name: "Type", Candidates: []string{"Type", "type", "typing"}},
			{Name: "DPS", Candidates: []string{"DPS", "dps"}},
			{Name: "Moves", Candidates: []string{"Moves", "moves"}, Kind: KindList},
			{Name: "Source", Candidates: []string{"Source", "source"}},
			{Name: "Source URL", Candidates: []string{"Source URL", "link", "url"}},
		},
	},
	types.DomainPVP: {
		Domain:     types.DomainPVP,
		TitleField: "Pokemon",
		Fields: []FieldSpec{
			{Name: "League", Candidates: []string{"League", "league"}},
			{Name: "Cup", Candidates: []string{"Cup", "cup"}, Default: "overall"},
			{Name: "Pokemon", Candidates: []string{"Pokemon", "speciesName", "name"}},
			{Name: "Score", Candidates: []string{"Score", "score", "rating"}},
			{Name: "Rank", Candidates: []string{"Rank", "rank"}},
			{Name: "Source", Candidates: []string{"Source", "source"}},
			{Name: "Source URL", Candidates: []string{"Source URL", "link", "url"}},
		},
	},
	types.DomainResearch: {
		Domain:     types.DomainResearch,
		TitleField: "Task",
		Fields: []FieldSpec{
			{Name: "Task", Candidates: []string{"Task", "task", "Title", "title"}},
			{Name: "Reward", Candidates: []string{"Reward", "reward"}},
			{Name: "Category", Candidates: []string{"Category", "category"}, Default: "Research"},
			{Name: "Source", Candidates: []string{"Source", "source"}},
			{Name: "Source URL", Candidates: []string{"Source URL", "link", "url"}},
		},
	},
	types.DomainEggs: {
		Domain:     types.DomainEggs,
		TitleField: "Pokemon",
		Fields: []FieldSpec{
			{Name: "Pokemon", Candidates: []string{"Pokemon", "Mon", "name"}},
			{Name: "Distance", Candidates: []string{"Distance", "distance", "km"}},
			{Name: "Tier", Candidates: []string{"Tier", "tier"}},
			{Name: "Notes", Candidates: []string{"Notes", "notes"}},
			{Name: "Source", Candidates: []string{"Source", "source"}},
			{Name: "Source URL", Candidates: []string{"Source URL", "link", "url"}},
		},
	},
	types.DomainItems: {
		Domain:     types.DomainItems,
		TitleField: "Name",
		Fields: []FieldSpec{
			{Name: "Name", Candidates: []string{"Name", "Item", "Title", "name"}},
			{Name: "Category", Candidates: []string{"Category", "category"}, Default: "Other"},
			{Name: "Effects", Candidates: []string{"Effects", "effects"}, Kind: KindList},
			{Name: "Notes", Candidates: []string{"Notes", "notes"}},
			{Name: "Source", Candidates: []string{"Source", "source"}},
			{Name: "Source URL", Candidates: []string{"Source URL", "link", "url"}},
		},
	},
	types.DomainShinies: {
		Domain:     types.DomainShinies,
		TitleField: "Pokemon",
		Fields: []FieldSpec{
			{Name: "Pokemon", Candidates: []string{"Pokemon", "Name", "name", "Title"}},
			{Name: "Available From", Candidates: []string{"Available From", "available_from", "Released", "released"}},
			{Name: "Notes", Candidates: []string{"Notes", "notes"}},
			{Name: "Source", Candidates: []string{"Source", "source"}},
			{Name: "Source URL", Candidates: []string{"Source URL", "link", "url"}},
		},
	},
}

// TableFor returns the declarative field table for a domain.
func TableFor(domain types.Domain) (Table, bool) {
	t, ok := tables[domain]
	return t, ok
}
