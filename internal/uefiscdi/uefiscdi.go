// Package uefiscdi models the UEFISCDI scored-journal registry: the yearly
// score lists published for Romanian research evaluation, keyed by journal
// ISSN. The registry is the lookup side of publication matching; score lists
// are imported from the published files and cached in SQLite between runs.
package uefiscdi

import (
	"sort"

	"github.com/alexfikl/uvt-scholarly/internal/publication"
)

// ScoreKind identifies which of the published score lists an entry belongs
// to.
type ScoreKind string

const (
	// ScoreAIS is the Article Influence Score list.
	ScoreAIS ScoreKind = "ais"
	// ScoreRIS is the Relative Influence Score list.
	ScoreRIS ScoreKind = "ris"
	// ScoreRIF is the Relative Impact Factor list.
	ScoreRIF ScoreKind = "rif"
)

// ScoreKinds lists all published score kinds in display order.
var ScoreKinds = []ScoreKind{ScoreAIS, ScoreRIS, ScoreRIF}

// indexNames maps the citation index abbreviations used in the score lists
// to their full names.
var indexNames = map[string]string{
	"AHCI": "Arts Humanities Citation Index",
	"ESCI": "Emerging Sources Citation Index",
	"SCIE": "Science Citation Index Expanded",
	"SSCI": "Social Sciences Citation Index",
}

// IndexName expands a citation index abbreviation, returning the input
// unchanged when it is not one of the known indexes.
func IndexName(abbrev string) string {
	if name, ok := indexNames[abbrev]; ok {
		return name
	}
	return abbrev
}

// Entry is one row of a score list: a journal's score of one kind in one
// list year. ISSN and EISSN are nil when the published list omits them.
type Entry struct {
	Journal  string            `json:"journal"`
	ISSN     *publication.ISSN `json:"issn,omitempty"`
	EISSN    *publication.ISSN `json:"eissn,omitempty"`
	Year     int               `json:"year"`
	Kind     ScoreKind         `json:"kind"`
	Score    float64           `json:"score"`
	Quartile string            `json:"quartile,omitempty"`
}

// Lookup is the result of resolving one identifier against the registry:
// every entry the selected list year carries for the journal.
type Lookup struct {
	Journal string  `json:"journal"`
	Year    int     `json:"year"`
	Entries []Entry `json:"entries"`

	// Extrapolated is set when no list year at or before the requested year
	// exists and the earliest available year was used instead.
	Extrapolated bool `json:"extrapolated,omitempty"`
}

// Scores returns the per-kind scores of the selected list year.
func (l Lookup) Scores() map[ScoreKind]float64 {
	result := make(map[ScoreKind]float64, len(l.Entries))
	for _, e := range l.Entries {
		result[e.Kind] = e.Score
	}
	return result
}

// Registry is an immutable in-memory lookup structure over score list
// entries, keyed by normalized ISSN and eISSN.
type Registry struct {
	byISSN map[string][]Entry
}

// NewRegistry indexes entries by every identifier they carry. An entry with
// both an ISSN and an eISSN is reachable through either.
func NewRegistry(entries []Entry) *Registry {
	byISSN := make(map[string][]Entry)
	for _, e := range entries {
		if e.ISSN != nil {
			byISSN[e.ISSN.String()] = append(byISSN[e.ISSN.String()], e)
		}
		if e.EISSN != nil && (e.ISSN == nil || *e.EISSN != *e.ISSN) {
			byISSN[e.EISSN.String()] = append(byISSN[e.EISSN.String()], e)
		}
	}

	for _, entries := range byISSN {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Year < entries[j].Year
		})
	}

	return &Registry{byISSN: byISSN}
}

// Len returns the number of distinct identifiers in the registry.
func (r *Registry) Len() int {
	return len(r.byISSN)
}

// Lookup resolves an identifier for a publication year. Among the list years
// available for the journal it selects the closest year not exceeding the
// publication year; when every list year is later, it falls back to the
// earliest one and marks the result extrapolated. Journals are renamed and
// re-scored year to year, so the selected year's entries may disagree with
// neighboring years.
func (r *Registry) Lookup(issn publication.ISSN, year int) (Lookup, bool) {
	entries := r.byISSN[issn.String()]
	if len(entries) == 0 {
		return Lookup{}, false
	}

	// entries are sorted by year ascending
	selected := -1
	for _, e := range entries {
		if e.Year <= year {
			if selected < 0 || e.Year > selected {
				selected = e.Year
			}
		}
	}

	extrapolated := false
	if selected < 0 {
		selected = entries[0].Year
		extrapolated = true
	}

	result := Lookup{Year: selected, Extrapolated: extrapolated}
	for _, e := range entries {
		if e.Year == selected {
			result.Entries = append(result.Entries, e)
			if result.Journal == "" {
				result.Journal = e.Journal
			}
		}
	}
	return result, true
}
