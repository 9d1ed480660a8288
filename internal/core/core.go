// Package core models the CORE conference ranking collections published by
// the Computing Research and Education Association of Australasia. Collection
// exports classify conferences by rank and by ANZSRC field-of-research codes;
// rankings are the conference-world counterpart of the journal score lists.
package core

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexfikl/uvt-scholarly/internal/anzsrc"
	"github.com/alexfikl/uvt-scholarly/internal/diag"
	"github.com/alexfikl/uvt-scholarly/internal/publication"
)

// Rank is a conference classification from a CORE collection. Besides the
// letter ranks, collections carry a few non-ranking categories.
type Rank string

const (
	RankAStar    Rank = "A*"
	RankA        Rank = "A"
	RankB        Rank = "B"
	RankC        Rank = "C"
	RankD        Rank = "D"
	RankUnranked Rank = "Unranked"

	// RankNational is a national or regional conference, unranked.
	RankNational Rank = "National"
	// RankPublished is a conference whose proceedings appear in a journal.
	RankPublished Rank = "Published"
	// RankMulticonference is an umbrella event hosting several conferences.
	RankMulticonference Rank = "Multiconference"
)

var rankNames = map[string]Rank{
	"A*":              RankAStar,
	"A":               RankA,
	"B":               RankB,
	"C":               RankC,
	"D":               RankD,
	"Unranked":        RankUnranked,
	"National":        RankNational,
	"Published":       RankPublished,
	"Multiconference": RankMulticonference,
}

// ParseRank normalizes the rank strings found in collection exports. The
// column is free text in practice: ranks appear with trailing remarks
// ("B (needs review)"), placeholders ("TBR", "new"), and regional tags
// ("Australasian B"), all of which fold into the closed Rank set.
func ParseRank(raw string) (Rank, bool) {
	text := strings.ReplaceAll(strings.TrimSpace(raw), "-", "")
	if rank, ok := rankNames[text]; ok {
		return rank, true
	}

	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "unranked"):
		return RankUnranked, true
	case strings.HasPrefix(lower, "national"), strings.HasPrefix(lower, "regional"):
		return RankNational, true
	case strings.HasPrefix(lower, "journal"):
		return RankPublished, true
	case strings.HasPrefix(lower, "australasian"):
		if _, rest, ok := strings.Cut(text, " "); ok {
			return ParseRank(rest)
		}
		return RankNational, true
	case lower == "tbr", lower == "new": // to be ranked
		return RankUnranked, true
	case strings.Contains(lower, "review"):
		first, _, _ := strings.Cut(text, " ")
		if rank, ok := rankNames[first]; ok {
			return rank, true
		}
	}

	return "", false
}

// Conference is one row of a collection export.
type Conference struct {
	Name       string `json:"name"`
	Acronym    string `json:"acronym"`
	Collection string `json:"collection"`
	Rank       Rank   `json:"rank"`

	// PrimaryFields are the ANZSRC field-of-research codes the conference is
	// classified under; FieldName resolves them to display names.
	PrimaryFields []string `json:"primary_fields,omitempty"`

	// Identifier is the conference's numeric index within its collection.
	Identifier int `json:"identifier"`
}

// extraFieldNames covers classification codes the collections use that are
// not part of ANZSRC.
var extraFieldNames = map[string]string{
	"CSE": "Computer Systems Engineering",
}

// FieldName resolves a field-of-research code from a collection export:
// numeric codes through the ANZSRC table, the rest through the collections'
// own additions.
func FieldName(code string) (string, bool) {
	if n, err := strconv.Atoi(strings.TrimSpace(code)); err == nil {
		return anzsrc.FieldName(n)
	}
	name, ok := extraFieldNames[strings.TrimSpace(code)]
	return name, ok
}

// Collection export columns, in order. The export has no header row.
const (
	colIdentifier = iota
	colTitle
	colAcronym
	colCollection
	colRank
	colDBLP
	colPrimaryField
	colField2
	colField3
)

// ParseCollection reads every conference from a collection export in CSV
// form. Rows with an unknown collection or rank are skipped with a
// diagnostic; an input yielding no conferences at all is an error.
func ParseCollection(file string, data []byte) ([]Conference, *diag.Report, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: reading collection export: %w", file, err)
	}

	report := &diag.Report{}
	var result []Conference

	for i, record := range records {
		row := i + 1
		if len(record) <= colRank {
			report.AddRow(diag.ParseRow, file, row, "row has %d columns, want at least %d", len(record), colRank+1)
			continue
		}

		column := func(at int) string {
			if at >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[at])
		}

		collection := strings.ToUpper(column(colCollection))
		if !collections[collection] {
			report.AddRow(diag.UnknownValue, file, row, "conference %q in an unknown collection %q", column(colAcronym), collection)
			continue
		}

		rank, ok := ParseRank(column(colRank))
		if !ok {
			report.AddRow(diag.UnknownValue, file, row, "conference %q has an unknown rank %q", column(colAcronym), column(colRank))
			continue
		}

		id, err := strconv.Atoi(column(colIdentifier))
		if err != nil {
			report.AddRow(diag.ParseRow, file, row, "conference %q has no usable identifier: %q", column(colAcronym), column(colIdentifier))
			continue
		}

		var fields []string
		for _, at := range []int{colPrimaryField, colField2, colField3} {
			if f := column(at); f != "" {
				fields = append(fields, f)
			}
		}

		result = append(result, Conference{
			Name:          column(colTitle),
			Acronym:       column(colAcronym),
			Collection:    collection,
			Rank:          rank,
			PrimaryFields: fields,
			Identifier:    id,
		})
	}

	if len(result) == 0 {
		return nil, nil, fmt.Errorf("%s: no conferences found in collection export", file)
	}
	return result, report, nil
}

// Index is an in-memory lookup over parsed conferences, keyed by acronym and
// by folded name.
type Index struct {
	byAcronym map[string][]Conference
	byName    map[string][]Conference
}

// NewIndex indexes conferences for lookup.
func NewIndex(confs []Conference) *Index {
	x := &Index{
		byAcronym: make(map[string][]Conference),
		byName:    make(map[string][]Conference),
	}
	for _, c := range confs {
		acronym := strings.ToUpper(c.Acronym)
		x.byAcronym[acronym] = append(x.byAcronym[acronym], c)

		name := publication.Fold(c.Name)
		x.byName[name] = append(x.byName[name], c)
	}
	return x
}

// Lookup resolves a conference by acronym (case-insensitive) or, failing
// that, by folded full name.
func (x *Index) Lookup(query string) []Conference {
	if confs := x.byAcronym[strings.ToUpper(strings.TrimSpace(query))]; len(confs) > 0 {
		return confs
	}
	return x.byName[publication.Fold(query)]
}
