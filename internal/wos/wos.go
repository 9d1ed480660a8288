// Package wos parses Web of Science export files into canonical publication
// records. Two export grammars are supported: the tab-delimited "savedrecs"
// format and the BibTeX variant. Parsers are a closed set selected by
// content sniffing; every Parse call is a fresh, independent pass over the
// input.
package wos

import (
	"fmt"
	"strings"

	"github.com/alexfikl/uvt-scholarly/internal/diag"
	"github.com/alexfikl/uvt-scholarly/internal/publication"
)

// Field tags used by the tab-delimited export. The full vocabulary is
// documented by Clarivate; only the tags below are consumed here, everything
// else is carried along untouched.
//
//	AU  Authors                     PY  Year Published
//	AF  Author Full Name            SN  ISSN
//	TI  Document Title              EI  eISSN
//	SO  Publication Name            DI  DOI
//	DT  Document Type               UT  Accession Number
//	VL  Volume                      TC  Times Cited Count
//	IS  Issue                       WC  Categories
//	BP  Beginning Page              CR  Cited References
//	EP  Ending Page                 RI  ResearcherID Numbers
//	PG  Page Count                  OI  ORCID Identifiers
//	PU  Publisher

// Options controls optional parsing work.
type Options struct {
	// IncludeCitations parses the cited-references field (CR) of each
	// record. Off by default since the field is large and only citation
	// exports need it.
	IncludeCitations bool
}

// Parser converts one export grammar into canonical records. Detect is a
// cheap capability check on raw content; Parse reports row-level problems
// through the returned diagnostics and reserves its error for input that is
// structurally unusable as a whole.
type Parser interface {
	Format() publication.SourceFormat
	Detect(data []byte) bool
	Parse(file string, data []byte, opts Options) ([]publication.Publication, *diag.Report, error)
}

// parsers is the closed set of supported export grammars.
var parsers = []Parser{
	&TabParser{},
	&BibParser{},
}

// ParserFor selects the parser whose grammar matches the given content.
func ParserFor(data []byte) (Parser, error) {
	data = decodeExport(data)
	for _, p := range parsers {
		if p.Detect(data) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("content matches no supported export format")
}

// ParseFile sniffs the format of data and parses it.
func ParseFile(file string, data []byte, opts Options) ([]publication.Publication, *diag.Report, error) {
	p, err := ParserFor(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", file, err)
	}
	return p.Parse(file, data, opts)
}

// documentTypes maps the export's document type strings to the canonical
// enumeration. Unlisted values map to Other with a diagnostic.
var documentTypes = map[string]publication.DocumentType{
	"Article":               publication.Article,
	"Early Access":          publication.Article,
	"Reprint":               publication.Article,
	"Retracted Publication": publication.Article,
	"Withdrawn Publication": publication.Article,
	"Review":                publication.Review,
	"Book Review":           publication.Review,
	"Software Review":       publication.Review,
	"Hardware Review":       publication.Review,
	"Database Review":       publication.Review,
	"Record Review":         publication.Review,
	"Film Review":           publication.Review,
	"Proceedings Paper":     publication.Proceedings,
	"Meeting Abstract":      publication.Proceedings,
	"Book":                  publication.Book,
	"Book Chapter":          publication.BookChapter,
	"Editorial Material":    publication.Other,
	"Letter":                publication.Other,
	"Correction":            publication.Other,
	"Note":                  publication.Other,
	"News Item":             publication.Other,
	"Biographical-Item":     publication.Other,
	"Bibliography":          publication.Other,
	"Retraction":            publication.Other,
	"Expression of Concern": publication.Other,
	"Item Withdrawal":       publication.Other,
	"Data Paper":            publication.Other,
	"Meeting Summary":       publication.Other,
	"article":               publication.Article,
	"review":                publication.Review,
	"inproceedings":         publication.Proceedings,
	"book":                  publication.Book,
	"incollection":          publication.BookChapter,
}

// lookupDocumentType resolves the first of possibly several ";"-separated
// document type values.
func lookupDocumentType(value string, file string, row int, report *diag.Report) publication.DocumentType {
	first, _, _ := strings.Cut(value, ";")
	first = strings.TrimSpace(first)
	if first == "" {
		return publication.Other
	}

	if dt, ok := documentTypes[first]; ok {
		return dt
	}
	report.AddRow(diag.UnknownValue, file, row, "unknown document type %q", first)
	return publication.Other
}
