// Package fulltext pulls publication identifiers out of full-text PDFs,
// used to fill in DOIs for records whose export rows lack one.
package fulltext

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/alexfikl/uvt-scholarly/internal/publication"
)

// doiPattern matches DOI candidates in running text: 10.XXXX/suffix, with
// the suffix cut at characters that never appear in real DOIs.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// ExtractDOI extracts the first valid DOI from a PDF file, searching the
// first few pages where journals print it. A PDF without a findable DOI is
// not an error; the result is simply absent.
func ExtractDOI(path string) (*publication.DOI, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// DOI is usually on the first page
	maxPages := 3
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if doi := findDOI(text); doi != nil {
			return doi, nil
		}
	}

	return nil, nil
}

// findDOI returns the first candidate in text that survives normalization.
func findDOI(text string) *publication.DOI {
	for _, match := range doiPattern.FindAllString(text, -1) {
		// trailing sentence punctuation is part of the surrounding prose,
		// not the DOI
		match = strings.TrimRight(match, ".,;:)")

		if doi, ok := publication.ParseDOI(match); ok {
			return &doi
		}
	}
	return nil
}
