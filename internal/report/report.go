// Package report renders evaluation results for accreditation paperwork:
// a CSV table for the scoring sheets and a LaTeX fragment for the dossier
// documents.
package report

import (
	"fmt"
	"strings"

	"github.com/alexfikl/uvt-scholarly/internal/publication"
)

// Reference renders a publication as one bibliographic reference string:
// abbreviated authors, title, journal, volume, year, pages, DOI.
func Reference(pub *publication.Publication) string {
	var parts []string

	if authors := formatAuthors(pub.Authors, ""); authors != "" {
		parts = append(parts, authors)
	}
	parts = append(parts, pub.Title, pub.Journal)

	if pub.Volume != "" {
		parts = append(parts, fmt.Sprintf("vol. %s (%d)", pub.Volume, pub.Year))
	} else {
		parts = append(parts, fmt.Sprintf("%d", pub.Year))
	}

	if pub.Pages.Start != "" && pub.Pages.End != "" {
		parts = append(parts, fmt.Sprintf("pp. %s-%s", pub.Pages.Start, pub.Pages.End))
	}

	if pub.DOI != nil {
		parts = append(parts, "DOI: "+pub.DOI.String())
	}

	return strings.Join(parts, ", ")
}

// formatAuthors renders "A. Lovelace, C. Babbage", bolding the author whose
// surname matches candidate when rendering for LaTeX.
func formatAuthors(authors []publication.Author, candidate string) string {
	var parts []string
	for _, au := range authors {
		name := au.LastName
		if au.FirstName != "" {
			name = au.FirstName[:1] + ". " + au.LastName
		}
		if candidate != "" && strings.EqualFold(au.LastName, candidate) {
			name = `\textbf{` + name + `}`
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, ", ")
}
