package wos

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alexfikl/uvt-scholarly/internal/publication"
)

// parseCitedRefs parses the cited-references field (CR). Each entry looks
// like
//
//	Author A, 2003, J SOMETHING, V12, P345, DOI 10.1000/182
//
// joined by sep (";" in tab exports, "\n" in BibTeX exports). Entries
// without a parseable DOI back-reference are dropped: the field is free
// text and the DOI is the only linkage reliable enough to aggregate on.
func parseCitedRefs(text, sep string) map[string]publication.CitedRef {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	result := make(map[string]publication.CitedRef)
	for _, entry := range strings.Split(text, sep) {
		ref, ok := parseCitedRef(entry)
		if !ok {
			continue
		}
		result[ref.DOI.String()] = ref
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

func parseCitedRef(entry string) (publication.CitedRef, bool) {
	parts := strings.Split(entry, ",")
	if len(parts) < 4 {
		return publication.CitedRef{}, false
	}

	author := strings.Trim(parts[0], " .")
	yearText := strings.Trim(parts[1], " .")
	journal := strings.Trim(parts[2], " .")

	year, err := strconv.Atoi(yearText)
	if err != nil {
		return publication.CitedRef{}, false
	}

	_, doiText, ok := strings.Cut(entry, "DOI")
	if !ok || strings.Contains(doiText, "arXiv") {
		return publication.CitedRef{}, false
	}

	doi, ok := publication.ParseDOI(cleanCitedDOI(doiText))
	if !ok {
		return publication.CitedRef{}, false
	}

	return publication.CitedRef{
		FirstAuthor: citedSurname(author),
		Journal:     titleWords(journal),
		Year:        year,
		DOI:         doi,
	}, true
}

// cleanCitedDOI undoes the damage the export does to DOIs in the CR field:
// escaped characters (mostly underscores) and bracketed duplicate lists
// "[10.x/a, 10.x/a]" where the last element is kept.
func cleanCitedDOI(text string) string {
	text = strings.ReplaceAll(text, "\\", "")
	text = strings.ReplaceAll(text, "DOI", "")

	if strings.Contains(text, "[") {
		parts := strings.Split(text, ",")
		text = strings.Trim(parts[len(parts)-1], " ]")
	}

	return strings.Trim(text, " .")
}

// citedSurname extracts the surname from the abbreviated author form used
// in cited references ("Surname AB", occasionally "Surname.Initials").
func citedSurname(author string) string {
	if last, _, ok := strings.Cut(author, " "); ok {
		return last
	}
	if last, _, ok := strings.Cut(author, "."); ok {
		return last
	}
	return author
}

// titleWords title-cases the all-caps abbreviated journal names in cited
// references ("PHYS REV LETT" -> "Phys. Rev. Lett.").
func titleWords(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		w = strings.ToLower(w)
		_, n := utf8.DecodeRuneInString(w)
		words[i] = strings.ToUpper(w[:n]) + w[n:] + "."
	}
	return strings.Join(words, " ")
}
