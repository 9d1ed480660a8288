package wos

import (
	"strconv"
	"strings"

	"github.com/alexfikl/uvt-scholarly/internal/publication"
)

// nameKey disambiguates authors between the name list and the identifier
// lists. The exports have frequent typos between the two, so matching on
// (surname, first initial) is as precise as it gets without false negatives.
type nameKey struct {
	last    string
	initial byte
}

func makeNameKey(last, first string) nameKey {
	k := nameKey{last: last}
	if first != "" {
		k.initial = first[0]
	}
	return k
}

// parseIDMap parses the RI/OI style fields: "Last, First/identifier"
// entries joined by sep.
func parseIDMap(text, sep string) map[nameKey]string {
	result := make(map[nameKey]string)
	for _, value := range strings.Split(text, sep) {
		name, id, ok := strings.Cut(value, "/")
		if !ok {
			continue
		}

		last, first, ok := strings.Cut(name, ",")
		if !ok {
			continue
		}

		result[makeNameKey(strings.TrimSpace(last), strings.TrimSpace(first))] = strings.TrimSpace(id)
	}
	return result
}

// parseAuthors parses an author list of "Last, First" entries joined by
// authorSep, attaching ResearcherIDs and ORCIDs when the identifier fields
// are present.
func parseAuthors(text string, authorSep, idSep, researcherIDs, orcids string) []publication.Author {
	var rids, oids map[nameKey]string
	if researcherIDs != "" {
		rids = parseIDMap(researcherIDs, idSep)
	}
	if orcids != "" {
		oids = parseIDMap(orcids, idSep)
	}

	var result []publication.Author
	for _, entry := range strings.Split(strings.ReplaceAll(text, "\n", " "), authorSep) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		last, first, _ := strings.Cut(entry, ",")
		last = strings.TrimSpace(last)
		first = strings.TrimSpace(first)

		key := makeNameKey(last, first)
		result = append(result, publication.Author{
			FirstName:    first,
			LastName:     last,
			ResearcherID: rids[key],
			ORCID:        oids[key],
		})
	}
	return result
}

// parsePages builds a page range from the begin/end/count fields, deriving
// the count from numeric begin/end pages when the export omits it.
func parsePages(start, end, count string) publication.Pages {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	count = strings.TrimSpace(count)

	n := 0
	if count != "" {
		n, _ = strconv.Atoi(count)
	} else if s, err := strconv.Atoi(start); err == nil {
		if e, err := strconv.Atoi(end); err == nil {
			n = e - s + 1
		}
	}

	return publication.Pages{Start: start, End: end, Count: n}
}

// parseBibPages parses the BibTeX "start-end" page form.
func parseBibPages(pages string) publication.Pages {
	pages = strings.TrimSpace(pages)
	if !strings.Contains(pages, "-") {
		return publication.Pages{Start: strings.ToUpper(pages)}
	}

	start, end, _ := strings.Cut(pages, "-")
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(strings.TrimLeft(end, "-")) // "--" in some entries

	return parsePages(start, end, "")
}

// parseCategories splits the subject category field (";"-separated, with
// optional ", subfield" suffixes kept as part of the name).
func parseCategories(text string) []string {
	var result []string
	for _, cat := range strings.Split(text, ";") {
		cat = strings.TrimSpace(cat)
		if cat != "" {
			result = append(result, cat)
		}
	}
	return result
}

// cleanBibText strips backslash escapes, the case-protection braces the
// exporter wraps titles in, and folds newlines sprinkled through long
// field values.
func cleanBibText(text string) string {
	text = strings.ReplaceAll(text, "\\", "")
	text = strings.ReplaceAll(text, "{", "")
	text = strings.ReplaceAll(text, "}", "")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.Join(strings.Fields(text), " ")
}
