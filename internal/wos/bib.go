package wos

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexfikl/uvt-scholarly/internal/diag"
	"github.com/alexfikl/uvt-scholarly/internal/publication"
)

// BibParser parses the BibTeX-flavored export: @Type{Key, field = {value},
// ...} entries with the export's non-standard field names tolerated and
// passed through unless recognized.
type BibParser struct{}

// bibEntry is one raw parsed entry before conversion to a canonical record.
type bibEntry struct {
	Type   string
	Key    string
	Fields map[string]string
	Line   int
}

// Format returns the source tag attached to parsed records.
func (*BibParser) Format() publication.SourceFormat {
	return publication.SourceBibTeX
}

// Detect reports whether data looks like a BibTeX entry stream.
func (*BibParser) Detect(data []byte) bool {
	text := strings.TrimSpace(string(decodeExport(data)))
	return strings.HasPrefix(text, "@")
}

// Parse scans every entry. Entries that fail to parse or convert are
// skipped with a diagnostic; an input with no recognizable entry structure
// at all is an error.
func (*BibParser) Parse(file string, data []byte, opts Options) ([]publication.Publication, *diag.Report, error) {
	entries, report, err := scanBibEntries(file, string(decodeExport(data)))
	if err != nil {
		return nil, nil, err
	}

	var result []publication.Publication
	for _, entry := range entries {
		pub, ok := bibEntryToPublication(entry, file, opts, report)
		if !ok {
			continue
		}
		result = append(result, pub)
	}

	return result, report, nil
}

// scanBibEntries tokenizes the entry stream. Field values are brace-
// balanced groups, quoted strings, or bare words; inter-entry text is
// ignored, matching how the export pads files with comments.
func scanBibEntries(file, text string) ([]bibEntry, *diag.Report, error) {
	report := &diag.Report{}
	var entries []bibEntry

	pos, line := 0, 1
	sawEntry := false
	for pos < len(text) {
		at := strings.IndexByte(text[pos:], '@')
		if at < 0 {
			break
		}
		line += strings.Count(text[pos:pos+at], "\n")
		pos += at

		entry, next, err := scanBibEntry(text, pos, line)
		if err != nil {
			report.AddRow(diag.ParseRow, file, line, "skipping malformed entry: %v", err)
			pos++ // resynchronize past the '@'
			continue
		}

		sawEntry = true
		entries = append(entries, entry)
		line += strings.Count(text[pos:next], "\n")
		pos = next
	}

	if !sawEntry {
		return nil, nil, fmt.Errorf("%s: no BibTeX entries found", file)
	}
	return entries, report, nil
}

func scanBibEntry(text string, pos, line int) (bibEntry, int, error) {
	// @Type{
	open := strings.IndexByte(text[pos:], '{')
	if open < 0 {
		return bibEntry{}, 0, fmt.Errorf("entry has no opening brace")
	}
	entry := bibEntry{
		Type:   strings.ToLower(strings.TrimSpace(text[pos+1 : pos+open])),
		Fields: make(map[string]string),
		Line:   line,
	}
	pos += open + 1

	// Key,
	comma := strings.IndexAny(text[pos:], ",}")
	if comma < 0 {
		return bibEntry{}, 0, fmt.Errorf("entry %q has no key terminator", entry.Type)
	}
	entry.Key = strings.TrimSpace(text[pos : pos+comma])
	if text[pos+comma] == '}' {
		return entry, pos + comma + 1, nil
	}
	pos += comma + 1

	// field = value pairs until the closing brace
	for {
		for pos < len(text) && (text[pos] == ' ' || text[pos] == '\t' || text[pos] == '\n' || text[pos] == '\r' || text[pos] == ',') {
			pos++
		}
		if pos >= len(text) {
			return bibEntry{}, 0, fmt.Errorf("entry %q is unterminated", entry.Key)
		}
		if text[pos] == '}' {
			return entry, pos + 1, nil
		}

		eq := strings.IndexByte(text[pos:], '=')
		if eq < 0 {
			return bibEntry{}, 0, fmt.Errorf("entry %q has a field with no value", entry.Key)
		}
		name := strings.ToLower(strings.TrimSpace(text[pos : pos+eq]))
		pos += eq + 1

		value, next, err := scanBibValue(text, pos)
		if err != nil {
			return bibEntry{}, 0, fmt.Errorf("entry %q field %q: %w", entry.Key, name, err)
		}
		entry.Fields[name] = value
		pos = next
	}
}

// scanBibValue reads one field value starting at pos: a {braced} group
// with balanced nesting, a "quoted" string, or a bare token.
func scanBibValue(text string, pos int) (string, int, error) {
	for pos < len(text) && (text[pos] == ' ' || text[pos] == '\t' || text[pos] == '\n' || text[pos] == '\r') {
		pos++
	}
	if pos >= len(text) {
		return "", 0, fmt.Errorf("missing value")
	}

	switch text[pos] {
	case '{':
		depth := 0
		for i := pos; i < len(text); i++ {
			switch text[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return text[pos+1 : i], i + 1, nil
				}
			}
		}
		return "", 0, fmt.Errorf("unbalanced braces")
	case '"':
		end := strings.IndexByte(text[pos+1:], '"')
		if end < 0 {
			return "", 0, fmt.Errorf("unterminated quoted value")
		}
		return text[pos+1 : pos+1+end], pos + end + 2, nil
	default:
		end := strings.IndexAny(text[pos:], ",}\n")
		if end < 0 {
			return "", 0, fmt.Errorf("unterminated bare value")
		}
		return strings.TrimSpace(text[pos : pos+end]), pos + end, nil
	}
}

func bibEntryToPublication(entry bibEntry, file string, opts Options, report *diag.Report) (publication.Publication, bool) {
	get := func(name string) string { return strings.TrimSpace(entry.Fields[name]) }

	title := cleanBibText(get("title"))
	if title == "" {
		report.AddRow(diag.ParseRow, file, entry.Line, "entry %q has no title", entry.Key)
		return publication.Publication{}, false
	}

	year, err := strconv.Atoi(get("year"))
	if err != nil {
		report.AddRow(diag.ParseRow, file, entry.Line, "entry %q has no usable year: %q", entry.Key, get("year"))
		return publication.Publication{}, false
	}

	journal := get("journal")
	if journal == "" {
		journal = get("booktitle")
	}

	issue := get("number")
	if issue == "" {
		issue = get("issue")
	}

	dtype := get("type")
	if dtype == "" {
		dtype = entry.Type
	}

	citedBy, _ := strconv.Atoi(get("times-cited"))

	pub := publication.Publication{
		Title:        title,
		Authors:      parseAuthors(cleanBibText(get("author")), " and ", "\n", entry.Fields["researcherid-numbers"], entry.Fields["orcid-numbers"]),
		Year:         year,
		Journal:      cleanBibText(journal),
		Source:       publication.SourceBibTeX,
		DocType:      lookupDocumentType(dtype, file, entry.Line, report),
		Publisher:    cleanBibText(get("publisher")),
		Volume:       get("volume"),
		Issue:        issue,
		Pages:        parseBibPages(get("pages")),
		Categories:   parseCategories(cleanBibText(get("web-of-science-categories"))),
		Accession:    bibAccession(entry),
		CitedByCount: citedBy,
	}

	pub.ISSN = normalizeOptionalISSN(get("issn"), "ISSN", file, entry.Line, report)
	pub.EISSN = normalizeOptionalISSN(get("eissn"), "eISSN", file, entry.Line, report)
	pub.DOI = normalizeOptionalDOI(get("doi"), file, entry.Line, report)

	if opts.IncludeCitations {
		pub.CitedRefs = parseCitedRefs(entry.Fields["cited-references"], "\n")
	}

	return pub, true
}

// bibAccession prefers the export's accession field over the entry key,
// which the exporter generates and is not stable across exports.
func bibAccession(entry bibEntry) string {
	if ut := strings.TrimSpace(entry.Fields["unique-id"]); ut != "" {
		return ut
	}
	return entry.Key
}
