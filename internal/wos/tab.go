package wos

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexfikl/uvt-scholarly/internal/diag"
	"github.com/alexfikl/uvt-scholarly/internal/publication"
)

// requiredTabColumns must be present in the header row for the file to be
// usable at all. Everything else is optional and may appear in any order.
var requiredTabColumns = []string{"AU", "TI", "SO", "PY", "DT"}

// TabParser parses the tab-delimited "savedrecs" export: a header row of
// field tags followed by one record per row. Column order varies between
// export revisions and quoted fields may contain embedded tabs.
type TabParser struct{}

// Format returns the source tag attached to parsed records.
func (*TabParser) Format() publication.SourceFormat {
	return publication.SourceTab
}

// Detect reports whether data starts with a tab-separated header row
// carrying the required field tags.
func (*TabParser) Detect(data []byte) bool {
	header, _, _ := bytes.Cut(decodeExport(data), []byte("\n"))
	if !bytes.ContainsRune(header, '\t') {
		return false
	}

	columns := make(map[string]bool)
	for _, name := range strings.Split(string(header), "\t") {
		columns[strings.TrimSpace(name)] = true
	}
	for _, name := range requiredTabColumns {
		if !columns[name] {
			return false
		}
	}
	return true
}

// Parse reads every record row. Corrupt rows are skipped and reported in
// the diagnostics; only a structurally unusable file (no header, missing
// required columns) is an error.
func (*TabParser) Parse(file string, data []byte, opts Options) ([]publication.Publication, *diag.Report, error) {
	reader := csv.NewReader(bytes.NewReader(decodeExport(data)))
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: reading header row: %w", file, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredTabColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("%s: export missing required columns: %s", file, strings.Join(missing, ", "))
	}

	report := &diag.Report{}
	var result []publication.Publication

	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.AddRow(diag.ParseRow, file, row, "unreadable row: %v", err)
			continue
		}

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		pub, ok := parseTabRecord(field, file, row, opts, report)
		if !ok {
			continue
		}
		result = append(result, pub)
	}

	return result, report, nil
}

func parseTabRecord(field func(string) string, file string, row int, opts Options, report *diag.Report) (publication.Publication, bool) {
	title := field("TI")
	if title == "" {
		report.AddRow(diag.ParseRow, file, row, "record has no title")
		return publication.Publication{}, false
	}

	year, err := strconv.Atoi(field("PY"))
	if err != nil {
		report.AddRow(diag.ParseRow, file, row, "record %q has no usable year: %q", title, field("PY"))
		return publication.Publication{}, false
	}

	citedBy, _ := strconv.Atoi(field("TC"))

	pub := publication.Publication{
		Title:        title,
		Authors:      parseAuthors(field("AU"), ";", ";", field("RI"), field("OI")),
		Year:         year,
		Journal:      field("SO"),
		Source:       publication.SourceTab,
		DocType:      lookupDocumentType(field("DT"), file, row, report),
		Publisher:    field("PU"),
		Volume:       field("VL"),
		Issue:        strings.ToUpper(field("IS")),
		Pages:        parsePages(field("BP"), field("EP"), field("PG")),
		Categories:   parseCategories(field("WC")),
		Accession:    field("UT"),
		CitedByCount: citedBy,
	}

	pub.ISSN = normalizeOptionalISSN(field("SN"), "ISSN", file, row, report)
	pub.EISSN = normalizeOptionalISSN(field("EI"), "eISSN", file, row, report)
	pub.DOI = normalizeOptionalDOI(field("DI"), file, row, report)

	if opts.IncludeCitations {
		pub.CitedRefs = parseCitedRefs(field("CR"), ";")
	}

	return pub, true
}

// normalizeOptionalISSN treats a malformed identifier as absent, with a
// diagnostic. An empty field is simply absent.
func normalizeOptionalISSN(raw, label, file string, row int, report *diag.Report) *publication.ISSN {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	issn, ok := publication.NormalizeISSN(raw)
	if !ok {
		report.AddRow(diag.BadIdentifier, file, row, "malformed %s %q", label, raw)
		return nil
	}
	return &issn
}

func normalizeOptionalDOI(raw, file string, row int, report *diag.Report) *publication.DOI {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	doi, ok := publication.ParseDOI(raw)
	if !ok {
		report.AddRow(diag.BadIdentifier, file, row, "malformed DOI %q", raw)
		return nil
	}
	return &doi
}
