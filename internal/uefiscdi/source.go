package uefiscdi

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

// emptyISSN are the placeholder values the published lists use for a missing
// identifier. "0" appears in RIS/2023, "****-****" in RIS/2021.
var emptyISSN = map[string]bool{
	"":          true,
	"0":         true,
	"N/A":       true,
	"****-****": true,
}

// incorrectISSN corrects identifiers that are misprinted in the published
// lists, some of them across multiple years.
var incorrectISSN = map[string]string{
	// eISSN: World Journal for Pediatric and Congenital Heart Surgery
	"2150-0136": "2150-136X",
	// eISSN: Journal of Intellectual Capital
	"758-7468": "1758-7468",
	// eISSN: Current Topics in Medicinal Chemistry
	"1873-5294": "1873-4294",
	// eISSN: International Journal for Lesson and Learning Studies
	"2016-8261": "2046-8261",
	// eISSN: Journal of Wound Care
	"2062-2916": "2052-2916",
	// eISSN: Proceedings of the Institution of Mechanical Engineers Part B
	"2041-1975": "2041-2975",
	// eISSN: Radical Philosophy
	"0030-211X": "0300-211X",
	// eISSN: Sociology of Race and Ethnicity
	"2332-6505": "2332-6506",
	// eISSN: African Entomology
	"2254-8854": "2224-8854",
	// ISSN: Invasive Plant Science and Management
	"1929-7291": "1939-7291",
}

// missingISSN fills in identifiers for journals the lists publish with
// neither an ISSN nor an eISSN. Names must match the lists exactly.
var missingISSN = map[string]string{
	"Infancia y Aprendizaje": "0210-3702",
}

var missingEISSN = map[string]string{
	"Infancia y Aprendizaje": "1578-4126",
}

// ParseScoreList parses one published score list in CSV form into registry
// entries for the given kind and list year.
//
// Column layout is journal, issn, eissn, score; lists from 2025 on insert a
// quartile column before the score. A header row is detected and skipped.
// Rows with an empty score column terminate the list (the files pad trailing
// legend text after the data); rows that fail to parse are skipped with a
// diagnostic.
func ParseScoreList(file string, data []byte, kind ScoreKind, year int) ([]Entry, *diag.Report, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	report := &diag.Report{}
	var result []Entry

	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.AddRow(diag.ParseRow, file, row, "unreadable row: %v", err)
			continue
		}
		if row == 1 && isScoreListHeader(record) {
			continue
		}

		entry, done, err := parseScoreRow(record, kind, year)
		if done {
			break
		}
		if err != nil {
			report.AddRow(diag.ParseRow, file, row, "%v", err)
			continue
		}

		entry.ISSN = normalizeListISSN(entry.Journal, record[1], missingISSN, file, row, report)
		entry.EISSN = normalizeListISSN(entry.Journal, record[2], missingEISSN, file, row, report)
		result = append(result, entry)
	}

	if len(result) == 0 {
		return nil, nil, fmt.Errorf("%s: no usable score rows", file)
	}
	return result, report, nil
}

func isScoreListHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(record[0]))
	return first == "journal" || first == "revista" || first == "journal title"
}

func parseScoreRow(record []string, kind ScoreKind, year int) (Entry, bool, error) {
	if len(record) != 4 && len(record) != 5 {
		return Entry{}, false, fmt.Errorf("unexpected number of columns: %d", len(record))
	}

	entry := Entry{
		Journal: strings.TrimSpace(record[0]),
		Year:    year,
		Kind:    kind,
	}

	scoreText := strings.TrimSpace(record[len(record)-1])
	if scoreText == "" {
		return Entry{}, true, nil
	}
	if len(record) == 5 {
		entry.Quartile = strings.TrimSpace(record[3])
	}

	if !strings.EqualFold(scoreText, "N/A") {
		score, err := strconv.ParseFloat(scoreText, 64)
		if err != nil {
			return Entry{}, false, fmt.Errorf("journal %q has unparseable score %q", entry.Journal, scoreText)
		}
		entry.Score = score
	}

	return entry, false, nil
}

// normalizeListISSN normalizes one identifier column, applying the known
// corrections and fills. A malformed identifier is treated as absent with a
// diagnostic, matching how export-side identifiers are handled.
func normalizeListISSN(journal, raw string, missing map[string]string, file string, row int, report *diag.Report) *publication.ISSN {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if emptyISSN[raw] {
		raw = missing[journal]
		if raw == "" {
			return nil
		}
	}
	if corrected, ok := incorrectISSN[raw]; ok {
		raw = corrected
	}

	issn, ok := publication.NormalizeISSN(raw)
	if !ok {
		report.AddRow(diag.BadIdentifier, file, row, "journal %q has malformed identifier %q", journal, raw)
		return nil
	}
	return &issn
}
