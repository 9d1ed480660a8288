package uefiscdi

import (
	"testing"

	"github.com/alexfikl/uvt-scholarly/internal/diag"
)

func TestParseScoreList(t *testing.T) {
	data := []byte(`Journal,ISSN,eISSN,Score
Journal of Computation,0378-5955,0028-0836,1.25
Annals of Something,N/A,1234-5679,0.8
Scoreless But Listed,0036-8075,,N/A
Legend Or Footnote Text,,,
this row is never reached
`)

	entries, report, err := ParseScoreList("ris-2021.csv", data, ScoreRIS, 2021)
	if err != nil {
		t.Fatalf("ParseScoreList() error = %v", err)
	}
	if !report.Empty() {
		t.Errorf("unexpected diagnostics: %v", report.Diagnostics)
	}
	if len(entries) != 3 {
		t.Fatalf("ParseScoreList() returned %d entries, want 3", len(entries))
	}

	first := entries[0]
	if first.Journal != "Journal of Computation" || first.Score != 1.25 {
		t.Errorf("entry = %+v", first)
	}
	if first.ISSN == nil || first.ISSN.String() != "0378-5955" {
		t.Errorf("ISSN = %v", first.ISSN)
	}
	if first.Year != 2021 || first.Kind != ScoreRIS {
		t.Errorf("entry = %+v, want year/kind stamped", first)
	}

	if entries[1].ISSN != nil {
		t.Errorf("N/A placeholder should be absent, got %v", entries[1].ISSN)
	}
	if entries[2].Score != 0 {
		t.Errorf("N/A score should default to 0, got %v", entries[2].Score)
	}
}

func TestParseScoreList_QuartileColumn(t *testing.T) {
	data := []byte(`Journal,ISSN,eISSN,Quartile,Score
Journal of Computation,0378-5955,,Q1,2.5
`)

	entries, _, err := ParseScoreList("ais-2025.csv", data, ScoreAIS, 2025)
	if err != nil {
		t.Fatalf("ParseScoreList() error = %v", err)
	}
	if entries[0].Quartile != "Q1" || entries[0].Score != 2.5 {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestParseScoreList_KnownCorrections(t *testing.T) {
	data := []byte(`Journal,ISSN,eISSN,Score
Journal of Wound Care,0969-0700,2062-2916,0.5
Infancia y Aprendizaje,N/A,N/A,0.4
`)

	entries, report, err := ParseScoreList("ris-2021.csv", data, ScoreRIS, 2021)
	if err != nil {
		t.Fatalf("ParseScoreList() error = %v", err)
	}
	if !report.Empty() {
		t.Errorf("corrected identifiers should not produce diagnostics: %v", report.Diagnostics)
	}

	if entries[0].EISSN == nil || entries[0].EISSN.String() != "2052-2916" {
		t.Errorf("misprinted eISSN not corrected: %v", entries[0].EISSN)
	}
	if entries[1].ISSN == nil || entries[1].ISSN.String() != "0210-3702" {
		t.Errorf("known missing ISSN not filled: %v", entries[1].ISSN)
	}
	if entries[1].EISSN == nil || entries[1].EISSN.String() != "1578-4126" {
		t.Errorf("known missing eISSN not filled: %v", entries[1].EISSN)
	}
}

func TestParseScoreList_MalformedIdentifier(t *testing.T) {
	data := []byte(`Journal,ISSN,eISSN,Score
Journal of Computation,1234-567X,,1.25
`)

	entries, report, err := ParseScoreList("ris-2021.csv", data, ScoreRIS, 2021)
	if err != nil {
		t.Fatalf("ParseScoreList() error = %v", err)
	}
	if entries[0].ISSN != nil {
		t.Errorf("malformed identifier should be absent, got %v", entries[0].ISSN)
	}
	if report.Count(diag.BadIdentifier) != 1 {
		t.Errorf("want one bad-identifier diagnostic, got %v", report.Diagnostics)
	}
}

func TestParseScoreList_NoUsableRows(t *testing.T) {
	if _, _, err := ParseScoreList("empty.csv", []byte("Journal,ISSN,eISSN,Score\n"), ScoreRIS, 2021); err == nil {
		t.Error("ParseScoreList() should fail with no data rows")
	}
}

func TestListURL(t *testing.T) {
	if _, err := ListURL(2021, ScoreAIS); err != nil {
		t.Errorf("ListURL(2021, ais) error = %v", err)
	}
	if _, err := ListURL(1999, ScoreAIS); err == nil {
		t.Error("ListURL(1999, ais) should fail")
	}
	if LatestListYear() < 2025 {
		t.Errorf("LatestListYear() = %d", LatestListYear())
	}
}
