package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/alexfikl/uvt-scholarly/internal/enrich"
	"github.com/alexfikl/uvt-scholarly/internal/publication"
	"github.com/alexfikl/uvt-scholarly/internal/uefiscdi"
)

func samplePublication(t *testing.T) publication.Publication {
	t.Helper()

	doi, ok := publication.ParseDOI("10.1000/182")
	if !ok {
		t.Fatal("ParseDOI failed")
	}
	return publication.Publication{
		Title: "On Analytical Engines",
		Authors: []publication.Author{
			{FirstName: "Ada", LastName: "Lovelace"},
			{FirstName: "Charles", LastName: "Babbage"},
		},
		Year:    2020,
		Journal: "Journal of Computation",
		Volume:  "12",
		Pages:   publication.Pages{Start: "101", End: "110", Count: 10},
		DOI:     &doi,
	}
}

func TestReference(t *testing.T) {
	pub := samplePublication(t)
	got := Reference(&pub)
	want := "A. Lovelace, C. Babbage, On Analytical Engines, Journal of Computation, vol. 12 (2020), pp. 101-110, DOI: 10.1000/182"
	if got != want {
		t.Errorf("Reference() = %q, want %q", got, want)
	}
}

func TestReference_MinimalRecord(t *testing.T) {
	pub := publication.Publication{Title: "A Title", Journal: "A Journal", Year: 2019}
	got := Reference(&pub)
	if got != "A Title, A Journal, 2019" {
		t.Errorf("Reference() = %q", got)
	}
}

func TestWriteMetricsCSV(t *testing.T) {
	pub := samplePublication(t)
	metrics := []enrich.Metric{{
		Title:    pub.Title,
		Year:     2020,
		Matched:  true,
		ListYear: 2018,
		Scores: map[uefiscdi.ScoreKind]float64{
			uefiscdi.ScoreAIS: 2.5,
			uefiscdi.ScoreRIS: 0.8,
		},
		Quartile:  "Q1",
		Citations: 3,
		Points:    2.5,
	}}

	var buf bytes.Buffer
	if err := WriteMetricsCSV(&buf, []publication.Publication{pub}, metrics); err != nil {
		t.Fatalf("WriteMetricsCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("output has %d rows, want 2", len(rows))
	}

	row := rows[1]
	if row[0] != "1" || row[3] != "2018" || row[4] != "2.500" || row[7] != "Q1" {
		t.Errorf("row = %v", row)
	}
	if row[6] != "" {
		t.Errorf("missing RIF score should be an empty column, got %q", row[6])
	}
	if row[8] != "3" {
		t.Errorf("integral citation count rendered as %q", row[8])
	}
}

func TestWriteMetricsCSV_FractionalCitations(t *testing.T) {
	pub := publication.Publication{Title: "T", Journal: "J", Year: 2020}
	metrics := []enrich.Metric{{Title: "T", Year: 2020, Citations: 0.5}}

	var buf bytes.Buffer
	if err := WriteMetricsCSV(&buf, []publication.Publication{pub}, metrics); err != nil {
		t.Fatalf("WriteMetricsCSV() error = %v", err)
	}

	rows, _ := csv.NewReader(&buf).ReadAll()
	if rows[1][8] != "0.500" {
		t.Errorf("Citations column = %q", rows[1][8])
	}
	if rows[1][3] != "" {
		t.Errorf("unmatched row should have empty list year, got %q", rows[1][3])
	}
}

func TestWriteMetricsCSV_LengthMismatch(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMetricsCSV(&buf, []publication.Publication{{}}, nil)
	if err == nil {
		t.Error("WriteMetricsCSV() should reject mismatched lengths")
	}
}

func TestWriteUnmatchedCSV(t *testing.T) {
	pubs := []publication.Publication{
		{Title: "No Venue", Journal: "Somewhere", Year: 2020},
	}
	reasons := []uefiscdi.Reason{uefiscdi.NotFound}

	var buf bytes.Buffer
	if err := WriteUnmatchedCSV(&buf, pubs, reasons); err != nil {
		t.Fatalf("WriteUnmatchedCSV() error = %v", err)
	}

	rows, _ := csv.NewReader(&buf).ReadAll()
	if len(rows) != 2 || rows[1][3] != "not-found" {
		t.Errorf("rows = %v", rows)
	}
}

func TestWriteMetricsLaTeX(t *testing.T) {
	pub := samplePublication(t)
	pub.Title = "Engines & Analysis"
	metrics := []enrich.Metric{{Title: pub.Title, Year: 2020, Matched: true, Points: 2.5}}

	var buf bytes.Buffer
	if err := WriteMetricsLaTeX(&buf, []publication.Publication{pub}, metrics, "Lovelace"); err != nil {
		t.Fatalf("WriteMetricsLaTeX() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`\begin{enumerate}`,
		`\textbf{A. Lovelace}`,
		"C. Babbage",
		`\enquote{Engines \& Analysis}`,
		`\textit{Journal of Computation}`,
		`pp.\ 101--110`,
		`\href{https://doi.org/10.1000/182}`,
		"(2.500 puncte)",
		`\textbf{Total: 2.500 puncte}`,
		`\end{enumerate}`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, `\textbf{C. Babbage}`) {
		t.Error("non-candidate author was bolded")
	}
}

func TestLatexEscape(t *testing.T) {
	got := latexEscape("50% of $x_i & {y}")
	want := `50\% of \$x\_i \& \{y\}`
	if got != want {
		t.Errorf("latexEscape() = %q, want %q", got, want)
	}
}
