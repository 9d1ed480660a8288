package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/alexfikl/uvt-scholarly/internal/enrich"
	"github.com/alexfikl/uvt-scholarly/internal/publication"
	"github.com/alexfikl/uvt-scholarly/internal/uefiscdi"
)

// metricsHeader matches the column layout of the evaluation scoring sheets.
var metricsHeader = []string{
	"Nr.",
	"Reference",
	"Year",
	"List Year",
	"AIS",
	"RIS",
	"RIF",
	"Quartile",
	"Citations",
	"Points",
}

// WriteMetricsCSV writes per-publication metrics as a CSV table, one row per
// publication in metric order. Unmatched publications appear with empty
// score columns so the sheet stays reviewable.
func WriteMetricsCSV(w io.Writer, pubs []publication.Publication, metrics []enrich.Metric) error {
	if len(pubs) != len(metrics) {
		return fmt.Errorf("publication and metric counts disagree: %d vs %d", len(pubs), len(metrics))
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(metricsHeader); err != nil {
		return fmt.Errorf("writing metrics header: %w", err)
	}

	for i := range metrics {
		m := &metrics[i]
		row := []string{
			fmt.Sprintf("%d", i+1),
			Reference(&pubs[i]),
			fmt.Sprintf("%d", m.Year),
			"",
			"", "", "",
			m.Quartile,
			formatCount(m.Citations),
			formatScore(m.Points),
		}
		if m.Matched {
			row[3] = fmt.Sprintf("%d", m.ListYear)
			row[4] = scoreColumn(m, uefiscdi.ScoreAIS)
			row[5] = scoreColumn(m, uefiscdi.ScoreRIS)
			row[6] = scoreColumn(m, uefiscdi.ScoreRIF)
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing metrics row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// unmatchedHeader is the layout of the manual-review sheet for publications
// the registry did not cover.
var unmatchedHeader = []string{"Nr.", "Reference", "Year", "Reason"}

// WriteUnmatchedCSV writes the unmatched publications with their reasons,
// for manual review.
func WriteUnmatchedCSV(w io.Writer, pubs []publication.Publication, reasons []uefiscdi.Reason) error {
	if len(pubs) != len(reasons) {
		return fmt.Errorf("publication and reason counts disagree: %d vs %d", len(pubs), len(reasons))
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(unmatchedHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range pubs {
		row := []string{
			fmt.Sprintf("%d", i+1),
			Reference(&pubs[i]),
			fmt.Sprintf("%d", pubs[i].Year),
			string(reasons[i]),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func scoreColumn(m *enrich.Metric, kind uefiscdi.ScoreKind) string {
	score, ok := m.Scores[kind]
	if !ok {
		return ""
	}
	return formatScore(score)
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.3f", score)
}

func formatCount(count float64) string {
	if count == float64(int64(count)) {
		return fmt.Sprintf("%d", int64(count))
	}
	return fmt.Sprintf("%.3f", count)
}
