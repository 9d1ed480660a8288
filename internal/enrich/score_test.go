package enrich

import (
	"testing"

	"github.com/alexfikl/uvt-scholarly/internal/publication"
	"github.com/alexfikl/uvt-scholarly/internal/uefiscdi"
)

func TestScore(t *testing.T) {
	registry := uefiscdi.NewRegistry([]uefiscdi.Entry{
		{
			Journal:  "Journal of Computation",
			ISSN:     mustISSN(t, "0378-5955"),
			Year:     2020,
			Kind:     uefiscdi.ScoreAIS,
			Score:    2.5,
			Quartile: "Q1",
		},
		{
			Journal: "Journal of Computation",
			ISSN:    mustISSN(t, "0378-5955"),
			Year:    2020,
			Kind:    uefiscdi.ScoreRIS,
			Score:   0.8,
		},
	})

	article := publication.Publication{
		Title:   "On Analytical Engines",
		Journal: "Journal of Computation",
		Year:    2021,
		ISSN:    mustISSN(t, "0378-5955"),
		DocType: publication.Article,
		DOI:     mustDOI(t, "10.1000/182"),
	}
	letter := article
	letter.Title = "A Letter"
	letter.DocType = publication.Other
	letter.DOI = mustDOI(t, "10.1000/183")
	unmatched := publication.Publication{
		Title:   "Obscure Venue Paper",
		Year:    2021,
		ISSN:    mustISSN(t, "0036-8075"),
		DocType: publication.Article,
	}

	pubs := []publication.Publication{article, letter, unmatched}
	counts := map[publication.Key]float64{article.Key(): 3}

	metrics := Score(pubs, counts, registry, DefaultRules())
	if len(metrics) != 3 {
		t.Fatalf("Score() returned %d metrics, want 3", len(metrics))
	}

	got := metrics[0]
	if !got.Matched || got.ListYear != 2020 {
		t.Errorf("metric = %+v, want 2020 match", got)
	}
	if got.Points != 2.5 {
		t.Errorf("Points = %v, want weight 1 x AIS 2.5", got.Points)
	}
	if got.Citations != 3 {
		t.Errorf("Citations = %v, want 3", got.Citations)
	}
	if got.Quartile != "Q1" {
		t.Errorf("Quartile = %q", got.Quartile)
	}
	if got.Scores[uefiscdi.ScoreRIS] != 0.8 {
		t.Errorf("Scores = %v, want RIS carried alongside", got.Scores)
	}

	if metrics[1].Points != 0 {
		t.Errorf("unweighted document type scored points: %+v", metrics[1])
	}
	if metrics[1].Matched != true {
		t.Errorf("letter should still match the registry: %+v", metrics[1])
	}

	if metrics[2].Matched || metrics[2].Reason != uefiscdi.NotFound {
		t.Errorf("unmatched metric = %+v", metrics[2])
	}
	if metrics[2].Points != 0 {
		t.Errorf("unmatched publication scored points: %+v", metrics[2])
	}

	if total := Total(metrics); total != 2.5 {
		t.Errorf("Total() = %v, want 2.5", total)
	}
}

func TestRules_Validate(t *testing.T) {
	for _, tc := range []struct {
		name  string
		rules Rules
		ok    bool
	}{
		{"defaults", DefaultRules(), true},
		{"empty kind falls back", Rules{}, true},
		{"bad kind", Rules{Kind: "h-index"}, false},
		{"bad policy", Rules{Policy: "generous"}, false},
		{"negative weight", Rules{TypeWeights: map[string]float64{"article": -1}}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rules.Validate()
			if tc.ok != (err == nil) {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}
