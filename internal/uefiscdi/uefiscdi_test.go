package uefiscdi

import (
	"reflect"
	"testing"

	"github.com/alexfikl/uvt-scholarly/internal/publication"
)

func mustISSN(t *testing.T, raw string) *publication.ISSN {
	t.Helper()
	issn, ok := publication.NormalizeISSN(raw)
	if !ok {
		t.Fatalf("NormalizeISSN(%q) failed", raw)
	}
	return &issn
}

func scoredJournal(t *testing.T, issn string, year int, kind ScoreKind, score float64) Entry {
	t.Helper()
	return Entry{
		Journal: "Journal of Computation",
		ISSN:    mustISSN(t, issn),
		Year:    year,
		Kind:    kind,
		Score:   score,
	}
}

func TestRegistry_LookupYearPolicy(t *testing.T) {
	registry := NewRegistry([]Entry{
		scoredJournal(t, "1234-5679", 2018, ScoreAIS, 1.25),
		scoredJournal(t, "1234-5679", 2021, ScoreAIS, 2.5),
	})

	for _, tc := range []struct {
		name         string
		year         int
		wantYear     int
		extrapolated bool
	}{
		{"closest not exceeding", 2020, 2018, false},
		{"exact hit", 2021, 2021, false},
		{"later than all entries", 2024, 2021, false},
		{"earlier than all entries", 2015, 2018, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			lookup, ok := registry.Lookup(*mustISSN(t, "1234-5679"), tc.year)
			if !ok {
				t.Fatal("Lookup() found nothing")
			}
			if lookup.Year != tc.wantYear {
				t.Errorf("Lookup().Year = %d, want %d", lookup.Year, tc.wantYear)
			}
			if lookup.Extrapolated != tc.extrapolated {
				t.Errorf("Lookup().Extrapolated = %v, want %v", lookup.Extrapolated, tc.extrapolated)
			}
		})
	}
}

func TestRegistry_LookupByEitherIdentifier(t *testing.T) {
	entry := scoredJournal(t, "0378-5955", 2021, ScoreRIS, 0.8)
	entry.EISSN = mustISSN(t, "0028-0836")
	registry := NewRegistry([]Entry{entry})

	for _, issn := range []string{"0378-5955", "0028-0836"} {
		if _, ok := registry.Lookup(*mustISSN(t, issn), 2022); !ok {
			t.Errorf("Lookup(%s) found nothing", issn)
		}
	}
}

func TestRegistry_ScoresPerKind(t *testing.T) {
	registry := NewRegistry([]Entry{
		scoredJournal(t, "1234-5679", 2021, ScoreAIS, 2.5),
		scoredJournal(t, "1234-5679", 2021, ScoreRIS, 0.8),
		scoredJournal(t, "1234-5679", 2018, ScoreAIS, 1.25),
	})

	lookup, ok := registry.Lookup(*mustISSN(t, "1234-5679"), 2021)
	if !ok {
		t.Fatal("Lookup() found nothing")
	}

	scores := lookup.Scores()
	if scores[ScoreAIS] != 2.5 || scores[ScoreRIS] != 0.8 {
		t.Errorf("Scores() = %v", scores)
	}
	if _, ok := scores[ScoreRIF]; ok {
		t.Errorf("Scores() invented a RIF entry: %v", scores)
	}
}

func TestMatch(t *testing.T) {
	registry := NewRegistry([]Entry{
		scoredJournal(t, "1234-5679", 2018, ScoreAIS, 1.25),
		scoredJournal(t, "1234-5679", 2021, ScoreAIS, 2.5),
	})

	t.Run("matched through ISSN", func(t *testing.T) {
		pub := publication.Publication{Year: 2020, ISSN: mustISSN(t, "1234-5679")}
		got := Match(&pub, registry, 0)
		if !got.Matched || got.Lookup.Year != 2018 {
			t.Errorf("Match() = %+v, want 2018 entry", got)
		}
		if got.Lookup.Extrapolated {
			t.Error("2018 entry is not an extrapolation for a 2020 publication")
		}
	})

	t.Run("extrapolated for earlier publication", func(t *testing.T) {
		pub := publication.Publication{Year: 2015, ISSN: mustISSN(t, "1234-5679")}
		got := Match(&pub, registry, 0)
		if !got.Matched || got.Lookup.Year != 2018 || !got.Lookup.Extrapolated {
			t.Errorf("Match() = %+v, want extrapolated 2018 entry", got)
		}
	})

	t.Run("falls back to eISSN", func(t *testing.T) {
		pub := publication.Publication{
			Year:  2020,
			ISSN:  mustISSN(t, "0036-8075"),
			EISSN: mustISSN(t, "1234-5679"),
		}
		got := Match(&pub, registry, 0)
		if !got.Matched {
			t.Errorf("Match() = %+v, want eISSN match", got)
		}
	})

	t.Run("no identifier", func(t *testing.T) {
		pub := publication.Publication{Year: 2020, Title: "Untraceable"}
		got := Match(&pub, registry, 0)
		if got.Matched || got.Reason != NoIdentifier {
			t.Errorf("Match() = %+v, want no-identifier", got)
		}
	})

	t.Run("not found", func(t *testing.T) {
		pub := publication.Publication{Year: 2020, ISSN: mustISSN(t, "0036-8075")}
		got := Match(&pub, registry, 0)
		if got.Matched || got.Reason != NotFound {
			t.Errorf("Match() = %+v, want not-found", got)
		}
	})

	t.Run("as-of cap excludes later lists", func(t *testing.T) {
		pub := publication.Publication{Year: 2024, ISSN: mustISSN(t, "1234-5679")}
		got := Match(&pub, registry, 2018)
		if !got.Matched || got.Lookup.Year != 2018 {
			t.Errorf("Match() = %+v, want 2018 entry under the 2018 cap", got)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		pub := publication.Publication{Year: 2020, ISSN: mustISSN(t, "1234-5679")}
		a := Match(&pub, registry, 0)
		b := Match(&pub, registry, 0)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Match() is not deterministic: %+v vs %+v", a, b)
		}
	})
}
