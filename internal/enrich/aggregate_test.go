package enrich

import (
	"math"
	"testing"

	"github.com/alexfikl/uvt-scholarly/internal/publication"
	"github.com/alexfikl/uvt-scholarly/internal/uefiscdi"
)

func mustISSN(t *testing.T, raw string) *publication.ISSN {
	t.Helper()
	issn, ok := publication.NormalizeISSN(raw)
	if !ok {
		t.Fatalf("NormalizeISSN(%q) failed", raw)
	}
	return &issn
}

func mustDOI(t *testing.T, raw string) *publication.DOI {
	t.Helper()
	doi, ok := publication.ParseDOI(raw)
	if !ok {
		t.Fatalf("ParseDOI(%q) failed", raw)
	}
	return &doi
}

// indexedRegistry returns a registry containing the scored journal every
// citing record in these tests is published in.
func indexedRegistry(t *testing.T) *uefiscdi.Registry {
	t.Helper()
	return uefiscdi.NewRegistry([]uefiscdi.Entry{{
		Journal: "Journal of Computation",
		ISSN:    mustISSN(t, "0378-5955"),
		Year:    2020,
		Kind:    uefiscdi.ScoreAIS,
		Score:   2.5,
	}})
}

func citingRecord(t *testing.T, citedDOIs ...string) publication.Publication {
	t.Helper()

	pub := publication.Publication{
		Title: "A Citing Paper",
		Year:  2021,
		ISSN:  mustISSN(t, "0378-5955"),
	}
	if len(citedDOIs) > 0 {
		pub.CitedRefs = make(map[string]publication.CitedRef)
		for _, doi := range citedDOIs {
			pub.CitedRefs[doi] = publication.CitedRef{DOI: *mustDOI(t, doi)}
		}
	}
	return pub
}

func TestAggregate_LinkedByDOI(t *testing.T) {
	cited := publication.Publication{Title: "Cited Work", Year: 2020, DOI: mustDOI(t, "10.1000/182")}
	other := publication.Publication{Title: "Uncited Work", Year: 2020, DOI: mustDOI(t, "10.1000/183")}
	pubs := []publication.Publication{cited, other}

	citations := []publication.Publication{
		citingRecord(t, "10.1000/182"),
		citingRecord(t, "10.1000/182", "10.9999/elsewhere"),
	}

	counts := Aggregate(pubs, citations, indexedRegistry(t), 0, PolicyDiscount)
	if got := counts[cited.Key()]; got != 2 {
		t.Errorf("counts[cited] = %v, want 2", got)
	}
	if got := counts[other.Key()]; got != 0 {
		t.Errorf("counts[uncited] = %v, want 0", got)
	}
}

func TestAggregate_UnindexedCitingSourceIgnored(t *testing.T) {
	cited := publication.Publication{Title: "Cited Work", Year: 2020, DOI: mustDOI(t, "10.1000/182")}

	unindexed := citingRecord(t, "10.1000/182")
	unindexed.ISSN = mustISSN(t, "0036-8075") // not in the registry

	counts := Aggregate([]publication.Publication{cited}, []publication.Publication{unindexed}, indexedRegistry(t), 0, PolicyDiscount)
	if got := counts[cited.Key()]; got != 0 {
		t.Errorf("citation from unindexed venue counted: %v", got)
	}
}

func TestAggregate_UnlinkablePolicies(t *testing.T) {
	withDOI := publication.Publication{Title: "Resolved", Year: 2020, DOI: mustDOI(t, "10.1000/182")}
	bare1 := publication.Publication{Title: "Unresolved One", Year: 2020}
	bare2 := publication.Publication{Title: "Unresolved Two", Year: 2020}
	pubs := []publication.Publication{withDOI, bare1, bare2}

	// A citing record from an indexed venue with no cited-reference list.
	citations := []publication.Publication{citingRecord(t)}

	t.Run("discount", func(t *testing.T) {
		counts := Aggregate(pubs, citations, indexedRegistry(t), 0, PolicyDiscount)
		for key, got := range counts {
			if got != 0 {
				t.Errorf("counts[%s] = %v, want 0 under discount", key, got)
			}
		}
	})

	t.Run("uniform", func(t *testing.T) {
		counts := Aggregate(pubs, citations, indexedRegistry(t), 0, PolicyUniform)
		if got := counts[withDOI.Key()]; got != 0 {
			t.Errorf("publication with DOI got uniform share: %v", got)
		}
		for _, pub := range []publication.Publication{bare1, bare2} {
			if got := counts[pub.Key()]; math.Abs(got-0.5) > 1e-12 {
				t.Errorf("counts[%s] = %v, want 1/2", pub.Title, got)
			}
		}
	})
}

func TestAggregate_ZeroEntriesForAllCandidates(t *testing.T) {
	pubs := []publication.Publication{
		{Title: "Never Cited", Year: 2020, DOI: mustDOI(t, "10.1000/184")},
	}

	counts := Aggregate(pubs, nil, indexedRegistry(t), 0, PolicyDiscount)
	if got, ok := counts[pubs[0].Key()]; !ok || got != 0 {
		t.Errorf("counts = %v, want explicit zero entry", counts)
	}
}

func TestParsePolicy(t *testing.T) {
	for _, tc := range []struct {
		name string
		want Policy
		ok   bool
	}{
		{"discount", PolicyDiscount, true},
		{"uniform", PolicyUniform, true},
		{"", PolicyDiscount, true},
		{"generous", "", false},
	} {
		got, err := ParsePolicy(tc.name)
		if tc.ok != (err == nil) || got != tc.want {
			t.Errorf("ParsePolicy(%q) = %v, %v", tc.name, got, err)
		}
	}
}
