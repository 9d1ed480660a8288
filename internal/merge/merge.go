// Package merge combines publication batches from multiple export files into
// one deduplicated record set. Exports cap the number of records per file, so
// a single logical result set routinely arrives split across several files
// with an overlap window; merging is what reassembles it.
package merge

import (
	"github.com/alexfikl/uvt-scholarly/internal/diag"
	"github.com/alexfikl/uvt-scholarly/internal/publication"
)

// Merge deduplicates the concatenation of the given batches by canonical key.
// Output order is first-seen order of each key. When two records share a key,
// the one with more populated optional fields wins, first-seen winning ties;
// gaps in the winner are then filled from the loser, so the merged record is
// never less complete than either input.
//
// The result is independent of how the logical record set was split across
// batches: any partition of the same records merges to the same output.
func Merge(batches ...[]publication.Publication) ([]publication.Publication, *diag.Report) {
	report := &diag.Report{}

	index := make(map[publication.Key]int)
	var result []publication.Publication

	for _, batch := range batches {
		for _, pub := range batch {
			key := pub.Key()
			at, seen := index[key]
			if !seen {
				index[key] = len(result)
				result = append(result, pub)
				continue
			}

			merged := combine(result[at], pub, key, report)
			result[at] = merged
		}
	}

	return result, report
}

// combine merges a duplicate pair. kept is the first-seen record, next the
// newcomer; the more complete of the two becomes the base.
func combine(kept, next publication.Publication, key publication.Key, report *diag.Report) publication.Publication {
	if conflicts(&kept, &next) {
		report.Add(diag.MergeConflict,
			"records share key %s but disagree on core fields: %q (%d) vs %q (%d)",
			key, kept.Title, kept.Year, next.Title, next.Year)
	}

	base, other := kept, next
	if next.FieldCount() > kept.FieldCount() {
		base, other = next, kept
	}
	fillGaps(&base, &other)
	return base
}

// conflicts reports whether two records sharing a key disagree on fields that
// should be identical for the same publication. Surface-text title variation
// (case, diacritics) is not a conflict; a different year or a materially
// different title is.
func conflicts(a, b *publication.Publication) bool {
	if a.Year != b.Year {
		return true
	}
	return publication.Fold(a.Title) != publication.Fold(b.Title)
}

// fillGaps copies optional fields the base record is missing from the other
// duplicate. Core fields (title, year, journal) always come from the base.
func fillGaps(base, other *publication.Publication) {
	if base.ISSN == nil {
		base.ISSN = other.ISSN
	}
	if base.EISSN == nil {
		base.EISSN = other.EISSN
	}
	if base.DOI == nil {
		base.DOI = other.DOI
	}
	if base.Publisher == "" {
		base.Publisher = other.Publisher
	}
	if base.Volume == "" {
		base.Volume = other.Volume
	}
	if base.Issue == "" {
		base.Issue = other.Issue
	}
	if base.Pages.Start == "" {
		base.Pages = other.Pages
	}
	if len(base.Authors) == 0 {
		base.Authors = other.Authors
	}
	if len(base.Categories) == 0 {
		base.Categories = other.Categories
	}
	if base.Accession == "" {
		base.Accession = other.Accession
	}
	if base.CitedByCount < other.CitedByCount {
		base.CitedByCount = other.CitedByCount
	}
	if len(base.CitedRefs) == 0 {
		base.CitedRefs = other.CitedRefs
	}
}
