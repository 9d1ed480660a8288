package uefiscdi

import (
	"github.com/alexfikl/uvt-scholarly/internal/publication"
)

// Reason explains why a publication did not match the registry.
type Reason string

const (
	// NoIdentifier means the publication carries neither an ISSN nor an
	// eISSN.
	NoIdentifier Reason = "no-identifier"
	// NotFound means the publication has a normalized identifier but the
	// registry has no row for it.
	NotFound Reason = "not-found"
)

// MatchResult is the outcome of resolving one publication against the
// registry.
type MatchResult struct {
	Matched bool   `json:"matched"`
	Reason  Reason `json:"reason,omitempty"`

	// Identifier is the normalized identifier the match went through, when
	// one was available.
	Identifier *publication.ISSN `json:"identifier,omitempty"`

	// Lookup holds the selected registry entries when Matched.
	Lookup Lookup `json:"lookup,omitempty"`
}

// Match resolves a publication against the registry. Lookup order is ISSN
// first, then eISSN; a publication with neither is unmatched with reason
// no-identifier, one whose identifiers have no registry rows with reason
// not-found.
//
// asOf caps the list years considered: entries published after asOf are
// ignored, so an evaluation pinned to a registry version is reproducible
// after newer lists appear. Zero means no cap. Matching is deterministic:
// the same publication, registry, and asOf always produce the same result.
func Match(p *publication.Publication, r *Registry, asOf int) MatchResult {
	for _, issn := range []*publication.ISSN{p.ISSN, p.EISSN} {
		if issn == nil {
			continue
		}

		lookup, ok := r.Lookup(*issn, lookupYear(p.Year, asOf))
		if !ok {
			continue
		}
		if asOf > 0 && lookup.Year > asOf {
			continue
		}
		return MatchResult{Matched: true, Identifier: issn, Lookup: lookup}
	}

	if p.ISSN == nil && p.EISSN == nil {
		return MatchResult{Reason: NoIdentifier}
	}
	return MatchResult{Matched: false, Reason: NotFound, Identifier: firstISSN(p)}
}

func lookupYear(pubYear, asOf int) int {
	if asOf > 0 && asOf < pubYear {
		return asOf
	}
	return pubYear
}

func firstISSN(p *publication.Publication) *publication.ISSN {
	if p.ISSN != nil {
		return p.ISSN
	}
	return p.EISSN
}
