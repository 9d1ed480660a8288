// Package enrich derives evaluation data from matched records: citation
// counts aggregated from citing exports, and per-publication scoring metrics
// combining registry scores with configurable weights.
package enrich

import (
	"fmt"

	"github.com/alexfikl/uvt-scholarly/internal/publication"
	"github.com/alexfikl/uvt-scholarly/internal/uefiscdi"
)

// Policy selects how citations without a usable back-reference are
// attributed. Citation exports differ in whether cited-reference lists are
// present, so the choice is configuration, not code.
type Policy string

const (
	// PolicyDiscount drops citations that cannot be linked to a specific
	// publication: they contribute nothing.
	PolicyDiscount Policy = "discount"
	// PolicyUniform spreads each unlinkable citation evenly across the
	// candidate's publications that lack a DOI, 1/k each.
	PolicyUniform Policy = "uniform"
)

// ParsePolicy validates a policy name from configuration.
func ParsePolicy(name string) (Policy, error) {
	switch Policy(name) {
	case PolicyDiscount, PolicyUniform:
		return Policy(name), nil
	case "":
		return PolicyDiscount, nil
	}
	return "", fmt.Errorf("unknown citation policy %q", name)
}

// Aggregate counts citations toward each candidate publication. Only citing
// records that themselves match the registry count: a citation from an
// unindexed venue carries no evaluation weight. Linkage is by cited DOI;
// citing records with no cited-reference list at all are attributed per the
// policy. Counts are fractional under PolicyUniform.
//
// Every candidate publication has an entry in the result, zero included.
func Aggregate(pubs, citations []publication.Publication, registry *uefiscdi.Registry, asOf int, policy Policy) map[publication.Key]float64 {
	counts := make(map[publication.Key]float64, len(pubs))
	byDOI := make(map[string]publication.Key)
	var unresolved []publication.Key

	for i := range pubs {
		key := pubs[i].Key()
		counts[key] = 0
		if pubs[i].DOI != nil {
			byDOI[pubs[i].DOI.String()] = key
		} else {
			unresolved = append(unresolved, key)
		}
	}

	for i := range citations {
		citing := &citations[i]
		if !uefiscdi.Match(citing, registry, asOf).Matched {
			continue
		}

		if len(citing.CitedRefs) == 0 {
			if policy == PolicyUniform && len(unresolved) > 0 {
				share := 1.0 / float64(len(unresolved))
				for _, key := range unresolved {
					counts[key] += share
				}
			}
			continue
		}

		for doi := range citing.CitedRefs {
			if key, ok := byDOI[doi]; ok {
				counts[key]++
			}
		}
	}

	return counts
}
