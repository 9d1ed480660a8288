package enrich

import (
	"fmt"

	"github.com/alexfikl/uvt-scholarly/internal/publication"
	"github.com/alexfikl/uvt-scholarly/internal/uefiscdi"
)

// Rules configures candidate scoring. Loaded from the scoring section of the
// global configuration; zero values fall back to DefaultRules.
type Rules struct {
	// Kind is the registry score used for points (ais, ris, rif).
	Kind uefiscdi.ScoreKind `yaml:"kind"`

	// AsOf caps the registry list years considered, pinning an evaluation
	// to a registry version. Zero means latest.
	AsOf int `yaml:"as_of"`

	// Policy attributes citations without back-references.
	Policy Policy `yaml:"policy"`

	// TypeWeights scales points per document type; types not listed use
	// DefaultWeight.
	TypeWeights map[string]float64 `yaml:"type_weights"`

	// DefaultWeight applies to document types without an explicit weight.
	DefaultWeight float64 `yaml:"default_weight"`
}

// DefaultRules is the scoring configuration used when none is given:
// AIS-based points, full weight for articles and reviews, nothing for the
// rest, unlinkable citations discounted.
func DefaultRules() Rules {
	return Rules{
		Kind:   uefiscdi.ScoreAIS,
		Policy: PolicyDiscount,
		TypeWeights: map[string]float64{
			publication.Article.String(): 1,
			publication.Review.String():  1,
		},
	}
}

// Validate checks rule values that come from configuration.
func (r *Rules) Validate() error {
	switch r.Kind {
	case uefiscdi.ScoreAIS, uefiscdi.ScoreRIS, uefiscdi.ScoreRIF:
	case "":
		r.Kind = uefiscdi.ScoreAIS
	default:
		return fmt.Errorf("unknown score kind %q", r.Kind)
	}

	policy, err := ParsePolicy(string(r.Policy))
	if err != nil {
		return err
	}
	r.Policy = policy

	for name, weight := range r.TypeWeights {
		if weight < 0 {
			return fmt.Errorf("document type %q has negative weight", name)
		}
	}
	return nil
}

func (r *Rules) weight(t publication.DocumentType) float64 {
	if w, ok := r.TypeWeights[t.String()]; ok {
		return w
	}
	return r.DefaultWeight
}

// Metric is the evaluation result for one publication.
type Metric struct {
	Key     publication.Key `json:"-"`
	Title   string          `json:"title"`
	Journal string          `json:"journal"`
	Year    int             `json:"year"`

	Matched      bool            `json:"matched"`
	Reason       uefiscdi.Reason `json:"reason,omitempty"`
	ListYear     int             `json:"list_year,omitempty"`
	Extrapolated bool            `json:"extrapolated,omitempty"`

	Scores   map[uefiscdi.ScoreKind]float64 `json:"scores,omitempty"`
	Quartile string                         `json:"quartile,omitempty"`

	Citations float64 `json:"citations"`
	Points    float64 `json:"points"`
}

// Score computes per-publication metrics for a candidate: registry match,
// scores of the selected list year, aggregated citations, and points as the
// document-type weight times the configured score kind. Unmatched
// publications get zero points but stay in the result for reporting.
func Score(pubs []publication.Publication, counts map[publication.Key]float64, registry *uefiscdi.Registry, rules Rules) []Metric {
	result := make([]Metric, 0, len(pubs))
	for i := range pubs {
		pub := &pubs[i]
		key := pub.Key()

		metric := Metric{
			Key:       key,
			Title:     pub.Title,
			Journal:   pub.Journal,
			Year:      pub.Year,
			Citations: counts[key],
		}

		match := uefiscdi.Match(pub, registry, rules.AsOf)
		metric.Matched = match.Matched
		metric.Reason = match.Reason

		if match.Matched {
			metric.ListYear = match.Lookup.Year
			metric.Extrapolated = match.Lookup.Extrapolated
			metric.Scores = match.Lookup.Scores()
			metric.Quartile = lookupQuartile(match.Lookup, rules.Kind)
			metric.Points = rules.weight(pub.DocType) * metric.Scores[rules.Kind]
		}

		result = append(result, metric)
	}
	return result
}

func lookupQuartile(lookup uefiscdi.Lookup, kind uefiscdi.ScoreKind) string {
	for _, e := range lookup.Entries {
		if e.Kind == kind && e.Quartile != "" {
			return e.Quartile
		}
	}
	return ""
}

// Total sums the points of a metric set.
func Total(metrics []Metric) float64 {
	total := 0.0
	for _, m := range metrics {
		total += m.Points
	}
	return total
}
