// Package pipeline wires the processing stages together: parse export files,
// merge into one record set, match against the registry, aggregate citations
// and score. Each stage is a pure function over its inputs; only parsing
// touches the filesystem.
package pipeline

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/alexfikl/uvt-scholarly/internal/diag"
	"github.com/alexfikl/uvt-scholarly/internal/enrich"
	"github.com/alexfikl/uvt-scholarly/internal/merge"
	"github.com/alexfikl/uvt-scholarly/internal/publication"
	"github.com/alexfikl/uvt-scholarly/internal/uefiscdi"
	"github.com/alexfikl/uvt-scholarly/internal/wos"
)

// parseWorkers bounds concurrent file parsing. Files are independent, so
// parsing fans out; results are joined in input order before merging to keep
// the output deterministic.
const parseWorkers = 4

// Pipeline runs the processing stages with shared options and logging.
type Pipeline struct {
	log  *zap.Logger
	opts wos.Options
}

// New builds a pipeline. A nil logger disables logging.
func New(log *zap.Logger, opts wos.Options) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{log: log, opts: opts}
}

// parsedFile is one file's parse result, kept in input order.
type parsedFile struct {
	pubs   []publication.Publication
	report *diag.Report
	err    error
}

// MergeFiles parses every export file and merges the results into one
// deduplicated record set. Any file that is unreadable or structurally
// unparseable fails the whole call; row-level problems accumulate in the
// returned report.
func (p *Pipeline) MergeFiles(paths []string) ([]publication.Publication, *diag.Report, error) {
	parsed := make([]parsedFile, len(paths))

	var wg sync.WaitGroup
	sem := make(chan struct{}, parseWorkers)
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			parsed[i] = p.parseFile(path)
		}(i, path)
	}
	wg.Wait()

	report := &diag.Report{}
	batches := make([][]publication.Publication, 0, len(paths))
	for i, result := range parsed {
		if result.err != nil {
			return nil, nil, result.err
		}
		p.log.Info("parsed export file",
			zap.String("file", paths[i]),
			zap.Int("records", len(result.pubs)),
			zap.Int("diagnostics", len(result.report.Diagnostics)))

		report.Merge(result.report)
		batches = append(batches, result.pubs)
	}

	merged, mergeReport := merge.Merge(batches...)
	report.Merge(mergeReport)

	p.log.Info("merged record set",
		zap.Int("files", len(paths)),
		zap.Int("records", len(merged)))
	return merged, report, nil
}

func (p *Pipeline) parseFile(path string) parsedFile {
	data, err := os.ReadFile(path)
	if err != nil {
		return parsedFile{err: fmt.Errorf("reading export file: %w", err)}
	}

	pubs, report, err := wos.ParseFile(path, data, p.opts)
	if err != nil {
		return parsedFile{err: err}
	}
	return parsedFile{pubs: pubs, report: report}
}

// FilterResult splits a record set by registry membership.
type FilterResult struct {
	Matched   []publication.Publication `json:"matched"`
	Unmatched []publication.Publication `json:"unmatched"`

	// Results holds the per-publication match outcome, in input order.
	Results []uefiscdi.MatchResult `json:"results"`
}

// FilterAgainstRegistry matches every record against the registry and splits
// the set. Year-extrapolated matches are surfaced as lookup-ambiguity
// diagnostics for manual review.
func (p *Pipeline) FilterAgainstRegistry(pubs []publication.Publication, registry *uefiscdi.Registry, asOf int) (FilterResult, *diag.Report) {
	report := &diag.Report{}
	result := FilterResult{Results: make([]uefiscdi.MatchResult, 0, len(pubs))}

	for i := range pubs {
		match := uefiscdi.Match(&pubs[i], registry, asOf)
		result.Results = append(result.Results, match)

		if match.Matched {
			result.Matched = append(result.Matched, pubs[i])
			if match.Lookup.Extrapolated {
				report.Add(diag.LookupAmbiguity,
					"publication %q (%d) matched through extrapolated list year %d",
					pubs[i].Title, pubs[i].Year, match.Lookup.Year)
			}
		} else {
			result.Unmatched = append(result.Unmatched, pubs[i])
		}
	}

	p.log.Info("filtered against registry",
		zap.Int("matched", len(result.Matched)),
		zap.Int("unmatched", len(result.Unmatched)))
	return result, report
}

// ScoreCandidate computes per-publication metrics for a candidate's
// publications, counting only citations from registry-indexed venues per the
// configured policy.
func (p *Pipeline) ScoreCandidate(pubs, citations []publication.Publication, registry *uefiscdi.Registry, rules enrich.Rules) ([]enrich.Metric, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("scoring rules: %w", err)
	}

	counts := enrich.Aggregate(pubs, citations, registry, rules.AsOf, rules.Policy)
	metrics := enrich.Score(pubs, counts, registry, rules)

	p.log.Info("scored candidate",
		zap.Int("publications", len(pubs)),
		zap.Int("citing_records", len(citations)),
		zap.Float64("total_points", enrich.Total(metrics)))
	return metrics, nil
}
