package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/alexfikl/uvt-scholarly/internal/config"
	"github.com/alexfikl/uvt-scholarly/internal/enrich"
	"github.com/alexfikl/uvt-scholarly/internal/pipeline"
	"github.com/alexfikl/uvt-scholarly/internal/publication"
	"github.com/alexfikl/uvt-scholarly/internal/report"
	"github.com/alexfikl/uvt-scholarly/internal/wos"
)

var (
	scoreCitationFiles []string
	scoreCandidate     string
	scoreAsOf          int
	scorePolicy        string
	scoreCSV           string
	scoreLaTeX         string
)

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringSliceVar(&scoreCitationFiles, "citations", nil, "Citation export files (citing records)")
	scoreCmd.Flags().StringVar(&scoreCandidate, "candidate", "", "Candidate surname, bolded in the LaTeX output")
	scoreCmd.Flags().IntVar(&scoreAsOf, "as-of", 0, "Pin scoring to registry lists up to this year (0 = configured default)")
	scoreCmd.Flags().StringVar(&scorePolicy, "policy", "", "Unlinkable citation policy: discount or uniform")
	scoreCmd.Flags().StringVar(&scoreCSV, "csv", "", "Write the scoring sheet to this CSV file")
	scoreCmd.Flags().StringVar(&scoreLaTeX, "latex", "", "Write the dossier fragment to this LaTeX file")
}

var scoreCmd = &cobra.Command{
	Use:   "score <export-file>...",
	Short: "Compute per-publication evaluation metrics for a candidate",
	Long: `Score merges the candidate's export files, matches them against the
cached registry, aggregates citations from the citing exports and computes
points per the configured scoring rules.

Only citations whose citing venue is itself in the registry count. Citing
records without cited-reference lists are attributed per the configured
policy: discounted entirely, or spread uniformly over the candidate's
DOI-less publications.

Examples:
  uvts score savedrecs*.txt --citations citing*.txt
  uvts score pubs.txt --csv sheet.csv --latex dossier.tex --candidate Lovelace`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

// ScoreResponse is the JSON output of the score command.
type ScoreResponse struct {
	Publications int             `json:"publications"`
	Citations    int             `json:"citing_records"`
	Total        float64         `json:"total_points"`
	Metrics      []enrich.Metric `json:"metrics"`
}

func runScore(cmd *cobra.Command, args []string) error {
	registry := mustLoadRegistry()

	rules := config.ScoringRules()
	if scoreAsOf > 0 {
		rules.AsOf = scoreAsOf
	}
	if scorePolicy != "" {
		policy, err := enrich.ParsePolicy(scorePolicy)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		rules.Policy = policy
	}

	p := pipeline.New(buildLogger(), wos.Options{IncludeCitations: true})

	pubs, diags, err := p.MergeFiles(args)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	var citations []publication.Publication
	if len(scoreCitationFiles) > 0 {
		cites, citeDiags, err := p.MergeFiles(scoreCitationFiles)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		diags.Merge(citeDiags)
		citations = cites
	}
	printDiagnostics(diags)

	metrics, err := p.ScoreCandidate(pubs, citations, registry, rules)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if scoreCSV != "" {
		if err := writeFileWith(scoreCSV, func(f *os.File) error {
			return report.WriteMetricsCSV(f, pubs, metrics)
		}); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}
	if scoreLaTeX != "" {
		if err := writeFileWith(scoreLaTeX, func(f *os.File) error {
			return report.WriteMetricsLaTeX(f, pubs, metrics, scoreCandidate)
		}); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	if humanOutput {
		for i, m := range metrics {
			marker := " "
			if m.Matched {
				marker = "*"
			}
			outputHuman("%4d. %s %-60.60s %8.3f\n", i+1, marker, m.Title, m.Points)
		}
		outputHuman("\ntotal: %.3f points over %d publications\n",
			enrich.Total(metrics), len(metrics))
		return nil
	}

	return outputJSON(ScoreResponse{
		Publications: len(pubs),
		Citations:    len(citations),
		Total:        enrich.Total(metrics),
		Metrics:      metrics,
	})
}

func writeFileWith(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
