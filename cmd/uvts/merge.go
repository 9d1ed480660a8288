package main

import (
	"github.com/spf13/cobra"

	"github.com/alexfikl/uvt-scholarly/internal/pipeline"
	"github.com/alexfikl/uvt-scholarly/internal/publication"
	"github.com/alexfikl/uvt-scholarly/internal/report"
	"github.com/alexfikl/uvt-scholarly/internal/wos"
)

var mergeCitations bool

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().BoolVar(&mergeCitations, "citations", false, "Parse cited-reference lists as well")
}

var mergeCmd = &cobra.Command{
	Use:   "merge <export-file>...",
	Short: "Merge export files into one deduplicated publication list",
	Long: `Merge parses every given export file (tab-delimited or BibTeX,
detected by content) and combines them into one deduplicated list.

Exports cap the number of records per file, so one logical result set is
often split across several files with overlap; merge reassembles it. Rows
that cannot be parsed are skipped and reported as warnings.

Examples:
  uvts merge savedrecs*.txt
  uvts merge part1.txt part2.bib --citations`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

// MergeResponse is the JSON output of the merge command.
type MergeResponse struct {
	Records     int                       `json:"records"`
	Files       int                       `json:"files"`
	Diagnostics int                       `json:"diagnostics"`
	Publication []publication.Publication `json:"publications"`
}

func runMerge(cmd *cobra.Command, args []string) error {
	p := pipeline.New(buildLogger(), wos.Options{IncludeCitations: mergeCitations})

	pubs, diags, err := p.MergeFiles(args)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	printDiagnostics(diags)

	if humanOutput {
		for i := range pubs {
			outputHuman("%4d. %s\n", i+1, report.Reference(&pubs[i]))
		}
		outputHuman("\n%d records from %d files (%d warnings)\n",
			len(pubs), len(args), len(diags.Diagnostics))
		return nil
	}

	return outputJSON(MergeResponse{
		Records:     len(pubs),
		Files:       len(args),
		Diagnostics: len(diags.Diagnostics),
		Publication: pubs,
	})
}
