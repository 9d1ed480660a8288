package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/alexfikl/uvt-scholarly/internal/config"
	"github.com/alexfikl/uvt-scholarly/internal/pipeline"
	"github.com/alexfikl/uvt-scholarly/internal/report"
	"github.com/alexfikl/uvt-scholarly/internal/uefiscdi"
	"github.com/alexfikl/uvt-scholarly/internal/wos"
)

var (
	matchAsOf         int
	matchUnmatchedCSV string
)

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().IntVar(&matchAsOf, "as-of", 0, "Pin matching to registry lists up to this year (0 = latest)")
	matchCmd.Flags().StringVar(&matchUnmatchedCSV, "unmatched-csv", "", "Write unmatched publications to this CSV file")
}

var matchCmd = &cobra.Command{
	Use:   "match <export-file>...",
	Short: "Split merged publications by scored-journal registry membership",
	Long: `Match merges the given export files and looks every publication up in
the cached UEFISCDI registry by ISSN (then eISSN).

The registry cache must be populated first (see "uvts registry"). Matches
through an extrapolated list year are reported as warnings.

Examples:
  uvts match savedrecs*.txt
  uvts match savedrecs.txt --as-of 2022 --unmatched-csv review.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

// MatchResponse is the JSON output of the match command.
type MatchResponse struct {
	Matched   int                   `json:"matched"`
	Unmatched int                   `json:"unmatched"`
	Results   []MatchRecordResponse `json:"results"`
}

// MatchRecordResponse pairs one publication with its match outcome.
type MatchRecordResponse struct {
	Reference string               `json:"reference"`
	Year      int                  `json:"year"`
	Result    uefiscdi.MatchResult `json:"result"`
}

func runMatch(cmd *cobra.Command, args []string) error {
	registry := mustLoadRegistry()
	p := pipeline.New(buildLogger(), wos.Options{})

	pubs, diags, err := p.MergeFiles(args)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	filtered, filterDiags := p.FilterAgainstRegistry(pubs, registry, matchAsOf)
	diags.Merge(filterDiags)
	printDiagnostics(diags)

	if matchUnmatchedCSV != "" {
		if err := writeUnmatchedCSV(matchUnmatchedCSV, filtered); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	if humanOutput {
		outputHuman("matched %d of %d publications against %d registry identifiers\n",
			len(filtered.Matched), len(pubs), registry.Len())
		for i := range filtered.Unmatched {
			outputHuman("  unmatched: %s\n", report.Reference(&filtered.Unmatched[i]))
		}
		return nil
	}

	response := MatchResponse{
		Matched:   len(filtered.Matched),
		Unmatched: len(filtered.Unmatched),
	}
	for i := range pubs {
		response.Results = append(response.Results, MatchRecordResponse{
			Reference: report.Reference(&pubs[i]),
			Year:      pubs[i].Year,
			Result:    filtered.Results[i],
		})
	}
	return outputJSON(response)
}

func writeUnmatchedCSV(path string, filtered pipeline.FilterResult) error {
	reasons := make([]uefiscdi.Reason, 0, len(filtered.Unmatched))
	for _, result := range filtered.Results {
		if !result.Matched {
			reasons = append(reasons, result.Reason)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return report.WriteUnmatchedCSV(f, filtered.Unmatched, reasons)
}

// mustLoadRegistry loads the cached registry or exits with guidance.
func mustLoadRegistry() *uefiscdi.Registry {
	path := config.RegistryDBPath()
	if _, err := os.Stat(path); err != nil {
		exitWithError(ExitConfigError,
			"registry cache not found at %s; run \"uvts registry download\" first", path)
	}

	store, err := uefiscdi.OpenStore(path)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer store.Close()

	entries, err := store.LoadEntries()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if len(entries) == 0 {
		exitWithError(ExitConfigError,
			"registry cache is empty; run \"uvts registry download\" first")
	}

	return uefiscdi.NewRegistry(entries)
}
