package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alexfikl/uvt-scholarly/internal/pipeline"
	"github.com/alexfikl/uvt-scholarly/internal/predatory"
	"github.com/alexfikl/uvt-scholarly/internal/report"
	"github.com/alexfikl/uvt-scholarly/internal/wos"
)

func init() {
	rootCmd.AddCommand(predatoryCmd)
}

var predatoryCmd = &cobra.Command{
	Use:   "predatory <export-file>...",
	Short: "Screen publication venues against the Beall lists",
	Long: `Predatory merges the given export files and checks every journal and
publisher against the Beall lists of potentially predatory publishers and
standalone journals.

A flagged venue is a warning for manual review, not a verdict: the lists
carry false positives and are updated irregularly.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPredatory,
}

// PredatoryResponse is the JSON output of the predatory command.
type PredatoryResponse struct {
	Screened int                     `json:"screened"`
	Flagged  []PredatoryFlagResponse `json:"flagged,omitempty"`
}

// PredatoryFlagResponse is one publication whose venue appears on a list.
type PredatoryFlagResponse struct {
	Reference string `json:"reference"`
	Venue     string `json:"venue"`
	ListedAs  string `json:"listed_as"`
	URL       string `json:"url"`
}

func runPredatory(cmd *cobra.Command, args []string) error {
	// .env may carry HTTP proxy settings for restricted networks
	_ = godotenv.Load()

	p := pipeline.New(buildLogger(), wos.Options{})
	pubs, diags, err := p.MergeFiles(args)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	printDiagnostics(diags)

	client := predatory.NewClient(nil)
	ctx := context.Background()

	journals, err := client.Journals(ctx)
	if err != nil {
		exitWithError(ExitNetworkErr, "%v", err)
	}
	publishers, err := client.Publishers(ctx)
	if err != nil {
		exitWithError(ExitNetworkErr, "%v", err)
	}

	journalIndex := predatory.NewIndex(journals)
	publisherIndex := predatory.NewIndex(publishers)

	response := PredatoryResponse{Screened: len(pubs)}
	for i := range pubs {
		src, ok := journalIndex.Match(pubs[i].Journal)
		venue := pubs[i].Journal
		if !ok {
			src, ok = publisherIndex.Match(pubs[i].Publisher)
			venue = pubs[i].Publisher
		}
		if !ok {
			continue
		}

		response.Flagged = append(response.Flagged, PredatoryFlagResponse{
			Reference: report.Reference(&pubs[i]),
			Venue:     venue,
			ListedAs:  src.Name,
			URL:       src.URL,
		})
	}

	if humanOutput {
		outputHuman("screened %d publications: %d flagged\n",
			response.Screened, len(response.Flagged))
		for _, f := range response.Flagged {
			outputHuman("  %s\n    listed as %s (%s)\n", f.Reference, f.ListedAs, f.URL)
		}
		return nil
	}
	return outputJSON(response)
}
