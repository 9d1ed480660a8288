package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alexfikl/uvt-scholarly/internal/config"
	"github.com/alexfikl/uvt-scholarly/internal/pipeline"
	"github.com/alexfikl/uvt-scholarly/internal/resolve"
	"github.com/alexfikl/uvt-scholarly/internal/wos"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <export-file>...",
	Short: "Verify that exported DOIs actually resolve",
	Long: `Check merges the given export files and verifies every DOI against the
doi.org resolver with rate-limited HEAD requests.

Exports carry misprinted DOIs often enough that dossiers should not be
assembled without this pass. Verdicts are cached for a day.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

// CheckResponse is the JSON output of the check command.
type CheckResponse struct {
	Checked    int      `json:"checked"`
	Unresolved []string `json:"unresolved,omitempty"`
	Failed     []string `json:"failed,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	// .env may carry HTTP proxy settings for restricted networks
	_ = godotenv.Load()

	p := pipeline.New(buildLogger(), wos.Options{})
	pubs, diags, err := p.MergeFiles(args)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	printDiagnostics(diags)

	resolver := resolve.NewResolver(nil, config.MailTo())
	ctx := context.Background()

	response := CheckResponse{}
	for i := range pubs {
		if pubs[i].DOI == nil {
			continue
		}
		response.Checked++

		registered, err := resolver.Resolve(ctx, *pubs[i].DOI)
		switch {
		case err != nil:
			response.Failed = append(response.Failed, pubs[i].DOI.String())
		case !registered:
			response.Unresolved = append(response.Unresolved, pubs[i].DOI.String())
		}
	}

	if humanOutput {
		outputHuman("checked %d DOIs: %d unresolved, %d failed\n",
			response.Checked, len(response.Unresolved), len(response.Failed))
		for _, doi := range response.Unresolved {
			outputHuman("  unresolved: %s\n", doi)
		}
		for _, doi := range response.Failed {
			outputHuman("  failed: %s\n", doi)
		}
		return nil
	}
	return outputJSON(response)
}
