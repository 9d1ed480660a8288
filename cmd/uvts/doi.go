package main

import (
	"github.com/spf13/cobra"

	"github.com/alexfikl/uvt-scholarly/internal/fulltext"
)

func init() {
	rootCmd.AddCommand(doiCmd)
}

var doiCmd = &cobra.Command{
	Use:   "doi <pdf-file>...",
	Short: "Extract DOIs from full-text PDFs",
	Long: `Doi scans the first pages of each PDF for a DOI, for filling in
records whose export rows lack one.

A PDF without a findable DOI is reported with an empty value, not an
error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDOI,
}

// DOIResponse is one file's extraction result.
type DOIResponse struct {
	File string `json:"file"`
	DOI  string `json:"doi,omitempty"`
}

func runDOI(cmd *cobra.Command, args []string) error {
	var results []DOIResponse
	for _, path := range args {
		doi, err := fulltext.ExtractDOI(path)
		if err != nil {
			exitWithError(ExitDataError, "reading %s: %v", path, err)
		}

		result := DOIResponse{File: path}
		if doi != nil {
			result.DOI = doi.String()
		}
		results = append(results, result)
	}

	if humanOutput {
		for _, r := range results {
			if r.DOI == "" {
				outputHuman("%s: no DOI found\n", r.File)
			} else {
				outputHuman("%s: %s\n", r.File, r.DOI)
			}
		}
		return nil
	}
	return outputJSON(results)
}
