package main

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alexfikl/uvt-scholarly/internal/config"
	"github.com/alexfikl/uvt-scholarly/internal/core"
)

func init() {
	rootCmd.AddCommand(rankCmd)
}

var rankCmd = &cobra.Command{
	Use:   "rank <collection> [conference]...",
	Short: "Look up conference ranks in a CORE collection",
	Long: `Rank resolves conferences against a CORE ranking collection, for
classifying proceedings publications that the journal registry cannot cover.

The collection is either a known collection name (` + strings.Join(core.Collections, ", ") + `),
downloaded into the local cache on first use, or a path to an exported
collection CSV. Conferences are matched by acronym, falling back to the
full name; with no conference arguments the whole collection is listed.

Examples:
  uvts rank ICORE2026 ICSE POPL
  uvts rank core2023.csv "International Conference on Software Engineering"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRank,
}

// ConferenceResponse is one ranked conference with its classification
// resolved to display names.
type ConferenceResponse struct {
	Name       string    `json:"name"`
	Acronym    string    `json:"acronym"`
	Collection string    `json:"collection"`
	Rank       core.Rank `json:"rank"`
	Fields     []string  `json:"fields,omitempty"`
}

// RankResponse is the JSON output of the rank command.
type RankResponse struct {
	Conferences []ConferenceResponse `json:"conferences"`
	Missing     []string             `json:"missing,omitempty"`
}

func runRank(cmd *cobra.Command, args []string) error {
	path := args[0]
	if core.IsCollection(path) {
		// .env may carry HTTP proxy settings for restricted networks
		_ = godotenv.Load()

		downloader := core.NewDownloader(nil, config.DownloadDir())
		fetched, err := downloader.Fetch(context.Background(), strings.ToUpper(path))
		if err != nil {
			exitWithError(ExitNetworkErr, "%v", err)
		}
		path = fetched
	}

	data, err := os.ReadFile(path)
	if err != nil {
		exitWithError(ExitError, "reading collection: %v", err)
	}

	confs, diags, err := core.ParseCollection(path, data)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	printDiagnostics(diags)

	selected := confs
	var missing []string
	if len(args) > 1 {
		index := core.NewIndex(confs)
		selected = nil
		for _, query := range args[1:] {
			found := index.Lookup(query)
			if len(found) == 0 {
				missing = append(missing, query)
				continue
			}
			selected = append(selected, found...)
		}
	}

	response := RankResponse{Missing: missing}
	for _, c := range selected {
		fields := make([]string, 0, len(c.PrimaryFields))
		for _, code := range c.PrimaryFields {
			if name, ok := core.FieldName(code); ok {
				fields = append(fields, name)
			} else {
				fields = append(fields, code)
			}
		}
		response.Conferences = append(response.Conferences, ConferenceResponse{
			Name:       c.Name,
			Acronym:    c.Acronym,
			Collection: c.Collection,
			Rank:       c.Rank,
			Fields:     fields,
		})
	}

	if humanOutput {
		for _, c := range response.Conferences {
			outputHuman("%-12s %-4s %s\n", c.Acronym, c.Rank, c.Name)
			for _, f := range c.Fields {
				outputHuman("             %s\n", f)
			}
		}
		for _, q := range response.Missing {
			outputHuman("%s: not found in collection\n", q)
		}
		return nil
	}
	return outputJSON(response)
}
