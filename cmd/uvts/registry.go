package main

import (
	"context"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alexfikl/uvt-scholarly/internal/config"
	"github.com/alexfikl/uvt-scholarly/internal/uefiscdi"
)

var (
	registryYear int
	registryKind string
)

func init() {
	rootCmd.AddCommand(registryCmd)
	registryCmd.AddCommand(registryDownloadCmd)
	registryCmd.AddCommand(registryImportCmd)
	registryCmd.AddCommand(registryInfoCmd)

	registryDownloadCmd.Flags().IntVar(&registryYear, "year", 0, "List year to download (0 = latest)")
	registryImportCmd.Flags().IntVar(&registryYear, "year", 0, "List year being imported (required)")
	registryImportCmd.Flags().StringVar(&registryKind, "kind", "", "Score kind being imported: ais, ris or rif (required)")
}

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Manage the cached scored-journal registry",
}

var registryDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the published score lists into the cache",
	Long: `Download fetches the published score list files for a list year into
the local cache directory. Downloads are rate-limited; already-cached
files are not fetched again.

The published files are spreadsheets; convert them to CSV and load them
with "uvts registry import".`,
	RunE: runRegistryDownload,
}

var registryImportCmd = &cobra.Command{
	Use:   "import <csv-file>",
	Short: "Import a score list CSV into the registry cache",
	Long: `Import parses one score list in CSV form (journal, issn, eissn, score
columns; 2025 lists carry a quartile column before the score) and replaces
that list in the registry cache.

Known misprints in the published identifiers are corrected during import.
An unchanged source file (by content fingerprint) is skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runRegistryImport,
}

var registryInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show what the registry cache contains",
	RunE:  runRegistryInfo,
}

func runRegistryDownload(cmd *cobra.Command, args []string) error {
	// .env may carry HTTP proxy settings for restricted networks
	_ = godotenv.Load()

	year := registryYear
	if year == 0 {
		year = uefiscdi.LatestListYear()
	}

	downloader := uefiscdi.NewDownloader(nil, config.DownloadDir())
	ctx := context.Background()

	var paths []string
	for _, kind := range uefiscdi.ScoreKinds {
		path, err := downloader.Fetch(ctx, year, kind)
		if err != nil {
			exitWithError(ExitNetworkErr, "%v", err)
		}
		paths = append(paths, path)
	}

	if humanOutput {
		for _, path := range paths {
			outputHuman("downloaded %s\n", path)
		}
		return nil
	}
	return outputJSON(struct {
		Year  int      `json:"year"`
		Files []string `json:"files"`
	}{Year: year, Files: paths})
}

func runRegistryImport(cmd *cobra.Command, args []string) error {
	if registryYear == 0 || registryKind == "" {
		exitWithError(ExitConfigError, "--year and --kind are required")
	}
	kind := uefiscdi.ScoreKind(registryKind)
	switch kind {
	case uefiscdi.ScoreAIS, uefiscdi.ScoreRIS, uefiscdi.ScoreRIF:
	default:
		exitWithError(ExitConfigError, "unknown score kind %q", registryKind)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError(ExitError, "reading score list: %v", err)
	}

	store, err := uefiscdi.OpenStore(config.RegistryDBPath())
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer store.Close()

	fingerprint := uefiscdi.Fingerprint(data)
	stored, err := store.SourceFingerprint(registryYear, kind)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if stored == fingerprint {
		if humanOutput {
			outputHuman("%s/%d already imported, unchanged\n", kind, registryYear)
			return nil
		}
		return outputJSON(StatusResponse{Status: "unchanged"})
	}

	entries, diags, err := uefiscdi.ParseScoreList(args[0], data, kind, registryYear)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	printDiagnostics(diags)

	if err := store.ReplaceList(registryYear, kind, entries, fingerprint); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("imported %d %s entries for %d\n", len(entries), kind, registryYear)
		return nil
	}
	return outputJSON(struct {
		Status  string `json:"status"`
		Entries int    `json:"entries"`
	}{Status: "imported", Entries: len(entries)})
}

func runRegistryInfo(cmd *cobra.Command, args []string) error {
	path := config.RegistryDBPath()
	if _, err := os.Stat(path); err != nil {
		exitWithError(ExitConfigError, "registry cache not found at %s", path)
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

	type listInfo struct {
		Year    int                `json:"year"`
		Kind    uefiscdi.ScoreKind `json:"kind"`
		Entries int                `json:"entries"`
	}
	byList := make(map[listInfo]int)
	for _, e := range entries {
		key := listInfo{Year: e.Year, Kind: e.Kind}
		byList[key]++
	}

	var lists []listInfo
	for key, n := range byList {
		key.Entries = n
		lists = append(lists, key)
	}
	sort.Slice(lists, func(i, j int) bool {
		if lists[i].Year != lists[j].Year {
			return lists[i].Year < lists[j].Year
		}
		return lists[i].Kind < lists[j].Kind
	})

	if humanOutput {
		outputHuman("registry cache: %s (%d entries)\n", path, len(entries))
		for _, l := range lists {
			outputHuman("  %s/%d: %d entries\n", l.Kind, l.Year, l.Entries)
		}
		return nil
	}
	return outputJSON(struct {
		Path    string     `json:"path"`
		Entries int        `json:"entries"`
		Lists   []listInfo `json:"lists"`
	}{Path: path, Entries: len(entries), Lists: lists})
}
