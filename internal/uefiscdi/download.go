package uefiscdi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"
)

// listURLs maps list year and score kind to the published file. Mostly the
// last few years, since those are what evaluations and accreditations ask
// for.
var listURLs = map[int]map[ScoreKind]string{
	2025: {
		ScoreAIS: "https://uefiscdi.gov.ro/resource-865528-AIS.JCR2024.iunie2025.xlsx",
		ScoreRIS: "https://uefiscdi.gov.ro/resource-865521-RIS.2024.iunie-2025.xlsx",
		ScoreRIF: "https://uefiscdi.gov.ro/resource-865599-RIF.iunie2025.xlsx",
	},
	2024: {
		ScoreAIS: "https://uefiscdi.gov.ro/resource-861731-AIS.JCR2023.iunie2024.xlsx",
		ScoreRIS: "https://uefiscdi.gov.ro/resource-861773-RIS.2023iunie2024.xlsx",
		ScoreRIF: "https://uefiscdi.gov.ro/resource-861735-FIR.2023iunie2024.xlsx",
	},
	2023: {
		ScoreAIS: "https://uefiscdi.gov.ro/resource-863884-ais_2022.xlsx",
		ScoreRIS: "https://uefiscdi.gov.ro/resource-863882-ris_2022.xlsx",
		ScoreRIF: "https://uefiscdi.gov.ro/resource-863887-rif_2022.xlsx",
	},
	2022: {
		ScoreAIS: "https://uefiscdi.gov.ro/resource-862108-ais.2021.xlsx",
		ScoreRIS: "https://uefiscdi.gov.ro/resource-862102-ris.2021.xlsx",
		ScoreRIF: "https://uefiscdi.gov.ro/resource-862155-rif.2021.xlsx",
	},
	2021: {
		ScoreAIS: "https://uefiscdi.gov.ro/resource-820980-ais.2020.xlsx",
		ScoreRIS: "https://uefiscdi.gov.ro/resource-820984-sri.2020.xlsx",
		ScoreRIF: "https://uefiscdi.gov.ro/resource-820987-rif.2020.xlsx",
	},
	2020: {
		ScoreAIS: "https://uefiscdi.gov.ro/resource-821312-ais2019-iunie2020-.valori.cuartile.xlsx",
		ScoreRIS: "https://uefiscdi.gov.ro/resource-829001-sri.2019.xlsx",
		ScoreRIF: "https://uefiscdi.gov.ro/resource-829003-rif.2019.xlsx",
	},
}

// LatestListYear returns the most recent list year with published files.
func LatestListYear() int {
	latest := 0
	for year := range listURLs {
		if year > latest {
			latest = year
		}
	}
	return latest
}

// ListURL returns the published file URL for a list year and score kind.
func ListURL(year int, kind ScoreKind) (string, error) {
	kinds, ok := listURLs[year]
	if !ok {
		return "", fmt.Errorf("no published lists for year %d", year)
	}
	url, ok := kinds[kind]
	if !ok {
		return "", fmt.Errorf("no %s list for year %d", kind, year)
	}
	return url, nil
}

// Downloader fetches published score list files into a cache directory,
// rate-limited so bulk downloads stay polite to the host.
type Downloader struct {
	client  *http.Client
	limiter *rate.Limiter
	dir     string
}

// NewDownloader builds a downloader caching into dir. A nil client uses a
// default with a conservative timeout.
func NewDownloader(client *http.Client, dir string) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Downloader{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		dir:     dir,
	}
}

// Fetch downloads the score list for the given year and kind, returning the
// cached file path. An already-cached file is returned without a request.
func (d *Downloader) Fetch(ctx context.Context, year int, kind ScoreKind) (string, error) {
	url, err := ListURL(year, kind)
	if err != nil {
		return "", err
	}

	path := filepath.Join(d.dir, fmt.Sprintf("%s-%d%s", kind, year, filepath.Ext(url)))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s list for %d: %w", kind, year, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading %s list for %d: unexpected status %s", kind, year, resp.Status)
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(d.dir, "download-*")
	if err != nil {
		return "", fmt.Errorf("creating cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing cache file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("moving cache file into place: %w", err)
	}
	return path, nil
}
