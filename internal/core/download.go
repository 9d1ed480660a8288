package core

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Collections lists the published collection names, newest first.
var Collections = []string{"ICORE2026", "CORE2023", "CORE2021", "CORE2020"}

var collections = func() map[string]bool {
	m := make(map[string]bool, len(Collections))
	for _, c := range Collections {
		m[c] = true
	}
	return m
}()

// collectionURL is the portal's CSV export endpoint for one collection.
const collectionURL = "https://portal.core.edu.au/conf-ranks/?search=&by=all&source=%s&sort=atitle&page=1&do=Export"

// LatestCollection returns the most recent published collection name.
func LatestCollection() string {
	return Collections[0]
}

// IsCollection reports whether name is a known collection.
func IsCollection(name string) bool {
	return collections[strings.ToUpper(strings.TrimSpace(name))]
}

// CollectionURL returns the export URL for a collection.
func CollectionURL(collection string) (string, error) {
	if !collections[collection] {
		return "", fmt.Errorf("unknown collection %q", collection)
	}
	return fmt.Sprintf(collectionURL, collection), nil
}

// Downloader fetches collection exports into a cache directory, rate-limited
// so bulk downloads stay polite to the portal.
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

// Fetch downloads a collection export, returning the cached file path. An
// already-cached collection is returned without a request.
func (d *Downloader) Fetch(ctx context.Context, collection string) (string, error) {
	url, err := CollectionURL(collection)
	if err != nil {
		return "", err
	}

	path := filepath.Join(d.dir, strings.ToLower(collection)+".csv")
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
		return "", fmt.Errorf("downloading collection %s: %w", collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading collection %s: unexpected status %s", collection, resp.Status)
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
