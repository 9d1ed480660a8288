// Package resolve checks DOIs against the doi.org resolver. Used to verify
// that identifiers taken from exports or PDFs actually resolve before they
// end up in a dossier.
package resolve

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/alexfikl/uvt-scholarly/internal/publication"
)

const (
	// cacheTTL bounds how long a resolution verdict is reused. Registrations
	// do appear and disappear, just not quickly.
	cacheTTL = 24 * time.Hour

	cacheCleanup = time.Hour
)

// Resolver verifies DOI registrations with HEAD requests against doi.org,
// rate-limited and TTL-cached so repeated runs over the same record set do
// not hammer the resolver.
type Resolver struct {
	client  *http.Client
	limiter *rate.Limiter
	cache   *cache.Cache

	// userAgent carries a contact address when configured, as the resolver
	// operators ask of bulk clients.
	userAgent string
}

// NewResolver builds a resolver. A nil client uses a default that does not
// follow redirects: a redirect from doi.org is already proof of
// registration, the landing page itself is irrelevant.
func NewResolver(client *http.Client, mailto string) *Resolver {
	if client == nil {
		client = &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}

	userAgent := "uvt-scholarly/1.0"
	if mailto != "" {
		userAgent = fmt.Sprintf("uvt-scholarly/1.0 (mailto:%s)", mailto)
	}

	return &Resolver{
		client:    client,
		limiter:   rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		cache:     cache.New(cacheTTL, cacheCleanup),
		userAgent: userAgent,
	}
}

// Resolve reports whether the DOI is registered. Results are cached for a
// day; errors (network failures, unexpected statuses) are not cached.
func (r *Resolver) Resolve(ctx context.Context, doi publication.DOI) (bool, error) {
	key := doi.String()
	if verdict, found := r.cache.Get(key); found {
		return verdict.(bool), nil
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, doi.URL(), nil)
	if err != nil {
		return false, fmt.Errorf("building resolver request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("resolving %s: %w", doi, err)
	}
	resp.Body.Close()

	verdict, err := verdictFromStatus(doi, resp.StatusCode)
	if err != nil {
		return false, err
	}

	r.cache.Set(key, verdict, cache.DefaultExpiration)
	return verdict, nil
}

func verdictFromStatus(doi publication.DOI, status int) (bool, error) {
	switch {
	case status >= 200 && status < 400:
		return true, nil
	case status == http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("resolving %s: unexpected status %d", doi, status)
	}
}
