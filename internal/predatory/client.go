package predatory

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client fetches the published lists, rate-limited so fetching both in one
// run stays polite to the host.
type Client struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient builds a list client. A nil client uses a default with a
// conservative timeout.
func NewClient(client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Publishers fetches and parses the publisher list.
func (c *Client) Publishers(ctx context.Context) ([]Source, error) {
	return c.fetch(ctx, PublisherListURL)
}

// Journals fetches and parses the standalone journal list.
func (c *Client) Journals(ctx context.Context) ([]Source, error) {
	return c.fetch(ctx, JournalListURL)
}

func (c *Client) fetch(ctx context.Context, url string) ([]Source, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}

	sources, err := ParseList(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return sources, nil
}
