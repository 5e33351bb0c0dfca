package seed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"fintrack/internal/core"
)

const maxSeedBytes = 8 << 20 // cap remote payloads at 8MB

// RemoteSource fetches a seed dataset from a JSON document over HTTP.
// Used as an initializer for real mode when no local copy exists; a
// response whose transactions field is not an array counts as absent.
type RemoteSource struct {
	client *http.Client
	url    string
}

func NewRemoteSource(url string) *RemoteSource {
	return &RemoteSource{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    url,
	}
}

// Fetch downloads and decodes the remote dataset. Any transport,
// status or shape problem comes back as an error; the caller falls
// back to the built-in defaults.
func (s *RemoteSource) Fetch(ctx context.Context) (core.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return core.Dataset{}, fmt.Errorf("build seed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return core.Dataset{}, fmt.Errorf("fetch seed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.Dataset{}, fmt.Errorf("fetch seed: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSeedBytes))
	if err != nil {
		return core.Dataset{}, fmt.Errorf("read seed body: %w", err)
	}

	ds, err := core.DecodeDataset(body)
	if err != nil {
		return core.Dataset{}, fmt.Errorf("remote seed: %w", err)
	}
	return ds, nil
}
