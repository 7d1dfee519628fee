package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fetcher retrieves raw schedule documents by reference.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// DocFetcher resolves http(s) references over the network and everything else
// from the local filesystem. Relative references resolve against the location
// of the configuration document: BaseURL when the config came over HTTP,
// BaseDir otherwise.
type DocFetcher struct {
	BaseDir string
	BaseURL string
	Client  *http.Client
}

// NewDocFetcher creates a fetcher with the given timeout for HTTP requests.
func NewDocFetcher(timeout time.Duration) *DocFetcher {
	return &DocFetcher{
		BaseDir: ".",
		Client:  &http.Client{Timeout: timeout},
	}
}

// IsHTTPRef reports whether ref is an absolute http(s) reference.
func IsHTTPRef(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Fetch returns the raw bytes of one document.
func (f *DocFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if IsHTTPRef(ref) {
		return f.fetchHTTP(ctx, ref)
	}
	if f.BaseURL != "" {
		return f.fetchHTTP(ctx, f.BaseURL+ref)
	}
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(f.BaseDir, path)
	}
	return os.ReadFile(path)
}

func (f *DocFetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
