// internal/resource/resource.go
//
// Fetches word lists and hint tables from a location string:
//   - "http://..." / "https://..."  → GET with the caller's context
//   - "embed:<name>" or ""           → file embedded in the assets package
//   - anything else                  → local file path
package resource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/robalobadob/qalat/assets"
)

const embedPrefix = "embed:"

// Fetcher retrieves the bytes behind a location.
type Fetcher struct {
	Client  *http.Client
	Timeout time.Duration
}

// New returns a Fetcher with a per-request timeout.
func New(timeout time.Duration) *Fetcher {
	return &Fetcher{Client: http.DefaultClient, Timeout: timeout}
}

// Embedded returns the location string for an embedded asset.
func Embedded(name string) string { return embedPrefix + name }

// Fetch reads loc. An empty loc falls back to the embedded file def.
func (f *Fetcher) Fetch(ctx context.Context, loc, def string) ([]byte, error) {
	if loc == "" {
		loc = Embedded(def)
	}
	switch {
	case strings.HasPrefix(loc, embedPrefix):
		return assets.Read(strings.TrimPrefix(loc, embedPrefix))
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return f.get(ctx, loc)
	default:
		return os.ReadFile(loc)
	}
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", url, res.StatusCode)
	}
	return io.ReadAll(res.Body)
}
