package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/llehouerou/reel/internal/media"
)

// ErrUnsupportedScheme is returned for locators that are neither local
// paths nor http(s) URLs.
var ErrUnsupportedScheme = errors.New("unsupported scheme")

// Asset is a media source resolved to a local file.
type Asset struct {
	*media.BaseAsset

	client *http.Client
	tmpDir string

	fetchMu sync.Mutex

	mu   sync.Mutex
	path string
}

func newAsset(ctx context.Context, locator *url.URL, client *http.Client, tmpDir string) *Asset {
	a := &Asset{client: client, tmpDir: tmpDir}
	a.BaseAsset = media.NewBaseAsset(ctx, locator, a.resolve)
	return a
}

// Path returns the local file backing the asset, or "" before it resolved.
func (a *Asset) Path() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.path
}

func (a *Asset) resolve(ctx context.Context, key media.Key) error {
	switch key {
	case media.KeyPlayable:
		path, err := a.fetch(ctx)
		if err != nil {
			return err
		}
		if err := probe(path); err != nil {
			return err
		}
		a.mu.Lock()
		a.path = path
		a.mu.Unlock()
		return nil
	case media.KeyHasProtectedContent:
		// Decodable local media is never protected; the key only needs
		// a fetched source.
		path, err := a.fetch(ctx)
		if err != nil {
			return err
		}
		_, err = os.Stat(path)
		return err
	default:
		return fmt.Errorf("unknown key %q", key)
	}
}

// fetch returns a local path for the locator, downloading remote sources
// once.
func (a *Asset) fetch(ctx context.Context) (string, error) {
	a.fetchMu.Lock()
	defer a.fetchMu.Unlock()

	a.mu.Lock()
	path := a.path
	a.mu.Unlock()
	if path != "" {
		return path, nil
	}

	u := a.Locator()
	switch strings.ToLower(u.Scheme) {
	case "", "file":
		return u.Path, nil
	case "http", "https":
		path, err := download(ctx, a.client, u, a.tmpDir)
		if err != nil {
			return "", err
		}
		a.mu.Lock()
		a.path = path
		a.mu.Unlock()
		return path, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

// download copies u into a temp file under dir, keeping the URL extension
// so the decoder can be chosen from it.
func download(ctx context.Context, client *http.Client, u *url.URL, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: %s", u.Redacted(), resp.Status)
	}

	f, err := os.CreateTemp(dir, "source-*"+strings.ToLower(filepath.Ext(u.Path)))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("download %s: %w", u.Redacted(), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
