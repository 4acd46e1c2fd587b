// Package fetch downloads the published GPC feed into a local cache.
// The feed host is not always reachable, so a failed download falls
// back to the newest cached copy rather than failing the run.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultTimeout bounds a single feed download. The full feed is a few
// tens of megabytes.
const DefaultTimeout = 5 * time.Minute

// Fetcher downloads feed files into CacheDir.
type Fetcher struct {
	Client   *http.Client
	CacheDir string
}

// New returns a Fetcher caching into dir.
func New(dir string) *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: DefaultTimeout},
		CacheDir: dir,
	}
}

// Fetch downloads rawURL into the cache and returns the local path.
// On a download failure it falls back to the newest cached file, with a
// warning; the download error is returned only when the cache is empty.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := os.MkdirAll(f.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	path, err := f.download(ctx, rawURL)
	if err == nil {
		return path, nil
	}

	cached, cacheErr := f.latestCached()
	if cacheErr != nil {
		return "", fmt.Errorf("download failed (%v) and no cached feed available: %w", err, cacheErr)
	}
	log.WithFields(log.Fields{"error": err, "cached": cached}).Warn("download failed, using cached feed")
	return cached, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get %s: status %s", rawURL, resp.Status)
	}

	dest := filepath.Join(f.CacheDir, cacheName(rawURL))
	tmp, err := os.CreateTemp(f.CacheDir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }() // no-op after rename

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write feed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close feed: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("store feed: %w", err)
	}
	log.WithField("path", dest).Info("feed downloaded")
	return dest, nil
}

// latestCached returns the most recently modified file in the cache.
func (f *Fetcher) latestCached() (string, error) {
	entries, err := os.ReadDir(f.CacheDir)
	if err != nil {
		return "", err
	}
	var newest string
	var newestAt time.Time
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestAt) {
			newest = filepath.Join(f.CacheDir, e.Name())
			newestAt = info.ModTime()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("cache %s is empty", f.CacheDir)
	}
	return newest, nil
}

func cacheName(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if base := filepath.Base(u.Path); base != "." && base != "/" && base != "" {
			return base
		}
	}
	return "gpc_feed.xml"
}
