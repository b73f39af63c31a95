package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// ErrNoData is returned when a source cannot be fetched and no cached copy
// exists. A mandatory source failing this way aborts the whole run.
var ErrNoData = errors.New("no live data and no cached copy")

const userAgent = "animeapi-generator/3.0 (+https://github.com/nattadasu/animeApi)"

// Downloader fetches JSON payloads and keeps a cached copy on disk. A failed
// fetch falls back to the cached copy so one flaky upstream does not abort
// the batch; the caller decides whether stale data is acceptable.
type Downloader struct {
	client *http.Client
	rawDir string
	logger *zap.Logger
}

// NewDownloader creates a downloader caching payloads under rawDir.
func NewDownloader(rawDir string, logger *zap.Logger) *Downloader {
	return &Downloader{
		client: &http.Client{Timeout: 90 * time.Second},
		rawDir: rawDir,
		logger: logger,
	}
}

// JSON fetches url, decodes it into out, and refreshes the cache file named
// name.json. On any fetch or decode failure it loads the cached copy
// instead. Both failing yields ErrNoData.
func (d *Downloader) JSON(ctx context.Context, url, name string, out any) error {
	body, err := d.get(ctx, url)
	if err == nil {
		err = json.Unmarshal(body, out)
		if err == nil {
			if werr := d.writeCache(name, body); werr != nil {
				d.logger.Warn("Failed to refresh cache", zap.String("source", name), zap.Error(werr))
			}
			return nil
		}
	}

	d.logger.Warn("Falling back to cached copy",
		zap.String("source", name),
		zap.String("url", url),
		zap.Error(err),
	)
	return d.Cached(name, out)
}

// Cached loads the cached copy of a source without touching the network.
func (d *Downloader) Cached(name string, out any) error {
	raw, err := os.ReadFile(d.cachePath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("source %s: %w", name, ErrNoData)
		}
		return fmt.Errorf("read cache for %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode cache for %s: %w", name, err)
	}
	return nil
}

// SaveRaw writes an arbitrary document into the raw cache, for adapters that
// assemble their payload from multiple requests (scrapers, merged indexes).
func (d *Downloader) SaveRaw(name string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return d.writeCache(name, raw)
}

func (d *Downloader) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

func (d *Downloader) writeCache(name string, raw []byte) error {
	if err := os.MkdirAll(d.rawDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(d.cachePath(name), raw, 0o644)
}

func (d *Downloader) cachePath(name string) string {
	return filepath.Join(d.rawDir, name+".json")
}
