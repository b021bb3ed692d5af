// Package fs provides file-based caching of downloaded CVE feed files.
package fs

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

// YearFilename returns the on-disk name for a cached yearly feed.
// Feeds are stored gzip-compressed, matching how NVD publishes them.
func YearFilename(year int) string {
	return fmt.Sprintf("nvdcve-1.1-%d.json.gz", year)
}

// Ensure FeedStore implements cveanalyzer.FeedSource at compile time.
var _ cveanalyzer.FeedSource = (*FeedStore)(nil)

// FeedStore reads and writes yearly feed files in a local directory.
// It lets a fetch run populate a cache once and ingest runs replay it
// without touching the network.
type FeedStore struct {
	dir string
}

// NewFeedStore creates a FeedStore rooted at dir.
func NewFeedStore(dir string) *FeedStore {
	return &FeedStore{dir: dir}
}

// Dir returns the cache directory.
func (s *FeedStore) Dir() string {
	return s.dir
}

// FetchYear reads and decompresses the cached feed file for the given year.
func (s *FeedStore) FetchYear(ctx context.Context, year int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, YearFilename(year))
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cveanalyzer.Errorf(cveanalyzer.ENOTFOUND, "no cached feed for year %d", year)
		}
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decompressing cached feed for year %d: %w", year, err)
	}
	defer gz.Close()

	return io.ReadAll(gz)
}

// SaveYear writes raw feed JSON to the cache, gzip-compressed.
// The write goes to a temporary file first and is renamed into place so a
// crashed fetch never leaves a truncated feed behind.
func (s *FeedStore) SaveYear(ctx context.Context, year int, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}

	final := filepath.Join(s.dir, YearFilename(year))
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, final)
}

// Years lists the years with cached feed files, in directory order.
func (s *FeedStore) Years() ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var years []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		var year int
		if _, err := fmt.Sscanf(e.Name(), "nvdcve-1.1-%d.json.gz", &year); err == nil {
			years = append(years, year)
		}
	}
	return years, nil
}
