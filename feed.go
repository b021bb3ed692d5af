package cveanalyzer

import "context"

// FeedSource retrieves raw NVD vulnerability feed files.
type FeedSource interface {
	// FetchYear downloads and decompresses the JSON feed for a single year.
	FetchYear(ctx context.Context, year int) ([]byte, error)
}
