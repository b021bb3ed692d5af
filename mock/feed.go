package mock

import (
	"context"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

var _ cveanalyzer.FeedSource = (*FeedSource)(nil)

// FeedSource is a mock implementation of cveanalyzer.FeedSource.
type FeedSource struct {
	FetchYearFn func(ctx context.Context, year int) ([]byte, error)
}

func (f *FeedSource) FetchYear(ctx context.Context, year int) ([]byte, error) {
	return f.FetchYearFn(ctx, year)
}
