package mock

import (
	"context"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

var _ cveanalyzer.QueryService = (*QueryService)(nil)

// QueryService is a mock implementation of cveanalyzer.QueryService.
type QueryService struct {
	QueryFn func(ctx context.Context, query string) (*cveanalyzer.QueryResult, error)
}

func (s *QueryService) Query(ctx context.Context, query string) (*cveanalyzer.QueryResult, error) {
	return s.QueryFn(ctx, query)
}
