package mock

import (
	"context"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

var _ cveanalyzer.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of cveanalyzer.RecordService.
type RecordService struct {
	CreateRecordsFn    func(ctx context.Context, records []*cveanalyzer.CVERecord) error
	FindRecordsFn      func(ctx context.Context, filter cveanalyzer.RecordFilter) ([]*cveanalyzer.CVERecord, error)
	SearchRecordsFn    func(ctx context.Context, embedding []float32, opts cveanalyzer.SearchOptions) ([]cveanalyzer.SearchResult, error)
	DeleteAllRecordsFn func(ctx context.Context) error
	CountRecordsFn     func(ctx context.Context) (int, error)
}

func (s *RecordService) CreateRecords(ctx context.Context, records []*cveanalyzer.CVERecord) error {
	return s.CreateRecordsFn(ctx, records)
}

func (s *RecordService) FindRecords(ctx context.Context, filter cveanalyzer.RecordFilter) ([]*cveanalyzer.CVERecord, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) SearchRecords(ctx context.Context, embedding []float32, opts cveanalyzer.SearchOptions) ([]cveanalyzer.SearchResult, error) {
	return s.SearchRecordsFn(ctx, embedding, opts)
}

func (s *RecordService) DeleteAllRecords(ctx context.Context) error {
	return s.DeleteAllRecordsFn(ctx)
}

func (s *RecordService) CountRecords(ctx context.Context) (int, error) {
	return s.CountRecordsFn(ctx)
}
