// Package slog provides logging decorators for the service interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

// Ensure LoggingRecordService implements cveanalyzer.RecordService.
var _ cveanalyzer.RecordService = (*LoggingRecordService)(nil)

// LoggingRecordService wraps a RecordService with operation logging.
type LoggingRecordService struct {
	next   cveanalyzer.RecordService
	logger *slog.Logger
}

// NewLoggingRecordService creates a new LoggingRecordService.
func NewLoggingRecordService(next cveanalyzer.RecordService, logger *slog.Logger) *LoggingRecordService {
	return &LoggingRecordService{next: next, logger: logger}
}

// CreateRecords delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) CreateRecords(ctx context.Context, records []*cveanalyzer.CVERecord) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create records",
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRecords(ctx, records)
}

// FindRecords delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) FindRecords(ctx context.Context, filter cveanalyzer.RecordFilter) (records []*cveanalyzer.CVERecord, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		}
		if filter.ID != nil {
			attrs = append(attrs, "id", *filter.ID)
		}
		s.logger.Info("find records", attrs...)
	}(time.Now())
	return s.next.FindRecords(ctx, filter)
}

// SearchRecords delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) SearchRecords(ctx context.Context, embedding []float32, opts cveanalyzer.SearchOptions) (results []cveanalyzer.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("vector search",
			"limit", opts.Limit,
			"hits", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchRecords(ctx, embedding, opts)
}

// DeleteAllRecords delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) DeleteAllRecords(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete all records",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteAllRecords(ctx)
}

// CountRecords delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) CountRecords(ctx context.Context) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("count records",
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CountRecords(ctx)
}
