package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
	"github.com/satwikbh/CveAnalyzer/bloom"
)

const (
	// defaultBatchSize bounds how many texts go to the embedder per call.
	defaultBatchSize = 64

	// defaultChunkSize bounds how many records go to the store per insert.
	defaultChunkSize = 500

	// expectedRecordsPerYear sizes the dedup filter.
	expectedRecordsPerYear = 30000
)

// Ingestor loads NVD feeds into the vector store: parse, dedup, embed in
// batches, insert in retried chunks. Chunk failures are logged and skipped;
// only validation errors abort early.
type Ingestor struct {
	Feeds    cveanalyzer.FeedSource
	Embedder cveanalyzer.Embedder
	Records  cveanalyzer.RecordService
	Logger   *slog.Logger

	BatchSize   int
	ChunkSize   int
	RetryDelays []time.Duration

	seen *bloom.Filter
}

// Result holds the outcome of an ingestion run.
type Result struct {
	Parsed       int
	Duplicates   int
	Embedded     int
	Inserted     int
	FailedChunks int
}

// IngestYears fetches and ingests feeds for each year in order. Fetch and
// parse failures skip the year; the run keeps going so one bad feed file
// cannot sink a multi-year backfill.
func (ing *Ingestor) IngestYears(ctx context.Context, years []int) (*Result, error) {
	total := &Result{}

	for _, year := range years {
		data, err := ing.Feeds.FetchYear(ctx, year)
		if err != nil {
			if ctx.Err() != nil {
				return total, ctx.Err()
			}
			ing.logger().Error("feed fetch failed, skipping year", "year", year, "err", err)
			continue
		}

		res, err := ing.IngestFeed(ctx, data)
		if err != nil {
			if ctx.Err() != nil {
				return total, ctx.Err()
			}
			ing.logger().Error("feed ingest failed, skipping year", "year", year, "err", err)
			continue
		}

		total.Parsed += res.Parsed
		total.Duplicates += res.Duplicates
		total.Embedded += res.Embedded
		total.Inserted += res.Inserted
		total.FailedChunks += res.FailedChunks

		ing.logger().Info("year ingested", "year", year, "records", res.Inserted, "failed_chunks", res.FailedChunks)
	}

	return total, nil
}

// IngestFeed ingests a single raw feed file.
func (ing *Ingestor) IngestFeed(ctx context.Context, data []byte) (*Result, error) {
	parsed, err := ParseFeed(data)
	if err != nil {
		return nil, err
	}

	res := &Result{Parsed: len(parsed)}

	// Modified-feed files repeat identifiers already seen in yearly feeds;
	// drop repeats across the whole run.
	if ing.seen == nil {
		// Sized for a full 2014+ backfill in one run.
		ing.seen = bloom.NewFilter(expectedRecordsPerYear*12, 1e-6)
	}
	fresh := parsed[:0]
	for _, p := range parsed {
		if ing.seen.Seen(p.Record.CVEID) {
			res.Duplicates++
			continue
		}
		fresh = append(fresh, p)
	}
	if res.Duplicates > 0 {
		ing.logger().Info("duplicate identifiers skipped",
			"count", res.Duplicates,
			"unique_total", ing.seen.EstimatedCount(),
		)
	}

	embedded, err := ing.embedAll(ctx, fresh)
	if err != nil {
		return res, err
	}
	res.Embedded = len(embedded)

	chunkSize := ing.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	delays := ing.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	for i := 0; i < len(embedded); i += chunkSize {
		end := min(i+chunkSize, len(embedded))
		chunk := embedded[i:end]

		if err := insertWithRetry(ctx, ing.Records.CreateRecords, chunk, delays); err != nil {
			if cveanalyzer.ErrorCode(err) == cveanalyzer.EINVALID {
				return res, err
			}
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			ing.logger().Error("chunk insert failed after retries", "chunk", i/chunkSize+1, "size", len(chunk), "err", err)
			res.FailedChunks++
			continue
		}
		res.Inserted += len(chunk)
	}

	return res, nil
}

// embedAll embeds records in batches, attaching vectors in input order.
// A failed batch is logged and dropped; embedding errors are transient and
// must not sink the rest of the feed.
func (ing *Ingestor) embedAll(ctx context.Context, parsed []ParsedRecord) ([]*cveanalyzer.CVERecord, error) {
	batchSize := ing.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	var records []*cveanalyzer.CVERecord
	for i := 0; i < len(parsed); i += batchSize {
		end := min(i+batchSize, len(parsed))
		batch := parsed[i:end]

		texts := make([]string, len(batch))
		for j, p := range batch {
			texts[j] = p.EmbedText
		}

		vecs, err := ing.Embedder.EmbedBatch(ctx, texts)
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			ing.logger().Error("embedding batch failed, skipping", "batch", i/batchSize+1, "size", len(batch), "err", err)
			continue
		}
		if len(vecs) != len(batch) {
			return records, fmt.Errorf("embedder returned %d vectors for %d texts", len(vecs), len(batch))
		}

		for j, p := range batch {
			p.Record.Embedding = vecs[j]
			records = append(records, p.Record)
		}
	}

	return records, nil
}

func (ing *Ingestor) logger() *slog.Logger {
	if ing.Logger != nil {
		return ing.Logger
	}
	return slog.Default()
}
