package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	cveanalyzer "github.com/satwikbh/CveAnalyzer"
	"github.com/viant/sqlite-vec/vector"
)

// defaultSearchLimit is the top-K used when SearchOptions.Limit is zero.
const defaultSearchLimit = 10

// Compile-time interface verification.
var _ cveanalyzer.RecordService = (*RecordService)(nil)

// RecordService implements cveanalyzer.RecordService using SQLite. Exact
// lookups run as primary-key filters; similarity search decodes the stored
// embedding BLOBs and ranks candidates by cosine similarity.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateRecords inserts records in a batch. Every record is validated before
// any write happens, so a malformed embedding aborts the whole batch without
// touching the store.
func (s *RecordService) CreateRecords(ctx context.Context, records []*cveanalyzer.CVERecord) error {
	if len(records) == 0 {
		return nil
	}

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return err
		}
		if len(rec.Embedding) != cveanalyzer.EmbeddingDim {
			return cveanalyzer.Errorf(cveanalyzer.EINVALID,
				"embedding dimension mismatch for %s: expected %d, got %d",
				rec.CVEID, cveanalyzer.EmbeddingDim, len(rec.Embedding))
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, rec := range records {
		rec.ContentHash = hashContent(rec.Description)

		refs, err := json.Marshal(rec.References)
		if err != nil {
			return fmt.Errorf("failed to marshal references for %s: %w", rec.CVEID, err)
		}

		blob, err := vector.EncodeEmbedding(rec.Embedding)
		if err != nil {
			return fmt.Errorf("failed to encode embedding for %s: %w", rec.CVEID, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO cves (cve_id, cve_assigner, cve_description, cve_published_date,
				cve_impact_score, cve_severity, cve_cwe, cve_references, content_hash, cve_embedding)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(cve_id) DO UPDATE SET
				cve_assigner = excluded.cve_assigner,
				cve_description = excluded.cve_description,
				cve_published_date = excluded.cve_published_date,
				cve_impact_score = excluded.cve_impact_score,
				cve_severity = excluded.cve_severity,
				cve_cwe = excluded.cve_cwe,
				cve_references = excluded.cve_references,
				content_hash = excluded.content_hash,
				cve_embedding = excluded.cve_embedding
		`, rec.CVEID, rec.Assigner, rec.Description, rec.PublishedDate,
			rec.ImpactScore, rec.Severity, rec.CWE, string(refs), rec.ContentHash, blob)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// recordColumns is the fixed projection used by FindRecords. The embedding
// BLOB is deliberately excluded; only SearchRecords reads it.
const recordColumns = "cve_id, cve_assigner, cve_description, cve_published_date, cve_impact_score, cve_severity, cve_cwe, cve_references, content_hash"

// FindRecords retrieves records matching the filter in rowid order, which is
// the store's stable ordering for duplicate-free primary keys.
func (s *RecordService) FindRecords(ctx context.Context, filter cveanalyzer.RecordFilter) ([]*cveanalyzer.CVERecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + recordColumns + " FROM cves WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND cve_id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Severity != nil {
		query.WriteString(" AND cve_severity = ?")
		args = append(args, *filter.Severity)
	}
	if filter.CWEPrefix != nil {
		query.WriteString(" AND cve_cwe LIKE ?")
		args = append(args, *filter.CWEPrefix+"%")
	}

	query.WriteString(" ORDER BY rowid ASC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*cveanalyzer.CVERecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// SearchRecords ranks stored records by cosine similarity to the query
// embedding, best match first. Optional severity and CWE-prefix filters
// narrow the candidate set in SQL before scoring.
func (s *RecordService) SearchRecords(ctx context.Context, embedding []float32, opts cveanalyzer.SearchOptions) ([]cveanalyzer.SearchResult, error) {
	if len(embedding) != cveanalyzer.EmbeddingDim {
		return nil, cveanalyzer.Errorf(cveanalyzer.EINVALID,
			"query embedding dimension mismatch: expected %d, got %d",
			cveanalyzer.EmbeddingDim, len(embedding))
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + recordColumns + ", cve_embedding FROM cves WHERE cve_embedding IS NOT NULL")

	if opts.Severity != "" {
		query.WriteString(" AND cve_severity = ?")
		args = append(args, strings.ToUpper(opts.Severity))
	}
	if opts.CWEPrefix != "" {
		query.WriteString(" AND cve_cwe LIKE ?")
		args = append(args, opts.CWEPrefix+"%")
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []cveanalyzer.SearchResult
	for rows.Next() {
		rec, blob, err := scanRecordWithEmbedding(rows)
		if err != nil {
			return nil, err
		}

		vec, err := vector.DecodeEmbedding(blob)
		if err != nil {
			return nil, fmt.Errorf("failed to decode embedding for %s: %w", rec.CVEID, err)
		}
		rec.Embedding = vec

		score, err := vector.CosineSimilarity(embedding, vec)
		if err != nil {
			// Rows with a stale dimensionality are unrankable; skip them.
			continue
		}

		results = append(results, cveanalyzer.SearchResult{Record: rec, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// DeleteAllRecords removes every record from the store.
func (s *RecordService) DeleteAllRecords(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM cves")
	return err
}

// CountRecords returns the number of stored records.
func (s *RecordService) CountRecords(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cves").Scan(&count)
	return count, err
}

// scanner matches both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*cveanalyzer.CVERecord, error) {
	var rec cveanalyzer.CVERecord
	var impactScore sql.NullFloat64
	var refs string

	if err := sc.Scan(&rec.CVEID, &rec.Assigner, &rec.Description, &rec.PublishedDate,
		&impactScore, &rec.Severity, &rec.CWE, &refs, &rec.ContentHash); err != nil {
		return nil, err
	}

	if impactScore.Valid {
		rec.ImpactScore = &impactScore.Float64
	}
	if err := json.Unmarshal([]byte(refs), &rec.References); err != nil {
		return nil, fmt.Errorf("failed to parse references for %s: %w", rec.CVEID, err)
	}

	return &rec, nil
}

func scanRecordWithEmbedding(sc scanner) (*cveanalyzer.CVERecord, []byte, error) {
	var rec cveanalyzer.CVERecord
	var impactScore sql.NullFloat64
	var refs string
	var blob []byte

	if err := sc.Scan(&rec.CVEID, &rec.Assigner, &rec.Description, &rec.PublishedDate,
		&impactScore, &rec.Severity, &rec.CWE, &refs, &rec.ContentHash, &blob); err != nil {
		return nil, nil, err
	}

	if impactScore.Valid {
		rec.ImpactScore = &impactScore.Float64
	}
	if err := json.Unmarshal([]byte(refs), &rec.References); err != nil {
		return nil, nil, fmt.Errorf("failed to parse references for %s: %w", rec.CVEID, err)
	}

	return &rec, blob, nil
}
