package cveanalyzer

import (
	"context"
	"regexp"
)

// EmbeddingDim is the dimensionality of record embeddings. The store rejects
// records whose embedding length differs before any write is attempted.
const EmbeddingDim = 768

// MaxCVEIDLength bounds the primary key column in the store schema.
const MaxCVEIDLength = 20

var cveIDPattern = regexp.MustCompile(`^CVE-\d{4}-\d{4,}$`)

// ValidCVEID reports whether s is a well-formed CVE identifier
// (e.g., "CVE-2023-1234").
func ValidCVEID(s string) bool {
	return len(s) <= MaxCVEIDLength && cveIDPattern.MatchString(s)
}

// CVERecord represents a single vulnerability record in the vector index.
// Records are immutable from the query pipeline's perspective.
type CVERecord struct {
	CVEID         string    `json:"cveId"`
	Assigner      string    `json:"assigner"`
	Description   string    `json:"description"`
	PublishedDate string    `json:"publishedDate"`
	ImpactScore   *float64  `json:"impactScore,omitempty"`
	Severity      string    `json:"severity,omitempty"`
	CWE           string    `json:"cwe"`
	References    []string  `json:"references"`
	ContentHash   string    `json:"contentHash,omitempty"`
	Embedding     []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the record contains invalid fields.
// Embedding dimension is checked here so malformed records are rejected
// before they reach the store.
func (r *CVERecord) Validate() error {
	if r.CVEID == "" {
		return Errorf(EINVALID, "record CVE ID required")
	}
	if !ValidCVEID(r.CVEID) {
		return Errorf(EINVALID, "invalid CVE ID %q", r.CVEID)
	}
	if r.Description == "" {
		return Errorf(EINVALID, "record description required")
	}
	if len(r.Embedding) != 0 && len(r.Embedding) != EmbeddingDim {
		return Errorf(EINVALID, "embedding dimension mismatch for %s: expected %d, got %d",
			r.CVEID, EmbeddingDim, len(r.Embedding))
	}
	return nil
}

// RecordService represents a service for storing and retrieving CVE records.
type RecordService interface {
	// CreateRecords inserts records in a batch. Every record is validated
	// (including embedding dimension) before any write happens; a single
	// invalid record fails the whole batch.
	CreateRecords(ctx context.Context, records []*CVERecord) error

	// FindRecords retrieves records matching the filter in stable store
	// order. An exact CVE-ID lookup is FindRecords with Filter.ID set.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*CVERecord, error)

	// SearchRecords performs approximate nearest-neighbor search over record
	// embeddings using cosine similarity, best match first.
	SearchRecords(ctx context.Context, embedding []float32, opts SearchOptions) ([]SearchResult, error)

	// DeleteAllRecords removes every record from the store.
	DeleteAllRecords(ctx context.Context) error

	// CountRecords returns the number of stored records.
	CountRecords(ctx context.Context) (int, error)
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	ID        *string `json:"id"`
	Severity  *string `json:"severity"`
	CWEPrefix *string `json:"cwePrefix"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SearchOptions configures SearchRecords behavior.
type SearchOptions struct {
	// Maximum number of results to return. Zero means the store default.
	Limit int `json:"limit,omitempty"`

	// Narrow candidates to an exact severity (e.g., "HIGH").
	Severity string `json:"severity,omitempty"`

	// Narrow candidates to CWEs with this prefix (e.g., "CWE-79").
	CWEPrefix string `json:"cwePrefix,omitempty"`
}

// SearchResult represents a similarity search match.
type SearchResult struct {
	Record *CVERecord `json:"record"`
	Score  float64    `json:"score"`
}
