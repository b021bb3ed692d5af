package query

import (
	"context"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

// retrievalInstruction prefixes query text before embedding. The ingest path
// embeds record text without it; the asymmetric phrasing is what the
// embedding model expects for retrieval queries.
const retrievalInstruction = "Represent this CVE for retrieval: "

// Resolver maps a candidate CVE identifier to a stored record. The exact
// primary-key path is tried first; vector similarity search over the original
// query text is the fallback, since it pays for an embedding plus an ANN scan.
type Resolver struct {
	Records   cveanalyzer.RecordService
	Embedder  cveanalyzer.Embedder
	Extractor *Extractor

	// TopK bounds the fallback search. Zero means the store default.
	TopK int
}

// Resolve returns the record for cveID, or nil when neither the exact path
// nor the vector fallback finds one. Store and embedding failures degrade to
// nil; query-time resolution never raises.
func (r *Resolver) Resolve(ctx context.Context, cveID string, intent cveanalyzer.Intent, query string) *cveanalyzer.CVERecord {
	records, err := r.Records.FindRecords(ctx, cveanalyzer.RecordFilter{ID: &cveID})
	if err != nil {
		return nil
	}
	if len(records) > 0 {
		// Ties on duplicate ids keep the store's stable ordering.
		return records[0]
	}

	// The fallback runs only on a clean zero-row miss, never on a store error.
	rec, _ := r.SearchFallback(ctx, query, cveanalyzer.SearchOptions{Limit: r.TopK})
	return rec
}

// SearchFallback resolves a record from the free-text query alone: it
// re-derives intent from the full query, embeds the query with the retrieval
// instruction prefix, and returns the top-ranked similarity hit. Severity and
// CWE-prefix filters narrow the candidate set when set. Returns nil when the
// result set is empty or any step fails.
func (r *Resolver) SearchFallback(ctx context.Context, query string, opts cveanalyzer.SearchOptions) (*cveanalyzer.CVERecord, cveanalyzer.Intent) {
	// Intent is re-derived from the original query text here, independently
	// of the pipeline's first stage. This doubles an LLM call per fallback;
	// see DESIGN.md.
	extraction := r.Extractor.Extract(ctx, query)

	vec, err := r.Embedder.Embed(ctx, retrievalInstruction+query)
	if err != nil {
		return nil, extraction.Intent
	}

	results, err := r.Records.SearchRecords(ctx, vec, opts)
	if err != nil || len(results) == 0 {
		return nil, extraction.Intent
	}

	return results[0].Record, extraction.Intent
}
