package cveanalyzer

import "context"

// QueryResult is the state shared by the query pipeline stages. It is created
// at invocation with only Query populated, mutated additively by each stage,
// and returned whole to the caller. A single invocation never shares it
// across goroutines.
type QueryResult struct {
	Query        string   `json:"query"`
	CVEIDs       []string `json:"cveIds"`
	Intent       Intent   `json:"intent"`
	FinalResults []string `json:"finalResults"`
}

// QueryService answers free-text CVE queries.
type QueryService interface {
	// Query runs the full pipeline for a single user query. Query-time
	// failures (LLM formatting, store misses) degrade into placeholder
	// entries in FinalResults rather than errors; an error is returned only
	// for invalid input.
	Query(ctx context.Context, query string) (*QueryResult, error)
}
