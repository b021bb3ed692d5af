package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

// Compile-time interface verification.
var _ cveanalyzer.QueryService = (*Pipeline)(nil)

// Pipeline orchestrates the two-stage query flow: parse the query once, then
// resolve and respond per extracted identifier. Stages run sequentially over
// one QueryResult; transitions are unconditional because every stage handles
// its own failures internally.
type Pipeline struct {
	Extractor *Extractor
	Resolver  *Resolver
	Responder *Responder

	// Logger, if set, receives per-invocation progress events.
	Logger *slog.Logger
}

// Query runs the full pipeline for a single user query. FinalResults gets
// exactly one entry per extracted identifier, in extraction order: either a
// rendered answer prefixed with a markdown heading, or a "No data found"
// placeholder. Query-time failures never surface as errors.
func (p *Pipeline) Query(ctx context.Context, q string) (*cveanalyzer.QueryResult, error) {
	if strings.TrimSpace(q) == "" {
		return nil, cveanalyzer.Errorf(cveanalyzer.EINVALID, "query required")
	}

	invocationID := uuid.New().String()
	begin := time.Now()

	state := &cveanalyzer.QueryResult{Query: q}

	// Stage 1: parse. cve_ids and intent are set once and never re-derived
	// within this invocation.
	extraction := p.Extractor.Extract(ctx, q)
	state.CVEIDs = extraction.CVEIDs
	state.Intent = extraction.Intent

	if p.Logger != nil {
		p.Logger.Info("query parsed",
			"invocation", invocationID,
			"intent", string(state.Intent),
			"cve_ids", len(state.CVEIDs),
		)
	}

	// Stage 2: resolve and respond, in input order.
	for _, cveID := range state.CVEIDs {
		record := p.Resolver.Resolve(ctx, cveID, state.Intent, q)
		if record == nil {
			state.FinalResults = append(state.FinalResults, fmt.Sprintf("No data found for %s", cveID))
			continue
		}

		// The heading carries the identifier the user asked about, which can
		// differ from the resolved record's id on the fallback path.
		text := p.Responder.Respond(ctx, record, state.Intent)
		state.FinalResults = append(state.FinalResults, fmt.Sprintf("## %s\n%s", cveID, text))
	}

	if p.Logger != nil {
		p.Logger.Info("query completed",
			"invocation", invocationID,
			"results", len(state.FinalResults),
			"duration", time.Since(begin),
		)
	}

	return state, nil
}
