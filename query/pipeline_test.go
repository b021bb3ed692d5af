package query_test

import (
	"context"
	"strings"
	"testing"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
	"github.com/satwikbh/CveAnalyzer/mock"
	"github.com/satwikbh/CveAnalyzer/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipelineFixture wires a Pipeline against an in-memory record set. The
// completer answers extraction prompts with the provided JSON and every other
// prompt with canned bullet text.
func pipelineFixture(extractionJSON string, stored map[string]*cveanalyzer.CVERecord) *query.Pipeline {
	completer := &mock.Completer{
		CompleteFn: func(_ context.Context, prompt string, _ float32) (string, error) {
			if strings.Contains(prompt, "JSON-only") {
				return extractionJSON, nil
			}
			return "- Apply the vendor patch", nil
		},
	}
	records := &mock.RecordService{
		FindRecordsFn: func(_ context.Context, filter cveanalyzer.RecordFilter) ([]*cveanalyzer.CVERecord, error) {
			if filter.ID != nil {
				if rec, ok := stored[*filter.ID]; ok {
					return []*cveanalyzer.CVERecord{rec}, nil
				}
			}
			return nil, nil
		},
		SearchRecordsFn: func(context.Context, []float32, cveanalyzer.SearchOptions) ([]cveanalyzer.SearchResult, error) {
			return nil, nil
		},
	}
	embedder := &mock.Embedder{
		EmbedFn: func(context.Context, string) ([]float32, error) {
			return make([]float32, cveanalyzer.EmbeddingDim), nil
		},
	}

	extractor := &query.Extractor{Completer: completer}
	return &query.Pipeline{
		Extractor: extractor,
		Resolver:  &query.Resolver{Records: records, Embedder: embedder, Extractor: extractor, TopK: 10},
		Responder: &query.Responder{Completer: completer},
	}
}

func TestPipeline_Query(t *testing.T) {
	t.Parallel()

	t.Run("present identifier yields heading and bullet text", func(t *testing.T) {
		t.Parallel()

		p := pipelineFixture(
			`{"cve_id": ["CVE-2023-1234"], "intent": "summary"}`,
			map[string]*cveanalyzer.CVERecord{
				"CVE-2023-1234": {CVEID: "CVE-2023-1234", Description: "A bug."},
			},
		)

		result, err := p.Query(context.Background(), "Summarize CVE-2023-1234")
		require.NoError(t, err)

		assert.Equal(t, []string{"CVE-2023-1234"}, result.CVEIDs)
		assert.Equal(t, cveanalyzer.IntentSummary, result.Intent)
		require.Len(t, result.FinalResults, 1)
		assert.Equal(t, "## CVE-2023-1234\n- Apply the vendor patch", result.FinalResults[0])
	})

	t.Run("absent identifier yields placeholder", func(t *testing.T) {
		t.Parallel()

		p := pipelineFixture(
			`{"cve_id": ["CVE-9999-0000"], "intent": "summary"}`,
			map[string]*cveanalyzer.CVERecord{},
		)

		result, err := p.Query(context.Background(), "Summarize CVE-9999-0000")
		require.NoError(t, err)

		assert.Equal(t, []string{"No data found for CVE-9999-0000"}, result.FinalResults)
	})

	t.Run("mixed identifiers preserve input order", func(t *testing.T) {
		t.Parallel()

		p := pipelineFixture(
			`{"cve_id": ["CVE-2023-1234", "CVE-9999-0000"], "intent": "general"}`,
			map[string]*cveanalyzer.CVERecord{
				"CVE-2023-1234": {CVEID: "CVE-2023-1234", Description: "A bug."},
			},
		)

		result, err := p.Query(context.Background(), "Tell me about CVE-2023-1234 and CVE-9999-0000")
		require.NoError(t, err)

		require.Len(t, result.FinalResults, 2)
		assert.True(t, strings.HasPrefix(result.FinalResults[0], "## CVE-2023-1234\n"))
		assert.Equal(t, "No data found for CVE-9999-0000", result.FinalResults[1])
	})

	t.Run("no extractable identifiers leaves results empty", func(t *testing.T) {
		t.Parallel()

		p := pipelineFixture(
			`{"cve_id": [], "intent": "general"}`,
			map[string]*cveanalyzer.CVERecord{},
		)

		result, err := p.Query(context.Background(), "what is a buffer overflow?")
		require.NoError(t, err)

		assert.Empty(t, result.CVEIDs)
		assert.Empty(t, result.FinalResults)
	})

	t.Run("malformed extraction degrades without error", func(t *testing.T) {
		t.Parallel()

		p := pipelineFixture("sorry, I can't do JSON today", map[string]*cveanalyzer.CVERecord{})

		result, err := p.Query(context.Background(), "Summarize CVE-2023-1234")
		require.NoError(t, err)

		assert.Empty(t, result.CVEIDs)
		assert.Equal(t, cveanalyzer.IntentGeneral, result.Intent)
		assert.Empty(t, result.FinalResults)
	})

	t.Run("empty query is invalid", func(t *testing.T) {
		t.Parallel()

		p := pipelineFixture(`{}`, nil)

		_, err := p.Query(context.Background(), "   ")
		require.Error(t, err)
		assert.Equal(t, cveanalyzer.EINVALID, cveanalyzer.ErrorCode(err))
	})

	t.Run("state carries the original query", func(t *testing.T) {
		t.Parallel()

		p := pipelineFixture(`{"cve_id": [], "intent": "general"}`, nil)

		result, err := p.Query(context.Background(), "anything at all")
		require.NoError(t, err)
		assert.Equal(t, "anything at all", result.Query)
	})
}
