package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
	main "github.com/satwikbh/CveAnalyzer/cmd/cveanalyzer"
	"github.com/satwikbh/CveAnalyzer/ingest"
	"github.com/satwikbh/CveAnalyzer/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIngestor(feeds cveanalyzer.FeedSource, records cveanalyzer.RecordService) *ingest.Ingestor {
	return &ingest.Ingestor{
		Feeds: feeds,
		Embedder: &mock.Embedder{
			EmbedBatchFn: func(_ context.Context, texts []string) ([][]float32, error) {
				vecs := make([][]float32, len(texts))
				for i := range texts {
					vecs[i] = make([]float32, cveanalyzer.EmbeddingDim)
				}
				return vecs, nil
			},
		},
		Records:     records,
		RetryDelays: []time.Duration{0},
	}
}

func TestIngestCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("ingests requested years and prints a summary", func(t *testing.T) {
		t.Parallel()

		feeds := &mock.FeedSource{
			FetchYearFn: func(_ context.Context, year int) ([]byte, error) {
				return []byte(`{
					"CVE_Items": [{
						"cve": {
							"CVE_data_meta": {"ID": "CVE-2023-1234", "ASSIGNER": "cve@mitre.org"},
							"problemtype": {"problemtype_data": []},
							"references": {"reference_data": []},
							"description": {"description_data": [{"lang": "en", "value": "A bug."}]}
						},
						"impact": {},
						"publishedDate": "2023-01-01T00:00Z"
					}]
				}`), nil
			},
		}

		var inserted int
		records := &mock.RecordService{
			CreateRecordsFn: func(_ context.Context, recs []*cveanalyzer.CVERecord) error {
				inserted += len(recs)
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Ingestor: testIngestor(feeds, records),
		}

		cmd := &main.IngestCmd{Years: []int{2023}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 1, inserted)
		assert.Contains(t, stdout.String(), "Parsed 1 records")
		assert.Contains(t, stdout.String(), "Indexed 1 records")
	})

	t.Run("rejects years before the first feed", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.IngestCmd{Years: []int{1990}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestClearCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires force flag", func(t *testing.T) {
		t.Parallel()

		deleted := false
		records := &mock.RecordService{
			DeleteAllRecordsFn: func(context.Context) error {
				deleted = true
				return nil
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Records: records,
		}

		cmd := &main.ClearCmd{}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.False(t, deleted)
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("deletes all records with force", func(t *testing.T) {
		t.Parallel()

		deleted := false
		records := &mock.RecordService{
			DeleteAllRecordsFn: func(context.Context) error {
				deleted = true
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Records: records,
		}

		cmd := &main.ClearCmd{Force: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Contains(t, stdout.String(), "Deleted all indexed records")
	})
}

func TestStatsCmd_Run(t *testing.T) {
	t.Parallel()

	records := &mock.RecordService{
		CountRecordsFn: func(context.Context) (int, error) {
			return 42, nil
		},
	}

	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  stdout,
		Stderr:  &bytes.Buffer{},
		Records: records,
	}

	cmd := &main.StatsCmd{}
	err := cmd.Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Indexed records: 42")
}
