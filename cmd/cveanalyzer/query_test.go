package main_test

import (
	"bytes"
	"context"
	"testing"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
	main "github.com/satwikbh/CveAnalyzer/cmd/cveanalyzer"
	"github.com/satwikbh/CveAnalyzer/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("joins words and prints results", func(t *testing.T) {
		t.Parallel()

		queries := &mock.QueryService{
			QueryFn: func(_ context.Context, q string) (*cveanalyzer.QueryResult, error) {
				assert.Equal(t, "how do I fix CVE-2021-44228", q)
				return &cveanalyzer.QueryResult{
					Query:        q,
					CVEIDs:       []string{"CVE-2021-44228"},
					Intent:       cveanalyzer.IntentRemediation,
					FinalResults: []string{"## CVE-2021-44228\n- Upgrade log4j to 2.17.1"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Queries: queries,
		}

		cmd := &main.QueryCmd{Question: []string{"how", "do", "I", "fix", "CVE-2021-44228"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "## CVE-2021-44228")
		assert.Contains(t, stdout.String(), "Upgrade log4j")
	})

	t.Run("separates multiple results with a blank line", func(t *testing.T) {
		t.Parallel()

		queries := &mock.QueryService{
			QueryFn: func(_ context.Context, q string) (*cveanalyzer.QueryResult, error) {
				return &cveanalyzer.QueryResult{
					FinalResults: []string{"## CVE-2023-0001\nfirst", "No data found for CVE-2023-0002"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Queries: queries,
		}

		cmd := &main.QueryCmd{Question: []string{"compare", "them"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "first\n\nNo data found for CVE-2023-0002")
	})

	t.Run("prints fallback line for empty results", func(t *testing.T) {
		t.Parallel()

		queries := &mock.QueryService{
			QueryFn: func(_ context.Context, q string) (*cveanalyzer.QueryResult, error) {
				return &cveanalyzer.QueryResult{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Queries: queries,
		}

		cmd := &main.QueryCmd{Question: []string{"anything"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No results.")
	})

	t.Run("returns error for blank question", func(t *testing.T) {
		t.Parallel()

		queries := &mock.QueryService{
			QueryFn: func(_ context.Context, q string) (*cveanalyzer.QueryResult, error) {
				return nil, cveanalyzer.Errorf(cveanalyzer.EINVALID, "query must not be empty")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Queries: queries,
		}

		cmd := &main.QueryCmd{Question: []string{"  "}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
		assert.Empty(t, stdout.String())
	})
}
