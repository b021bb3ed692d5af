package main_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	main "github.com/satwikbh/CveAnalyzer/cmd/cveanalyzer"
	"github.com/satwikbh/CveAnalyzer/fs"
	"github.com/satwikbh/CveAnalyzer/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("downloads and caches requested years", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var fetched []int
		feeds := &mock.FeedSource{
			FetchYearFn: func(_ context.Context, year int) ([]byte, error) {
				mu.Lock()
				fetched = append(fetched, year)
				mu.Unlock()
				return []byte(`{"CVE_Items": []}`), nil
			},
		}

		store := fs.NewFeedStore(t.TempDir())
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Feeds:  feeds,
			Store:  store,
		}

		cmd := &main.FetchCmd{Years: []int{2022, 2023}, Concurrency: 2}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.ElementsMatch(t, []int{2022, 2023}, fetched)
		assert.Contains(t, stdout.String(), "Cached 2 feeds")

		years, err := store.Years()
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{2022, 2023}, years)
	})

	t.Run("returns error when a download fails", func(t *testing.T) {
		t.Parallel()

		feeds := &mock.FeedSource{
			FetchYearFn: func(_ context.Context, year int) ([]byte, error) {
				if year == 2023 {
					return nil, errors.New("connection reset")
				}
				return []byte("{}"), nil
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Feeds:  feeds,
			Store:  fs.NewFeedStore(t.TempDir()),
		}

		cmd := &main.FetchCmd{Years: []int{2022, 2023}, Concurrency: 1}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("rejects years before the first feed", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.FetchCmd{Years: []int{1999}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "1999")
	})
}
