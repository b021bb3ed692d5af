package main

import (
	"fmt"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
	"golang.org/x/sync/errgroup"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	years, err := resolveYears(c.Years)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cveanalyzer.ErrorMessage(err))
		return err
	}

	concurrency := c.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)

	for _, year := range years {
		g.Go(func() error {
			data, err := deps.Feeds.FetchYear(ctx, year)
			if err != nil {
				return fmt.Errorf("year %d: %w", year, err)
			}
			if err := deps.Store.SaveYear(ctx, year, data); err != nil {
				return fmt.Errorf("year %d: %w", year, err)
			}
			fmt.Fprintf(deps.Stdout, "Fetched %d (%d bytes)\n", year, len(data))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cveanalyzer.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Cached %d feeds in %s\n", len(years), deps.Store.Dir())
	return nil
}
