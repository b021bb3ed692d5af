package main

import (
	"fmt"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	years, err := resolveYears(c.Years)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cveanalyzer.ErrorMessage(err))
		return err
	}

	res, err := deps.Ingestor.IngestYears(deps.Ctx, years)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cveanalyzer.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Parsed %d records (%d duplicates skipped)\n", res.Parsed, res.Duplicates)
	fmt.Fprintf(deps.Stdout, "Indexed %d records\n", res.Inserted)
	if res.FailedChunks > 0 {
		fmt.Fprintf(deps.Stderr, "warning: %d chunks failed to insert, see logs\n", res.FailedChunks)
	}
	return nil
}
