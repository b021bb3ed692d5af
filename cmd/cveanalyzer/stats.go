package main

import (
	"fmt"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	count, err := deps.Records.CountRecords(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cveanalyzer.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed records: %d\n", count)
	return nil
}
