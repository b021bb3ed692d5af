package main

import (
	"fmt"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

// Run executes the clear command.
func (c *ClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return cveanalyzer.Errorf(cveanalyzer.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Records.DeleteAllRecords(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cveanalyzer.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Deleted all indexed records")
	return nil
}
