package main

import (
	"fmt"
	"strings"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

// Run executes the query command.
func (c *QueryCmd) Run(deps *Dependencies) error {
	question := strings.TrimSpace(strings.Join(c.Question, " "))

	result, err := deps.Queries.Query(deps.Ctx, question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cveanalyzer.ErrorMessage(err))
		return err
	}

	if len(result.FinalResults) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, strings.Join(result.FinalResults, "\n\n"))
	return nil
}
