package mock

import (
	"context"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

var _ cveanalyzer.Completer = (*Completer)(nil)

// Completer is a mock implementation of cveanalyzer.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string, temperature float32) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	return c.CompleteFn(ctx, prompt, temperature)
}
