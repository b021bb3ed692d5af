package cveanalyzer

import "context"

// Completer generates text from a prompt using a hosted LLM.
type Completer interface {
	// Complete returns the model's text response for the prompt at the
	// given sampling temperature.
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
}
