// Package gemini implements the Completer and Embedder interfaces using the
// Google Gemini API.
package gemini

import (
	"context"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
	"google.golang.org/genai"
)

// DefaultModel is the generation model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements cveanalyzer.Completer at compile time.
var _ cveanalyzer.Completer = (*Completer)(nil)

// Completer implements cveanalyzer.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Complete returns the model's text response for the prompt at the given
// sampling temperature.
func (c *Completer) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	if prompt == "" {
		return "", cveanalyzer.Errorf(cveanalyzer.EINVALID, "prompt required")
	}

	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", cveanalyzer.Errorf(cveanalyzer.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}
