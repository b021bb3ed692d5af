package cveanalyzer

import "context"

// Embedder turns free text into fixed-length numeric vectors. Results are
// deterministic for the same text within a session.
type Embedder interface {
	// Embed returns the embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one embedding per input text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
