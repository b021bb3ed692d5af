package gemini

import (
	"context"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
	"google.golang.org/genai"
)

// DefaultEmbeddingModel produces 768-dim vectors, matching the store schema.
const DefaultEmbeddingModel = "text-embedding-004"

var _ cveanalyzer.Embedder = (*Embedder)(nil)

// Embedder implements cveanalyzer.Embedder using the Gemini embeddings API.
type Embedder struct {
	client *genai.Client
	model  string
}

// NewEmbedder creates a new Embedder. An empty model selects
// DefaultEmbeddingModel.
func NewEmbedder(client *genai.Client, model string) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{client: client, model: model}
}

// Embed returns the embedding for a single text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch returns one embedding per input text, in input order.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	for _, text := range texts {
		if text == "" {
			return nil, cveanalyzer.Errorf(cveanalyzer.EINVALID, "text required")
		}
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, "user")
	}

	dim := int32(cveanalyzer.EmbeddingDim)
	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
		OutputDimensionality: &dim,
	})
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, cveanalyzer.Errorf(cveanalyzer.EINTERNAL,
			"gemini returned %d embeddings for %d texts", embeddingCount(result), len(texts))
	}

	vecs := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		if emb == nil || len(emb.Values) != cveanalyzer.EmbeddingDim {
			return nil, cveanalyzer.Errorf(cveanalyzer.EINTERNAL,
				"unexpected embedding dimension at index %d", i)
		}
		vecs[i] = emb.Values
	}

	return vecs, nil
}

func embeddingCount(result *genai.EmbedContentResponse) int {
	if result == nil {
		return 0
	}
	return len(result.Embeddings)
}
