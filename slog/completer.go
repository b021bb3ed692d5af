package slog

import (
	"context"
	"log/slog"
	"time"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

// Ensure LoggingCompleter implements cveanalyzer.Completer.
var _ cveanalyzer.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with call logging. Prompts are not
// logged, only their sizes, so records and queries stay out of the logs.
type LoggingCompleter struct {
	next   cveanalyzer.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next cveanalyzer.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs the call.
func (c *LoggingCompleter) Complete(ctx context.Context, prompt string, temperature float32) (text string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("llm completion",
			"prompt_len", len(prompt),
			"response_len", len(text),
			"temperature", temperature,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, prompt, temperature)
}

// Ensure LoggingEmbedder implements cveanalyzer.Embedder.
var _ cveanalyzer.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with call logging.
type LoggingEmbedder struct {
	next   cveanalyzer.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next cveanalyzer.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder and logs the call.
func (e *LoggingEmbedder) Embed(ctx context.Context, text string) (vec []float32, err error) {
	defer func(begin time.Time) {
		e.logger.Info("embed text",
			"text_len", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, text)
}

// EmbedBatch delegates to the wrapped embedder and logs the call.
func (e *LoggingEmbedder) EmbedBatch(ctx context.Context, texts []string) (vecs [][]float32, err error) {
	defer func(begin time.Time) {
		e.logger.Info("embed batch",
			"count", len(texts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.EmbedBatch(ctx, texts)
}
