// Package query implements the CVE query pipeline: intent extraction,
// record resolution, and LLM-backed response generation. It coordinates the
// Completer, Embedder, and RecordService interfaces without depending on any
// concrete backend.
package query
