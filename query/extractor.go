package query

import (
	"context"
	"encoding/json"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

// extractionTemperature keeps structured extraction near-deterministic.
const extractionTemperature = 0.2

// Extraction is the structured result of intent extraction.
type Extraction struct {
	CVEIDs []string
	Intent cveanalyzer.Intent
}

// Extractor parses a user query into candidate CVE identifiers and a coarse
// intent label using a hosted LLM.
type Extractor struct {
	Completer cveanalyzer.Completer
}

// Extract sends the query to the LLM wrapped in a strict JSON-only template
// and parses the response. Any call or parse failure degrades to an empty
// extraction with general intent; extraction never fails the pipeline.
func (e *Extractor) Extract(ctx context.Context, query string) Extraction {
	raw, err := e.Completer.Complete(ctx, extractionPrompt(query), extractionTemperature)
	if err != nil {
		return Extraction{Intent: cveanalyzer.IntentGeneral}
	}
	return ParseExtraction(raw)
}

// extractionPayload tolerates the shapes models actually emit: cve_id as an
// array of strings and nulls, or as a single bare string.
type extractionPayload struct {
	CVEID  json.RawMessage `json:"cve_id"`
	Intent string          `json:"intent"`
}

// ParseExtraction parses a raw LLM response into an Extraction. Malformed
// JSON, markdown-fenced output, and conversational preambles are tolerated;
// anything unparseable degrades to {nil, general}.
func ParseExtraction(raw string) Extraction {
	degraded := Extraction{Intent: cveanalyzer.IntentGeneral}

	var payload extractionPayload
	if err := json.Unmarshal([]byte(salvageJSON(raw)), &payload); err != nil {
		return degraded
	}

	return Extraction{
		CVEIDs: parseCVEIDs(payload.CVEID),
		Intent: cveanalyzer.ParseIntent(payload.Intent),
	}
}

// parseCVEIDs decodes the cve_id field, normalizing a bare string into a
// one-element slice and dropping nulls and empty strings.
func parseCVEIDs(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var many []*string
	if err := json.Unmarshal(raw, &many); err == nil {
		var ids []string
		for _, id := range many {
			if id != nil && *id != "" {
				ids = append(ids, *id)
			}
		}
		return ids
	}

	var one string
	if err := json.Unmarshal(raw, &one); err == nil && one != "" {
		return []string{one}
	}

	return nil
}
