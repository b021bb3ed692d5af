package query

import (
	"context"
	"fmt"
	"strings"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

// respondTemperature allows some variation in free-text remediation guidance.
const respondTemperature = 0.3

// Responder produces human-readable enrichment text for a resolved record.
type Responder struct {
	Completer cveanalyzer.Completer
}

// Respond generates enrichment text for the record, selecting the prompt
// template by intent. Call failures degrade to a placeholder string; the
// responder never raises for query-time errors.
func (r *Responder) Respond(ctx context.Context, record *cveanalyzer.CVERecord, intent cveanalyzer.Intent) string {
	prompt := promptFor(intent, record.CVEID, record.Description)

	text, err := r.Completer.Complete(ctx, prompt, respondTemperature)
	if err != nil {
		return degradedResponse(record.CVEID)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return degradedResponse(record.CVEID)
	}
	return text
}

func degradedResponse(cveID string) string {
	return fmt.Sprintf("No remediation guidance available for %s", cveID)
}
