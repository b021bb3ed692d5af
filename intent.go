package cveanalyzer

// Intent classifies what the user wants done with a CVE query.
type Intent string

// The closed set of query intents. Anything unrecognized maps to
// IntentGeneral.
const (
	IntentRemediation Intent = "remediation"
	IntentSummary     Intent = "summary"
	IntentGeneral     Intent = "general"
)

// ParseIntent maps a free-form tag to a known Intent, defaulting to
// IntentGeneral for unrecognized or missing values.
func ParseIntent(s string) Intent {
	switch Intent(s) {
	case IntentRemediation:
		return IntentRemediation
	case IntentSummary:
		return IntentSummary
	default:
		return IntentGeneral
	}
}

// PromptSpec is a labeled prompt template instantiated for a resolved record.
// The Responder selects one by intent when generating enrichment text.
type PromptSpec struct {
	Intent string `json:"intent"`
	Prompt string `json:"prompt"`
}
