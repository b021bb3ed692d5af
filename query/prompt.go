package query

import (
	"fmt"
	"strings"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

// extractionPrompt wraps a user query in a strict JSON-only instruction
// template for intent extraction.
func extractionPrompt(query string) string {
	return fmt.Sprintf(`You are a JSON-only generator.

Your task:
- Extract multiple CVE IDs (e.g., "CVE-2023-1234") if mentioned.
- Detect user intent: either "remediation", "summary", or "general".

Only respond in the following strict JSON format:
{
  "cve_id": ["CVE-XXXX-YYYY" or null, "CVE-XXXX-YYYY" or null],
  "intent": "remediation" | "summary" | "general"
}

No preamble, no explanation - just the JSON.

User query: %q`, query)
}

// remediationPrompt asks for bullet-point remediation steps from a record
// description. This is the default response prompt.
func remediationPrompt(description string) string {
	return fmt.Sprintf(`You are a cybersecurity expert. Based on the following CVE description, suggest practical remediation steps:

Description:
"""%s"""

Respond in bullet points.`, description)
}

// EnrichmentPrompts generates the labeled prompt templates for a resolved
// record. The Responder selects one by intent; callers can use the rest for
// other enrichment flows (tickets, risk assessments, teaching material).
func EnrichmentPrompts(cveID, description string) []cveanalyzer.PromptSpec {
	cveID = strings.TrimSpace(cveID)
	if cveID == "" {
		cveID = "UNKNOWN_CVE"
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = "No description provided."
	}

	return []cveanalyzer.PromptSpec{
		{
			Intent: "full_summary",
			Prompt: fmt.Sprintf(`You are a cybersecurity analyst.

Based on the CVE below, provide:
1. A 2-3 sentence summary.
2. List of affected systems and components.
3. Likely method of exploitation.
4. Suggested remediations (patch, config, upgrade).
5. Future hardening strategies.

CVE ID: %s
Description: %s`, cveID, description),
		},
		{
			Intent: "root_cause_and_fix",
			Prompt: fmt.Sprintf(`Explain the root cause of the following vulnerability in simple terms, and then provide:
- Potential risk if exploited
- Known exploitation method (if any)
- Recommended fix or mitigation

CVE: %s
Description: %s`, cveID, description),
		},
		{
			Intent: "risk_assessment",
			Prompt: fmt.Sprintf(`You are conducting a risk assessment. Summarize the following CVE with:
- A short abstract
- Severity level (low, medium, high, critical)
- Exploitable conditions
- Systems at risk
- Remediation recommendation

CVE: %s
%s`, cveID, description),
		},
		{
			Intent: "remediation_strategy",
			Prompt: fmt.Sprintf(`Analyze the following vulnerability and propose an effective remediation plan.

Include:
- Immediate remediation steps
- Alternative temporary mitigations
- Long-term hardening guidance

CVE: %s
%s`, cveID, description),
		},
		{
			Intent: "engineering_ticket",
			Prompt: fmt.Sprintf(`Write a security engineering ticket based on the following CVE. The ticket should include:
- Title
- Summary of the issue
- Impacted systems
- Required remediation steps
- Priority (Low/Medium/High/Critical)

CVE: %s
%s`, cveID, description),
		},
		{
			Intent: "educational_summary",
			Prompt: fmt.Sprintf(`Explain the vulnerability below as if you're teaching a junior developer.

Include:
- What caused the vulnerability?
- Why is it dangerous?
- How to prevent it in future code

CVE: %s
%s`, cveID, description),
		},
	}
}

// promptFor selects the response prompt for an intent. Summary and
// remediation intents map to their enrichment templates; everything else
// falls back to the bullet-point remediation prompt.
func promptFor(intent cveanalyzer.Intent, cveID, description string) string {
	var tag string
	switch intent {
	case cveanalyzer.IntentSummary:
		tag = "full_summary"
	case cveanalyzer.IntentRemediation:
		tag = "remediation_strategy"
	default:
		return remediationPrompt(description)
	}

	for _, spec := range EnrichmentPrompts(cveID, description) {
		if spec.Intent == tag {
			return spec.Prompt
		}
	}
	return remediationPrompt(description)
}
