package query_test

import (
	"context"
	"errors"
	"testing"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
	"github.com/satwikbh/CveAnalyzer/mock"
	"github.com/satwikbh/CveAnalyzer/query"
	"github.com/stretchr/testify/assert"
)

func TestResponder_Respond(t *testing.T) {
	t.Parallel()

	record := &cveanalyzer.CVERecord{
		CVEID:       "CVE-2023-1234",
		Description: "Heap overflow in the widget parser.",
	}

	t.Run("general intent uses the bullet-point remediation prompt", func(t *testing.T) {
		t.Parallel()

		var gotPrompt string
		var gotTemp float32
		completer := &mock.Completer{
			CompleteFn: func(_ context.Context, prompt string, temperature float32) (string, error) {
				gotPrompt = prompt
				gotTemp = temperature
				return "- Patch the widget parser\n- Restrict input sizes", nil
			},
		}

		responder := &query.Responder{Completer: completer}
		text := responder.Respond(context.Background(), record, cveanalyzer.IntentGeneral)

		assert.Contains(t, gotPrompt, "cybersecurity expert")
		assert.Contains(t, gotPrompt, "Heap overflow in the widget parser.")
		assert.Contains(t, gotPrompt, "bullet points")
		assert.InDelta(t, 0.3, gotTemp, 0.001)
		assert.Equal(t, "- Patch the widget parser\n- Restrict input sizes", text)
	})

	t.Run("summary intent selects the full summary template", func(t *testing.T) {
		t.Parallel()

		var gotPrompt string
		completer := &mock.Completer{
			CompleteFn: func(_ context.Context, prompt string, _ float32) (string, error) {
				gotPrompt = prompt
				return "summary text", nil
			},
		}

		responder := &query.Responder{Completer: completer}
		responder.Respond(context.Background(), record, cveanalyzer.IntentSummary)

		assert.Contains(t, gotPrompt, "cybersecurity analyst")
		assert.Contains(t, gotPrompt, "2-3 sentence summary")
		assert.Contains(t, gotPrompt, "CVE-2023-1234")
	})

	t.Run("remediation intent selects the remediation plan template", func(t *testing.T) {
		t.Parallel()

		var gotPrompt string
		completer := &mock.Completer{
			CompleteFn: func(_ context.Context, prompt string, _ float32) (string, error) {
				gotPrompt = prompt
				return "plan text", nil
			},
		}

		responder := &query.Responder{Completer: completer}
		responder.Respond(context.Background(), record, cveanalyzer.IntentRemediation)

		assert.Contains(t, gotPrompt, "remediation plan")
		assert.Contains(t, gotPrompt, "Long-term hardening guidance")
	})

	t.Run("LLM failure degrades to placeholder", func(t *testing.T) {
		t.Parallel()

		completer := &mock.Completer{
			CompleteFn: func(context.Context, string, float32) (string, error) {
				return "", errors.New("model overloaded")
			},
		}

		responder := &query.Responder{Completer: completer}
		text := responder.Respond(context.Background(), record, cveanalyzer.IntentGeneral)

		assert.Equal(t, "No remediation guidance available for CVE-2023-1234", text)
	})

	t.Run("blank response degrades to placeholder", func(t *testing.T) {
		t.Parallel()

		completer := &mock.Completer{
			CompleteFn: func(context.Context, string, float32) (string, error) {
				return "   \n", nil
			},
		}

		responder := &query.Responder{Completer: completer}
		text := responder.Respond(context.Background(), record, cveanalyzer.IntentGeneral)

		assert.Equal(t, "No remediation guidance available for CVE-2023-1234", text)
	})
}

func TestEnrichmentPrompts(t *testing.T) {
	t.Parallel()

	t.Run("generates all six labeled variants", func(t *testing.T) {
		t.Parallel()

		specs := query.EnrichmentPrompts("CVE-2023-1234", "Some description")

		var tags []string
		for _, spec := range specs {
			tags = append(tags, spec.Intent)
			assert.Contains(t, spec.Prompt, "CVE-2023-1234")
		}
		assert.Equal(t, []string{
			"full_summary",
			"root_cause_and_fix",
			"risk_assessment",
			"remediation_strategy",
			"engineering_ticket",
			"educational_summary",
		}, tags)
	})

	t.Run("substitutes placeholders for missing fields", func(t *testing.T) {
		t.Parallel()

		specs := query.EnrichmentPrompts("  ", "")

		assert.Contains(t, specs[0].Prompt, "UNKNOWN_CVE")
		assert.Contains(t, specs[0].Prompt, "No description provided.")
	})
}
