package query

import (
	"regexp"
	"strings"
)

// Regex definitions use \x60 (hex representation) for backticks because Go
// raw strings cannot contain backticks.
var fencedJSONRegex = regexp.MustCompile("(?s)\x60\x60\x60(?:json)?\\s*({.*})\\s*\x60\x60\x60")

// salvageJSON extracts the JSON object from an LLM response that may be
// wrapped in markdown fences or conversational preamble. Returns the input
// unchanged when no object boundaries can be found; the caller's unmarshal
// then fails and triggers the degrade path.
func salvageJSON(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```") {
		if matches := fencedJSONRegex.FindStringSubmatch(response); len(matches) > 1 {
			return matches[1]
		}
	}

	if !strings.HasPrefix(response, "{") {
		first := strings.Index(response, "{")
		last := strings.LastIndex(response, "}")
		if first != -1 && last > first {
			return response[first : last+1]
		}
	}

	return response
}
