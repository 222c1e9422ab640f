package pipeline

import (
	"regexp"
	"strings"
)

var (
	fencedJSONExpr = regexp.MustCompile("(?s)^```json\\s*\\n(.*)\\n```\\s*$")
	fencedExpr     = regexp.MustCompile("(?s)^```\\s*\\n(.*)\\n```\\s*$")
	backtickExpr   = regexp.MustCompile("(?s)^`(.*)`\\s*$")
)

// ExtractJSON locates the JSON payload inside a raw model response. Providers
// routinely wrap the payload in a Markdown code fence (with or without a
// language tag, or a single backtick pair) or surround it with prose; all of
// those forms must yield the same payload. Returns an ExtractionError when no
// balanced brace pair can be located.
func ExtractJSON(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return "", &ExtractionError{Reason: "empty response"}
	}

	for _, expr := range []*regexp.Regexp{fencedJSONExpr, fencedExpr, backtickExpr} {
		if match := expr.FindStringSubmatch(content); match != nil {
			content = strings.TrimSpace(match[1])
			break
		}
	}

	if strings.HasPrefix(content, "{") && strings.HasSuffix(content, "}") {
		return content, nil
	}

	// Fall back to the first { and last }, tolerating prose around the payload.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || start >= end {
		return "", &ExtractionError{Reason: "no balanced brace pair found"}
	}

	return strings.TrimSpace(content[start : end+1]), nil
}
