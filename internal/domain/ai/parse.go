package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

const rawPreviewLimit = 500

var codeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ParseAnalysis decodes the model's reply. Models occasionally wrap the JSON
// in a markdown code fence despite instructions, so the fence is stripped
// first. A failed decode returns *ParseError carrying a truncated preview.
func ParseAnalysis(raw string) (*Analysis, error) {
	body := strings.TrimSpace(raw)
	if m := codeFence.FindStringSubmatch(body); m != nil {
		body = strings.TrimSpace(m[1])
	}

	var a Analysis
	if err := json.Unmarshal([]byte(body), &a); err != nil {
		preview := raw
		if len(preview) > rawPreviewLimit {
			preview = preview[:rawPreviewLimit]
		}
		return nil, &ParseError{Raw: preview, Err: err}
	}
	return &a, nil
}
