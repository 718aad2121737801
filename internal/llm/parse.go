package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencedJSON = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// classification is the JSON shape the model is asked to emit.
type classification struct {
	Intent         string            `json:"intent"`
	Confidence     float64           `json:"confidence"`
	Entities       map[string]string `json:"entities"`
	SuggestedTools []string          `json:"suggested_tools"`
	SubIntent      string            `json:"sub_intent"`
	Reasoning      string            `json:"reasoning"`
}

// extractJSON pulls a JSON object out of model output. Models sometimes
// wrap the payload in a fenced code block or surround it with prose, so
// parsing tries the raw text, then fenced blocks, then the outermost
// brace span.
func extractJSON(content string, v any) bool {
	content = strings.TrimSpace(content)
	if json.Unmarshal([]byte(content), v) == nil {
		return true
	}
	if m := fencedJSON.FindStringSubmatch(content); m != nil {
		if json.Unmarshal([]byte(strings.TrimSpace(m[1])), v) == nil {
			return true
		}
	}
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		if json.Unmarshal([]byte(content[start:end+1]), v) == nil {
			return true
		}
	}
	return false
}
