package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONRaw(t *testing.T) {
	var c classification
	ok := extractJSON(`{"intent": "data_retrieval", "confidence": 0.9, "entities": {"entity": "E501"}}`, &c)
	require.True(t, ok)
	assert.Equal(t, "data_retrieval", c.Intent)
	assert.Equal(t, 0.9, c.Confidence)
	assert.Equal(t, "E501", c.Entities["entity"])
}

func TestExtractJSONFenced(t *testing.T) {
	content := "Here is the classification:\n```json\n{\"intent\": \"variance_analysis\", \"confidence\": 0.85}\n```\nLet me know if you need more."
	var c classification
	require.True(t, extractJSON(content, &c))
	assert.Equal(t, "variance_analysis", c.Intent)
}

func TestExtractJSONBareFence(t *testing.T) {
	content := "```\n{\"intent\": \"job_management\"}\n```"
	var c classification
	require.True(t, extractJSON(content, &c))
	assert.Equal(t, "job_management", c.Intent)
}

func TestExtractJSONEmbeddedBraces(t *testing.T) {
	content := `The query is about revenue. {"intent": "data_retrieval", "suggested_tools": ["smart_retrieve_revenue"]} Hope that helps.`
	var c classification
	require.True(t, extractJSON(content, &c))
	assert.Equal(t, []string{"smart_retrieve_revenue"}, c.SuggestedTools)
}

func TestExtractJSONGarbage(t *testing.T) {
	var c classification
	assert.False(t, extractJSON("no json here at all", &c))
	assert.False(t, extractJSON("{broken json", &c))
	assert.False(t, extractJSON("", &c))
}

func TestBuildClassificationPrompt(t *testing.T) {
	prompt := buildClassificationPrompt(
		"show revenue for Chicago",
		map[string]string{"entity": "E501"},
		map[string]any{"current_pov": map[string]string{"years": "FY25", "scenario": "Actual"}},
	)

	assert.Contains(t, prompt, "Query: show revenue for Chicago")
	assert.Contains(t, prompt, `"entity":"E501"`)
	assert.Contains(t, prompt, "years: FY25")
	assert.Contains(t, prompt, "smart_retrieve_revenue")
	assert.Contains(t, prompt, "respond with JSON only")
}

func TestBuildClassificationPromptNoPOV(t *testing.T) {
	prompt := buildClassificationPrompt("list jobs", nil, nil)
	assert.NotContains(t, prompt, "Current POV context")
	assert.Contains(t, prompt, "list_jobs")
}

func TestBuildSynthesisPromptIncludesAllSections(t *testing.T) {
	prompt := buildSynthesisPrompt("show revenue", []map[string]any{{"status": "success"}}, map[string]any{"entity_focus": "E501"})
	assert.Contains(t, prompt, "Query: show revenue")
	assert.Contains(t, prompt, `"status": "success"`)
	assert.Contains(t, prompt, `"entity_focus": "E501"`)
}
