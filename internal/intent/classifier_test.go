package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyConfidenceBounds(t *testing.T) {
	c := NewClassifier()

	queries := []string{
		"",
		"What is total revenue for Chicago in FY25",
		"compare actual vs forecast",
		"xyzzy plugh",
		"list all dimensions and members",
		"copy data from forecast to budget for FY25",
		"   \t\n  ",
	}

	for _, q := range queries {
		got := c.Classify(context.Background(), q)
		assert.GreaterOrEqual(t, got.Confidence, 0.0, "query %q", q)
		assert.LessOrEqual(t, got.Confidence, 1.0, "query %q", q)
	}
}

func TestClassifyDataRetrieval(t *testing.T) {
	c := NewClassifier()

	got := c.Classify(context.Background(), "What is total revenue for Chicago in FY25")

	assert.Equal(t, TypeDataRetrieval, got.Type)
	assert.GreaterOrEqual(t, got.Confidence, 0.3)
	assert.Equal(t, "E501", got.Entities["entity"])
	assert.Equal(t, "FY25", got.Entities["years"])
	assert.Contains(t, got.SuggestedTools, "smart_retrieve")
}

func TestClassifyVarianceAnalysis(t *testing.T) {
	c := NewClassifier()

	got := c.Classify(context.Background(), "compare actual vs forecast")

	assert.Equal(t, TypeVarianceAnalysis, got.Type)
	assert.Contains(t, got.SuggestedTools, "smart_retrieve_variance")
	assert.Equal(t, "actual_vs_forecast", got.SubIntent)
}

func TestClassifyJobManagement(t *testing.T) {
	c := NewClassifier()

	got := c.Classify(context.Background(), "is the consolidation job complete?")

	assert.Equal(t, TypeJobManagement, got.Type)
	assert.Contains(t, got.SuggestedTools, "list_jobs")
}

func TestClassifyDataManagement(t *testing.T) {
	c := NewClassifier()

	got := c.Classify(context.Background(), "copy data from forecast to budget")

	assert.Equal(t, TypeDataManagement, got.Type)
	assert.Equal(t, "copy", got.SubIntent)
}

func TestClassifyEmptyQueryDegradesToUnknown(t *testing.T) {
	c := NewClassifier()

	got := c.Classify(context.Background(), "")

	assert.Equal(t, TypeUnknown, got.Type)
	assert.Equal(t, 0.0, got.Confidence)
	assert.Empty(t, got.SuggestedTools)
}

// fakeFallback is a canned LLM fallback.
type fakeFallback struct {
	intent Intent
	err    error
	called bool
}

func (f *fakeFallback) ClassifyIntent(ctx context.Context, query string, entities map[string]string, recent map[string]any) (Intent, error) {
	f.called = true
	return f.intent, f.err
}

func TestClassifyLLMFallbackAdopted(t *testing.T) {
	c := NewClassifier()
	fb := &fakeFallback{intent: Intent{
		Name:           string(TypeReporting),
		Type:           TypeReporting,
		Confidence:     0.85,
		Entities:       map[string]string{"entity": "E777"},
		SuggestedTools: []string{"get_documents"},
	}}
	c.SetReasoner(fb)

	got := c.Classify(context.Background(), "qwfp zxcv E501")

	require.True(t, fb.called, "low-confidence query should consult the fallback")
	assert.Equal(t, TypeReporting, got.Type)
	assert.Equal(t, 0.85, got.Confidence)
	// LLM entities override matching keys; rule-extracted keys survive.
	assert.Equal(t, "E777", got.Entities["entity"])
}

func TestClassifyLLMFallbackNotAdoptedWhenWeaker(t *testing.T) {
	c := NewClassifier()
	fb := &fakeFallback{intent: Intent{Type: TypeReporting, Confidence: 0.0}}
	c.SetReasoner(fb)

	got := c.Classify(context.Background(), "qwfp zxcv")

	assert.True(t, fb.called)
	assert.Equal(t, TypeUnknown, got.Type, "equal confidence must not be adopted")
}

func TestClassifyLLMFallbackErrorDegrades(t *testing.T) {
	c := NewClassifier()
	fb := &fakeFallback{err: errors.New("llm offline")}
	c.SetReasoner(fb)

	got := c.Classify(context.Background(), "qwfp zxcv")

	assert.Equal(t, TypeUnknown, got.Type)
}

func TestClassifyHighConfidenceSkipsLLM(t *testing.T) {
	c := NewClassifier()
	fb := &fakeFallback{intent: Intent{Type: TypeReporting, Confidence: 0.99}}
	c.SetReasoner(fb)

	got := c.Classify(context.Background(), "What is total revenue for Chicago in FY25")

	assert.False(t, fb.called, "confident rule-based result must not consult the fallback")
	assert.Equal(t, TypeDataRetrieval, got.Type)
}
