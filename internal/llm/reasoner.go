// Package llm wraps the Gemini API for the reasoning steps that rules
// cannot cover: low-confidence intent classification, result synthesis,
// and follow-up recommendations.
package llm

import (
	"context"
	"errors"

	"planpilot/internal/intent"
	"planpilot/internal/tools"
)

// ErrUnavailable is returned when no API key is configured. Callers fall
// back to rules-only behavior.
var ErrUnavailable = errors.New("llm: reasoner not available")

// Synthesis is the outcome of one generation call.
type Synthesis struct {
	Content    string
	TokensUsed int
}

// Reasoner is the LLM surface the orchestrator depends on. The concrete
// implementation is GeminiReasoner; tests substitute fakes.
type Reasoner interface {
	intent.Fallback

	// Synthesize turns raw tool results into a narrative answer for the
	// original query.
	Synthesize(ctx context.Context, query string, results []tools.Result, recent map[string]any) (Synthesis, error)

	// Recommend suggests follow-up actions given the query outcome.
	Recommend(ctx context.Context, query string, results []tools.Result, recent map[string]any) (Synthesis, error)
}
