package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"planpilot/internal/intent"
	"planpilot/internal/logging"
	"planpilot/internal/tools"
)

const (
	defaultModel     = "gemini-2.0-flash"
	defaultMaxTokens = 1024
	defaultTemp      = 0.3
)

// GeminiReasoner calls the Gemini API through the genai SDK.
type GeminiReasoner struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
	log         *logging.Logger
}

// NewGeminiReasoner builds a reasoner for the given API key and model.
// An empty key returns ErrUnavailable so callers can degrade to
// rules-only operation instead of failing.
func NewGeminiReasoner(ctx context.Context, apiKey, model string) (*GeminiReasoner, error) {
	if apiKey == "" {
		return nil, ErrUnavailable
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiReasoner{
		client:      client,
		model:       model,
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemp,
		log:         logging.Get(logging.CategoryLLM),
	}, nil
}

func (r *GeminiReasoner) generate(ctx context.Context, system, prompt string) (Synthesis, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := r.client.Models.GenerateContent(ctx, r.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(r.temperature),
		MaxOutputTokens:   r.maxTokens,
	})
	if err != nil {
		return Synthesis{}, fmt.Errorf("generate failed: %w", err)
	}

	out := Synthesis{Content: resp.Text()}
	if resp.UsageMetadata != nil {
		out.TokensUsed = int(resp.UsageMetadata.TotalTokenCount)
	}
	r.log.Debugf("generate: %d tokens", out.TokensUsed)
	return out, nil
}

// ClassifyIntent asks the model to classify a query the rule engine had
// low confidence on. Rule-extracted entities are merged with the model's,
// the model winning on collisions.
func (r *GeminiReasoner) ClassifyIntent(ctx context.Context, query string, entities map[string]string, recent map[string]any) (intent.Intent, error) {
	out, err := r.generate(ctx, classificationSystemPrompt, buildClassificationPrompt(query, entities, recent))
	if err != nil {
		return intent.Unknown(entities, ""), err
	}

	var parsed classification
	if !extractJSON(out.Content, &parsed) {
		return intent.Unknown(entities, ""), fmt.Errorf("unparseable classification response")
	}

	merged := make(map[string]string, len(entities)+len(parsed.Entities))
	for k, v := range entities {
		merged[k] = v
	}
	for k, v := range parsed.Entities {
		merged[k] = v
	}

	confidence := parsed.Confidence
	if confidence == 0 {
		confidence = 0.8
	}
	return intent.Intent{
		Name:           parsed.Intent,
		Type:           intent.TypeFromName(parsed.Intent),
		Confidence:     confidence,
		Entities:       merged,
		SuggestedTools: parsed.SuggestedTools,
		SubIntent:      parsed.SubIntent,
		Reasoning:      parsed.Reasoning,
	}, nil
}

// Synthesize produces a narrative summary of the executed tool results.
func (r *GeminiReasoner) Synthesize(ctx context.Context, query string, results []tools.Result, recent map[string]any) (Synthesis, error) {
	return r.generate(ctx, synthesisSystemPrompt, buildSynthesisPrompt(query, results, recent))
}

// Recommend suggests follow-up actions after a query completes.
func (r *GeminiReasoner) Recommend(ctx context.Context, query string, results []tools.Result, recent map[string]any) (Synthesis, error) {
	return r.generate(ctx, recommendationSystemPrompt, buildRecommendationPrompt(query, results, recent))
}
