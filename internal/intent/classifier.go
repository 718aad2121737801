package intent

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"planpilot/internal/logging"
)

// Scoring weights: structural patterns dominate, keywords refine, extracted
// entities nudge categories whose dimensions were actually mentioned.
const (
	patternWeight = 0.50
	keywordWeight = 0.30
	entityWeight  = 0.20

	// lowConfidence is the internal threshold below which an LLM fallback
	// is consulted when configured.
	lowConfidence = 0.3
)

// Classifier turns free text into a typed Intent. It never returns an
// error: total ambiguity without an LLM degrades to the Unknown intent.
type Classifier struct {
	reasoner Fallback
}

// NewClassifier creates a rule-based classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// SetReasoner configures the optional LLM fallback for low-confidence
// queries.
func (c *Classifier) SetReasoner(r Fallback) {
	c.reasoner = r
}

// Classify classifies a user query into an intent with entities.
func (c *Classifier) Classify(ctx context.Context, query string) Intent {
	log := logging.Get(logging.CategoryIntent)

	normalized := normalizeQuery(query)
	entities := ExtractEntities(normalized)

	best, bestScore := c.scoreCategories(normalized, entities)
	log.Debugf("classified %q as %s (%.2f) entities=%d", query, best.intentType, bestScore, len(entities))

	if bestScore < lowConfidence && c.reasoner != nil {
		if llmIntent, ok := c.classifyWithLLM(ctx, query, entities); ok && llmIntent.Confidence > bestScore {
			return llmIntent
		}
	}

	if bestScore == 0 {
		// Nothing matched at all. Without an LLM this is the terminal
		// graceful degradation, not an error.
		return Unknown(entities, "no category matched")
	}

	return Intent{
		Name:           string(best.intentType),
		Type:           best.intentType,
		Confidence:     bestScore,
		Entities:       entities,
		SuggestedTools: append([]string(nil), best.tools...),
		SubIntent:      detectSubIntent(normalized, best),
		Reasoning:      fmt.Sprintf("Matched patterns: %.2f confidence", bestScore),
	}
}

// scoreCategories scores every category and returns the winner.
// Ties keep the earlier category in the rule table.
func (c *Classifier) scoreCategories(query string, entities map[string]string) (*categoryRule, float64) {
	best := &categoryRules[0]
	bestScore := -1.0

	for i := range categoryRules {
		rule := &categoryRules[i]
		score := patternWeight*patternScore(query, rule.patterns) +
			keywordWeight*keywordScore(query, rule.keywords, rule.negativeKeywords) +
			entityWeight*entityRelevance(entities, rule.relevantEntities)
		if score > bestScore {
			best = rule
			bestScore = score
		}
	}
	return best, bestScore
}

// patternScore is min(1, sqrt(hits/total)): a single structural hit already
// carries weight, additional hits have diminishing returns.
func patternScore(query string, patterns []*regexp.Regexp) float64 {
	if len(patterns) == 0 {
		return 0
	}
	hits := 0
	for _, p := range patterns {
		if p.MatchString(query) {
			hits++
		}
	}
	return math.Min(1, math.Sqrt(float64(hits)/float64(len(patterns))))
}

// keywordScore is the positive hit fraction minus a capped penalty of 0.15
// per negative keyword present.
func keywordScore(query string, keywords, negative []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	positive := 0
	for _, kw := range keywords {
		if strings.Contains(query, kw) {
			positive++
		}
	}
	score := math.Min(1, float64(positive)/float64(len(keywords)))

	negHits := 0
	for _, kw := range negative {
		if strings.Contains(query, kw) {
			negHits++
		}
	}
	penalty := math.Min(0.5, 0.15*float64(negHits))
	return math.Max(0, score-penalty)
}

// entityRelevance is the fraction of the category's relevant dimension
// slots that extraction populated.
func entityRelevance(entities map[string]string, relevant []string) float64 {
	if len(relevant) == 0 {
		return 0
	}
	hits := 0
	for _, dim := range relevant {
		if _, ok := entities[dim]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(relevant))
}

// detectSubIntent tests the winning category's secondary patterns in order.
func detectSubIntent(query string, rule *categoryRule) string {
	for _, sub := range rule.subIntents {
		if sub.pattern.MatchString(query) {
			return sub.name
		}
	}
	return ""
}

// classifyWithLLM delegates to the configured fallback. Entities merge with
// the LLM's values overriding matching keys. Any error degrades to the
// rule-based path.
func (c *Classifier) classifyWithLLM(ctx context.Context, query string, entities map[string]string) (Intent, bool) {
	llmIntent, err := c.reasoner.ClassifyIntent(ctx, query, entities, nil)
	if err != nil {
		logging.Get(logging.CategoryIntent).Warnf("llm fallback failed: %v", err)
		return Intent{}, false
	}

	merged := make(map[string]string, len(entities)+len(llmIntent.Entities))
	for k, v := range entities {
		merged[k] = v
	}
	for k, v := range llmIntent.Entities {
		merged[k] = v
	}
	llmIntent.Entities = merged
	return llmIntent, true
}
