// Package rl logs execution episodes and recommends follow-up tools by
// counting which tools historically followed which. Counting, not
// learning: rewards tag episodes so bad sequences are excluded, nothing
// is fitted.
package rl

import "context"

// Fixed reward table per episode outcome.
const (
	RewardSuccess = 10.0
	RewardPartial = 5.0
	RewardFailure = -5.0
)

// Episode outcomes.
const (
	OutcomeSuccess = "success"
	OutcomePartial = "partial"
	OutcomeFailure = "failure"
)

// RewardFor maps an outcome to its fixed reward.
func RewardFor(outcome string) float64 {
	switch outcome {
	case OutcomeSuccess:
		return RewardSuccess
	case OutcomePartial:
		return RewardPartial
	default:
		return RewardFailure
	}
}

// Recommender is the RL collaborator contract. Errors and empty
// recommendations degrade to LLM recommendations upstream.
type Recommender interface {
	// Recommend suggests tools likely to follow previousTool, restricted
	// to availableTools.
	Recommend(ctx context.Context, query, previousTool string, sessionLength int, availableTools []string) ([]string, error)

	// LogEpisode records one finished session's tool sequence with its
	// reward and outcome.
	LogEpisode(ctx context.Context, sessionID string, toolSequence []string, reward float64, outcome string) error
}
