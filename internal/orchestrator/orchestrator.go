// Package orchestrator drives the end-to-end reasoning pipeline: classify
// the query, enrich it from conversation memory, build a plan, execute it
// in dependency waves, then synthesize and recommend.
package orchestrator

import (
	"context"
	"strings"
	"sync"
	"time"

	"planpilot/internal/config"
	"planpilot/internal/intent"
	"planpilot/internal/llm"
	"planpilot/internal/logging"
	"planpilot/internal/memory"
	"planpilot/internal/plan"
	"planpilot/internal/rl"
	"planpilot/internal/tools"
)

// Response is the consolidated outcome of one processed query. Success is
// the AND over all executed step results; partial results are always
// carried even when Success is false.
type Response struct {
	Success          bool           `json:"success"`
	Results          []tools.Result `json:"results"`
	Plan             *plan.Plan     `json:"plan,omitempty"`
	Intent           intent.Intent  `json:"intent"`
	Synthesis        string         `json:"synthesis,omitempty"`
	Recommendations  []string       `json:"recommendations,omitempty"`
	ErrorExplanation string         `json:"error_explanation,omitempty"`
	ExecutionTime    time.Duration  `json:"execution_time"`
	TokensUsed       int            `json:"tokens_used"`
}

// sessionStats is per-session tool telemetry feeding episode logging.
type sessionStats struct {
	toolSequence []string
	previousTool string
	length       int
	userQuery    string
}

// Orchestrator wires the pipeline collaborators together. The reasoner
// and recommender are optional; a nil collaborator just disables its
// enhancement.
type Orchestrator struct {
	cfg         config.OrchestratorConfig
	classifier  *intent.Classifier
	planner     *plan.Planner
	mem         *memory.Memory
	reasoner    llm.Reasoner
	recommender rl.Recommender
	executor    tools.Executor
	catalog     *tools.Catalog
	log         *logging.Logger

	statsMu sync.Mutex
	stats   map[string]*sessionStats
}

// New builds an orchestrator. executor, catalog and mem are required.
func New(cfg config.OrchestratorConfig, executor tools.Executor, catalog *tools.Catalog, mem *memory.Memory, reasoner llm.Reasoner, recommender rl.Recommender) *Orchestrator {
	o := &Orchestrator{
		cfg:        cfg,
		classifier: intent.NewClassifier(),
		planner:    plan.NewPlanner(),
		mem:        mem,
		executor:   executor,
		catalog:    catalog,
		log:        logging.Get(logging.CategoryOrchestrator),
		stats:      make(map[string]*sessionStats),
	}
	if !cfg.UseLLM {
		o.reasoner = nil
	} else {
		o.reasoner = reasoner
	}
	if !cfg.UseRL {
		o.recommender = nil
	} else {
		o.recommender = recommender
	}
	return o
}

// Process runs the full pipeline for one user query.
func (o *Orchestrator) Process(ctx context.Context, userQuery, sessionID string) Response {
	start := time.Now()
	tokensUsed := 0

	o.log.Infof("processing query for session %s", sessionID)

	// 1. Classify.
	in := o.classifyIntent(ctx, userQuery, sessionID)
	o.log.Debugf("intent %s (%.2f)", in.Name, in.Confidence)

	// 2. Enrich entities from conversation memory. Query-derived entities
	// always beat remembered context.
	enriched := make(map[string]string, len(in.Entities))
	for k, v := range in.Entities {
		enriched[k] = v
	}
	o.mem.UpdateFromEntities(sessionID, in.Entities)

	if o.cfg.UseContextMemory {
		target := ""
		if len(in.SuggestedTools) > 0 {
			target = in.SuggestedTools[0]
		}
		for k, v := range o.mem.SuggestedParams(sessionID, target) {
			if s, ok := v.(string); ok {
				if cur, exists := enriched[k]; !exists || cur == "" {
					enriched[k] = s
				}
			}
		}
	}

	// 3. Plan.
	p := o.planner.CreatePlan(plan.Request{
		Intent:         in.Name,
		SubIntent:      in.SubIntent,
		Entities:       enriched,
		AvailableTools: o.catalog.Names(),
		SuggestedTools: in.SuggestedTools,
		RawQuery:       userQuery,
	})
	if max := o.cfg.MaxSteps; max > 0 && len(p.Steps) > max {
		p.Steps = p.Steps[:max]
	}
	if len(p.Steps) == 0 {
		return Response{
			Success:          false,
			Intent:           in,
			ErrorExplanation: "I'm sorry, I couldn't determine which tools to use for your request.",
			ExecutionTime:    time.Since(start),
		}
	}
	o.log.Infof("plan %q: %d steps", p.Name, len(p.Steps))

	// 4. Execute.
	results := o.executePlan(ctx, p, sessionID, userQuery)

	// 5. Synthesize. Failures are logged and the response ships without a
	// narrative.
	synthesis := ""
	if o.reasoner != nil {
		recent := o.recentContext(sessionID)
		if out, err := o.reasoner.Synthesize(ctx, userQuery, results, recent); err != nil {
			o.log.Warnf("synthesis failed: %v", err)
		} else {
			synthesis = out.Content
			tokensUsed += out.TokensUsed
		}
	}

	// 6. Recommend: RL first, LLM as backup; both best-effort.
	recommendations := o.recommend(ctx, userQuery, sessionID, results, &tokensUsed)

	success := len(results) > 0
	for _, r := range results {
		if !r.IsSuccess() {
			success = false
			break
		}
	}

	toolsUsed := make([]string, 0, len(results))
	for _, r := range results {
		toolsUsed = append(toolsUsed, r.ToolName)
	}
	elapsed := time.Since(start)
	o.mem.RecordQuery(sessionID, userQuery, in.Name, in.Entities, toolsUsed, success, elapsed)

	return Response{
		Success:         success,
		Results:         results,
		Plan:            p,
		Intent:          in,
		Synthesis:       synthesis,
		Recommendations: recommendations,
		ExecutionTime:   elapsed,
		TokensUsed:      tokensUsed,
	}
}

// classifyIntent runs rule classification, then consults the LLM when
// confidence falls below the configured threshold. The LLM result is
// adopted only when it is strictly more confident; its entities are
// merged over the rule-extracted ones either way it wins.
func (o *Orchestrator) classifyIntent(ctx context.Context, query, sessionID string) intent.Intent {
	in := o.classifier.Classify(ctx, query)

	if in.Confidence >= o.cfg.ConfidenceThreshold || o.reasoner == nil {
		return in
	}

	recent := o.recentContext(sessionID)
	llmIntent, err := o.reasoner.ClassifyIntent(ctx, query, in.Entities, recent)
	if err != nil {
		o.log.Warnf("llm classification failed: %v", err)
		return in
	}
	if llmIntent.Confidence > in.Confidence {
		in.Name = llmIntent.Name
		in.Type = llmIntent.Type
		in.Confidence = llmIntent.Confidence
		in.SuggestedTools = llmIntent.SuggestedTools
		if in.Entities == nil {
			in.Entities = make(map[string]string)
		}
		for k, v := range llmIntent.Entities {
			in.Entities[k] = v
		}
		if llmIntent.Reasoning != "" {
			in.Reasoning = llmIntent.Reasoning
		}
	}
	return in
}

// recentContext returns session context for LLM prompts, or nil when
// context memory is disabled.
func (o *Orchestrator) recentContext(sessionID string) map[string]any {
	if !o.cfg.UseContextMemory {
		return nil
	}
	return o.mem.RecentContext(sessionID)
}

func (o *Orchestrator) recommend(ctx context.Context, query, sessionID string, results []tools.Result, tokensUsed *int) []string {
	var recommendations []string

	if o.recommender != nil {
		lastTool := ""
		if len(results) > 0 {
			lastTool = results[len(results)-1].ToolName
		}
		recs, err := o.recommender.Recommend(ctx, query, lastTool, len(results), o.catalog.Names())
		if err != nil {
			o.log.Debugf("rl recommendation failed: %v", err)
		} else {
			recommendations = recs
		}
	}

	if len(recommendations) == 0 && o.reasoner != nil {
		recent := o.recentContext(sessionID)
		out, err := o.reasoner.Recommend(ctx, query, results, recent)
		if err != nil {
			o.log.Debugf("llm recommendation failed: %v", err)
		} else {
			*tokensUsed += out.TokensUsed
			recommendations = splitRecommendations(out.Content)
		}
	}
	return recommendations
}

// splitRecommendations turns a bulleted or line-separated model answer
// into individual recommendation strings.
func splitRecommendations(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == 5 {
			break
		}
	}
	return out
}

// FinalizeSession closes out a session's episode: the accumulated tool
// sequence is logged to the recommender with the fixed reward for the
// outcome.
func (o *Orchestrator) FinalizeSession(ctx context.Context, sessionID, outcome string) {
	o.statsMu.Lock()
	st, ok := o.stats[sessionID]
	var seq []string
	if ok {
		seq = append([]string(nil), st.toolSequence...)
	}
	o.statsMu.Unlock()

	if len(seq) == 0 || o.recommender == nil {
		return
	}
	if err := o.recommender.LogEpisode(ctx, sessionID, seq, rl.RewardFor(outcome), outcome); err != nil {
		o.log.Debugf("episode log failed for %s: %v", sessionID, err)
	}
}

// recordToolUse updates per-session telemetry after a step executes.
func (o *Orchestrator) recordToolUse(sessionID, tool, userQuery string) {
	o.statsMu.Lock()
	defer o.statsMu.Unlock()

	st, ok := o.stats[sessionID]
	if !ok {
		st = &sessionStats{userQuery: userQuery}
		o.stats[sessionID] = st
	}
	st.toolSequence = append(st.toolSequence, tool)
	st.previousTool = tool
	st.length++
}
