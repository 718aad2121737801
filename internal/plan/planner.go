package plan

import (
	"fmt"
	"strings"
	"time"

	"planpilot/internal/logging"
)

// intentTools maps an intent name to the tools a dynamic plan should try
// when the classifier supplied no suggestions.
var intentTools = map[string][]string{
	"data_retrieval":         {"smart_retrieve"},
	"dimension_exploration":  {"get_dimensions", "get_members"},
	"job_management":         {"list_jobs"},
	"reporting":              {"get_documents"},
	"variance_analysis":      {"smart_retrieve_variance"},
	"data_management":        {"copy_data"},
	"substitution_variables": {"get_substitution_variables"},
}

// Planner builds execution plans from classified intents. It is
// stateless and safe for concurrent use.
type Planner struct {
	log *logging.Logger
}

// NewPlanner returns a ready Planner.
func NewPlanner() *Planner {
	return &Planner{log: logging.Get(logging.CategoryPlanner)}
}

// Request carries everything the planner needs for one query.
type Request struct {
	Intent         string
	SubIntent      string
	Entities       map[string]string
	AvailableTools []string
	SuggestedTools []string
	RawQuery       string
}

// CreatePlan builds a plan for the request. Playbooks are tried first;
// when none matches, a dynamic sequential plan is built from the
// suggested tools. The result always has at least one step.
func (p *Planner) CreatePlan(req Request) *Plan {
	if pb := matchPlaybook(req); pb != nil {
		p.log.Debugf("matched playbook %q for intent %s", pb.Name, req.Intent)
		return p.buildFromPlaybook(pb, req)
	}
	return p.dynamicPlan(req)
}

// matchPlaybook scores every playbook by trigger hits plus half its
// priority and returns the best, or nil when nothing triggered.
func matchPlaybook(req Request) *playbook {
	parts := []string{strings.ToLower(req.RawQuery), req.Intent, req.SubIntent}
	for _, v := range req.Entities {
		parts = append(parts, v)
	}
	combined := strings.ToLower(strings.Join(parts, " "))

	var best *playbook
	bestScore := 0.0
	for i := range playbooks {
		pb := &playbooks[i]
		hits := 0
		for _, trigger := range pb.Triggers {
			if strings.Contains(combined, trigger) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		score := float64(hits) + float64(pb.Priority)*0.5
		if score > bestScore {
			bestScore = score
			best = pb
		}
	}
	if bestScore < 1 {
		return nil
	}
	return best
}

func (p *Planner) buildFromPlaybook(pb *playbook, req Request) *Plan {
	available := toolSet(req.AvailableTools)

	var steps []*Step
	nextID := 0
	for _, tmpl := range pb.Steps {
		if !available[tmpl.Tool] {
			p.log.Debugf("playbook step %s unavailable, dropping", tmpl.Tool)
			continue
		}
		params := paramsForTool(tmpl.Tool, req.Entities)
		for k, v := range tmpl.Params {
			params[k] = v
		}
		nextID++
		steps = append(steps, &Step{
			ID:            nextID,
			Tool:          tmpl.Tool,
			Parameters:    params,
			DependsOn:     priorGroupIDs(steps, tmpl.ParallelGroup),
			Description:   tmpl.Description,
			Status:        StatusPending,
			ParallelGroup: tmpl.ParallelGroup,
			Optional:      tmpl.Optional,
			MaxRetries:    2,
		})
	}
	if len(steps) == 0 {
		steps = fallbackSteps(req.AvailableTools)
	}
	return &Plan{
		Steps:             steps,
		Name:              pb.Name,
		Description:       pb.Description,
		EstimatedDuration: pb.EstimatedDuration,
	}
}

// dynamicPlan chains up to three suggested tools strictly sequentially,
// each step in its own group depending on the previous one.
func (p *Planner) dynamicPlan(req Request) *Plan {
	available := toolSet(req.AvailableTools)

	candidates := req.SuggestedTools
	if len(candidates) == 0 {
		candidates = intentTools[req.Intent]
		if len(candidates) == 0 {
			candidates = []string{"get_application_info"}
		}
	}

	var steps []*Step
	nextID := 0
	for _, tool := range candidates {
		if !available[tool] {
			continue
		}
		if len(steps) == 3 {
			break
		}
		nextID++
		step := &Step{
			ID:            nextID,
			Tool:          tool,
			Parameters:    paramsForTool(tool, req.Entities),
			Description:   fmt.Sprintf("Execute %s", tool),
			Status:        StatusPending,
			ParallelGroup: len(steps),
			MaxRetries:    2,
		}
		if n := len(steps); n > 0 {
			step.DependsOn = []int{steps[n-1].ID}
		}
		steps = append(steps, step)
	}
	if len(steps) == 0 {
		steps = fallbackSteps(req.AvailableTools)
	}

	var total time.Duration
	for _, s := range steps {
		total += toolDuration(s.Tool)
	}
	return &Plan{
		Steps:             steps,
		Name:              "Dynamic Execution Plan",
		Description:       fmt.Sprintf("Generated plan for intent: %s", req.Intent),
		EstimatedDuration: total,
	}
}

// fallbackSteps builds the single informational step used when nothing
// else could be planned. Plans are never empty.
func fallbackSteps(availableTools []string) []*Step {
	tool := "get_application_info"
	if !toolSet(availableTools)[tool] && len(availableTools) > 0 {
		tool = availableTools[0]
	}
	return []*Step{{
		ID:          1,
		Tool:        tool,
		Parameters:  map[string]any{},
		Description: fmt.Sprintf("Execute %s", tool),
		Status:      StatusPending,
		MaxRetries:  2,
	}}
}

// priorGroupIDs returns the IDs of every already-built step in the
// immediately preceding parallel group.
func priorGroupIDs(steps []*Step, group int) []int {
	if group == 0 {
		return nil
	}
	var ids []int
	for _, s := range steps {
		if s.ParallelGroup == group-1 {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func toolSet(tools []string) map[string]bool {
	set := make(map[string]bool, len(tools))
	for _, t := range tools {
		set[t] = true
	}
	return set
}
