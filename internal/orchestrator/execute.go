package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"planpilot/internal/plan"
	"planpilot/internal/tools"
)

// stepDefaults are the statically configured fallback members. Fresh
// context beats these for account and entity specifically.
var stepDefaults = map[string]string{
	"entity":  "E501",
	"version": "Final",
}

// executePlan runs the plan wave by wave. Steps inside a wave run
// concurrently when parallel execution is enabled; a failed mandatory
// step halts every later wave, while optional failures only skip
// themselves.
func (o *Orchestrator) executePlan(ctx context.Context, p *plan.Plan, sessionID, userQuery string) []tools.Result {
	var results []tools.Result

	order, groups := p.ParallelGroups()
	for _, groupID := range order {
		steps := groups[groupID]

		var waveResults []tools.Result
		if o.cfg.EnableParallel && len(steps) > 1 {
			waveResults = make([]tools.Result, len(steps))
			g, gctx := errgroup.WithContext(ctx)
			for i, step := range steps {
				g.Go(func() error {
					waveResults[i] = o.executeStep(gctx, step, sessionID, userQuery)
					return nil
				})
			}
			g.Wait()
		} else {
			for _, step := range steps {
				result := o.executeStep(ctx, step, sessionID, userQuery)
				waveResults = append(waveResults, result)
				if !result.IsSuccess() && !step.Optional {
					break
				}
			}
		}
		results = append(results, waveResults...)

		halt := false
		for i, result := range waveResults {
			if !result.IsSuccess() && !steps[i].Optional {
				halt = true
				break
			}
		}
		if halt {
			o.markSkipped(p, groupID)
			o.log.Warnf("mandatory step failed in wave %d, halting plan", groupID)
			break
		}
	}
	return results
}

// markSkipped flags every still-pending step after the halted wave.
func (o *Orchestrator) markSkipped(p *plan.Plan, failedGroup int) {
	for _, step := range p.Steps {
		if step.ParallelGroup > failedGroup && step.Status == plan.StatusPending {
			step.Status = plan.StatusSkipped
		}
	}
}

// executeStep enriches one step's parameters from session context and
// dispatches it. Errors and panics become structured error results; the
// step loop itself never aborts.
func (o *Orchestrator) executeStep(ctx context.Context, step *plan.Step, sessionID, userQuery string) (result tools.Result) {
	params := make(map[string]any, len(step.Parameters))
	for k, v := range step.Parameters {
		params[k] = v
	}

	// Re-derive suggested params just before invoking so results from
	// earlier steps in the same plan influence later ones. Context fills
	// missing or placeholder values; for account and entity, fresh
	// context also beats the statically configured defaults.
	if o.cfg.UseContextMemory {
		for k, v := range o.mem.SuggestedParams(sessionID, step.Tool) {
			cur, exists := params[k]
			isMissing := !exists || cur == "" || cur == nil
			isPlaceholder := exists && strings.HasPrefix(fmt.Sprint(cur), "%")
			isDefault := false
			if def, ok := stepDefaults[k]; ok {
				isDefault = fmt.Sprint(v) == def
			}
			focusKey := k == "account" || k == "entity"

			if isMissing || isPlaceholder || (focusKey && !isDefault) {
				params[k] = v
			}
		}
	}

	defer func() {
		if r := recover(); r != nil {
			step.Status = plan.StatusFailed
			result = tools.Failuref(step.Tool, params, "tool panicked: %v", r)
		}
	}()

	step.Status = plan.StatusRunning
	o.log.Debugf("executing %s (step %d)", step.Tool, step.ID)

	result, err := o.executor.Execute(ctx, step.Tool, params, sessionID, userQuery)
	if err != nil {
		step.Status = plan.StatusFailed
		return tools.Failure(step.Tool, params, err)
	}
	if result.ToolName == "" {
		result.ToolName = step.Tool
	}
	if result.Parameters == nil {
		result.Parameters = params
	}

	o.recordToolUse(sessionID, step.Tool, userQuery)

	if result.IsSuccess() {
		step.Status = plan.StatusCompleted
		o.mem.UpdateFromResult(sessionID, step.Tool, result)
	} else {
		step.Status = plan.StatusFailed
	}
	return result
}
