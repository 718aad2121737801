// Package plan builds executable multi-step plans from classified intents.
//
// A plan is an ordered list of steps with dependency and parallel-group
// metadata. Steps sharing a group number form one wave; waves execute in
// ascending order and a step only ever depends on steps from earlier waves.
package plan

import (
	"sort"
	"time"
)

// Status is the execution state of one step.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Terminal reports whether the status is final.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusSkipped
}

// Step is a single step in an execution plan.
type Step struct {
	// ID is assigned monotonically within a plan, starting at 1.
	ID         int            `json:"id"`
	Tool       string         `json:"tool_name"`
	Parameters map[string]any `json:"parameters"`

	// DependsOn lists step IDs that must complete first. Invariant: every
	// ID here was assigned earlier in the same plan.
	DependsOn []int `json:"depends_on,omitempty"`

	Description string `json:"description,omitempty"`
	Status      Status `json:"status"`

	// ParallelGroup is the wave number; steps sharing it may run
	// concurrently.
	ParallelGroup int `json:"parallel_group"`

	// Optional steps do not halt downstream waves when they fail.
	Optional bool `json:"optional,omitempty"`

	RetryCount int `json:"retry_count,omitempty"`
	MaxRetries int `json:"max_retries,omitempty"`
}

// CanExecute reports whether every dependency is in the completed set.
func (s *Step) CanExecute(completed map[int]bool) bool {
	for _, dep := range s.DependsOn {
		if !completed[dep] {
			return false
		}
	}
	return true
}

// Plan is a complete execution plan. Built once per query, step statuses
// are mutated during execution, then the plan is discarded with the
// response.
type Plan struct {
	Steps             []*Step       `json:"steps"`
	Name              string        `json:"name"`
	Description       string        `json:"description,omitempty"`
	EstimatedDuration time.Duration `json:"estimated_duration"`
}

// ParallelGroups returns the wave numbers present, ascending, with the
// steps of each wave in plan order.
func (p *Plan) ParallelGroups() ([]int, map[int][]*Step) {
	groups := make(map[int][]*Step)
	for _, step := range p.Steps {
		groups[step.ParallelGroup] = append(groups[step.ParallelGroup], step)
	}

	order := make([]int, 0, len(groups))
	for g := range groups {
		order = append(order, g)
	}
	sort.Ints(order)
	return order, groups
}

// ReadySteps returns pending steps whose dependencies are all completed.
func (p *Plan) ReadySteps(completed map[int]bool) []*Step {
	var ready []*Step
	for _, step := range p.Steps {
		if step.Status == StatusPending && step.CanExecute(completed) {
			ready = append(ready, step)
		}
	}
	return ready
}
