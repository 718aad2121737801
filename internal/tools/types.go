// Package tools defines the tool catalog and the executor contract between
// the reasoning core and the planning application adapters.
//
// The core never interprets tool payloads: it inspects Result.Status, carries
// ExecutionID through for feedback correlation, and forwards everything else
// untouched.
package tools

import (
	"context"
	"fmt"
)

// Property describes a single parameter property for JSON schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
}

// Schema defines the JSON schema for a tool's arguments.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
}

// Spec describes one tool in the catalog: name, human description, and the
// argument schema advertised to LLM tool calling. The core performs no type
// validation against the schema.
type Spec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema Schema `json:"inputSchema"`
}

// Validate checks if the spec is usable.
func (s *Spec) Validate() error {
	if s.Name == "" {
		return ErrToolNameEmpty
	}
	return nil
}

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the tagged outcome of one tool invocation.
// Either Data (success) or Error (failure) is populated; ToolName,
// Parameters, ExecutionID and FeedbackHint are side-channel fields that
// cross-cutting consumers (feedback, RL, display) may read.
type Result struct {
	Status       string         `json:"status"`
	Data         map[string]any `json:"data,omitempty"`
	Error        string         `json:"error,omitempty"`
	ToolName     string         `json:"tool_name,omitempty"`
	Parameters   map[string]any `json:"parameters,omitempty"`
	ExecutionID  string         `json:"execution_id,omitempty"`
	FeedbackHint string         `json:"_feedback_hint,omitempty"`
}

// Success builds a successful result.
func Success(tool string, params map[string]any, data map[string]any) Result {
	return Result{
		Status:     StatusSuccess,
		ToolName:   tool,
		Parameters: params,
		Data:       data,
	}
}

// Failure builds an error result from an error value.
func Failure(tool string, params map[string]any, err error) Result {
	return Result{
		Status:     StatusError,
		ToolName:   tool,
		Parameters: params,
		Error:      err.Error(),
	}
}

// Failuref builds an error result from a format string.
func Failuref(tool string, params map[string]any, format string, args ...any) Result {
	return Failure(tool, params, fmt.Errorf(format, args...))
}

// IsSuccess reports whether the invocation succeeded.
func (r Result) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// Executor invokes tools against the planning application. Implementations
// wrap the remote REST client (or a mock); the reasoning core depends only on
// this interface.
type Executor interface {
	Execute(ctx context.Context, tool string, args map[string]any, sessionID, userQuery string) (Result, error)
}
