package tools

import "errors"

// Tool catalog errors.
var (
	// ErrToolNotFound is returned when a tool is not in the catalog.
	ErrToolNotFound = errors.New("tool not found")

	// ErrToolNameEmpty is returned when a tool spec has no name.
	ErrToolNameEmpty = errors.New("tool name cannot be empty")

	// ErrToolAlreadyRegistered is returned when registering a duplicate.
	ErrToolAlreadyRegistered = errors.New("tool already registered")
)
