// Package intent classifies natural-language planning queries into typed
// intents and extracts dimension entities (periods, years, scenarios,
// accounts, entities, cost centers, regions).
//
// Classification is rule-based: ordered pattern tables, keyword scoring, and
// entity relevance, with an optional LLM fallback for low-confidence queries.
package intent

import "context"

// Type is the closed set of intent categories.
type Type string

const (
	TypeDataRetrieval         Type = "data_retrieval"
	TypeDimensionExploration  Type = "dimension_exploration"
	TypeJobManagement         Type = "job_management"
	TypeBusinessRule          Type = "business_rule"
	TypeReporting             Type = "reporting"
	TypeVarianceAnalysis      Type = "variance_analysis"
	TypeDataManagement        Type = "data_management"
	TypeSubstitutionVariables Type = "substitution_variables"
	TypeMetadataValidation    Type = "metadata_validation"
	TypeDocumentManagement    Type = "document_management"
	TypeUnknown               Type = "unknown"
)

// Intent is a classified query with extracted entities and suggested tools.
// Created fresh per query; never persisted.
type Intent struct {
	Name           string            `json:"name"`
	Type           Type              `json:"type"`
	Confidence     float64           `json:"confidence"`
	Entities       map[string]string `json:"entities,omitempty"`
	SuggestedTools []string          `json:"suggested_tools,omitempty"`
	SubIntent      string            `json:"sub_intent,omitempty"`
	Reasoning      string            `json:"reasoning,omitempty"`
}

// Unknown returns the terminal graceful-degradation intent: no category
// matched and no LLM was available. Not an error.
func Unknown(entities map[string]string, reasoning string) Intent {
	return Intent{
		Name:       string(TypeUnknown),
		Type:       TypeUnknown,
		Confidence: 0,
		Entities:   entities,
		Reasoning:  reasoning,
	}
}

// TypeFromName maps an intent name to its Type, or TypeUnknown for
// names outside the closed set.
func TypeFromName(name string) Type {
	switch t := Type(name); t {
	case TypeDataRetrieval, TypeDimensionExploration, TypeJobManagement,
		TypeBusinessRule, TypeReporting, TypeVarianceAnalysis,
		TypeDataManagement, TypeSubstitutionVariables,
		TypeMetadataValidation, TypeDocumentManagement:
		return t
	}
	return TypeUnknown
}

// Fallback is the LLM collaborator contract for low-confidence queries.
// Implementations live outside this package; any error degrades to the
// rule-based result.
type Fallback interface {
	ClassifyIntent(ctx context.Context, query string, entities map[string]string, recent map[string]any) (Intent, error)
}
