package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// System prompts per reasoning mode, tuned for Oracle EPM Cloud Planning
// terminology.
const (
	classificationSystemPrompt = `You are an expert at understanding Oracle EPM Cloud Planning (EPBCS) queries.

Classify user queries into intents and extract Planning-specific entities (Accounts, Entities, Scenarios, Periods, Versions, Cost Centers, Regions).

Available intents:
- data_retrieval: Retrieving financial data, revenue, expenses, balances
- dimension_exploration: Exploring dimensions, members, hierarchies
- job_management: Checking job status, monitoring tasks
- business_rule: Running calculations or business rules
- reporting: Generating or viewing reports/documents
- variance_analysis: Comparing actual vs forecast/budget, YoY analysis
- data_management: Copying or clearing data
- substitution_variables: Managing substitution variables
- metadata_validation: Validating application metadata
- document_management: Accessing library documents/snapshots

Respond in JSON format only:
{"intent": "intent_name", "confidence": 0.0-1.0, "entities": {}, "suggested_tools": [], "reasoning": "brief"}`

	synthesisSystemPrompt = `You are an expert at synthesizing Planning query results.
Summarize key findings, highlight important values, note anomalies, and suggest follow-up actions.`

	recommendationSystemPrompt = `You are an expert Planning advisor providing recommendations.
Consider context, suggest follow-up actions, highlight best practices.`
)

// toolDescriptions is included in classification prompts so the model
// can fill suggested_tools with real tool names.
var toolDescriptions = []struct {
	Name, Desc string
}{
	{"smart_retrieve", "Retrieve financial data with automatic 10-dimension handling"},
	{"smart_retrieve_revenue", "Get revenue breakdown (Rooms, F&B, Other)"},
	{"smart_retrieve_monthly", "Get monthly data for an account"},
	{"smart_retrieve_variance", "Perform variance analysis (Actual vs Forecast/Prior Year)"},
	{"export_data_slice", "Export data slice with custom grid definition"},
	{"get_dimensions", "List all dimensions"},
	{"get_members", "Get members of a dimension"},
	{"get_member", "Get details for a specific member"},
	{"list_jobs", "List recent jobs"},
	{"get_job_status", "Check status of a specific job"},
	{"execute_job", "Execute a business rule or task"},
	{"copy_data", "Copy data between scenarios/years/periods"},
	{"clear_data", "Clear data for a slice"},
	{"get_substitution_variables", "List substitution variables"},
	{"set_substitution_variable", "Update a substitution variable"},
	{"get_documents", "List library documents"},
	{"get_snapshots", "List application snapshots"},
}

func buildClassificationPrompt(query string, entities map[string]string, recent map[string]any) string {
	ents, _ := json.Marshal(entities)

	var b strings.Builder
	fmt.Fprintf(&b, "Query: %s\n\n", query)
	fmt.Fprintf(&b, "Pre-extracted entities: %s\n", ents)

	if pov, ok := recent["current_pov"].(map[string]string); ok && len(pov) > 0 {
		b.WriteString("\nCurrent POV context:\n")
		for _, dim := range []string{"period", "years", "scenario", "entity"} {
			if v := pov[dim]; v != "" {
				fmt.Fprintf(&b, "- %s: %s\n", dim, v)
			}
		}
	}

	b.WriteString("\nAvailable tools:\n")
	for _, td := range toolDescriptions {
		fmt.Fprintf(&b, "- %s: %s\n", td.Name, td.Desc)
	}
	b.WriteString("\nClassify the intent and respond with JSON only.")
	return b.String()
}

func buildSynthesisPrompt(query string, results, recent any) string {
	res, _ := json.MarshalIndent(results, "", "  ")
	ctx, _ := json.MarshalIndent(recent, "", "  ")
	return fmt.Sprintf("Synthesize these Planning query results:\n\nQuery: %s\n\nResults:\n%s\n\nContext:\n%s",
		query, res, ctx)
}

func buildRecommendationPrompt(query string, results, recent any) string {
	res, _ := json.MarshalIndent(results, "", "  ")
	ctx, _ := json.MarshalIndent(recent, "", "  ")
	return fmt.Sprintf("Given this Planning query and its results, recommend follow-up actions:\n\nQuery: %s\n\nResults:\n%s\n\nContext:\n%s",
		query, res, ctx)
}
