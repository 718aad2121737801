package plan

import (
	"strings"
	"time"
)

// toolParams is the allow-list of parameters each tool accepts. Entities
// that do not project onto a listed parameter are dropped for that tool.
var toolParams = map[string][]string{
	"smart_retrieve":           {"account", "entity", "period", "years", "scenario", "version", "cost_center", "region", "currency"},
	"smart_retrieve_revenue":   {"entity", "period", "years", "scenario", "cost_center"},
	"smart_retrieve_monthly":   {"account", "entity", "years", "scenario", "cost_center"},
	"smart_retrieve_variance":  {"account", "entity", "period", "years", "prior_year", "cost_center"},
	"export_data_slice":        {"plan_type", "grid_definition"},
	"get_members":              {"dimension_name"},
	"get_member":               {"dimension_name", "member_name", "expansion"},
	"execute_job":              {"job_type", "job_name", "parameters"},
	"copy_data":                {"from_scenario", "from_year", "from_period", "to_scenario", "to_year", "to_period"},
	"clear_data":               {"scenario", "year", "period"},
	"set_substitution_variable": {"variable_name", "value", "plan_type"},
	"get_job_status":           {"job_id"},
	"get_substitution_variables": {},
	"get_documents":            {},
	"get_snapshots":            {},
	"list_jobs":                {},
	"get_dimensions":           {},
}

// toolDurations is the static per-tool estimate used for dynamic plans.
var toolDurations = map[string]time.Duration{
	"smart_retrieve":          3 * time.Second,
	"smart_retrieve_revenue":  4 * time.Second,
	"smart_retrieve_monthly":  5 * time.Second,
	"smart_retrieve_variance": 4 * time.Second,
	"export_data_slice":       6 * time.Second,
	"get_dimensions":          2 * time.Second,
	"get_members":             3 * time.Second,
	"list_jobs":               2 * time.Second,
	"execute_job":             20 * time.Second,
	"copy_data":               15 * time.Second,
	"clear_data":              10 * time.Second,
}

const defaultToolDuration = 5 * time.Second

// toolDuration returns the estimate for a tool, falling back to the
// default for tools without an entry.
func toolDuration(tool string) time.Duration {
	if d, ok := toolDurations[tool]; ok {
		return d
	}
	return defaultToolDuration
}

// paramsForTool projects extracted entities onto a tool's parameter
// allow-list. Year entities fan out to every year-shaped parameter the
// tool accepts, and retrieval tools missing an account get a sensible
// default member.
func paramsForTool(tool string, entities map[string]string) map[string]any {
	valid, ok := toolParams[tool]
	if !ok {
		valid = nil
	}
	allowed := make(map[string]bool, len(valid))
	for _, p := range valid {
		allowed[p] = true
	}

	filtered := make(map[string]any)
	for name, value := range entities {
		if allowed[name] {
			filtered[name] = value
		}
	}

	if year, ok := entities["years"]; ok {
		for _, p := range []string{"years", "year", "from_year", "to_year"} {
			if allowed[p] {
				filtered[p] = year
			}
		}
	}

	if strings.HasPrefix(tool, "smart_retrieve") && allowed["account"] {
		if _, ok := filtered["account"]; !ok {
			if strings.Contains(tool, "revenue") {
				filtered["account"] = "400000"
			} else {
				filtered["account"] = "Net Income"
			}
		}
	}

	return filtered
}
