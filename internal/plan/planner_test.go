package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allTools = []string{
	"smart_retrieve", "smart_retrieve_revenue", "smart_retrieve_monthly",
	"smart_retrieve_variance", "export_data_slice", "get_dimensions",
	"get_members", "get_member", "list_jobs", "get_job_status",
	"execute_job", "copy_data", "clear_data", "get_substitution_variables",
	"set_substitution_variable", "get_documents", "get_snapshots",
	"get_application_info", "get_rest_api_version",
}

func TestCreatePlanRevenuePlaybook(t *testing.T) {
	p := NewPlanner()
	plan := p.CreatePlan(Request{
		Intent:         "data_retrieval",
		Entities:       map[string]string{"years": "FY25", "entity": "E501"},
		AvailableTools: allTools,
		RawQuery:       "show me revenue for Chicago",
	})

	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "Revenue Analysis", plan.Name)

	first, second := plan.Steps[0], plan.Steps[1]
	assert.Equal(t, "smart_retrieve_revenue", first.Tool)
	assert.Equal(t, 0, first.ParallelGroup)
	assert.Empty(t, first.DependsOn)
	assert.Equal(t, "E501", first.Parameters["entity"])
	assert.Equal(t, "FY25", first.Parameters["years"])

	assert.Equal(t, "smart_retrieve_monthly", second.Tool)
	assert.Equal(t, 1, second.ParallelGroup)
	assert.Equal(t, []int{1}, second.DependsOn)
	// Template parameter wins over the retrieval default.
	assert.Equal(t, "400000", second.Parameters["account"])
}

func TestCreatePlanDropsUnavailablePlaybookSteps(t *testing.T) {
	p := NewPlanner()
	plan := p.CreatePlan(Request{
		Intent:         "data_retrieval",
		AvailableTools: []string{"smart_retrieve_revenue"},
		RawQuery:       "revenue breakdown please",
	})

	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "smart_retrieve_revenue", plan.Steps[0].Tool)
}

func TestCreatePlanDimensionCheckOptionalStep(t *testing.T) {
	p := NewPlanner()
	plan := p.CreatePlan(Request{
		Intent:         "dimension_exploration",
		AvailableTools: allTools,
		RawQuery:       "show dimensions in the app",
	})

	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "get_dimensions", plan.Steps[0].Tool)
	assert.False(t, plan.Steps[0].Optional)
	assert.Equal(t, "get_members", plan.Steps[1].Tool)
	assert.True(t, plan.Steps[1].Optional)
	assert.Equal(t, "Entity", plan.Steps[1].Parameters["dimension_name"])
}

func TestCreatePlanDynamicSequential(t *testing.T) {
	p := NewPlanner()
	plan := p.CreatePlan(Request{
		Intent:         "dimension_exploration",
		AvailableTools: allTools,
		SuggestedTools: []string{"get_dimensions", "get_members", "get_member", "list_jobs"},
		RawQuery:       "walk the outline",
	})

	require.Len(t, plan.Steps, 3, "dynamic plans cap at three steps")
	for i, step := range plan.Steps {
		assert.Equal(t, i, step.ParallelGroup)
		if i == 0 {
			assert.Empty(t, step.DependsOn)
		} else {
			assert.Equal(t, []int{plan.Steps[i-1].ID}, step.DependsOn)
		}
	}
	assert.Equal(t, "Dynamic Execution Plan", plan.Name)
}

func TestCreatePlanFallbackStep(t *testing.T) {
	p := NewPlanner()
	plan := p.CreatePlan(Request{
		Intent:         "unknown",
		AvailableTools: allTools,
		RawQuery:       "hello there",
	})

	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "get_application_info", plan.Steps[0].Tool)
}

func TestCreatePlanNeverEmpty(t *testing.T) {
	p := NewPlanner()
	plan := p.CreatePlan(Request{
		Intent:         "unknown",
		AvailableTools: []string{"list_jobs"},
		RawQuery:       "anything at all",
	})

	require.NotEmpty(t, plan.Steps)
	assert.Equal(t, "list_jobs", plan.Steps[0].Tool)
}

func TestDependencyIDsAlwaysEarlier(t *testing.T) {
	p := NewPlanner()
	queries := []Request{
		{Intent: "data_retrieval", AvailableTools: allTools, RawQuery: "revenue and rooms and f&b"},
		{Intent: "variance_analysis", AvailableTools: allTools, RawQuery: "actual vs budget variance"},
		{Intent: "dimension_exploration", AvailableTools: allTools, RawQuery: "dimension list"},
		{Intent: "job_management", AvailableTools: allTools, SuggestedTools: []string{"list_jobs", "get_job_status"}},
	}
	for _, req := range queries {
		plan := p.CreatePlan(req)
		seen := map[int]bool{}
		for _, step := range plan.Steps {
			for _, dep := range step.DependsOn {
				assert.True(t, seen[dep], "step %d depends on %d which was not assigned earlier", step.ID, dep)
			}
			seen[step.ID] = true
		}
	}
}

func TestParamsForToolYearFanOut(t *testing.T) {
	entities := map[string]string{"years": "FY25", "scenario": "Forecast"}

	params := paramsForTool("copy_data", entities)
	assert.Equal(t, "FY25", params["from_year"])
	assert.Equal(t, "FY25", params["to_year"])
	assert.NotContains(t, params, "years")

	params = paramsForTool("clear_data", entities)
	assert.Equal(t, "FY25", params["year"])
	assert.Equal(t, "Forecast", params["scenario"])
}

func TestParamsForToolAccountDefaults(t *testing.T) {
	params := paramsForTool("smart_retrieve_monthly", map[string]string{})
	assert.Equal(t, "Net Income", params["account"])

	params = paramsForTool("smart_retrieve", map[string]string{"account": "410000"})
	assert.Equal(t, "410000", params["account"])

	// Revenue tools have no account parameter or default to revenue.
	params = paramsForTool("smart_retrieve_revenue", map[string]string{})
	assert.NotContains(t, params, "account")
}

func TestParamsForToolDropsUnknownEntities(t *testing.T) {
	params := paramsForTool("get_members", map[string]string{
		"entity": "E501",
		"years":  "FY25",
	})
	assert.Empty(t, params)
}

func TestParallelGroupsOrdered(t *testing.T) {
	p := NewPlanner()
	plan := p.CreatePlan(Request{
		Intent:         "data_retrieval",
		AvailableTools: allTools,
		RawQuery:       "revenue trend",
	})

	order, groups := plan.ParallelGroups()
	require.Equal(t, []int{0, 1}, order)
	assert.Len(t, groups[0], 1)
	assert.Len(t, groups[1], 1)
}
