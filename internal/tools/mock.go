package tools

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"planpilot/internal/logging"
)

// MockExecutor serves canned results for every cataloged tool so the full
// pipeline can run without a planning connection. Each invocation gets a
// fresh execution id for feedback correlation, exactly like the live
// executor.
type MockExecutor struct {
	catalog *Catalog
}

// NewMockExecutor creates a mock executor over the given catalog.
func NewMockExecutor(catalog *Catalog) *MockExecutor {
	return &MockExecutor{catalog: catalog}
}

// Execute returns a canned success result echoing the slice coordinates the
// call asked for. Unknown tools fail the same way the live executor does.
func (m *MockExecutor) Execute(ctx context.Context, tool string, args map[string]any, sessionID, userQuery string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Failure(tool, args, err), nil
	}
	if !m.catalog.Has(tool) {
		return Failuref(tool, args, "unknown tool: %s", tool), nil
	}

	logging.Get(logging.CategoryTools).Debugf("mock execute %s session=%s", tool, sessionID)

	res := Success(tool, args, m.cannedData(tool, args))
	res.ExecutionID = uuid.NewString()
	res.FeedbackHint = fmt.Sprintf("Was this helpful? Rate it with submit_feedback(execution_id=%s, rating=1-5)", res.ExecutionID)
	return res, nil
}

func (m *MockExecutor) cannedData(tool string, args map[string]any) map[string]any {
	data := map[string]any{"mock": true}

	// Echo slice coordinates back so context memory picks them up the same
	// way it would from live retrievals.
	for _, key := range []string{"entity", "account", "period", "years", "scenario", "version", "cost_center", "region"} {
		if v, ok := args[key]; ok {
			data[key] = v
		}
	}

	switch tool {
	case "smart_retrieve":
		data["value"] = 1250000.0
	case "smart_retrieve_revenue":
		data["rooms"] = 820000.0
		data["f_and_b"] = 310000.0
		data["other"] = 120000.0
	case "smart_retrieve_monthly":
		data["months"] = []any{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	case "smart_retrieve_variance":
		data["variance"] = 48000.0
		data["variance_pct"] = 3.9
	case "get_dimensions":
		data["dimensions"] = []any{"Account", "Entity", "Scenario", "Years", "Period", "Version", "Currency", "CostCenter", "Region", "Future1"}
	case "get_members":
		data["members"] = []any{"E501", "E502", "E503"}
	case "list_jobs":
		data["jobs"] = []any{map[string]any{"job_id": "10000001", "status": "completed"}}
	case "get_job_status":
		data["job_status"] = "completed"
	case "get_substitution_variables":
		data["variables"] = map[string]any{"CurrYr": "FY25", "CurrMo": "Jun"}
	case "get_documents":
		data["documents"] = []any{"Monthly Pack.pdf", "Forecast Review.docx"}
	case "get_snapshots":
		data["snapshots"] = []any{"Artifact Snapshot"}
	case "get_application_info":
		data["application"] = "PlanApp"
		data["plan_types"] = []any{"FinPlan", "FinRPT"}
	case "get_rest_api_version":
		data["version"] = "v3"
	}

	return data
}
