package memory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planpilot/internal/tools"
)

func TestGetOrCreateSessionDefaults(t *testing.T) {
	m := New(nil)
	sess := m.GetOrCreateSession("s1")
	require.NotNil(t, sess)
	assert.Equal(t, DefaultPOV(), sess.POV)

	// Same session comes back on repeat calls.
	assert.Same(t, sess, m.GetOrCreateSession("s1"))
	assert.NotSame(t, sess, m.GetOrCreateSession("s2"))
}

func TestUpdateFromEntities(t *testing.T) {
	m := New(nil)
	m.UpdateFromEntities("s1", map[string]string{
		"entity": "E600",
		"years":  "FY26",
		"job_id": "12345678",
	})

	pov := m.GetPOV("s1")
	assert.Equal(t, "E600", pov.Entity)
	assert.Equal(t, "FY26", pov.Years)
	// job_id has no POV dimension and is dropped.
	assert.Equal(t, "Actual", pov.Scenario)
}

func TestQueryBufferBounded(t *testing.T) {
	m := New(nil)
	for i := 0; i < 15; i++ {
		m.RecordQuery("s1", fmt.Sprintf("query %d", i), "data_retrieval", nil, nil, true, 0)
	}

	sess := m.GetOrCreateSession("s1")
	require.Len(t, sess.RecentQueries, maxRecentQueries)
	assert.Equal(t, "query 5", sess.RecentQueries[0].Query)
	assert.Equal(t, "query 14", sess.RecentQueries[len(sess.RecentQueries)-1].Query)
}

func TestResultBufferBounded(t *testing.T) {
	m := New(nil)
	for i := 0; i < 8; i++ {
		m.UpdateFromResult("s1", fmt.Sprintf("tool_%d", i), tools.Result{Status: tools.StatusSuccess})
	}

	sess := m.GetOrCreateSession("s1")
	require.Len(t, sess.RecentResults, maxRecentResults)
	assert.Equal(t, "tool_3", sess.RecentResults[0].Tool)
	assert.Equal(t, "tool_7", sess.LastTool)
}

func TestUpdateFromResultFeedsPOVAndFocus(t *testing.T) {
	m := New(nil)
	m.UpdateFromResult("s1", "smart_retrieve", tools.Result{
		Status: tools.StatusSuccess,
		Data: map[string]any{
			"entity":  "E700",
			"account": "410000",
			"value":   12345.0,
		},
	})

	pov := m.GetPOV("s1")
	assert.Equal(t, "E700", pov.Entity)
	assert.Equal(t, "410000", pov.Account)

	sess := m.GetOrCreateSession("s1")
	assert.Equal(t, "E700", sess.EntityFocus)
	assert.Equal(t, "410000", sess.AccountFocus)
}

func TestSuggestedParams(t *testing.T) {
	m := New(nil)

	params := m.SuggestedParams("s1", "smart_retrieve_revenue")
	assert.Equal(t, map[string]any{
		"entity":      "E501",
		"period":      "YearTotal",
		"years":       "FY25",
		"scenario":    "Actual",
		"cost_center": "CC9999",
	}, params)

	// Account is unset by default and must be omitted.
	params = m.SuggestedParams("s1", "smart_retrieve")
	assert.NotContains(t, params, "account")

	// Tools outside the retrieval family get nothing.
	assert.Empty(t, m.SuggestedParams("s1", "list_jobs"))
}

func TestSuggestedParamsAfterFocusChange(t *testing.T) {
	m := New(nil)
	m.SetPOV("s1", map[string]string{"account": "400000", "entity": "E600"})

	params := m.SuggestedParams("s1", "smart_retrieve_monthly")
	assert.Equal(t, "400000", params["account"])
	assert.Equal(t, "E600", params["entity"])
}

func TestRecentContextTails(t *testing.T) {
	m := New(nil)
	for i := 0; i < 6; i++ {
		m.RecordQuery("s1", fmt.Sprintf("query %d", i), "data_retrieval", nil, nil, true, 0)
	}
	for i := 0; i < 4; i++ {
		m.UpdateFromResult("s1", fmt.Sprintf("tool_%d", i), tools.Result{Status: tools.StatusSuccess})
	}

	ctx := m.RecentContext("s1")
	queries := ctx["recent_queries"].([]QueryRecord)
	require.Len(t, queries, 3)
	assert.Equal(t, "query 5", queries[2].Query)

	results := ctx["recent_results"].([]ResultRecord)
	require.Len(t, results, 2)
	assert.Equal(t, "tool_3", results[1].Tool)

	assert.Equal(t, "tool_3", ctx["last_tool_used"])
	assert.Equal(t, DefaultPOV().Map(), ctx["current_pov"])
}

func TestCacheKeyStable(t *testing.T) {
	a := CacheKey("smart_retrieve", map[string]any{"entity": "E501", "years": "FY25"})
	b := CacheKey("smart_retrieve", map[string]any{"years": "FY25", "entity": "E501"})
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)

	c := CacheKey("smart_retrieve", map[string]any{"entity": "E600", "years": "FY25"})
	assert.NotEqual(t, a, c)
}
