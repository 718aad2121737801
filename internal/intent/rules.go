package intent

import "regexp"

// subIntentRule is a secondary pattern tested within a winning category.
// First match wins; rules are ordered.
type subIntentRule struct {
	name    string
	pattern *regexp.Regexp
}

// categoryRule is the full scoring table for one intent category:
// structural patterns, positive/negative keywords, the tools the category
// suggests, secondary sub-intent patterns, and which entity dimensions make
// the category more plausible.
type categoryRule struct {
	intentType       Type
	patterns         []*regexp.Regexp
	keywords         []string
	negativeKeywords []string
	tools            []string
	subIntents       []subIntentRule
	relevantEntities []string
}

func re(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + pattern)
}

// categoryRules is the ordered rule table. Order fixes argmax tie-breaking:
// the first category with the top score wins.
var categoryRules = []categoryRule{
	{
		intentType: TypeDataRetrieval,
		patterns: []*regexp.Regexp{
			re(`(?:get|retrieve|export|show|what is|what's|tell me|give me|fetch).{0,30}(?:data|value|balance|amount|number|revenue|expense)`),
			re(`(?:revenue|profit|income|expense|asset|liability|equity|cash)`),
			re(`(?:rooms|f&b|other|total revenue|net income|operating|gross margin)`),
			re(`(?:how much|what are the).{0,20}(?:for|in|at)`),
			re(`(?:pull|extract).{0,20}(?:data|numbers|figures)`),
		},
		keywords: []string{"data", "value", "balance", "amount", "revenue", "profit", "income",
			"expense", "retrieve", "get", "show", "export", "pull", "fetch", "rooms"},
		negativeKeywords: []string{"job", "status", "dimension", "member", "variable", "document"},
		tools:            []string{"smart_retrieve", "smart_retrieve_revenue", "smart_retrieve_monthly", "export_data_slice"},
		subIntents: []subIntentRule{
			{"single_value", re(`(?:what is|what's|show me).{0,20}(?:the|a)?\s*(?:value|balance|amount)`)},
			{"time_series", re(`(?:trend|over time|monthly|quarterly|by period)`)},
			{"revenue_breakdown", re(`(?:revenue|rooms|f&b|breakdown)`)},
		},
		relevantEntities: []string{"account", "entity", "period", "years", "scenario"},
	},
	{
		intentType: TypeDimensionExploration,
		patterns: []*regexp.Regexp{
			re(`(?:list|show|get|what are).{0,20}(?:dimension|member|hierarchy|entities|accounts|cost centers|regions)`),
			re(`(?:what|which|how many).{0,20}(?:entities|accounts|members|dimensions|cc|regions)`),
			re(`(?:children|descendants|parent|ancestors).{0,20}(?:of|for)`),
			re(`(?:explore|browse|navigate).{0,20}(?:hierarchy|structure|tree)`),
		},
		keywords: []string{"dimension", "member", "hierarchy", "entity", "account", "list",
			"children", "parent", "structure", "metadata", "cost center", "region"},
		negativeKeywords: []string{"value", "balance", "data", "job"},
		tools:            []string{"get_dimensions", "get_members", "get_member"},
		subIntents: []subIntentRule{
			{"list_all", re(`(?:all|list all|show all|every)`)},
			{"hierarchy", re(`(?:hierarchy|children|parent|structure|tree)`)},
			{"search", re(`(?:find|search|look for|where is)`)},
		},
		relevantEntities: []string{"entity", "account", "cost_center", "region"},
	},
	{
		intentType: TypeBusinessRule,
		patterns: []*regexp.Regexp{
			re(`(?:run|execute|trigger|start).{0,20}(?:rule|business rule|calculation|calc)`),
			re(`(?:calculate|compute).{0,20}(?:revenue|expense|net income|plan)`),
		},
		keywords:         []string{"rule", "business rule", "execute", "run", "calculate", "calc", "compute"},
		negativeKeywords: []string{"job status"},
		tools:            []string{"execute_job"},
		subIntents: []subIntentRule{
			{"run", re(`(?:run|execute|trigger|start)`)},
		},
	},
	{
		intentType: TypeJobManagement,
		patterns: []*regexp.Regexp{
			re(`(?:job|task|process|batch).{0,20}(?:status|running|complete|failed)`),
			re(`(?:check|monitor|track|what happened).{0,20}(?:job|task|process)`),
			re(`(?:list|show|get).{0,20}(?:job|task|recent job)`),
			re(`(?:is the|did the).{0,20}(?:job|rule|process).{0,20}(?:finish|complete|fail)`),
		},
		keywords: []string{"job", "task", "process", "status", "running", "complete",
			"failed", "monitor", "check", "batch"},
		negativeKeywords: []string{"data"},
		tools:            []string{"list_jobs", "get_job_status"},
		subIntents: []subIntentRule{
			{"status", re(`(?:status|progress|state|how is)`)},
			{"list", re(`(?:list|show|recent|all)`)},
		},
		relevantEntities: []string{"job_id"},
	},
	{
		intentType: TypeVarianceAnalysis,
		patterns: []*regexp.Regexp{
			re(`(?:variance|var|difference|delta|change)`),
			re(`(?:actual|forecast|budget).{0,20}(?:vs|versus|against|compared)`),
			re(`(?:compare|comparison).{0,20}(?:actual|forecast|budget|prior)`),
			re(`(?:year over year|yoy|month over month|mom|period over period)`),
		},
		keywords: []string{"variance", "compare", "comparison", "versus", "vs", "actual",
			"forecast", "budget", "yoy", "mom", "delta", "change"},
		tools: []string{"smart_retrieve_variance", "smart_retrieve"},
		subIntents: []subIntentRule{
			{"actual_vs_forecast", re(`(?:actual).{0,10}(?:vs|versus|forecast)`)},
			{"yoy", re(`(?:year over year|yoy|prior year|py)`)},
		},
		relevantEntities: []string{"scenario", "period", "years", "account"},
	},
	{
		intentType: TypeDataManagement,
		patterns: []*regexp.Regexp{
			re(`(?:copy|clear|delete|move).{0,20}(?:data|numbers|figures|plan)`),
			re(`(?:copy from).{0,20}(?:to)`),
			re(`(?:wipe|clean|reset).{0,20}(?:scenario|period|year)`),
		},
		keywords: []string{"copy", "clear", "delete", "move", "wipe", "clean", "reset"},
		tools:    []string{"copy_data", "clear_data"},
		subIntents: []subIntentRule{
			{"copy", re(`(?:copy|move)`)},
			{"clear", re(`(?:clear|delete|wipe|reset)`)},
		},
		relevantEntities: []string{"scenario", "period", "years"},
	},
	{
		intentType: TypeSubstitutionVariables,
		patterns: []*regexp.Regexp{
			re(`(?:variable|sub var|substitution variable)`),
			re(`(?:set|update|change).{0,20}(?:variable|value)`),
			re(`(?:get|list|show).{0,20}(?:variable|vars)`),
		},
		keywords: []string{"variable", "sub var", "substitution", "set", "update"},
		tools:    []string{"get_substitution_variables", "set_substitution_variable"},
	},
	{
		intentType: TypeDocumentManagement,
		patterns: []*regexp.Regexp{
			re(`(?:document|file|library|folder|report file)`),
			re(`(?:list|show|get).{0,20}(?:document|file|library)`),
		},
		keywords: []string{"document", "file", "library", "folder"},
		tools:    []string{"get_documents"},
	},
}
