package plan

import "time"

// stepTemplate is one step of a playbook before parameter projection.
type stepTemplate struct {
	Tool          string
	Params        map[string]any
	Description   string
	ParallelGroup int
	Optional      bool
}

// playbook is a pre-defined execution pattern for a common planning
// operation. Trigger keywords are matched against the combined query,
// intent, sub-intent and entity-value text.
type playbook struct {
	Name              string
	Description       string
	Steps             []stepTemplate
	Triggers          []string
	EstimatedDuration time.Duration
	Priority          int
}

var playbooks = []playbook{
	{
		Name:        "Revenue Analysis",
		Description: "Analyze revenue across Rooms, F&B and Other departments",
		Steps: []stepTemplate{
			{
				Tool:          "smart_retrieve_revenue",
				Description:   "Retrieve comprehensive revenue breakdown",
				ParallelGroup: 0,
			},
			{
				Tool:          "smart_retrieve_monthly",
				Params:        map[string]any{"account": "400000"},
				Description:   "Retrieve monthly revenue trend",
				ParallelGroup: 1,
			},
		},
		Triggers:          []string{"revenue", "rooms", "f&b", "sales", "income statement"},
		EstimatedDuration: 8 * time.Second,
		Priority:          10,
	},
	{
		Name:        "Variance Analysis",
		Description: "Compare actual results against forecast or prior year",
		Steps: []stepTemplate{
			{
				Tool:          "smart_retrieve_variance",
				Description:   "Execute variance analysis",
				ParallelGroup: 0,
			},
		},
		Triggers:          []string{"variance", "compare", "actual vs forecast", "actual vs budget", "versus", "vs"},
		EstimatedDuration: 6 * time.Second,
		Priority:          8,
	},
	{
		Name:        "Plan Data Copy",
		Description: "Copy data between scenarios (e.g. Forecast to Budget)",
		Steps: []stepTemplate{
			{
				Tool:          "copy_data",
				Description:   "Copy data across scenarios and years",
				ParallelGroup: 0,
			},
		},
		Triggers:          []string{"copy data", "copy from", "duplicate plan"},
		EstimatedDuration: 15 * time.Second,
		Priority:          7,
	},
	{
		Name:        "Dimension Check",
		Description: "Explore dimensions and members",
		Steps: []stepTemplate{
			{
				Tool:          "get_dimensions",
				Description:   "List all dimensions",
				ParallelGroup: 0,
			},
			{
				Tool:          "get_members",
				Params:        map[string]any{"dimension_name": "Entity"},
				Description:   "List entity members",
				ParallelGroup: 1,
				Optional:      true,
			},
		},
		Triggers:          []string{"list entities", "show dimensions", "what are the members", "dimension list"},
		EstimatedDuration: 5 * time.Second,
		Priority:          6,
	},
}
