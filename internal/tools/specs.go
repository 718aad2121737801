package tools

// stringProps builds a schema whose listed parameters are all plain strings.
func stringProps(names ...string) Schema {
	props := make(map[string]Property, len(names))
	for _, n := range names {
		props[n] = Property{Type: "string"}
	}
	return Schema{Type: "object", Properties: props}
}

// DefaultCatalog returns the catalog of planning application tools.
// Registration order matters: dynamic planning and the informational
// fallback pick from the front of the list.
func DefaultCatalog() *Catalog {
	c := NewCatalog()

	c.MustRegister(&Spec{
		Name:        "smart_retrieve",
		Description: "Retrieve financial data with automatic 10-dimension handling",
		InputSchema: stringProps("account", "entity", "period", "years", "scenario", "version", "cost_center", "region", "currency"),
	})
	c.MustRegister(&Spec{
		Name:        "smart_retrieve_revenue",
		Description: "Get revenue breakdown (Rooms, F&B, Other)",
		InputSchema: stringProps("entity", "period", "years", "scenario", "cost_center"),
	})
	c.MustRegister(&Spec{
		Name:        "smart_retrieve_monthly",
		Description: "Get monthly data for an account",
		InputSchema: stringProps("account", "entity", "years", "scenario", "cost_center"),
	})
	c.MustRegister(&Spec{
		Name:        "smart_retrieve_variance",
		Description: "Perform variance analysis (Actual vs Forecast/Prior Year)",
		InputSchema: stringProps("account", "entity", "period", "years", "prior_year", "cost_center"),
	})
	c.MustRegister(&Spec{
		Name:        "export_data_slice",
		Description: "Export data slice with custom grid definition",
		InputSchema: stringProps("plan_type", "grid_definition"),
	})
	c.MustRegister(&Spec{
		Name:        "get_dimensions",
		Description: "List all dimensions",
		InputSchema: stringProps(),
	})
	c.MustRegister(&Spec{
		Name:        "get_members",
		Description: "Get members of a dimension",
		InputSchema: Schema{
			Type:       "object",
			Properties: map[string]Property{"dimension_name": {Type: "string"}},
			Required:   []string{"dimension_name"},
		},
	})
	c.MustRegister(&Spec{
		Name:        "get_member",
		Description: "Get details for a specific member",
		InputSchema: stringProps("dimension_name", "member_name", "expansion"),
	})
	c.MustRegister(&Spec{
		Name:        "list_jobs",
		Description: "List recent jobs",
		InputSchema: stringProps(),
	})
	c.MustRegister(&Spec{
		Name:        "get_job_status",
		Description: "Check status of a specific job",
		InputSchema: stringProps("job_id"),
	})
	c.MustRegister(&Spec{
		Name:        "execute_job",
		Description: "Execute a business rule or task",
		InputSchema: stringProps("job_type", "job_name", "parameters"),
	})
	c.MustRegister(&Spec{
		Name:        "copy_data",
		Description: "Copy data between scenarios/years/periods",
		InputSchema: stringProps("from_scenario", "from_year", "from_period", "to_scenario", "to_year", "to_period"),
	})
	c.MustRegister(&Spec{
		Name:        "clear_data",
		Description: "Clear data for a slice",
		InputSchema: stringProps("scenario", "year", "period"),
	})
	c.MustRegister(&Spec{
		Name:        "get_substitution_variables",
		Description: "List substitution variables",
		InputSchema: stringProps(),
	})
	c.MustRegister(&Spec{
		Name:        "set_substitution_variable",
		Description: "Update a substitution variable",
		InputSchema: stringProps("variable_name", "value", "plan_type"),
	})
	c.MustRegister(&Spec{
		Name:        "get_documents",
		Description: "List library documents",
		InputSchema: stringProps(),
	})
	c.MustRegister(&Spec{
		Name:        "get_snapshots",
		Description: "List application snapshots",
		InputSchema: stringProps(),
	})
	c.MustRegister(&Spec{
		Name:        "get_application_info",
		Description: "Get planning application information",
		InputSchema: stringProps(),
	})
	c.MustRegister(&Spec{
		Name:        "get_rest_api_version",
		Description: "Get the REST API version of the planning service",
		InputSchema: stringProps(),
	})

	return c
}
