// Package memory tracks conversational context across queries: the active
// point of view, entity focus, recent queries and results, and a sqlite
// store that survives restarts.
package memory

// POVState is the point of view applied to planning queries. Values are
// plain member names from the target application's dimensions. The zero
// value is not useful; start from DefaultPOV.
//
// POVState is immutable by convention: Update returns a modified copy and
// callers replace the whole value.
type POVState struct {
	Years      string `json:"years"`
	Period     string `json:"period"`
	Scenario   string `json:"scenario"`
	Version    string `json:"version"`
	Currency   string `json:"currency"`
	Entity     string `json:"entity"`
	CostCenter string `json:"cost_center"`
	Future1    string `json:"future1"`
	Region     string `json:"region"`
	Account    string `json:"account,omitempty"`
}

// DefaultPOV returns the starting point of view for a new session.
// Account is deliberately unset; retrieval tools pick their own default.
func DefaultPOV() POVState {
	return POVState{
		Years:      "FY25",
		Period:     "YearTotal",
		Scenario:   "Actual",
		Version:    "Final",
		Currency:   "USD",
		Entity:     "E501",
		CostCenter: "CC9999",
		Future1:    "No Future1",
		Region:     "R131",
	}
}

// Map flattens the POV to dimension-name keys. Account is present even
// when empty; consumers that care filter empty values.
func (p POVState) Map() map[string]string {
	return map[string]string{
		"years":       p.Years,
		"period":      p.Period,
		"scenario":    p.Scenario,
		"version":     p.Version,
		"currency":    p.Currency,
		"entity":      p.Entity,
		"cost_center": p.CostCenter,
		"future1":     p.Future1,
		"region":      p.Region,
		"account":     p.Account,
	}
}

// Update returns a copy with the given dimension values replaced.
// Unknown keys are ignored.
func (p POVState) Update(changes map[string]string) POVState {
	next := p
	for key, value := range changes {
		switch key {
		case "years":
			next.Years = value
		case "period":
			next.Period = value
		case "scenario":
			next.Scenario = value
		case "version":
			next.Version = value
		case "currency":
			next.Currency = value
		case "entity":
			next.Entity = value
		case "cost_center":
			next.CostCenter = value
		case "future1":
			next.Future1 = value
		case "region":
			next.Region = value
		case "account":
			next.Account = value
		}
	}
	return next
}

// povFromMap rebuilds a POVState from a flattened map, filling defaults
// for missing keys.
func povFromMap(data map[string]string) POVState {
	return DefaultPOV().Update(data)
}
