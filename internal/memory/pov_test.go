package memory

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultPOV(t *testing.T) {
	pov := DefaultPOV()
	want := POVState{
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
	if diff := cmp.Diff(want, pov); diff != "" {
		t.Errorf("DefaultPOV mismatch (-want +got):\n%s", diff)
	}
	if pov.Account != "" {
		t.Errorf("Account should start unset, got %q", pov.Account)
	}
}

func TestPOVUpdateDoesNotMutateReceiver(t *testing.T) {
	base := DefaultPOV()
	snapshot := base

	next := base.Update(map[string]string{
		"entity": "E600",
		"years":  "FY26",
	})

	if diff := cmp.Diff(snapshot, base); diff != "" {
		t.Errorf("Update mutated receiver (-want +got):\n%s", diff)
	}
	if next.Entity != "E600" || next.Years != "FY26" {
		t.Errorf("Update not applied: %+v", next)
	}
	if next.Scenario != "Actual" {
		t.Errorf("untouched field changed: %q", next.Scenario)
	}
}

func TestPOVUpdateIgnoresUnknownKeys(t *testing.T) {
	base := DefaultPOV()
	next := base.Update(map[string]string{"job_id": "12345678", "bogus": "x"})
	if diff := cmp.Diff(base, next); diff != "" {
		t.Errorf("unknown keys changed the POV (-want +got):\n%s", diff)
	}
}

func TestPOVMapRoundTrip(t *testing.T) {
	pov := DefaultPOV().Update(map[string]string{"account": "400000", "period": "Jan"})
	got := povFromMap(pov.Map())
	if diff := cmp.Diff(pov, got); diff != "" {
		t.Errorf("Map/povFromMap round trip mismatch (-want +got):\n%s", diff)
	}
}
