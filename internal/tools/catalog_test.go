package tools

import (
	"context"
	"strings"
	"testing"
)

func TestNewCatalog(t *testing.T) {
	c := NewCatalog()
	if c == nil {
		t.Fatal("NewCatalog returned nil")
	}
	if c.Count() != 0 {
		t.Errorf("new catalog should be empty, got %d tools", c.Count())
	}
}

func TestRegisterAndGet(t *testing.T) {
	c := NewCatalog()

	spec := &Spec{
		Name:        "test_tool",
		Description: "A test tool",
		InputSchema: stringProps("account"),
	}

	if err := c.Register(spec); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got := c.Get("test_tool")
	if got == nil {
		t.Fatal("Get returned nil for registered tool")
	}
	if got.Name != "test_tool" {
		t.Errorf("got name %q, want %q", got.Name, "test_tool")
	}
	if !c.Has("test_tool") {
		t.Error("Has returned false for registered tool")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	c := NewCatalog()

	spec := &Spec{Name: "dupe"}
	if err := c.Register(spec); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := c.Register(spec); err == nil {
		t.Fatal("expected error for duplicate registration")
	}
}

func TestRegisterEmptyName(t *testing.T) {
	c := NewCatalog()
	if err := c.Register(&Spec{}); err != ErrToolNameEmpty {
		t.Errorf("expected ErrToolNameEmpty, got %v", err)
	}
}

func TestNamesPreserveOrder(t *testing.T) {
	c := NewCatalog()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := c.Register(&Spec{Name: name}); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}

	names := c.Names()
	want := []string{"zeta", "alpha", "mid"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	for _, name := range []string{
		"smart_retrieve", "smart_retrieve_variance", "get_dimensions",
		"copy_data", "get_application_info",
	} {
		if !c.Has(name) {
			t.Errorf("default catalog missing %s", name)
		}
	}

	members := c.Get("get_members")
	if members == nil {
		t.Fatal("get_members not registered")
	}
	if len(members.InputSchema.Required) != 1 || members.InputSchema.Required[0] != "dimension_name" {
		t.Errorf("get_members required = %v, want [dimension_name]", members.InputSchema.Required)
	}
}

func TestMockExecutor(t *testing.T) {
	exec := NewMockExecutor(DefaultCatalog())

	res, err := exec.Execute(context.Background(), "smart_retrieve",
		map[string]any{"entity": "E501", "years": "FY25"}, "s1", "revenue query")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.IsSuccess() {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.ExecutionID == "" {
		t.Error("mock results should carry an execution id")
	}
	if res.Data["entity"] != "E501" {
		t.Errorf("mock should echo entity, got %v", res.Data["entity"])
	}
	if res.FeedbackHint == "" {
		t.Error("mock results should carry a feedback hint")
	}
	if !strings.Contains(res.FeedbackHint, res.ExecutionID) {
		t.Errorf("feedback hint should reference execution id %s, got %q", res.ExecutionID, res.FeedbackHint)
	}

	res, err = exec.Execute(context.Background(), "no_such_tool", nil, "s1", "")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.IsSuccess() {
		t.Error("unknown tool should produce an error result")
	}
}
