package logging

import "testing"

func TestInitializeLevels(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"", false},
		{"loud", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			err := Initialize(Config{Level: tt.level})
			if (err != nil) != tt.wantErr {
				t.Errorf("Initialize(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
		})
	}
}

func TestGetBeforeInitialize(t *testing.T) {
	// Reset global state so the no-op fallback path is exercised.
	mu.Lock()
	base = nil
	loggers = make(map[Category]*Logger)
	mu.Unlock()

	l := Get(CategoryIntent)
	if l == nil {
		t.Fatal("Get returned nil before Initialize")
	}
	// Must not panic.
	l.Infof("hello %s", "world")
}

func TestCategoryDisable(t *testing.T) {
	if err := Initialize(Config{
		Level:      "debug",
		Categories: map[string]bool{"planner": false},
	}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if Get(CategoryPlanner).enabled {
		t.Error("planner category should be disabled")
	}
	if !Get(CategoryIntent).enabled {
		t.Error("intent category should default to enabled")
	}
}
