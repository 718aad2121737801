// Package config loads planpilot configuration from a YAML file with
// environment variable overrides. Missing files fall back to defaults so the
// binary runs out of the box in mock mode.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"planpilot/internal/logging"
)

// Config holds all planpilot configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Planning application connection
	Planning PlanningConfig `yaml:"planning"`

	// Session memory and episode storage
	Memory MemoryConfig `yaml:"memory"`

	// LLM collaborator
	LLM LLMConfig `yaml:"llm"`

	// RL recommendation service
	RL RLConfig `yaml:"rl"`

	// Orchestrator knobs
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`

	// Logging
	Logging logging.Config `yaml:"logging"`
}

// PlanningConfig configures the remote planning application.
type PlanningConfig struct {
	BaseURL    string `yaml:"base_url"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	APIVersion string `yaml:"api_version"`
	AppName    string `yaml:"app_name"`
	MockMode   bool   `yaml:"mock_mode"`
	Timeout    string `yaml:"timeout"`
}

// MemoryConfig configures context memory persistence.
type MemoryConfig struct {
	DatabasePath      string `yaml:"database_path"`
	EnablePersistence bool   `yaml:"enable_persistence"`
}

// LLMConfig configures the Gemini reasoner.
type LLMConfig struct {
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	Timeout     string  `yaml:"timeout"`
}

// RLConfig configures the tool recommendation service.
type RLConfig struct {
	Enabled    bool `yaml:"enabled"`
	MinSamples int  `yaml:"min_samples"`
}

// OrchestratorConfig configures pipeline behavior.
type OrchestratorConfig struct {
	UseLLM              bool    `yaml:"use_llm"`
	UseRL               bool    `yaml:"use_rl"`
	UseContextMemory    bool    `yaml:"use_context_memory"`
	EnableParallel      bool    `yaml:"enable_parallel"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	MaxSteps            int     `yaml:"max_steps"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "planpilot",
		Version: "1.0.0",

		Planning: PlanningConfig{
			APIVersion: "v3",
			AppName:    "PlanApp",
			MockMode:   true,
			Timeout:    "60s",
		},

		Memory: MemoryConfig{
			DatabasePath:      "data/planpilot.db",
			EnablePersistence: true,
		},

		LLM: LLMConfig{
			Model:       "gemini-2.0-flash",
			MaxTokens:   1024,
			Temperature: 0.3,
			Timeout:     "120s",
		},

		RL: RLConfig{
			Enabled:    true,
			MinSamples: 3,
		},

		Orchestrator: OrchestratorConfig{
			UseLLM:              true,
			UseRL:               true,
			UseContextMemory:    true,
			EnableParallel:      true,
			ConfidenceThreshold: 0.7,
			MaxSteps:            10,
		},

		Logging: logging.Config{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Run on defaults when no config file is present
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("PLANNING_URL"); url != "" {
		c.Planning.BaseURL = url
		c.Planning.MockMode = false
	}
	if user := os.Getenv("PLANNING_USERNAME"); user != "" {
		c.Planning.Username = user
	}
	if pass := os.Getenv("PLANNING_PASSWORD"); pass != "" {
		c.Planning.Password = pass
	}
	if mock := os.Getenv("PLANNING_MOCK_MODE"); mock != "" {
		if v, err := strconv.ParseBool(mock); err == nil {
			c.Planning.MockMode = v
		}
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if model := os.Getenv("PLANPILOT_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if path := os.Getenv("PLANPILOT_DB"); path != "" {
		c.Memory.DatabasePath = path
	}
	if enabled := os.Getenv("RL_ENABLED"); enabled != "" {
		if v, err := strconv.ParseBool(enabled); err == nil {
			c.RL.Enabled = v
		}
	}
}

// PlanningTimeout returns the planning connection timeout as a duration.
func (c *Config) PlanningTimeout() time.Duration {
	d, err := time.ParseDuration(c.Planning.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// LLMTimeout returns the LLM timeout as a duration.
func (c *Config) LLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}
