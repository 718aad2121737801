package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"planpilot/internal/config"
	"planpilot/internal/llm"
	"planpilot/internal/logging"
	"planpilot/internal/memory"
	"planpilot/internal/orchestrator"
	"planpilot/internal/rl"
	"planpilot/internal/tools"
)

// app bundles the wired pipeline and its closable resources.
type app struct {
	cfg         *config.Config
	orch        *orchestrator.Orchestrator
	mem         *memory.Memory
	store       *memory.Store
	recommender *rl.SQLiteRecommender
}

// newApp wires the orchestrator from config. Optional collaborators that
// fail to come up are logged and skipped, never fatal.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log := logging.Get(logging.CategoryBoot)

	catalog := tools.DefaultCatalog()

	var executor tools.Executor
	if cfg.Planning.MockMode {
		log.Infof("running in mock mode")
		executor = tools.NewMockExecutor(catalog)
	} else {
		// Remote planning connections are not wired yet; the mock keeps
		// the pipeline usable until the REST adapter lands.
		log.Warnf("planning connection configured but no adapter available, using mock executor")
		executor = tools.NewMockExecutor(catalog)
	}

	var store *memory.Store
	if cfg.Memory.EnablePersistence {
		var err error
		store, err = memory.NewStore(cfg.Memory.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open memory store: %w", err)
		}
	}
	mem := memory.New(store)

	var reasoner llm.Reasoner
	if cfg.Orchestrator.UseLLM {
		r, err := llm.NewGeminiReasoner(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
		switch {
		case errors.Is(err, llm.ErrUnavailable):
			log.Warnf("no API key configured, running rules-only")
		case err != nil:
			log.Warnf("LLM reasoner unavailable: %v", err)
		default:
			reasoner = r
		}
	}

	var recommender *rl.SQLiteRecommender
	if cfg.RL.Enabled {
		path := filepath.Join(filepath.Dir(cfg.Memory.DatabasePath), "episodes.db")
		r, err := rl.NewSQLiteRecommender(path, cfg.RL.MinSamples)
		if err != nil {
			log.Warnf("RL recommender unavailable: %v", err)
		} else {
			recommender = r
		}
	}

	var rec rl.Recommender
	if recommender != nil {
		rec = recommender
	}
	orch := orchestrator.New(cfg.Orchestrator, executor, catalog, mem, reasoner, rec)

	return &app{
		cfg:         cfg,
		orch:        orch,
		mem:         mem,
		store:       store,
		recommender: recommender,
	}, nil
}

// Close releases databases. Safe on a partially wired app.
func (a *app) Close() {
	if a.recommender != nil {
		a.recommender.Close()
	}
	a.store.Close()
}
