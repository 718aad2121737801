package rl

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	_ "modernc.org/sqlite"

	"planpilot/internal/logging"
)

const defaultMaxRecommendations = 3

// SQLiteRecommender persists episodes in SQLite and recommends tools by
// transition frequency over positively rewarded episodes.
type SQLiteRecommender struct {
	db *sql.DB
	mu sync.Mutex

	// MinSamples is the number of observed transitions required before a
	// tool is recommended.
	minSamples int
	log        *logging.Logger
}

// NewSQLiteRecommender opens (or creates) the episode database at path.
func NewSQLiteRecommender(path string, minSamples int) (*SQLiteRecommender, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	log := logging.Get(logging.CategoryRL)
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			log.Debugf("pragma failed: %s: %v", pragma, err)
		}
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS episodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			tool_sequence TEXT NOT NULL,
			reward REAL NOT NULL,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS tool_transitions (
			from_tool TEXT NOT NULL,
			to_tool TEXT NOT NULL,
			count INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (from_tool, to_tool)
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	if minSamples <= 0 {
		minSamples = 3
	}
	return &SQLiteRecommender{db: db, minSamples: minSamples, log: log}, nil
}

// LogEpisode appends the episode row and, for positively rewarded
// episodes, bumps the transition counts along the tool sequence. The
// empty string is the from-tool of a sequence's first step.
func (r *SQLiteRecommender) LogEpisode(ctx context.Context, sessionID string, toolSequence []string, reward float64, outcome string) error {
	if len(toolSequence) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	seq, err := json.Marshal(toolSequence)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO episodes (session_id, tool_sequence, reward, outcome)
		VALUES (?, ?, ?, ?)`,
		sessionID, string(seq), reward, outcome); err != nil {
		return err
	}

	if reward <= 0 {
		return nil
	}
	prev := ""
	for _, tool := range toolSequence {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO tool_transitions (from_tool, to_tool, count) VALUES (?, ?, 1)
			ON CONFLICT (from_tool, to_tool) DO UPDATE SET count = count + 1`,
			prev, tool); err != nil {
			return err
		}
		prev = tool
	}
	return nil
}

// Recommend returns up to three available tools that most often followed
// previousTool in rewarded episodes. Transitions below the sample
// threshold are ignored; an empty slice means "nothing to say".
func (r *SQLiteRecommender) Recommend(ctx context.Context, query, previousTool string, sessionLength int, availableTools []string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx, `
		SELECT to_tool, count FROM tool_transitions
		WHERE from_tool = ? AND count >= ?
		ORDER BY count DESC`,
		previousTool, r.minSamples)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type hit struct {
		tool  string
		count int
	}
	var hits []hit
	for rows.Next() {
		var h hit
		if err := rows.Scan(&h.tool, &h.count); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	available := make(map[string]bool, len(availableTools))
	for _, t := range availableTools {
		available[t] = true
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].count > hits[j].count })
	var out []string
	for _, h := range hits {
		if !available[h.tool] || h.tool == previousTool {
			continue
		}
		out = append(out, h.tool)
		if len(out) == defaultMaxRecommendations {
			break
		}
	}
	r.log.Debugf("recommend after %q: %v", previousTool, out)
	return out, nil
}

// EpisodeCount returns the total number of logged episodes.
func (r *SQLiteRecommender) EpisodeCount(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM episodes`).Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (r *SQLiteRecommender) Close() error {
	return r.db.Close()
}
