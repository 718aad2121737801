package memory

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"planpilot/internal/logging"
)

// Store persists conversation context, query history and cached results
// in a local SQLite database. A nil *Store is valid and turns every
// method into a no-op, which is how persistence is disabled.
type Store struct {
	db     *sql.DB
	mu     sync.Mutex
	dbPath string
	log    *logging.Logger
}

// NewStore opens (or creates) the database at path and ensures the
// schema exists.
func NewStore(path string) (*Store, error) {
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

	log := logging.Get(logging.CategoryStore)
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			log.Debugf("pragma failed: %s: %v", pragma, err)
		}
	}

	s := &Store{db: db, dbPath: path, log: log}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS conversation_context (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			context_type TEXT NOT NULL,
			context_data TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			expires_at DATETIME,
			UNIQUE (session_id, context_type)
		)`,
		`CREATE INDEX IF NOT EXISTS ix_context_session_type
			ON conversation_context (session_id, context_type)`,
		`CREATE TABLE IF NOT EXISTS query_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			query_text TEXT,
			intent TEXT,
			entities TEXT,
			tools_used TEXT,
			success INTEGER,
			execution_time_ms REAL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			expires_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS ix_history_session
			ON query_history (session_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS result_cache (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			cache_key TEXT NOT NULL,
			tool_name TEXT,
			parameters TEXT,
			result_summary TEXT,
			full_result TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			expires_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS ix_cache_session_key
			ON result_cache (session_id, cache_key)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

// SaveContext upserts one context row for (session, type) with a fresh
// expiry.
func (s *Store) SaveContext(sessionID, contextType, data string, ttl time.Duration) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	_, err := s.db.Exec(`
		INSERT INTO conversation_context (session_id, context_type, context_data, created_at, updated_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_id, context_type) DO UPDATE SET
			context_data = excluded.context_data,
			updated_at = excluded.updated_at,
			expires_at = excluded.expires_at`,
		sessionID, contextType, data, now, now, now.Add(ttl))
	return err
}

// LoadContext returns the stored context data for (session, type), or
// ok=false when the row is missing or expired.
func (s *Store) LoadContext(sessionID, contextType string) (string, bool, error) {
	if s == nil {
		return "", false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var data string
	err := s.db.QueryRow(`
		SELECT context_data FROM conversation_context
		WHERE session_id = ? AND context_type = ? AND expires_at > ?`,
		sessionID, contextType, time.Now().UTC()).Scan(&data)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return data, true, nil
}

// CacheResult replaces any cached row under (session, key) with the new
// result.
func (s *Store) CacheResult(sessionID, cacheKey, tool, params, summary, fullResult string, ttl time.Duration) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if _, err := s.db.Exec(`DELETE FROM result_cache WHERE session_id = ? AND cache_key = ?`,
		sessionID, cacheKey); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO result_cache (session_id, cache_key, tool_name, parameters, result_summary, full_result, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, cacheKey, tool, params, summary, fullResult, now, now.Add(ttl))
	return err
}

// CachedResult returns the unexpired full result stored under
// (session, key), if any.
func (s *Store) CachedResult(sessionID, cacheKey string) (string, bool, error) {
	if s == nil {
		return "", false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var full string
	err := s.db.QueryRow(`
		SELECT full_result FROM result_cache
		WHERE session_id = ? AND cache_key = ? AND expires_at > ?`,
		sessionID, cacheKey, time.Now().UTC()).Scan(&full)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return full, true, nil
}

// RecordQuery appends one query history row.
func (s *Store) RecordQuery(sessionID, query, intent, entities, toolsUsed string, success bool, execTime time.Duration, ttl time.Duration) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	succ := 0
	if success {
		succ = 1
	}
	now := time.Now().UTC()
	_, err := s.db.Exec(`
		INSERT INTO query_history (session_id, query_text, intent, entities, tools_used, success, execution_time_ms, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, query, intent, entities, toolsUsed, succ,
		float64(execTime.Milliseconds()), now, now.Add(ttl))
	return err
}

// HistoryCount returns the number of unexpired history rows for a
// session.
func (s *Store) HistoryCount(sessionID string) (int, error) {
	if s == nil {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM query_history
		WHERE session_id = ? AND expires_at > ?`,
		sessionID, time.Now().UTC()).Scan(&n)
	return n, err
}

// Sessions lists the session IDs with unexpired context, most recently
// updated first.
func (s *Store) Sessions() ([]string, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT session_id, MAX(updated_at) AS last FROM conversation_context
		WHERE expires_at > ?
		GROUP BY session_id
		ORDER BY last DESC`,
		time.Now().UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id, last string
		if err := rows.Scan(&id, &last); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}
