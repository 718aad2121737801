package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"planpilot/internal/logging"
	"planpilot/internal/tools"
)

// TTLs per context type. Reads filter on expires_at; there is no
// background sweeper.
var contextTTL = map[string]time.Duration{
	"pov":           24 * time.Hour,
	"entity_focus":  time.Hour,
	"query_history": 7 * 24 * time.Hour,
	"result_cache":  30 * time.Minute,
}

const defaultTTL = time.Hour

func ttlFor(contextType string) time.Duration {
	if ttl, ok := contextTTL[contextType]; ok {
		return ttl
	}
	return defaultTTL
}

// entityToPOV maps extracted entity keys onto POV dimensions.
var entityToPOV = map[string]string{
	"period":      "period",
	"year":        "years",
	"years":       "years",
	"scenario":    "scenario",
	"version":     "version",
	"currency":    "currency",
	"entity":      "entity",
	"cost_center": "cost_center",
	"region":      "region",
	"account":     "account",
}

// suggestedToolParams lists which POV dimensions each retrieval tool can
// be pre-filled with.
var suggestedToolParams = map[string][]string{
	"smart_retrieve":          {"account", "entity", "period", "years", "scenario", "version", "cost_center", "region", "currency"},
	"smart_retrieve_revenue":  {"entity", "period", "years", "scenario", "cost_center"},
	"smart_retrieve_monthly":  {"account", "entity", "years", "scenario", "cost_center"},
	"smart_retrieve_variance": {"account", "entity", "period", "years", "cost_center"},
}

// resultPOVKeys are the data fields a tool result may report back that
// update the POV.
var resultPOVKeys = []string{"entity", "account", "period", "years", "scenario", "version", "cost_center", "region"}

// Memory manages per-session conversation state. In-memory state is
// authoritative; the store is a best-effort mirror and every persistence
// failure is swallowed after a debug log.
type Memory struct {
	mu       sync.Mutex
	sessions map[string]*Session
	store    *Store
	log      *logging.Logger
}

// New builds a Memory manager. store may be nil to disable persistence.
func New(store *Store) *Memory {
	return &Memory{
		sessions: make(map[string]*Session),
		store:    store,
		log:      logging.Get(logging.CategoryMemory),
	}
}

// GetOrCreateSession returns the session, creating it (with the stored
// POV if one survives, defaults otherwise) on first use.
func (m *Memory) GetOrCreateSession(sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session(sessionID)
}

// session is GetOrCreateSession without the lock; callers hold m.mu.
func (m *Memory) session(sessionID string) *Session {
	if sess, ok := m.sessions[sessionID]; ok {
		return sess
	}
	sess := newSession(m.loadPOV(sessionID))
	m.sessions[sessionID] = sess
	return sess
}

func (m *Memory) loadPOV(sessionID string) POVState {
	data, ok, err := m.store.LoadContext(sessionID, "pov")
	if err != nil {
		m.log.Debugf("pov load failed for %s: %v", sessionID, err)
		return DefaultPOV()
	}
	if !ok {
		return DefaultPOV()
	}
	var flat map[string]string
	if err := json.Unmarshal([]byte(data), &flat); err != nil {
		m.log.Debugf("pov decode failed for %s: %v", sessionID, err)
		return DefaultPOV()
	}
	return povFromMap(flat)
}

// SetPOV applies dimension changes to the session POV and mirrors the
// new state to the store.
func (m *Memory) SetPOV(sessionID string, changes map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setPOV(sessionID, changes)
}

func (m *Memory) setPOV(sessionID string, changes map[string]string) {
	sess := m.session(sessionID)
	sess.POV = sess.POV.Update(changes)

	data, err := json.Marshal(sess.POV.Map())
	if err != nil {
		return
	}
	if err := m.store.SaveContext(sessionID, "pov", string(data), ttlFor("pov")); err != nil {
		m.log.Debugf("pov save failed for %s: %v", sessionID, err)
	}
}

// GetPOV returns the session's current POV.
func (m *Memory) GetPOV(sessionID string) POVState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session(sessionID).POV
}

// UpdateFromEntities folds freshly extracted entities into the POV.
// Unknown entity keys (job_id and the like) are ignored.
func (m *Memory) UpdateFromEntities(sessionID string, entities map[string]string) {
	changes := make(map[string]string)
	for key, value := range entities {
		if dim, ok := entityToPOV[key]; ok {
			changes[dim] = value
		}
	}
	if len(changes) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setPOV(sessionID, changes)
}

// UpdateFromResult learns from a completed tool call: POV dimensions the
// result reports back, the entity and account focus, the bounded result
// buffer, and the result cache.
func (m *Memory) UpdateFromResult(sessionID, tool string, result tools.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.session(sessionID)
	changes := make(map[string]string)
	for _, key := range resultPOVKeys {
		if v, ok := result.Data[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				changes[key] = s
			}
		}
	}
	if v, ok := changes["entity"]; ok {
		sess.EntityFocus = v
	}
	if v, ok := changes["account"]; ok {
		sess.AccountFocus = v
	}
	if len(changes) > 0 {
		m.setPOV(sessionID, changes)
	}

	summary := summarizeResult(result)
	sess.addResult(tool, result.Parameters, summary)
	m.cacheResult(sessionID, tool, result, summary)
}

func (m *Memory) cacheResult(sessionID, tool string, result tools.Result, summary map[string]any) {
	key := CacheKey(tool, result.Parameters)
	params, _ := json.Marshal(result.Parameters)
	summ, _ := json.Marshal(summary)
	full, _ := json.Marshal(result)
	if err := m.store.CacheResult(sessionID, key, tool, string(params), string(summ), string(full), ttlFor("result_cache")); err != nil {
		m.log.Debugf("result cache write failed for %s: %v", sessionID, err)
	}
}

// RecordQuery remembers one processed query in the session buffer and the
// persistent history.
func (m *Memory) RecordQuery(sessionID, query, intent string, entities map[string]string, toolsUsed []string, success bool, execTime time.Duration) {
	m.mu.Lock()
	sess := m.session(sessionID)
	sess.addQuery(query, intent, entities)
	m.mu.Unlock()

	ents, _ := json.Marshal(entities)
	used, _ := json.Marshal(toolsUsed)
	if err := m.store.RecordQuery(sessionID, query, intent, string(ents), string(used), success, execTime, ttlFor("query_history")); err != nil {
		m.log.Debugf("query history write failed for %s: %v", sessionID, err)
	}
}

// SuggestedParams projects the session POV onto a tool's parameter list,
// omitting empty values. Tools outside the retrieval family get nothing.
func (m *Memory) SuggestedParams(sessionID, tool string) map[string]any {
	m.mu.Lock()
	pov := m.session(sessionID).POV
	m.mu.Unlock()

	flat := pov.Map()
	params := make(map[string]any)
	for _, name := range suggestedToolParams[tool] {
		if v := flat[name]; v != "" {
			params[name] = v
		}
	}
	return params
}

// RecentContext returns a snapshot of the session's current POV, focus
// markers, and the tail of the query and result buffers. The snapshot
// feeds LLM prompts and the session display.
func (m *Memory) RecentContext(sessionID string) map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.session(sessionID)
	queries := sess.RecentQueries
	if len(queries) > 3 {
		queries = queries[len(queries)-3:]
	}
	results := sess.RecentResults
	if len(results) > 2 {
		results = results[len(results)-2:]
	}
	return map[string]any{
		"current_pov":    sess.POV.Map(),
		"entity_focus":   sess.EntityFocus,
		"account_focus":  sess.AccountFocus,
		"last_tool_used": sess.LastTool,
		"recent_queries": append([]QueryRecord(nil), queries...),
		"recent_results": append([]ResultRecord(nil), results...),
	}
}

// CacheKey derives the result-cache key for a tool call. JSON object keys
// marshal sorted, so the key is stable across param map ordering.
func CacheKey(tool string, params map[string]any) string {
	content, _ := json.Marshal(map[string]any{"tool": tool, "params": params})
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])[:32]
}

func summarizeResult(result tools.Result) map[string]any {
	summary := map[string]any{
		"status":   result.Status,
		"has_data": len(result.Data) > 0,
	}
	for _, key := range []string{"entity", "account", "period", "years", "scenario", "version"} {
		if v, ok := result.Data[key]; ok {
			summary[key] = v
		}
	}
	return summary
}
