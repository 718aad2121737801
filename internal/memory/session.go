package memory

import "time"

const (
	maxRecentQueries = 10
	maxRecentResults = 5
)

// QueryRecord is one remembered user query.
type QueryRecord struct {
	Query     string            `json:"query"`
	Intent    string            `json:"intent"`
	Entities  map[string]string `json:"entities"`
	Timestamp time.Time         `json:"timestamp"`
}

// ResultRecord is one remembered tool result summary.
type ResultRecord struct {
	Tool      string         `json:"tool_name"`
	Params    map[string]any `json:"params"`
	Summary   map[string]any `json:"summary"`
	Timestamp time.Time      `json:"timestamp"`
}

// Session is the in-memory state of one conversation. Access goes through
// the Memory manager, which holds the lock.
type Session struct {
	POV           POVState
	RecentQueries []QueryRecord
	RecentResults []ResultRecord
	EntityFocus   string
	AccountFocus  string
	LastTool      string
	LastActivity  time.Time
}

func newSession(pov POVState) *Session {
	return &Session{POV: pov, LastActivity: time.Now().UTC()}
}

// addQuery appends to the bounded query buffer, evicting the oldest entry
// once the cap is reached.
func (s *Session) addQuery(query, intent string, entities map[string]string) {
	s.RecentQueries = append(s.RecentQueries, QueryRecord{
		Query:     query,
		Intent:    intent,
		Entities:  entities,
		Timestamp: time.Now().UTC(),
	})
	if len(s.RecentQueries) > maxRecentQueries {
		s.RecentQueries = s.RecentQueries[len(s.RecentQueries)-maxRecentQueries:]
	}
	s.LastActivity = time.Now().UTC()
}

// addResult appends to the bounded result buffer and records the tool as
// the most recently used one.
func (s *Session) addResult(tool string, params, summary map[string]any) {
	s.RecentResults = append(s.RecentResults, ResultRecord{
		Tool:      tool,
		Params:    params,
		Summary:   summary,
		Timestamp: time.Now().UTC(),
	})
	if len(s.RecentResults) > maxRecentResults {
		s.RecentResults = s.RecentResults[len(s.RecentResults)-maxRecentResults:]
	}
	s.LastTool = tool
	s.LastActivity = time.Now().UTC()
}
