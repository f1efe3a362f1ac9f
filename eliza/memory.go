package eliza

import "time"

// historyCap bounds the per-session conversation history; the oldest exchange
// is dropped once the cap is exceeded. Sessions themselves are never evicted.
const historyCap = 20

type Context struct {
	Intent         string   `json:"intent"`
	Entities       []string `json:"entities"`
	Sentiment      string   `json:"sentiment"`
	Urgency        string   `json:"urgency"`
	RequiresAction bool     `json:"requires_action"`
}

type Exchange struct {
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Agent     string    `json:"agent"`
}

// Memory is the process-local state kept per chat session.
type Memory struct {
	SessionId   string            `json:"session_id"`
	Context     Context           `json:"context"`
	History     []Exchange        `json:"conversation_history"`
	Preferences map[string]string `json:"user_preferences"`
	CreatedAt   time.Time         `json:"created_at"`
	LastUpdated time.Time         `json:"last_updated"`
}

func newMemory(sessionId string) *Memory {
	now := time.Now().UTC()
	return &Memory{
		SessionId:   sessionId,
		History:     make([]Exchange, 0),
		Preferences: make(map[string]string),
		CreatedAt:   now,
		LastUpdated: now,
	}
}

func (m *Memory) append(userText string, agentText string) {
	m.History = append(m.History, Exchange{
		Timestamp: time.Now().UTC(),
		User:      userText,
		Agent:     agentText,
	})
	if len(m.History) > historyCap {
		m.History = m.History[len(m.History)-historyCap:]
	}
	m.LastUpdated = time.Now().UTC()
}

// snapshot returns a copy safe to hand out after the agent lock is released.
func (m *Memory) snapshot() Memory {
	copied := *m
	copied.History = make([]Exchange, len(m.History))
	copy(copied.History, m.History)
	copied.Preferences = make(map[string]string, len(m.Preferences))
	for k, v := range m.Preferences {
		copied.Preferences[k] = v
	}
	return copied
}
