package eliza

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"cosmossdk.io/log"
)

type Role string

const (
	RoleGovernance Role = "governance"
	RoleTreasury   Role = "treasury"
	RoleSecurity   Role = "security"
)

// Built-in agent names, matching the durable store records.
const (
	GovernanceAgentName = "Eliza-Governance"
	TreasuryAgentName   = "Eliza-Treasury"
	SecurityAgentName   = "Eliza-Security"
)

// decisionWindow is how many recent decisions Decisions returns.
const decisionWindow = 10

type Decision struct {
	Type              string    `json:"decision_type"`
	Confidence        float64   `json:"confidence"`
	Reasoning         string    `json:"reasoning"`
	RecommendedAction string    `json:"recommended_action"`
	DataSources       []string  `json:"data_sources"`
	Timestamp         time.Time `json:"timestamp"`
}

type Status struct {
	Name             string `json:"name"`
	Personality      Role   `json:"personality"`
	Status           string `json:"status"`
	MemorySessions   int    `json:"memory_sessions"`
	DecisionsMade    int    `json:"decisions_made"`
	LastDecision     string `json:"last_decision,omitempty"`
	PerformanceScore int    `json:"performance_score"`
	Uptime           string `json:"uptime"`
	LastUpdated      string `json:"last_updated"`
}

// Agent is a rule-based conversational responder for one DAO role. The reply
// text is deterministic for a given message; only the decorative confidence
// value and the timestamps vary between calls.
type Agent struct {
	name   string
	role   Role
	logger log.Logger

	mu        sync.Mutex
	rng       *rand.Rand
	sessions  map[string]*Memory
	decisions []Decision
}

func NewAgent(name string, role Role, logger log.Logger) *Agent {
	return &Agent{
		name:      name,
		role:      role,
		logger:    logger.With("module", "eliza", "agent", name),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		sessions:  make(map[string]*Memory),
		decisions: make([]Decision, 0),
	}
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) Role() Role {
	return a.role
}

// Respond classifies the message, records a decision, selects the canned
// reply for the agent's role and appends the exchange to the session history.
func (a *Agent) Respond(message string, sessionId string) (string, Context) {
	lowered := strings.ToLower(message)
	context := analyzeContext(lowered)
	response := responseFor(a.role, message, lowered)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.decisions = append(a.decisions, a.decide(context))

	memory, ok := a.sessions[sessionId]
	if !ok {
		memory = newMemory(sessionId)
		a.sessions[sessionId] = memory
	}
	memory.Context = context
	memory.append(message, response)

	a.logger.Debug("responded", "session", sessionId, "intent", context.Intent)
	return response, context
}

// Memory returns a copy of the session memory, creating the session if it
// does not exist yet.
func (a *Agent) Memory(sessionId string) Memory {
	a.mu.Lock()
	defer a.mu.Unlock()
	memory, ok := a.sessions[sessionId]
	if !ok {
		memory = newMemory(sessionId)
		a.sessions[sessionId] = memory
	}
	return memory.snapshot()
}

// Decisions returns the most recent decisions, newest last.
func (a *Agent) Decisions() []Decision {
	a.mu.Lock()
	defer a.mu.Unlock()
	start := 0
	if len(a.decisions) > decisionWindow {
		start = len(a.decisions) - decisionWindow
	}
	recent := make([]Decision, len(a.decisions)-start)
	copy(recent, a.decisions[start:])
	return recent
}

func (a *Agent) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	status := Status{
		Name:             a.name,
		Personality:      a.role,
		Status:           "active",
		MemorySessions:   len(a.sessions),
		DecisionsMade:    len(a.decisions),
		PerformanceScore: 90 + a.rng.Intn(9),
		Uptime:           "99.8%",
		LastUpdated:      time.Now().UTC().Format(time.RFC3339),
	}
	if len(a.decisions) > 0 {
		status.LastDecision = a.decisions[len(a.decisions)-1].Timestamp.Format(time.RFC3339)
	}
	return status
}

// decide fabricates an analysis record for the exchange. The confidence value
// is decorative: drawn uniformly from [0.70, 0.95] and never consulted.
// Callers must hold a.mu.
func (a *Agent) decide(context Context) Decision {
	confidence := 0.70 + a.rng.Float64()*0.25
	decision := Decision{
		Type:       "general",
		Confidence: confidence,
		Timestamp:  time.Now().UTC(),
	}
	switch a.role {
	case RoleGovernance:
		decision.Type = "governance_analysis"
		decision.DataSources = []string{"governance_data", "community_sentiment", "proposal_history"}
		if hasProposalEntity(context.Entities) {
			decision.Reasoning = "Analyzed proposal based on community benefit, sustainability, and risk factors"
			decision.RecommendedAction = "Recommend supporting proposal with 78% confidence based on positive community sentiment"
		} else {
			decision.Reasoning = "Evaluated governance query against DAO principles and current metrics"
			decision.RecommendedAction = "Provide governance guidance and recommendations"
		}
	case RoleTreasury:
		decision.Type = "treasury_analysis"
		decision.DataSources = []string{"financial_data", "market_analysis", "risk_metrics"}
		decision.Reasoning = "Analyzed financial metrics, market conditions, and risk parameters"
		decision.RecommendedAction = "Recommend portfolio optimization with 94% efficiency rating"
	case RoleSecurity:
		decision.Type = "security_analysis"
		decision.DataSources = []string{"security_logs", "threat_intelligence", "audit_reports"}
		decision.Reasoning = "Conducted security assessment based on threat analysis and system monitoring"
		decision.RecommendedAction = "Maintain current security posture with enhanced monitoring"
	default:
		decision.Type = context.Intent
		decision.DataSources = []string{"knowledge_base"}
		decision.Reasoning = "General analysis based on available data"
		decision.RecommendedAction = "Provide information and guidance"
	}
	return decision
}

func hasProposalEntity(entities []string) bool {
	for _, entity := range entities {
		if strings.HasPrefix(entity, "proposal_") {
			return true
		}
	}
	return false
}

// Registry resolves agent names to the live instances.
type Registry struct {
	agents map[string]*Agent
	order  []string
}

func NewRegistry(logger log.Logger) *Registry {
	registry := &Registry{
		agents: make(map[string]*Agent),
		order:  make([]string, 0, 3),
	}
	for _, agent := range []*Agent{
		NewAgent(GovernanceAgentName, RoleGovernance, logger),
		NewAgent(TreasuryAgentName, RoleTreasury, logger),
		NewAgent(SecurityAgentName, RoleSecurity, logger),
	} {
		registry.agents[agent.Name()] = agent
		registry.order = append(registry.order, agent.Name())
	}
	return registry
}

func (r *Registry) Get(name string) (*Agent, bool) {
	agent, ok := r.agents[name]
	return agent, ok
}

func (r *Registry) All() []*Agent {
	agents := make([]*Agent, 0, len(r.order))
	for _, name := range r.order {
		agents = append(agents, r.agents[name])
	}
	return agents
}
