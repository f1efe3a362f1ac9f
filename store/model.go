package store

import "time"

// sqlite models

type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusActive   ProposalStatus = "active"
	ProposalStatusExecuted ProposalStatus = "executed"
	ProposalStatusRejected ProposalStatus = "rejected"
)

type AgentRole string

const (
	AgentRoleGovernance AgentRole = "governance"
	AgentRoleTreasury   AgentRole = "treasury"
	AgentRoleSecurity   AgentRole = "security"
)

// Recommendation labels written by the governance agent after analysis.
const (
	RecommendationAnalyzing = "Analyzing"
	RecommendationSupport   = "Support"
	RecommendationOppose    = "Oppose"
	RecommendationExecuted  = "Executed"
)

type Proposal struct {
	Id             uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Title          string         `json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Status         ProposalStatus `json:"status"`
	VotesFor       uint64         `json:"votes_for"`
	VotesAgainst   uint64         `json:"votes_against"`
	TotalVotes     uint64         `json:"total_votes"`
	CreatedAt      time.Time      `json:"created_at"`
	VotingEndsAt   time.Time      `json:"voting_ends_at"`
	Recommendation string         `json:"ai_recommendation"`
	CreatorAddress string         `json:"creator_address"`
}

type Vote struct {
	Id           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProposalId   uint64    `gorm:"unique_index:idx_votes_proposal_voter" json:"proposal_id"`
	VoterAddress string    `gorm:"unique_index:idx_votes_proposal_voter" json:"voter_address"`
	VoteChoice   bool      `json:"vote_choice"`
	VoteWeight   uint64    `json:"vote_weight"`
	CreatedAt    time.Time `json:"created_at"`
}

type Agent struct {
	Id               uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string    `gorm:"unique_index" json:"name"`
	Role             AgentRole `json:"type"`
	Status           string    `json:"status"`
	LastAction       string    `json:"last_action"`
	PerformanceScore uint64    `json:"performance"`
	CreatedAt        time.Time `json:"created_at"`
	LastActive       time.Time `json:"last_active"`
}

type TreasuryTransaction struct {
	Id          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Hash        string    `gorm:"unique_index" json:"hash"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	FromAddress string    `json:"from_address,omitempty"`
	ToAddress   string    `json:"to_address,omitempty"`
	BlockNumber uint64    `json:"block_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	MessageTypeUser  = "user"
	MessageTypeAgent = "agent"
)

type ChatMessage struct {
	Id        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionId string    `gorm:"index" json:"session_id"`
	AgentName string    `json:"agent_name"`
	Type      string    `json:"type"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}
