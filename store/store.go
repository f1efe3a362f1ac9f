package store

import (
	"errors"
	"fmt"
	"time"

	"cosmossdk.io/log"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// VotingPeriod is how long a new proposal stays open for voting. The
// voting_ends_at field is advisory: nothing closes a proposal when the
// deadline passes.
const VotingPeriod = 7 * 24 * time.Hour

var (
	ErrProposalNotFound  = errors.New("proposal not found")
	ErrProposalNotActive = errors.New("proposal is not active for voting")
	ErrDuplicateVote     = errors.New("address has already voted on this proposal")
)

type Store struct {
	logger log.Logger
	db     *gorm.DB
}

func New(logger log.Logger, dbPath string) (*Store, error) {
	db, err := gorm.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Proposal{}, &Vote{}, &Agent{}, &TreasuryTransaction{}, &ChatMessage{}).Error; err != nil {
		return nil, err
	}
	return &Store{
		logger: logger.With("module", "store"),
		db:     db,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreateProposal(title string, description string, creatorAddress string) (*Proposal, error) {
	proposal := Proposal{
		Title:          title,
		Description:    description,
		Status:         ProposalStatusActive,
		VotingEndsAt:   time.Now().UTC().Add(VotingPeriod),
		Recommendation: RecommendationAnalyzing,
		CreatorAddress: creatorAddress,
	}
	if err := s.db.Create(&proposal).Error; err != nil {
		return nil, err
	}
	s.logger.Info("proposal created", "id", proposal.Id, "title", title)
	return &proposal, nil
}

func (s *Store) GetProposal(proposalId uint64) (*Proposal, error) {
	var proposal Proposal
	if err := s.db.Where("id = ?", proposalId).First(&proposal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &proposal, nil
}

func (s *Store) ListProposals() ([]Proposal, error) {
	proposals := make([]Proposal, 0)
	err := s.db.Order("created_at desc, id desc").Find(&proposals).Error
	if err != nil {
		return nil, err
	}
	return proposals, nil
}

func (s *Store) SetRecommendation(proposalId uint64, recommendation string) error {
	res := s.db.Model(&Proposal{}).Where("id = ?", proposalId).Update("recommendation", recommendation)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProposalNotFound
	}
	return nil
}

// RecordVote inserts a vote and updates the proposal tallies in a single
// transaction, so the duplicate check, the vote row and the counter update are
// all-or-nothing against concurrent votes on the same proposal. The composite
// unique index on (proposal_id, voter_address) backs up the duplicate check.
func (s *Store) RecordVote(proposalId uint64, voterAddress string, choice bool, weight uint64) (*Proposal, error) {
	if weight == 0 {
		weight = 1
	}
	var proposal Proposal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", proposalId).First(&proposal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProposalNotFound
			}
			return err
		}
		if proposal.Status != ProposalStatusActive {
			return ErrProposalNotActive
		}
		var existing Vote
		err := tx.Where("proposal_id = ? AND voter_address = ?", proposalId, voterAddress).First(&existing).Error
		if err == nil {
			return ErrDuplicateVote
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		vote := Vote{
			ProposalId:   proposalId,
			VoterAddress: voterAddress,
			VoteChoice:   choice,
			VoteWeight:   weight,
		}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		if choice {
			proposal.VotesFor += weight
		} else {
			proposal.VotesAgainst += weight
		}
		proposal.TotalVotes += weight
		return tx.Save(&proposal).Error
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("vote recorded", "proposal", proposalId, "voter", voterAddress, "choice", choice, "weight", weight)
	return &proposal, nil
}

func (s *Store) ListVotes(proposalId uint64) ([]Vote, error) {
	votes := make([]Vote, 0)
	err := s.db.Where("proposal_id = ?", proposalId).Order("id asc").Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

func (s *Store) RecordTransaction(transaction *TreasuryTransaction) error {
	return s.db.Create(transaction).Error
}

func (s *Store) ListTransactions(limit int) ([]TreasuryTransaction, error) {
	if limit <= 0 {
		limit = 10
	}
	transactions := make([]TreasuryTransaction, 0)
	err := s.db.Order("created_at desc, id desc").Limit(limit).Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// RecordChatExchange appends the user message and the agent reply as two rows
// committed together.
func (s *Store) RecordChatExchange(sessionId string, agentName string, userText string, agentText string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		userMsg := ChatMessage{
			SessionId: sessionId,
			AgentName: agentName,
			Type:      MessageTypeUser,
			Content:   userText,
		}
		if err := tx.Create(&userMsg).Error; err != nil {
			return err
		}
		agentMsg := ChatMessage{
			SessionId: sessionId,
			AgentName: agentName,
			Type:      MessageTypeAgent,
			Content:   agentText,
		}
		return tx.Create(&agentMsg).Error
	})
}

func (s *Store) ListChatMessages(sessionId string) ([]ChatMessage, error) {
	messages := make([]ChatMessage, 0)
	err := s.db.Where("session_id = ?", sessionId).Order("id asc").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *Store) GetAgent(name string) (*Agent, error) {
	var agent Agent
	if err := s.db.Where("name = ?", name).First(&agent).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

func (s *Store) ListAgents() ([]Agent, error) {
	agents := make([]Agent, 0)
	err := s.db.Order("id asc").Find(&agents).Error
	if err != nil {
		return nil, err
	}
	return agents, nil
}

// TouchAgent updates the durable agent snapshot after a chat. A missing record
// is not an error; the snapshot is opportunistic.
func (s *Store) TouchAgent(name string, lastAction string) error {
	err := s.db.Model(&Agent{}).Where("name = ?", name).Updates(map[string]interface{}{
		"last_action": lastAction,
		"last_active": time.Now().UTC(),
	}).Error
	if err != nil {
		s.logger.Error("touch agent fail", "name", name, "err", err)
	}
	return err
}

// SeedAgents creates the durable records for the three built-in agents if they
// do not exist yet.
func (s *Store) SeedAgents() error {
	agents := []Agent{
		{Name: "Eliza-Governance", Role: AgentRoleGovernance, Status: "active", LastAction: "Analyzed proposal #42", PerformanceScore: 97},
		{Name: "Eliza-Treasury", Role: AgentRoleTreasury, Status: "active", LastAction: "Optimized portfolio allocation", PerformanceScore: 94},
		{Name: "Eliza-Security", Role: AgentRoleSecurity, Status: "active", LastAction: "Completed security audit", PerformanceScore: 91},
	}
	for _, agent := range agents {
		var existing Agent
		err := s.db.Where("name = ?", agent.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		agent.LastActive = time.Now().UTC()
		if err := s.db.Create(&agent).Error; err != nil {
			return fmt.Errorf("seed agent %s: %w", agent.Name, err)
		}
	}
	return nil
}

// Seed loads the demo proposals and treasury transactions used by the
// dashboard. Existing data is left untouched.
func (s *Store) Seed() error {
	if err := s.SeedAgents(); err != nil {
		return err
	}
	now := time.Now().UTC()

	var proposalCount uint64
	if err := s.db.Model(&Proposal{}).Count(&proposalCount).Error; err != nil {
		return err
	}
	if proposalCount == 0 {
		proposals := []Proposal{
			{
				Title:          "Increase Treasury Allocation for AI Development",
				Description:    "Proposal to allocate 15% more funds to AI agent development and training",
				Status:         ProposalStatusActive,
				VotesFor:       1250,
				VotesAgainst:   340,
				TotalVotes:     1590,
				VotingEndsAt:   now.Add(2 * 24 * time.Hour),
				Recommendation: RecommendationSupport,
				CreatorAddress: "0x1234567890123456789012345678901234567890",
			},
			{
				Title:          "Deploy New Eliza Agent for Market Analysis",
				Description:    "Create specialized AI agent for real-time market analysis and trading recommendations",
				Status:         ProposalStatusPending,
				VotesFor:       890,
				VotesAgainst:   120,
				TotalVotes:     1010,
				VotingEndsAt:   now.Add(5 * 24 * time.Hour),
				Recommendation: RecommendationSupport,
				CreatorAddress: "0x2345678901234567890123456789012345678901",
			},
			{
				Title:          "Upgrade Zero-Knowledge Proof Infrastructure",
				Description:    "Implement advanced ZK-STARK technology for enhanced privacy and verification",
				Status:         ProposalStatusExecuted,
				VotesFor:       2100,
				VotesAgainst:   450,
				TotalVotes:     2550,
				VotingEndsAt:   now.Add(-24 * time.Hour),
				Recommendation: RecommendationExecuted,
				CreatorAddress: "0x3456789012345678901234567890123456789012",
			},
		}
		for i := range proposals {
			if err := s.db.Create(&proposals[i]).Error; err != nil {
				return err
			}
		}
	}

	var txCount uint64
	if err := s.db.Model(&TreasuryTransaction{}).Count(&txCount).Error; err != nil {
		return err
	}
	if txCount == 0 {
		transactions := []TreasuryTransaction{
			{
				Hash:        "0x1a2b3c4d5e6f7890123456789012345678901234567890123456789012345678",
				Type:        "governance",
				Description: "Proposal #42 execution reward",
				Amount:      "+500 XMRT",
				ToAddress:   "0x1234567890123456789012345678901234567890",
			},
			{
				Hash:        "0x4d5e6f7890123456789012345678901234567890123456789012345678901234",
				Type:        "treasury",
				Description: "Treasury rebalancing",
				Amount:      "-2,500 XMRT",
				FromAddress: "0x2345678901234567890123456789012345678901",
			},
			{
				Hash:        "0x5e6f789012345678901234567890123456789012345678901234567890123456",
				Type:        "staking",
				Description: "Staking rewards distribution",
				Amount:      "+1,250 XMRT",
				ToAddress:   "0x3456789012345678901234567890123456789012",
			},
		}
		for i := range transactions {
			if err := s.db.Create(&transactions[i]).Error; err != nil {
				return err
			}
		}
	}
	s.logger.Info("sample data seeded")
	return nil
}
