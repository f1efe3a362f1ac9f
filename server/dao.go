package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xmrtdao/daod/eliza"
	"github.com/xmrtdao/daod/store"
)

const zeroAddress = "0x0000000000000000000000000000000000000000"

func (s *Service) handleListProposals(c *gin.Context) {
	proposals, err := s.store.ListProposals()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, proposals)
}

type createProposalRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	CreatorAddress string `json:"creator_address"`
}

func (s *Service) handleCreateProposal(c *gin.Context) {
	var req createProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" || req.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and description are required"})
		return
	}
	if req.CreatorAddress == "" {
		req.CreatorAddress = zeroAddress
	}
	proposal, err := s.store.CreateProposal(req.Title, req.Description, req.CreatorAddress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Ask the governance agent for a recommendation. The proposal is already
	// committed; a failed analysis leaves the label at Analyzing.
	if agent, ok := s.agents.Get(eliza.GovernanceAgentName); ok {
		analysis := fmt.Sprintf("Analyze proposal: %s - %s", req.Title, req.Description)
		response, _ := agent.Respond(analysis, uuid.NewString())
		recommendation := deriveRecommendation(response)
		if err := s.store.SetRecommendation(proposal.Id, recommendation); err != nil {
			s.logger.Error("set recommendation fail", "proposal", proposal.Id, "err", err)
		} else {
			proposal.Recommendation = recommendation
		}
	}

	c.JSON(http.StatusCreated, proposal)
}

func deriveRecommendation(response string) string {
	lowered := strings.ToLower(response)
	switch {
	case strings.Contains(lowered, "recommend supporting") || strings.Contains(lowered, "support"):
		return store.RecommendationSupport
	case strings.Contains(lowered, "oppose") || strings.Contains(lowered, "against"):
		return store.RecommendationOppose
	default:
		return store.RecommendationAnalyzing
	}
}

type voteRequest struct {
	VoteChoice   *bool  `json:"vote_choice"`
	VoterAddress string `json:"voter_address"`
	VoteWeight   uint64 `json:"vote_weight"`
}

func (s *Service) handleVote(c *gin.Context) {
	proposalId, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal id"})
		return
	}
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.VoteChoice == nil || req.VoterAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vote choice and voter address are required"})
		return
	}
	proposal, err := s.store.RecordVote(proposalId, req.VoterAddress, *req.VoteChoice, req.VoteWeight)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrProposalNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrProposalNotActive), errors.Is(err, store.ErrDuplicateVote):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Vote recorded successfully",
		"proposal": proposal,
	})
}

func (s *Service) handleListAgents(c *gin.Context) {
	statuses := make([]eliza.Status, 0, 3)
	for _, agent := range s.agents.All() {
		statuses = append(statuses, agent.Status())
	}
	c.JSON(http.StatusOK, statuses)
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionId string `json:"session_id"`
}

func (s *Service) handleChat(c *gin.Context) {
	agent, ok := s.agents.Get(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	}
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	sessionId := req.SessionId
	if sessionId == "" {
		sessionId = uuid.NewString()
	}

	response, context := agent.Respond(req.Message, sessionId)

	if err := s.store.RecordChatExchange(sessionId, agent.Name(), req.Message, response); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Error processing message: %s", err.Error())})
		return
	}
	_ = s.store.TouchAgent(agent.Name(), fmt.Sprintf("Responded to: %s...", truncateText(req.Message, 50)))

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionId,
		"response":   response,
		"agent":      agent.Status(),
		"context":    context,
	})
}

// handleAgentMemory returns the session memory with the history trimmed to the
// last 10 exchanges.
func (s *Service) handleAgentMemory(c *gin.Context) {
	agent, ok := s.agents.Get(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	}
	memory := agent.Memory(c.Param("session_id"))
	history := memory.History
	if len(history) > 10 {
		history = history[len(history)-10:]
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id":           memory.SessionId,
		"context":              memory.Context,
		"conversation_history": history,
		"user_preferences":     memory.Preferences,
		"created_at":           memory.CreatedAt,
		"last_updated":         memory.LastUpdated,
	})
}

func (s *Service) handleAgentDecisions(c *gin.Context) {
	agent, ok := s.agents.Get(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	}
	c.JSON(http.StatusOK, agent.Decisions())
}

func (s *Service) handleTreasuryStats(c *gin.Context) {
	analysis := "Treasury analysis temporarily unavailable"
	if agent, ok := s.agents.Get(eliza.TreasuryAgentName); ok {
		analysis, _ = agent.Respond("Provide current treasury status and metrics", uuid.NewString())
	}
	c.JSON(http.StatusOK, gin.H{
		"total_value_locked": "$2.4M",
		"active_members":     1247,
		"active_proposals":   3,
		"ai_agents":          3,
		"ai_analysis":        analysis,
		"token_stats": gin.H{
			"total_supply":       "1,000,000 XMRT",
			"circulating_supply": "750,000 XMRT",
			"market_cap":         "$2.4M",
			"holders":            1247,
			"treasury_balance":   "150,000 XMRT",
			"staked_tokens":      "450,000 XMRT",
		},
	})
}

func (s *Service) handleTreasuryTransactions(c *gin.Context) {
	transactions, err := s.store.ListTransactions(10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, transactions)
}

func (s *Service) handleSecurityStatus(c *gin.Context) {
	analysis := "Security analysis temporarily unavailable"
	if agent, ok := s.agents.Get(eliza.SecurityAgentName); ok {
		analysis, _ = agent.Respond("Provide current security status and threat assessment", uuid.NewString())
	}
	c.JSON(http.StatusOK, gin.H{
		"threat_level":      "LOW",
		"last_audit":        "2025-07-04",
		"vulnerabilities":   0,
		"monitoring_status": "ACTIVE",
		"ai_analysis":       analysis,
		"security_score":    98,
	})
}

func (s *Service) handleInitSampleData(c *gin.Context) {
	if err := s.store.Seed(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sample data initialized successfully with enhanced AI agents"})
}

func truncateText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
