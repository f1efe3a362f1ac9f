package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xmrtdao/daod/chain"
	"github.com/xmrtdao/daod/store"
	"github.com/xmrtdao/daod/zk"
)

func (s *Service) handleTokenInfo(c *gin.Context) {
	c.JSON(http.StatusOK, s.ledger.TokenInfo())
}

func (s *Service) handleTokenBalance(c *gin.Context) {
	c.JSON(http.StatusOK, s.ledger.Balance(c.Param("address")))
}

func (s *Service) handleStakingInfo(c *gin.Context) {
	c.JSON(http.StatusOK, s.ledger.StakingInfo(c.Param("address")))
}

type stakeRequest struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

func (s *Service) handleStake(c *gin.Context) {
	var req stakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Address == "" || req.Amount == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Address and amount are required"})
		return
	}
	result := s.ledger.Stake(req.Address, req.Amount)
	transaction := store.TreasuryTransaction{
		Hash:        result.TxHash,
		Type:        "staking",
		Description: fmt.Sprintf("Staked %s XMRT", req.Amount),
		Amount:      fmt.Sprintf("+%s XMRT", req.Amount),
		ToAddress:   req.Address,
		BlockNumber: result.BlockNumber,
	}
	if err := s.store.RecordTransaction(&transaction); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Staking failed: %s", err.Error())})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"transaction_hash": result.TxHash,
		"block_number":     result.BlockNumber,
		"gas_used":         result.GasUsed,
		"explorer_url":     chain.ExplorerTxUrl(result.TxHash),
	})
}

type governanceVoteRequest struct {
	Address    string  `json:"address"`
	ProposalId *uint64 `json:"proposal_id"`
	Support    *bool   `json:"support"`
}

func (s *Service) handleGovernanceVote(c *gin.Context) {
	var req governanceVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Address == "" || req.ProposalId == nil || req.Support == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Address, proposal_id, and support are required"})
		return
	}
	result := s.ledger.Vote(req.Address, *req.ProposalId, *req.Support)
	direction := "against"
	if *req.Support {
		direction = "for"
	}
	transaction := store.TreasuryTransaction{
		Hash:        result.TxHash,
		Type:        "governance",
		Description: fmt.Sprintf("Voted %s proposal #%d", direction, *req.ProposalId),
		Amount:      "0 XMRT",
		FromAddress: req.Address,
		BlockNumber: result.BlockNumber,
	}
	if err := s.store.RecordTransaction(&transaction); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Voting failed: %s", err.Error())})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"transaction_hash": result.TxHash,
		"block_number":     result.BlockNumber,
		"gas_used":         result.GasUsed,
		"explorer_url":     chain.ExplorerTxUrl(result.TxHash),
	})
}

type createProposalOnChainRequest struct {
	Address     string `json:"address"`
	Description string `json:"description"`
	// VotingPeriod is accepted for compatibility but the mock ignores it.
	VotingPeriod uint64 `json:"voting_period"`
}

func (s *Service) handleGovernanceCreateProposal(c *gin.Context) {
	var req createProposalOnChainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Address == "" || req.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Address and description are required"})
		return
	}
	result := s.ledger.CreateProposal(req.Address, req.Description)
	transaction := store.TreasuryTransaction{
		Hash:        result.TxHash,
		Type:        "governance",
		Description: fmt.Sprintf("Created proposal: %s...", truncateText(req.Description, 50)),
		Amount:      "0 XMRT",
		FromAddress: req.Address,
		BlockNumber: result.BlockNumber,
	}
	if err := s.store.RecordTransaction(&transaction); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Proposal creation failed: %s", err.Error())})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"transaction_hash": result.TxHash,
		"block_number":     result.BlockNumber,
		"gas_used":         result.GasUsed,
		"explorer_url":     chain.ExplorerTxUrl(result.TxHash),
	})
}

func (s *Service) handleTransactionStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.ledger.TransactionStatus(c.Param("hash")))
}

func (s *Service) handleNetworkStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.ledger.NetworkStats())
}

type votingProofRequest struct {
	VoterAddress string  `json:"voter_address"`
	ProposalId   *uint64 `json:"proposal_id"`
	VoteChoice   *bool   `json:"vote_choice"`
}

func (s *Service) handleGenerateVotingProof(c *gin.Context) {
	var req votingProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.VoterAddress == "" || req.ProposalId == nil || req.VoteChoice == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "voter_address, proposal_id, and vote_choice are required"})
		return
	}
	c.JSON(http.StatusOK, s.prover.VotingProof(req.VoterAddress, *req.ProposalId, *req.VoteChoice))
}

type verifyProofRequest struct {
	ProofData *zk.ProofData `json:"proof_data"`
}

func (s *Service) handleVerifyProof(c *gin.Context) {
	var req verifyProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ProofData == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proof_data is required"})
		return
	}
	c.JSON(http.StatusOK, s.prover.Verify(*req.ProofData))
}

type treasuryProofRequest struct {
	Operation string `json:"operation"`
	Amount    string `json:"amount"`
	Recipient string `json:"recipient"`
}

func (s *Service) handleGenerateTreasuryProof(c *gin.Context) {
	var req treasuryProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Operation == "" || req.Amount == "" || req.Recipient == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "operation, amount, and recipient are required"})
		return
	}
	c.JSON(http.StatusOK, s.prover.TreasuryProof(req.Operation, req.Amount, req.Recipient))
}

type walletConnectRequest struct {
	Address string `json:"address"`
}

func (s *Service) handleWalletConnect(c *gin.Context) {
	var req walletConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Wallet address is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"address":      req.Address,
		"balance":      s.ledger.Balance(req.Address),
		"staking":      s.ledger.StakingInfo(req.Address),
		"network":      chain.NetworkName,
		"connected_at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Service) handleWalletAddToken(c *gin.Context) {
	info := s.ledger.TokenInfo()
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"token_address":  info.ContractAddress,
		"token_symbol":   info.Symbol,
		"token_decimals": info.Decimals,
		"token_image":    "https://example.com/xmrt-logo.png",
		"message":        "Add XMRT token to your wallet using the provided contract address",
	})
}
