package server

import (
	"context"
	"net/http"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"

	"github.com/xmrtdao/daod/chain"
	"github.com/xmrtdao/daod/eliza"
	"github.com/xmrtdao/daod/store"
	"github.com/xmrtdao/daod/zk"
)

type Service struct {
	engine     *gin.Engine
	logger     log.Logger
	store      *store.Store
	ledger     *chain.Ledger
	prover     *zk.Prover
	agents     *eliza.Registry
	listenAddr string
}

func New(listenAddr string, logger log.Logger, st *store.Store, ledger *chain.Ledger, prover *zk.Prover, agents *eliza.Registry) *Service {
	r := gin.Default()
	r.Use(corsMiddleware())
	s := &Service{
		engine:     r,
		logger:     logger.With("module", "server"),
		store:      st,
		ledger:     ledger,
		prover:     prover,
		agents:     agents,
		listenAddr: listenAddr,
	}

	s.engine.GET("/token/info", s.handleTokenInfo)
	s.engine.GET("/token/balance/:address", s.handleTokenBalance)
	s.engine.GET("/staking/info/:address", s.handleStakingInfo)
	s.engine.POST("/staking/stake", s.handleStake)
	s.engine.GET("/network/stats", s.handleNetworkStats)
	s.engine.POST("/governance/vote", s.handleGovernanceVote)
	s.engine.POST("/governance/create-proposal", s.handleGovernanceCreateProposal)
	s.engine.GET("/transaction/:hash", s.handleTransactionStatus)
	s.engine.POST("/zk/generate-voting-proof", s.handleGenerateVotingProof)
	s.engine.POST("/zk/verify-proof", s.handleVerifyProof)
	s.engine.POST("/zk/generate-treasury-proof", s.handleGenerateTreasuryProof)
	s.engine.POST("/wallet/connect", s.handleWalletConnect)
	s.engine.POST("/wallet/add-token", s.handleWalletAddToken)

	s.engine.GET("/proposals", s.handleListProposals)
	s.engine.POST("/proposals", s.handleCreateProposal)
	s.engine.POST("/proposals/:id/vote", s.handleVote)
	s.engine.GET("/agents", s.handleListAgents)
	s.engine.POST("/agents/:name/chat", s.handleChat)
	s.engine.GET("/agents/:name/memory/:session_id", s.handleAgentMemory)
	s.engine.GET("/agents/:name/decisions", s.handleAgentDecisions)
	s.engine.GET("/treasury/stats", s.handleTreasuryStats)
	s.engine.GET("/treasury/transactions", s.handleTreasuryTransactions)
	s.engine.GET("/security/status", s.handleSecurityStatus)
	s.engine.POST("/init-sample-data", s.handleInitSampleData)

	return s
}

// Run serves until ctx is cancelled, then shuts the listener down gracefully.
func (s *Service) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.listenAddr,
		Handler: s.engine,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("serving", "addr", s.listenAddr)
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// All responses permit cross-origin access from any origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Header("Access-Control-Allow-Methods", "GET,PUT,POST,DELETE,OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
