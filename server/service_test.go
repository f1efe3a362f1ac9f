package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xmrtdao/daod/chain"
	"github.com/xmrtdao/daod/eliza"
	"github.com/xmrtdao/daod/store"
	"github.com/xmrtdao/daod/zk"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := log.NewNopLogger()
	st, err := store.New(logger, filepath.Join(t.TempDir(), "dao.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.SeedAgents())
	return New("127.0.0.1:0", logger, st, chain.NewLedger(logger), zk.NewProver(logger), eliza.NewRegistry(logger))
}

func doRequest(t *testing.T, s *Service, method string, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestProposalLifecycle(t *testing.T) {
	s := newTestService(t)

	w := doRequest(t, s, http.MethodPost, "/proposals", gin.H{
		"title":       "T",
		"description": "D",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	require.Equal(t, "active", created["status"])
	require.Equal(t, zeroAddress, created["creator_address"])
	// "Analyze proposal: T - D" hits the governance proposal branch, whose
	// reply mentions support.
	require.Equal(t, store.RecommendationSupport, created["ai_recommendation"])
	proposalId := uint64(created["id"].(float64))

	w = doRequest(t, s, http.MethodPost, fmt.Sprintf("/proposals/%d/vote", proposalId), gin.H{
		"vote_choice":   true,
		"voter_address": "0x1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	voted := decodeBody(t, w)
	require.Equal(t, "Vote recorded successfully", voted["message"])
	proposal := voted["proposal"].(map[string]interface{})
	require.Equal(t, float64(1), proposal["votes_for"])
	require.Equal(t, float64(1), proposal["total_votes"])

	// Second vote from the same address is rejected.
	w = doRequest(t, s, http.MethodPost, fmt.Sprintf("/proposals/%d/vote", proposalId), gin.H{
		"vote_choice":   false,
		"voter_address": "0x1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s, http.MethodGet, "/proposals", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var proposals []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &proposals))
	require.Len(t, proposals, 1)
	require.Equal(t, float64(1), proposals[0]["total_votes"])
}

func TestCreateProposalValidation(t *testing.T) {
	s := newTestService(t)
	w := doRequest(t, s, http.MethodPost, "/proposals", gin.H{"title": "T"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, decodeBody(t, w)["error"], "required")
}

func TestVoteUnknownProposal(t *testing.T) {
	s := newTestService(t)
	w := doRequest(t, s, http.MethodPost, "/proposals/999/vote", gin.H{
		"vote_choice":   true,
		"voter_address": "0x1",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestVoteValidation(t *testing.T) {
	s := newTestService(t)
	w := doRequest(t, s, http.MethodPost, "/proposals/1/vote", gin.H{
		"voter_address": "0x1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s, http.MethodPost, "/proposals/abc/vote", gin.H{
		"vote_choice":   true,
		"voter_address": "0x1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAgents(t *testing.T) {
	s := newTestService(t)
	w := doRequest(t, s, http.MethodGet, "/agents", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var agents []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &agents))
	require.Len(t, agents, 3)
	require.Equal(t, eliza.GovernanceAgentName, agents[0]["name"])
}

func TestChatAndMemory(t *testing.T) {
	s := newTestService(t)

	w := doRequest(t, s, http.MethodPost, "/agents/Eliza-Treasury/chat", gin.H{
		"message":    "how is the treasury doing",
		"session_id": "session-1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "session-1", body["session_id"])
	require.Contains(t, body["response"], "$2.4M TVL")
	context := body["context"].(map[string]interface{})
	require.Equal(t, eliza.IntentTreasury, context["intent"])

	w = doRequest(t, s, http.MethodGet, "/agents/Eliza-Treasury/memory/session-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	memory := decodeBody(t, w)
	require.Equal(t, "session-1", memory["session_id"])
	history := memory["conversation_history"].([]interface{})
	require.Len(t, history, 1)

	w = doRequest(t, s, http.MethodGet, "/agents/Eliza-Treasury/decisions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var decisions []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decisions))
	require.Len(t, decisions, 1)
}

func TestChatGeneratesSessionId(t *testing.T) {
	s := newTestService(t)
	w := doRequest(t, s, http.MethodPost, "/agents/Eliza-Governance/chat", gin.H{
		"message": "hello",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, decodeBody(t, w)["session_id"])
}

func TestChatUnknownAgent(t *testing.T) {
	s := newTestService(t)
	w := doRequest(t, s, http.MethodPost, "/agents/Eliza-Nope/chat", gin.H{
		"message": "hello",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatValidation(t *testing.T) {
	s := newTestService(t)
	w := doRequest(t, s, http.MethodPost, "/agents/Eliza-Governance/chat", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStakeRecordsTransaction(t *testing.T) {
	s := newTestService(t)

	w := doRequest(t, s, http.MethodPost, "/staking/stake", gin.H{
		"address": "0xabc",
		"amount":  "100",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, true, body["success"])
	hash := body["transaction_hash"].(string)
	require.NotEmpty(t, hash)
	require.Equal(t, chain.ExplorerTxUrl(hash), body["explorer_url"])

	w = doRequest(t, s, http.MethodGet, "/treasury/transactions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var transactions []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &transactions))
	require.Len(t, transactions, 1)
	require.Equal(t, hash, transactions[0]["hash"])
	require.Equal(t, "staking", transactions[0]["type"])
	require.Equal(t, "+100 XMRT", transactions[0]["amount"])
}

func TestGovernanceVoteRecordsTransaction(t *testing.T) {
	s := newTestService(t)

	w := doRequest(t, s, http.MethodPost, "/governance/vote", gin.H{
		"address":     "0xabc",
		"proposal_id": 1,
		"support":     true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, s, http.MethodGet, "/treasury/transactions", nil)
	var transactions []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &transactions))
	require.Len(t, transactions, 1)
	require.Equal(t, "Voted for proposal #1", transactions[0]["description"])
}

func TestGovernanceVoteValidation(t *testing.T) {
	s := newTestService(t)
	w := doRequest(t, s, http.MethodPost, "/governance/vote", gin.H{
		"address": "0xabc",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTokenEndpoints(t *testing.T) {
	s := newTestService(t)

	w := doRequest(t, s, http.MethodGet, "/token/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, chain.ContractAddress, decodeBody(t, w)["contract_address"])

	w = doRequest(t, s, http.MethodGet, "/token/balance/0x1234567890123456789012345678901234567890", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "8500", decodeBody(t, w)["balance"])

	w = doRequest(t, s, http.MethodGet, "/network/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, s, http.MethodGet, "/transaction/0xfeed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "confirmed", decodeBody(t, w)["status"])
}

func TestZkEndpoints(t *testing.T) {
	s := newTestService(t)

	w := doRequest(t, s, http.MethodPost, "/zk/generate-voting-proof", gin.H{
		"voter_address": "0xabc",
		"proposal_id":   7,
		"vote_choice":   true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, true, body["success"])
	proofData := body["proof_data"].(map[string]interface{})
	require.Equal(t, zk.CircuitVoting, proofData["circuit_type"])

	w = doRequest(t, s, http.MethodPost, "/zk/verify-proof", gin.H{
		"proof_data": proofData,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, decodeBody(t, w)["valid"])

	w = doRequest(t, s, http.MethodPost, "/zk/generate-treasury-proof", gin.H{
		"operation": "transfer",
		"amount":    "100",
		"recipient": "0xdef",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, decodeBody(t, w)["success"])

	w = doRequest(t, s, http.MethodPost, "/zk/generate-voting-proof", gin.H{
		"voter_address": "0xabc",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWalletEndpoints(t *testing.T) {
	s := newTestService(t)

	w := doRequest(t, s, http.MethodPost, "/wallet/connect", gin.H{
		"address": "0x1234567890123456789012345678901234567890",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, true, body["success"])
	require.Equal(t, chain.NetworkName, body["network"])
	balance := body["balance"].(map[string]interface{})
	require.Equal(t, "8500", balance["balance"])

	w = doRequest(t, s, http.MethodPost, "/wallet/connect", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s, http.MethodPost, "/wallet/add-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, chain.ContractAddress, decodeBody(t, w)["token_address"])
}

func TestTreasuryStats(t *testing.T) {
	s := newTestService(t)
	w := doRequest(t, s, http.MethodGet, "/treasury/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "$2.4M", body["total_value_locked"])
	require.NotEmpty(t, body["ai_analysis"])
}

func TestSecurityStatus(t *testing.T) {
	s := newTestService(t)
	w := doRequest(t, s, http.MethodGet, "/security/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "LOW", body["threat_level"])
	require.NotEmpty(t, body["ai_analysis"])
}

func TestInitSampleData(t *testing.T) {
	s := newTestService(t)
	w := doRequest(t, s, http.MethodPost, "/init-sample-data", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, s, http.MethodGet, "/proposals", nil)
	var proposals []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &proposals))
	require.Len(t, proposals, 3)
}

func TestCorsHeaders(t *testing.T) {
	s := newTestService(t)

	w := doRequest(t, s, http.MethodGet, "/proposals", nil)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = doRequest(t, s, http.MethodOptions, "/proposals", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "GET,PUT,POST,DELETE,OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}
