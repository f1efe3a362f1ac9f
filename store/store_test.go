package store

import (
	"path/filepath"
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(log.NewNopLogger(), filepath.Join(t.TempDir(), "dao.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestCreateProposalDefaults(t *testing.T) {
	st := newTestStore(t)

	before := time.Now().UTC()
	proposal, err := st.CreateProposal("T", "D", "0xabc")
	require.NoError(t, err)

	require.Equal(t, ProposalStatusActive, proposal.Status)
	require.Zero(t, proposal.VotesFor)
	require.Zero(t, proposal.VotesAgainst)
	require.Zero(t, proposal.TotalVotes)
	require.Equal(t, RecommendationAnalyzing, proposal.Recommendation)
	require.Equal(t, "0xabc", proposal.CreatorAddress)

	ends := proposal.VotingEndsAt
	require.True(t, ends.After(before.Add(VotingPeriod-time.Minute)))
	require.True(t, ends.Before(before.Add(VotingPeriod+time.Minute)))
}

func TestRecordVoteTallies(t *testing.T) {
	st := newTestStore(t)
	proposal, err := st.CreateProposal("T", "D", "0xabc")
	require.NoError(t, err)

	updated, err := st.RecordVote(proposal.Id, "0x1", true, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(1), updated.VotesFor)
	require.Equal(t, uint64(0), updated.VotesAgainst)
	require.Equal(t, uint64(1), updated.TotalVotes)

	updated, err = st.RecordVote(proposal.Id, "0x2", false, 5)
	require.NoError(t, err)
	require.Equal(t, uint64(1), updated.VotesFor)
	require.Equal(t, uint64(5), updated.VotesAgainst)
	require.Equal(t, updated.VotesFor+updated.VotesAgainst, updated.TotalVotes)

	votes, err := st.ListVotes(proposal.Id)
	require.NoError(t, err)
	require.Len(t, votes, 2)
}

func TestRecordVoteDuplicateRejected(t *testing.T) {
	st := newTestStore(t)
	proposal, err := st.CreateProposal("T", "D", "0xabc")
	require.NoError(t, err)

	_, err = st.RecordVote(proposal.Id, "0x1", true, 1)
	require.NoError(t, err)

	_, err = st.RecordVote(proposal.Id, "0x1", false, 3)
	require.ErrorIs(t, err, ErrDuplicateVote)

	got, err := st.GetProposal(proposal.Id)
	require.NoError(t, err)
	require.Equal(t, uint64(1), got.VotesFor)
	require.Equal(t, uint64(0), got.VotesAgainst)
	require.Equal(t, uint64(1), got.TotalVotes)
}

func TestRecordVoteUnknownProposal(t *testing.T) {
	st := newTestStore(t)
	_, err := st.RecordVote(999, "0x1", true, 1)
	require.ErrorIs(t, err, ErrProposalNotFound)
}

func TestRecordVoteInactiveProposal(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Seed())

	proposals, err := st.ListProposals()
	require.NoError(t, err)

	var pending *Proposal
	for i := range proposals {
		if proposals[i].Status == ProposalStatusPending {
			pending = &proposals[i]
			break
		}
	}
	require.NotNil(t, pending)

	_, err = st.RecordVote(pending.Id, "0x1", true, 1)
	require.ErrorIs(t, err, ErrProposalNotActive)

	got, err := st.GetProposal(pending.Id)
	require.NoError(t, err)
	require.Equal(t, pending.TotalVotes, got.TotalVotes)
}

func TestSetRecommendation(t *testing.T) {
	st := newTestStore(t)
	proposal, err := st.CreateProposal("T", "D", "0xabc")
	require.NoError(t, err)

	require.NoError(t, st.SetRecommendation(proposal.Id, RecommendationSupport))
	got, err := st.GetProposal(proposal.Id)
	require.NoError(t, err)
	require.Equal(t, RecommendationSupport, got.Recommendation)

	require.ErrorIs(t, st.SetRecommendation(999, RecommendationSupport), ErrProposalNotFound)
}

func TestListProposalsOrder(t *testing.T) {
	st := newTestStore(t)
	first, err := st.CreateProposal("first", "D", "0xabc")
	require.NoError(t, err)
	second, err := st.CreateProposal("second", "D", "0xabc")
	require.NoError(t, err)

	proposals, err := st.ListProposals()
	require.NoError(t, err)
	require.Len(t, proposals, 2)
	require.Equal(t, second.Id, proposals[0].Id)
	require.Equal(t, first.Id, proposals[1].Id)
}

func TestListTransactionsLimit(t *testing.T) {
	st := newTestStore(t)
	for i := 0; i < 12; i++ {
		tx := TreasuryTransaction{
			Hash:   string(rune('a'+i)) + "-hash",
			Type:   "staking",
			Amount: "+1 XMRT",
		}
		require.NoError(t, st.RecordTransaction(&tx))
	}

	transactions, err := st.ListTransactions(10)
	require.NoError(t, err)
	require.Len(t, transactions, 10)

	transactions, err = st.ListTransactions(0)
	require.NoError(t, err)
	require.Len(t, transactions, 10)
}

func TestRecordChatExchange(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.RecordChatExchange("session-1", "Eliza-Governance", "hi", "hello"))

	messages, err := st.ListChatMessages("session-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, MessageTypeUser, messages[0].Type)
	require.Equal(t, "hi", messages[0].Content)
	require.Equal(t, MessageTypeAgent, messages[1].Type)
	require.Equal(t, "hello", messages[1].Content)
}

func TestSeedIdempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Seed())
	require.NoError(t, st.Seed())

	agents, err := st.ListAgents()
	require.NoError(t, err)
	require.Len(t, agents, 3)

	proposals, err := st.ListProposals()
	require.NoError(t, err)
	require.Len(t, proposals, 3)

	transactions, err := st.ListTransactions(20)
	require.NoError(t, err)
	require.Len(t, transactions, 3)
}

func TestTouchAgent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SeedAgents())

	require.NoError(t, st.TouchAgent("Eliza-Governance", "Responded to: hi..."))
	agent, err := st.GetAgent("Eliza-Governance")
	require.NoError(t, err)
	require.Equal(t, "Responded to: hi...", agent.LastAction)

	// Missing record is not an error.
	require.NoError(t, st.TouchAgent("no-such-agent", "x"))
}
