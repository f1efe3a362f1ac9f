package zk

import (
	"fmt"
	"time"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/crypto"
)

// Prover fabricates opaque proof blobs by content-addressing the operation
// inputs together with the current time, and validates every proof as
// correct. No circuit is executed anywhere; nothing here is a real
// zero-knowledge proof.

const (
	CircuitVoting   = "risc0_voting"
	CircuitTreasury = "noir_treasury"
)

type ProofData struct {
	Proof           string        `json:"proof"`
	PublicInputs    []interface{} `json:"public_inputs"`
	VerificationKey string        `json:"verification_key"`
	CircuitType     string        `json:"circuit_type"`
}

type GenerateResult struct {
	Success          bool      `json:"success"`
	ProofData        ProofData `json:"proof_data"`
	PrivacyLevel     string    `json:"privacy_level"`
	VerificationTime string    `json:"verification_time"`
}

type VerifyResult struct {
	Valid            bool   `json:"valid"`
	VerificationTime string `json:"verification_time"`
	CircuitType      string `json:"circuit_type"`
	VerifiedAt       string `json:"verified_at"`
}

type Prover struct {
	logger log.Logger
}

func NewProver(logger log.Logger) *Prover {
	return &Prover{logger: logger.With("module", "zk")}
}

func (p *Prover) VotingProof(voterAddress string, proposalId uint64, voteChoice bool) GenerateResult {
	choice := 0
	if voteChoice {
		choice = 1
	}
	return GenerateResult{
		Success: true,
		ProofData: ProofData{
			Proof:           contentHash(fmt.Sprintf("vote_proof_%s_%d_%t", voterAddress, proposalId, voteChoice)),
			PublicInputs:    []interface{}{proposalId, choice},
			VerificationKey: crypto.Keccak256Hash([]byte(fmt.Sprintf("vk_%d", proposalId))).Hex(),
			CircuitType:     CircuitVoting,
		},
		PrivacyLevel:     "anonymous",
		VerificationTime: "2.3s",
	}
}

func (p *Prover) TreasuryProof(operation string, amount string, recipient string) GenerateResult {
	return GenerateResult{
		Success: true,
		ProofData: ProofData{
			Proof:           contentHash(fmt.Sprintf("treasury_proof_%s_%s_%s", operation, amount, recipient)),
			PublicInputs:    []interface{}{operation, amount},
			VerificationKey: crypto.Keccak256Hash([]byte(fmt.Sprintf("treasury_vk_%s", operation))).Hex(),
			CircuitType:     CircuitTreasury,
		},
		PrivacyLevel:     "confidential",
		VerificationTime: "3.1s",
	}
}

// Verify always reports the proof as valid; no verification occurs.
func (p *Prover) Verify(proof ProofData) VerifyResult {
	circuit := proof.CircuitType
	if circuit == "" {
		circuit = "unknown"
	}
	return VerifyResult{
		Valid:            true,
		VerificationTime: "0.8s",
		CircuitType:      circuit,
		VerifiedAt:       time.Now().UTC().Format(time.RFC3339),
	}
}

// contentHash mixes the current time into the digest so identical inputs
// produce distinct proofs across calls.
func contentHash(data string) string {
	return crypto.Keccak256Hash([]byte(fmt.Sprintf("%s_%d", data, time.Now().UnixNano()))).Hex()
}
