package chain

import (
	"fmt"
	"math/big"
	"time"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/crypto"
)

// Ledger is a mock of the on-chain XMRT surface. Reads answer from fixed
// tables; writes fabricate receipts whose hashes are content addresses over
// the operation inputs and the current time. The hashes carry no cryptographic
// guarantee and must never be treated as real transactions or signatures.

const (
	ContractAddress = "0x77307DFbc436224d5e6f2048d2b6bDfA66998a15"
	NetworkName     = "Sepolia Testnet"
	TokenSymbol     = "XMRT"
	TokenDecimals   = 18
	TokenSupply     = "1000000"
	ChainId         = 11155111
)

type TokenInfo struct {
	ContractAddress string `json:"contract_address"`
	Network         string `json:"network"`
	Symbol          string `json:"symbol"`
	Decimals        int    `json:"decimals"`
	TotalSupply     string `json:"total_supply"`
	ChainId         uint64 `json:"chain_id"`
	ExplorerUrl     string `json:"explorer_url"`
}

type Balance struct {
	Address          string `json:"address"`
	Balance          string `json:"balance"`
	BalanceFormatted string `json:"balance_formatted"`
	BalanceWei       string `json:"balance_wei"`
}

type StakingInfo struct {
	Address         string `json:"address"`
	StakedAmount    string `json:"staked_amount"`
	RewardsEarned   string `json:"rewards_earned"`
	StakingDuration string `json:"staking_duration"`
	Apy             string `json:"apy"`
}

type TxResult struct {
	Success     bool   `json:"success"`
	TxHash      string `json:"transaction_hash"`
	BlockNumber uint64 `json:"block_number"`
	GasUsed     uint64 `json:"gas_used"`
}

type TxStatus struct {
	Hash          string `json:"hash"`
	Status        string `json:"status"`
	BlockNumber   uint64 `json:"block_number"`
	Confirmations uint64 `json:"confirmations"`
	GasUsed       uint64 `json:"gas_used"`
	GasPrice      string `json:"gas_price"`
	Timestamp     string `json:"timestamp"`
	ExplorerUrl   string `json:"explorer_url"`
}

type NetworkStats struct {
	Network         string `json:"network"`
	ChainId         uint64 `json:"chain_id"`
	LatestBlock     uint64 `json:"latest_block"`
	GasPrice        string `json:"gas_price"`
	TotalHolders    uint64 `json:"total_xmrt_holders"`
	TotalStaked     string `json:"total_staked"`
	TreasuryBalance string `json:"treasury_balance"`
	ActiveProposals uint64 `json:"active_proposals"`
}

type stakingPosition struct {
	stakedAmount    string
	rewardsEarned   string
	stakingDuration string
}

type Ledger struct {
	logger   log.Logger
	balances map[string]string
	staking  map[string]stakingPosition
}

func NewLedger(logger log.Logger) *Ledger {
	return &Ledger{
		logger: logger.With("module", "chain"),
		balances: map[string]string{
			ContractAddress: "15000",
			"0x1234567890123456789012345678901234567890": "8500",
			"0x2345678901234567890123456789012345678901": "22000",
		},
		staking: map[string]stakingPosition{
			"0x1234567890123456789012345678901234567890": {"5000", "125", "45 days"},
			"0x2345678901234567890123456789012345678901": {"3000", "75", "30 days"},
		},
	}
}

func (l *Ledger) TokenInfo() TokenInfo {
	return TokenInfo{
		ContractAddress: ContractAddress,
		Network:         NetworkName,
		Symbol:          TokenSymbol,
		Decimals:        TokenDecimals,
		TotalSupply:     TokenSupply,
		ChainId:         ChainId,
		ExplorerUrl:     fmt.Sprintf("https://sepolia.etherscan.io/token/%s", ContractAddress),
	}
}

func (l *Ledger) Balance(address string) Balance {
	balance, ok := l.balances[address]
	if !ok {
		balance = "0"
	}
	return Balance{
		Address:          address,
		Balance:          balance,
		BalanceFormatted: fmt.Sprintf("%s %s", balance, TokenSymbol),
		BalanceWei:       toWei(balance),
	}
}

func (l *Ledger) StakingInfo(address string) StakingInfo {
	position, ok := l.staking[address]
	if !ok {
		position = stakingPosition{"0", "0", "0 days"}
	}
	return StakingInfo{
		Address:         address,
		StakedAmount:    position.stakedAmount,
		RewardsEarned:   position.rewardsEarned,
		StakingDuration: position.stakingDuration,
		Apy:             "12.5%",
	}
}

func (l *Ledger) Stake(address string, amount string) TxResult {
	return TxResult{
		Success:     true,
		TxHash:      mockTxHash(fmt.Sprintf("stake_%s_%s", address, amount)),
		BlockNumber: 12345678,
		GasUsed:     65000,
	}
}

func (l *Ledger) Vote(address string, proposalId uint64, support bool) TxResult {
	return TxResult{
		Success:     true,
		TxHash:      mockTxHash(fmt.Sprintf("vote_%s_%d_%t", address, proposalId, support)),
		BlockNumber: 12345679,
		GasUsed:     45000,
	}
}

func (l *Ledger) CreateProposal(address string, description string) TxResult {
	return TxResult{
		Success:     true,
		TxHash:      mockTxHash(fmt.Sprintf("proposal_%s_%s", address, truncate(description, 20))),
		BlockNumber: 12345680,
		GasUsed:     120000,
	}
}

// TransactionStatus ignores its input and reports a fixed confirmed receipt.
// TODO: look the hash up against recorded transactions instead of returning
// canned data.
func (l *Ledger) TransactionStatus(hash string) TxStatus {
	return TxStatus{
		Hash:          hash,
		Status:        "confirmed",
		BlockNumber:   12345678,
		Confirmations: 15,
		GasUsed:       65000,
		GasPrice:      "20000000000",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		ExplorerUrl:   ExplorerTxUrl(hash),
	}
}

func (l *Ledger) NetworkStats() NetworkStats {
	return NetworkStats{
		Network:         NetworkName,
		ChainId:         ChainId,
		LatestBlock:     12345680,
		GasPrice:        "20 gwei",
		TotalHolders:    1247,
		TotalStaked:     "450000 XMRT",
		TreasuryBalance: "150000 XMRT",
		ActiveProposals: 3,
	}
}

func ExplorerTxUrl(hash string) string {
	return fmt.Sprintf("https://sepolia.etherscan.io/tx/%s", hash)
}

// mockTxHash derives a fabricated transaction hash by content-addressing the
// operation string together with the current time, so repeated operations
// yield distinct hashes.
func mockTxHash(data string) string {
	return crypto.Keccak256Hash([]byte(fmt.Sprintf("%s_%d", data, time.Now().UnixNano()))).Hex()
}

func toWei(balance string) string {
	amount, ok := new(big.Int).SetString(balance, 10)
	if !ok || amount.Sign() == 0 {
		return "0"
	}
	exp := new(big.Int).Exp(big.NewInt(10), big.NewInt(TokenDecimals), nil)
	return new(big.Int).Mul(amount, exp).String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
