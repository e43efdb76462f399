package types

import (
	"math"

	"github.com/axon-labs/axonsim/config"
)

// Wallet tracks one identity's holdings across the three balances plus the
// revenue that has accrued to it but has not been claimed yet. Wallets come
// from the fixed seed set and are never destroyed.
type Wallet struct {
	Address         string  `json:"address"`
	SecurityBalance int64   `json:"securityBalance"` // MST
	GovBalance      int64   `json:"govBalance"`      // liquid GOV
	PaymentBalance  float64 `json:"paymentBalance"`  // USDX
	AccruedRevenue  float64 `json:"accruedRevenue"`  // USDX, pull-model payout
	StakedGov       int64   `json:"stakedGov"`
	HasStaked       bool    `json:"hasStaked"`
	VotingPower     int64   `json:"votingPower"`
}

// RecomputeVotingPower derives voting power from the staked balance and the
// current boost. An identity that has never staked votes with its raw GOV
// balance instead.
func (w *Wallet) RecomputeVotingPower(boost float64) {
	if !w.HasStaked {
		w.VotingPower = w.GovBalance
		return
	}
	w.VotingPower = int64(math.Round(float64(w.StakedGov) * boost))
}

// AppState is the aggregate root. One instance is owned by the node, loaded
// from the store at startup (or seeded) and written back after every
// mutation.
type AppState struct {
	Wallets          map[string]*Wallet `json:"wallets"`
	ConnectedAddress string             `json:"connectedAddress"`

	TotalSecuritySupply       int64 `json:"totalSecuritySupply"`
	CirculatingSecuritySupply int64 `json:"circulatingSecuritySupply"`
	TotalGovSupply            int64 `json:"totalGovSupply"`
	CirculatingGovSupply      int64 `json:"circulatingGovSupply"`

	TreasuryBalance float64 `json:"treasuryBalance"` // USDX
	BuybackPool     float64 `json:"buybackPool"`     // USDX

	UsageLog     []UsageEvent `json:"usageLog"`
	Proposals    []*Proposal  `json:"proposals"`
	ModelVersion string       `json:"modelVersion"`
	Params       Params       `json:"params"`

	// Sequence counts applied mutations and keys snapshot history.
	Sequence int64 `json:"sequence"`
}

// TotalSecurityHeld sums the security tokens currently sitting in wallets.
// Recomputed before every distribution so transfers between operations are
// always reflected.
func (s *AppState) TotalSecurityHeld() int64 {
	var total int64
	for _, w := range s.Wallets {
		total += w.SecurityBalance
	}
	return total
}

// SeedState returns the fixed genesis document used when the store holds no
// (or a corrupt) state blob.
func SeedState() *AppState {
	wallets := map[string]*Wallet{
		"axw1": {Address: "axw1", SecurityBalance: 100_000, GovBalance: 500_000, PaymentBalance: 25_000},
		"axw2": {Address: "axw2", SecurityBalance: 40_000, GovBalance: 250_000, PaymentBalance: 50_000},
		"axw3": {Address: "axw3", SecurityBalance: 10_000, GovBalance: 100_000, PaymentBalance: 10_000},
	}
	var circulating, circulatingGov int64
	for _, w := range wallets {
		w.RecomputeVotingPower(config.DefaultStakeBoost)
		circulating += w.SecurityBalance
		circulatingGov += w.GovBalance
	}
	return &AppState{
		Wallets:                   wallets,
		TotalSecuritySupply:       config.TotalSecuritySupply,
		CirculatingSecuritySupply: circulating,
		TotalGovSupply:            config.TotalGovSupply,
		CirculatingGovSupply:      circulatingGov,
		UsageLog:                  []UsageEvent{},
		Proposals:                 []*Proposal{},
		ModelVersion:              config.DefaultModelVersion,
		Params:                    DefaultParams(),
	}
}
