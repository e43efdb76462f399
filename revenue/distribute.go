// Package revenue implements the usage-fee split and the pro-rata
// distribution to security-token holders, plus the buyback-and-burn step.
package revenue

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/axon-labs/axonsim/types"
)

// Summary reports what one usage batch did to the ledger.
type Summary struct {
	Calls         int     `json:"calls"`
	TotalFees     float64 `json:"totalFees"`
	HolderShare   float64 `json:"holderShare"`
	TreasuryShare float64 `json:"treasuryShare"`
	BuybackShare  float64 `json:"buybackShare"`
	Burned        int64   `json:"burned"`
}

// SimulateUsage appends one UsageEvent per call, splits the fees between
// holders, treasury and the buyback pool, distributes the holder share
// pro-rata over current security balances, and finally runs the buyback.
//
// The sum of the per-wallet accrual increments equals HolderShare up to
// floating-point tolerance whenever at least one wallet holds MST.
func SimulateUsage(state *types.AppState, caller string, calls int, now int64) (*Summary, error) {
	if calls < 1 {
		return nil, fmt.Errorf("call count must be at least 1, got %d", calls)
	}
	if _, ok := state.Wallets[caller]; !ok {
		return nil, fmt.Errorf("unknown wallet %s", caller)
	}

	fee := state.Params.FeePerCall
	summary := &Summary{Calls: calls}
	for i := 0; i < calls; i++ {
		state.UsageLog = append(state.UsageLog, types.UsageEvent{
			ID:           uuid.NewString(),
			Caller:       caller,
			Fee:          fee,
			ModelVersion: state.ModelVersion,
			Timestamp:    now,
		})
		summary.TotalFees += fee
		summary.HolderShare += fee * state.Params.HolderPct / 100
		summary.TreasuryShare += fee * state.Params.TreasuryPct / 100
		summary.BuybackShare += fee * state.Params.BuybackPct / 100
	}

	// Pro-rata over balances as they stand right now; a wallet holding zero
	// MST receives nothing. With no holders at all the holder share is
	// forfeit rather than redirected.
	totalHeld := state.TotalSecurityHeld()
	if totalHeld > 0 {
		for _, wallet := range state.Wallets {
			if wallet.SecurityBalance <= 0 {
				continue
			}
			wallet.AccruedRevenue += summary.HolderShare * float64(wallet.SecurityBalance) / float64(totalHeld)
		}
	}

	state.TreasuryBalance += summary.TreasuryShare
	state.BuybackPool += summary.BuybackShare

	summary.Burned = ExecuteBuyback(state)
	return summary, nil
}
