// Package ledger implements the wallet and supply operations of the Axon-1
// token economy. Every function is a total state transition: it either fully
// applies to the passed AppState or returns an error without touching it.
package ledger

import (
	"fmt"
	"math"

	"github.com/axon-labs/axonsim/config"
	"github.com/axon-labs/axonsim/types"
)

func lookup(state *types.AppState, address string) (*types.Wallet, error) {
	wallet, ok := state.Wallets[address]
	if !ok {
		return nil, fmt.Errorf("unknown wallet %s", address)
	}
	return wallet, nil
}

// PurchaseSecurityToken converts part of the buyer's USDX balance into MST at
// the fixed price. Fractional remainders below one whole token are not
// purchasable, so the wallet is debited tokens*price rather than the
// requested amount. Returns the number of tokens bought.
func PurchaseSecurityToken(state *types.AppState, address string, payment float64) (int64, error) {
	wallet, err := lookup(state, address)
	if err != nil {
		return 0, err
	}
	if wallet.PaymentBalance < payment {
		return 0, fmt.Errorf("insufficient USDX balance: have %.2f, need %.2f", wallet.PaymentBalance, payment)
	}
	tokens := int64(math.Floor(payment / config.SecurityTokenPriceUSDX))
	if tokens <= 0 {
		return 0, fmt.Errorf("%.2f USDX buys no whole MST at %.2f USDX each", payment, config.SecurityTokenPriceUSDX)
	}

	spent := float64(tokens) * config.SecurityTokenPriceUSDX
	wallet.PaymentBalance -= spent
	wallet.SecurityBalance += tokens
	state.CirculatingSecuritySupply += tokens
	return tokens, nil
}

// AirdropGovernanceToken credits GOV to the recipient and grows the
// circulating GOV supply. Non-positive amounts are rejected.
func AirdropGovernanceToken(state *types.AppState, address string, amount int64) error {
	wallet, err := lookup(state, address)
	if err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("airdrop amount must be positive, got %d", amount)
	}

	wallet.GovBalance += amount
	state.CirculatingGovSupply += amount
	if !wallet.HasStaked {
		wallet.RecomputeVotingPower(state.Params.StakeBoost)
	}
	return nil
}

// Stake moves GOV from the liquid balance into the staked balance and
// recomputes voting power with the current boost.
func Stake(state *types.AppState, address string, amount int64) error {
	wallet, err := lookup(state, address)
	if err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("stake amount must be positive, got %d", amount)
	}
	if wallet.GovBalance < amount {
		return fmt.Errorf("insufficient GOV balance: have %d, need %d", wallet.GovBalance, amount)
	}

	wallet.GovBalance -= amount
	wallet.StakedGov += amount
	wallet.HasStaked = true
	wallet.RecomputeVotingPower(state.Params.StakeBoost)
	return nil
}

// Unstake moves GOV back from the staked balance into the liquid balance.
func Unstake(state *types.AppState, address string, amount int64) error {
	wallet, err := lookup(state, address)
	if err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("unstake amount must be positive, got %d", amount)
	}
	if wallet.StakedGov < amount {
		return fmt.Errorf("insufficient staked GOV: have %d, need %d", wallet.StakedGov, amount)
	}

	wallet.StakedGov -= amount
	wallet.GovBalance += amount
	wallet.RecomputeVotingPower(state.Params.StakeBoost)
	return nil
}

// Claim transfers the full accrued revenue into the spendable USDX balance
// (pull-model payout). Returns the claimed amount.
func Claim(state *types.AppState, address string) (float64, error) {
	wallet, err := lookup(state, address)
	if err != nil {
		return 0, err
	}
	if wallet.AccruedRevenue <= 0 {
		return 0, fmt.Errorf("nothing to claim for %s", address)
	}

	claimed := wallet.AccruedRevenue
	wallet.PaymentBalance += claimed
	wallet.AccruedRevenue = 0
	return claimed, nil
}

// Connect marks the active identity the presentation layer operates as.
func Connect(state *types.AppState, address string) error {
	if _, err := lookup(state, address); err != nil {
		return err
	}
	state.ConnectedAddress = address
	return nil
}
