package types

import (
	"fmt"
	"math"

	"github.com/axon-labs/axonsim/config"
)

// Params is the global economic configuration. It is a singleton inside
// AppState, mutated only through the settings operation or a successful
// proposal execution.
type Params struct {
	FeePerCall     float64 `json:"feePerCall"`  // USDX per simulated call
	HolderPct      float64 `json:"holderPct"`   // revenue share to MST holders
	TreasuryPct    float64 `json:"treasuryPct"` // revenue share to treasury
	BuybackPct     float64 `json:"buybackPct"`  // revenue share to buyback pool
	BuybackEnabled bool    `json:"buybackEnabled"`
	StakeBoost     float64 `json:"stakeBoost"` // voting power multiplier on staked GOV
}

func DefaultParams() Params {
	return Params{
		FeePerCall:     config.DefaultFeePerCall,
		HolderPct:      config.DefaultHolderPct,
		TreasuryPct:    config.DefaultTreasuryPct,
		BuybackPct:     config.DefaultBuybackPct,
		BuybackEnabled: true,
		StakeBoost:     config.DefaultStakeBoost,
	}
}

// Validate enforces the split-sum invariant and basic bounds. Checked after
// every settings change and before merging proposal overrides.
func (p Params) Validate() error {
	sum := p.HolderPct + p.TreasuryPct + p.BuybackPct
	if math.Abs(sum-100.0) > 1e-9 {
		return fmt.Errorf("revenue split must sum to 100, got %.4f", sum)
	}
	if p.HolderPct < 0 || p.TreasuryPct < 0 || p.BuybackPct < 0 {
		return fmt.Errorf("revenue split percentages must not be negative")
	}
	if p.FeePerCall <= 0 {
		return fmt.Errorf("fee per call must be positive, got %v", p.FeePerCall)
	}
	if p.StakeBoost < 1 {
		return fmt.Errorf("stake boost must be at least 1, got %v", p.StakeBoost)
	}
	return nil
}

// ParamsPatch is a partial override of Params. Proposals carry one; only the
// non-nil fields are applied on execution.
type ParamsPatch struct {
	FeePerCall     *float64 `json:"feePerCall,omitempty"`
	HolderPct      *float64 `json:"holderPct,omitempty"`
	TreasuryPct    *float64 `json:"treasuryPct,omitempty"`
	BuybackPct     *float64 `json:"buybackPct,omitempty"`
	BuybackEnabled *bool    `json:"buybackEnabled,omitempty"`
	StakeBoost     *float64 `json:"stakeBoost,omitempty"`
}

// IsZero reports whether the patch overrides nothing.
func (p ParamsPatch) IsZero() bool {
	return p.FeePerCall == nil && p.HolderPct == nil && p.TreasuryPct == nil &&
		p.BuybackPct == nil && p.BuybackEnabled == nil && p.StakeBoost == nil
}

// Apply merges the patch into a copy of base and returns it. The caller is
// expected to Validate the result before swapping it in.
func (p ParamsPatch) Apply(base Params) Params {
	merged := base
	if p.FeePerCall != nil {
		merged.FeePerCall = *p.FeePerCall
	}
	if p.HolderPct != nil {
		merged.HolderPct = *p.HolderPct
	}
	if p.TreasuryPct != nil {
		merged.TreasuryPct = *p.TreasuryPct
	}
	if p.BuybackPct != nil {
		merged.BuybackPct = *p.BuybackPct
	}
	if p.BuybackEnabled != nil {
		merged.BuybackEnabled = *p.BuybackEnabled
	}
	if p.StakeBoost != nil {
		merged.StakeBoost = *p.StakeBoost
	}
	return merged
}
