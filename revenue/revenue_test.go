package revenue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axon-labs/axonsim/config"
	"github.com/axon-labs/axonsim/types"
)

func soloHolderState() *types.AppState {
	state := types.SeedState()
	state.Wallets = map[string]*types.Wallet{
		"axw1": {Address: "axw1", SecurityBalance: 100_000, PaymentBalance: 1_000},
	}
	state.CirculatingSecuritySupply = 100_000
	return state
}

func TestSoleHolderReceivesFullHolderShare(t *testing.T) {
	state := soloHolderState()
	state.Params.HolderPct = 90
	state.Params.TreasuryPct = 10
	state.Params.BuybackPct = 0
	state.Params.BuybackEnabled = false

	summary, err := SimulateUsage(state, "axw1", 10, 1_700_000_000)
	require.NoError(t, err)

	assert.Equal(t, 10, summary.Calls)
	assert.InDelta(t, 10.0, summary.TotalFees, 1e-9)
	assert.InDelta(t, 9.0, summary.HolderShare, 1e-9)
	assert.InDelta(t, 9.0, state.Wallets["axw1"].AccruedRevenue, 1e-9)
	assert.InDelta(t, 1.0, state.TreasuryBalance, 1e-9)
	assert.Zero(t, summary.Burned)
	assert.Len(t, state.UsageLog, 10)
	assert.Equal(t, state.ModelVersion, state.UsageLog[0].ModelVersion)
}

func TestProRataDistributionConservesHolderShare(t *testing.T) {
	state := types.SeedState() // axw1 100k, axw2 40k, axw3 10k MST
	state.Params.BuybackEnabled = false

	before := map[string]float64{}
	for addr, w := range state.Wallets {
		before[addr] = w.AccruedRevenue
	}

	summary, err := SimulateUsage(state, "axw2", 37, 1_700_000_000)
	require.NoError(t, err)

	var distributed float64
	for addr, w := range state.Wallets {
		delta := w.AccruedRevenue - before[addr]
		assert.GreaterOrEqual(t, delta, 0.0)
		distributed += delta
	}
	assert.InDelta(t, summary.HolderShare, distributed, 1e-9)

	// Shares follow the balances: axw1 holds 10x axw3.
	assert.InDelta(t,
		state.Wallets["axw3"].AccruedRevenue*10,
		state.Wallets["axw1"].AccruedRevenue, 1e-9)
}

func TestNoHoldersForfeitsHolderShare(t *testing.T) {
	state := types.SeedState()
	for _, w := range state.Wallets {
		w.SecurityBalance = 0
	}
	state.CirculatingSecuritySupply = 0

	summary, err := SimulateUsage(state, "axw1", 5, 1_700_000_000)
	require.NoError(t, err)

	for _, w := range state.Wallets {
		assert.Zero(t, w.AccruedRevenue)
	}
	assert.Greater(t, summary.HolderShare, 0.0)
	assert.Zero(t, summary.Burned, "nothing to burn without holders")
}

func TestSimulateUsageRejectsBadInput(t *testing.T) {
	state := types.SeedState()

	_, err := SimulateUsage(state, "axw1", 0, 1_700_000_000)
	require.Error(t, err)

	_, err = SimulateUsage(state, "missing", 3, 1_700_000_000)
	require.Error(t, err)

	assert.Empty(t, state.UsageLog, "rejected batches log nothing")
}

func TestBuybackBurnsFloorOfPool(t *testing.T) {
	state := soloHolderState()
	state.BuybackPool = 10.3
	startCirculating := state.CirculatingSecuritySupply

	burned := ExecuteBuyback(state)

	assert.Equal(t, int64(20), burned, "floor(10.3 / 0.5)")
	assert.Equal(t, startCirculating-20, state.CirculatingSecuritySupply)
	assert.InDelta(t, 0.3, state.BuybackPool, 1e-9, "unburnable remainder stays pooled")
}

func TestBuybackRespectsBounds(t *testing.T) {
	state := soloHolderState()
	state.BuybackPool = 123.45

	maxBurn := int64(math.Floor(state.BuybackPool / config.SecurityTokenPriceUSDX))
	burned := ExecuteBuyback(state)

	assert.LessOrEqual(t, burned, maxBurn)
	assert.GreaterOrEqual(t, state.CirculatingSecuritySupply, int64(0))
	assert.GreaterOrEqual(t, state.BuybackPool, 0.0)
}

func TestBuybackNeverDrivesSupplyNegative(t *testing.T) {
	state := soloHolderState()
	state.CirculatingSecuritySupply = 5
	state.BuybackPool = 100

	ExecuteBuyback(state)

	assert.Equal(t, int64(0), state.CirculatingSecuritySupply)
}

func TestBuybackDisabledAccumulatesPool(t *testing.T) {
	state := soloHolderState()
	state.Params.BuybackEnabled = false
	state.BuybackPool = 50

	assert.Zero(t, ExecuteBuyback(state))
	assert.InDelta(t, 50.0, state.BuybackPool, 1e-9)
}

func TestBuybackSubTokenPoolBurnsNothing(t *testing.T) {
	state := soloHolderState()
	state.BuybackPool = 0.49

	assert.Zero(t, ExecuteBuyback(state))
	assert.InDelta(t, 0.49, state.BuybackPool, 1e-9)
}

func TestUsageTriggersBuybackWhenEnabled(t *testing.T) {
	state := soloHolderState() // defaults: fee 1.0, 70/20/10, buyback on

	summary, err := SimulateUsage(state, "axw1", 100, 1_700_000_000)
	require.NoError(t, err)

	// 100 calls put 10 USDX into the pool, worth 20 MST at the fixed price.
	assert.Equal(t, int64(20), summary.Burned)
	assert.Equal(t, int64(99_980), state.CirculatingSecuritySupply)
}
