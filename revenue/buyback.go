package revenue

import (
	"math"

	"github.com/axon-labs/axonsim/config"
	"github.com/axon-labs/axonsim/types"
)

// ExecuteBuyback converts the buyback pool into a reduction of circulating
// MST supply at the fixed price. It models a protocol-level buy-and-burn
// against an implicit market: no individual wallet balance changes, only the
// reported circulating figure. The unburnable remainder stays in the pool.
// Returns the burned quantity.
func ExecuteBuyback(state *types.AppState) int64 {
	if !state.Params.BuybackEnabled {
		return 0
	}
	if state.TotalSecurityHeld() <= 0 || state.BuybackPool <= 0 {
		return 0
	}

	burn := int64(math.Floor(state.BuybackPool / config.SecurityTokenPriceUSDX))
	if burn <= 0 {
		return 0
	}

	state.CirculatingSecuritySupply -= burn
	if state.CirculatingSecuritySupply < 0 {
		state.CirculatingSecuritySupply = 0
	}
	state.BuybackPool -= float64(burn) * config.SecurityTokenPriceUSDX
	return burn
}
