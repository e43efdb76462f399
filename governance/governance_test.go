package governance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axon-labs/axonsim/config"
	"github.com/axon-labs/axonsim/ledger"
	"github.com/axon-labs/axonsim/types"
)

const t0 int64 = 1_700_000_000

func float(v float64) *float64 { return &v }

func openProposal(t *testing.T, state *types.AppState, overrides types.ParamsPatch) *types.Proposal {
	t.Helper()
	return CreateProposal(state, "Shift the split", "More to holders", 3_600, overrides, t0)
}

func TestCreateProposalRaisesShortDeadline(t *testing.T) {
	state := types.SeedState()

	p := CreateProposal(state, "Quick one", "", 5, types.ParamsPatch{}, t0)

	assert.Equal(t, t0+config.MinProposalDeadlineSec, p.Deadline)
	assert.Equal(t, types.ProposalOpen, p.Status(t0))
	require.Len(t, state.Proposals, 1)

	second := CreateProposal(state, "Another", "", 7_200, types.ParamsPatch{}, t0)
	assert.Equal(t, second.ID, state.Proposals[0].ID, "newest proposal sits first")
}

func TestVoteAddsFullVotingPower(t *testing.T) {
	state := types.SeedState()
	require.NoError(t, ledger.Stake(state, "axw1", 100_000)) // power 200,000
	p := openProposal(t, state, types.ParamsPatch{})

	require.NoError(t, Vote(state, p.ID, "axw1", types.VoteFor, t0+10))

	assert.Equal(t, int64(200_000), p.ForVotes)
	assert.Equal(t, types.VoteFor, p.Voters["axw1"])
}

func TestVoteWeightIsReadAtVoteTime(t *testing.T) {
	state := types.SeedState()
	require.NoError(t, ledger.Stake(state, "axw1", 100_000))
	p := openProposal(t, state, types.ParamsPatch{})

	require.NoError(t, Vote(state, p.ID, "axw1", types.VoteFor, t0+10))
	require.NoError(t, ledger.Unstake(state, "axw1", 100_000))

	assert.Equal(t, int64(200_000), p.ForVotes, "past tallies never move")
}

func TestVoteRejections(t *testing.T) {
	state := types.SeedState()
	require.NoError(t, ledger.Stake(state, "axw1", 10_000))
	p := openProposal(t, state, types.ParamsPatch{})

	require.Error(t, Vote(state, "missing", "axw1", types.VoteFor, t0+10), "unknown proposal")
	require.Error(t, Vote(state, p.ID, "axw1", "maybe", t0+10), "invalid choice")
	require.Error(t, Vote(state, p.ID, "missing", types.VoteFor, t0+10), "unknown wallet")
	require.Error(t, Vote(state, p.ID, "axw1", types.VoteFor, p.Deadline), "deadline passed")

	require.NoError(t, Vote(state, p.ID, "axw1", types.VoteFor, t0+10))
	require.Error(t, Vote(state, p.ID, "axw1", types.VoteAgainst, t0+20), "one vote per identity")
	assert.Equal(t, int64(20_000), p.TotalVotes())
}

func TestVoteRequiresVotingPower(t *testing.T) {
	state := types.SeedState()
	w := state.Wallets["axw3"]
	w.GovBalance = 0
	w.RecomputeVotingPower(state.Params.StakeBoost)
	p := openProposal(t, state, types.ParamsPatch{})

	require.Error(t, Vote(state, p.ID, "axw3", types.VoteFor, t0+10))
}

func TestExecutePassingProposalAppliesOverrides(t *testing.T) {
	state := types.SeedState()
	require.NoError(t, ledger.Stake(state, "axw1", 100_000))
	require.NoError(t, ledger.Stake(state, "axw2", 20_000))
	p := openProposal(t, state, types.ParamsPatch{
		HolderPct:  float(60),
		BuybackPct: float(20),
	})

	require.NoError(t, Vote(state, p.ID, "axw1", types.VoteFor, t0+10))
	require.NoError(t, Vote(state, p.ID, "axw2", types.VoteAgainst, t0+10))

	applied, err := Execute(state, p.ID, p.Deadline+1)
	require.NoError(t, err)

	assert.True(t, applied)
	assert.Equal(t, 60.0, state.Params.HolderPct)
	assert.Equal(t, 20.0, state.Params.BuybackPct)
	assert.Equal(t, 20.0, state.Params.TreasuryPct, "untouched field keeps its value")
	assert.Equal(t, types.ProposalExecuted, p.Status(p.Deadline+1))
}

func TestExecuteFailingProposalKeepsParams(t *testing.T) {
	state := types.SeedState()
	require.NoError(t, ledger.Stake(state, "axw1", 10_000))
	require.NoError(t, ledger.Stake(state, "axw2", 10_000))
	before := state.Params
	p := openProposal(t, state, types.ParamsPatch{HolderPct: float(60), BuybackPct: float(20)})

	require.NoError(t, Vote(state, p.ID, "axw1", types.VoteFor, t0+10))
	require.NoError(t, Vote(state, p.ID, "axw2", types.VoteAgainst, t0+10))
	// Tie: for does not strictly outvote against.

	applied, err := Execute(state, p.ID, p.Deadline+1)
	require.NoError(t, err)

	assert.False(t, applied)
	assert.Equal(t, before, state.Params)
	assert.True(t, p.Executed)
}

func TestExecuteIsIdempotent(t *testing.T) {
	state := types.SeedState()
	require.NoError(t, ledger.Stake(state, "axw1", 10_000))
	p := openProposal(t, state, types.ParamsPatch{HolderPct: float(60), BuybackPct: float(20)})
	require.NoError(t, Vote(state, p.ID, "axw1", types.VoteFor, t0+10))

	applied, err := Execute(state, p.ID, p.Deadline+1)
	require.NoError(t, err)
	require.True(t, applied)
	paramsAfterFirst := state.Params

	applied, err = Execute(state, p.ID, p.Deadline+1)
	require.Error(t, err)
	assert.False(t, applied)
	assert.Equal(t, paramsAfterFirst, state.Params)
}

func TestExecuteOpenProposalRejected(t *testing.T) {
	state := types.SeedState()
	p := openProposal(t, state, types.ParamsPatch{})

	_, err := Execute(state, p.ID, t0+10)
	require.Error(t, err)
	assert.False(t, p.Executed)
}

func TestExecuteInvalidMergeTerminatesWithoutApplying(t *testing.T) {
	state := types.SeedState()
	require.NoError(t, ledger.Stake(state, "axw1", 10_000))
	before := state.Params
	// Pushes the split sum past 100.
	p := openProposal(t, state, types.ParamsPatch{HolderPct: float(95)})
	require.NoError(t, Vote(state, p.ID, "axw1", types.VoteFor, t0+10))

	applied, err := Execute(state, p.ID, p.Deadline+1)
	require.NoError(t, err)

	assert.False(t, applied)
	assert.Equal(t, before, state.Params)
	assert.True(t, p.Executed)
}

func TestExecutedBoostChangeRefreshesVotingPower(t *testing.T) {
	state := types.SeedState()
	require.NoError(t, ledger.Stake(state, "axw1", 100_000)) // power 200,000 at boost 2
	p := openProposal(t, state, types.ParamsPatch{StakeBoost: float(3)})
	require.NoError(t, Vote(state, p.ID, "axw1", types.VoteFor, t0+10))

	applied, err := Execute(state, p.ID, p.Deadline+1)
	require.NoError(t, err)
	require.True(t, applied)

	assert.Equal(t, int64(300_000), state.Wallets["axw1"].VotingPower)
	assert.Equal(t, int64(200_000), p.ForVotes, "historic tally stays as cast")
}

func TestUpdateParams(t *testing.T) {
	state := types.SeedState()

	require.Error(t, UpdateParams(state, types.ParamsPatch{}), "empty patch")
	require.Error(t, UpdateParams(state, types.ParamsPatch{HolderPct: float(95)}), "split sum broken")

	require.NoError(t, ledger.Stake(state, "axw2", 50_000))
	require.NoError(t, UpdateParams(state, types.ParamsPatch{StakeBoost: float(4)}))

	assert.Equal(t, 4.0, state.Params.StakeBoost)
	assert.Equal(t, int64(200_000), state.Wallets["axw2"].VotingPower)
}
