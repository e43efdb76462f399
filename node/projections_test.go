package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axon-labs/axonsim/types"
)

func TestRevenueSplitView(t *testing.T) {
	n := newTestNode(t)

	split := n.RevenueSplitView()
	assert.Equal(t, 70.0, split.HolderPct)
	assert.Equal(t, 20.0, split.TreasuryPct)
	assert.Equal(t, 10.0, split.BuybackPct)
	assert.InDelta(t, 100.0, split.HolderPct+split.TreasuryPct+split.BuybackPct, 1e-9)
}

func TestUsageSeriesBucketsPerMinute(t *testing.T) {
	n := newTestNode(t)
	require.NoError(t, n.Connect("axw1"))

	n.now = func() int64 { return t0 }
	_, err := n.RunUsage(3)
	require.NoError(t, err)

	n.now = func() int64 { return t0 + 60 }
	_, err = n.RunUsage(2)
	require.NoError(t, err)

	series := n.UsageSeriesView()
	require.Len(t, series.Buckets, 2)
	assert.Equal(t, 3, series.Buckets[0].Calls)
	assert.Equal(t, 2, series.Buckets[1].Calls)
	assert.Less(t, series.Buckets[0].Minute, series.Buckets[1].Minute)
	assert.Equal(t, 5, series.TotalCalls)
	assert.InDelta(t, 1.0, series.MeanFee, 1e-9)
	assert.InDelta(t, 1.0, series.MaxFee, 1e-9)
	assert.InDelta(t, 3.0, series.Buckets[0].Fees, 1e-9)
}

func TestUsageSeriesEmptyLog(t *testing.T) {
	n := newTestNode(t)

	series := n.UsageSeriesView()
	assert.Empty(t, series.Buckets)
	assert.Zero(t, series.TotalCalls)
	assert.Zero(t, series.MeanFee)
}

func TestUsageSeriesIsCachedPerSequence(t *testing.T) {
	n := newTestNode(t)
	require.NoError(t, n.Connect("axw1"))
	_, err := n.RunUsage(4)
	require.NoError(t, err)

	first := n.UsageSeriesView()
	second := n.UsageSeriesView()
	assert.Same(t, first, second, "same sequence serves the memoized series")

	_, err = n.RunUsage(1)
	require.NoError(t, err)
	third := n.UsageSeriesView()
	assert.NotSame(t, first, third)
	assert.Equal(t, 5, third.TotalCalls)
}

func TestProposalTalliesView(t *testing.T) {
	n := newTestNode(t)
	require.NoError(t, n.StakeGov("axw1", 100_000)) // power 200,000
	require.NoError(t, n.StakeGov("axw2", 50_000))  // power 100,000

	p, err := n.Propose("Shift the split", "", 3_600, types.ParamsPatch{})
	require.NoError(t, err)
	require.NoError(t, n.Vote(p.ID, "axw1", types.VoteFor))
	require.NoError(t, n.Vote(p.ID, "axw2", types.VoteAgainst))

	tallies := n.ProposalTalliesView()
	require.Len(t, tallies, 1)

	tally := tallies[0]
	assert.Equal(t, p.ID, tally.ID)
	assert.Equal(t, types.ProposalOpen, tally.Status)
	assert.Equal(t, int64(300_000), tally.TotalVotes)
	assert.InDelta(t, 66.666, tally.ForPct, 0.01)
	assert.InDelta(t, 33.333, tally.AgainstPct, 0.01)
	assert.Zero(t, tally.AbstainPct)
}

func TestProposalTalliesEmptyProposal(t *testing.T) {
	n := newTestNode(t)

	_, err := n.Propose("No votes yet", "", 3_600, types.ParamsPatch{})
	require.NoError(t, err)

	tallies := n.ProposalTalliesView()
	require.Len(t, tallies, 1)
	assert.Zero(t, tallies[0].TotalVotes)
	assert.Zero(t, tallies[0].ForPct)
}
