package node

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/montanaflynn/stats"

	"github.com/axon-labs/axonsim/types"
)

// View projections consumed by the presentation layer's charts. They are
// derived from read-only snapshots; the usage series is memoized per state
// sequence since the log only grows.

type RevenueSplit struct {
	HolderPct   float64 `json:"holderPct"`
	TreasuryPct float64 `json:"treasuryPct"`
	BuybackPct  float64 `json:"buybackPct"`
}

type UsageBucket struct {
	Minute int64   `json:"minute"` // unix seconds, truncated to the minute
	Calls  int     `json:"calls"`
	Fees   float64 `json:"fees"`
}

type UsageSeries struct {
	Buckets    []UsageBucket `json:"buckets"`
	TotalCalls int           `json:"totalCalls"`
	MeanFee    float64       `json:"meanFee"`
	MaxFee     float64       `json:"maxFee"`
}

type ProposalTally struct {
	ID         string               `json:"id"`
	Title      string               `json:"title"`
	Status     types.ProposalStatus `json:"status"`
	ForPct     float64              `json:"forPct"`
	AgainstPct float64              `json:"againstPct"`
	AbstainPct float64              `json:"abstainPct"`
	TotalVotes int64                `json:"totalVotes"`
}

const usageSeriesCacheSize = 16

func newUsageSeriesCache() *lru.Cache[int64, *UsageSeries] {
	cache, err := lru.New[int64, *UsageSeries](usageSeriesCacheSize)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return cache
}

// RevenueSplitView returns the current fee split percentages.
func (n *Node) RevenueSplitView() RevenueSplit {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return RevenueSplit{
		HolderPct:   n.state.Params.HolderPct,
		TreasuryPct: n.state.Params.TreasuryPct,
		BuybackPct:  n.state.Params.BuybackPct,
	}
}

// UsageSeriesView buckets the usage log per minute and summarizes the fees.
func (n *Node) UsageSeriesView() *UsageSeries {
	n.mu.RLock()
	sequence := n.state.Sequence
	if cached, ok := n.usageCache.Get(sequence); ok {
		n.mu.RUnlock()
		return cached
	}

	byMinute := make(map[int64]*UsageBucket)
	fees := make([]float64, 0, len(n.state.UsageLog))
	for _, event := range n.state.UsageLog {
		minute := event.Timestamp - event.Timestamp%60
		bucket, ok := byMinute[minute]
		if !ok {
			bucket = &UsageBucket{Minute: minute}
			byMinute[minute] = bucket
		}
		bucket.Calls++
		bucket.Fees += event.Fee
		fees = append(fees, event.Fee)
	}
	n.mu.RUnlock()

	series := &UsageSeries{
		Buckets:    make([]UsageBucket, 0, len(byMinute)),
		TotalCalls: len(fees),
	}
	for _, bucket := range byMinute {
		series.Buckets = append(series.Buckets, *bucket)
	}
	sort.Slice(series.Buckets, func(i, j int) bool {
		return series.Buckets[i].Minute < series.Buckets[j].Minute
	})
	if len(fees) > 0 {
		series.MeanFee, _ = stats.Mean(fees)
		series.MaxFee, _ = stats.Max(fees)
	}

	n.usageCache.Add(sequence, series)
	return series
}

// ProposalTalliesView returns per-proposal vote percentages and status.
func (n *Node) ProposalTalliesView() []ProposalTally {
	n.mu.RLock()
	defer n.mu.RUnlock()

	now := n.now()
	tallies := make([]ProposalTally, 0, len(n.state.Proposals))
	for _, p := range n.state.Proposals {
		tally := ProposalTally{
			ID:         p.ID,
			Title:      p.Title,
			Status:     p.Status(now),
			TotalVotes: p.TotalVotes(),
		}
		if tally.TotalVotes > 0 {
			total := float64(tally.TotalVotes)
			tally.ForPct = float64(p.ForVotes) / total * 100
			tally.AgainstPct = float64(p.AgainstVotes) / total * 100
			tally.AbstainPct = float64(p.AbstainVotes) / total * 100
		}
		tallies = append(tallies, tally)
	}
	return tallies
}
