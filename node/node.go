// Package node owns the application state and exposes every operation of the
// simulation. The network surface talks to it exclusively through the message
// bus; all transitions run to completion under one lock, and the state is
// written back to the store after each of them.
package node

import (
	"fmt"
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sasha-s/go-deadlock"

	"github.com/axon-labs/axonsim/config"
	"github.com/axon-labs/axonsim/governance"
	"github.com/axon-labs/axonsim/ledger"
	"github.com/axon-labs/axonsim/revenue"
	"github.com/axon-labs/axonsim/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Node struct {
	cfg   *config.Config
	store types.Store
	bus   *types.MessageBus

	mu    deadlock.RWMutex
	state *types.AppState

	messageCh chan types.Message

	notifyMu deadlock.Mutex
	backlog  []types.Notification
	notifyCh chan types.Notification

	usageCache *lru.Cache[int64, *UsageSeries]

	// now is swappable in tests.
	now func() int64
}

// New loads the persisted state (or seeds a fresh one) and subscribes the
// node to every operation and query on the bus. Call Start to begin serving.
func New(cfg *config.Config, store types.Store, bus *types.MessageBus) (*Node, error) {
	state, err := store.Load()
	if err != nil {
		log.Printf("WARN: could not load persisted state, falling back to seed: %v", err)
		state = nil
	}
	if state == nil {
		state = types.SeedState()
		if err := store.Save(state); err != nil {
			return nil, fmt.Errorf("error persisting seed state: %v", err)
		}
		log.Printf("INFO: seeded fresh app state with %d wallets", len(state.Wallets))
	} else {
		log.Printf("INFO: loaded app state at sequence %d", state.Sequence)
	}

	n := &Node{
		cfg:        cfg,
		store:      store,
		bus:        bus,
		state:      state,
		messageCh:  make(chan types.Message, config.MessageBufferSize),
		backlog:    make([]types.Notification, 0, cfg.NotifyBacklog),
		notifyCh:   make(chan types.Notification, cfg.NotifyBacklog),
		usageCache: newUsageSeriesCache(),
		now:        func() int64 { return time.Now().Unix() },
	}

	for _, msgType := range []types.MessageType{
		types.ConnectWallet, types.PurchaseToken, types.AirdropGov,
		types.StakeGov, types.UnstakeGov, types.ClaimRevenue,
		types.SimulateUsage, types.UpdateParams, types.CreateProposal,
		types.CastVote, types.ExecuteProposal, types.GetState,
		types.GetRevenueSplit, types.GetUsageSeries,
		types.GetProposalTallies, types.GetNotifications,
	} {
		bus.Subscribe(msgType, n.messageCh)
	}

	return n, nil
}

// Start launches the message dispatch loop.
func (n *Node) Start() {
	go n.handleMessages()
}

// mutate runs one state transition under the write lock. On success the
// sequence is bumped and the state written back; a persistence failure does
// not undo the transition (the write-back is outside the atomicity contract).
func (n *Node) mutate(fn func(state *types.AppState) error) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := fn(n.state); err != nil {
		return err
	}
	n.state.Sequence++

	if err := n.store.Save(n.state); err != nil {
		log.Printf("WARN: failed to persist state at sequence %d: %v", n.state.Sequence, err)
	}
	if every := n.cfg.SnapshotEvery; every > 0 && n.state.Sequence%every == 0 {
		if err := n.store.Snapshot(n.state); err != nil {
			log.Printf("WARN: failed to snapshot state at sequence %d: %v", n.state.Sequence, err)
		}
	}
	return nil
}

// Connect sets the active identity.
func (n *Node) Connect(address string) error {
	err := n.mutate(func(state *types.AppState) error {
		return ledger.Connect(state, address)
	})
	if err != nil {
		n.notifyError("Connect failed", err)
		return err
	}
	n.notify("Wallet connected", address)
	return nil
}

// Purchase converts USDX into MST at the fixed price.
func (n *Node) Purchase(address string, payment float64) (int64, error) {
	var bought int64
	err := n.mutate(func(state *types.AppState) error {
		var opErr error
		bought, opErr = ledger.PurchaseSecurityToken(state, address, payment)
		return opErr
	})
	if err != nil {
		n.notifyError("Purchase failed", err)
		return 0, err
	}
	n.notify("Purchase complete", fmt.Sprintf("%s bought %d MST", address, bought))
	return bought, nil
}

// Airdrop credits GOV to a wallet.
func (n *Node) Airdrop(address string, amount int64) error {
	err := n.mutate(func(state *types.AppState) error {
		return ledger.AirdropGovernanceToken(state, address, amount)
	})
	if err != nil {
		n.notifyError("Airdrop failed", err)
		return err
	}
	n.notify("Airdrop complete", fmt.Sprintf("%s received %d GOV", address, amount))
	return nil
}

// StakeGov locks GOV for boosted voting power.
func (n *Node) StakeGov(address string, amount int64) error {
	err := n.mutate(func(state *types.AppState) error {
		return ledger.Stake(state, address, amount)
	})
	if err != nil {
		n.notifyError("Stake failed", err)
		return err
	}
	n.notify("Stake complete", fmt.Sprintf("%s staked %d GOV", address, amount))
	return nil
}

// UnstakeGov releases staked GOV.
func (n *Node) UnstakeGov(address string, amount int64) error {
	err := n.mutate(func(state *types.AppState) error {
		return ledger.Unstake(state, address, amount)
	})
	if err != nil {
		n.notifyError("Unstake failed", err)
		return err
	}
	n.notify("Unstake complete", fmt.Sprintf("%s unstaked %d GOV", address, amount))
	return nil
}

// Claim moves accrued revenue into the spendable balance.
func (n *Node) Claim(address string) (float64, error) {
	var claimed float64
	err := n.mutate(func(state *types.AppState) error {
		var opErr error
		claimed, opErr = ledger.Claim(state, address)
		return opErr
	})
	if err != nil {
		n.notifyError("Claim failed", err)
		return 0, err
	}
	n.notify("Revenue claimed", fmt.Sprintf("%s claimed %.2f USDX", address, claimed))
	return claimed, nil
}

// RunUsage simulates fee-generating calls from the connected identity and
// distributes the revenue.
func (n *Node) RunUsage(calls int) (*revenue.Summary, error) {
	var summary *revenue.Summary
	err := n.mutate(func(state *types.AppState) error {
		if state.ConnectedAddress == "" {
			return fmt.Errorf("no wallet connected")
		}
		var opErr error
		summary, opErr = revenue.SimulateUsage(state, state.ConnectedAddress, calls, n.now())
		return opErr
	})
	if err != nil {
		n.notifyError("Usage simulation failed", err)
		return nil, err
	}
	desc := fmt.Sprintf("%d calls, %.2f USDX to holders", summary.Calls, summary.HolderShare)
	if summary.Burned > 0 {
		desc += fmt.Sprintf(", %d MST burned", summary.Burned)
	}
	n.notify("Usage simulated", desc)
	return summary, nil
}

// ApplyParams applies a settings-panel patch.
func (n *Node) ApplyParams(patch types.ParamsPatch) error {
	err := n.mutate(func(state *types.AppState) error {
		return governance.UpdateParams(state, patch)
	})
	if err != nil {
		n.notifyError("Settings update failed", err)
		return err
	}
	n.notify("Settings updated", "")
	return nil
}

// Propose creates a governance proposal.
func (n *Node) Propose(title, description string, deadlineOffset int64, overrides types.ParamsPatch) (*types.Proposal, error) {
	var proposal *types.Proposal
	err := n.mutate(func(state *types.AppState) error {
		proposal = governance.CreateProposal(state, title, description, deadlineOffset, overrides, n.now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	n.notify("Proposal created", title)
	return proposal, nil
}

// Vote casts the identity's full voting power on an open proposal.
func (n *Node) Vote(proposalID, address string, choice types.VoteChoice) error {
	err := n.mutate(func(state *types.AppState) error {
		return governance.Vote(state, proposalID, address, choice, n.now())
	})
	if err != nil {
		n.notifyError("Vote rejected", err)
		return err
	}
	n.notify("Vote cast", fmt.Sprintf("%s voted %s", address, choice))
	return nil
}

// Execute finalizes a closed proposal, applying its overrides if it passed.
func (n *Node) Execute(proposalID string) (bool, error) {
	var applied bool
	err := n.mutate(func(state *types.AppState) error {
		var opErr error
		applied, opErr = governance.Execute(state, proposalID, n.now())
		return opErr
	})
	if err != nil {
		n.notifyError("Execution rejected", err)
		return false, err
	}
	if applied {
		n.notify("Proposal executed", "parameter overrides applied")
	} else {
		n.notify("Proposal executed", "no parameter changes applied")
	}
	return applied, nil
}

// StateSnapshot returns a deep copy for read-only consumers.
func (n *Node) StateSnapshot() (*types.AppState, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	blob, err := json.Marshal(n.state)
	if err != nil {
		return nil, fmt.Errorf("error copying app state: %v", err)
	}
	clone := &types.AppState{}
	if err := json.Unmarshal(blob, clone); err != nil {
		return nil, fmt.Errorf("error copying app state: %v", err)
	}
	return clone, nil
}
