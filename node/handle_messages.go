package node

import (
	"fmt"
	"log"

	"github.com/axon-labs/axonsim/types"
)

// handleMessages is the node's dispatch loop. Every message carries its own
// response channel, so handlers never block each other on replies.
func (n *Node) handleMessages() {
	for msg := range n.messageCh {
		switch msg.Type {
		case types.ConnectWallet:
			n.handleConnect(msg)
		case types.PurchaseToken:
			n.handlePurchase(msg)
		case types.AirdropGov:
			n.handleAirdrop(msg)
		case types.StakeGov:
			n.handleStake(msg)
		case types.UnstakeGov:
			n.handleUnstake(msg)
		case types.ClaimRevenue:
			n.handleClaim(msg)
		case types.SimulateUsage:
			n.handleSimulateUsage(msg)
		case types.UpdateParams:
			n.handleUpdateParams(msg)
		case types.CreateProposal:
			n.handleCreateProposal(msg)
		case types.CastVote:
			n.handleVote(msg)
		case types.ExecuteProposal:
			n.handleExecute(msg)
		case types.GetState:
			n.handleGetState(msg)
		case types.GetRevenueSplit:
			respond(msg, n.RevenueSplitView(), nil)
		case types.GetUsageSeries:
			respond(msg, n.UsageSeriesView(), nil)
		case types.GetProposalTallies:
			respond(msg, n.ProposalTalliesView(), nil)
		case types.GetNotifications:
			respond(msg, n.Notifications(), nil)
		default:
			log.Printf("WARN: node received unhandled message type: %s", msg.Type)
			respond(msg, nil, fmt.Errorf("unhandled message type: %s", msg.Type))
		}
	}
}

func respond(msg types.Message, data interface{}, err error) {
	if msg.ResponseCh == nil {
		return
	}
	msg.ResponseCh <- types.Response{Data: data, Error: err}
}

func (n *Node) handleConnect(msg types.Message) {
	req, ok := msg.Data.(types.ConnectRequest)
	if !ok {
		respond(msg, nil, fmt.Errorf("invalid connect request payload"))
		return
	}
	respond(msg, nil, n.Connect(req.Address))
}

func (n *Node) handlePurchase(msg types.Message) {
	req, ok := msg.Data.(types.PurchaseRequest)
	if !ok {
		respond(msg, nil, fmt.Errorf("invalid purchase request payload"))
		return
	}
	bought, err := n.Purchase(req.Address, req.Payment)
	if err != nil {
		respond(msg, nil, err)
		return
	}
	respond(msg, map[string]int64{"tokensBought": bought}, nil)
}

func (n *Node) handleAirdrop(msg types.Message) {
	req, ok := msg.Data.(types.AirdropRequest)
	if !ok {
		respond(msg, nil, fmt.Errorf("invalid airdrop request payload"))
		return
	}
	respond(msg, nil, n.Airdrop(req.Address, req.Amount))
}

func (n *Node) handleStake(msg types.Message) {
	req, ok := msg.Data.(types.StakeRequest)
	if !ok {
		respond(msg, nil, fmt.Errorf("invalid stake request payload"))
		return
	}
	respond(msg, nil, n.StakeGov(req.Address, req.Amount))
}

func (n *Node) handleUnstake(msg types.Message) {
	req, ok := msg.Data.(types.StakeRequest)
	if !ok {
		respond(msg, nil, fmt.Errorf("invalid unstake request payload"))
		return
	}
	respond(msg, nil, n.UnstakeGov(req.Address, req.Amount))
}

func (n *Node) handleClaim(msg types.Message) {
	req, ok := msg.Data.(types.ClaimRequest)
	if !ok {
		respond(msg, nil, fmt.Errorf("invalid claim request payload"))
		return
	}
	claimed, err := n.Claim(req.Address)
	if err != nil {
		respond(msg, nil, err)
		return
	}
	respond(msg, map[string]float64{"claimed": claimed}, nil)
}

func (n *Node) handleSimulateUsage(msg types.Message) {
	req, ok := msg.Data.(types.SimulateUsageRequest)
	if !ok {
		respond(msg, nil, fmt.Errorf("invalid usage request payload"))
		return
	}
	summary, err := n.RunUsage(req.Calls)
	respond(msg, summary, err)
}

func (n *Node) handleUpdateParams(msg types.Message) {
	req, ok := msg.Data.(types.UpdateParamsRequest)
	if !ok {
		respond(msg, nil, fmt.Errorf("invalid settings request payload"))
		return
	}
	respond(msg, nil, n.ApplyParams(req.Patch))
}

func (n *Node) handleCreateProposal(msg types.Message) {
	req, ok := msg.Data.(types.CreateProposalRequest)
	if !ok {
		respond(msg, nil, fmt.Errorf("invalid proposal request payload"))
		return
	}
	proposal, err := n.Propose(req.Title, req.Description, req.DeadlineOffset, req.Overrides)
	respond(msg, proposal, err)
}

func (n *Node) handleVote(msg types.Message) {
	req, ok := msg.Data.(types.VoteRequest)
	if !ok {
		respond(msg, nil, fmt.Errorf("invalid vote request payload"))
		return
	}
	respond(msg, nil, n.Vote(req.ProposalID, req.Address, req.Choice))
}

func (n *Node) handleExecute(msg types.Message) {
	req, ok := msg.Data.(types.ExecuteRequest)
	if !ok {
		respond(msg, nil, fmt.Errorf("invalid execute request payload"))
		return
	}
	applied, err := n.Execute(req.ProposalID)
	if err != nil {
		respond(msg, nil, err)
		return
	}
	respond(msg, map[string]bool{"overridesApplied": applied}, nil)
}

func (n *Node) handleGetState(msg types.Message) {
	state, err := n.StateSnapshot()
	respond(msg, state, err)
}
