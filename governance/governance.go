// Package governance implements proposals, staking-weighted voting and the
// conditional application of parameter overrides on execution.
package governance

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/axon-labs/axonsim/config"
	"github.com/axon-labs/axonsim/types"
)

// CreateProposal always succeeds and prepends the proposal to the list with
// zeroed tallies. deadlineOffset is seconds from now; offsets below the
// minimum voting window are raised to it.
func CreateProposal(state *types.AppState, title, description string, deadlineOffset int64, overrides types.ParamsPatch, now int64) *types.Proposal {
	if deadlineOffset < config.MinProposalDeadlineSec {
		deadlineOffset = config.MinProposalDeadlineSec
	}
	proposal := &types.Proposal{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CreatedAt:   now,
		Deadline:    now + deadlineOffset,
		Overrides:   overrides,
		Voters:      make(map[string]types.VoteChoice),
	}
	state.Proposals = append([]*types.Proposal{proposal}, state.Proposals...)
	return proposal
}

func find(state *types.AppState, proposalID string) (*types.Proposal, error) {
	for _, p := range state.Proposals {
		if p.ID == proposalID {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unknown proposal %s", proposalID)
}

// Vote adds the voter's full current voting power to the chosen tally.
// Voting power is read at vote time and never re-tallied: a later stake or
// unstake changes the weight of future votes only. Each identity votes once
// per proposal.
func Vote(state *types.AppState, proposalID, address string, choice types.VoteChoice, now int64) error {
	proposal, err := find(state, proposalID)
	if err != nil {
		return err
	}
	if !choice.Valid() {
		return fmt.Errorf("invalid vote choice %q", choice)
	}
	if proposal.Status(now) != types.ProposalOpen {
		return fmt.Errorf("voting on proposal %q has closed", proposal.Title)
	}

	wallet, ok := state.Wallets[address]
	if !ok {
		return fmt.Errorf("unknown wallet %s", address)
	}
	if wallet.VotingPower <= 0 {
		return fmt.Errorf("%s has no voting power; stake GOV first", address)
	}
	if _, voted := proposal.Voters[address]; voted {
		return fmt.Errorf("%s has already voted on %q", address, proposal.Title)
	}

	switch choice {
	case types.VoteFor:
		proposal.ForVotes += wallet.VotingPower
	case types.VoteAgainst:
		proposal.AgainstVotes += wallet.VotingPower
	case types.VoteAbstain:
		proposal.AbstainVotes += wallet.VotingPower
	}
	proposal.Voters[address] = choice
	return nil
}

// Execute finalizes a closed proposal. The overrides are merged into the
// global Params only when for strictly outvotes against and the merged
// result still validates; either way the proposal is marked executed.
// Executing an already-executed or still-open proposal is rejected without
// mutation, so a second call never changes state.
func Execute(state *types.AppState, proposalID string, now int64) (applied bool, err error) {
	proposal, err := find(state, proposalID)
	if err != nil {
		return false, err
	}
	switch proposal.Status(now) {
	case types.ProposalExecuted:
		return false, fmt.Errorf("proposal %q was already executed", proposal.Title)
	case types.ProposalOpen:
		return false, fmt.Errorf("proposal %q is still open for voting", proposal.Title)
	}

	if proposal.ForVotes > proposal.AgainstVotes {
		merged := proposal.Overrides.Apply(state.Params)
		if vErr := merged.Validate(); vErr != nil {
			// A passing proposal with inconsistent overrides leaves Params
			// untouched but still terminates.
			proposal.Executed = true
			return false, nil
		}
		state.Params = merged
		refreshVotingPower(state)
		applied = true
	}
	proposal.Executed = true
	return applied, nil
}

// refreshVotingPower re-derives voting power after a boost change. Past vote
// tallies are never revisited.
func refreshVotingPower(state *types.AppState) {
	for _, wallet := range state.Wallets {
		wallet.RecomputeVotingPower(state.Params.StakeBoost)
	}
}

// UpdateParams applies a settings-panel patch directly, subject to the same
// validation as proposal execution.
func UpdateParams(state *types.AppState, patch types.ParamsPatch) error {
	if patch.IsZero() {
		return fmt.Errorf("no parameter changes supplied")
	}
	merged := patch.Apply(state.Params)
	if err := merged.Validate(); err != nil {
		return err
	}
	state.Params = merged
	refreshVotingPower(state)
	return nil
}
