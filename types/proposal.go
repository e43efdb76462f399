package types

// VoteChoice is one of the three tally buckets on a proposal.
type VoteChoice string

const (
	VoteFor     VoteChoice = "for"
	VoteAgainst VoteChoice = "against"
	VoteAbstain VoteChoice = "abstain"
)

func (c VoteChoice) Valid() bool {
	switch c {
	case VoteFor, VoteAgainst, VoteAbstain:
		return true
	}
	return false
}

// ProposalStatus is the derived position in the proposal state machine:
// Open -> Closed -> Executed, with no way out of Executed.
type ProposalStatus string

const (
	ProposalOpen     ProposalStatus = "open"
	ProposalClosed   ProposalStatus = "closed"
	ProposalExecuted ProposalStatus = "executed"
)

// Proposal is a governance proposal with a voting deadline and a partial set
// of parameter overrides applied on successful execution.
type Proposal struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CreatedAt   int64       `json:"createdAt"` // unix seconds
	Deadline    int64       `json:"deadline"`  // unix seconds
	Overrides   ParamsPatch `json:"overrides"`

	ForVotes     int64 `json:"forVotes"`
	AgainstVotes int64 `json:"againstVotes"`
	AbstainVotes int64 `json:"abstainVotes"`

	// Voters records which identities have voted and how. Repeat votes are
	// rejected.
	Voters map[string]VoteChoice `json:"voters"`

	Executed bool `json:"executed"`
}

func (p *Proposal) Status(now int64) ProposalStatus {
	if p.Executed {
		return ProposalExecuted
	}
	if now >= p.Deadline {
		return ProposalClosed
	}
	return ProposalOpen
}

// TotalVotes is the weight cast across all three buckets.
func (p *Proposal) TotalVotes() int64 {
	return p.ForVotes + p.AgainstVotes + p.AbstainVotes
}
