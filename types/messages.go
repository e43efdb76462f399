package types

import "sync"

// The message bus decouples the network surface from the node: handlers
// publish a typed message and block on the response channel, the node's
// dispatch loop performs the state transition. It is not used for calls
// inside a single package.

// MessageType represents the operations and queries the node serves.
type MessageType string

const (
	ConnectWallet   MessageType = "CONNECT_WALLET"
	PurchaseToken   MessageType = "PURCHASE_TOKEN"
	AirdropGov      MessageType = "AIRDROP_GOV"
	StakeGov        MessageType = "STAKE_GOV"
	UnstakeGov      MessageType = "UNSTAKE_GOV"
	ClaimRevenue    MessageType = "CLAIM_REVENUE"
	SimulateUsage   MessageType = "SIMULATE_USAGE"
	UpdateParams    MessageType = "UPDATE_PARAMS"
	CreateProposal  MessageType = "CREATE_PROPOSAL"
	CastVote        MessageType = "CAST_VOTE"
	ExecuteProposal MessageType = "EXECUTE_PROPOSAL"

	GetState           MessageType = "GET_STATE"
	GetRevenueSplit    MessageType = "GET_REVENUE_SPLIT"
	GetUsageSeries     MessageType = "GET_USAGE_SERIES"
	GetProposalTallies MessageType = "GET_PROPOSAL_TALLIES"
	GetNotifications   MessageType = "GET_NOTIFICATIONS"
)

// Message is a generic envelope published on the bus.
type Message struct {
	Type       MessageType
	Data       interface{}
	ResponseCh chan Response
}

// Response carries the result back to the publisher.
type Response struct {
	Data  interface{}
	Error error
}

// Request payloads.

type ConnectRequest struct {
	Address string `json:"address" valid:"required"`
}

type PurchaseRequest struct {
	Address string  `json:"address" valid:"required"`
	Payment float64 `json:"payment"`
}

type AirdropRequest struct {
	Address string `json:"address" valid:"required"`
	Amount  int64  `json:"amount"`
}

type StakeRequest struct {
	Address string `json:"address" valid:"required"`
	Amount  int64  `json:"amount"`
}

type ClaimRequest struct {
	Address string `json:"address" valid:"required"`
}

type SimulateUsageRequest struct {
	Calls int `json:"calls"`
}

type UpdateParamsRequest struct {
	Patch ParamsPatch `json:"patch"`
}

type CreateProposalRequest struct {
	Title          string      `json:"title" valid:"required"`
	Description    string      `json:"description"`
	DeadlineOffset int64       `json:"deadlineOffset"` // seconds from now
	Overrides      ParamsPatch `json:"overrides"`
}

type VoteRequest struct {
	ProposalID string     `json:"proposalId" valid:"required"`
	Address    string     `json:"address" valid:"required"`
	Choice     VoteChoice `json:"choice" valid:"required"`
}

type ExecuteRequest struct {
	ProposalID string `json:"proposalId" valid:"required"`
}

// MessageBus handles communication between packages.
type MessageBus struct {
	subscribers map[MessageType][]chan Message
	mu          sync.RWMutex
}

var (
	globalMessageBus *MessageBus
	once             sync.Once
)

// GetMessageBus returns the singleton message bus instance.
func GetMessageBus() *MessageBus {
	once.Do(func() {
		globalMessageBus = NewMessageBus()
	})
	return globalMessageBus
}

// NewMessageBus creates an independent bus, mainly for tests.
func NewMessageBus() *MessageBus {
	return &MessageBus{
		subscribers: make(map[MessageType][]chan Message),
	}
}

// Subscribe registers a channel for the given message type.
func (mb *MessageBus) Subscribe(msgType MessageType, ch chan Message) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.subscribers[msgType] = append(mb.subscribers[msgType], ch)
}

// Unsubscribe removes a channel from a message type.
func (mb *MessageBus) Unsubscribe(msgType MessageType, ch chan Message) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	subscribers := mb.subscribers[msgType]
	for i, subscriber := range subscribers {
		if subscriber == ch {
			mb.subscribers[msgType] = append(subscribers[:i], subscribers[i+1:]...)
			break
		}
	}
}

// Publish delivers a message to all subscribers.
func (mb *MessageBus) Publish(msg Message) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	if subscribers, ok := mb.subscribers[msg.Type]; ok {
		for _, ch := range subscribers {
			go func(c chan Message) {
				c <- msg
			}(ch)
		}
	}
}

// Close closes all subscriber channels and cleans up resources.
func (mb *MessageBus) Close() {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	for msgType, subscribers := range mb.subscribers {
		for _, ch := range subscribers {
			close(ch)
		}
		delete(mb.subscribers, msgType)
	}
}
