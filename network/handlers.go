package network

import (
	"encoding/json"
	"net/http"

	"github.com/asaskevich/govalidator"

	"github.com/axon-labs/axonsim/types"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decode unmarshals the request body into dst and checks its valid tags.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	if ok, err := govalidator.ValidateStruct(dst); !ok {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

// operation publishes the request on the bus and maps the outcome to HTTP.
// Precondition failures in the state transitions come back as plain errors,
// so they all map to 400.
func (router *Router) operation(w http.ResponseWriter, msgType types.MessageType, data interface{}) {
	result, err := router.ask(msgType, data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if result == nil {
		result = map[string]string{"status": "ok"}
	}
	writeJSON(w, http.StatusOK, result)
}

func (router *Router) query(w http.ResponseWriter, msgType types.MessageType) {
	result, err := router.ask(msgType, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (router *Router) handleGetState(w http.ResponseWriter, r *http.Request) {
	router.query(w, types.GetState)
}

func (router *Router) handleRevenueSplit(w http.ResponseWriter, r *http.Request) {
	router.query(w, types.GetRevenueSplit)
}

func (router *Router) handleUsageSeries(w http.ResponseWriter, r *http.Request) {
	router.query(w, types.GetUsageSeries)
}

func (router *Router) handleProposalTallies(w http.ResponseWriter, r *http.Request) {
	router.query(w, types.GetProposalTallies)
}

func (router *Router) handleGetNotifications(w http.ResponseWriter, r *http.Request) {
	router.query(w, types.GetNotifications)
}

func (router *Router) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (router *Router) handleConnect(w http.ResponseWriter, r *http.Request) {
	var req types.ConnectRequest
	if !decode(w, r, &req) {
		return
	}
	router.operation(w, types.ConnectWallet, req)
}

func (router *Router) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var req types.PurchaseRequest
	if !decode(w, r, &req) {
		return
	}
	router.operation(w, types.PurchaseToken, req)
}

func (router *Router) handleAirdrop(w http.ResponseWriter, r *http.Request) {
	var req types.AirdropRequest
	if !decode(w, r, &req) {
		return
	}
	router.operation(w, types.AirdropGov, req)
}

func (router *Router) handleStake(w http.ResponseWriter, r *http.Request) {
	var req types.StakeRequest
	if !decode(w, r, &req) {
		return
	}
	router.operation(w, types.StakeGov, req)
}

func (router *Router) handleUnstake(w http.ResponseWriter, r *http.Request) {
	var req types.StakeRequest
	if !decode(w, r, &req) {
		return
	}
	router.operation(w, types.UnstakeGov, req)
}

func (router *Router) handleClaim(w http.ResponseWriter, r *http.Request) {
	var req types.ClaimRequest
	if !decode(w, r, &req) {
		return
	}
	router.operation(w, types.ClaimRevenue, req)
}

func (router *Router) handleSimulateUsage(w http.ResponseWriter, r *http.Request) {
	var req types.SimulateUsageRequest
	if !decode(w, r, &req) {
		return
	}
	router.operation(w, types.SimulateUsage, req)
}

func (router *Router) handleUpdateParams(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateParamsRequest
	if !decode(w, r, &req) {
		return
	}
	router.operation(w, types.UpdateParams, req)
}

func (router *Router) handleCreateProposal(w http.ResponseWriter, r *http.Request) {
	var req types.CreateProposalRequest
	if !decode(w, r, &req) {
		return
	}
	result, err := router.ask(types.CreateProposal, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (router *Router) handleVote(w http.ResponseWriter, r *http.Request) {
	var req types.VoteRequest
	if !decode(w, r, &req) {
		return
	}
	router.operation(w, types.CastVote, req)
}

func (router *Router) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req types.ExecuteRequest
	if !decode(w, r, &req) {
		return
	}
	router.operation(w, types.ExecuteProposal, req)
}
