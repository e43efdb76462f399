package network

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// SetupRoutes configures the HTTP routes and wraps them in CORS and request
// logging middleware.
func (router *Router) SetupRoutes(allowedOrigins []string) http.Handler {
	r := mux.NewRouter()

	r.Use(loggingMiddleware)

	r.HandleFunc("/state", router.handleGetState).Methods("GET")
	r.HandleFunc("/projections/revenue", router.handleRevenueSplit).Methods("GET")
	r.HandleFunc("/projections/usage", router.handleUsageSeries).Methods("GET")
	r.HandleFunc("/projections/proposals", router.handleProposalTallies).Methods("GET")
	r.HandleFunc("/notifications", router.handleGetNotifications).Methods("GET")
	r.HandleFunc("/ping", router.handlePing).Methods("GET")

	r.HandleFunc("/wallet/connect", router.handleConnect).Methods("POST")
	r.HandleFunc("/wallet/purchase", router.handlePurchase).Methods("POST")
	r.HandleFunc("/wallet/airdrop", router.handleAirdrop).Methods("POST")
	r.HandleFunc("/wallet/stake", router.handleStake).Methods("POST")
	r.HandleFunc("/wallet/unstake", router.handleUnstake).Methods("POST")
	r.HandleFunc("/wallet/claim", router.handleClaim).Methods("POST")
	r.HandleFunc("/usage/simulate", router.handleSimulateUsage).Methods("POST")
	r.HandleFunc("/params", router.handleUpdateParams).Methods("POST")
	r.HandleFunc("/governance/proposals", router.handleCreateProposal).Methods("POST")
	r.HandleFunc("/governance/vote", router.handleVote).Methods("POST")
	r.HandleFunc("/governance/execute", router.handleExecute).Methods("POST")

	r.HandleFunc("/ws/notifications", router.ws.NotificationsHandler).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("INFO: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
