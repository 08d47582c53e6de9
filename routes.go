package main

import (
	"net/http"

	"github.com/gorilla/mux"
)

// setupRoutes configures all HTTP routes for the API
func setupRoutes(router *mux.Router) {
	// OAuth flow
	router.HandleFunc("/login", login)
	router.HandleFunc("/callback", callback)

	// Composite prompt-to-playlist endpoint
	router.HandleFunc("/create-playlist", createPlaylist).Methods(http.MethodPost)

	// Health and stats endpoints
	router.HandleFunc("/health", getHealthStatus)
	router.HandleFunc("/stats", getStats)

	// Help endpoint
	router.HandleFunc("/", helpHandler)
}
