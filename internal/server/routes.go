package server

import "net/http"

// registerRoutes sets up all REST API routes on the mux. The advisory and
// portfolio routes share the per-caller throttle; the raw price passthrough
// and system routes are exempt, matching the gateway this replaces.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Advisory
	mux.HandleFunc("/api/analyze/", s.throttled(s.handleAnalyze))
	mux.HandleFunc("/api/price/", s.handlePrice)
	mux.HandleFunc("/api/chat", s.throttled(s.handleChat))

	// Portfolio passthrough
	mux.HandleFunc("/api/portfolio", s.throttled(s.handlePortfolio))
	mux.HandleFunc("/api/portfolio/trade", s.throttled(s.handleTrade))
}
