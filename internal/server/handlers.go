package server

import (
	"net/http"
	"strings"

	"github.com/nivesha/advisor/internal/common"
	"github.com/nivesha/advisor/internal/models"
)

// handleHealth responds to GET/HEAD /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "UP",
		"service": "advisor-gateway",
	})
}

// handleVersion responds to GET/HEAD /api/version with build info.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleAnalyze handles GET /api/analyze/{symbol}. Every failure path below
// the unrecognized-generator case yields a complete document, so an error
// here is already the generic service error.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := PathParam(r, "/api/analyze/")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	result, err := s.app.Advisor.Analyze(r.Context(), symbol)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// handlePrice handles GET /api/price/{symbol}: a raw prediction passthrough.
// Upstream failure surfaces a degraded response with an explicit zero-price
// sentinel rather than a local fallback.
func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := PathParam(r, "/api/price/")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	pred, err := s.app.Predictions.GetPrediction(r.Context(), symbol)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Price fetch failed")
		WriteJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error":         "Failed to fetch price",
			"symbol":        strings.ToUpper(symbol),
			"current_price": 0,
		})
		return
	}

	WriteJSON(w, http.StatusOK, pred)
}

// handleChat handles POST /api/chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		WriteError(w, http.StatusBadRequest, "Message is required")
		return
	}

	reply, err := s.app.Advisor.Chat(r.Context(), req.Message, bearerToken(r))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, reply)
}

// handlePortfolio handles GET /api/portfolio: fetches the caller's holdings
// from the core service and enriches every holding with a live price.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	token := bearerToken(r)
	if token == "" {
		WriteError(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	pf, err := s.app.Portfolio.GetPortfolio(r.Context(), token)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "Failed to fetch portfolio: "+err.Error())
		return
	}

	pf.Holdings = s.app.Enricher.EnrichHoldings(r.Context(), pf.Holdings)

	WriteJSON(w, http.StatusOK, pf)
}

// handleTrade handles POST /api/portfolio/trade: confirms a parsed trade
// directive by posting an add/merge to the core service. A SELL posts a
// negative quantity; the fill price is the current prediction price, which
// degrades to the baseline when the engine is down.
func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	token := bearerToken(r)
	if token == "" {
		WriteError(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	var req models.TradeDirective
	if !DecodeJSON(w, r, &req) {
		return
	}

	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.Symbol == "" {
		WriteError(w, http.StatusBadRequest, "Symbol is required")
		return
	}
	if req.Action != models.ActionBuy && req.Action != models.ActionSell {
		WriteError(w, http.StatusBadRequest, "Action must be BUY or SELL")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	pred := s.app.Predictions.GetPredictionWithFallback(r.Context(), req.Symbol)

	qty := float64(req.Quantity)
	if req.Action == models.ActionSell {
		qty = -qty
	}

	err := s.app.Portfolio.AddHolding(r.Context(), token, models.AddHoldingRequest{
		Symbol:   req.Symbol,
		Quantity: qty,
		AvgPrice: pred.CurrentPrice,
	})
	if err != nil {
		WriteError(w, http.StatusBadGateway, "Trade execution failed: "+err.Error())
		return
	}

	s.logger.Info().
		Str("action", string(req.Action)).
		Str("symbol", req.Symbol).
		Int("quantity", req.Quantity).
		Msg("Trade executed")

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "executed",
		"action":   req.Action,
		"symbol":   req.Symbol,
		"quantity": req.Quantity,
		"price":    pred.CurrentPrice,
	})
}
