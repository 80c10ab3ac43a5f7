package api

import (
	"cmp"
	"net/http"

	"github.com/sirupsen/logrus"

	"brand-voice-studio/internal/logging"
	"brand-voice-studio/internal/market"
)

const marketSource = "WECAR - Windsor-Essex County Association of REALTORS"

var marketEndpoints = []string{
	"/api/market-data/current-stats",
	"/api/market-data/market-trends",
	"/api/market-data/market-insights",
	"/api/market-data/refresh-data",
	"/api/market-data/data-status",
}

// MarketHandler handles market data requests. The service never fails, so
// every route answers 200 and degraded data is flagged in the body.
type MarketHandler struct {
	service *market.Service
	log     *logrus.Entry
}

// NewMarketHandler creates a new market data handler
func NewMarketHandler(service *market.Service, logger *logrus.Logger) *MarketHandler {
	return &MarketHandler{
		service: service,
		log:     logging.Component(logger, "api.market"),
	}
}

// CurrentStats handles GET /api/market-data/current-stats
func (h *MarketHandler) CurrentStats(w http.ResponseWriter, r *http.Request) {
	snap := h.service.Snapshot(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    snap,
		"source":  marketSource,
		"message": "Current market statistics retrieved successfully",
	})
}

// Trends handles GET /api/market-data/market-trends
func (h *MarketHandler) Trends(w http.ResponseWriter, r *http.Request) {
	trends, snap := h.service.Trends(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"trends":         trends,
		"current_period": cmp.Or(snap.ReportPeriod, "Current"),
		"insights":       snap.Insights,
		"source":         marketSource,
	})
}

// Insights handles GET /api/market-data/market-insights
func (h *MarketHandler) Insights(w http.ResponseWriter, r *http.Request) {
	outlook, snap := h.service.Outlook(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"insights":      outlook,
		"report_period": cmp.Or(snap.ReportPeriod, "Current"),
		"last_updated":  snap.LastUpdated,
		"source":        marketSource,
	})
}

// Refresh handles POST /api/market-data/refresh-data
func (h *MarketHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snap := h.service.Refresh(r.Context())
	h.log.WithField("status", snap.Status).Info("Market data refreshed on request")
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"data":         snap,
		"last_updated": snap.LastUpdated,
		"message":      "Market data refreshed successfully",
	})
}

// Status handles GET /api/market-data/data-status
func (h *MarketHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":             true,
		"status":              h.service.Status(r.Context()),
		"available_endpoints": marketEndpoints,
	})
}
