package handlers

import (
	"net/http"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Club-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Club-Backend/internal/service"
)

// PriceHandler serves cached quotes and drives the price sync cycle.
type PriceHandler struct {
	priceSyncService *service.PriceSyncService
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(priceSyncService *service.PriceSyncService) *PriceHandler {
	return &PriceHandler{
		priceSyncService: priceSyncService,
	}
}

// SyncResponse reports the outcome of a manually triggered sync cycle.
type SyncResponse struct {
	Updated bool `json:"updated"`
}

// Prices handles GET requests for every cached quote keyed by symbol.
//
// Endpoint: GET /api/price
// Response: 200 OK with map of symbol to PriceQuote
// Error: 500 Internal Server Error if the cache cannot be read
func (h *PriceHandler) Prices(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.priceSyncService.GetPrices(r.Context())
	if err != nil {
		response.RespondInternalError(w, apperrors.ErrFailedToRetrievePrices.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, quotes)
}

// Sync handles POST requests to run one sync cycle immediately.
// Provider failures do not fail the request; they show up as missing symbols in the status.
//
// Endpoint: POST /api/price/sync
// Response: 200 OK with SyncResponse
func (h *PriceHandler) Sync(w http.ResponseWriter, r *http.Request) {
	updated := h.priceSyncService.Sync(r.Context())
	response.RespondJSON(w, http.StatusOK, SyncResponse{Updated: updated})
}

// Status handles GET requests for the sync state and the last completed cycle.
//
// Endpoint: GET /api/price/status
// Response: 200 OK with PriceSyncStatus
func (h *PriceHandler) Status(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.priceSyncService.Status())
}
