package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Club-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Club-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Club-Backend/internal/service"
	"github.com/ndewijer/Investment-Club-Backend/internal/validation"
)

// HoldingHandler handles HTTP requests for the holding transaction ledger and positions.
type HoldingHandler struct {
	holdingService   *service.HoldingService
	dashboardService *service.DashboardService
}

// NewHoldingHandler creates a new HoldingHandler.
func NewHoldingHandler(holdingService *service.HoldingService, dashboardService *service.DashboardService) *HoldingHandler {
	return &HoldingHandler{
		holdingService:   holdingService,
		dashboardService: dashboardService,
	}
}

// AllHoldingTransactions handles GET requests to retrieve the full ledger in insertion order.
//
// Endpoint: GET /api/holding
// Response: 200 OK with array of HoldingTransaction
// Error: 500 Internal Server Error if retrieval fails
func (h *HoldingHandler) AllHoldingTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.holdingService.ListHoldingTransactions(r.Context(), "")
	if err != nil {
		response.RespondInternalError(w, apperrors.ErrFailedToRetrieveHoldings.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, txs)
}

// HoldingTransactionsPerSymbol handles GET requests for one symbol's transaction history.
//
// Endpoint: GET /api/holding/symbol/{symbol}
// Response: 200 OK with array of HoldingTransaction (empty when the symbol was never traded)
// Error: 400 Bad Request if the symbol is malformed
// Error: 500 Internal Server Error if retrieval fails
func (h *HoldingHandler) HoldingTransactionsPerSymbol(w http.ResponseWriter, r *http.Request) {
	symbol := validation.NormalizeSymbol(chi.URLParam(r, "symbol"))
	if err := validation.ValidateSymbol(symbol); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid symbol", err.Error())
		return
	}

	txs, err := h.holdingService.ListHoldingTransactions(r.Context(), symbol)
	if err != nil {
		response.RespondInternalError(w, apperrors.ErrFailedToRetrieveHoldings.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, txs)
}

// GetHoldingTransaction handles GET requests to retrieve a single transaction.
//
// Endpoint: GET /api/holding/{uuid}
// Response: 200 OK with HoldingTransaction
// Error: 400 Bad Request if ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *HoldingHandler) GetHoldingTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	tx, err := h.holdingService.GetHoldingTransaction(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrHoldingNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), err.Error())
			return
		}
		response.RespondInternalError(w, apperrors.ErrFailedToRetrieveHoldings.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, tx)
}

// CreateHoldingTransaction handles POST requests to record a buy (positive quantity)
// or a sell (negative quantity).
//
// Endpoint: POST /api/holding
// Request Body: CreateHoldingRequest (symbol, displaySymbol, name, quantity, unitPrice, date, assetType)
// Response: 201 Created with HoldingTransaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *HoldingHandler) CreateHoldingTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateHoldingRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateHolding(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	tx, err := h.holdingService.CreateHoldingTransaction(r.Context(), req)
	if err != nil {
		response.RespondInternalError(w, "failed to create holding transaction", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, tx)
}

// ReplaceHoldingTransaction handles PUT requests to edit a transaction.
// The transaction is replaced as a whole and keeps its place in same-date ordering.
//
// Endpoint: PUT /api/holding/{uuid}
// Request Body: CreateHoldingRequest
// Response: 200 OK with the replacement HoldingTransaction (new ID)
// Error: 400 Bad Request if ID is invalid or validation fails
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if the replacement fails
func (h *HoldingHandler) ReplaceHoldingTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CreateHoldingRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateHolding(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	tx, err := h.holdingService.ReplaceHoldingTransaction(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrHoldingNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), err.Error())
			return
		}
		response.RespondInternalError(w, "failed to replace holding transaction", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, tx)
}

// DeleteHoldingTransaction handles DELETE requests to remove a transaction from the ledger.
//
// Endpoint: DELETE /api/holding/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if deletion fails
func (h *HoldingHandler) DeleteHoldingTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.holdingService.DeleteHoldingTransaction(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrHoldingNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), err.Error())
			return
		}
		response.RespondInternalError(w, "failed to delete holding transaction", err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Positions handles GET requests for every position valued at the cached prices.
// Closed positions are included with their realized profit.
//
// Endpoint: GET /api/holding/position
// Response: 200 OK with array of PositionValuation
// Error: 503 Service Unavailable if the ledger cannot be read
func (h *HoldingHandler) Positions(w http.ResponseWriter, r *http.Request) {
	group, _, err := h.dashboardService.ComputeGroup(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrFailedToLoadLedger.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, group.Positions)
}

// Position handles GET requests for one symbol's folded position at cost.
//
// Endpoint: GET /api/holding/position/{symbol}
// Response: 200 OK with SymbolPosition
// Error: 400 Bad Request if the symbol is malformed
// Error: 404 Not Found if the symbol was never traded
// Error: 503 Service Unavailable if the ledger cannot be read
func (h *HoldingHandler) Position(w http.ResponseWriter, r *http.Request) {
	symbol := validation.NormalizeSymbol(chi.URLParam(r, "symbol"))
	if err := validation.ValidateSymbol(symbol); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid symbol", err.Error())
		return
	}

	position, err := h.holdingService.GetPosition(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrHoldingNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), symbol)
			return
		}
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrFailedToLoadLedger.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, position)
}
