package handlers

import (
	"net/http"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Club-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
	"github.com/ndewijer/Investment-Club-Backend/internal/service"
)

// DashboardHandler serves group valuations and member shares.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Dashboard handles GET requests for the group valuation and the caller's share of it.
// The valuation is computed on request from the ledger and the cached prices.
//
// Endpoint: GET /api/dashboard
// Response: 200 OK with Dashboard (status "computed")
// Error: 503 Service Unavailable with DashboardSnapshot (status "failed") if the ledger cannot be read
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	member, ok := currentMember(w, r)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(r.Context(), member.ID)
	if err != nil {
		response.RespondJSON(w, http.StatusServiceUnavailable, model.DashboardSnapshot{
			Status: model.StateFailed,
			Error:  apperrors.ErrFailedToLoadLedger.Error(),
		})
		return
	}

	response.RespondJSON(w, http.StatusOK, dashboard)
}

// Status handles GET requests for the background snapshot.
// Clients poll this while the status is "loading".
//
// Endpoint: GET /api/dashboard/status
// Response: 200 OK with DashboardSnapshot
func (h *DashboardHandler) Status(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.dashboardService.Snapshot())
}

// Shares handles GET requests for every contributing member's share.
//
// Endpoint: GET /api/dashboard/shares
// Response: 200 OK with array of MemberShare
// Error: 503 Service Unavailable if the ledger cannot be read
func (h *DashboardHandler) Shares(w http.ResponseWriter, r *http.Request) {
	shares, err := h.dashboardService.GetMemberShares(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrFailedToLoadLedger.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, shares)
}
