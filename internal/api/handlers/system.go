package handlers

import (
	"net/http"
	"time"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
	"github.com/ndewijer/Investment-Club-Backend/internal/service"
)

// SystemHandler serves the unauthenticated health and version endpoints.
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string          `json:"status"`
	Database      string          `json:"database"`
	PriceSync     model.SyncState `json:"priceSync,omitempty"`
	LastPriceSync *time.Time      `json:"lastPriceSync,omitempty"`
	Dashboard     model.LoadState `json:"dashboard,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// Health reports database connectivity along with the state of the price sync
// and dashboard refresh jobs.
//
// Endpoint: GET /api/system/health
// Response: 200 OK, or 503 Service Unavailable when the database is unreachable
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	report := h.systemService.Report(r.Context())

	resp := HealthResponse{
		Status:        "healthy",
		Database:      "connected",
		PriceSync:     report.PriceSync,
		LastPriceSync: report.LastPriceSync,
		Dashboard:     report.Dashboard,
	}
	if !report.Healthy() {
		resp.Status = "unhealthy"
		resp.Database = "disconnected"
		resp.Error = report.DatabaseErr.Error()
		response.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// VersionInfoResponse represents the version check response.
type VersionInfoResponse struct {
	AppVersion string `json:"app_version"`
}

// Version handles GET requests to retrieve the running application version.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfoResponse
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, VersionInfoResponse{
		AppVersion: h.systemService.CheckVersion(),
	})
}
