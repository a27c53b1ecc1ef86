package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Club-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Club-Backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves spreadsheet exports.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Workbook handles GET requests to download the club valuation as an xlsx workbook.
//
// Endpoint: GET /api/report/workbook
// Response: 200 OK with the workbook as an attachment
// Error: 503 Service Unavailable if the ledger cannot be read
func (h *ReportHandler) Workbook(w http.ResponseWriter, r *http.Request) {
	f, err := h.reportService.BuildWorkbook(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrFailedToBuildReport.Error(), err.Error())
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("investment-club-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("failed to write workbook")
	}
}
