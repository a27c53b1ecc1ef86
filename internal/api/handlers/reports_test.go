package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ndewijer/Investment-Club-Backend/internal/service"
	"github.com/ndewijer/Investment-Club-Backend/internal/testutil"
)

func TestReportHandler_Workbook(t *testing.T) {
	t.Run("streams a readable workbook", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewReportHandler(testutil.NewTestReportService(t, db))
		m := testutil.NewMember().Build(t, db)
		testutil.NewContribution(m.ID, 1000).Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/report/workbook", nil)
		w := httptest.NewRecorder()

		handler.Workbook(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
			t.Errorf("Expected xlsx content type, got %s", ct)
		}
		if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment;") {
			t.Errorf("Expected attachment disposition, got %s", cd)
		}

		f, err := excelize.OpenReader(w.Body)
		if err != nil {
			t.Fatalf("Failed to open returned workbook: %v", err)
		}
		defer f.Close()

		if idx, _ := f.GetSheetIndex(service.SheetContributions); idx < 0 {
			t.Error("Expected a Contributions sheet")
		}
	})

	t.Run("returns 503 when ledger is unreadable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewReportHandler(testutil.NewTestReportService(t, db))
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/report/workbook", nil)
		w := httptest.NewRecorder()

		handler.Workbook(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d", w.Code)
		}
	})
}
