package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ndewijer/Investment-Club-Backend/internal/model"
	"github.com/ndewijer/Investment-Club-Backend/internal/testutil"
)

func TestDashboardHandler_Dashboard(t *testing.T) {
	t.Run("returns computed dashboard", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewDashboardHandler(testutil.NewTestDashboardService(t, db, nil))
		m := testutil.NewMember().Build(t, db)
		testutil.NewContribution(m.ID, 10000).Build(t, db)
		testutil.NewHolding("INFY", 10, 500).Build(t, db)
		testutil.CreatePrice(t, db, "INFY", 550, time.Now())

		req := testutil.AsMember(httptest.NewRequest(http.MethodGet, "/api/dashboard", nil), m)
		w := httptest.NewRecorder()

		handler.Dashboard(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Dashboard
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Status != model.StateComputed {
			t.Errorf("Expected computed status, got %s", response.Status)
		}
		if response.Group.TotalCurrentValue != 10500 {
			t.Errorf("Expected total value 10500, got %f", response.Group.TotalCurrentValue)
		}
		if response.Personal.ShareFraction != 1 {
			t.Errorf("Expected full share, got %f", response.Personal.ShareFraction)
		}
	})

	t.Run("returns 503 with failed status when ledger is unreadable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewDashboardHandler(testutil.NewTestDashboardService(t, db, &testutil.FailingPriceCache{}))
		m := testutil.NewMember().Build(t, db)
		db.Close()

		req := testutil.AsMember(httptest.NewRequest(http.MethodGet, "/api/dashboard", nil), m)
		w := httptest.NewRecorder()

		handler.Dashboard(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("Expected 503, got %d", w.Code)
		}

		var response model.DashboardSnapshot
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Status != model.StateFailed || response.Group != nil {
			t.Errorf("Expected failed status without numbers, got %+v", response)
		}
	})
}

func TestDashboardHandler_Status(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewDashboardHandler(testutil.NewTestDashboardService(t, db, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/status", nil)
	w := httptest.NewRecorder()

	handler.Status(w, req)

	var response model.DashboardSnapshot
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&response)

	if response.Status != model.StateLoading {
		t.Errorf("Expected loading before first refresh, got %s", response.Status)
	}
}
