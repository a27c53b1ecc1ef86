package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Investment-Club-Backend/internal/model"
	"github.com/ndewijer/Investment-Club-Backend/internal/testutil"
)

func TestMemberHandler_Register(t *testing.T) {
	t.Run("first caller becomes admin", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewMemberHandler(testutil.NewTestMemberService(t, db))
		userID := testutil.MakeID()

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/member/me", map[string]any{
			"fullName": "Founder",
			"email":    "founder@example.com",
		})
		req = testutil.AsSession(req, userID)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Member
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.ID != userID || response.Role != model.RoleAdmin || !response.IsApproved {
			t.Errorf("Expected approved admin %s, got %+v", userID, response)
		}
	})

	t.Run("second registration returns 409", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewMemberHandler(testutil.NewTestMemberService(t, db))
		m := testutil.NewMember().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/member/me", map[string]any{
			"fullName": "Again",
			"email":    "again@example.com",
		})
		req = testutil.AsSession(req, m.ID)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("invalid email returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewMemberHandler(testutil.NewTestMemberService(t, db))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/member/me", map[string]any{
			"fullName": "Someone",
			"email":    "not-an-email",
		})
		req = testutil.AsSession(req, testutil.MakeID())
		w := httptest.NewRecorder()

		handler.Register(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("missing session returns 401", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewMemberHandler(testutil.NewTestMemberService(t, db))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/member/me", map[string]any{"fullName": "X", "email": "x@example.com"})
		w := httptest.NewRecorder()

		handler.Register(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})
}

func TestMemberHandler_Me(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewMemberHandler(testutil.NewTestMemberService(t, db))
	pending := testutil.NewMember().Pending().Build(t, db)

	t.Run("returns pending profile", func(t *testing.T) {
		req := testutil.AsSession(httptest.NewRequest(http.MethodGet, "/api/member/me", nil), pending.ID)
		w := httptest.NewRecorder()

		handler.Me(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unregistered caller returns 404", func(t *testing.T) {
		req := testutil.AsSession(httptest.NewRequest(http.MethodGet, "/api/member/me", nil), testutil.MakeID())
		w := httptest.NewRecorder()

		handler.Me(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestMemberHandler_AdminActions(t *testing.T) {
	t.Run("approves a member", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewMemberHandler(testutil.NewTestMemberService(t, db))
		admin := testutil.NewMember().Admin().Build(t, db)
		pending := testutil.NewMember().Pending().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/member/"+pending.ID+"/approval", map[string]any{"isApproved": true})
		req = testutil.AsMember(req, admin)
		req = testutil.WithURLParams(req, map[string]string{"uuid": pending.ID})
		w := httptest.NewRecorder()

		handler.SetApproval(w, req)

		var response model.Member
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if w.Code != http.StatusOK || !response.IsApproved {
			t.Errorf("Expected 200 with approved member, got %d with %+v", w.Code, response)
		}
	})

	t.Run("missing approval flag returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewMemberHandler(testutil.NewTestMemberService(t, db))
		admin := testutil.NewMember().Admin().Build(t, db)
		target := testutil.NewMember().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/member/"+target.ID+"/approval", map[string]any{})
		req = testutil.AsMember(req, admin)
		req = testutil.WithURLParams(req, map[string]string{"uuid": target.ID})
		w := httptest.NewRecorder()

		handler.SetApproval(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("self demotion returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewMemberHandler(testutil.NewTestMemberService(t, db))
		admin := testutil.NewMember().Admin().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/member/"+admin.ID+"/role", map[string]any{"role": "member"})
		req = testutil.AsMember(req, admin)
		req = testutil.WithURLParams(req, map[string]string{"uuid": admin.ID})
		w := httptest.NewRecorder()

		handler.SetRole(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown role returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewMemberHandler(testutil.NewTestMemberService(t, db))
		admin := testutil.NewMember().Admin().Build(t, db)
		target := testutil.NewMember().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/member/"+target.ID+"/role", map[string]any{"role": "treasurer"})
		req = testutil.AsMember(req, admin)
		req = testutil.WithURLParams(req, map[string]string{"uuid": target.ID})
		w := httptest.NewRecorder()

		handler.SetRole(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown target returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewMemberHandler(testutil.NewTestMemberService(t, db))
		admin := testutil.NewMember().Admin().Build(t, db)
		id := testutil.MakeID()

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/member/"+id+"/role", map[string]any{"role": "admin"})
		req = testutil.AsMember(req, admin)
		req = testutil.WithURLParams(req, map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.SetRole(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}
