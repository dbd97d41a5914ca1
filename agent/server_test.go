package agent

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tripwise-project/tripwise-agent/types"
)

func newTestServer(t *testing.T) (*Server, *SessionStore) {
	t.Helper()
	store := NewSessionStore()
	return NewServer(newTestAgent(t), store, nil, 0), store
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleTurn(t *testing.T) {
	srv, store := newTestServer(t)

	rec := postJSON(t, srv.http.Handler, "/turn", `{"message": "plan a trip from delhi to goa"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp turnResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if resp.SessionID == "" {
		t.Error("Expected a generated session id")
	}
	if resp.Result.Status != types.StatusNeedInput {
		t.Errorf("Status = %s", resp.Result.Status)
	}
	if resp.Result.Question == "" {
		t.Error("Expected a follow-up question")
	}
	if store.Get(resp.SessionID) == nil {
		t.Error("Session not stored")
	}

	// Second turn reuses the session.
	rec = postJSON(t, srv.http.Handler, "/turn",
		`{"session_id": "`+resp.SessionID+`", "message": "round trip"}`)
	var resp2 turnResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp2); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if resp2.SessionID != resp.SessionID {
		t.Error("Session id must be stable across turns")
	}
	state := store.Get(resp.SessionID).State
	if state.TripType == nil || *state.TripType != types.TripRoundTrip {
		t.Errorf("Trip type not applied: %+v", state)
	}
}

func TestHandleTurnRejectsBadRequests(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/turn", nil)
	rec := httptest.NewRecorder()
	srv.http.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /turn = %d", rec.Code)
	}

	rec = postJSON(t, srv.http.Handler, "/turn", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Malformed body = %d", rec.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	srv, store := newTestServer(t)
	session := store.Create()
	session.Pending = PendingSlot{Slot: slotDestination}

	req := httptest.NewRequest(http.MethodGet, "/status?session_id="+session.ID, nil)
	rec := httptest.NewRecorder()
	srv.http.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d", rec.Code)
	}

	var resp statusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if resp.Pending != "slot:destination" {
		t.Errorf("Pending = %q", resp.Pending)
	}

	req = httptest.NewRequest(http.MethodGet, "/status?session_id=missing", nil)
	rec = httptest.NewRecorder()
	srv.http.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Unknown session = %d", rec.Code)
	}
}

func TestHandleReset(t *testing.T) {
	srv, store := newTestServer(t)
	session := store.Create()
	session.State.Started = true
	session.State.Destination = types.StrPtr("Goa")

	rec := postJSON(t, srv.http.Handler, "/reset", `{"session_id": "`+session.ID+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d", rec.Code)
	}
	if session.State.Started || session.State.Destination != nil {
		t.Errorf("State not reset: %+v", session.State)
	}

	rec = postJSON(t, srv.http.Handler, "/reset", `{"session_id": "missing"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Unknown session = %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv, store := newTestServer(t)
	store.Create()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.http.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d", rec.Code)
	}

	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if resp["status"] != "ok" || resp["sessions"].(float64) != 1 {
		t.Errorf("Unexpected health body: %v", resp)
	}
}
