package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tripwise-project/tripwise-agent/logger"
	"github.com/tripwise-project/tripwise-agent/types"
	"github.com/tripwise-project/tripwise-agent/websocket"
)

// TurnBroadcaster pushes turn events to observers. Satisfied by
// websocket.EventServer; nil disables broadcasting.
type TurnBroadcaster interface {
	BroadcastTurn(websocket.TurnEvent)
}

// Server exposes the agent over HTTP.
type Server struct {
	agent  *Agent
	store  *SessionStore
	events TurnBroadcaster
	http   *http.Server
	log    *logger.Logger
}

// NewServer wires the HTTP surface. events may be nil.
func NewServer(a *Agent, store *SessionStore, events TurnBroadcaster, port int) *Server {
	s := &Server{
		agent:  a,
		store:  store,
		events: events,
		log:    logger.GetLogger().WithField("component", "http"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/turn", s.handleTurn)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/reset", s.handleReset)
	mux.HandleFunc("/health", s.handleHealth)

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s
}

// Start blocks serving HTTP until the listener closes.
func (s *Server) Start() error {
	s.log.Infof("listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

type turnRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type turnResponse struct {
	SessionID string           `json:"session_id"`
	Result    types.TurnResult `json:"result"`
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session := s.store.GetOrCreate(req.SessionID)
	log := s.log.WithFields(map[string]interface{}{"session_id": session.ID})

	result := s.agent.ProcessTurn(r.Context(), session, req.Message)
	log.Infof("turn processed, status=%s", result.Status)

	if s.events != nil {
		response := result.Question
		if response == "" {
			response = result.Message
		}
		s.events.BroadcastTurn(websocket.TurnEvent{
			SessionID: session.ID,
			Status:    string(result.Status),
			Utterance: req.Message,
			Response:  response,
		})
	}

	writeJSON(w, http.StatusOK, turnResponse{SessionID: session.ID, Result: result})
}

type statusResponse struct {
	SessionID string           `json:"session_id"`
	State     *types.TripState `json:"state"`
	Pending   string           `json:"pending"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}

	session := s.store.Get(r.URL.Query().Get("session_id"))
	if session == nil {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		SessionID: session.ID,
		State:     session.State,
		Pending:   describePending(session.Pending),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session := s.store.Get(req.SessionID)
	if session == nil {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	session.ResetDialogue()
	writeJSON(w, http.StatusOK, map[string]string{"session_id": session.ID, "status": "reset"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": s.store.Len(),
	})
}

func describePending(p Pending) string {
	switch v := p.(type) {
	case PendingSlot:
		return "slot:" + v.Slot
	case PendingOutboundChoice:
		return "outbound_choice"
	case PendingReturnChoice:
		return "return_choice"
	default:
		return "none"
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.GetLogger().Errorf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
