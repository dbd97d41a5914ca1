// Package websocket streams dialogue turn events to observer UIs.
package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tripwise-project/tripwise-agent/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // observer endpoint, origin checks left to the gateway
	},
}

// TurnEvent is the wire shape pushed to observers after every turn.
type TurnEvent struct {
	SessionID string    `json:"session_id"`
	Status    string    `json:"status"`
	Utterance string    `json:"utterance,omitempty"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// EventServer owns the hub and the /ws endpoint.
type EventServer struct {
	hub    *Hub
	port   int
	server *http.Server
	mu     sync.Mutex
}

// NewEventServer creates an event server on the given port.
func NewEventServer(port int) *EventServer {
	return &EventServer{
		hub:  NewHub(),
		port: port,
	}
}

// Start runs the hub and the HTTP listener in the background.
func (s *EventServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	go s.hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: mux,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.GetLogger().Errorf("event server: %v", err)
		}
	}()

	return nil
}

// Stop closes the listener.
func (s *EventServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.server.Close()
	}
	return nil
}

// BroadcastTurn pushes one turn event to every observer.
func (s *EventServer) BroadcastTurn(event TurnEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	b, err := json.Marshal(event)
	if err != nil {
		logger.GetLogger().Errorf("event server: marshal turn event: %v", err)
		return
	}
	s.hub.Broadcast(b)
}

func (s *EventServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.GetLogger().Warnf("event server: upgrade failed: %v", err)
		return
	}

	client := NewClient(s.hub, conn)
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
