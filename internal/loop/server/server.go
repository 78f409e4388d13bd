// Package server tracks the game sessions hosted by one process. Each client
// runs its own simulation; the server only knows who is connected, their
// best scores for the leaderboard, and how to tell them it is shutting down.
package server

import (
	"cmp"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// GameServer is the interface clients use to communicate with the host.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportScore(clientID int, score int)
	ActiveClients() int
	TopScores(n int) []TopScoreEntry
}

// Server is the session host registry.
type Server struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	logger       *log.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID        int
	Username  string    // Display name for this client
	SessionID uuid.UUID // Connection id used in logs
	EventsCh  chan ClientEvent
	best      int
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// NewServer creates an empty registry. A nil logger discards output.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		logger:       logger,
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle := &ClientHandle{
		ID:        s.nextClientID,
		Username:  username,
		SessionID: uuid.New(),
		EventsCh:  make(chan ClientEvent, 16),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle

	s.logger.Info("client registered", "id", handle.ID, "user", username, "session", handle.SessionID, "active", len(s.clients))
	return handle
}

// UnregisterClient removes a client and closes its event channel.
// Unknown ids are ignored.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	close(handle.EventsCh)
	delete(s.clients, clientID)

	s.logger.Info("client unregistered", "id", clientID, "user", handle.Username, "session", handle.SessionID, "active", len(s.clients))
}

// ReportScore records a finished run. Only the client's best run is kept.
func (s *Server) ReportScore(clientID int, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if handle, ok := s.clients[clientID]; ok && score > handle.best {
		handle.best = score
	}
}

// ActiveClients returns the number of connected clients.
func (s *Server) ActiveClients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// TopScores returns up to n connected players ordered by best score,
// highest first. Players without a scoring run are left out.
func (s *Server) TopScores(n int) []TopScoreEntry {
	s.mu.RLock()
	entries := make([]TopScoreEntry, 0, len(s.clients))
	for _, handle := range s.clients {
		if handle.best <= 0 {
			continue
		}
		entries = append(entries, TopScoreEntry{
			Username: handle.Username,
			Score:    handle.best,
			clientID: handle.ID,
		})
	}
	s.mu.RUnlock()

	slices.SortFunc(entries, func(a, b TopScoreEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.clientID, b.clientID)
	})
	if len(entries) > n {
		entries = entries[:max(n, 0)]
	}
	return entries
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.ActiveClients() == 0 {
			return
		}
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "remaining", s.ActiveClients())
			return
		case <-ticker.C:
		}
	}
}
