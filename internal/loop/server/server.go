// Package server tracks the sessions connected to a host, keeps the
// leaderboard and broadcasts host-wide events such as shutdown.
package server

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomz197/kokaton/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the game server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportScore(clientID int, score int)
	TopScores() []TopScoreEntry
	Players() int
}

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// Server manages connected clients and the shared leaderboard. Each
// client simulates its own game; the server never touches game state.
type Server struct {
	clients      map[int]*ClientHandle
	nextClientID int
	topScores    []TopScoreEntry
	seed         int64 // Base world seed; 0 picks one per client from the clock
	mu           sync.RWMutex
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID        int
	SessionID string // Unique across restarts, for logs
	Username  string // Display name for this client
	Seed      int64  // Seed for the client's world
	EventsCh  chan ClientEvent
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

// NewServer creates a new game server. A non-zero seed makes every
// client's world reproducible: client n plays with seed+n.
func NewServer(seed int64) *Server {
	return &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		seed:         seed,
	}
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if s.Players() == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextClientID
	s.nextClientID++

	seed := time.Now().UnixNano()
	if s.seed != 0 {
		seed = s.seed + int64(id)
	}

	handle := &ClientHandle{
		ID:        id,
		SessionID: uuid.NewString(),
		Username:  truncateUsername(username),
		Seed:      seed,
		EventsCh:  make(chan ClientEvent, 16),
	}
	s.clients[id] = handle
	return handle
}

// UnregisterClient removes a client from the server and closes its
// event channel.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if handle, ok := s.clients[clientID]; ok {
		close(handle.EventsCh)
		delete(s.clients, clientID)
	}
}

// Players returns the number of connected clients.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// ReportScore records a finished game on the leaderboard. Zero scores
// and unknown clients are ignored.
func (s *Server) ReportScore(clientID int, score int) {
	if score <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}

	s.topScores = append(s.topScores, TopScoreEntry{
		Username: handle.Username,
		Score:    score,
		clientID: clientID,
	})
	slices.SortStableFunc(s.topScores, func(a, b TopScoreEntry) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return a.clientID - b.clientID
	})
	if len(s.topScores) > config.TopScoreCount {
		s.topScores = s.topScores[:config.TopScoreCount]
	}
}

// TopScores returns a copy of the leaderboard, best first.
func (s *Server) TopScores() []TopScoreEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.topScores)
}

// truncateUsername limits a username to MaxUsernameLength bytes.
func truncateUsername(name string) string {
	if len(name) > config.MaxUsernameLength {
		return name[:config.MaxUsernameLength]
	}
	return name
}
