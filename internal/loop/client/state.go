package client

import (
	"github.com/tomz197/kokaton/internal/draw"
	"github.com/tomz197/kokaton/internal/loop/world"
	"github.com/tomz197/kokaton/internal/object"
)

// GameState represents the current game phase for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateOver                      // Player hit, defeat shown briefly before the session ends
	GameStateShutdown                  // Server is shutting down
)

func (s GameState) String() string {
	switch s {
	case GameStateStart:
		return "start"
	case GameStatePlaying:
		return "playing"
	case GameStateOver:
		return "over"
	case GameStateShutdown:
		return "shutdown"
	}
	return "unknown"
}

// ClientState holds per-session state (input, world, screen phase).
type ClientState struct {
	Input         object.Input
	GameState     GameState         // This client's game phase
	World         *world.World      // Nil until the game starts
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	Running       bool              // Client loop running
	overFrames    int               // Frames left on the game-over screen
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the client is in inactive warning state
	scoreReported bool

	// Previous frame's phase, to detect transitions that need a full clear
	prevGameState GameState
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}

// Score returns the current game's score, or 0 before the game starts.
func (s *ClientState) Score() int {
	if s.World == nil {
		return 0
	}
	return s.World.Score
}
