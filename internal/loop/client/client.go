// Package client runs one player's game session: it reads input, steps
// the world at a fixed rate and renders it to the player's terminal.
package client

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/kokaton/internal/draw"
	"github.com/tomz197/kokaton/internal/input"
	"github.com/tomz197/kokaton/internal/loop/config"
	"github.com/tomz197/kokaton/internal/loop/server"
	"github.com/tomz197/kokaton/internal/loop/world"
	"github.com/tomz197/kokaton/internal/sound"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	tuning       config.Tuning
	logger       *log.Logger
	sound        sound.Player

	// Reused per-frame set of effects already played
	played map[sound.Effect]bool
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Tuning       *config.Tuning // Nil uses the defaults
	Logger       *log.Logger    // Nil discards logs
	Sound        sound.Player   // Nil plays nothing
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	tuning := config.DefaultTuning()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	var player sound.Player = sound.Silent{}
	if opts.Sound != nil {
		player = opts.Sound
	}

	handle := gs.RegisterClient(opts.Username)
	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.FieldWidth, config.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		tuning:       tuning,
		logger:       logger.With("session", handle.SessionID, "user", handle.Username),
		sound:        player,
		played:       make(map[sound.Effect]bool),
	}
}

// Run starts the client loop. Blocks until the player quits, the game
// ends, or the server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	c.logger.Info("session started")
	defer c.server.UnregisterClient(c.handle.ID)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		// Handle game state
		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateOver:
			c.updateOverState()
		case GameStateShutdown:
			c.updateShutdownState(delta)
		}

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	c.reportScore()
	c.logger.Info("session ended", "score", c.state.Score(), "state", c.state.GameState)

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive player")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.reportScore()
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateStartState handles the title screen.
func (c *Client) updateStartState() {
	if c.state.Input.Fire > 0 || c.state.Input.Gravity > 0 {
		c.startGame()
	}
}

// startGame creates a fresh world and switches to play.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)
	c.state.World = world.New(c.tuning, c.handle.Seed)
	c.state.GameState = GameStatePlaying
	c.logger.Info("game started", "seed", c.handle.Seed)
}

// updatePlayingState advances the world by one frame.
func (c *Client) updatePlayingState() {
	w := c.state.World
	w.Step(c.state.Input)
	c.playEvents(w.Events())

	if w.Over {
		c.state.GameState = GameStateOver
		c.state.overFrames = c.tuning.GameOverFrames
		c.logger.Info("game over", "score", w.Score, "frames", w.Tick)
		c.reportScore()
	}
}

// updateOverState counts down the game-over screen, then ends the session.
func (c *Client) updateOverState() {
	c.state.overFrames--
	if c.state.overFrames <= 0 {
		c.state.Running = false
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState(delta time.Duration) {
	c.state.shutdownTimer -= delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// reportScore sends the finished game's score to the server once.
func (c *Client) reportScore() {
	if c.state.World == nil || c.state.scoreReported {
		return
	}
	c.state.scoreReported = true
	c.server.ReportScore(c.handle.ID, c.state.World.Score)
}

// playEvents plays one sound per kind of event in the frame.
func (c *Client) playEvents(events []world.Event) {
	clear(c.played)
	for _, ev := range events {
		effect, ok := effectFor(ev)
		if !ok || c.played[effect] {
			continue
		}
		c.played[effect] = true
		c.sound.Play(effect)
	}
}

// effectFor maps a world event to its sound effect.
func effectFor(ev world.Event) (sound.Effect, bool) {
	switch ev {
	case world.EventShot:
		return sound.EffectShot, true
	case world.EventEnemyDestroyed:
		return sound.EffectBigExplosion, true
	case world.EventBombDestroyed, world.EventShieldBlocked:
		return sound.EffectExplosion, true
	case world.EventShieldUp:
		return sound.EffectShield, true
	case world.EventGravity:
		return sound.EffectGravity, true
	case world.EventEMP:
		return sound.EffectEMP, true
	case world.EventGameOver:
		return sound.EffectDefeat, true
	}
	return 0, false
}
