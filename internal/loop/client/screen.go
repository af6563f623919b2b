package client

import (
	"fmt"
	"time"

	"github.com/tomz197/kokaton/internal/draw"
	"github.com/tomz197/kokaton/internal/loop/config"
	"github.com/tomz197/kokaton/internal/loop/world"
	"github.com/tomz197/kokaton/internal/object"
)

// abilityKeys labels each ability with the key that triggers it.
var abilityKeys = map[world.Ability]string{
	world.AbilityShield:  "S",
	world.AbilityGravity: "Enter",
	world.AbilityEMP:     "E",
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.Clear()
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	if w := c.state.World; w != nil && c.state.GameState != GameStateShutdown && !c.state.isInactive {
		ctx := object.DrawContext{
			Canvas: c.canvas,
			Writer: c.chunkWriter,
			Tick:   w.Tick,
		}
		if err := w.Draw(ctx); err != nil {
			return fmt.Errorf("draw world: %w", err)
		}
	}

	// Render canvas to terminal
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return fmt.Errorf("render canvas: %w", err)
	}

	// Draw border when terminal exceeds max render resolution
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return fmt.Errorf("render border: %w", err)
	}

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay for the current game state.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		c.drawPlayingHUD()
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStateOver:
		c.drawPlayingHUD()
		c.drawOverScreen(centerX, centerY)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// figlet "small" font
	titleArt := []string{
		` _  _____  _  __   _ _____ ___  _  _ `,
		`| |/ / _ \| |/ /  /_\_   _/ _ \| \| |`,
		`| ' < (_) | ' <  / _ \| || (_) | .' |`,
		`|_|\_\___/|_|\_\/_/ \_\_| \___/|_|\_|`,
		`                                     `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	cw := c.chunkWriter
	titleStartY := centerY - 10
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}

	subtitle := "~ Keep the bombs off the bird ~"
	cw.WriteAt(centerX-len(subtitle)/2, titleStartY+len(titleArt)+1, subtitle)

	controlsY := titleStartY + len(titleArt) + 3
	controlHeader := "Controls"
	cw.WriteAt(centerX-len(controlHeader)/2, controlsY, controlHeader)

	controlLines := []string{
		"Arrows  . . . . . . . . . . Fly",
		"Shift + Arrows  . . . . . Boost",
		"SPACE  . . . . . . . . .  Shoot",
		"F / Shift + SPACE  . . .  Spread",
		fmt.Sprintf("S  . . . . . . . . Shield (%3d)", c.tuning.ShieldCost),
		fmt.Sprintf("ENTER  . . . . .  Gravity (%3d)", c.tuning.GravityCost),
		fmt.Sprintf("E  . . . . . . . . . EMP (%3d)", c.tuning.EMPCost),
		"Q  . . . . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		cw.WriteAt(centerX-len(line)/2, controlsY+1+i, line)
	}

	// Blinking start prompt
	promptY := controlsY + len(controlLines) + 2
	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  Press SPACE to Start  <<"
		cw.WriteAt(centerX-len(prompt)/2, promptY, prompt)
	}

	c.drawLeaderboard(centerX, promptY+2)
}

// drawLeaderboard lists the best finished games on this server.
func (c *Client) drawLeaderboard(centerX, y int) {
	scores := c.server.TopScores()
	if len(scores) == 0 {
		return
	}
	cw := c.chunkWriter
	header := "Top Scores"
	cw.WriteAt(centerX-len(header)/2, y, header)
	for i, entry := range scores {
		line := fmt.Sprintf("%d. %-*s %8d", i+1, config.MaxUsernameLength, entry.Username, entry.Score)
		cw.WriteAt(centerX-len(line)/2, y+1+i, line)
	}
}

// drawPlayingHUD draws the score and ability list along the bottom edge.
// The score is padded so a shrinking value leaves no residual digits.
func (c *Client) drawPlayingHUD() {
	w := c.state.World
	if w == nil {
		return
	}
	ctx := object.DrawContext{Canvas: c.canvas, Writer: c.chunkWriter, Tick: w.Tick}

	bottom := float64(config.FieldHeight - 1)
	score := object.Text{X: 10, Y: bottom, Value: fmt.Sprintf("Score: %-8d", w.Score)}
	_ = score.Draw(ctx)

	// Abilities right-aligned, bright when affordable
	labels := make([]string, len(world.Abilities))
	width := 0
	for i, a := range world.Abilities {
		labels[i] = fmt.Sprintf("[%s] %s %d", abilityKeys[a], a, w.Cost(a))
		width += len(labels[i]) + 2
	}
	col := c.canvas.TerminalWidth() - width
	for i, a := range world.Abilities {
		style := draw.ColorDim
		if w.CanActivate(a) == nil {
			style = draw.ColorBoldYellow
		}
		c.chunkWriter.WriteStyledAt(col, c.canvas.TerminalHeight(), style, labels[i])
		c.canvas.MarkTextDirty(col, c.canvas.TerminalHeight(), len(labels[i]))
		col += len(labels[i]) + 2
	}
}

// drawOverScreen draws the defeat banner over the frozen field.
func (c *Client) drawOverScreen(centerX, centerY int) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	cw := c.chunkWriter
	titleStartY := centerY - 4
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
		c.canvas.MarkTextDirty(centerX-titleWidth/2, titleStartY+i, len(line))
	}

	scoreText := fmt.Sprintf("Final score: %d", c.state.Score())
	cw.WriteAt(centerX-len(scoreText)/2, titleStartY+len(titleArt)+1, scoreText)
	c.canvas.MarkTextDirty(centerX-len(scoreText)/2, titleStartY+len(titleArt)+1, len(scoreText))
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteAt(centerX-len(title)/2, centerY-3, title)

	msg1 := "The server is restarting for maintenance."
	cw.WriteAt(centerX-len(msg1)/2, centerY-1, msg1)

	msg2 := "Please reconnect in a moment."
	cw.WriteAt(centerX-len(msg2)/2, centerY, msg2)

	if score := c.state.Score(); score > 0 {
		msg3 := fmt.Sprintf("Your score of %d has been recorded.", score)
		cw.WriteAt(centerX-len(msg3)/2, centerY+1, msg3)
	}

	remaining := int(c.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", remaining)
	cw.WriteAt(centerX-len(countdown)/2, centerY+3, countdown)

	hint := "Press Q to disconnect now"
	cw.WriteAt(centerX-len(hint)/2, centerY+5, hint)
}
