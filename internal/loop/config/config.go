// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield - the logical game area in pixels.
// Actual rendering scales to fit terminal size.
const (
	FieldWidth  = 1100
	FieldHeight = 650
)

// Render limits. Larger terminals get a centered, bordered render area.
const (
	MaxTermWidth  = 220
	MaxTermHeight = 66
)

// Frame rate. The simulation advances exactly one step per frame.
const (
	TargetFPS       = 50
	TargetFrameTime = time.Second / TargetFPS
)

// Leaderboard
const (
	TopScoreCount     = 5
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)
