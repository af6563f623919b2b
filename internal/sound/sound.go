// Package sound plays synthesized sound effects through the local speaker.
package sound

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Effect identifies a sound effect.
type Effect int

const (
	EffectShot Effect = iota
	EffectExplosion
	EffectBigExplosion
	EffectShield
	EffectGravity
	EffectEMP
	EffectDefeat
)

func (e Effect) String() string {
	switch e {
	case EffectShot:
		return "shot"
	case EffectExplosion:
		return "explosion"
	case EffectBigExplosion:
		return "big explosion"
	case EffectShield:
		return "shield"
	case EffectGravity:
		return "gravity"
	case EffectEMP:
		return "emp"
	case EffectDefeat:
		return "defeat"
	}
	return "unknown"
}

// Player plays sound effects.
type Player interface {
	Play(e Effect)
	Close()
}

// Silent is a Player that discards every effect.
type Silent struct{}

func (Silent) Play(Effect) {}
func (Silent) Close()      {}

// Manager mixes effects into the system speaker.
type Manager struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	closed bool
}

var _ Player = (*Manager)(nil)

// NewManager initializes the speaker and starts playback of an empty mixer.
// volume scales every effect, 1 is full volume.
func NewManager(volume float64) (*Manager, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	m := &Manager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
	speaker.Play(m.mixer)
	return m, nil
}

// Play starts e without waiting for it to finish. Overlapping effects mix.
func (m *Manager) Play(e Effect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}

	s := Stream(e, sampleRate)
	if s == nil {
		return
	}
	speaker.Lock()
	m.mixer.Add(withVolume(s, m.volume))
	speaker.Unlock()
}

// Close silences all effects and releases the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true

	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// Stream builds a finite streamer for e at rate sr.
func Stream(e Effect, sr beep.SampleRate) beep.Streamer {
	switch e {
	case EffectShot:
		sine, err := generators.SineTone(sr, 1320)
		if err != nil {
			return nil
		}
		return beep.Take(sr.N(40*time.Millisecond), withVolume(sine, 0.25))
	case EffectExplosion:
		return newNoiseBurst(sr, 250*time.Millisecond, 1)
	case EffectBigExplosion:
		return beep.Mix(
			newNoiseBurst(sr, 500*time.Millisecond, 2),
			newSweep(sr, 400*time.Millisecond, 160, 50, 0.25),
		)
	case EffectShield:
		return newSweep(sr, 200*time.Millisecond, 300, 900, 0.3)
	case EffectGravity:
		return newSweep(sr, 800*time.Millisecond, 220, 40, 0.5)
	case EffectEMP:
		return beep.Seq(
			newSweep(sr, 80*time.Millisecond, 1800, 1200, 0.3),
			newSweep(sr, 80*time.Millisecond, 1800, 1200, 0.3),
			newSweep(sr, 80*time.Millisecond, 1800, 1200, 0.3),
		)
	case EffectDefeat:
		return beep.Seq(
			newSweep(sr, 250*time.Millisecond, 440, 330, 0.4),
			newSweep(sr, 250*time.Millisecond, 330, 220, 0.4),
			newSweep(sr, 600*time.Millisecond, 220, 110, 0.4),
		)
	}
	return nil
}

// withVolume scales s linearly by vol. Non-positive vol silences it.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
