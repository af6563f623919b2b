package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// sweep is a square-ish tone gliding linearly from one frequency to
// another with an exponential fade.
type sweep struct {
	sr        beep.SampleRate
	pos       int
	samples   int
	from, to  float64
	amplitude float64
	phase     float64
}

func newSweep(sr beep.SampleRate, d time.Duration, from, to, amplitude float64) *sweep {
	return &sweep{
		sr:        sr,
		samples:   sr.N(d),
		from:      from,
		to:        to,
		amplitude: amplitude,
	}
}

func (g *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.samples {
			return i, i > 0
		}
		progress := float64(g.pos) / float64(g.samples)
		freq := g.from + (g.to-g.from)*progress
		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)

		// Soft square: sine with its third harmonic
		v := math.Sin(2*math.Pi*g.phase) + math.Sin(6*math.Pi*g.phase)/3
		v *= g.amplitude * math.Exp(-3*progress)

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *sweep) Err() error {
	return nil
}

// noiseBurst is decaying noise run through a one-pole low-pass filter.
// Larger rumble values darken it.
type noiseBurst struct {
	sr      beep.SampleRate
	pos     int
	samples int
	rumble  float64
	seed    uint32
	last    float64
}

func newNoiseBurst(sr beep.SampleRate, d time.Duration, rumble float64) *noiseBurst {
	return &noiseBurst{
		sr:      sr,
		samples: sr.N(d),
		rumble:  rumble,
		seed:    0x9e3779b9,
	}
}

func (g *noiseBurst) Stream(samples [][2]float64) (n int, ok bool) {
	alpha := 1 / (1 + g.rumble*4)
	for i := range samples {
		if g.pos >= g.samples {
			return i, i > 0
		}
		// xorshift32
		g.seed ^= g.seed << 13
		g.seed ^= g.seed >> 17
		g.seed ^= g.seed << 5
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1

		g.last += alpha * (noise - g.last)
		t := float64(g.pos) / float64(g.samples)
		v := 0.6 * g.last * math.Exp(-5*t)

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *noiseBurst) Err() error {
	return nil
}
