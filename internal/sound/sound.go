// Package sound synthesizes the short tones played for game events.
package sound

import (
	"encoding/binary"
	"math"
	"time"
)

// SampleRate is the rate the tones are generated for.
const SampleRate = 44100

// Tone is a sine beep with a linear fade-out.
type Tone struct {
	Freq     float64 // Hz
	Duration time.Duration
	Volume   float64 // 0..1
}

// Event tones.
var (
	Jump        = Tone{Freq: 660, Duration: 60 * time.Millisecond, Volume: 0.25}
	Death       = Tone{Freq: 110, Duration: 300 * time.Millisecond, Volume: 0.5}
	Elimination = Tone{Freq: 80, Duration: 700 * time.Millisecond, Volume: 0.5}
	Complete    = Tone{Freq: 880, Duration: 400 * time.Millisecond, Volume: 0.4}
	Pulse       = Tone{Freq: 440, Duration: 40 * time.Millisecond, Volume: 0.1}
	Alarm       = Tone{Freq: 990, Duration: 150 * time.Millisecond, Volume: 0.35}
)

// Samples returns the number of frames the tone lasts at sampleRate.
func (t Tone) Samples(sampleRate int) int {
	return int(t.Duration.Seconds() * float64(sampleRate))
}

// PCM renders the tone as signed 16-bit little-endian stereo frames.
func (t Tone) PCM(sampleRate int) []byte {
	n := t.Samples(sampleRate)
	buf := make([]byte, n*4)
	vol := math.Max(0, math.Min(1, t.Volume))
	for i := 0; i < n; i++ {
		fade := 1 - float64(i)/float64(n)
		v := math.Sin(2*math.Pi*t.Freq*float64(i)/float64(sampleRate)) * vol * fade
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], s)
		binary.LittleEndian.PutUint16(buf[i*4+2:], s)
	}
	return buf
}
