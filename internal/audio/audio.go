// Package audio plays the hit cue. Playback is strictly best-effort: every
// trigger is independent, overlapping cues mix, and failures never reach the
// game loop.
package audio

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Cue is the audio collaborator the game fires on each successful hit.
type Cue interface {
	Hit()
}

// NopCue discards all triggers. Used when no audio backend is available.
type NopCue struct{}

// Hit implements Cue.
func (NopCue) Hit() {}

// BellCue writes the terminal bell byte for each hit. The only audio channel
// available over a plain SSH session.
type BellCue struct {
	W io.Writer
}

// Hit implements Cue. Write errors are swallowed.
func (b BellCue) Hit() {
	if b.W == nil {
		return
	}
	_, _ = b.W.Write([]byte{'\a'})
}

const (
	sampleRate = beep.SampleRate(44100)
	hitFreq    = 880.0
	hitLength  = 70 * time.Millisecond
)

var speakerOnce sync.Once

// NewSpeakerCue initializes the system speaker and returns a cue that plays
// a short synthesized blip per hit. Returns a NopCue and the error if the
// speaker cannot be opened; callers may log it and continue silent.
func NewSpeakerCue() (Cue, error) {
	var initErr error
	speakerOnce.Do(func() {
		initErr = speaker.Init(sampleRate, sampleRate.N(20*time.Millisecond))
	})
	if initErr != nil {
		return NopCue{}, initErr
	}
	return &speakerCue{}, nil
}

type speakerCue struct{}

// Hit implements Cue. Each call plays an independent streamer; the speaker
// mixes overlapping cues.
func (*speakerCue) Hit() {
	speaker.Play(newBlip())
}

// blip is a decaying sine burst.
type blip struct {
	pos   int
	total int
}

func newBlip() beep.Streamer {
	return &blip{total: sampleRate.N(hitLength)}
}

// Stream implements beep.Streamer.
func (b *blip) Stream(samples [][2]float64) (int, bool) {
	if b.pos >= b.total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if b.pos >= b.total {
			break
		}
		t := float64(b.pos) / float64(sampleRate)
		env := 1 - float64(b.pos)/float64(b.total)
		v := math.Sin(2*math.Pi*hitFreq*t) * env * env * 0.25
		samples[i][0] = v
		samples[i][1] = v
		b.pos++
		n++
	}
	return n, true
}

// Err implements beep.Streamer.
func (b *blip) Err() error {
	return nil
}
