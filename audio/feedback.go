package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/stretchy-rig/parameter"
)

const sampleRate = beep.SampleRate(parameter.ToneSampleRate)

// Feedback plays short tones when a control is grabbed or released
type Feedback struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewFeedback creates an uninitialized feedback player; Play calls are no-ops until Initialize
func NewFeedback() *Feedback {
	return &Feedback{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and starts the mixer
func (f *Feedback) Initialize() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(f.mixer)
	f.initialized = true
	return nil
}

// Cleanup silences the mixer and closes the speaker
func (f *Feedback) Cleanup() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}

	speaker.Lock()
	f.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	f.initialized = false
}

// Enabled reports whether tones will be heard
func (f *Feedback) Enabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.initialized && !f.muted
}

// ToggleMute flips the mute state and returns the new one
func (f *Feedback) ToggleMute() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted = !f.muted
	return f.muted
}

// PlayGrab plays the rising grab tone
func (f *Feedback) PlayGrab() {
	f.play(NewTone(parameter.GrabToneFreq, sampleRate))
}

// PlayRelease plays the lower release tone
func (f *Feedback) PlayRelease() {
	f.play(NewTone(parameter.ReleaseToneFreq, sampleRate))
}

func (f *Feedback) play(s beep.Streamer) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized || f.muted {
		return
	}

	speaker.Lock()
	f.mixer.Add(s)
	speaker.Unlock()
}

// NewTone builds an enveloped, attenuated sine blip of ToneDuration
func NewTone(freq float64, rate beep.SampleRate) beep.Streamer {
	b := newBlip(freq, parameter.ToneDuration, parameter.ToneAttack, parameter.ToneRelease, rate)
	return newVolume(b, parameter.ToneVolume)
}

// blip is a sine wave shaped by linear attack and release ramps
type blip struct {
	step     float64
	phase    float64
	position int
	total    int
	attack   int
	release  int
}

func newBlip(freq float64, duration, attack, release time.Duration, rate beep.SampleRate) *blip {
	return &blip{
		step:    freq / float64(rate),
		total:   rate.N(duration),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

// gain is the envelope level at sample pos
func (b *blip) gain(pos int) float64 {
	switch {
	case pos < b.attack:
		return float64(pos) / float64(b.attack)
	case b.release > 0 && pos >= b.total-b.release:
		return float64(b.total-pos) / float64(b.release)
	}
	return 1
}

func (b *blip) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if b.position >= b.total {
			return i, i > 0
		}
		v := math.Sin(2*math.Pi*b.phase) * b.gain(b.position)
		samples[i] = [2]float64{v, v}

		b.phase += b.step
		b.phase -= math.Floor(b.phase)
		b.position++
	}
	return len(samples), true
}

func (b *blip) Err() error { return nil }

// math.Log2(0) is -Inf, zero volume maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
