package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/stretchy-rig/parameter"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

// TestBlipLength verifies the blip stops after its duration with matching channels
func TestBlipLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	samples := drain(newBlip(440, 100*time.Millisecond, 5*time.Millisecond, 5*time.Millisecond, rate))

	if want := rate.N(100 * time.Millisecond); len(samples) != want {
		t.Errorf("Expected %d samples, got %d", want, len(samples))
	}
	for i, s := range samples {
		if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
			t.Fatalf("Sample %d invalid: %v", i, s)
		}
	}
}

// TestBlipGain verifies silence at both ends and full level in the sustain
func TestBlipGain(t *testing.T) {
	b := newBlip(1, 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, beep.SampleRate(1000))

	tests := []struct {
		pos      int
		min, max float64
	}{
		{0, 0, 0},
		{5, 0.5, 0.5},
		{50, 1, 1},
		{90, 0.5, 0.5},
		{99, 0.01, 0.1},
	}
	for _, tt := range tests {
		if g := b.gain(tt.pos); g < tt.min-1e-9 || g > tt.max+1e-9 {
			t.Errorf("gain(%d) = %v, want [%v, %v]", tt.pos, g, tt.min, tt.max)
		}
	}
}

// TestToneLevel verifies the grab tone stays under the configured volume
func TestToneLevel(t *testing.T) {
	rate := beep.SampleRate(parameter.ToneSampleRate)
	samples := drain(NewTone(parameter.GrabToneFreq, rate))

	if want := rate.N(parameter.ToneDuration); len(samples) != want {
		t.Errorf("Expected %d samples, got %d", want, len(samples))
	}

	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s[0]))
	}
	if peak == 0 || peak > parameter.ToneVolume+1e-9 {
		t.Errorf("Peak %v outside (0, %v]", peak, parameter.ToneVolume)
	}
}

// TestFeedbackUninitialized verifies playback is a no-op before Initialize
func TestFeedbackUninitialized(t *testing.T) {
	f := NewFeedback()

	if f.Enabled() {
		t.Error("Expected feedback disabled before Initialize")
	}
	f.PlayGrab()
	f.PlayRelease()
	f.Cleanup()

	if !f.ToggleMute() {
		t.Error("Expected first toggle to mute")
	}
	if f.ToggleMute() {
		t.Error("Expected second toggle to unmute")
	}
}
