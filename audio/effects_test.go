package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/regionview/parameter"
)

// drain streams s to completion and returns all samples
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("stream never drained")
	return nil
}

// TestOscillatorWaves verifies every wave stays within [-1, 1]
func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	waves := []struct {
		name string
		wave WaveType
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"saw", WaveSaw},
		{"noise", WaveNoise},
	}

	for _, w := range waves {
		t.Run(w.name, func(t *testing.T) {
			osc := NewOscillator(440, 20*time.Millisecond, w.wave, rate)
			for i, s := range drain(t, osc) {
				if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
					t.Fatalf("Sample %d invalid: %v", i, s)
				}
			}
			if osc.Err() != nil {
				t.Errorf("Expected no error, got: %v", osc.Err())
			}
		})
	}
}

// TestOscillatorDuration verifies the oscillator stops after its duration
func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(48000)
	osc := NewOscillator(440, 10*time.Millisecond, WaveSine, rate)

	got := len(drain(t, osc))
	if got != rate.N(10*time.Millisecond) {
		t.Errorf("Expected %d samples, got %d", rate.N(10*time.Millisecond), got)
	}
}

// TestEnvelopeShape verifies attack starts silent and release ends near silent
func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(48000)
	d := 20 * time.Millisecond
	osc := NewOscillator(0, d, WaveSquare, rate) // constant +1
	env := NewEnvelope(osc, d, 5*time.Millisecond, 5*time.Millisecond, rate)

	samples := drain(t, env)
	if len(samples) != rate.N(d) {
		t.Fatalf("Expected %d samples, got %d", rate.N(d), len(samples))
	}
	if samples[0][0] != 0 {
		t.Errorf("Expected first sample silent, got %f", samples[0][0])
	}
	mid := samples[len(samples)/2][0]
	if math.Abs(mid-1) > 1e-9 {
		t.Errorf("Expected full volume in sustain, got %f", mid)
	}
	last := samples[len(samples)-1][0]
	if last <= 0 || last > 0.01 {
		t.Errorf("Expected last sample near silent, got %f", last)
	}
}

// TestCreateCues verifies cue streamers are finite and non-silent
func TestCreateCues(t *testing.T) {
	rate := beep.SampleRate(parameter.AudioSampleRate)
	cues := []struct {
		name string
		s    beep.Streamer
		want time.Duration
	}{
		{"toggle on", CreateToggleSound(true, rate, 1), parameter.ToggleSoundDuration},
		{"toggle off", CreateToggleSound(false, rate, 1), parameter.ToggleSoundDuration},
		{"tick", CreateTickSound(rate, 1), parameter.TickSoundDuration},
	}

	for _, c := range cues {
		t.Run(c.name, func(t *testing.T) {
			samples := drain(t, c.s)
			if len(samples) != rate.N(c.want) {
				t.Errorf("Expected %d samples, got %d", rate.N(c.want), len(samples))
			}
			peak := 0.0
			for _, s := range samples {
				peak = math.Max(peak, math.Abs(s[0]))
			}
			if peak == 0 || peak > 1 {
				t.Errorf("Unexpected peak %f", peak)
			}
		})
	}
}

// TestNewVolumeZero verifies zero volume produces silence
func TestNewVolumeZero(t *testing.T) {
	rate := beep.SampleRate(48000)
	s := newVolume(NewOscillator(440, 5*time.Millisecond, WaveSquare, rate), 0)
	for _, sample := range drain(t, s) {
		if sample[0] != 0 {
			t.Fatalf("Expected silence, got %f", sample[0])
		}
	}
}
