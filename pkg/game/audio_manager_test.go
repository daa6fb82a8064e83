package game

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestSynthesizeTone(t *testing.T) {
	tone := Tone{StartFreq: 440, EndFreq: 880, Duration: 0.1, Volume: 0.5, Decay: 5}
	pcm := SynthesizeTone(tone, SampleRate)

	wantSamples := int(0.1 * SampleRate)
	if len(pcm) != wantSamples*4 {
		t.Fatalf("len(pcm) = %d, want %d", len(pcm), wantSamples*4)
	}

	limit := int16(math.MaxInt16 / 2)
	var peak int16
	for i := 0; i < wantSamples; i++ {
		left := int16(binary.LittleEndian.Uint16(pcm[i*4:]))
		right := int16(binary.LittleEndian.Uint16(pcm[i*4+2:]))
		if left != right {
			t.Fatalf("sample %d: channels differ (%d vs %d)", i, left, right)
		}
		if left > limit || left < -limit {
			t.Fatalf("sample %d = %d exceeds volume limit %d", i, left, limit)
		}
		if left > peak {
			peak = left
		}
	}
	if peak == 0 {
		t.Error("tone should not be silent")
	}

	first := int16(binary.LittleEndian.Uint16(pcm[0:]))
	if first != 0 {
		t.Errorf("first sample = %d, want 0 (fade in)", first)
	}
}

func TestSynthesizeToneEmpty(t *testing.T) {
	if pcm := SynthesizeTone(Tone{Duration: 0}, SampleRate); pcm != nil {
		t.Errorf("zero duration should produce no data, got %d bytes", len(pcm))
	}
}

func TestAudioManagerWithoutContext(t *testing.T) {
	am := NewAudioManager(nil, NewSettingsManager(nil))

	for _, id := range []string{SoundInteract, SoundWater} {
		if len(am.pcm[id]) == 0 {
			t.Errorf("sound %s was not synthesized", id)
		}
		if am.PlaySound(id) {
			t.Errorf("PlaySound(%s) should fail without an audio context", id)
		}
	}
}

func TestAudioManagerToggleMute(t *testing.T) {
	am := NewAudioManager(nil, NewSettingsManager(nil))

	if !am.SoundEnabled() {
		t.Fatal("sound should be enabled by default")
	}
	if am.ToggleMute() {
		t.Error("first toggle should mute")
	}
	if am.SoundEnabled() {
		t.Error("sound should be disabled after toggle")
	}
	if am.PlaySound(SoundInteract) {
		t.Error("muted manager must not play")
	}
	if !am.ToggleMute() {
		t.Error("second toggle should unmute")
	}
}
