package sound

import (
	"encoding/binary"
	"testing"
	"time"
)

func TestPCMLength(t *testing.T) {
	tone := Tone{Freq: 440, Duration: 100 * time.Millisecond, Volume: 1}
	pcm := tone.PCM(SampleRate)
	if want := 4410 * 4; len(pcm) != want {
		t.Fatalf("len = %d, want %d", len(pcm), want)
	}
}

func TestPCMChannelsMatchAndStayInRange(t *testing.T) {
	tone := Tone{Freq: 1000, Duration: 20 * time.Millisecond, Volume: 2}
	pcm := tone.PCM(8000)

	var peak int16
	for i := 0; i+4 <= len(pcm); i += 4 {
		l := int16(binary.LittleEndian.Uint16(pcm[i:]))
		r := int16(binary.LittleEndian.Uint16(pcm[i+2:]))
		if l != r {
			t.Fatalf("frame %d: left %d != right %d", i/4, l, r)
		}
		if l > peak {
			peak = l
		}
	}
	if peak == 0 {
		t.Error("tone is silent")
	}
	if first := int16(binary.LittleEndian.Uint16(pcm)); first != 0 {
		t.Errorf("first sample = %d, want 0", first)
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	pcm := Tone{Freq: 440, Duration: 10 * time.Millisecond}.PCM(SampleRate)
	for i, b := range pcm {
		if b != 0 {
			t.Fatalf("byte %d = %d, want silence", i, b)
		}
	}
}
