package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// wavMagnitudeSource loops over a decoded WAV file and reports the peak
// loudness of the window between consecutive disturbances.
type wavMagnitudeSource struct {
	samples []float32
	window  int
	pos     int
}

// newWAVMagnitudeSource decodes path at sampleRate; each call to Next
// consumes periodSeconds of audio.
func newWAVMagnitudeSource(path string, sampleRate int, periodSeconds float64) (*wavMagnitudeSource, error) {
	samples, err := loadLoopSamples(sampleRate, path)
	if err != nil {
		return nil, err
	}
	window := int(float64(sampleRate) * periodSeconds)
	if window < 1 {
		window = 1
	}
	return &wavMagnitudeSource{samples: samples, window: window}, nil
}

// Next returns the peak absolute sample of the next window, in [0, 1].
func (s *wavMagnitudeSource) Next() float32 {
	var peak float32
	for i := 0; i < s.window; i++ {
		v := s.samples[s.pos]
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
		s.pos++
		if s.pos >= len(s.samples) {
			s.pos = 0
		}
	}
	if peak > 1 {
		peak = 1
	}
	return peak
}

// loadLoopSamples decodes the WAV at path and returns stereo-averaged samples at sampleRate.
func loadLoopSamples(sampleRate int, path string) ([]float32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	decoded, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading decoded %q: %w", path, err)
	}
	samples := decodeStereoI16ToFloat(decoded)
	if len(samples) == 0 {
		return nil, fmt.Errorf("wav %q has no usable samples", path)
	}
	return samples, nil
}

func decodeStereoI16ToFloat(pcm []byte) []float32 {
	frameCount := len(pcm) / 4
	if frameCount == 0 {
		return nil
	}
	samples := make([]float32, frameCount)
	for i := range samples {
		offset := i * 4
		left := int16(binary.LittleEndian.Uint16(pcm[offset : offset+2]))
		right := int16(binary.LittleEndian.Uint16(pcm[offset+2 : offset+4]))
		samples[i] = (float32(left) + float32(right)) * (0.5 / 32768.0)
	}
	return samples
}
