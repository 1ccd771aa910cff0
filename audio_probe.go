package main

import "sync"

// probeAudioStream plays the height of one vertex as a stereo PCM16 signal.
// The renderer thread sets the sample, the audio thread reads it.
type probeAudioStream struct {
	mu     sync.Mutex
	sample float32
	dc     float32
}

func newProbeAudioStream() *probeAudioStream {
	return &probeAudioStream{}
}

// SetSample clamps v to [-1, 1] and removes its slowly varying offset.
func (s *probeAudioStream) SetSample(v float32) {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	s.mu.Lock()
	s.dc += probeDCAlpha * (v - s.dc)
	s.sample = v - s.dc
	s.mu.Unlock()
}

// Read fills p with whole stereo frames of the latest sample.
func (s *probeAudioStream) Read(p []byte) (int, error) {
	frameBytes := len(p) - len(p)%4
	if frameBytes == 0 {
		return 0, nil
	}
	s.mu.Lock()
	sample := s.sample
	s.mu.Unlock()

	v := int16(sample * 32767)
	for i := 0; i < frameBytes; i += 4 {
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return frameBytes, nil
}
