package main

import "time"

// Viewer and runtime constants. Simulation parameters come from the
// settings file (see package config).
const (
	defaultTPS            = 60.0
	minTimeScale          = 0.125
	maxTimeScale          = 8.0
	audioSampleRate       = 48000
	audioPlayerLatency    = 80 * time.Millisecond
	probeDCAlpha          = 0.001
	verifyTolerance       = 1e-5
	verifyLogInterval     = time.Second
	defaultProfileLength  = 15 * time.Second
	dumpFilePattern       = "heights-%03d.txt"
	serverFrameBufferSize = 1
	serverRequestBuffer   = 16
	serverWriteTimeout    = time.Second
	serverShutdownTimeout = 2 * time.Second
)
