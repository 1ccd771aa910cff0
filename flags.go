package main

import (
	"flag"

	"github.com/prog3487/ComputeWave/config"
)

// Command-line flags. Flags that mirror a settings field override the
// settings file only when given explicitly.
var (
	// configPathFlag names the JSON settings file; a missing file means defaults.
	configPathFlag = flag.String("config", "settings.json", "path to the JSON settings file")

	// modeFlag selects the initial stepper.
	modeFlag = flag.String("mode", "scalar", "initial stepping mode: scalar or parallel")

	// backendFlag selects the executor behind the parallel stepper.
	backendFlag = flag.String("backend", "goroutines", "parallel backend: goroutines or opencl (requires -tags opencl)")

	// workersFlag bounds the goroutines of the goroutine backend.
	workersFlag = flag.Int("workers", 0, "goroutines per dispatch for the goroutine backend (0 = NumCPU)")

	// seedFlag seeds the disturbance generator.
	seedFlag = flag.Int64("seed", 0, "seed for random disturbances (0 = time based)")

	// verifyPathsFlag runs a shadow simulation on the other path and compares fields.
	verifyPathsFlag = flag.Bool("verify-paths", false, "step a shadow simulation on the other path and log divergence")

	// serveFlag starts the websocket height server on the given address.
	serveFlag = flag.String("serve", "", "address for the websocket height stream, e.g. :8080")

	// enableAudioFlag plays the height at the grid centre as audio.
	enableAudioFlag = flag.Bool("enable-audio", false, "play the height at the grid centre as audio")

	// disturbWAVFlag modulates disturbance magnitudes with a looping WAV file.
	disturbWAVFlag = flag.String("disturb-wav", "", "WAV file whose loudness scales disturbance magnitudes")

	// debugFlag enables the FPS and simulation overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and simulation overlay")

	// cpuProfileFlag records a CPU profile to the given path.
	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file")

	// profileDurationFlag bounds the CPU profile length.
	profileDurationFlag = flag.Duration("profile-duration", defaultProfileLength, "length of the CPU profile")
)

// applyFlagOverrides copies explicitly set flags into s.
func applyFlagOverrides(s *config.Settings) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			s.Execution.Mode = *modeFlag
		case "backend":
			s.Execution.Backend = *backendFlag
		case "workers":
			s.Execution.Workers = *workersFlag
		case "seed":
			s.Disturb.Seed = *seedFlag
		}
	})
}
