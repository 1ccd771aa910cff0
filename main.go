package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/multierr"

	"github.com/prog3487/ComputeWave/config"
)

func main() {
	flag.Parse()

	settings, found, err := config.Load(*configPathFlag)
	if err != nil {
		log.Fatalf("Loading settings: %v", err)
	}
	if found {
		log.Printf("Loaded settings from %s", *configPathFlag)
	}
	applyFlagOverrides(&settings)
	if err := settings.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}
	if settings.Disturb.Seed == 0 {
		settings.Disturb.Seed = time.Now().UnixNano()
	}

	stopProfile := func() {}
	if *cpuProfileFlag != "" {
		stop, err := startCPUProfile(*cpuProfileFlag)
		if err != nil {
			log.Fatalf("Starting CPU profile: %v", err)
		}
		stopProfile = stop
		time.AfterFunc(*profileDurationFlag, stop)
		log.Printf("Recording CPU profile to %s for %s", *cpuProfileFlag, *profileDurationFlag)
	}

	g, err := newGame(settings)
	if err != nil {
		log.Fatalf("Initializing simulation: %v", err)
	}

	grid := settings.Grid
	ebiten.SetWindowSize(grid.Cols*settings.Viewer.Scale, grid.Rows*settings.Viewer.Scale)
	ebiten.SetWindowTitle("Compute Wave")
	ebiten.SetTPS(defaultTPS)

	runErr := ebiten.RunGame(g)
	stopProfile()
	if err := multierr.Append(runErr, g.Close()); err != nil {
		log.Fatalf("Exiting: %v", err)
	}
}
