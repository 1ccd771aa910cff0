package main

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/multierr"

	"github.com/prog3487/ComputeWave/config"
	"github.com/prog3487/ComputeWave/waves"
)

// Game drives the wave simulation once per ebiten tick and presents the
// resulting height field.
type Game struct {
	settings  config.Settings
	sim       *waves.Simulation
	exec      waves.Executor
	disturber *waves.Disturber
	verifier  *pathVerifier
	server    *heightServer

	lastUpdate      time.Time
	timeScale       float64
	paused          bool
	lastSimDuration time.Duration
	stats           waves.Stats
	dumpCount       int

	vertices []waves.Vertex
	pixels   []byte

	probe       int
	audioCtx    *audio.Context
	audioStream *probeAudioStream
	audioPlayer *audio.Player
}

// newGame builds the simulation and every optional consumer requested by
// the flags.
func newGame(s config.Settings) (*Game, error) {
	mode, err := waves.ParseMode(s.Execution.Mode)
	if err != nil {
		return nil, err
	}
	exec := newExecutor(s.Execution)
	g := &Game{
		settings:  s,
		exec:      exec,
		sim:       waves.NewSimulation(exec),
		disturber: newDisturber(s.Disturb),
		timeScale: 1,
	}
	if err := g.initSimulation(); err != nil {
		return nil, err
	}
	if err := g.sim.SetMode(mode); err != nil {
		return nil, err
	}
	log.Printf("Simulation %dx%d, mode %s, parallel backend %s",
		s.Grid.Rows, s.Grid.Cols, mode, exec.Name())

	if *verifyPathsFlag {
		if g.verifier, err = newPathVerifier(g.sim, exec); err != nil {
			return nil, err
		}
		log.Printf("Verifying %s against %s", mode, g.verifier.shadow.Mode())
	}
	if *disturbWAVFlag != "" {
		src, err := newWAVMagnitudeSource(*disturbWAVFlag, audioSampleRate, s.Disturb.PeriodSeconds)
		if err != nil {
			return nil, err
		}
		g.disturber.Source = src
		log.Printf("Disturbance magnitudes follow %s", *disturbWAVFlag)
	}
	if *serveFlag != "" {
		interval := time.Duration(s.Server.UpdateIntervalMs) * time.Millisecond
		g.server = newHeightServer(interval)
		g.server.SetMesh(g.sim)
		if err := g.server.Start(*serveFlag); err != nil {
			return nil, err
		}
		log.Printf("Streaming heights on ws://%s/ws", *serveFlag)
	}
	if *enableAudioFlag {
		g.startAudio()
	}
	return g, nil
}

// newExecutor returns the configured parallel backend, falling back to
// goroutines when OpenCL cannot be initialized.
func newExecutor(s config.ExecutionSettings) waves.Executor {
	if s.Backend == "opencl" {
		exec, err := waves.NewOpenCLExecutor()
		if err == nil {
			return exec
		}
		log.Printf("OpenCL initialization failed, using goroutines: %v", err)
	}
	return waves.NewPoolExecutor(s.Workers)
}

func newDisturber(s config.DisturbSettings) *waves.Disturber {
	d := waves.NewDisturber(s.Seed)
	d.Period = s.PeriodSeconds
	d.MinMagnitude = s.MinMagnitude
	d.MaxMagnitude = s.MaxMagnitude
	d.Margin = s.Margin
	return d
}

// initSimulation (re)initializes the grid from the settings.
func (g *Game) initSimulation() error {
	p := g.settings.Grid
	if err := g.sim.Init(p.Rows, p.Cols, p.DX, p.DT, p.Speed, p.Damping); err != nil {
		return err
	}
	g.probe = g.sim.Grid().Index(p.Rows/2, p.Cols/2)
	g.stats = waves.Stats{}
	return nil
}

// reset reinitializes the simulation and every consumer tied to its size.
func (g *Game) reset() error {
	if err := g.initSimulation(); err != nil {
		return err
	}
	if g.verifier != nil {
		if err := g.verifier.reset(g.sim); err != nil {
			return err
		}
	}
	if g.server != nil {
		g.server.SetMesh(g.sim)
	}
	log.Printf("Simulation reinitialized")
	return nil
}

func (g *Game) startAudio() {
	g.audioCtx = audio.NewContext(audioSampleRate)
	g.audioStream = newProbeAudioStream()
	player, err := g.audioCtx.NewPlayer(g.audioStream)
	if err != nil {
		log.Printf("Audio player creation failed: %v", err)
		return
	}
	g.audioPlayer = player
	g.audioPlayer.SetBufferSize(audioPlayerLatency)
	g.audioPlayer.Play()
}

// Update advances the simulation by the wall time since the last call and
// hands the new field to the consumers.
func (g *Game) Update() error {
	now := time.Now()
	if g.lastUpdate.IsZero() {
		g.lastUpdate = now
	}
	elapsed := now.Sub(g.lastUpdate).Seconds() * g.timeScale
	g.lastUpdate = now

	if err := g.handleControls(); err != nil {
		return err
	}
	if g.paused {
		return nil
	}

	simStart := time.Now()
	if err := g.tick(elapsed); err != nil {
		return err
	}
	g.lastSimDuration = time.Since(simStart)

	heights := g.sim.Heights()
	g.stats = waves.Summarize(heights)
	if g.audioStream != nil {
		g.audioStream.SetSample(heights[g.probe])
	}
	if g.server != nil {
		g.server.Publish(g.sim)
	}
	return nil
}

// Close stops every consumer and releases the executor.
func (g *Game) Close() error {
	var err error
	if g.audioPlayer != nil {
		err = multierr.Append(err, g.audioPlayer.Close())
	}
	if g.server != nil {
		err = multierr.Append(err, g.server.Close())
	}
	return multierr.Append(err, g.exec.Close())
}
