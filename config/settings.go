// Package config loads the simulation settings file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/multierr"

	"github.com/prog3487/ComputeWave/waves"
)

type Settings struct {
	Grid      GridSettings      `json:"grid"`
	Disturb   DisturbSettings   `json:"disturb"`
	Execution ExecutionSettings `json:"execution"`
	Viewer    ViewerSettings    `json:"viewer"`
	Server    ServerSettings    `json:"server"`
}

// GridSettings are the arguments of Simulation.Init.
type GridSettings struct {
	Rows    int     `json:"rows"`
	Cols    int     `json:"cols"`
	DX      float32 `json:"dx"`
	DT      float32 `json:"dt"`
	Speed   float32 `json:"speed"`
	Damping float32 `json:"damping"`
}

type DisturbSettings struct {
	PeriodSeconds float64 `json:"periodSeconds"`
	MinMagnitude  float32 `json:"minMagnitude"`
	MaxMagnitude  float32 `json:"maxMagnitude"`
	Margin        int     `json:"margin"`
	Seed          int64   `json:"seed"`
}

type ExecutionSettings struct {
	// Mode is "scalar" or "parallel".
	Mode string `json:"mode"`
	// Backend is "goroutines" or "opencl".
	Backend string `json:"backend"`
	Workers int    `json:"workers"`
}

type ViewerSettings struct {
	Scale int `json:"scale"`
	// HeightScale maps a height of ±HeightScale to full intensity.
	HeightScale float32 `json:"heightScale"`
}

type ServerSettings struct {
	UpdateIntervalMs int `json:"updateIntervalMs"`
}

// Default returns the settings of the reference scene.
func Default() Settings {
	return Settings{
		Grid: GridSettings{
			Rows:    200,
			Cols:    200,
			DX:      0.8,
			DT:      0.03,
			Speed:   3.25,
			Damping: 0.4,
		},
		Disturb: DisturbSettings{
			PeriodSeconds: waves.DefaultDisturbPeriod,
			MinMagnitude:  waves.DefaultMinMagnitude,
			MaxMagnitude:  waves.DefaultMaxMagnitude,
			Margin:        waves.DefaultDisturbMargin,
		},
		Execution: ExecutionSettings{
			Mode:    "scalar",
			Backend: "goroutines",
			Workers: runtime.NumCPU(),
		},
		Viewer: ViewerSettings{
			Scale:       3,
			HeightScale: 1,
		},
		Server: ServerSettings{
			UpdateIntervalMs: 100,
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults and
// found == false.
func Load(path string) (s Settings, found bool, err error) {
	s = Default()
	if path == "" {
		return s, false, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, false, nil
		}
		return s, false, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&s); err != nil {
		return s, true, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, true, s.Validate()
}

// Validate reports every invalid field at once.
func (s Settings) Validate() error {
	var err error
	g := s.Grid
	if g.Rows < waves.MinGridSize || g.Cols < waves.MinGridSize {
		err = multierr.Append(err, fmt.Errorf("grid: %dx%d is smaller than %dx%d", g.Rows, g.Cols, waves.MinGridSize, waves.MinGridSize))
	}
	if g.DX <= 0 {
		err = multierr.Append(err, fmt.Errorf("grid: dx must be positive, got %g", g.DX))
	}
	if g.DT <= 0 {
		err = multierr.Append(err, fmt.Errorf("grid: dt must be positive, got %g", g.DT))
	}
	d := s.Disturb
	if d.PeriodSeconds <= 0 {
		err = multierr.Append(err, fmt.Errorf("disturb: periodSeconds must be positive, got %g", d.PeriodSeconds))
	}
	if d.MaxMagnitude < d.MinMagnitude {
		err = multierr.Append(err, fmt.Errorf("disturb: maxMagnitude %g below minMagnitude %g", d.MaxMagnitude, d.MinMagnitude))
	}
	if d.Margin < 0 {
		err = multierr.Append(err, fmt.Errorf("disturb: negative margin %d", d.Margin))
	}
	if _, perr := waves.ParseMode(s.Execution.Mode); perr != nil {
		err = multierr.Append(err, fmt.Errorf("execution: %w", perr))
	}
	switch s.Execution.Backend {
	case "goroutines", "opencl":
	default:
		err = multierr.Append(err, fmt.Errorf("execution: unknown backend %q", s.Execution.Backend))
	}
	if s.Viewer.Scale < 1 {
		err = multierr.Append(err, fmt.Errorf("viewer: scale must be at least 1, got %d", s.Viewer.Scale))
	}
	if s.Viewer.HeightScale <= 0 {
		err = multierr.Append(err, fmt.Errorf("viewer: heightScale must be positive, got %g", s.Viewer.HeightScale))
	}
	if s.Server.UpdateIntervalMs < 0 {
		err = multierr.Append(err, fmt.Errorf("server: negative updateIntervalMs %d", s.Server.UpdateIntervalMs))
	}
	return err
}
