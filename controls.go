package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/prog3487/ComputeWave/waves"
)

// handleControls processes the keyboard and mouse bindings:
// C/G select the scalar or parallel path, P pauses, R reinitializes,
// F dumps the field, +/- change the time scale and a left click disturbs
// the field under the cursor.
func (g *Game) handleControls() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := g.setMode(waves.ModeScalar); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		if err := g.setMode(waves.ModeParallel); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reset(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.dumpHeights()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.adjustTimeScale(0.5)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.adjustTimeScale(2)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		col, row := ebiten.CursorPosition()
		if g.sim.Grid().CanDisturb(row, col) {
			return g.disturb(waves.Impulse{Row: row, Col: col, Magnitude: g.settings.Disturb.MaxMagnitude})
		}
	}
	return nil
}

// adjustTimeScale multiplies the time scale, clamped within bounds.
func (g *Game) adjustTimeScale(factor float64) {
	g.timeScale *= factor
	if g.timeScale < minTimeScale {
		g.timeScale = minTimeScale
	} else if g.timeScale > maxTimeScale {
		g.timeScale = maxTimeScale
	}
}

// dumpHeights writes the current field to the next numbered text file.
func (g *Game) dumpHeights() {
	g.dumpCount++
	path := fmt.Sprintf(dumpFilePattern, g.dumpCount)
	f, err := os.Create(path)
	if err != nil {
		log.Printf("Dumping heights: %v", err)
		return
	}
	err = waves.WriteHeights(f, g.sim.Heights(), g.sim.ColumnCount())
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Printf("Dumping heights to %s: %v", path, err)
		return
	}
	log.Printf("Dumped heights to %s", path)
}
