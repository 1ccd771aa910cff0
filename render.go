package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw renders the current height field, one pixel per vertex, and the
// optional debug overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.vertices = g.sim.Vertices(g.vertices)
	n := len(g.vertices)
	if len(g.pixels) != n*4 {
		g.pixels = make([]byte, n*4)
	}
	scale := g.settings.Viewer.HeightScale
	for i, v := range g.vertices {
		r, gr, b := heightColor(v.Pos.Y() / scale)
		base := i * 4
		g.pixels[base] = r
		g.pixels[base+1] = gr
		g.pixels[base+2] = b
		g.pixels[base+3] = 255
	}
	screen.WritePixels(g.pixels)

	if *debugFlag {
		g.drawOverlay(screen)
	}
}

// heightColor maps a normalized height to water tones: crests brighten
// towards white, troughs darken towards navy.
func heightColor(v float32) (byte, byte, byte) {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	const r0, g0, b0 = 24, 70, 140
	if v >= 0 {
		return byte(r0 + v*(255-r0)), byte(g0 + v*(255-g0)), byte(b0 + v*(255-b0))
	}
	f := 1 + v
	return byte(r0 * f), byte(g0 * f), byte(40 + (b0-40)*f)
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	simMS := g.lastSimDuration.Seconds() * 1000
	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nMode: %s (C/G)  Parallel: %s\nSim: %.2f ms  Time x%.3g (+/-)\nHeight min %.3f max %.3f rms %.4f",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		g.sim.Mode(), g.exec.Name(),
		simMS, g.timeScale,
		g.stats.Min, g.stats.Max, g.stats.RMS)
	if g.paused {
		msg += "\nPAUSED (P)"
	}
	if g.verifier != nil {
		msg += fmt.Sprintf("\nPath mismatches: %d", g.verifier.mismatches)
	}
	if g.server != nil {
		msg += fmt.Sprintf("\nStream clients: %d", g.server.ClientCount())
	}
	ebitenutil.DebugPrint(screen, msg)
}

// Layout reports one logical pixel per grid vertex.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.sim.ColumnCount(), g.sim.RowCount()
}
