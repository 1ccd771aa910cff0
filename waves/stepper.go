// Package waves simulates a 2-D height field with an explicit finite
// difference scheme, stepped either sequentially or through a data-parallel
// executor.
package waves

// Impulse is a point disturbance: magnitude is added at (Row, Col) and half
// of it at each of the four axis neighbours.
type Impulse struct {
	Row, Col  int
	Magnitude float32
}

// Stepper advances a height field one fixed step at a time.
//
// Heights returns the current buffer. It is only valid until the next Step
// or Disturb call and must not be retained or modified.
type Stepper interface {
	Step(elapsed float32) error
	Disturb(row, col int, magnitude float32) error
	Heights() []float32
	Name() string
}
