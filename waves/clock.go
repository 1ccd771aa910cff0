package waves

// stepClock accumulates elapsed time until a full simulation step is due.
type stepClock struct {
	t  float32
	dt float32
}

// advance adds elapsed and reports whether a step is due.
func (c *stepClock) advance(elapsed float32) bool {
	c.t += elapsed
	return c.t >= c.dt
}

// reset discards the accumulated time, including any remainder past dt.
func (c *stepClock) reset() { c.t = 0 }
