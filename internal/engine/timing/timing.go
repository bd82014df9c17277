// Package timing measures frame intervals and frames per second.
package timing

// Clock tracks frame timing from a millisecond counter.
type Clock struct {
	lastFrame  uint32
	lastSecond uint32
	frames     int
	fps        int
}

// NewClock starts a clock at now milliseconds.
func NewClock(now uint32) *Clock {
	return &Clock{lastFrame: now, lastSecond: now}
}

// Tick records a frame at now and returns the time since the previous frame
// in milliseconds. The FPS value is refreshed once more than a second has
// passed since the last refresh.
func (c *Clock) Tick(now uint32) float32 {
	interval := now - c.lastFrame
	c.lastFrame = now

	c.frames++
	if now-c.lastSecond > 1000 {
		c.lastSecond = now
		c.fps = c.frames
		c.frames = 0
	}
	return float32(interval)
}

// FPS returns the frame count of the last completed second.
func (c *Clock) FPS() int {
	return c.fps
}
