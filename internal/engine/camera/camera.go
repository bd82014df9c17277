// Package camera provides the first-person fly camera used by the demo viewer.
package camera

import (
	"github.com/Faultbox/demo3ds/pkg/math"
)

// Camera is a free-flying camera defined by a position and a look-at point.
// Turning and movement requested between frames are applied by Update.
type Camera struct {
	Position math.Vec3
	LookAt   math.Vec3
	Up       math.Vec3

	// Speed is in world units per millisecond.
	Speed float32

	yawDelta   float32
	pitchDelta float32
	forward    int
	sidestep   int
}

// New creates a camera at pos looking towards lookAt with +Y up.
func New(pos, lookAt math.Vec3) *Camera {
	return &Camera{
		Position: pos,
		LookAt:   lookAt,
		Up:       math.Vec3{X: 0, Y: 1, Z: 0},
		Speed:    1,
	}
}

// View returns the unnormalized view vector.
func (c *Camera) View() math.Vec3 {
	return c.LookAt.Sub(c.Position)
}

// Turn accumulates yaw and pitch in radians for the next Update.
func (c *Camera) Turn(yaw, pitch float32) {
	c.yawDelta += yaw
	c.pitchDelta += pitch
}

// SetMovement sets the movement direction. Only the sign of each argument
// matters: forward > 0 moves along the view, sidestep > 0 strafes right.
func (c *Camera) SetMovement(forward, sidestep int) {
	c.forward = forward
	c.sidestep = sidestep
}

// Moving reports whether Update would translate the camera.
func (c *Camera) Moving() bool {
	return c.forward != 0 || c.sidestep != 0
}

// Update applies pending rotation and the current movement for a frame that
// lasted frameMS milliseconds.
func (c *Camera) Update(frameMS float32) {
	if c.pitchDelta != 0 {
		// Local X axis
		axis := c.View().Cross(c.Up).Normalize()
		c.rotate(c.pitchDelta, axis)
		c.pitchDelta = 0
	}
	if c.yawDelta != 0 {
		c.rotate(c.yawDelta, math.Vec3{X: 0, Y: 1, Z: 0})
		c.yawDelta = 0
	}

	speed := c.Speed * frameMS

	if c.sidestep != 0 {
		axis := c.View().Cross(c.Up).Normalize()
		d := math.Vec3{X: axis.X * speed, Z: axis.Z * speed}
		if c.sidestep < 0 {
			d = d.Neg()
		}
		c.Position = c.Position.Add(d)
		c.LookAt = c.LookAt.Add(d)
	}

	if c.forward != 0 {
		d := c.View().Normalize().Scale(speed)
		if c.forward < 0 {
			d = d.Neg()
		}
		c.Position = c.Position.Add(d)
		c.LookAt = c.LookAt.Add(d)
	}
}

// rotate turns the view direction around axis. The look-at point is reset
// to one unit in front of the camera.
func (c *Camera) rotate(angle float32, axis math.Vec3) {
	view := c.View().Normalize()
	view = math.Rotate(angle, axis).TransformVector(view).Normalize()
	c.LookAt = c.Position.Add(view)
}

// ViewMatrix returns the view matrix for this camera.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.LookAt, c.Up)
}
