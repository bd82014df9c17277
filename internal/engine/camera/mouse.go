package camera

// MouseLook converts relative mouse motion into camera turns.
type MouseLook struct {
	Sensitivity float32
	Yaw         float32 // radians per count
	Pitch       float32 // radians per count
	// Filter averages each sample with the previous one.
	Filter bool

	oldX, oldY float32
}

// NewMouseLook returns mouse look settings with the usual defaults.
func NewMouseLook() *MouseLook {
	return &MouseLook{Sensitivity: 0.5, Yaw: 0.022, Pitch: 0.022}
}

// Apply turns cam by the motion (dx, dy) accumulated over one frame.
// Moving the mouse right turns right. Pitch is inverted: moving it down
// looks up.
func (m *MouseLook) Apply(cam *Camera, dx, dy float32) {
	if m.Filter {
		dx = (dx + m.oldX) * 0.5
		dy = (dy + m.oldY) * 0.5
	}
	m.oldX, m.oldY = dx, dy

	dx *= m.Sensitivity
	dy *= m.Sensitivity
	cam.Turn(-m.Yaw*dx, m.Pitch*dy)
}

// Controls is the set of movement keys currently held.
type Controls struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
}

// Axes returns the forward and sidestep directions for SetMovement.
// Opposing keys cancel out.
func (c Controls) Axes() (forward, sidestep int) {
	if c.Forward {
		forward++
	}
	if c.Back {
		forward--
	}
	if c.Right {
		sidestep++
	}
	if c.Left {
		sidestep--
	}
	return forward, sidestep
}
