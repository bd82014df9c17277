package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/demo3ds/pkg/math"
)

const eps = 1e-4

func near(a, b math.Vec3) bool {
	return a.Distance(b) < eps
}

func TestNew(t *testing.T) {
	c := New(math.Vec3{}, math.Vec3{X: 1})
	if c.Up != (math.Vec3{Y: 1}) {
		t.Errorf("Up = %v, want +Y", c.Up)
	}
	if c.Speed != 1 {
		t.Errorf("Speed = %g, want 1", c.Speed)
	}
	if c.Moving() {
		t.Error("new camera should not be moving")
	}
}

func TestYaw(t *testing.T) {
	c := New(math.Vec3{X: 5, Y: 1, Z: 2}, math.Vec3{X: 6, Y: 1, Z: 2})

	// A negative yaw turns from +X towards +Z (to the right)
	c.Turn(-gomath.Pi/2, 0)
	c.Update(0)

	if !near(c.View(), math.Vec3{Z: 1}) {
		t.Errorf("view after yaw = %v, want +Z", c.View())
	}
	if c.Position != (math.Vec3{X: 5, Y: 1, Z: 2}) {
		t.Errorf("yaw moved position to %v", c.Position)
	}

	// Deltas are consumed
	c.Update(0)
	if !near(c.View(), math.Vec3{Z: 1}) {
		t.Errorf("second update rotated again: %v", c.View())
	}
}

func TestPitch(t *testing.T) {
	c := New(math.Vec3{}, math.Vec3{X: 1})
	c.Turn(0, gomath.Pi/4)
	c.Update(0)

	s := float32(gomath.Sqrt2 / 2)
	if !near(c.View(), math.Vec3{X: s, Y: s}) {
		t.Errorf("view after pitch = %v, want (%g, %g, 0)", c.View(), s, s)
	}
}

func TestLookAtStaysUnitDistance(t *testing.T) {
	c := New(math.Vec3{}, math.Vec3{X: 10})
	c.Turn(0.3, 0.2)
	c.Update(0)

	if l := c.View().Length(); gomath.Abs(float64(l-1)) > eps {
		t.Errorf("look-at distance = %g, want 1", l)
	}
}

func TestMovement(t *testing.T) {
	tests := []struct {
		name              string
		forward, sidestep int
		frameMS           float32
		want              math.Vec3
	}{
		{"forward", 1, 0, 10, math.Vec3{X: 10}},
		{"backward", -1, 0, 10, math.Vec3{X: -10}},
		{"strafe right", 0, 1, 5, math.Vec3{Z: 5}},
		{"strafe left", 0, -1, 5, math.Vec3{Z: -5}},
		{"magnitude ignored", 3, 0, 2, math.Vec3{X: 2}},
		{"zero frame", 1, 1, 0, math.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(math.Vec3{}, math.Vec3{X: 1})
			c.SetMovement(tt.forward, tt.sidestep)
			c.Update(tt.frameMS)

			if !near(c.Position, tt.want) {
				t.Errorf("position = %v, want %v", c.Position, tt.want)
			}
			if !near(c.View(), math.Vec3{X: 1}) {
				t.Errorf("movement changed view to %v", c.View())
			}
		})
	}
}

func TestForwardFollowsPitch(t *testing.T) {
	c := New(math.Vec3{}, math.Vec3{X: 1, Y: 1})
	c.SetMovement(1, 0)
	c.Update(float32(gomath.Sqrt2))

	if !near(c.Position, math.Vec3{X: 1, Y: 1}) {
		t.Errorf("position = %v, want (1, 1, 0)", c.Position)
	}
}

func TestStrafeStaysLevel(t *testing.T) {
	c := New(math.Vec3{}, math.Vec3{X: 1, Y: 1})
	c.SetMovement(0, 1)
	c.Update(1)

	if c.Position.Y != 0 {
		t.Errorf("strafe changed height: %v", c.Position)
	}
}

func TestSpeed(t *testing.T) {
	c := New(math.Vec3{}, math.Vec3{X: 1})
	c.Speed = 0.5
	c.SetMovement(1, 0)
	c.Update(8)

	if !near(c.Position, math.Vec3{X: 4}) {
		t.Errorf("position = %v, want (4, 0, 0)", c.Position)
	}
}

func TestViewMatrix(t *testing.T) {
	c := New(math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{X: 2, Y: 2, Z: 3})
	m := c.ViewMatrix()

	if p := m.TransformPoint(c.Position); p.Length() > eps {
		t.Errorf("eye in view space = %v, want origin", p)
	}
	// The look-at point lies on -Z in view space
	if p := m.TransformPoint(c.LookAt); !near(p, math.Vec3{Z: -1}) {
		t.Errorf("look-at in view space = %v, want (0, 0, -1)", p)
	}
}

func TestMouseLook(t *testing.T) {
	m := NewMouseLook()
	c := New(math.Vec3{}, math.Vec3{X: 1})

	m.Apply(c, 10, -4)
	wantYaw := float32(-0.022 * 10 * 0.5)
	wantPitch := float32(0.022 * -4 * 0.5)
	if gomath.Abs(float64(c.yawDelta-wantYaw)) > 1e-6 {
		t.Errorf("yaw delta = %g, want %g", c.yawDelta, wantYaw)
	}
	if gomath.Abs(float64(c.pitchDelta-wantPitch)) > 1e-6 {
		t.Errorf("pitch delta = %g, want %g", c.pitchDelta, wantPitch)
	}
}

func TestMouseLookFilter(t *testing.T) {
	m := NewMouseLook()
	m.Filter = true
	m.Sensitivity = 1
	m.Yaw = 1
	c := New(math.Vec3{}, math.Vec3{X: 1})

	m.Apply(c, 10, 0) // averaged with zero
	if c.yawDelta != -5 {
		t.Fatalf("first filtered yaw = %g, want -5", c.yawDelta)
	}
	c.yawDelta = 0

	m.Apply(c, 10, 0) // averaged with previous filtered sample
	if c.yawDelta != -7.5 {
		t.Errorf("second filtered yaw = %g, want -7.5", c.yawDelta)
	}
}

func TestControlsAxes(t *testing.T) {
	tests := []struct {
		name              string
		c                 Controls
		forward, sidestep int
	}{
		{"none", Controls{}, 0, 0},
		{"forward", Controls{Forward: true}, 1, 0},
		{"back left", Controls{Back: true, Left: true}, -1, -1},
		{"right", Controls{Right: true}, 0, 1},
		{"opposing", Controls{Forward: true, Back: true, Left: true, Right: true}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, s := tt.c.Axes()
			if f != tt.forward || s != tt.sidestep {
				t.Errorf("Axes() = (%d, %d), want (%d, %d)", f, s, tt.forward, tt.sidestep)
			}
		})
	}
}
