// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/demo3ds/internal/engine/camera"
)

// Event types for demo use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	DX     int
	DY     int
}

// Movement keys, ESDF layout.
var (
	KeyForward sdl.Scancode = sdl.SCANCODE_E
	KeyBack    sdl.Scancode = sdl.SCANCODE_D
	KeyLeft    sdl.Scancode = sdl.SCANCODE_S
	KeyRight   sdl.Scancode = sdl.SCANCODE_F
	KeyQuit    sdl.Scancode = sdl.SCANCODE_ESCAPE
)

// Input handles all input processing.
type Input struct {
	events []Event
	held   map[sdl.Scancode]bool

	mouseX, mouseY int
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events. Returns true if the demo should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.mouseX, i.mouseY = 0, 0
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			code := e.Keysym.Scancode
			if e.Type == sdl.KEYDOWN {
				i.held[code] = true
				if e.Repeat == 0 {
					i.events = append(i.events, Event{Type: EventKeyDown, Key: code})
				}
				if code == KeyQuit {
					quit = true
				}
			} else if e.Type == sdl.KEYUP {
				delete(i.held, code)
				i.events = append(i.events, Event{Type: EventKeyUp, Key: code})
			}

		case *sdl.MouseMotionEvent:
			i.mouseX += int(e.XRel)
			i.mouseY += int(e.YRel)
			i.events = append(i.events, Event{
				Type: EventMouseMove,
				DX:   int(e.XRel),
				DY:   int(e.YRel),
			})
		}
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyHeld reports whether a key is currently down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// MouseMotion returns the relative mouse motion accumulated by the last Update.
func (i *Input) MouseMotion() (dx, dy int) {
	return i.mouseX, i.mouseY
}

// Controls returns the movement keys currently held.
func (i *Input) Controls() camera.Controls {
	return camera.Controls{
		Forward: i.held[KeyForward],
		Back:    i.held[KeyBack],
		Left:    i.held[KeyLeft],
		Right:   i.held[KeyRight],
	}
}
