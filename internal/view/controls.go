package view

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/smasonuk/sieroom"
)

const (
	// dragRadians is how far one pixel of drag turns the camera.
	dragRadians = 1.0 / 200
	// wheelStep scales the orbit distance per wheel notch.
	wheelStep = 0.9
)

// Input is the pointer state for one frame.
type Input struct {
	X, Y     int
	Pressed  bool
	Released bool
	Held     bool
	Wheel    float64
}

// ReadInput samples ebiten's mouse state.
func ReadInput() Input {
	x, y := ebiten.CursorPosition()
	_, wheel := ebiten.Wheel()
	return Input{
		X:        x,
		Y:        y,
		Pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		Held:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Wheel:    wheel,
	}
}

// Controls orbits a camera around its target: left drag turns it and the
// wheel moves it in and out.
type Controls struct {
	dragging     bool
	lastX, lastY int
}

// Update applies one frame of input to cam and reports whether it moved.
func (c *Controls) Update(cam *sieroom.Camera, in Input) bool {
	moved := false

	if in.Pressed {
		c.dragging = true
		c.lastX, c.lastY = in.X, in.Y
	}
	if c.dragging && in.Held {
		dx, dy := in.X-c.lastX, in.Y-c.lastY
		if dx != 0 || dy != 0 {
			cam.Orbit(-float64(dx)*dragRadians, float64(dy)*dragRadians)
			moved = true
		}
		c.lastX, c.lastY = in.X, in.Y
	}
	if in.Released || !in.Held {
		c.dragging = false
	}

	if in.Wheel != 0 {
		factor := wheelStep
		if in.Wheel < 0 {
			factor = 1 / wheelStep
		}
		cam.Dolly(factor)
		moved = true
	}
	return moved
}
