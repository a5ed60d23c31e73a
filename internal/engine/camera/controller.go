package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glscene/internal/engine/input"
)

// DefaultStep is how far one key press moves the eye.
const DefaultStep = 0.5

// Effect is what a key event did.
type Effect int

const (
	EffectNone Effect = iota
	EffectMoved
	EffectClose
)

// Controller maps key presses to eye movements.
type Controller struct {
	Step float32

	bindings map[input.Key]mgl32.Vec3
}

// NewController creates a controller with the default bindings:
// Space/LeftControl move along Y, S/W along Z, D/A along X.
func NewController(step float32) *Controller {
	return &Controller{
		Step: step,
		bindings: map[input.Key]mgl32.Vec3{
			input.KeySpace:       {0, 1, 0},
			input.KeyLeftControl: {0, -1, 0},
			input.KeyW:           {0, 0, -1},
			input.KeyS:           {0, 0, 1},
			input.KeyA:           {-1, 0, 0},
			input.KeyD:           {1, 0, 0},
		},
	}
}

// HandleKey applies a key event to state. Only presses act; repeats and
// releases are ignored.
func (c *Controller) HandleKey(state *State, ev input.Event) Effect {
	if ev.Type != input.EventKey || ev.Action != input.ActionPress {
		return EffectNone
	}
	if ev.Key == input.KeyEscape {
		return EffectClose
	}

	dir, ok := c.bindings[ev.Key]
	if !ok {
		return EffectNone
	}
	state.Translate(dir.Mul(c.Step))
	return EffectMoved
}
