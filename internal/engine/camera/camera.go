// Package camera provides the look-at camera and its keyboard controller.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultEye is the starting camera position.
var DefaultEye = mgl32.Vec3{5, 3, 5}

// State is a camera looking from Eye at Target. The view matrix is
// recomputed whenever the eye moves.
type State struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	view mgl32.Mat4
}

// NewState creates a camera at eye looking at the origin with +Y up.
func NewState(eye mgl32.Vec3) *State {
	s := &State{
		Eye:    eye,
		Target: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
	}
	s.update()
	return s
}

// View returns the current view matrix.
func (s *State) View() mgl32.Mat4 {
	return s.view
}

// Translate moves the eye by delta and recomputes the view.
func (s *State) Translate(delta mgl32.Vec3) {
	s.Eye = s.Eye.Add(delta)
	s.update()
}

func (s *State) update() {
	s.view = mgl32.LookAtV(s.Eye, s.Target, s.Up)
}
