// Package input defines window-system independent input events.
package input

import "fmt"

// Key identifies a keyboard key the viewer reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyLeftControl
	KeyW
	KeyA
	KeyS
	KeyD
)

var keyNames = map[Key]string{
	KeyUnknown:     "Unknown",
	KeyEscape:      "Escape",
	KeySpace:       "Space",
	KeyLeftControl: "LeftControl",
	KeyW:           "W",
	KeyA:           "A",
	KeyS:           "S",
	KeyD:           "D",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Action is the transition a key event reports.
type Action int

const (
	ActionPress Action = iota
	ActionRepeat
	ActionRelease
)

func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRepeat:
		return "repeat"
	case ActionRelease:
		return "release"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// EventType distinguishes event kinds.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventKey
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Action Action
}

// Press returns a key press event.
func Press(k Key) Event {
	return Event{Type: EventKey, Key: k, Action: ActionPress}
}
