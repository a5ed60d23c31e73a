package input

import "testing"

func TestPress(t *testing.T) {
	ev := Press(KeyD)
	if ev.Type != EventKey || ev.Key != KeyD || ev.Action != ActionPress {
		t.Errorf("Press(KeyD) = %+v", ev)
	}
}

func TestStrings(t *testing.T) {
	if s := KeyLeftControl.String(); s != "LeftControl" {
		t.Errorf("KeyLeftControl.String() = %q", s)
	}
	if s := Key(99).String(); s != "Key(99)" {
		t.Errorf("Key(99).String() = %q", s)
	}
	if s := ActionRepeat.String(); s != "repeat" {
		t.Errorf("ActionRepeat.String() = %q", s)
	}
}
