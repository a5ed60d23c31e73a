package gpu

// SetTrap replaces the breakpoint raised under PolicyTrap.
func SetTrap(d *Device, fn func()) {
	d.trap = fn
}
