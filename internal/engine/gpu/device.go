package gpu

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// maxDrain bounds how many error flags are read per drain. A lost context
// can keep returning an error forever.
const maxDrain = 32

// Policy selects what a Device does after logging a failed call.
type Policy int

const (
	// PolicyLog logs the failure and lets the caller continue.
	PolicyLog Policy = iota
	// PolicyTrap logs the failure and raises a debugger breakpoint.
	PolicyTrap
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyLog:
		return "log"
	case PolicyTrap:
		return "trap"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Result describes the outcome of one checked GL call.
type Result struct {
	Call  string
	File  string
	Line  int
	Codes []uint32
}

// OK reports whether the call left no error flags set.
func (r Result) OK() bool {
	return len(r.Codes) == 0
}

// Err returns a *CallError for a failed call, or nil.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &CallError{Result: r}
}

// CallError is returned for a GL call that raised one or more error flags.
type CallError struct {
	Result
}

func (e *CallError) Error() string {
	names := make([]string, len(e.Codes))
	for i, code := range e.Codes {
		names[i] = fmt.Sprintf("0x%04X %s", code, ErrorName(code))
	}
	return fmt.Sprintf("%s at %s:%d: %s", e.Call, filepath.Base(e.File), e.Line, strings.Join(names, ", "))
}

// Device wraps an API and checks the driver error flag around every call.
type Device struct {
	GL API

	policy Policy
	log    *zap.Logger
	trap   func()

	failures int
}

// NewDevice creates a device around api. A nil logger disables logging.
func NewDevice(api API, policy Policy, log *zap.Logger) *Device {
	if log == nil {
		log = zap.NewNop()
	}
	return &Device{
		GL:     api,
		policy: policy,
		log:    log,
		trap:   runtime.Breakpoint,
	}
}

// Logger returns the device logger.
func (d *Device) Logger() *zap.Logger {
	return d.log
}

// Policy returns the failure policy.
func (d *Device) Policy() Policy {
	return d.policy
}

// Failures returns the number of failed calls seen so far.
func (d *Device) Failures() int {
	return d.failures
}

// Call runs fn as the GL call named call and reports any error flags it set.
func (d *Device) Call(call string, fn func()) Result {
	return d.do(2, call, fn)
}

// Value runs fn as a GL call that returns a value.
func Value[T any](d *Device, call string, fn func() T) (T, Result) {
	var v T
	r := d.do(2, call, func() { v = fn() })
	return v, r
}

func (d *Device) do(skip int, call string, fn func()) Result {
	d.drain()
	fn()

	r := Result{Call: call, Codes: d.drain()}
	if r.OK() {
		return r
	}

	_, r.File, r.Line, _ = runtime.Caller(skip)
	d.report(r)
	return r
}

// drain reads pending error flags until the driver reports none.
func (d *Device) drain() []uint32 {
	var codes []uint32
	for i := 0; i < maxDrain; i++ {
		code := d.GL.GetError()
		if code == NoError {
			break
		}
		codes = append(codes, code)
	}
	return codes
}

func (d *Device) report(r Result) {
	d.failures++
	for _, code := range r.Codes {
		d.log.Error("OpenGL error",
			zap.String("call", r.Call),
			zap.String("file", filepath.Base(r.File)),
			zap.Int("line", r.Line),
			zap.Uint32("code", code),
			zap.String("name", ErrorName(code)),
		)
	}
	if d.policy == PolicyTrap {
		d.trap()
	}
}
