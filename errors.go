package daybreak

import (
	"fmt"

	"github.com/pkg/errors"
)

// FailureKind classifies a bootstrap failure. Every kind is fatal.
type FailureKind int

const (
	NoFailure FailureKind = iota
	MissingValidationLayer
	InstanceCreationFailure
	DebugMessengerFailure
	SurfaceCreationFailure
	NoSuitableAdapter
	DeviceCreationFailure
	WindowCreationFailure
)

func (k FailureKind) String() string {
	switch k {
	case MissingValidationLayer:
		return "missing validation layer"
	case InstanceCreationFailure:
		return "instance creation failure"
	case DebugMessengerFailure:
		return "debug messenger failure"
	case SurfaceCreationFailure:
		return "surface creation failure"
	case NoSuitableAdapter:
		return "no suitable adapter"
	case DeviceCreationFailure:
		return "device creation failure"
	case WindowCreationFailure:
		return "window creation failure"
	}
	return "no failure"
}

// BootstrapError reports the step that failed and the driver or
// platform error behind it.
type BootstrapError struct {
	Kind FailureKind
	// Step is the state the bootstrap was trying to reach.
	Step State
	// Name identifies the missing layer or extension, when there is one.
	Name string
	Err  error
}

func (e *BootstrapError) Error() string {
	msg := fmt.Sprintf("bootstrap: %s: %s", e.Step, e.Kind)
	if e.Name != "" {
		msg += fmt.Sprintf(" %q", e.Name)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BootstrapError) Unwrap() error { return e.Err }

// Cause lets errors.Cause reach the underlying driver error.
func (e *BootstrapError) Cause() error { return e.Err }

func newFailure(kind FailureKind, step State, err error) *BootstrapError {
	return &BootstrapError{Kind: kind, Step: step, Err: err}
}

// KindOf returns the failure kind carried by err, or NoFailure.
func KindOf(err error) FailureKind {
	var be *BootstrapError
	if errors.As(err, &be) {
		return be.Kind
	}
	return NoFailure
}

// ErrNoAdapters is returned when the driver reports no installed GPU.
var ErrNoAdapters = errors.New("no GPU with driver support installed")

// ErrNoSuitableAdapter is returned when no adapter satisfies the
// capability requirement.
var ErrNoSuitableAdapter = errors.New("failed to find a suitable GPU")
