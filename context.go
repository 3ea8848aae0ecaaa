package daybreak

import (
	"fmt"
	"log/slog"
)

// State is a step of the bootstrap sequence. States are only ever
// entered forward, once each.
type State int

const (
	Uninitialized State = iota
	ValidatingLayers
	InstanceCreated
	DebugAttached
	SurfaceCreated
	AdapterSelected
	DeviceCreated
	Ready
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case ValidatingLayers:
		return "validating layers"
	case InstanceCreated:
		return "instance"
	case DebugAttached:
		return "debug messenger"
	case SurfaceCreated:
		return "surface"
	case AdapterSelected:
		return "physical device"
	case DeviceCreated:
		return "logical device"
	case Ready:
		return "ready"
	case Destroyed:
		return "destroyed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options configures a bootstrap.
type Options struct {
	Identity    ApplicationIdentity
	Requirement CapabilityRequirement
	// Extensions are the windowing-surface extensions of the platform.
	Extensions []string
	// Window is the presentation target. Nil bootstraps without a surface.
	Window Window
	// Layers overrides DefaultValidationLayers.
	Layers []string
	// Sink receives driver diagnostics. Defaults to Logger.
	Sink   DiagnosticSink
	Logger *slog.Logger

	// validation follows EnableValidation; tests flip it.
	validation *bool
}

func (o *Options) validationEnabled() bool {
	if o.validation != nil {
		return *o.validation
	}
	return EnableValidation
}

// BootstrapContext owns every bootstrap resource. Fields are declared in
// construction order; Destroy releases them in the reverse order.
type BootstrapContext struct {
	state  State
	logger *slog.Logger

	validation *ValidationLayer
	instance   *InstanceContext
	messenger  *DebugMessenger
	surface    *SurfaceContext
	selection  *AdapterSelection
	device     *LogicalDeviceContext
}

// NewBootstrap runs the bootstrap sequence. If any step fails, whatever
// was already built is torn down before the error is returned, so the
// caller never sees a partial context. The returned error names the
// failed step.
func NewBootstrap(driver Driver, opts Options) (*BootstrapContext, error) {
	b := &BootstrapContext{logger: loggerOrDefault(opts.Logger)}
	if err := b.build(driver, &opts); err != nil {
		// Reporting the failure is left to the caller; this only traces it.
		b.logger.Debug("bootstrap failed", slog.String("step", b.next().String()), slog.Any("error", err))
		b.Destroy()
		return nil, err
	}
	return b, nil
}

func (b *BootstrapContext) build(driver Driver, opts *Options) error {
	var err error
	layers := opts.Layers
	if layers == nil {
		layers = DefaultValidationLayers
	}

	if b.validation, err = NewValidationLayer(driver, layers, opts.validationEnabled(), b.logger); err != nil {
		return err
	}
	b.advance(ValidatingLayers)

	if b.instance, err = NewInstanceContext(driver, opts.Identity, opts.Extensions, b.validation, b.logger); err != nil {
		return err
	}
	b.advance(InstanceCreated)

	if b.messenger, err = AttachDebugMessenger(b.instance, b.validation, opts.Sink); err != nil {
		return err
	}
	b.advance(DebugAttached)

	if b.surface, err = NewSurfaceContext(b.instance, opts.Window); err != nil {
		return err
	}
	b.advance(SurfaceCreated)

	if b.selection, err = NewPhysicalDeviceSelector(b.instance, b.surface).Select(opts.Requirement); err != nil {
		return err
	}
	b.advance(AdapterSelected)

	if b.device, err = NewLogicalDeviceContext(b.instance, b.selection, opts.Requirement, b.validation); err != nil {
		return err
	}
	b.advance(DeviceCreated)

	b.advance(Ready)
	b.logger.Info("bootstrap ready", slog.String("device", b.selection.Properties.Name))
	return nil
}

func (b *BootstrapContext) next() State {
	return b.state + 1
}

func (b *BootstrapContext) advance(to State) {
	if to != b.next() {
		panic(fmt.Sprintf("bootstrap: invalid transition %s -> %s", b.state, to))
	}
	b.logger.Debug("bootstrap state", slog.String("state", to.String()))
	b.state = to
}

// Destroy releases the device, surface, debug messenger, instance and
// validation state, in that order. A second call is a no-op.
func (b *BootstrapContext) Destroy() {
	if b == nil || b.state == Destroyed {
		return
	}
	b.device.Destroy()
	b.device = nil
	// The adapter is borrowed from the instance.
	b.selection = nil
	b.surface.Destroy()
	b.surface = nil
	b.messenger.Destroy()
	b.messenger = nil
	b.instance.Destroy()
	b.instance = nil
	b.validation.Release()
	b.validation = nil
	b.state = Destroyed
	b.logger.Debug("bootstrap state", slog.String("state", Destroyed.String()))
}

func (b *BootstrapContext) State() State { return b.state }

// Instance returns the instance context, nil once destroyed.
func (b *BootstrapContext) Instance() *InstanceContext { return b.instance }

// Surface returns the surface context, nil when headless or destroyed.
func (b *BootstrapContext) Surface() *SurfaceContext { return b.surface }

// Selection returns the selected adapter and its queue resolution.
func (b *BootstrapContext) Selection() *AdapterSelection { return b.selection }

// Device returns the logical device handle.
func (b *BootstrapContext) Device() DeviceHandle {
	if b.device == nil {
		return 0
	}
	return b.device.Handle()
}

// GraphicsQueue returns the submission queue of the logical device.
func (b *BootstrapContext) GraphicsQueue() QueueHandle {
	if b.device == nil {
		return 0
	}
	return b.device.Queue()
}

// QueueFamily returns the family the graphics queue belongs to.
func (b *BootstrapContext) QueueFamily() uint32 {
	if b.device == nil {
		return 0
	}
	return b.device.QueueFamily()
}
