package daybreak

import (
	"log/slog"
)

// InstanceContext owns the API instance. It is the last resource to be
// destroyed: every other instance-derived handle must be gone first.
type InstanceContext struct {
	driver     Driver
	handle     InstanceHandle
	identity   ApplicationIdentity
	extensions []string
	layers     []string
	logger     *slog.Logger
}

// NewInstanceContext creates the instance from identity, the platform
// extension list and, when validation is enabled, the debug extension
// and the validated layers.
func NewInstanceContext(driver Driver, identity ApplicationIdentity, platformExtensions []string,
	validation *ValidationLayer, logger *slog.Logger) (*InstanceContext, error) {

	logger = loggerOrDefault(logger)
	var debugExtensions []string
	if validation.Enabled() {
		debugExtensions = []string{DebugReportExtension}
	}
	extensions := mergeNames(platformExtensions, debugExtensions)

	// Hosts that cannot enumerate extensions still get a chance to
	// create the instance; the driver then reports what is missing.
	if available, err := driver.InstanceExtensions(); err != nil {
		logger.Warn("cannot enumerate instance extensions", slog.Any("error", err))
	} else if missing := missingNames(extensions, available); len(missing) > 0 {
		f := newFailure(InstanceCreationFailure, InstanceCreated, nil)
		f.Name = missing[0]
		return nil, f
	}

	info := &InstanceInfo{
		Identity:   identity,
		Extensions: extensions,
		Layers:     validation.Layers(),
	}
	handle, err := driver.CreateInstance(info)
	if err != nil {
		return nil, newFailure(InstanceCreationFailure, InstanceCreated, err)
	}
	logger.Info("initialized instance",
		slog.String("identity", identity.String()),
		slog.Any("extensions", extensions),
		slog.Int("layers", len(info.Layers)))

	return &InstanceContext{
		driver:     driver,
		handle:     handle,
		identity:   identity,
		extensions: extensions,
		layers:     info.Layers,
		logger:     logger,
	}, nil
}

func (i *InstanceContext) Handle() InstanceHandle { return i.handle }

func (i *InstanceContext) Driver() Driver { return i.driver }

func (i *InstanceContext) Identity() ApplicationIdentity { return i.identity }

// Extensions returns the extensions the instance was created with.
func (i *InstanceContext) Extensions() []string {
	return append([]string(nil), i.extensions...)
}

// Destroy releases the instance. Calls after the first do nothing.
func (i *InstanceContext) Destroy() {
	if i == nil || i.handle == 0 {
		return
	}
	i.driver.DestroyInstance(i.handle)
	i.handle = 0
	i.logger.Debug("destroyed instance")
}
