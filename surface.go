package daybreak

import "log/slog"

// SurfaceContext owns the presentation surface of a window. It must be
// destroyed after the device and before the instance.
type SurfaceContext struct {
	instance *InstanceContext
	handle   SurfaceHandle
	logger   *slog.Logger
}

// NewSurfaceContext creates a surface bound to window. A nil window
// yields a nil context, which selection treats as headless.
func NewSurfaceContext(instance *InstanceContext, window Window) (*SurfaceContext, error) {
	if window == nil {
		instance.logger.Info("no window supplied, bootstrapping without a surface")
		return nil, nil
	}
	handle, err := instance.driver.CreateSurface(instance.handle, window.Native())
	if err != nil {
		return nil, newFailure(SurfaceCreationFailure, SurfaceCreated, err)
	}
	instance.logger.Info("initialized surface")
	return &SurfaceContext{instance: instance, handle: handle, logger: instance.logger}, nil
}

func (s *SurfaceContext) Handle() SurfaceHandle {
	if s == nil {
		return 0
	}
	return s.handle
}

// Destroy releases the surface. Calls after the first do nothing.
func (s *SurfaceContext) Destroy() {
	if s == nil || s.handle == 0 {
		return
	}
	s.instance.driver.DestroySurface(s.instance.handle, s.handle)
	s.handle = 0
	s.logger.Debug("destroyed surface")
}
