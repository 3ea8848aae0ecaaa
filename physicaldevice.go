package daybreak

import (
	"log/slog"

	"github.com/pkg/errors"
)

// AdapterSelection is the outcome of selection. The adapter is borrowed
// from the instance and is never destroyed by the application.
type AdapterSelection struct {
	Adapter    AdapterHandle
	Properties AdapterProperties
	Features   DeviceFeatures
	Resolution QueueFamilyResolution
}

// PhysicalDeviceSelector picks the first adapter that satisfies a
// capability requirement. There is no scoring: enumeration order decides
// between suitable adapters.
type PhysicalDeviceSelector struct {
	instance *InstanceContext
	surface  *SurfaceContext
	logger   *slog.Logger
}

// NewPhysicalDeviceSelector returns a selector over the adapters of
// instance. Presentation support is required iff surface is non-nil.
func NewPhysicalDeviceSelector(instance *InstanceContext, surface *SurfaceContext) *PhysicalDeviceSelector {
	return &PhysicalDeviceSelector{instance: instance, surface: surface, logger: instance.logger}
}

// Select enumerates adapters and returns the first suitable one.
func (s *PhysicalDeviceSelector) Select(req CapabilityRequirement) (*AdapterSelection, error) {
	driver := s.instance.driver
	adapters, err := driver.Adapters(s.instance.handle)
	if err != nil {
		return nil, newFailure(NoSuitableAdapter, AdapterSelected, errors.Wrap(err, "enumerate physical devices"))
	}
	if len(adapters) == 0 {
		return nil, newFailure(NoSuitableAdapter, AdapterSelected, ErrNoAdapters)
	}
	s.logger.Debug("discovered devices (GPU) with driver support", slog.Int("count", len(adapters)))
	s.logger.Debug("required capabilities", slog.String("requirement", req.String()),
		slog.Bool("present", s.surface != nil))

	for _, adapter := range adapters {
		sel, ok := s.evaluate(adapter, req)
		if ok {
			s.logger.Info("selected physical device",
				slog.String("name", sel.Properties.Name),
				slog.String("type", sel.Properties.Type.String()),
				slog.String("queues", sel.Resolution.String()))
			return sel, nil
		}
	}
	return nil, newFailure(NoSuitableAdapter, AdapterSelected, ErrNoSuitableAdapter)
}

// evaluate reads one adapter and decides whether it is suitable.
func (s *PhysicalDeviceSelector) evaluate(adapter AdapterHandle, req CapabilityRequirement) (*AdapterSelection, bool) {
	driver := s.instance.driver
	props := driver.AdapterProperties(adapter)
	features := driver.AdapterFeatures(adapter)
	families := driver.QueueFamilies(adapter)

	s.logger.Debug("device",
		slog.String("name", props.Name),
		slog.Uint64("id", uint64(props.DeviceID)),
		slog.String("type", props.Type.String()),
		slog.String("api_version", props.APIVersion.String()),
		slog.Int("queue_families", len(families)))

	resolution := s.resolve(adapter, families)
	s.logger.Debug("device feature support", slog.String("features", features.String()))

	complete := resolution.IsComplete(req.Queues, s.surface != nil)
	featured := features.Satisfies(req.Features)
	if !complete || !featured {
		s.logger.Debug("device rejected",
			slog.String("name", props.Name),
			slog.Bool("queues_complete", complete),
			slog.Bool("features_satisfied", featured))
		return nil, false
	}
	return &AdapterSelection{
		Adapter:    adapter,
		Properties: props,
		Features:   features,
		Resolution: resolution,
	}, true
}

// resolve folds the operation support of every family into a
// resolution, recording the first family for each kind.
func (s *PhysicalDeviceSelector) resolve(adapter AdapterHandle, families []QueueFamilyProperties) QueueFamilyResolution {
	resolution := NewQueueFamilyResolution()
	for i, family := range families {
		present := false
		if s.surface != nil {
			ok, err := s.instance.driver.SurfaceSupport(adapter, uint32(i), s.surface.handle)
			if err != nil {
				s.logger.Warn("cannot query surface support",
					slog.Int("family", i), slog.Any("error", err))
			}
			present = ok && err == nil
		}
		support := NewQueueOperationSupport(family, present)
		s.logger.Debug("queue flag support",
			slog.Int("family", i),
			slog.Uint64("count", uint64(family.Count)),
			slog.String("support", support.String()))
		resolution.Mark(support, i)
	}
	return resolution
}
