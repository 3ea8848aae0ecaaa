package daybreak

import (
	"log/slog"

	"github.com/pkg/errors"
)

// LogicalDeviceContext owns the logical device and its submission queue.
// It must be destroyed before the surface and the instance.
type LogicalDeviceContext struct {
	instance *InstanceContext
	handle   DeviceHandle
	queue    QueueHandle
	family   uint32
	logger   *slog.Logger
}

// NewLogicalDeviceContext creates a device on the selected adapter with
// one queue at maximum priority on the submission family. Only the
// features named by req are enabled. Validation layers are passed at
// device level as well, for drivers that still honor them.
func NewLogicalDeviceContext(instance *InstanceContext, selection *AdapterSelection,
	req CapabilityRequirement, validation *ValidationLayer) (*LogicalDeviceContext, error) {

	family, ok := selection.Resolution.SubmissionFamily()
	if !ok {
		return nil, newFailure(DeviceCreationFailure, DeviceCreated,
			errors.New("no queue family resolved for submission"))
	}

	info := &DeviceInfo{
		QueueFamily:   uint32(family),
		QueuePriority: 1.0,
		Features:      req.Features,
		Layers:        validation.Layers(),
	}
	handle, err := instance.driver.CreateDevice(selection.Adapter, info)
	if err != nil {
		return nil, newFailure(DeviceCreationFailure, DeviceCreated, err)
	}
	queue := instance.driver.DeviceQueue(handle, info.QueueFamily, 0)
	instance.logger.Info("initialized logical device and graphics queue", slog.Int("family", family))

	return &LogicalDeviceContext{
		instance: instance,
		handle:   handle,
		queue:    queue,
		family:   info.QueueFamily,
		logger:   instance.logger,
	}, nil
}

func (d *LogicalDeviceContext) Handle() DeviceHandle { return d.handle }

// Queue returns queue 0 of the submission family.
func (d *LogicalDeviceContext) Queue() QueueHandle { return d.queue }

// QueueFamily returns the family index the queue was created on.
func (d *LogicalDeviceContext) QueueFamily() uint32 { return d.family }

// Destroy waits for outstanding work, then releases the device. Calls
// after the first do nothing.
func (d *LogicalDeviceContext) Destroy() {
	if d == nil || d.handle == 0 {
		return
	}
	if err := d.instance.driver.DeviceWaitIdle(d.handle); err != nil {
		d.logger.Warn("device did not go idle before destruction", slog.Any("error", err))
	}
	d.instance.driver.DestroyDevice(d.handle)
	d.handle = 0
	d.queue = 0
	d.logger.Debug("destroyed logical device")
}
