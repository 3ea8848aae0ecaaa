package daybreak

// Opaque driver handles. Zero is the null handle. Only the Driver that
// produced a handle can dereference it.
type (
	InstanceHandle  uint64
	MessengerHandle uint64
	SurfaceHandle   uint64
	AdapterHandle   uint64
	DeviceHandle    uint64
	QueueHandle     uint64
)

// AdapterType classifies a physical device.
type AdapterType int

const (
	AdapterOther AdapterType = iota
	AdapterIntegrated
	AdapterDiscrete
	AdapterVirtual
	AdapterCPU
)

func (t AdapterType) String() string {
	switch t {
	case AdapterIntegrated:
		return "Integrated GPU"
	case AdapterDiscrete:
		return "Discrete GPU"
	case AdapterVirtual:
		return "Virtual GPU"
	case AdapterCPU:
		return "Cpu"
	}
	return "Unknown"
}

// AdapterProperties is the read-only description of a physical device.
type AdapterProperties struct {
	Name          string
	VendorID      uint32
	DeviceID      uint32
	Type          AdapterType
	APIVersion    Version
	DriverVersion uint32
}

// InstanceInfo carries everything the driver needs to create an instance.
type InstanceInfo struct {
	Identity   ApplicationIdentity
	Extensions []string
	Layers     []string
}

// DeviceInfo describes the logical device request: a single queue on
// QueueFamily with the given priority.
type DeviceInfo struct {
	QueueFamily   uint32
	QueuePriority float32
	Features      DeviceFeatures
	Layers        []string
}

// Driver is the binding to the native graphics API. Every call blocks
// until the driver returns. Implementations need not be safe for
// concurrent use.
type Driver interface {
	// InstanceLayers lists the layers the host exposes.
	InstanceLayers() ([]string, error)
	// InstanceExtensions lists the instance extensions the host exposes.
	InstanceExtensions() ([]string, error)
	CreateInstance(info *InstanceInfo) (InstanceHandle, error)
	DestroyInstance(instance InstanceHandle)

	// CreateDebugMessenger installs sink as the receiver of driver
	// diagnostics for instance.
	CreateDebugMessenger(instance InstanceHandle, sink DiagnosticSink) (MessengerHandle, error)
	DestroyDebugMessenger(instance InstanceHandle, messenger MessengerHandle)

	// CreateSurface creates a presentation surface from a native window
	// reference supplied by the windowing collaborator.
	CreateSurface(instance InstanceHandle, native any) (SurfaceHandle, error)
	DestroySurface(instance InstanceHandle, surface SurfaceHandle)

	// Adapters enumerates the physical devices of instance in driver order.
	Adapters(instance InstanceHandle) ([]AdapterHandle, error)
	AdapterProperties(adapter AdapterHandle) AdapterProperties
	AdapterFeatures(adapter AdapterHandle) DeviceFeatures
	QueueFamilies(adapter AdapterHandle) []QueueFamilyProperties
	// SurfaceSupport reports whether family can present to surface.
	SurfaceSupport(adapter AdapterHandle, family uint32, surface SurfaceHandle) (bool, error)

	CreateDevice(adapter AdapterHandle, info *DeviceInfo) (DeviceHandle, error)
	DeviceQueue(device DeviceHandle, family, index uint32) QueueHandle
	DeviceWaitIdle(device DeviceHandle) error
	DestroyDevice(device DeviceHandle)
}
