// Package vkdriver binds the bootstrap core to Vulkan through
// github.com/vulkan-go/vulkan.
//
// Core handles are opaque integers; the driver keeps the table that
// maps each of them to the live Vulkan object. Tables are not
// synchronized, matching the single-threaded bootstrap.
package vkdriver

import (
	"unsafe"

	"github.com/carsonclarke570/daybreak"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// SurfaceFactory is implemented by native windows that can create a
// Vulkan surface, such as *glfw.Window.
type SurfaceFactory interface {
	CreateWindowSurface(instance interface{}, allocCallbacks unsafe.Pointer) (uintptr, error)
}

// Driver implements daybreak.Driver.
type Driver struct {
	next uint64

	instances map[daybreak.InstanceHandle]vk.Instance
	callbacks map[daybreak.MessengerHandle]vk.DebugReportCallback
	surfaces  map[daybreak.SurfaceHandle]vk.Surface
	adapters  map[daybreak.AdapterHandle]adapter
	devices   map[daybreak.DeviceHandle]vk.Device
	queues    map[daybreak.QueueHandle]queue
}

// adapter and queue remember their owner so they can be forgotten with it.
type adapter struct {
	gpu      vk.PhysicalDevice
	instance daybreak.InstanceHandle
}

type queue struct {
	queue  vk.Queue
	device daybreak.DeviceHandle
}

var _ daybreak.Driver = (*Driver)(nil)

// Open loads the Vulkan loader through procAddr, which is usually
// glfw.GetVulkanGetInstanceProcAddress(). A nil procAddr uses the
// platform's default loader.
func Open(procAddr unsafe.Pointer) (*Driver, error) {
	if procAddr != nil {
		vk.SetGetInstanceProcAddr(procAddr)
	} else if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return nil, errors.Wrap(err, "vulkan loader not found")
	}
	if err := vk.Init(); err != nil {
		return nil, errors.Wrap(err, "vulkan init")
	}
	return &Driver{
		instances: make(map[daybreak.InstanceHandle]vk.Instance),
		callbacks: make(map[daybreak.MessengerHandle]vk.DebugReportCallback),
		surfaces:  make(map[daybreak.SurfaceHandle]vk.Surface),
		adapters:  make(map[daybreak.AdapterHandle]adapter),
		devices:   make(map[daybreak.DeviceHandle]vk.Device),
		queues:    make(map[daybreak.QueueHandle]queue),
	}, nil
}

func (d *Driver) id() uint64 {
	d.next++
	return d.next
}

func (d *Driver) InstanceLayers() ([]string, error) {
	return ValidationLayers()
}

func (d *Driver) InstanceExtensions() ([]string, error) {
	return InstanceExtensions()
}

func (d *Driver) CreateInstance(info *daybreak.InstanceInfo) (daybreak.InstanceHandle, error) {
	id := info.Identity
	var instance vk.Instance
	ret := vk.CreateInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			PApplicationName:   safeString(id.AppName),
			ApplicationVersion: id.AppVersion,
			PEngineName:        safeString(id.EngineName),
			EngineVersion:      id.EngineVersion,
			ApiVersion:         id.APIVersion.Packed(),
		},
		EnabledExtensionCount:   uint32(len(info.Extensions)),
		PpEnabledExtensionNames: safeStrings(info.Extensions),
		EnabledLayerCount:       uint32(len(info.Layers)),
		PpEnabledLayerNames:     safeStrings(info.Layers),
	}, nil, &instance)
	if err := wrapResult(ret, "create instance"); err != nil {
		return 0, err
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return 0, errors.Wrap(err, "load instance functions")
	}
	h := daybreak.InstanceHandle(d.id())
	d.instances[h] = instance
	return h, nil
}

func (d *Driver) DestroyInstance(instance daybreak.InstanceHandle) {
	inst, ok := d.instances[instance]
	if !ok {
		return
	}
	for h, a := range d.adapters {
		if a.instance == instance {
			delete(d.adapters, h)
		}
	}
	vk.DestroyInstance(inst, nil)
	delete(d.instances, instance)
}

func (d *Driver) CreateDebugMessenger(instance daybreak.InstanceHandle, sink daybreak.DiagnosticSink) (daybreak.MessengerHandle, error) {
	inst, ok := d.instances[instance]
	if !ok {
		return 0, errors.New("create debug messenger: unknown instance")
	}
	var callback vk.DebugReportCallback
	ret := vk.CreateDebugReportCallback(inst, &vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit |
			vk.DebugReportPerformanceWarningBit | vk.DebugReportInformationBit | vk.DebugReportDebugBit),
		PfnCallback: reportCallback(sink),
	}, nil, &callback)
	if err := wrapResult(ret, "create debug report callback"); err != nil {
		return 0, err
	}
	h := daybreak.MessengerHandle(d.id())
	d.callbacks[h] = callback
	return h, nil
}

func (d *Driver) DestroyDebugMessenger(instance daybreak.InstanceHandle, messenger daybreak.MessengerHandle) {
	inst, ok := d.instances[instance]
	callback, found := d.callbacks[messenger]
	if !ok || !found {
		return
	}
	vk.DestroyDebugReportCallback(inst, callback, nil)
	delete(d.callbacks, messenger)
}

func (d *Driver) CreateSurface(instance daybreak.InstanceHandle, native any) (daybreak.SurfaceHandle, error) {
	inst, ok := d.instances[instance]
	if !ok {
		return 0, errors.New("create surface: unknown instance")
	}
	factory, ok := native.(SurfaceFactory)
	if !ok {
		return 0, errors.Errorf("create surface: %T cannot create window surfaces", native)
	}
	ptr, err := factory.CreateWindowSurface(inst, nil)
	if err != nil {
		return 0, errors.Wrap(err, "create window surface")
	}
	surface := vk.SurfaceFromPointer(ptr)
	if surface == vk.NullSurface {
		return 0, errors.New("create window surface: null surface")
	}
	h := daybreak.SurfaceHandle(d.id())
	d.surfaces[h] = surface
	return h, nil
}

func (d *Driver) DestroySurface(instance daybreak.InstanceHandle, surface daybreak.SurfaceHandle) {
	inst, ok := d.instances[instance]
	s, found := d.surfaces[surface]
	if !ok || !found {
		return
	}
	vk.DestroySurface(inst, s, nil)
	delete(d.surfaces, surface)
}

func (d *Driver) Adapters(instance daybreak.InstanceHandle) ([]daybreak.AdapterHandle, error) {
	inst, ok := d.instances[instance]
	if !ok {
		return nil, errors.New("enumerate adapters: unknown instance")
	}
	var count uint32
	if err := countResult(vk.EnumeratePhysicalDevices(inst, &count, nil), "count physical devices"); err != nil {
		return nil, err
	}
	gpus := make([]vk.PhysicalDevice, count)
	if err := newError(vk.EnumeratePhysicalDevices(inst, &count, gpus)); err != nil {
		return nil, err
	}
	handles := make([]daybreak.AdapterHandle, 0, count)
	for _, gpu := range gpus[:count] {
		h := daybreak.AdapterHandle(d.id())
		d.adapters[h] = adapter{gpu: gpu, instance: instance}
		handles = append(handles, h)
	}
	return handles, nil
}

func (d *Driver) AdapterProperties(handle daybreak.AdapterHandle) daybreak.AdapterProperties {
	var props vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(d.adapters[handle].gpu, &props)
	props.Deref()
	return daybreak.AdapterProperties{
		Name:          vk.ToString(props.DeviceName[:]),
		VendorID:      props.VendorID,
		DeviceID:      props.DeviceID,
		Type:          adapterType(props.DeviceType),
		APIVersion:    daybreak.UnpackVersion(props.ApiVersion),
		DriverVersion: props.DriverVersion,
	}
}

func (d *Driver) AdapterFeatures(handle daybreak.AdapterHandle) daybreak.DeviceFeatures {
	var features vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(d.adapters[handle].gpu, &features)
	features.Deref()
	return deviceFeatures(&features)
}

func (d *Driver) QueueFamilies(handle daybreak.AdapterHandle) []daybreak.QueueFamilyProperties {
	gpu := d.adapters[handle].gpu
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, nil)
	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, props)
	families := make([]daybreak.QueueFamilyProperties, 0, count)
	for i := range props[:count] {
		props[i].Deref()
		families = append(families, daybreak.QueueFamilyProperties{
			Flags: queueFlags(props[i].QueueFlags),
			Count: props[i].QueueCount,
		})
	}
	return families
}

func (d *Driver) SurfaceSupport(handle daybreak.AdapterHandle, family uint32, surface daybreak.SurfaceHandle) (bool, error) {
	s, ok := d.surfaces[surface]
	if !ok {
		return false, errors.New("surface support: unknown surface")
	}
	var supported vk.Bool32
	ret := vk.GetPhysicalDeviceSurfaceSupport(d.adapters[handle].gpu, family, s, &supported)
	if err := wrapResult(ret, "query surface support"); err != nil {
		return false, err
	}
	return supported.B(), nil
}

func (d *Driver) CreateDevice(handle daybreak.AdapterHandle, info *daybreak.DeviceInfo) (daybreak.DeviceHandle, error) {
	a, ok := d.adapters[handle]
	if !ok {
		return 0, errors.New("create device: unknown adapter")
	}
	queueInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: info.QueueFamily,
		QueueCount:       1,
		PQueuePriorities: []float32{info.QueuePriority},
	}}
	var device vk.Device
	ret := vk.CreateDevice(a.gpu, &vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: uint32(len(queueInfos)),
		PQueueCreateInfos:    queueInfos,
		EnabledLayerCount:    uint32(len(info.Layers)),
		PpEnabledLayerNames:  safeStrings(info.Layers),
		PEnabledFeatures:     []vk.PhysicalDeviceFeatures{enabledFeatures(info.Features)},
	}, nil, &device)
	if err := wrapResult(ret, "create device"); err != nil {
		return 0, err
	}
	h := daybreak.DeviceHandle(d.id())
	d.devices[h] = device
	return h, nil
}

func (d *Driver) DeviceQueue(device daybreak.DeviceHandle, family, index uint32) daybreak.QueueHandle {
	dev, ok := d.devices[device]
	if !ok {
		return 0
	}
	var q vk.Queue
	vk.GetDeviceQueue(dev, family, index, &q)
	h := daybreak.QueueHandle(d.id())
	d.queues[h] = queue{queue: q, device: device}
	return h
}

func (d *Driver) DeviceWaitIdle(device daybreak.DeviceHandle) error {
	dev, ok := d.devices[device]
	if !ok {
		return errors.New("wait idle: unknown device")
	}
	return wrapResult(vk.DeviceWaitIdle(dev), "wait device idle")
}

func (d *Driver) DestroyDevice(device daybreak.DeviceHandle) {
	dev, ok := d.devices[device]
	if !ok {
		return
	}
	for h, q := range d.queues {
		if q.device == device {
			delete(d.queues, h)
		}
	}
	vk.DestroyDevice(dev, nil)
	delete(d.devices, device)
}

// Device returns the Vulkan device behind a core handle, for rendering
// code built on top of the bootstrap.
func (d *Driver) Device(device daybreak.DeviceHandle) vk.Device {
	return d.devices[device]
}

// Queue returns the Vulkan queue behind a core handle.
func (d *Driver) Queue(q daybreak.QueueHandle) vk.Queue {
	return d.queues[q].queue
}

// Instance returns the Vulkan instance behind a core handle.
func (d *Driver) Instance(instance daybreak.InstanceHandle) vk.Instance {
	return d.instances[instance]
}
