package daybreak

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
)

// fakeAdapter is one synthetic physical device.
type fakeAdapter struct {
	props    AdapterProperties
	features DeviceFeatures
	families []QueueFamilyProperties
	// present lists the families that can present to any surface.
	present    map[uint32]bool
	presentErr error
}

// fakeDriver records every call it receives. Errors are injected per
// method name through fail.
type fakeDriver struct {
	layers     []string
	extensions []string
	adapters   []fakeAdapter
	fail       map[string]error

	trace    []string
	next     uint64
	sinks    []DiagnosticSink
	instance *InstanceInfo
	device   *DeviceInfo
	natives  []any
	live     map[uint64]string
}

func newFakeDriver(adapters ...fakeAdapter) *fakeDriver {
	return &fakeDriver{
		layers:     []string{KhronosValidationLayer, "VK_LAYER_LUNARG_monitor"},
		extensions: []string{"VK_KHR_surface", "VK_KHR_xcb_surface", DebugReportExtension},
		adapters:   adapters,
		fail:       map[string]error{},
		live:       map[uint64]string{},
	}
}

// record traces call. A failing call is traced with a " failed" suffix.
func (d *fakeDriver) record(call string) error {
	err := d.fail[call]
	if err != nil {
		call += " failed"
	}
	d.trace = append(d.trace, call)
	return err
}

func (d *fakeDriver) alloc(kind string) uint64 {
	d.next++
	d.live[d.next] = kind
	return d.next
}

func (d *fakeDriver) release(h uint64, kind string) {
	if d.live[h] != kind {
		panic("fake driver: " + kind + " released twice or never created")
	}
	delete(d.live, h)
}

// lifecycle returns the successful Create and Destroy calls in order.
func (d *fakeDriver) lifecycle() []string {
	var calls []string
	for _, c := range d.trace {
		if strings.HasSuffix(c, " failed") {
			continue
		}
		if strings.HasPrefix(c, "Create") || strings.HasPrefix(c, "Destroy") {
			calls = append(calls, c)
		}
	}
	return calls
}

func (d *fakeDriver) count(call string) int {
	n := 0
	for _, c := range d.trace {
		if c == call {
			n++
		}
	}
	return n
}

func (d *fakeDriver) InstanceLayers() ([]string, error) {
	if err := d.record("InstanceLayers"); err != nil {
		return nil, err
	}
	return d.layers, nil
}

func (d *fakeDriver) InstanceExtensions() ([]string, error) {
	if err := d.record("InstanceExtensions"); err != nil {
		return nil, err
	}
	return d.extensions, nil
}

func (d *fakeDriver) CreateInstance(info *InstanceInfo) (InstanceHandle, error) {
	if err := d.record("CreateInstance"); err != nil {
		return 0, err
	}
	d.instance = info
	return InstanceHandle(d.alloc("instance")), nil
}

func (d *fakeDriver) DestroyInstance(instance InstanceHandle) {
	d.record("DestroyInstance")
	d.release(uint64(instance), "instance")
}

func (d *fakeDriver) CreateDebugMessenger(instance InstanceHandle, sink DiagnosticSink) (MessengerHandle, error) {
	if err := d.record("CreateDebugMessenger"); err != nil {
		return 0, err
	}
	d.sinks = append(d.sinks, sink)
	return MessengerHandle(d.alloc("messenger")), nil
}

func (d *fakeDriver) DestroyDebugMessenger(instance InstanceHandle, messenger MessengerHandle) {
	d.record("DestroyDebugMessenger")
	d.release(uint64(messenger), "messenger")
}

func (d *fakeDriver) CreateSurface(instance InstanceHandle, native any) (SurfaceHandle, error) {
	if err := d.record("CreateSurface"); err != nil {
		return 0, err
	}
	d.natives = append(d.natives, native)
	return SurfaceHandle(d.alloc("surface")), nil
}

func (d *fakeDriver) DestroySurface(instance InstanceHandle, surface SurfaceHandle) {
	d.record("DestroySurface")
	d.release(uint64(surface), "surface")
}

// Adapter handles are 1000+index so they never collide with owned handles.
func (d *fakeDriver) Adapters(instance InstanceHandle) ([]AdapterHandle, error) {
	if err := d.record("Adapters"); err != nil {
		return nil, err
	}
	handles := make([]AdapterHandle, len(d.adapters))
	for i := range d.adapters {
		handles[i] = AdapterHandle(1000 + i)
	}
	return handles, nil
}

func (d *fakeDriver) adapter(h AdapterHandle) *fakeAdapter {
	return &d.adapters[int(h)-1000]
}

func (d *fakeDriver) AdapterProperties(adapter AdapterHandle) AdapterProperties {
	d.record("AdapterProperties")
	return d.adapter(adapter).props
}

func (d *fakeDriver) AdapterFeatures(adapter AdapterHandle) DeviceFeatures {
	d.record("AdapterFeatures")
	return d.adapter(adapter).features
}

func (d *fakeDriver) QueueFamilies(adapter AdapterHandle) []QueueFamilyProperties {
	d.record("QueueFamilies")
	return d.adapter(adapter).families
}

func (d *fakeDriver) SurfaceSupport(adapter AdapterHandle, family uint32, surface SurfaceHandle) (bool, error) {
	d.record("SurfaceSupport")
	a := d.adapter(adapter)
	if a.presentErr != nil {
		return false, a.presentErr
	}
	return a.present[family], nil
}

func (d *fakeDriver) CreateDevice(adapter AdapterHandle, info *DeviceInfo) (DeviceHandle, error) {
	if err := d.record("CreateDevice"); err != nil {
		return 0, err
	}
	d.device = info
	return DeviceHandle(d.alloc("device")), nil
}

func (d *fakeDriver) DeviceQueue(device DeviceHandle, family, index uint32) QueueHandle {
	d.record("DeviceQueue")
	return QueueHandle(500 + family)
}

func (d *fakeDriver) DeviceWaitIdle(device DeviceHandle) error {
	return d.record("DeviceWaitIdle")
}

func (d *fakeDriver) DestroyDevice(device DeviceHandle) {
	d.record("DestroyDevice")
	d.release(uint64(device), "device")
}

var errDriver = errors.New("driver failure")

// Synthetic adapter topologies.

func discreteGPU(name string) fakeAdapter {
	return fakeAdapter{
		props: AdapterProperties{Name: name, DeviceID: 1, Type: AdapterDiscrete, APIVersion: Version{1, 3, 0}},
		features: DeviceFeatures{GeometryShader: true, TessellationShader: true,
			SamplerAnisotropy: true, MultiDrawIndirect: true, FillModeNonSolid: true, WideLines: true},
		families: []QueueFamilyProperties{
			{Flags: QueueGraphics | QueueCompute | QueueTransfer | QueueSparseBinding, Count: 16},
			{Flags: QueueTransfer, Count: 2},
		},
		present: map[uint32]bool{0: true},
	}
}

func computeOnly(name string) fakeAdapter {
	return fakeAdapter{
		props:    AdapterProperties{Name: name, DeviceID: 2, Type: AdapterOther},
		families: []QueueFamilyProperties{{Flags: QueueCompute | QueueTransfer, Count: 4}},
	}
}

func noGeometry(name string) fakeAdapter {
	a := discreteGPU(name)
	a.props.Type = AdapterIntegrated
	a.features.GeometryShader = false
	return a
}

func graphicsRequirement() CapabilityRequirement {
	return CapabilityRequirement{Queues: QueueGraphics, Features: DeviceFeatures{GeometryShader: true}}
}

// fakeWindow is a Window with a recognizable native reference.
type fakeWindow struct {
	extensions []string
	runs       int
	destroyed  int
}

func (w *fakeWindow) Native() any { return w }
func (w *fakeWindow) RequiredExtensions() []string { return w.extensions }
func (w *fakeWindow) Run() { w.runs++ }
func (w *fakeWindow) Destroy() { w.destroyed++ }

// recordingSink keeps every diagnostic it receives.
type recordingSink struct {
	messages []string
}

func (s *recordingSink) Diagnostic(severity Severity, category Category, message string) {
	s.messages = append(s.messages, severity.String()+"/"+category.String()+": "+message)
}

func testLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLoggerLevel(&buf, slog.LevelDebug), &buf
}

func boolPtr(b bool) *bool { return &b }

func discardLogger() *slog.Logger {
	logger, _ := testLogger()
	return logger
}
