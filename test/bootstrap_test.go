// Package test runs the bootstrap against the installed Vulkan driver.
// Every test skips when no loader, display or suitable GPU is present.
package test

import (
	"os"
	"runtime"
	"testing"

	"github.com/carsonclarke570/daybreak"
	"github.com/carsonclarke570/daybreak/vkdriver"
	"github.com/carsonclarke570/daybreak/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	width  = 500
	height = 500
)

func skipUnlessHardware(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping hardware test in short mode")
	}
}

// skipUnsuitable skips when the host simply has no usable GPU or layer.
func skipUnsuitable(t *testing.T, err error) {
	t.Helper()
	switch daybreak.KindOf(err) {
	case daybreak.NoSuitableAdapter, daybreak.MissingValidationLayer:
		t.Skipf("host cannot run the bootstrap: %v", err)
	}
}

func TestWindowBootstrap(t *testing.T) {
	skipUnlessHardware(t)
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := window.Init(); err != nil {
		t.Skipf("no window system: %v", err)
	}
	defer window.Terminate()

	driver, err := vkdriver.Open(window.ProcAddr())
	if err != nil {
		t.Skipf("no vulkan loader: %v", err)
	}

	app, err := daybreak.NewApp(driver, window.Provider{}, daybreak.Settings{
		Window:      daybreak.WindowConfig{Title: "Vulkan", Width: width, Height: height},
		Identity:    daybreak.ApplicationIdentity{AppName: "Vulkan", EngineName: "daybreak", APIVersion: daybreak.DefaultAPIVersion},
		Requirement: daybreak.CapabilityRequirement{Queues: daybreak.QueueGraphics},
		Logger:      daybreak.NewLogger(os.Stderr),
	})
	skipUnsuitable(t, err)
	require.NoError(t, err)

	b := app.Bootstrap()
	assert.Equal(t, daybreak.Ready, b.State())
	assert.NotZero(t, b.Surface().Handle())
	assert.NotNil(t, driver.Queue(b.GraphicsQueue()))
	assert.NotNil(t, driver.Device(b.Device()))
	instance := b.Instance().Handle()
	assert.NotNil(t, driver.Instance(instance))
	assert.Equal(t, daybreak.Driver(driver), b.Instance().Driver())
	device := b.Device()

	app.Destroy()
	assert.Equal(t, daybreak.Destroyed, b.State())
	assert.Nil(t, driver.Device(device))
	assert.Nil(t, driver.Instance(instance))
}

func TestHeadlessBootstrap(t *testing.T) {
	skipUnlessHardware(t)

	driver, err := vkdriver.Open(nil)
	if err != nil {
		t.Skipf("no vulkan loader: %v", err)
	}

	b, err := daybreak.NewBootstrap(driver, daybreak.Options{
		Identity:    daybreak.ApplicationIdentity{AppName: "headless", APIVersion: daybreak.DefaultAPIVersion},
		Requirement: daybreak.CapabilityRequirement{Queues: daybreak.QueueCompute},
		Logger:      daybreak.NewLogger(os.Stderr),
	})
	skipUnsuitable(t, err)
	require.NoError(t, err)

	assert.Nil(t, b.Surface())
	assert.NotEmpty(t, b.Selection().Properties.Name)
	assert.NotNil(t, driver.Device(b.Device()))
	assert.NotNil(t, driver.Queue(b.GraphicsQueue()))

	queue := b.GraphicsQueue()
	b.Destroy()
	assert.Nil(t, driver.Queue(queue))
}
