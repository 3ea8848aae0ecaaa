// Package window provides GLFW windows for the bootstrap.
//
// GLFW must be driven from the main OS thread: Init, CreateWindow, Run
// and Destroy all belong there.
package window

import (
	"unsafe"

	"github.com/carsonclarke570/daybreak"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// Init initializes GLFW and checks that a Vulkan loader is reachable.
func Init() error {
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "glfw init")
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return errors.New("glfw: vulkan loader not found")
	}
	return nil
}

// Terminate shuts GLFW down. Call it after every window is destroyed.
func Terminate() {
	glfw.Terminate()
}

// ProcAddr returns the loader entry point GLFW found, for vkdriver.Open.
func ProcAddr() unsafe.Pointer {
	return glfw.GetVulkanGetInstanceProcAddress()
}

// Provider creates GLFW windows without a client API.
type Provider struct{}

var _ daybreak.WindowProvider = Provider{}

// CreateWindow opens a window matching cfg. Fullscreen windows take the
// primary monitor's current video mode.
func (Provider) CreateWindow(cfg daybreak.WindowConfig) (daybreak.Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.True)

	width, height := cfg.Width, cfg.Height
	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if monitor == nil {
			return nil, errors.New("fullscreen requested but no monitor found")
		}
		mode := monitor.GetVideoMode()
		glfw.WindowHint(glfw.RedBits, mode.RedBits)
		glfw.WindowHint(glfw.GreenBits, mode.GreenBits)
		glfw.WindowHint(glfw.BlueBits, mode.BlueBits)
		glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)
		width, height = mode.Width, mode.Height
	}

	w, err := glfw.CreateWindow(width, height, cfg.Title, monitor, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create window")
	}
	win := &Window{window: w}
	w.SetKeyCallback(win.onKey)
	return win, nil
}

// Window is a GLFW window. Its native reference is the *glfw.Window,
// which knows how to create its own Vulkan surface.
type Window struct {
	window *glfw.Window
}

var _ daybreak.Window = (*Window)(nil)

func (w *Window) Native() any {
	return w.window
}

func (w *Window) RequiredExtensions() []string {
	return w.window.GetRequiredInstanceExtensions()
}

// Run waits for events until a close request or an Escape press.
func (w *Window) Run() {
	for !w.window.ShouldClose() {
		glfw.WaitEvents()
	}
}

// Destroy closes the window. Calls after the first do nothing.
func (w *Window) Destroy() {
	if w.window == nil {
		return
	}
	w.window.Destroy()
	w.window = nil
}

func (w *Window) onKey(win *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if closeRequested(key, action) {
		win.SetShouldClose(true)
	}
}

func closeRequested(key glfw.Key, action glfw.Action) bool {
	return key == glfw.KeyEscape && action == glfw.Press
}
