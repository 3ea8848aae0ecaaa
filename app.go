package daybreak

import (
	"log/slog"
)

// WindowConfig describes the window the application renders into.
type WindowConfig struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
}

// Window is a platform window the bootstrap can present to.
type Window interface {
	// Native returns the reference the driver's surface factory consumes.
	Native() any
	// RequiredExtensions lists the instance extensions surface creation
	// needs on this platform.
	RequiredExtensions() []string
	// Run drives the event loop until the window is asked to close or
	// Escape is pressed.
	Run()
	Destroy()
}

// WindowProvider creates platform windows.
type WindowProvider interface {
	CreateWindow(cfg WindowConfig) (Window, error)
}

// Settings is the validated configuration of an App.
type Settings struct {
	Window      WindowConfig
	Identity    ApplicationIdentity
	Requirement CapabilityRequirement
	Sink        DiagnosticSink
	Logger      *slog.Logger
}

// App ties a window to a bootstrapped rendering context.
type App struct {
	window    Window
	bootstrap *BootstrapContext
	logger    *slog.Logger
}

// NewApp opens the window and bootstraps the rendering context on it.
func NewApp(driver Driver, provider WindowProvider, settings Settings) (*App, error) {
	logger := loggerOrDefault(settings.Logger)
	window, err := provider.CreateWindow(settings.Window)
	if err != nil {
		f := newFailure(WindowCreationFailure, Uninitialized, err)
		logger.Debug("failed to initialize window", slog.Any("error", f))
		return nil, f
	}
	logger.Info("initialized window",
		slog.String("title", settings.Window.Title),
		slog.Int("width", settings.Window.Width),
		slog.Int("height", settings.Window.Height),
		slog.Bool("fullscreen", settings.Window.Fullscreen))

	bootstrap, err := NewBootstrap(driver, Options{
		Identity:    settings.Identity,
		Requirement: settings.Requirement,
		Extensions:  window.RequiredExtensions(),
		Window:      window,
		Sink:        settings.Sink,
		Logger:      logger,
	})
	if err != nil {
		window.Destroy()
		return nil, err
	}
	return &App{window: window, bootstrap: bootstrap, logger: logger}, nil
}

// Bootstrap exposes the finished rendering context.
func (a *App) Bootstrap() *BootstrapContext { return a.bootstrap }

// Run blocks in the window event loop.
func (a *App) Run() {
	a.logger.Info("beginning main loop")
	a.window.Run()
	a.logger.Info("main loop finished")
}

// Destroy tears down the rendering context, then the window.
func (a *App) Destroy() {
	if a == nil || a.window == nil {
		return
	}
	a.bootstrap.Destroy()
	a.window.Destroy()
	a.window = nil
}
