package daybreak

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	window *fakeWindow
	err    error
	cfg    WindowConfig
}

func (p *fakeProvider) CreateWindow(cfg WindowConfig) (Window, error) {
	p.cfg = cfg
	if p.err != nil {
		return nil, p.err
	}
	return p.window, nil
}

func appSettings() Settings {
	return Settings{
		Window:      WindowConfig{Title: "test", Width: 800, Height: 600},
		Identity:    ApplicationIdentity{AppName: "test"},
		Requirement: graphicsRequirement(),
		Logger:      discardLogger(),
	}
}

func TestAppLifecycle(t *testing.T) {
	d := newFakeDriver(discreteGPU("gpu"))
	window := &fakeWindow{extensions: []string{"VK_KHR_surface", "VK_KHR_xcb_surface"}}
	provider := &fakeProvider{window: window}

	app, err := NewApp(d, provider, appSettings())
	require.NoError(t, err)
	assert.Equal(t, "test", provider.cfg.Title)
	assert.Equal(t, Ready, app.Bootstrap().State())
	assert.Subset(t, d.instance.Extensions, window.extensions)

	app.Run()
	assert.Equal(t, 1, window.runs)

	app.Destroy()
	app.Destroy()
	assert.Equal(t, 1, window.destroyed)
	assert.Equal(t, Destroyed, app.Bootstrap().State())
	assert.Empty(t, d.live)
}

func TestAppWindowFailure(t *testing.T) {
	d := newFakeDriver(discreteGPU("gpu"))
	settings := appSettings()
	logger, buf := testLogger()
	settings.Logger = logger
	_, err := NewApp(d, &fakeProvider{err: errors.New("no display")}, settings)
	assert.NotContains(t, buf.String(), "level=ERROR")

	var be *BootstrapError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, WindowCreationFailure, be.Kind)
	assert.Equal(t, Uninitialized, be.Step)
	assert.Empty(t, d.trace)
}

func TestAppBootstrapFailureClosesWindow(t *testing.T) {
	d := newFakeDriver(computeOnly("compute"))
	window := &fakeWindow{}

	_, err := NewApp(d, &fakeProvider{window: window}, appSettings())
	assert.Equal(t, NoSuitableAdapter, KindOf(err))
	assert.Equal(t, 1, window.destroyed)
	assert.Empty(t, d.live)
}

func TestBootstrapErrorMessage(t *testing.T) {
	err := &BootstrapError{Kind: MissingValidationLayer, Step: ValidatingLayers, Name: "VK_LAYER_x"}
	assert.Equal(t, `bootstrap: validating layers: missing validation layer "VK_LAYER_x"`, err.Error())

	wrapped := newFailure(DeviceCreationFailure, DeviceCreated, errDriver)
	assert.Equal(t, "bootstrap: logical device: device creation failure: driver failure", wrapped.Error())
	assert.ErrorIs(t, wrapped, errDriver)
	assert.Equal(t, NoFailure, KindOf(errDriver))
	assert.Equal(t, DeviceCreationFailure, KindOf(errors.Wrap(wrapped, "startup")))
}
