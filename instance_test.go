package daybreak

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enabledValidation(t *testing.T, d *fakeDriver) *ValidationLayer {
	t.Helper()
	v, err := NewValidationLayer(d, DefaultValidationLayers, true, discardLogger())
	require.NoError(t, err)
	return v
}

func TestInstanceExtensions(t *testing.T) {
	d := newFakeDriver()
	platform := []string{"VK_KHR_surface", "VK_KHR_xcb_surface", "VK_KHR_surface"}
	identity := ApplicationIdentity{AppName: "app", EngineName: "daybreak", APIVersion: Version{Major: 1, Minor: 2}}

	instance, err := NewInstanceContext(d, identity, platform, enabledValidation(t, d), discardLogger())
	require.NoError(t, err)
	defer instance.Destroy()

	want := []string{"VK_KHR_surface", "VK_KHR_xcb_surface", DebugReportExtension}
	assert.Equal(t, want, instance.Extensions())
	assert.Equal(t, want, d.instance.Extensions)
	assert.Equal(t, []string{KhronosValidationLayer}, d.instance.Layers)
	assert.Equal(t, identity, d.instance.Identity)
	assert.Equal(t, identity, instance.Identity())
	assert.Same(t, d, instance.Driver())
	assert.NotZero(t, instance.Handle())
}

func TestInstanceWithoutValidation(t *testing.T) {
	d := newFakeDriver()
	v, err := NewValidationLayer(d, DefaultValidationLayers, false, nil)
	require.NoError(t, err)

	instance, err := NewInstanceContext(d, ApplicationIdentity{}, []string{"VK_KHR_surface"}, v, discardLogger())
	require.NoError(t, err)
	defer instance.Destroy()

	assert.Equal(t, []string{"VK_KHR_surface"}, d.instance.Extensions)
	assert.Empty(t, d.instance.Layers)
}

func TestInstanceMissingExtension(t *testing.T) {
	d := newFakeDriver()
	_, err := NewInstanceContext(d, ApplicationIdentity{}, []string{"VK_KHR_wayland_surface"}, nil, discardLogger())
	require.Error(t, err)

	var be *BootstrapError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, InstanceCreationFailure, be.Kind)
	assert.Equal(t, "VK_KHR_wayland_surface", be.Name)
	assert.Zero(t, d.count("CreateInstance"))
}

func TestInstanceEnumerationFailureStillCreates(t *testing.T) {
	d := newFakeDriver()
	d.fail["InstanceExtensions"] = errDriver
	logger, buf := testLogger()

	instance, err := NewInstanceContext(d, ApplicationIdentity{}, []string{"VK_KHR_anything"}, nil, logger)
	require.NoError(t, err)
	defer instance.Destroy()
	assert.Contains(t, buf.String(), "cannot enumerate instance extensions")
}

func TestInstanceDriverFailure(t *testing.T) {
	d := newFakeDriver()
	d.fail["CreateInstance"] = errDriver
	_, err := NewInstanceContext(d, ApplicationIdentity{}, nil, nil, discardLogger())
	assert.Equal(t, InstanceCreationFailure, KindOf(err))
	assert.Equal(t, errDriver, errors.Cause(err))
	assert.Contains(t, err.Error(), errDriver.Error())
}

func TestInstanceDestroyOnce(t *testing.T) {
	d := newFakeDriver()
	instance, err := NewInstanceContext(d, ApplicationIdentity{}, nil, nil, discardLogger())
	require.NoError(t, err)

	instance.Destroy()
	instance.Destroy()
	assert.Equal(t, 1, d.count("DestroyInstance"))
	assert.Zero(t, instance.Handle())
}

func TestMergeNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, mergeNames([]string{"a", "", "b"}, nil, []string{"b", "c", "a"}))
	assert.Equal(t, []string{}, mergeNames())
}

func TestMissingNames(t *testing.T) {
	assert.Equal(t, []string{"c", "a"}, missingNames([]string{"c", "b", "a"}, []string{"b", "A"}))
	assert.Nil(t, missingNames([]string{"b"}, []string{"a", "b"}))
}
