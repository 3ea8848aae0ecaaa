package vkdriver

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestCountResultAcceptsIncomplete(t *testing.T) {
	assert.NoError(t, countResult(vk.Success, "count"))
	assert.NoError(t, countResult(vk.Incomplete, "count"))

	err := countResult(vk.ErrorOutOfHostMemory, "count layers")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "count layers")
}

func TestWrapResult(t *testing.T) {
	assert.NoError(t, wrapResult(vk.Success, "create"))

	err := wrapResult(vk.ErrorLayerNotPresent, "create instance")
	assert.Contains(t, err.Error(), "create instance")
	assert.Equal(t, vk.Error(vk.ErrorLayerNotPresent).Error(), errors.Cause(err).Error())
}

func TestNewError(t *testing.T) {
	assert.NoError(t, newError(vk.Success))
	assert.Error(t, newError(vk.ErrorInitializationFailed))
}
