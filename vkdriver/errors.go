package vkdriver

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

func isError(ret vk.Result) bool {
	return ret != vk.Success
}

// newError turns a failed result into an error carrying a stack trace.
func newError(ret vk.Result) error {
	if !isError(ret) {
		return nil
	}
	return errors.WithStack(vk.Error(ret))
}

// countResult accepts Incomplete, which a count query may report when
// the list grows between calls.
func countResult(ret vk.Result, msg string) error {
	if ret == vk.Incomplete {
		return nil
	}
	return wrapResult(ret, msg)
}

func wrapResult(ret vk.Result, msg string) error {
	if !isError(ret) {
		return nil
	}
	return errors.Wrapf(vk.Error(ret), "%s (%d)", msg, ret)
}
