package vkdriver

import (
	"unsafe"

	"github.com/carsonclarke570/daybreak"
	vk "github.com/vulkan-go/vulkan"
)

// reportCallback adapts a diagnostic sink to the debug report ABI. The
// returned function always answers false so the triggering call goes on.
func reportCallback(sink daybreak.DiagnosticSink) func(vk.DebugReportFlags, vk.DebugReportObjectType,
	uint64, uint, int32, string, string, unsafe.Pointer) vk.Bool32 {
	return func(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
		object uint64, location uint, messageCode int32, pLayerPrefix string,
		pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

		sev, category := severity(flags)
		sink.Diagnostic(sev, category, reportMessage(pLayerPrefix, messageCode, pMessage))
		return vk.Bool32(vk.False)
	}
}
