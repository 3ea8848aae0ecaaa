package vkdriver

import (
	"fmt"

	"github.com/carsonclarke570/daybreak"
	vk "github.com/vulkan-go/vulkan"
)

func adapterType(t vk.PhysicalDeviceType) daybreak.AdapterType {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return daybreak.AdapterIntegrated
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return daybreak.AdapterDiscrete
	case vk.PhysicalDeviceTypeVirtualGpu:
		return daybreak.AdapterVirtual
	case vk.PhysicalDeviceTypeCpu:
		return daybreak.AdapterCPU
	}
	return daybreak.AdapterOther
}

func queueFlags(flags vk.QueueFlags) daybreak.QueueFlags {
	var f daybreak.QueueFlags
	if flags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
		f |= daybreak.QueueGraphics
	}
	if flags&vk.QueueFlags(vk.QueueComputeBit) != 0 {
		f |= daybreak.QueueCompute
	}
	if flags&vk.QueueFlags(vk.QueueTransferBit) != 0 {
		f |= daybreak.QueueTransfer
	}
	if flags&vk.QueueFlags(vk.QueueSparseBindingBit) != 0 {
		f |= daybreak.QueueSparseBinding
	}
	return f
}

func deviceFeatures(f *vk.PhysicalDeviceFeatures) daybreak.DeviceFeatures {
	return daybreak.DeviceFeatures{
		GeometryShader:     f.GeometryShader == vk.True,
		TessellationShader: f.TessellationShader == vk.True,
		SamplerAnisotropy:  f.SamplerAnisotropy == vk.True,
		MultiDrawIndirect:  f.MultiDrawIndirect == vk.True,
		FillModeNonSolid:   f.FillModeNonSolid == vk.True,
		WideLines:          f.WideLines == vk.True,
	}
}

// enabledFeatures builds the feature struct of a device request. Only
// requested features are turned on.
func enabledFeatures(f daybreak.DeviceFeatures) vk.PhysicalDeviceFeatures {
	return vk.PhysicalDeviceFeatures{
		GeometryShader:     bool32(f.GeometryShader),
		TessellationShader: bool32(f.TessellationShader),
		SamplerAnisotropy:  bool32(f.SamplerAnisotropy),
		MultiDrawIndirect:  bool32(f.MultiDrawIndirect),
		FillModeNonSolid:   bool32(f.FillModeNonSolid),
		WideLines:          bool32(f.WideLines),
	}
}

func bool32(b bool) vk.Bool32 {
	if b {
		return vk.True
	}
	return vk.False
}

// severity maps debug report flags onto a diagnostic severity and
// category. Errors take precedence over warnings, warnings over info.
func severity(flags vk.DebugReportFlags) (daybreak.Severity, daybreak.Category) {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		return daybreak.SeverityError, daybreak.CategoryValidation
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		return daybreak.SeverityWarning, daybreak.CategoryPerformance
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		return daybreak.SeverityWarning, daybreak.CategoryValidation
	case flags&vk.DebugReportFlags(vk.DebugReportDebugBit) != 0:
		return daybreak.SeverityVerbose, daybreak.CategoryGeneral
	}
	return daybreak.SeverityInfo, daybreak.CategoryGeneral
}

func reportMessage(layerPrefix string, messageCode int32, message string) string {
	return fmt.Sprintf("[%s] Code %d : %s", layerPrefix, messageCode, message)
}
