package daybreak

import (
	"fmt"
	"strings"
)

// QueueFlags is a set of queue operation kinds. Bit values match the
// driver's queue capability bits.
type QueueFlags uint32

const (
	QueueGraphics      QueueFlags = 0x1
	QueueCompute       QueueFlags = 0x2
	QueueTransfer      QueueFlags = 0x4
	QueueSparseBinding QueueFlags = 0x8
)

// queueKinds lists the operation kinds in resolution order.
var queueKinds = []QueueFlags{QueueGraphics, QueueCompute, QueueTransfer, QueueSparseBinding}

func (f QueueFlags) Has(kind QueueFlags) bool {
	return f&kind == kind
}

func (f QueueFlags) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for _, k := range queueKinds {
		if f.Has(k) {
			names = append(names, k.name())
		}
	}
	return strings.Join(names, "|")
}

func (f QueueFlags) name() string {
	switch f {
	case QueueGraphics:
		return "graphics"
	case QueueCompute:
		return "compute"
	case QueueTransfer:
		return "transfer"
	case QueueSparseBinding:
		return "sparse"
	}
	return fmt.Sprintf("0x%x", uint32(f))
}

// DeviceFeatures is the subset of adapter features the engine can
// require or report.
type DeviceFeatures struct {
	GeometryShader     bool
	TessellationShader bool
	SamplerAnisotropy  bool
	MultiDrawIndirect  bool
	FillModeNonSolid   bool
	WideLines          bool
}

// Satisfies reports whether every feature set in required is also set
// in f.
func (f DeviceFeatures) Satisfies(required DeviceFeatures) bool {
	return (!required.GeometryShader || f.GeometryShader) &&
		(!required.TessellationShader || f.TessellationShader) &&
		(!required.SamplerAnisotropy || f.SamplerAnisotropy) &&
		(!required.MultiDrawIndirect || f.MultiDrawIndirect) &&
		(!required.FillModeNonSolid || f.FillModeNonSolid) &&
		(!required.WideLines || f.WideLines)
}

func (f DeviceFeatures) String() string {
	return fmt.Sprintf("geometry_shader: %t, tessellation_shader: %t, sampler_anisotropy: %t, "+
		"multi_draw_indirect: %t, fill_mode_non_solid: %t, wide_lines: %t",
		f.GeometryShader, f.TessellationShader, f.SamplerAnisotropy,
		f.MultiDrawIndirect, f.FillModeNonSolid, f.WideLines)
}

// CapabilityRequirement is what the application needs from the adapter
// it runs on.
type CapabilityRequirement struct {
	Queues   QueueFlags
	Features DeviceFeatures
}

func (r CapabilityRequirement) String() string {
	return fmt.Sprintf("queues: %s, features: {%s}", r.Queues, r.Features)
}
