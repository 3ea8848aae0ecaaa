package daybreak

import "fmt"

// NoFamily marks a queue family slot that has not been resolved.
const NoFamily = -1

// QueueFamilyProperties describes one queue family of an adapter.
type QueueFamilyProperties struct {
	Flags QueueFlags
	Count uint32
}

// QueueOperationSupport is the operation matrix of a single queue family.
// Present is only meaningful when a surface takes part in selection.
type QueueOperationSupport struct {
	Graphics      bool
	Compute       bool
	Transfer      bool
	SparseBinding bool
	Present       bool
}

// NewQueueOperationSupport tests a family's capability bits against each
// operation kind.
func NewQueueOperationSupport(family QueueFamilyProperties, present bool) QueueOperationSupport {
	return QueueOperationSupport{
		Graphics:      family.Flags.Has(QueueGraphics),
		Compute:       family.Flags.Has(QueueCompute),
		Transfer:      family.Flags.Has(QueueTransfer),
		SparseBinding: family.Flags.Has(QueueSparseBinding),
		Present:       present,
	}
}

func (s QueueOperationSupport) String() string {
	return fmt.Sprintf("graphics: %t, compute: %t, transfer: %t, sparse: %t, present: %t",
		s.Graphics, s.Compute, s.Transfer, s.SparseBinding, s.Present)
}

// QueueFamilyResolution holds, for each operation kind, the index of the
// first queue family found to support it. One family may resolve several
// kinds.
type QueueFamilyResolution struct {
	Graphics      int
	Compute       int
	Transfer      int
	SparseBinding int
	Present       int
}

// NewQueueFamilyResolution returns a resolution with every slot unresolved.
func NewQueueFamilyResolution() QueueFamilyResolution {
	return QueueFamilyResolution{
		Graphics:      NoFamily,
		Compute:       NoFamily,
		Transfer:      NoFamily,
		SparseBinding: NoFamily,
		Present:       NoFamily,
	}
}

// Mark records index for every kind the family supports that is still
// unresolved. Earlier families always win.
func (r *QueueFamilyResolution) Mark(support QueueOperationSupport, index int) {
	markFirst(&r.Graphics, support.Graphics, index)
	markFirst(&r.Compute, support.Compute, index)
	markFirst(&r.Transfer, support.Transfer, index)
	markFirst(&r.SparseBinding, support.SparseBinding, index)
	markFirst(&r.Present, support.Present, index)
}

func markFirst(slot *int, supported bool, index int) {
	if supported && *slot == NoFamily {
		*slot = index
	}
}

// Family returns the index resolved for a single operation kind.
func (r QueueFamilyResolution) Family(kind QueueFlags) (int, bool) {
	var idx int
	switch kind {
	case QueueGraphics:
		idx = r.Graphics
	case QueueCompute:
		idx = r.Compute
	case QueueTransfer:
		idx = r.Transfer
	case QueueSparseBinding:
		idx = r.SparseBinding
	default:
		return NoFamily, false
	}
	return idx, idx != NoFamily
}

// IsComplete reports whether every required kind is resolved, and, when
// a surface takes part, whether presentation is resolved too. Slots that
// are not required are ignored.
func (r QueueFamilyResolution) IsComplete(required QueueFlags, surface bool) bool {
	for _, kind := range queueKinds {
		if !required.Has(kind) {
			continue
		}
		if _, ok := r.Family(kind); !ok {
			return false
		}
	}
	return !surface || r.Present != NoFamily
}

// SubmissionFamily picks the family the logical device creates its queue
// on: graphics when resolved, otherwise the first resolved of compute,
// transfer and sparse binding.
func (r QueueFamilyResolution) SubmissionFamily() (int, bool) {
	for _, kind := range queueKinds {
		if idx, ok := r.Family(kind); ok {
			return idx, true
		}
	}
	return NoFamily, false
}

func (r QueueFamilyResolution) String() string {
	return fmt.Sprintf("graphics: %d, compute: %d, transfer: %d, sparse: %d, present: %d",
		r.Graphics, r.Compute, r.Transfer, r.SparseBinding, r.Present)
}
