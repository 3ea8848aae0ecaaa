package daybreak

// DebugReportExtension is the instance extension that carries the
// debug callback. It is only requested when validation is enabled.
const DebugReportExtension = "VK_EXT_debug_report"

// KhronosValidationLayer is the layer required by validation builds.
const KhronosValidationLayer = "VK_LAYER_KHRONOS_validation"

// DefaultValidationLayers is the required layer list of validation builds.
var DefaultValidationLayers = []string{KhronosValidationLayer}

// missingNames returns the entries of required that have no exact,
// case-sensitive match in available, in the order they were required.
func missingNames(required, available []string) []string {
	present := make(map[string]struct{}, len(available))
	for _, name := range available {
		present[name] = struct{}{}
	}
	var missing []string
	for _, name := range required {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// mergeNames concatenates lists, dropping empty names and repeats while
// keeping first-seen order.
func mergeNames(lists ...[]string) []string {
	seen := make(map[string]struct{})
	merged := []string{}
	for _, list := range lists {
		for _, name := range list {
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}
	return merged
}
