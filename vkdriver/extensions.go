package vkdriver

import vk "github.com/vulkan-go/vulkan"

// InstanceExtensions lists the instance extensions the loader exposes.
func InstanceExtensions() ([]string, error) {
	var count uint32
	if err := countResult(vk.EnumerateInstanceExtensionProperties("", &count, nil), "count instance extensions"); err != nil {
		return nil, err
	}
	list := make([]vk.ExtensionProperties, count)
	if err := wrapResult(vk.EnumerateInstanceExtensionProperties("", &count, list), "enumerate instance extensions"); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for i := range list[:count] {
		list[i].Deref()
		names = append(names, vk.ToString(list[i].ExtensionName[:]))
	}
	return names, nil
}

// ValidationLayers lists the instance layers the loader exposes.
func ValidationLayers() ([]string, error) {
	var count uint32
	if err := countResult(vk.EnumerateInstanceLayerProperties(&count, nil), "count instance layers"); err != nil {
		return nil, err
	}
	list := make([]vk.LayerProperties, count)
	if err := wrapResult(vk.EnumerateInstanceLayerProperties(&count, list), "enumerate instance layers"); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for i := range list[:count] {
		list[i].Deref()
		names = append(names, vk.ToString(list[i].LayerName[:]))
	}
	return names, nil
}

// safeString null-terminates s for the C side.
func safeString(s string) string {
	if len(s) == 0 || s[len(s)-1] != 0 {
		return s + "\x00"
	}
	return s
}

func safeStrings(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = safeString(s)
	}
	return out
}
