//go:build !release

package daybreak

// EnableValidation turns on validation layers and the debug messenger.
// Builds tagged release leave it off.
const EnableValidation = true
