package daybreak

import (
	"log/slog"
)

// ValidationLayer is the checked list of diagnostic layers the instance
// and device are created with. A disabled ValidationLayer carries no
// layers and never talks to the driver.
type ValidationLayer struct {
	enabled bool
	layers  []string
	logger  *slog.Logger
}

// NewValidationLayer verifies that every name in required is exposed by
// the host. The first missing name fails with MissingValidationLayer.
func NewValidationLayer(driver Driver, required []string, enabled bool, logger *slog.Logger) (*ValidationLayer, error) {
	logger = loggerOrDefault(logger)
	v := &ValidationLayer{enabled: enabled, logger: logger}
	if !enabled {
		logger.Debug("validation layers disabled by build configuration")
		return v, nil
	}

	if err := ValidateSupport(driver, required); err != nil {
		return nil, err
	}
	v.layers = mergeNames(required)
	logger.Info("validation layers supported", slog.Any("layers", v.layers))
	return v, nil
}

// ValidateSupport enumerates host layers and checks each required name.
func ValidateSupport(driver Driver, required []string) error {
	available, err := driver.InstanceLayers()
	if err != nil {
		return newFailure(MissingValidationLayer, ValidatingLayers, err)
	}
	if missing := missingNames(required, available); len(missing) > 0 {
		f := newFailure(MissingValidationLayer, ValidatingLayers, nil)
		f.Name = missing[0]
		return f
	}
	return nil
}

// Enabled reports whether validation is active.
func (v *ValidationLayer) Enabled() bool {
	return v != nil && v.enabled
}

// Layers returns the validated layer names, empty when disabled.
func (v *ValidationLayer) Layers() []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v.layers...)
}

// Release drops the layer state. It owns no driver resources.
func (v *ValidationLayer) Release() {
	if v == nil || v.layers == nil {
		return
	}
	v.layers = nil
	v.logger.Debug("released validation layer state")
}
