package daybreak

import (
	"log/slog"
)

// DebugMessenger routes driver diagnostics to a sink for the lifetime of
// an instance. It must be destroyed before that instance.
type DebugMessenger struct {
	instance *InstanceContext
	handle   MessengerHandle
	logger   *slog.Logger
}

// AttachDebugMessenger installs sink on instance. It returns a nil
// messenger when validation is disabled.
func AttachDebugMessenger(instance *InstanceContext, validation *ValidationLayer, sink DiagnosticSink) (*DebugMessenger, error) {
	logger := instance.logger
	if !validation.Enabled() {
		return nil, nil
	}
	if sink == nil {
		sink = SlogSink{Logger: logger}
	}
	handle, err := instance.driver.CreateDebugMessenger(instance.handle, observer{sink})
	if err != nil {
		return nil, newFailure(DebugMessengerFailure, DebugAttached, err)
	}
	logger.Info("debug messenger attached")
	return &DebugMessenger{instance: instance, handle: handle, logger: logger}, nil
}

func (m *DebugMessenger) Handle() MessengerHandle {
	if m == nil {
		return 0
	}
	return m.handle
}

// Destroy detaches the messenger. Calls after the first do nothing.
func (m *DebugMessenger) Destroy() {
	if m == nil || m.handle == 0 {
		return
	}
	m.instance.driver.DestroyDebugMessenger(m.instance.handle, m.handle)
	m.handle = 0
	m.logger.Debug("destroyed debug messenger")
}

// observer shields the driver from a sink that panics; a diagnostic
// must never abort the call that raised it.
type observer struct {
	sink DiagnosticSink
}

func (o observer) Diagnostic(severity Severity, category Category, message string) {
	defer func() {
		if v := recover(); v != nil {
			slog.Error("diagnostic sink panicked", slog.Any("panic", v))
		}
	}()
	o.sink.Diagnostic(severity, category, message)
}
