package geovu

import "fmt"

// errors.go implements the error-kind taxonomy from spec §7.
//
// Validation and lifecycle-violation conditions are not returned as errors
// at all: per §7 they warn through Logger and the call degrades gracefully
// (an item is dropped, a no-op occurs). Configuration errors — the kind
// that must surface synchronously to the caller — and unrecoverable
// engine errors are represented as distinct error types here.

// ConfigError reports a configuration failure: FeatureFromJSON returns one
// for an unknown feature kind, and NewTrajectoryFeature for too few or
// unordered samples. It is always returned synchronously by the
// constructor that detected it, never delivered through an event. An
// unknown performance preset name is not an error: SetPerformancePreset
// logs a warning and keeps the previous preset. An unknown material type
// is not an error either: material.Factory.Create reports it with ok=false.
type ConfigError struct {
	Component string // "feature", "material", "preset", ...
	Reason    string
	fields    map[string]any
}

func newConfigError(component, reason string, fields map[string]any) *ConfigError {
	return &ConfigError{Component: component, Reason: reason, fields: fields}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("geovu: %s: %s", e.Component, e.Reason)
}

// Fields returns the structured context attached to the error, useful for
// logging middleware that wants more than the formatted message.
func (e *ConfigError) Fields() map[string]any {
	if e.fields == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(e.fields))
	for k, v := range e.fields {
		out[k] = v
	}
	return out
}

// UnrecoverableError wraps a failure during Engine.Initialize that leaves
// the engine unusable, e.g. a lost viewer binding (§7 "Unrecoverable").
// It is both returned from Initialize and carried as the payload of the
// "error" event.
type UnrecoverableError struct {
	Reason string
	Cause  error
}

func (e *UnrecoverableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("geovu: unrecoverable: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("geovu: unrecoverable: %s", e.Reason)
}

func (e *UnrecoverableError) Unwrap() error { return e.Cause }
