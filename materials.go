package geovu

import (
	"time"

	"github.com/geovu/geovu/material"
)

// materials.go binds the material package's Property registry to a
// running Engine (spec §4.E Manager): Style.Material names resolve
// through here once per frame so the renderer factory's DrawHint carries
// a ready uniform snapshot instead of a name the renderer has to look up
// itself.
type materialManager struct {
	Lifecycle
	factory *material.Factory
	bound   map[string]material.Property // materialSig -> live instance
	start   time.Time
}

func newMaterialManager(log *Logger) *materialManager {
	return &materialManager{
		Lifecycle: NewLifecycle("material", log),
		factory:   material.NewFactory(),
		bound:     map[string]material.Property{},
		start:     time.Time{},
	}
}

// Factory exposes the underlying registry so callers can Register custom
// variants before features start binding to them.
func (m *materialManager) Factory() *material.Factory { return m.factory }

// Bind resolves name (a registered variant or a preset name) with params
// and caches the resulting Property under sig so repeated DrawHints for
// the same material signature reuse one instance. Firing
// EventDefinitionChanged lets any listener (e.g. a layer re-batching)
// know a fresh binding replaced a previous one under the same signature.
func (m *materialManager) Bind(sig, name string, params map[string]any) (material.Property, bool) {
	if p, ok := m.factory.Create(name, params); ok {
		m.bound[sig] = p
		m.Fire(EventDefinitionChanged, sig)
		return p, true
	}
	if p, ok := m.factory.CreatePreset(name); ok {
		m.bound[sig] = p
		m.Fire(EventDefinitionChanged, sig)
		return p, true
	}
	return nil, false
}

// Sample returns the uniform snapshot for sig at wall-clock time t, or
// nil if nothing is bound under that signature.
func (m *materialManager) Sample(sig string, t time.Time) material.Uniforms {
	p, ok := m.bound[sig]
	if !ok {
		return nil
	}
	if m.start.IsZero() {
		m.start = t
	}
	return p.Sample(t.Sub(m.start).Seconds())
}

// Unbind drops a cached material instance, e.g. when the last feature
// using it is removed (keeps the bound map from growing unbounded over a
// long-running Engine).
func (m *materialManager) Unbind(sig string) {
	delete(m.bound, sig)
}
