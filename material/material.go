// Package material implements the Material-Property System, component E:
// time-driven uniform snapshots bound to a Style.Material name and
// resolved once per frame by the Engine before handing draw calls to the
// renderer (spec §4.E).
//
// The registry is grounded on the teacher's asset-manager idiom (the root
// package's material.go keys a *material by name+tag) generalized to a
// type-keyed constructor registry, the same shape the eventsourcing
// registry pattern elsewhere in the retrieval pack uses for its event
// types: a name maps to a constructor, not a value, so callers can ask
// for a fresh instance of "water" or "fire" repeatedly.
package material

import "sync"

// Uniforms is the resolved set of shader-facing values a Property
// computes for a given instant. geovu treats this as an opaque map the
// host renderer interprets; this package never looks inside it.
type Uniforms map[string]any

// Property is a time-driven material binding (spec §4.E): given a time
// offset in seconds since the property started, it returns the uniform
// snapshot to hand the renderer for that frame.
type Property interface {
	// Name identifies which registered variant produced this instance.
	Name() string
	// Sample computes the uniform snapshot at t seconds since start.
	Sample(t float64) Uniforms
	// Equals reports whether other is the same variant with the same
	// parameters, used by the renderer factory's batching signature.
	Equals(other Property) bool
	// Params returns the constructor parameters that reproduce this
	// instance, the same map a Factory.Create(Name(), Params()) round
	// trip consumes (spec §4.E "fromJSON").
	Params() map[string]any
}

// Constructor builds a fresh Property from caller-supplied parameters.
// params is the same map a Style.Raw side channel would carry for this
// material's knobs (e.g. {"color": [...], "speed": 1.5}).
type Constructor func(params map[string]any) Property

// Factory is a name-keyed registry of material Property constructors
// (spec §4.E "predefined variants" plus any caller-registered extension).
type Factory struct {
	mu   sync.RWMutex
	ctor map[string]Constructor
}

// NewFactory returns a Factory pre-populated with the predefined variants.
func NewFactory() *Factory {
	f := &Factory{ctor: map[string]Constructor{}}
	registerBuiltins(f)
	return f
}

// Register adds or replaces the constructor for name.
func (f *Factory) Register(name string, ctor Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctor[name] = ctor
}

// Create builds a Property for name. ok is false for an unregistered name.
func (f *Factory) Create(name string, params map[string]any) (Property, bool) {
	f.mu.RLock()
	ctor, ok := f.ctor[name]
	f.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return ctor(params), true
}

// Names lists every registered variant name.
func (f *Factory) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, 0, len(f.ctor))
	for name := range f.ctor {
		out = append(out, name)
	}
	return out
}
