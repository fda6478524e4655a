package geovu

import "github.com/google/uuid"

// FeatureID uniquely identifies a Feature within a single Engine instance
// (spec §3 invariant 1). Callers may supply their own id in raw data; one
// is generated with google/uuid when absent (spec §4.B.6).
type FeatureID string

// newFeatureID generates a fresh random feature id.
func newFeatureID() FeatureID {
	return FeatureID(uuid.NewString())
}

// LayerID uniquely identifies a Layer within a single Engine instance.
// Unlike feature ids these are always caller-supplied names (spec §8
// scenario 1: `engine.createLayer("L1")`), so no generator is needed.
type LayerID string
