// Package renderer implements the Renderer Factory, component H: given a
// batch of draw hints for one frame, it selects Single/Batched/Instanced
// strategy per spec §4.H's selection rule and groups features sharing a
// batching signature into one drawable.
//
// Grounded on the teacher's material.go asset-keying idiom (name-keyed
// lookup to avoid redundant GPU state) generalized from "one key per
// material" to "one key per (kind, materialSig, clampToGround) batch".
package renderer

// Strategy is how one batch of same-signature features is submitted to
// the host renderer.
type Strategy int

const (
	// Single draws each feature with its own draw call: used for small
	// batches or features with per-instance animation the host renderer
	// can't express as an instance attribute.
	Single Strategy = iota
	// Batched merges many features' geometry into one draw call sharing
	// uniform state: used for static, identically-styled features.
	Batched
	// Instanced submits one draw call with a per-instance transform/
	// attribute buffer: used for large identical-geometry counts (e.g.
	// thousands of identically-styled points).
	Instanced
)

func (s Strategy) String() string {
	switch s {
	case Batched:
		return "batched"
	case Instanced:
		return "instanced"
	default:
		return "single"
	}
}

// DrawItem is the minimal shape the factory needs from a feature to
// group and select a strategy; geovu's Feature.createVisual() populates
// this without the renderer package needing to import geovu (it would
// be a cycle — geovu imports renderer, not the reverse).
type DrawItem struct {
	Key           any // caller-supplied identity, e.g. FeatureID.
	Kind          string
	MaterialSig   string
	ClampToGround bool
	Animated      bool
	PositionCount int
}

// Batch is one group of items sharing a signature, tagged with the
// Strategy the Factory selected for it.
type Batch struct {
	Signature string
	Strategy  Strategy
	Items     []DrawItem
}

// Thresholds configures when Factory.Select upgrades a batch from Single
// to Batched or Instanced. Defaults match spec §4.H's "small batches
// draw individually, large uniform batches instance".
type Thresholds struct {
	BatchMin    int // minimum items sharing a signature to batch.
	InstanceMin int // minimum items to prefer instancing over batching.
}

// DefaultThresholds matches the performance preset "balanced" tuning
// (spec §4.J); Engine.SetPerformancePreset adjusts these for the other
// presets.
var DefaultThresholds = Thresholds{BatchMin: 4, InstanceMin: 64}

// instanceableKinds restricts Instanced to the feature kinds spec §4.H
// names explicitly ("billboard" and "model" in the source vocabulary —
// geovu's canonical point kind is the one that renders as a billboard,
// so "point" is the billboard-kind stand-in here). Every other kind
// (polyline, polygon, trajectory, relation, event, area, route) batches
// instead of instancing even past InstanceMin, since their geometry
// varies per feature in ways a shared-mesh instance buffer can't express.
var instanceableKinds = map[string]bool{"point": true, "model": true}

// Factory groups a frame's draw items into batches and selects a
// Strategy for each (spec §4.H).
type Factory struct {
	Thresholds Thresholds
}

// NewFactory returns a Factory using DefaultThresholds.
func NewFactory() *Factory {
	return &Factory{Thresholds: DefaultThresholds}
}

// signature computes the batching key: same kind, same material, same
// clampToGround (spec §4.H "batching signature = kind, materialSig,
// clampToGround"). Animated items never share a signature with
// non-animated ones since per-instance animation state can't be folded
// into a shared batch uniform.
func signature(kind, materialSig string, clampToGround, animated bool) string {
	a := "0"
	if animated {
		a = "1"
	}
	c := "0"
	if clampToGround {
		c = "1"
	}
	return kind + "|" + materialSig + "|" + c + "|" + a
}

// Select groups items into Batches and assigns each a Strategy per
// spec §4.H's selection rule:
//   - fewer than BatchMin items sharing a signature: Single (batching
//     overhead isn't worth it for a handful of draw calls).
//   - at least BatchMin but fewer than InstanceMin: Batched.
//   - at least InstanceMin, all sharing identical geometry vertex count
//     and none Animated: Instanced (animated items still batch, since
//     instancing assumes a shared static mesh).
func (f *Factory) Select(items []DrawItem) []Batch {
	groups := map[string][]DrawItem{}
	order := []string{}
	for _, it := range items {
		sig := signature(it.Kind, it.MaterialSig, it.ClampToGround, it.Animated)
		if _, seen := groups[sig]; !seen {
			order = append(order, sig)
		}
		groups[sig] = append(groups[sig], it)
	}

	batches := make([]Batch, 0, len(order))
	for _, sig := range order {
		group := groups[sig]
		batches = append(batches, Batch{
			Signature: sig,
			Strategy:  f.selectStrategy(group),
			Items:     group,
		})
	}
	return batches
}

func (f *Factory) selectStrategy(items []DrawItem) Strategy {
	if len(items) < f.Thresholds.BatchMin {
		return Single
	}
	if items[0].Animated {
		return Batched // animated uniforms vary per-frame, not per-instance attribute.
	}
	if len(items) >= f.Thresholds.InstanceMin && instanceableKinds[items[0].Kind] && uniformGeometry(items) {
		return Instanced
	}
	return Batched
}

func uniformGeometry(items []DrawItem) bool {
	first := items[0].PositionCount
	for _, it := range items[1:] {
		if it.PositionCount != first {
			return false
		}
	}
	return true
}
