package material

import "math"

// variants.go implements the predefined material Property variants from
// spec §4.E and the preset bindings from §9's expansion: Color (static),
// PolylineGlow/Dash/Arrow/Flow (animated line materials), PulseLine,
// Trail, DynamicTexture, Water, Fire. Each is a small closure-free struct
// so Equals can do field comparison instead of pointer identity, which
// the renderer factory's batching signature needs (two different
// *colorProperty values with the same color must batch together).

func registerBuiltins(f *Factory) {
	f.Register("color", newColorProperty)
	f.Register("polyline.glow", newPolylineGlowProperty)
	f.Register("polyline.dash", newPolylineDashProperty)
	f.Register("polyline.arrow", newPolylineArrowProperty)
	f.Register("polyline.flow", newPolylineFlowProperty)
	f.Register("pulseLine", newPulseLineProperty)
	f.Register("trail", newTrailProperty)
	f.Register("dynamicTexture", newDynamicTextureProperty)
	f.Register("water", newWaterProperty)
	f.Register("fire", newFireProperty)
}

func colorParam(params map[string]any, key string, def [4]float64) [4]float64 {
	switch v := params[key].(type) {
	case [4]float64:
		return v
	case []interface{}:
		if len(v) != 4 {
			return def
		}
		var out [4]float64
		for i, c := range v {
			n, ok := c.(float64)
			if !ok {
				return def
			}
			out[i] = n
		}
		return out
	case []float64:
		if len(v) != 4 {
			return def
		}
		return [4]float64{v[0], v[1], v[2], v[3]}
	default:
		return def
	}
}

func colorSlice(c [4]float64) []float64 { return []float64{c[0], c[1], c[2], c[3]} }

func floatParam(params map[string]any, key string, def float64) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	default:
		return def
	}
}

func stringParam(params map[string]any, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

func boolParam(params map[string]any, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

// colorProperty is a static, non-time-varying uniform snapshot.
type colorProperty struct{ color [4]float64 }

func newColorProperty(params map[string]any) Property {
	return &colorProperty{color: colorParam(params, "color", [4]float64{1, 1, 1, 1})}
}
func (p *colorProperty) Name() string           { return "color" }
func (p *colorProperty) Sample(float64) Uniforms { return Uniforms{"color": p.color} }
func (p *colorProperty) Equals(other Property) bool {
	o, ok := other.(*colorProperty)
	return ok && o.color == p.color
}
func (p *colorProperty) Params() map[string]any {
	return map[string]any{"color": colorSlice(p.color)}
}

// periodicProperty is the base shape shared by the speed-driven line
// animations below: a color, a speed, and a phase computed from t*speed.
type periodicProperty struct {
	name  string
	color [4]float64
	speed float64
}

func (p *periodicProperty) Name() string { return p.name }
func (p *periodicProperty) periodic() *periodicProperty { return p }
func (p *periodicProperty) Equals(other Property) bool {
	b, ok := other.(interface{ periodic() *periodicProperty })
	if !ok {
		return false
	}
	o := b.periodic()
	return o.name == p.name && o.color == p.color && o.speed == p.speed
}
func (p *periodicProperty) phase(t float64) float64 {
	return math.Mod(t*p.speed, 1)
}
func (p *periodicProperty) baseParams() map[string]any {
	return map[string]any{"color": colorSlice(p.color), "speed": p.speed}
}

func newPeriodic(name string, params map[string]any) *periodicProperty {
	return &periodicProperty{
		name:  name,
		color: colorParam(params, "color", [4]float64{1, 1, 1, 1}),
		speed: floatParam(params, "speed", 1),
	}
}

func newPolylineGlowProperty(params map[string]any) Property {
	p := newPeriodic("polyline.glow", params)
	return &glowProperty{periodicProperty: p}
}

type glowProperty struct{ *periodicProperty }

func (p *glowProperty) Sample(t float64) Uniforms {
	intensity := 0.5 + 0.5*math.Sin(2*math.Pi*p.phase(t))
	return Uniforms{"color": p.color, "intensity": intensity}
}
func (p *glowProperty) Params() map[string]any { return p.baseParams() }

func newPolylineDashProperty(params map[string]any) Property {
	p := newPeriodic("polyline.dash", params)
	return &dashProperty{
		periodicProperty: p,
		dashLength:       floatParam(params, "dashLength", 10),
		gapLength:        floatParam(params, "gapLength", 10),
	}
}

type dashProperty struct {
	*periodicProperty
	dashLength float64
	gapLength  float64
}

func (p *dashProperty) Sample(t float64) Uniforms {
	return Uniforms{
		"color":      p.color,
		"dashLength": p.dashLength,
		"gapLength":  p.gapLength,
		"offset":     p.phase(t) * (p.dashLength + p.gapLength),
	}
}
func (p *dashProperty) Equals(other Property) bool {
	o, ok := other.(*dashProperty)
	return ok && p.periodicProperty.Equals(o) &&
		o.dashLength == p.dashLength && o.gapLength == p.gapLength
}
func (p *dashProperty) Params() map[string]any {
	m := p.baseParams()
	m["dashLength"] = p.dashLength
	m["gapLength"] = p.gapLength
	return m
}

func newPolylineArrowProperty(params map[string]any) Property {
	p := newPeriodic("polyline.arrow", params)
	return &arrowProperty{periodicProperty: p}
}

type arrowProperty struct{ *periodicProperty }

func (p *arrowProperty) Sample(t float64) Uniforms {
	return Uniforms{"color": p.color, "offset": p.phase(t)}
}
func (p *arrowProperty) Params() map[string]any { return p.baseParams() }

func newPolylineFlowProperty(params map[string]any) Property {
	p := newPeriodic("polyline.flow", params)
	return &flowProperty{
		periodicProperty: p,
		direction:        floatParam(params, "direction", 0),
		percent:          floatParam(params, "percent", 0.2),
		gradient:         boolParam(params, "gradient", true),
	}
}

// flowProperty is PolylineFlow (spec §4.E): a speed-driven phase plus the
// direction the flow travels along the line, the fraction of the line lit
// at any instant, and whether the lit segment fades at its edges.
type flowProperty struct {
	*periodicProperty
	direction float64
	percent   float64
	gradient  bool
}

func (p *flowProperty) Sample(t float64) Uniforms {
	return Uniforms{
		"color":      p.color,
		"flowOffset": p.phase(t),
		"direction":  p.direction,
		"percent":    p.percent,
		"gradient":   p.gradient,
	}
}
func (p *flowProperty) Equals(other Property) bool {
	o, ok := other.(*flowProperty)
	return ok && p.periodicProperty.Equals(o) &&
		o.direction == p.direction && o.percent == p.percent && o.gradient == p.gradient
}
func (p *flowProperty) Params() map[string]any {
	m := p.baseParams()
	m["direction"] = p.direction
	m["percent"] = p.percent
	m["gradient"] = p.gradient
	return m
}

func newPulseLineProperty(params map[string]any) Property {
	p := newPeriodic("pulseLine", params)
	return &pulseLineProperty{periodicProperty: p, width: floatParam(params, "width", 2)}
}

type pulseLineProperty struct {
	*periodicProperty
	width float64
}

func (p *pulseLineProperty) Sample(t float64) Uniforms {
	scale := 1 + 0.5*math.Sin(2*math.Pi*p.phase(t))
	return Uniforms{"color": p.color, "width": p.width * scale}
}
func (p *pulseLineProperty) Equals(other Property) bool {
	o, ok := other.(*pulseLineProperty)
	return ok && p.periodicProperty.Equals(o) && o.width == p.width
}
func (p *pulseLineProperty) Params() map[string]any {
	m := p.baseParams()
	m["width"] = p.width
	return m
}

func newTrailProperty(params map[string]any) Property {
	p := newPeriodic("trail", params)
	return &trailProperty{periodicProperty: p, length: floatParam(params, "length", 0.1)}
}

type trailProperty struct {
	*periodicProperty
	length float64
}

func (p *trailProperty) Sample(t float64) Uniforms {
	return Uniforms{"color": p.color, "trailLength": p.length, "trailOffset": p.phase(t)}
}
func (p *trailProperty) Equals(other Property) bool {
	o, ok := other.(*trailProperty)
	return ok && p.periodicProperty.Equals(o) && o.length == p.length
}
func (p *trailProperty) Params() map[string]any {
	m := p.baseParams()
	m["length"] = p.length
	return m
}

// dynamicTextureProperty cycles through a sequence of texture frame URIs.
type dynamicTextureProperty struct {
	frames []string
	fps    float64
}

func newDynamicTextureProperty(params map[string]any) Property {
	return &dynamicTextureProperty{frames: stringSliceParam(params, "frames"), fps: floatParam(params, "fps", 12)}
}

func stringSliceParam(params map[string]any, key string) []string {
	switch v := params[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
func (p *dynamicTextureProperty) Name() string { return "dynamicTexture" }
func (p *dynamicTextureProperty) Sample(t float64) Uniforms {
	if len(p.frames) == 0 {
		return Uniforms{}
	}
	idx := int(t*p.fps) % len(p.frames)
	if idx < 0 {
		idx += len(p.frames)
	}
	return Uniforms{"texture": p.frames[idx]}
}
func (p *dynamicTextureProperty) Equals(other Property) bool {
	o, ok := other.(*dynamicTextureProperty)
	if !ok || o.fps != p.fps || len(o.frames) != len(p.frames) {
		return false
	}
	for i := range p.frames {
		if p.frames[i] != o.frames[i] {
			return false
		}
	}
	return true
}
func (p *dynamicTextureProperty) Params() map[string]any {
	return map[string]any{"frames": p.frames, "fps": p.fps}
}

// waterProperty and fireProperty back the "ocean/lake/river" and
// "campfire/torch/explosion" presets from spec §9's domain-stack
// expansion: parameterized animated surfaces built from the same
// periodic phase helper as the line materials above. Field names mirror
// spec §4.E's documented Water uniform schema (normalMap, frequency,
// amplitude, specular).
type waterProperty struct {
	*periodicProperty
	normalMap string
	frequency float64
	amplitude float64
	specular  float64
}

func newWaterProperty(params map[string]any) Property {
	p := newPeriodic("water", params)
	p.color = colorParam(params, "color", [4]float64{0.1, 0.3, 0.6, 0.85})
	return &waterProperty{
		periodicProperty: p,
		normalMap:        stringParam(params, "normalMap", ""),
		frequency:        floatParam(params, "frequency", 8),
		amplitude:        floatParam(params, "amplitude", 0.5),
		specular:         floatParam(params, "specular", 0.3),
	}
}
func (p *waterProperty) Sample(t float64) Uniforms {
	return Uniforms{
		"color":      p.color,
		"normalMap":  p.normalMap,
		"frequency":  p.frequency,
		"amplitude":  p.amplitude,
		"specular":   p.specular,
		"waveOffset": p.phase(t),
	}
}
func (p *waterProperty) Equals(other Property) bool {
	o, ok := other.(*waterProperty)
	return ok && p.periodicProperty.Equals(o) &&
		o.normalMap == p.normalMap && o.frequency == p.frequency &&
		o.amplitude == p.amplitude && o.specular == p.specular
}
func (p *waterProperty) Params() map[string]any {
	m := p.baseParams()
	m["normalMap"] = p.normalMap
	m["frequency"] = p.frequency
	m["amplitude"] = p.amplitude
	m["specular"] = p.specular
	return m
}

type fireProperty struct {
	*periodicProperty
	intensity  float64
	threshold  float64
	distortion float64
}

func newFireProperty(params map[string]any) Property {
	p := newPeriodic("fire", params)
	p.color = colorParam(params, "color", [4]float64{1, 0.5, 0.1, 1})
	p.speed = floatParam(params, "speed", 3)
	return &fireProperty{
		periodicProperty: p,
		intensity:        floatParam(params, "intensity", 1),
		threshold:        floatParam(params, "threshold", 0.3),
		distortion:       floatParam(params, "distortion", 0.8),
	}
}
func (p *fireProperty) Sample(t float64) Uniforms {
	flicker := p.intensity * (0.75 + 0.25*math.Sin(2*math.Pi*p.phase(t)*3))
	return Uniforms{
		"color":      p.color,
		"intensity":  flicker,
		"threshold":  p.threshold,
		"distortion": p.distortion,
	}
}
func (p *fireProperty) Equals(other Property) bool {
	o, ok := other.(*fireProperty)
	return ok && p.periodicProperty.Equals(o) &&
		o.intensity == p.intensity && o.threshold == p.threshold && o.distortion == p.distortion
}
func (p *fireProperty) Params() map[string]any {
	m := p.baseParams()
	m["intensity"] = p.intensity
	m["threshold"] = p.threshold
	m["distortion"] = p.distortion
	return m
}

// Preset names a ready-made parameter set for a variant, matching spec
// §9's "ocean, lake, river, campfire, torch, explosion" preset list.
var Presets = map[string]struct {
	Variant string
	Params  map[string]any
}{
	"ocean":     {"water", map[string]any{"color": [4]float64{0.05, 0.2, 0.45, 0.9}, "amplitude": 1.2, "frequency": 6, "specular": 0.6, "speed": 0.4}},
	"lake":      {"water", map[string]any{"color": [4]float64{0.15, 0.35, 0.4, 0.85}, "amplitude": 0.3, "frequency": 10, "specular": 0.3, "speed": 0.2}},
	"river":     {"water", map[string]any{"color": [4]float64{0.2, 0.45, 0.5, 0.8}, "amplitude": 0.2, "frequency": 14, "specular": 0.2, "speed": 1.5}},
	"campfire":  {"fire", map[string]any{"color": [4]float64{1, 0.55, 0.15, 1}, "intensity": 0.8, "speed": 2.5}},
	"torch":     {"fire", map[string]any{"color": [4]float64{1, 0.6, 0.2, 1}, "intensity": 0.6, "speed": 4}},
	"explosion": {"fire", map[string]any{"color": [4]float64{1, 0.3, 0.05, 1}, "intensity": 1.5, "speed": 8}},
}

// CreatePreset builds a Property from one of the named Presets.
func (f *Factory) CreatePreset(name string) (Property, bool) {
	preset, ok := Presets[name]
	if !ok {
		return nil, false
	}
	return f.Create(preset.Variant, preset.Params)
}
