package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorPropertySampleIsConstantOverTime(t *testing.T) {
	p := newColorProperty(map[string]any{"color": [4]float64{1, 0, 0, 1}})

	u1 := p.Sample(0)
	u2 := p.Sample(100)

	assert.Equal(t, u1, u2)
}

func TestColorPropertyEqualsComparesByValueNotIdentity(t *testing.T) {
	a := newColorProperty(map[string]any{"color": [4]float64{0.2, 0.4, 0.6, 1}})
	b := newColorProperty(map[string]any{"color": [4]float64{0.2, 0.4, 0.6, 1}})
	c := newColorProperty(map[string]any{"color": [4]float64{0, 0, 0, 1}})

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestPeriodicPhaseWrapsAtSpeedBoundary(t *testing.T) {
	p := newPeriodic("test", map[string]any{"speed": 1})

	assert.InDelta(t, 0, p.phase(0), 1e-9)
	assert.InDelta(t, 0.5, p.phase(0.5), 1e-9)
	assert.InDelta(t, 0, p.phase(1), 1e-9)
}

// PolylineFlow carries direction, percent-lit, and gradient fields (spec
// §4.E "flow direction + speed + percent + gradient").
func TestPolylineFlowPropertyParams(t *testing.T) {
	p := newPolylineFlowProperty(map[string]any{"direction": 90.0, "percent": 0.3, "gradient": false})

	flow, ok := p.(*flowProperty)
	require.True(t, ok)
	assert.Equal(t, 90.0, flow.direction)
	assert.Equal(t, 0.3, flow.percent)
	assert.False(t, flow.gradient)

	uniforms := flow.Sample(0.25)
	assert.Equal(t, 90.0, uniforms["direction"])
	assert.Equal(t, 0.3, uniforms["percent"])
	assert.Equal(t, false, uniforms["gradient"])
}

func TestPolylineFlowDefaults(t *testing.T) {
	p := newPolylineFlowProperty(nil).(*flowProperty)

	assert.Equal(t, 0.0, p.direction)
	assert.Equal(t, 0.2, p.percent)
	assert.True(t, p.gradient)
}

func TestFirePropertyThresholdAndDistortion(t *testing.T) {
	p := newFireProperty(map[string]any{"threshold": 0.6, "distortion": 0.9}).(*fireProperty)

	uniforms := p.Sample(0)

	assert.Equal(t, 0.6, uniforms["threshold"])
	assert.Equal(t, 0.9, uniforms["distortion"])
}

func TestFireAndWaterPresetsBuildThroughFactory(t *testing.T) {
	f := NewFactory()

	ocean, ok := f.CreatePreset("ocean")
	require.True(t, ok)
	water := ocean.(*waterProperty)
	assert.Equal(t, 6.0, water.frequency)
	assert.Equal(t, 1.2, water.amplitude)

	campfire, ok := f.CreatePreset("campfire")
	require.True(t, ok)
	fire := campfire.(*fireProperty)
	assert.Equal(t, 0.8, fire.intensity)
}

func TestCreatePresetUnknownNameFails(t *testing.T) {
	f := NewFactory()

	_, ok := f.CreatePreset("no-such-preset")

	assert.False(t, ok)
}

func TestDynamicTexturePropertyCyclesFrames(t *testing.T) {
	p := newDynamicTextureProperty(map[string]any{"frames": []string{"a", "b", "c"}, "fps": 1.0})

	assert.Equal(t, Uniforms{"texture": "a"}, p.Sample(0))
	assert.Equal(t, Uniforms{"texture": "b"}, p.Sample(1))
	assert.Equal(t, Uniforms{"texture": "c"}, p.Sample(2))
	assert.Equal(t, Uniforms{"texture": "a"}, p.Sample(3))
}

func TestDynamicTexturePropertyAcceptsJSONDecodedFrames(t *testing.T) {
	var framesAny any = []interface{}{"x", "y"}
	p := newDynamicTextureProperty(map[string]any{"frames": framesAny})

	dtp := p.(*dynamicTextureProperty)
	assert.Equal(t, []string{"x", "y"}, dtp.frames)
}

func TestDashPropertyParamsRoundTrip(t *testing.T) {
	f := NewFactory()
	original, ok := f.Create("polyline.dash", map[string]any{"dashLength": 5.0, "gapLength": 3.0})
	require.True(t, ok)

	data, err := ToJSON(original)
	require.NoError(t, err)

	restored, ok, err := f.FromJSON(data)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, restored.Equals(original))
}
