package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryCreateUnknownVariant(t *testing.T) {
	f := NewFactory()

	p, ok := f.Create("no-such-variant", nil)

	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestFactoryNamesListsBuiltins(t *testing.T) {
	f := NewFactory()

	names := f.Names()

	assert.Contains(t, names, "color")
	assert.Contains(t, names, "water")
	assert.Contains(t, names, "fire")
}

func TestFactoryRegisterCustomVariant(t *testing.T) {
	f := NewFactory()
	f.Register("custom", func(params map[string]any) Property {
		return &colorProperty{color: [4]float64{1, 0, 0, 1}}
	})

	p, ok := f.Create("custom", nil)

	require.True(t, ok)
	assert.Equal(t, "color", p.Name())
}

// spec §8 scenario 7: a Water material's frequency survives a toJSON ->
// fromJSON round trip.
func TestWaterMaterialJSONRoundTripPreservesFrequency(t *testing.T) {
	f := NewFactory()
	original, ok := f.Create("water", map[string]any{"frequency": 8.0})
	require.True(t, ok)

	data, err := ToJSON(original)
	require.NoError(t, err)

	restored, ok, err := f.FromJSON(data)
	require.NoError(t, err)
	require.True(t, ok)

	restoredWater, ok := restored.(*waterProperty)
	require.True(t, ok)
	assert.Equal(t, 8.0, restoredWater.frequency)
	assert.True(t, restored.Equals(original))
}

func TestFromJSONUnknownTypeReturnsNotOK(t *testing.T) {
	f := NewFactory()

	_, ok, err := f.FromJSON([]byte(`{"type":"no-such-variant","params":{}}`))

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFromJSONMalformedDataErrors(t *testing.T) {
	f := NewFactory()

	_, _, err := f.FromJSON([]byte(`not json`))

	assert.Error(t, err)
}
