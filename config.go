package geovu

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// config.go implements Engine/Layer configuration import/export (spec
// §6), grounded on the teacher's load/shd.go yaml-tagged-struct pattern
// ("the yaml is string based so that it is easier to read") generalized
// from shader configuration to engine/layer settings. The functional-
// options Attr type the teacher's own config.go used for NewEngine is
// kept for the same concern (constructing an Engine with optional
// overrides) rather than dropped, since geovu.NewEngine needs the same
// "small footprint, many optional knobs" shape vu.New's Config does.

// LayerConfig is the exportable/importable settings of one Layer (not
// its feature data, which is out of scope for config round trips per
// spec §6).
type LayerConfig struct {
	ID        string               `yaml:"id" json:"id"`
	Name      string               `yaml:"name" json:"name"`
	Visible   bool                 `yaml:"visible" json:"visible"`
	Opacity   float64              `yaml:"opacity" json:"opacity"`
	ZOrder    int                  `yaml:"zOrder" json:"zOrder"`
	TimeRange *AvailabilityWindow  `yaml:"timeRange,omitempty" json:"timeRange,omitempty"`
}

// PerformancePreset names one of the engine's built-in tuning profiles
// (spec §4.J).
type PerformancePreset string

const (
	PresetHighPerformance PerformancePreset = "high-performance"
	PresetBalanced        PerformancePreset = "balanced"
	PresetHighQuality     PerformancePreset = "high-quality"
)

// EngineConfig is the exportable/importable settings of an Engine: its
// performance preset and the settings of every layer it owns.
type EngineConfig struct {
	Preset PerformancePreset `yaml:"preset" json:"preset"`
	Layers []LayerConfig     `yaml:"layers" json:"layers"`
}

// engineOptions holds construction-time overrides for NewEngine,
// following the teacher's functional-options Attr pattern (config.go).
type engineOptions struct {
	preset PerformancePreset
	log    *Logger
	viewer Viewer
}

// EngineOption overrides NewEngine defaults.
type EngineOption func(*engineOptions)

// WithPreset selects the initial performance preset.
func WithPreset(p PerformancePreset) EngineOption {
	return func(o *engineOptions) { o.preset = p }
}

// WithLogger overrides the default diagnostic logger.
func WithLogger(l *Logger) EngineOption {
	return func(o *engineOptions) { o.log = l }
}

// WithViewer binds the external Viewer at construction time; it can also
// be set later via Engine.SetViewer.
func WithViewer(v Viewer) EngineOption {
	return func(o *engineOptions) { o.viewer = v }
}

// ExportEngineConfig marshals cfg to YAML, the same human-readable shape
// the teacher's shader configuration uses for its own hand-editable
// config files.
func ExportEngineConfig(cfg EngineConfig) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("geovu: export config: %w", err)
	}
	return out, nil
}

// ImportEngineConfig parses a previously exported YAML document.
func ImportEngineConfig(data []byte) (EngineConfig, error) {
	var cfg EngineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("geovu: import config: %w", err)
	}
	return cfg, nil
}

// presetTuning holds, for each PerformancePreset in presetTunings, to the renderer batching
// thresholds and culling cadence it implies (spec §4.J).
type presetTuning struct {
	batchMin    int
	instanceMin int
	cullEvery   time.Duration
}

var presetTunings = map[PerformancePreset]presetTuning{
	PresetHighPerformance: {batchMin: 2, instanceMin: 16, cullEvery: 200 * time.Millisecond},
	PresetBalanced:        {batchMin: 4, instanceMin: 64, cullEvery: 100 * time.Millisecond},
	PresetHighQuality:     {batchMin: 8, instanceMin: 256, cullEvery: 33 * time.Millisecond},
}
