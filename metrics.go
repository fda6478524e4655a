package geovu

import "github.com/prometheus/client_golang/prometheus"

// metrics.go optionally exports the Engine's stats snapshot as
// Prometheus gauges, grounded on the pkg/metrics registry-of-gauges
// shape used elsewhere in the retrieval pack (a package-level Registry
// plus Namespace/Subsystem-qualified GaugeOpts per concern). Wiring this
// is opt-in: an Engine never registers metrics on its own, since a
// headless/test Engine shouldn't fight over the default registry with
// whatever the host process already exports.

// Metrics is a set of Prometheus gauges mirroring EngineStats. Call
// Observe(engine.StatsSnapshot()) after a MaybeCull/Tick to update them.
type Metrics struct {
	totalFeatures   prometheus.Gauge
	visibleFeatures prometheus.Gauge
	culledFeatures  prometheus.Gauge
	batchedDraws    prometheus.Gauge
	instancedDraws  prometheus.Gauge
	singleDraws     prometheus.Gauge
	layerCount      prometheus.Gauge
	lastCullSeconds prometheus.Gauge
}

// NewMetrics builds and registers a Metrics set on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		totalFeatures:   newGauge("features_total", "Total features registered across all layers."),
		visibleFeatures: newGauge("features_visible", "Features eligible and drawn in the last culling pass."),
		culledFeatures:  newGauge("features_culled", "Features culled in the last pass."),
		batchedDraws:    newGauge("draws_batched", "Batched draw groups in the last pass."),
		instancedDraws:  newGauge("draws_instanced", "Instanced draw groups in the last pass."),
		singleDraws:     newGauge("draws_single", "Single (unbatched) draw calls in the last pass."),
		layerCount:      newGauge("layers_total", "Number of registered layers."),
		lastCullSeconds: newGauge("last_cull_seconds", "Wall-clock duration of the last culling pass."),
	}
	for _, g := range []prometheus.Gauge{
		m.totalFeatures, m.visibleFeatures, m.culledFeatures,
		m.batchedDraws, m.instancedDraws, m.singleDraws,
		m.layerCount, m.lastCullSeconds,
	} {
		reg.MustRegister(g)
	}
	return m
}

func newGauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "geovu",
		Subsystem: "engine",
		Name:      name,
		Help:      help,
	})
}

// Observe updates every gauge from a stats snapshot (spec §4.J).
func (m *Metrics) Observe(s EngineStats) {
	m.totalFeatures.Set(float64(s.TotalFeatures))
	m.visibleFeatures.Set(float64(s.VisibleFeatures))
	m.culledFeatures.Set(float64(s.CulledFeatures))
	m.batchedDraws.Set(float64(s.BatchedDraws))
	m.instancedDraws.Set(float64(s.InstancedDraws))
	m.singleDraws.Set(float64(s.SingleDraws))
	m.layerCount.Set(float64(s.LayerCount))
	m.lastCullSeconds.Set(s.LastCullTime.Seconds())
}
