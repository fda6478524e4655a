package geovu

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/tidwall/gjson"
)

// adapter.go implements the Data Adapter, component B: turning
// heterogeneous raw records (a JSON array of objects, most commonly)
// into Features, probing several documented position/timestamp shapes
// per record rather than requiring one fixed schema (spec §4.B).
//
// gjson.GetBytes/result.Exists()/.Float() is the same raw-field
// extraction idiom the r3e-network-service_layer datafeeds service uses
// to pull a price out of an arbitrary upstream JSON response by path
// instead of unmarshaling into a fixed struct — the same "we don't
// control the shape, so probe for it" problem this adapter solves for
// positions, timestamps, and ids.

// AdaptHint steers the adapter when the caller already knows something
// about the raw data's shape (spec §4.B "hint overrides auto-detection").
type AdaptHint struct {
	Kind         Kind   // force a specific Feature kind instead of inferring one.
	IDPath       string // gjson path to a record's id field.
	NamePath     string // gjson path to a record's display name field.
	PositionPath string // gjson path to a {lon,lat[,height]} object or [lon,lat] array.
	TimePath     string // gjson path to an RFC3339 timestamp field.
	GroupByPath  string // gjson path used to group records into one TrajectoryFeature per distinct value.
}

// AdaptOptions controls default-filling behavior during adaptation.
type AdaptOptions struct {
	DefaultStyle *Style
	DefaultKind  Kind // used when neither AdaptHint.Kind nor shape-detection can decide; defaults to KindPoint.
}

// candidate position/timestamp field names probed in order when no hint
// is given (spec §4.B "documented shapes").
var positionPaths = []string{"position", "location", "coords", "coordinates", "geometry.coordinates"}
var lonLatPaths = [][2]string{{"longitude", "latitude"}, {"lon", "lat"}, {"lng", "lat"}, {"x", "y"}}
var heightPaths = []string{"height", "alt", "altitude", "z"}
var timePaths = []string{"time", "timestamp", "ts", "date", "datetime"}
var idPaths = []string{"id", "ID", "_id", "uid"}
var namePaths = []string{"name", "title", "label"}
var groupPaths = []string{"trackId", "track_id", "vehicleId", "vehicle_id", "entityId"}

// multi-position field names probed for the area/route ring-or-path shape
// (spec §4.B.2 "≥3 ring positions → area, ≥2 positions → route").
var positionsPaths = []string{"positions", "points", "path", "ring", "vertices"}
var sourcePaths = []string{"source", "sourceId", "source_id"}
var targetPaths = []string{"target", "targetId", "target_id"}

// AdaptData turns a raw JSON array of records into Features (spec §4.B).
// Records missing a resolvable position are skipped with a diagnostic
// collected into the returned error via errors.Join rather than
// aborting the whole batch (spec §7 "partial batch failures warn and
// continue").
func AdaptData(raw []byte, hint *AdaptHint, opts *AdaptOptions) ([]Feature, error) {
	if hint == nil {
		hint = &AdaptHint{}
	}
	if opts == nil {
		opts = &AdaptOptions{}
	}
	result := gjson.ParseBytes(raw)
	if !result.IsArray() {
		result = gjson.Parse("[" + result.Raw + "]")
	}

	var diagnostics []error
	groups := map[string][]gjson.Result{}
	order := []string{}

	result.ForEach(func(_, record gjson.Result) bool {
		key := ""
		if hint.GroupByPath != "" {
			key = record.Get(hint.GroupByPath).String()
		} else {
			key = firstMatch(record, groupPaths)
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], record)
		return true
	})

	features := make([]Feature, 0, len(order))
	for _, key := range order {
		records := groups[key]
		if key != "" && len(records) > 1 {
			f, err := buildTrajectory(key, records, hint)
			if err != nil {
				diagnostics = append(diagnostics, err)
				continue
			}
			applyDefaultStyle(f, opts)
			features = append(features, f)
			continue
		}
		for _, record := range records {
			f, err := buildSingle(record, hint, opts)
			if err != nil {
				diagnostics = append(diagnostics, err)
				continue
			}
			features = append(features, f)
		}
	}

	if len(diagnostics) > 0 {
		return features, errors.Join(diagnostics...)
	}
	return features, nil
}

func firstMatch(record gjson.Result, paths []string) string {
	for _, p := range paths {
		if v := record.Get(p); v.Exists() {
			return v.String()
		}
	}
	return ""
}

// extractPosition probes the documented shapes in order: an explicit
// hint path, then each of positionPaths as either a {lon,lat[,h]} object
// or a [lon,lat[,h]] array, then flat lon/lat field pairs directly on
// the record (spec §4.B).
func extractPosition(record gjson.Result, hint *AdaptHint) (Position, bool) {
	if hint.PositionPath != "" {
		if p, ok := positionFrom(record.Get(hint.PositionPath)); ok {
			return p, true
		}
	}
	for _, path := range positionPaths {
		if p, ok := positionFrom(record.Get(path)); ok {
			return p, true
		}
	}
	for _, pair := range lonLatPaths {
		lon, lat := record.Get(pair[0]), record.Get(pair[1])
		if lon.Exists() && lat.Exists() {
			return Position{Longitude: lon.Float(), Latitude: lat.Float(), Height: firstFloat(record, heightPaths)}, true
		}
	}
	return Position{}, false
}

func positionFrom(v gjson.Result) (Position, bool) {
	if !v.Exists() {
		return Position{}, false
	}
	if v.IsArray() {
		arr := v.Array()
		if len(arr) < 2 {
			return Position{}, false
		}
		p := Position{Longitude: arr[0].Float(), Latitude: arr[1].Float()}
		if len(arr) > 2 {
			p.Height = arr[2].Float()
		}
		return p, true
	}
	for _, pair := range lonLatPaths {
		lon, lat := v.Get(pair[0]), v.Get(pair[1])
		if lon.Exists() && lat.Exists() {
			return Position{Longitude: lon.Float(), Latitude: lat.Float(), Height: firstFloat(v, heightPaths)}, true
		}
	}
	return Position{}, false
}

func firstFloat(record gjson.Result, paths []string) float64 {
	for _, p := range paths {
		if v := record.Get(p); v.Exists() {
			return v.Float()
		}
	}
	return 0
}

func extractTime(record gjson.Result, hint *AdaptHint) (time.Time, bool) {
	paths := timePaths
	if hint.TimePath != "" {
		paths = append([]string{hint.TimePath}, paths...)
	}
	for _, p := range paths {
		v := record.Get(p)
		if !v.Exists() {
			continue
		}
		if t, err := time.Parse(time.RFC3339, v.String()); err == nil {
			return t, true
		}
		if v.Type == gjson.Number {
			return time.Unix(0, int64(v.Float()*float64(time.Second))), true
		}
	}
	return time.Time{}, false
}

func extractID(record gjson.Result, hint *AdaptHint) FeatureID {
	paths := idPaths
	if hint.IDPath != "" {
		paths = append([]string{hint.IDPath}, paths...)
	}
	for _, p := range paths {
		if v := record.Get(p); v.Exists() {
			return FeatureID(v.String())
		}
	}
	return newFeatureID()
}

func extractName(record gjson.Result, hint *AdaptHint) string {
	paths := namePaths
	if hint.NamePath != "" {
		paths = append([]string{hint.NamePath}, paths...)
	}
	for _, p := range paths {
		if v := record.Get(p); v.Exists() {
			return v.String()
		}
	}
	return ""
}

// extractPositions probes the documented multi-position shapes: an
// explicit hint path, then each of positionsPaths as an array of
// {lon,lat[,h]} objects or [lon,lat[,h]] arrays, then a GeoJSON
// LineString/Polygon-ring `geometry.coordinates` array of arrays (spec
// §4.B.2 "≥3 ring positions → area, ≥2 positions → route").
func extractPositions(record gjson.Result, hint *AdaptHint) ([]Position, bool) {
	paths := positionsPaths
	if hint.PositionPath != "" {
		paths = append([]string{hint.PositionPath}, paths...)
	}
	for _, p := range paths {
		if out, ok := positionsFrom(record.Get(p)); ok {
			return out, true
		}
	}
	if out, ok := positionsFrom(record.Get("geometry.coordinates")); ok {
		return out, true
	}
	return nil, false
}

func positionsFrom(v gjson.Result) ([]Position, bool) {
	if !v.Exists() || !v.IsArray() {
		return nil, false
	}
	arr := v.Array()
	// A single [lon,lat[,h]] tuple (not a ring) is not a multi-position shape.
	if len(arr) == 0 || (len(arr) <= 3 && !arr[0].IsArray() && !arr[0].IsObject()) {
		return nil, false
	}
	out := make([]Position, 0, len(arr))
	for _, item := range arr {
		p, ok := positionFrom(item)
		if !ok {
			return nil, false
		}
		out = append(out, p)
	}
	if len(out) < 2 {
		return nil, false
	}
	return out, true
}

// extractSamples probes the trajectory shape: a `samples` array of
// per-keyframe objects, each resolving its own position/time via the
// same probing rules used for single-position records (spec §4.B.2
// "has samples → trajectory").
func extractSamples(record gjson.Result, hint *AdaptHint) ([]TrajectorySample, bool) {
	v := record.Get("samples")
	if !v.Exists() || !v.IsArray() {
		return nil, false
	}
	var out []TrajectorySample
	v.ForEach(func(_, item gjson.Result) bool {
		pos, ok := extractPosition(item, hint)
		if !ok {
			return true
		}
		t, _ := extractTime(item, hint)
		out = append(out, TrajectorySample{Time: t, Position: pos})
		return true
	})
	if len(out) < 2 {
		return nil, false
	}
	return out, true
}

// extractRelationEndpoints probes the relation shape: a source id and a
// target id field (spec §4.B.2 "has source+target → relation").
func extractRelationEndpoints(record gjson.Result) (FeatureID, FeatureID, bool) {
	source := firstMatch(record, sourcePaths)
	target := firstMatch(record, targetPaths)
	if source == "" || target == "" {
		return "", "", false
	}
	return FeatureID(source), FeatureID(target), true
}

// looksLikeEvent probes the event shape: a level or eventType field
// (spec §4.B.2 "has level/eventType → event").
func looksLikeEvent(record gjson.Result) bool {
	return record.Get("level").Exists() || record.Get("eventType").Exists()
}

// inferKind resolves a record's Feature kind per spec §4.B.2's priority
// order: explicit hint, then shape detection (samples, source+target,
// level/eventType, ring positions, path positions), then the caller's
// configured default, then point.
func inferKind(record gjson.Result, hint *AdaptHint, opts *AdaptOptions) Kind {
	if hint.Kind != "" {
		return hint.Kind
	}
	if _, ok := extractSamples(record, hint); ok {
		return KindTrajectory
	}
	if _, _, ok := extractRelationEndpoints(record); ok {
		return KindRelation
	}
	if looksLikeEvent(record) {
		return KindEvent
	}
	if positions, ok := extractPositions(record, hint); ok {
		if len(positions) >= 3 {
			return KindArea
		}
		return KindRoute
	}
	if opts.DefaultKind != "" {
		return opts.DefaultKind
	}
	return KindPoint
}

func buildSingle(record gjson.Result, hint *AdaptHint, opts *AdaptOptions) (Feature, error) {
	kind := inferKind(record, hint, opts)
	id := extractID(record, hint)
	name := extractName(record, hint)

	var f Feature
	switch kind {
	case KindTrajectory:
		samples, ok := extractSamples(record, hint)
		if !ok {
			return nil, fmt.Errorf("geovu: adapt: no resolvable samples in record %s", record.Raw)
		}
		traj, err := NewTrajectoryFeature(id, name, samples)
		if err != nil {
			return nil, err
		}
		f = traj
	case KindRelation:
		sourceID, targetID, ok := extractRelationEndpoints(record)
		if !ok {
			return nil, fmt.Errorf("geovu: adapt: no resolvable source/target in record %s", record.Raw)
		}
		f = NewRelationFeature(id, name, sourceID, targetID)
	case KindEvent:
		pos, ok := extractPosition(record, hint)
		if !ok {
			return nil, fmt.Errorf("geovu: adapt: no resolvable position in record %s", record.Raw)
		}
		level := record.Get("level").String()
		if level == "" {
			level = record.Get("eventType").String()
		}
		var radius *float64
		if v := record.Get("radius"); v.Exists() {
			r := v.Float()
			radius = &r
		}
		f = NewEventFeature(id, name, pos, level, radius)
	case KindArea:
		positions, ok := extractPositions(record, hint)
		if !ok || len(positions) < 3 {
			return nil, fmt.Errorf("geovu: adapt: fewer than 3 resolvable ring positions in record %s", record.Raw)
		}
		f = NewAreaFeature(id, name, positions)
	case KindRoute:
		positions, ok := extractPositions(record, hint)
		if !ok || len(positions) < 2 {
			return nil, fmt.Errorf("geovu: adapt: fewer than 2 resolvable positions in record %s", record.Raw)
		}
		f = NewRouteFeature(id, name, positions, record.Get("routeType").String())
	case KindModel:
		pos, ok := extractPosition(record, hint)
		if !ok {
			return nil, fmt.Errorf("geovu: adapt: no resolvable position in record %s", record.Raw)
		}
		f = NewModelFeature(id, name, pos, record.Get("uri").String())
	default:
		pos, ok := extractPosition(record, hint)
		if !ok {
			return nil, fmt.Errorf("geovu: adapt: no resolvable position in record %s", record.Raw)
		}
		f = NewPointFeature(id, name, pos)
	}
	applyDefaultStyle(f, opts)
	return f, nil
}

func buildTrajectory(key string, records []gjson.Result, hint *AdaptHint) (Feature, error) {
	samples := make([]TrajectorySample, 0, len(records))
	var name string
	for _, record := range records {
		pos, ok := extractPosition(record, hint)
		if !ok {
			continue
		}
		t, ok := extractTime(record, hint)
		if !ok {
			t = time.Time{}
		}
		if name == "" {
			name = extractName(record, hint)
		}
		samples = append(samples, TrajectorySample{Time: t, Position: pos})
	}
	if len(samples) < 2 {
		return nil, fmt.Errorf("geovu: adapt: group %q has fewer than 2 resolvable samples", key)
	}
	sortSamplesByTime(samples)
	return NewTrajectoryFeature(FeatureID(key), name, samples)
}

func sortSamplesByTime(samples []TrajectorySample) {
	for i := 1; i < len(samples); i++ {
		for j := i; j > 0 && samples[j].Time.Before(samples[j-1].Time); j-- {
			samples[j], samples[j-1] = samples[j-1], samples[j]
		}
	}
}

func applyDefaultStyle(f Feature, opts *AdaptOptions) {
	if opts.DefaultStyle == nil {
		return
	}
	if s := f.Style(); s == nil || reflect.DeepEqual(s, &Style{}) {
		f.SetStyle(opts.DefaultStyle.Clone())
	}
}
