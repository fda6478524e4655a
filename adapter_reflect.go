package geovu

import "encoding/json"

// adapter_reflect.go handles the "already-decoded Go value" half of the
// Data Adapter (spec §4.B): a caller that already unmarshaled its own
// JSON, or built a []map[string]any / []struct in code, shouldn't have
// to re-serialize by hand just to reach AdaptData's gjson-based probing.
// re-marshaling through encoding/json is the same normalize-to-one-path
// trick the teacher's load package uses to turn heterogeneous asset
// description formats into one struct shape before further processing,
// applied here to numbers and keys on the fly instead of a model
// format.

// AdaptValue accepts any Go value JSON-marshalable into an array of
// records (a slice of structs or maps, or a single struct/map treated as
// a one-record batch) and routes it through AdaptData.
func AdaptValue(v any, hint *AdaptHint, opts *AdaptOptions) ([]Feature, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return AdaptData(data, hint, opts)
}
