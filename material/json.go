package material

import "encoding/json"

// json.go implements the toJSON/fromJSON round trip spec §4.E requires of
// MaterialFactory ("create(type, options) / fromJSON"), tested concretely
// by spec §8 scenario 7 (a Water material's frequency survives a round
// trip). A Property only exposes Name()/Params(), so the wire document is
// just {type, params}; Factory.Create(Name(), Params()) reconstructs it.

// propertyDoc is the wire shape a Property round-trips through.
type propertyDoc struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

// ToJSON encodes p as {type, params}.
func ToJSON(p Property) ([]byte, error) {
	return json.Marshal(propertyDoc{Type: p.Name(), Params: p.Params()})
}

// FromJSON decodes a document previously produced by ToJSON and
// reconstructs the Property through f. An unknown type returns ok=false
// rather than an error, matching Factory.Create's own "ok" convention.
func (f *Factory) FromJSON(data []byte) (Property, bool, error) {
	var doc propertyDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false, err
	}
	p, ok := f.Create(doc.Type, doc.Params)
	return p, ok, nil
}
