package apiserver

import "encoding/json"

// jsonCodec lets the server exchange the plain api/v1 types without
// generated message code. Clients must use the same codec.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return "json"
}
