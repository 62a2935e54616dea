package rpc

import "fmt"

// Codec marshals Message values. It is registered under the name "proto" so
// stock gRPC and gRPC-Web clients interoperate with it unchanged.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("rpc codec: %T is not a Message", v)
	}
	return m.AppendWire(nil), nil
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("rpc codec: %T is not a Message", v)
	}
	return m.UnmarshalWire(data)
}

func (Codec) Name() string { return "proto" }
