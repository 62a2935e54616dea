package rpc

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// fieldFunc consumes the value of one field and reports how many bytes it
// used. Returning 0 means "not mine", and the value is skipped.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

func decode(b []byte, field fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		m, err := field(num, typ, b)
		if err != nil {
			return err
		}
		if m == 0 {
			m = protowire.ConsumeFieldValue(num, typ, b)
		}
		if m < 0 {
			return protowire.ParseError(m)
		}
		b = b[m:]
	}
	return nil
}

// proto3 semantics: empty strings are not written.
func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// optional fields are written whenever set, even when empty.
func appendOptional(b []byte, num protowire.Number, s *string) []byte {
	if s == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, *s)
}

func appendMessage(b []byte, num protowire.Number, inner []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendTime(b []byte, num protowire.Number, t time.Time) []byte {
	if t.IsZero() {
		return b
	}
	inner, _ := proto.Marshal(timestamppb.New(t))
	return appendMessage(b, num, inner)
}

// appendStrings writes fields as consecutive field numbers starting at first.
func appendStrings(b []byte, first protowire.Number, fields []*string) []byte {
	for i, f := range fields {
		b = appendString(b, first+protowire.Number(i), *f)
	}
	return b
}

func appendOptionals(b []byte, first protowire.Number, fields []**string) []byte {
	for i, f := range fields {
		b = appendOptional(b, first+protowire.Number(i), *f)
	}
	return b
}

func consumeBytes(typ protowire.Type, b []byte) ([]byte, int) {
	if typ != protowire.BytesType {
		return nil, 0
	}
	return protowire.ConsumeBytes(b)
}

func consumeString(typ protowire.Type, b []byte, dst *string) (int, error) {
	v, n := consumeBytes(typ, b)
	if n > 0 {
		*dst = string(v)
	}
	return n, nil
}

func consumeBool(typ protowire.Type, b []byte, dst *bool) (int, error) {
	if typ != protowire.VarintType {
		return 0, nil
	}
	v, n := protowire.ConsumeVarint(b)
	if n > 0 {
		*dst = protowire.DecodeBool(v)
	}
	return n, nil
}

func consumeTime(typ protowire.Type, b []byte, dst *time.Time) (int, error) {
	v, n := consumeBytes(typ, b)
	if n <= 0 {
		return n, nil
	}
	ts := &timestamppb.Timestamp{}
	if err := proto.Unmarshal(v, ts); err != nil {
		return 0, err
	}
	*dst = ts.AsTime()
	return n, nil
}

func consumeStrings(num protowire.Number, typ protowire.Type, b []byte, first protowire.Number, fields []*string) (int, error) {
	i := int(num - first)
	if num < first || i >= len(fields) {
		return 0, nil
	}
	return consumeString(typ, b, fields[i])
}

func consumeOptionals(num protowire.Number, typ protowire.Type, b []byte, first protowire.Number, fields []**string) (int, error) {
	i := int(num - first)
	if num < first || i >= len(fields) {
		return 0, nil
	}
	v, n := consumeBytes(typ, b)
	if n > 0 {
		s := string(v)
		*fields[i] = &s
	}
	return n, nil
}
