// Package headerblock builds QPACK-compressed header blocks for the
// HEADERS and PUSH_PROMISE frame payloads described by spec.md section
// 1: decoding the dynamic table is out of scope there, so this package
// only drives quic-go/qpack's static-table-only encode path, giving the
// frame package real QPACK bytes to exercise instead of synthetic ones.
//
// Grounded on the teacher's pkg/qpack/quicgo/encoder.go adapter, which
// wraps the same github.com/quic-go/qpack Encoder/Decoder pair.
package headerblock

import (
	"bytes"

	qpack "github.com/quic-go/qpack"
)

// HeaderField is a single name/value pair, matching the teacher's
// adapter.HeaderField.
type HeaderField struct {
	Name  string
	Value string
}

// Encode serializes fields into a QPACK header block using only static
// references; it never touches the dynamic table.
func Encode(fields ...HeaderField) ([]byte, error) {
	var buf bytes.Buffer
	encoder := qpack.NewEncoder(&buf)
	for _, f := range fields {
		if err := encoder.WriteField(qpack.HeaderField{Name: f.Name, Value: f.Value}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Decode parses a complete QPACK header block produced without any
// dynamic-table references.
func Decode(data []byte) ([]HeaderField, error) {
	decoded, err := qpack.NewDecoder(nil).DecodeFull(data)
	if err != nil {
		return nil, err
	}
	fields := make([]HeaderField, len(decoded))
	for i, hf := range decoded {
		fields[i] = HeaderField{Name: hf.Name, Value: hf.Value}
	}
	return fields, nil
}
