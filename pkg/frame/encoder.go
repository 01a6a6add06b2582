package frame

import "h3wire/pkg/varint"

// Encoder serializes outbound HTTP/3 frames. For DATA and HEADERS (and the
// header-only form of PUSH_PROMISE) it produces only the type+length
// header; the caller writes the payload directly to the wire. For
// structured frames it produces the complete frame bytes. All
// VARINT-length fields use the minimal encoding, matching frameOpt.go's
// encodeVarint.
type Encoder struct{}

// NewEncoder returns a stateless Encoder. Its methods are safe to call
// concurrently since they hold no state between calls.
func NewEncoder() *Encoder { return &Encoder{} }

func appendHeader(buf []byte, t Type, payloadLen uint64) []byte {
	buf = varint.Append(buf, uint64(t))
	buf = varint.Append(buf, payloadLen)
	return buf
}

// DataHeader returns the type+length header for a DATA frame carrying
// payloadLen bytes of body; the caller writes the body separately.
func (e *Encoder) DataHeader(payloadLen uint64) []byte {
	return appendHeader(nil, TypeData, payloadLen)
}

// HeadersHeader returns the type+length header for a HEADERS frame
// carrying a QPACK-encoded header block of payloadLen bytes.
func (e *Encoder) HeadersHeader(payloadLen uint64) []byte {
	return appendHeader(nil, TypeHeaders, payloadLen)
}

// PushPromiseHeader returns the type+length header for a PUSH_PROMISE
// frame whose payload is pushID's varint encoding followed by
// headerBlockLen bytes of QPACK-encoded header block.
func (e *Encoder) PushPromiseHeader(pushID uint64, headerBlockLen uint64) []byte {
	payloadLen := uint64(varint.EncodedLen(pushID)) + headerBlockLen
	return appendHeader(nil, TypePushPromise, payloadLen)
}

// Settings encodes a complete SETTINGS frame. Iteration order over values
// is unspecified, matching the data model's "insertion order irrelevant".
func (e *Encoder) Settings(f SettingsFrame) []byte {
	var payload []byte
	for id, value := range f.Values {
		payload = varint.Append(payload, id)
		payload = varint.Append(payload, value)
	}
	return append(appendHeader(nil, TypeSettings, uint64(len(payload))), payload...)
}

// Priority encodes a complete PRIORITY frame, packing the four
// enum/flag fields into the first payload byte and omitting the ID
// fields whose type is ElementRootOfTree.
func (e *Encoder) Priority(f PriorityFrame) []byte {
	flags := byte(f.PrioritizedType&0x3)<<6 | byte(f.DependencyType&0x3)<<4
	if f.Exclusive {
		flags |= 0x1
	}
	payload := []byte{flags}
	if f.PrioritizedType != ElementRootOfTree {
		payload = varint.Append(payload, f.PrioritizedElementID)
	}
	if f.DependencyType != ElementRootOfTree {
		payload = varint.Append(payload, f.ElementDependencyID)
	}
	payload = append(payload, f.Weight)
	return append(appendHeader(nil, TypePriority, uint64(len(payload))), payload...)
}

// CancelPush encodes a complete CANCEL_PUSH frame.
func (e *Encoder) CancelPush(f CancelPushFrame) []byte {
	payload := varint.Encode(f.PushID)
	return append(appendHeader(nil, TypeCancelPush, uint64(len(payload))), payload...)
}

// MaxPushID encodes a complete MAX_PUSH_ID frame.
func (e *Encoder) MaxPushID(f MaxPushIDFrame) []byte {
	payload := varint.Encode(f.PushID)
	return append(appendHeader(nil, TypeMaxPushID, uint64(len(payload))), payload...)
}

// GoAway encodes a complete GOAWAY frame.
func (e *Encoder) GoAway(f GoAwayFrame) []byte {
	payload := varint.Encode(f.StreamID)
	return append(appendHeader(nil, TypeGoAway, uint64(len(payload))), payload...)
}
