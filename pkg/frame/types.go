// Package frame implements the HTTP/3 frame layer: a streaming decoder, a
// header/body encoder, and the wire types defined by RFC 9114 section 7.2.
//
// The decoder is grounded on quiche's HttpDecoder (see
// original_source/quic/core/http/http_decoder.h): an explicit state enum,
// an 8-byte scratch buffer for type/length fields that straddle
// ProcessInput calls, and a visitor capability set with boolean
// continuation used for backpressure.
package frame

import "fmt"

// Type identifies an HTTP/3 frame on the wire (RFC 9114 section 7.2).
type Type uint64

const (
	TypeData           Type = 0x00
	TypeHeaders        Type = 0x01
	TypePriority       Type = 0x02
	TypeCancelPush     Type = 0x03
	TypeSettings       Type = 0x04
	TypePushPromise    Type = 0x05
	TypeGoAway         Type = 0x07
	TypeMaxPushID      Type = 0x0D
	TypeDuplicatePush  Type = 0x0E
)

func (t Type) String() string {
	switch t {
	case TypeData:
		return "Data"
	case TypeHeaders:
		return "Headers"
	case TypePriority:
		return "Priority"
	case TypeCancelPush:
		return "Cancel Push"
	case TypeSettings:
		return "Settings"
	case TypePushPromise:
		return "Push Promise"
	case TypeGoAway:
		return "Goaway"
	case TypeMaxPushID:
		return "Max Push Id"
	case TypeDuplicatePush:
		return "Duplicate Push"
	default:
		return fmt.Sprintf("Unknown(0x%x)", uint64(t))
	}
}

// Lengths carries the header length (type + length field bytes) and
// payload length of a frame, surfaced in every *FrameStart callback.
// Named after quiche's Http3FrameLengths.
type Lengths struct {
	HeaderLength  uint64
	PayloadLength uint64
}

// ErrorCode mirrors the small set of error codes the frame layer can
// latch. The coordinator package defines its own policy-error codes;
// these cover only decoder-level parse failures.
type ErrorCode int

const (
	NoError ErrorCode = iota
	InternalError
)

func (e ErrorCode) String() string {
	if e == NoError {
		return "NoError"
	}
	return "InternalError"
}

// maxFrameLength returns the maximum accepted payload length for t, or
// (0, false) if t is unbounded (streamed frames and unknown/reserved
// types).
func maxFrameLength(t Type) (limit uint64, bounded bool) {
	switch t {
	case TypePriority:
		return 1024, true
	case TypeCancelPush, TypeMaxPushID, TypeGoAway, TypeDuplicatePush:
		return 16, true
	case TypeSettings:
		return 16 * 1024, true
	default:
		return 0, false
	}
}

// ElementType is the 2-bit enum shared by a PRIORITY frame's prioritized
// and dependency element types, defined by the (now-removed) HTTP/3 prioritization draft that the
// original source still parses; values per spec.md section 3.
type ElementType uint8

const (
	ElementRequestStream ElementType = 0
	ElementPushStream    ElementType = 1
	ElementPlaceholder   ElementType = 2
	ElementRootOfTree    ElementType = 3
)

// PriorityFrame is the parsed payload of a PRIORITY frame.
type PriorityFrame struct {
	PrioritizedType      ElementType
	DependencyType       ElementType
	Exclusive            bool
	PrioritizedElementID uint64 // valid only if PrioritizedType != ElementRootOfTree
	ElementDependencyID  uint64 // valid only if DependencyType != ElementRootOfTree
	Weight               uint8
}

// CancelPushFrame is the parsed payload of a CANCEL_PUSH frame.
type CancelPushFrame struct {
	PushID uint64
}

// MaxPushIDFrame is the parsed payload of a MAX_PUSH_ID frame.
type MaxPushIDFrame struct {
	PushID uint64
}

// DuplicatePushFrame is the parsed payload of a DUPLICATE_PUSH frame.
type DuplicatePushFrame struct {
	PushID uint64
}

// GoAwayFrame is the parsed payload of a GOAWAY frame.
type GoAwayFrame struct {
	StreamID uint64
}

// Setting identifiers the decoder recognizes semantically; all other
// identifiers (including reserved ones) are parsed and preserved but
// carry no effect, per spec.md section 3.
const (
	SettingNumPlaceholders   uint64 = 0x03
	SettingMaxHeaderListSize uint64 = 0x06
)

// SettingsFrame is the parsed payload of a SETTINGS frame: an unordered
// identifier -> value mapping.
type SettingsFrame struct {
	Values map[uint64]uint64
}
