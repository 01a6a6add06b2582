// Package control implements the HTTP/3 control-stream coordinator: it
// drives an *frame.Decoder over a unidirectional QUIC stream, enforces
// which frame types are legal there, and applies the SETTINGS a peer
// advertises to a session.
//
// Grounded on original_source/quic/core/http/quic_receive_control_stream.cc
// (QuicReceiveControlStream and its nested HttpDecoderVisitor).
package control

import "fmt"

// Perspective identifies whether the local endpoint is acting as a client
// or a server; PRIORITY is legal on the control stream only when the
// local endpoint is a server.
type Perspective int

const (
	PerspectiveClient Perspective = iota
	PerspectiveServer
)

func (p Perspective) String() string {
	if p == PerspectiveServer {
		return "Server"
	}
	return "Client"
}

// ErrorCode is the subset of HTTP/3 connection-close codes the
// coordinator can produce. NoError/InternalError mirror frame.ErrorCode's
// decoder-level codes; InvalidStreamId and HttpDecoderError are policy
// closures raised by the coordinator itself (spec.md section 6).
type ErrorCode int

const (
	NoError ErrorCode = iota
	InternalError
	InvalidStreamID
	HttpDecoderError
)

func (e ErrorCode) String() string {
	switch e {
	case NoError:
		return "NoError"
	case InternalError:
		return "InternalError"
	case InvalidStreamID:
		return "InvalidStreamId"
	case HttpDecoderError:
		return "HttpDecoderError"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(e))
	}
}

// SendPolicy controls whether a CONNECTION_CLOSE frame accompanies a
// connection closure; it mirrors quiche's
// ConnectionCloseBehavior::SEND_CONNECTION_CLOSE_PACKET choice made
// throughout quic_receive_control_stream.cc.
type SendPolicy int

const (
	SendConnectionClosePacket SendPolicy = iota
	SilentClose
)

// PriorityStream is the subset of a request stream's surface the
// coordinator needs to apply a PRIORITY frame: set its weight on the
// internal priority scale.
type PriorityStream interface {
	SetPriority(weight uint8)
}

// Connection is the minimal contract the coordinator needs from the QUIC
// connection that owns the control stream.
type Connection interface {
	Close(code ErrorCode, detail string, policy SendPolicy)
	Connected() bool
}

// Session is the minimal contract the coordinator needs from the
// surrounding HTTP/3 session (spec.md section 6: "Session surface
// consumed by the coordinator").
type Session interface {
	Perspective() Perspective
	GetOrCreateStream(streamID uint64) (PriorityStream, bool)
	SetMaxOutboundHeaderListSize(n uint64)
	Connection() Connection
}

// Stream is the minimal contract the coordinator needs from the
// underlying unidirectional QUIC receive stream.
type Stream interface {
	// PeekRegion returns the next contiguous buffered region of unread
	// stream data starting at offset, or ok=false if none is currently
	// available without blocking.
	PeekRegion(offset uint64) (data []byte, ok bool)
	// ReadingStopped reports whether the stream has stopped accepting
	// further reads (e.g. after a local RESET_STREAM).
	ReadingStopped() bool
}
