// Package sendstream implements the one-time stream-type prefix every
// QPACK unidirectional stream (encoder or decoder) must send before any
// instruction bytes, and the fatal-closure policy for a reset on that
// stream.
//
// Grounded on QpackSendStream (original_source/quic/core/qpack/
// qpack_send_stream.cc): WriteStreamData prepends the varint-encoded
// stream type exactly once, guarded by a sent-once boolean, and
// OnStreamReset is unconditionally fatal to the connection.
package sendstream

import "h3wire/pkg/varint"

// StreamType identifies which of the two unidirectional QPACK streams a
// Stream is (RFC 9204 section 4.2).
type StreamType uint64

const (
	TypeEncoderStream StreamType = 0x02
	TypeDecoderStream StreamType = 0x03
)

// Writer is the minimal transport contract a Stream writes instruction
// bytes through.
type Writer interface {
	Write(p []byte) (int, error)
}

// Stream wraps a unidirectional QUIC stream, writing the stream-type
// varint once before the first batch of instruction bytes.
type Stream struct {
	streamType StreamType
	w          Writer
	typeSent   bool
}

// New returns a Stream that will prefix w's first Write with streamType's
// varint encoding.
func New(streamType StreamType, w Writer) *Stream {
	return &Stream{streamType: streamType, w: w}
}

// WriteInstructionData writes data to the underlying stream, prepending
// the stream-type varint if this is the first call.
func (s *Stream) WriteInstructionData(data []byte) error {
	if !s.typeSent {
		if _, err := s.w.Write(varint.Encode(uint64(s.streamType))); err != nil {
			return err
		}
		s.typeSent = true
	}
	if len(data) == 0 {
		return nil
	}
	_, err := s.w.Write(data)
	return err
}

// Resetter is notified when this stream is reset; the control-stream
// coordinator implements it as Coordinator.OnQpackStreamReset.
type Resetter interface {
	OnQpackStreamReset()
}

// OnStreamReset reports the reset to r; a QPACK send stream must remain
// open for the life of the connection, so a reset is always fatal.
func (s *Stream) OnStreamReset(r Resetter) {
	r.OnQpackStreamReset()
}
