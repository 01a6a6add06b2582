package quicgo

import (
	"sync"

	"github.com/quic-go/quic-go"
)

// byteReader is the minimal contract ControlStream pumps from; any
// quic-go quic.ReceiveStream satisfies it structurally.
type byteReader interface {
	Read(p []byte) (int, error)
}

// ControlStream adapts a quic-go receive stream to control.Stream.
// quic-go hands back bytes through an io.Reader, not an offset-peekable
// sequencer, so this type pumps Read results into a growing buffer that
// PeekRegion serves slices of — the same role quiche's QuicStreamSequencer
// plays for the original control stream.
type ControlStream struct {
	stream byteReader

	mu      sync.Mutex
	buf     []byte
	stopped bool
	reset   bool
}

// NewControlStream wraps stream for use by a control.Coordinator.
func NewControlStream(stream quic.ReceiveStream) *ControlStream {
	return &ControlStream{stream: stream}
}

// newControlStreamFromReader is the same constructor for any byteReader;
// used by tests that don't need a real quic-go stream.
func newControlStreamFromReader(r byteReader) *ControlStream {
	return &ControlStream{stream: r}
}

// Pump reads from the underlying stream until it closes or errors,
// appending every chunk to the internal buffer and invoking onData
// after each append so the caller can drive
// control.Coordinator.OnDataAvailable. It returns when the stream ends.
func (s *ControlStream) Pump(onData func()) {
	chunk := make([]byte, 4096)
	for {
		n, err := s.stream.Read(chunk)
		if n > 0 {
			s.mu.Lock()
			s.buf = append(s.buf, chunk[:n]...)
			s.mu.Unlock()
			onData()
		}
		if err != nil {
			s.mu.Lock()
			s.stopped = true
			if _, ok := err.(*quic.StreamError); ok {
				s.reset = true
			}
			s.mu.Unlock()
			return
		}
	}
}

// PeekRegion satisfies control.Stream.
func (s *ControlStream) PeekRegion(offset uint64) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if offset >= uint64(len(s.buf)) {
		return nil, false
	}
	return s.buf[offset:], true
}

// ReadingStopped satisfies control.Stream.
func (s *ControlStream) ReadingStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// WasReset reports whether Pump stopped because of a RESET_STREAM
// rather than a clean stream close.
func (s *ControlStream) WasReset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reset
}
