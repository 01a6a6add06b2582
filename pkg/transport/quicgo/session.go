package quicgo

import (
	"h3wire/pkg/control"
)

// Session adapts one quic-go connection to control.Session.
type Session struct {
	conn              *Connection
	perspective       control.Perspective
	streams           map[uint64]*PriorityStream
	maxHeaderListSize uint64
}

// NewSession returns a Session wrapping conn, acting as perspective.
func NewSession(conn *Connection, perspective control.Perspective) *Session {
	return &Session{conn: conn, perspective: perspective, streams: map[uint64]*PriorityStream{}}
}

func (s *Session) Perspective() control.Perspective { return s.perspective }

// GetOrCreateStream returns the PriorityStream tracking id's priority,
// creating it on first reference. Every id succeeds: a real session
// would distinguish an out-of-range or never-to-be-opened stream id,
// but the control-stream coordinator already treats "stream does not
// exist" and "stream not yet opened" identically (drop the PRIORITY
// frame), so this adapter does not need to.
func (s *Session) GetOrCreateStream(id uint64) (control.PriorityStream, bool) {
	ps, ok := s.streams[id]
	if !ok {
		ps = &PriorityStream{ID: id}
		s.streams[id] = ps
	}
	return ps, true
}

func (s *Session) SetMaxOutboundHeaderListSize(n uint64) { s.maxHeaderListSize = n }

func (s *Session) Connection() control.Connection { return s.conn }

// MaxOutboundHeaderListSize returns the cap most recently applied by a
// SETTINGS frame, 0 if none has arrived yet.
func (s *Session) MaxOutboundHeaderListSize() uint64 { return s.maxHeaderListSize }
