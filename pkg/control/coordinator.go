package control

import (
	"fmt"

	"h3wire/pkg/frame"
)

// Coordinator drives a frame.Decoder over a single unidirectional control
// stream and enforces which frame types may legally appear there. It
// implements frame.Visitor directly.
//
// Grounded on QuicReceiveControlStream and its nested HttpDecoderVisitor
// (original_source/quic/core/http/quic_receive_control_stream.cc): only
// SETTINGS (once) and, for a server endpoint, PRIORITY are legal; every
// other frame type closes the connection naming the offending frame.
type Coordinator struct {
	session Session
	decoder *frame.Decoder

	sequencerOffset uint64

	settingsReceived bool
}

// NewCoordinator returns a Coordinator bound to session. Call OnDataAvailable
// whenever the underlying control stream has new bytes.
func NewCoordinator(session Session) *Coordinator {
	c := &Coordinator{session: session}
	c.decoder = frame.NewDecoder(c)
	return c
}

// OnDataAvailable drains stream, feeding every contiguous region it can
// peek to the decoder, until the connection closes, the stream stops
// accepting reads, the decoder latches an error, or no more data is
// currently available.
func (c *Coordinator) OnDataAvailable(stream Stream) {
	for c.session.Connection().Connected() && !stream.ReadingStopped() && c.decoder.Error() == frame.NoError {
		data, ok := stream.PeekRegion(c.sequencerOffset)
		if !ok {
			return
		}
		n := c.decoder.ProcessInput(data)
		c.sequencerOffset += uint64(n)
		if n == 0 {
			// The decoder made no progress on the region it was just
			// handed (e.g. it is paused resuming into an empty
			// remainder); waiting for fresh bytes avoids spinning.
			return
		}
	}
}

// OnStreamReset is the fatal-closure hook for a RESET_STREAM on the
// control stream: quiche treats this as unconditionally fatal, since the
// control stream must remain open for the life of the connection.
func (c *Coordinator) OnStreamReset() {
	c.session.Connection().Close(InvalidStreamID, "Attempt to reset receive control stream", SendConnectionClosePacket)
}

// OnQpackStreamReset is the symmetric fatal-closure hook for a reset on
// either QPACK unidirectional stream (encoder or decoder); both are
// critical streams for the life of the connection, same as the control
// stream. Grounded on qpack_send_stream.cc's OnStreamReset.
func (c *Coordinator) OnQpackStreamReset() {
	c.session.Connection().Close(InvalidStreamID, "Attempt to reset qpack send stream", SendConnectionClosePacket)
}

func (c *Coordinator) closeWithFrameName(t frame.Type) bool {
	c.session.Connection().Close(HttpDecoderError, fmt.Sprintf("%s frame received on control stream", wireName(t)), SendConnectionClosePacket)
	return false
}

// wireName returns the RFC 9114 frame name used in close-reason strings,
// distinct from frame.Type.String()'s human-readable form.
func wireName(t frame.Type) string {
	switch t {
	case frame.TypeData:
		return "DATA"
	case frame.TypeHeaders:
		return "HEADERS"
	case frame.TypePushPromise:
		return "PUSH_PROMISE"
	case frame.TypeCancelPush:
		return "CANCEL_PUSH"
	case frame.TypeMaxPushID:
		return "MAX_PUSH_ID"
	case frame.TypeGoAway:
		return "GOAWAY"
	case frame.TypeDuplicatePush:
		return "DUPLICATE_PUSH"
	default:
		return t.String()
	}
}

// OnError satisfies frame.Visitor; a decoder-level parse failure (e.g. a
// frame exceeding its size cap) closes the connection with the decoder's
// own detail string.
func (c *Coordinator) OnError(d *frame.Decoder) {
	c.session.Connection().Close(InternalError, d.ErrorDetail(), SendConnectionClosePacket)
}

// SETTINGS is legal exactly once on the control stream.

func (c *Coordinator) OnSettingsFrameStart(l frame.Lengths) bool { return true }

func (c *Coordinator) OnSettingsFrame(f frame.SettingsFrame) bool {
	if c.settingsReceived {
		c.session.Connection().Close(InvalidStreamID, "Settings frames are received twice.", SendConnectionClosePacket)
		return false
	}
	c.settingsReceived = true
	if size, ok := f.Values[frame.SettingMaxHeaderListSize]; ok {
		c.session.SetMaxOutboundHeaderListSize(size)
	}
	return true
}

// PRIORITY is legal on the control stream only when the local endpoint
// is a server; a server applies it to the named stream's priority, a
// client must never receive one there.

func (c *Coordinator) OnPriorityFrameStart(l frame.Lengths) bool { return true }

func (c *Coordinator) OnPriorityFrame(f frame.PriorityFrame) bool {
	if c.session.Perspective() != PerspectiveServer {
		c.session.Connection().Close(HttpDecoderError, "Server must not send Priority frames.", SendConnectionClosePacket)
		return false
	}
	if s, ok := c.session.GetOrCreateStream(f.PrioritizedElementID); ok {
		s.SetPriority(f.Weight)
	}
	return true
}

// Every other frame type is illegal on the control stream.

func (c *Coordinator) OnCancelPushFrame(f frame.CancelPushFrame) bool {
	return c.closeWithFrameName(frame.TypeCancelPush)
}
func (c *Coordinator) OnMaxPushIDFrame(f frame.MaxPushIDFrame) bool {
	return c.closeWithFrameName(frame.TypeMaxPushID)
}
func (c *Coordinator) OnGoAwayFrame(f frame.GoAwayFrame) bool {
	return c.closeWithFrameName(frame.TypeGoAway)
}
func (c *Coordinator) OnDuplicatePushFrame(f frame.DuplicatePushFrame) bool {
	return c.closeWithFrameName(frame.TypeDuplicatePush)
}

func (c *Coordinator) OnDataFrameStart(l frame.Lengths) bool {
	return c.closeWithFrameName(frame.TypeData)
}
func (c *Coordinator) OnDataFramePayload(p []byte) bool { return false }
func (c *Coordinator) OnDataFrameEnd() bool             { return false }

func (c *Coordinator) OnHeadersFrameStart(l frame.Lengths) bool {
	return c.closeWithFrameName(frame.TypeHeaders)
}
func (c *Coordinator) OnHeadersFramePayload(p []byte) bool { return false }
func (c *Coordinator) OnHeadersFrameEnd() bool             { return false }

func (c *Coordinator) OnPushPromiseFrameStart(pushID uint64) bool {
	return c.closeWithFrameName(frame.TypePushPromise)
}
func (c *Coordinator) OnPushPromiseFramePayload(p []byte) bool { return false }
func (c *Coordinator) OnPushPromiseFrameEnd() bool             { return false }
