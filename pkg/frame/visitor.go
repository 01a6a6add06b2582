package frame

// Visitor is the capability set a Decoder drives as it parses frames off
// the wire. Every non-error method returns a continuation flag: false
// means "pause; do not consume further bytes in this call." The decoder
// resumes cleanly on the next ProcessInput call as if the pause had never
// happened.
//
// Streaming callbacks (*Payload) receive a slice that is only valid for
// the duration of the call; a Visitor that needs to retain it must copy.
//
// Grounded on HttpDecoder::Visitor (original_source/quic/core/http/
// http_decoder.h).
type Visitor interface {
	// OnError is invoked exactly once, when the decoder latches its first
	// and only error.
	OnError(d *Decoder)

	OnPriorityFrameStart(l Lengths) bool
	OnPriorityFrame(f PriorityFrame) bool

	OnCancelPushFrame(f CancelPushFrame) bool
	OnMaxPushIDFrame(f MaxPushIDFrame) bool
	OnGoAwayFrame(f GoAwayFrame) bool
	OnDuplicatePushFrame(f DuplicatePushFrame) bool

	OnSettingsFrameStart(l Lengths) bool
	OnSettingsFrame(f SettingsFrame) bool

	OnDataFrameStart(l Lengths) bool
	OnDataFramePayload(payload []byte) bool
	OnDataFrameEnd() bool

	OnHeadersFrameStart(l Lengths) bool
	OnHeadersFramePayload(payload []byte) bool
	OnHeadersFrameEnd() bool

	OnPushPromiseFrameStart(pushID uint64) bool
	OnPushPromiseFramePayload(payload []byte) bool
	OnPushPromiseFrameEnd() bool
}
