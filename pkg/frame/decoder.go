package frame

import (
	"fmt"

	"h3wire/pkg/varint"
)

// decoderState is the explicit state enum driving Decoder.ProcessInput,
// grounded on quiche's HttpDecoderState (original_source/quic/core/http/
// http_decoder.h): ReadingFrameType, ReadingFrameLength, ReadingFramePayload,
// FinishParsing, Error.
type decoderState int

const (
	stateReadingType decoderState = iota
	stateReadingLength
	stateReadingPayload
	stateFinishing
	stateError
)

// Decoder is a reentrant streaming parser for the HTTP/3 frame layer. It
// consumes bytes across many ProcessInput calls and drives a Visitor.
// Decoder buffers only partial type/length fields and, for structured
// frames, the complete payload; DATA/HEADERS/PUSH_PROMISE payloads pass
// through to the visitor without being retained.
//
// A Decoder must not be used concurrently; it has no internal locking.
type Decoder struct {
	visitor Visitor
	state   decoderState

	errCode   ErrorCode
	errDetail string

	typeScratch      [8]byte
	typeScratchLen   int
	lengthScratch    [8]byte
	lengthScratchLen int

	currentType    Type
	typeFieldLen   uint64
	currentLength  uint64
	lengthFieldLen uint64
	remaining      uint64

	startCalled bool
	payloadBuf  []byte

	pushIDScratch    [8]byte
	pushIDScratchLen int
	pushIDDone       bool
	pushID           uint64
}

// NewDecoder returns a Decoder that will drive visitor as it parses frames.
// visitor must be non-nil and must outlive the Decoder.
func NewDecoder(visitor Visitor) *Decoder {
	return &Decoder{visitor: visitor, state: stateReadingType}
}

// Error returns the latched error code, NoError until OnError has fired.
func (d *Decoder) Error() ErrorCode { return d.errCode }

// ErrorDetail returns the human-readable detail string for the latched
// error, empty until an error has occurred.
func (d *Decoder) ErrorDetail() string { return d.errDetail }

// Err adapts the latched decoder error to the standard error interface,
// returning nil while Error() is NoError.
func (d *Decoder) Err() error {
	if d.errCode == NoError {
		return nil
	}
	return fmt.Errorf("%s: %s", d.errCode, d.errDetail)
}

// ProcessInput feeds data into the state machine, invoking visitor
// callbacks as complete fields and frames become available. It returns the
// number of bytes actually consumed, which is less than len(data) when the
// visitor paused, an error was raised, or the trailing bytes were
// insufficient to complete a field and were buffered internally. Called
// after an error, it is a no-op that returns 0.
func (d *Decoder) ProcessInput(data []byte) int {
	if d.state == stateError {
		return 0
	}

	offset := 0
	for {
		switch d.state {
		case stateReadingType:
			value, n, ok := readVarintField(&d.typeScratch, &d.typeScratchLen, data, &offset)
			if !ok {
				return offset
			}
			d.currentType = Type(value)
			d.typeFieldLen = uint64(n)
			d.state = stateReadingLength

		case stateReadingLength:
			value, n, ok := readVarintField(&d.lengthScratch, &d.lengthScratchLen, data, &offset)
			if !ok {
				return offset
			}
			d.currentLength = value
			d.lengthFieldLen = uint64(n)
			if limit, bounded := maxFrameLength(d.currentType); bounded && d.currentLength > limit {
				d.raiseError(InternalError, "Frame is too large")
				return offset
			}
			d.remaining = d.currentLength
			d.startCalled = false
			d.payloadBuf = nil
			d.pushIDDone = false
			d.pushIDScratchLen = 0
			d.state = stateReadingPayload

			// Frame-length-bearing starts fire the instant the header is
			// known, before any payload byte is consumed. PUSH_PROMISE's
			// start is deferred until its push_id has been parsed out of
			// the payload; unknown/reserved types never get a start call.
			if ok, done := d.maybeStartOnHeader(); done {
				if !ok {
					return offset
				}
			}

		case stateReadingPayload:
			cont := d.readPayload(data, &offset)
			if !cont {
				return offset
			}

		case stateFinishing:
			// finishFrame's visitor callback fires exactly once regardless
			// of its return value, so the state always advances here
			// (unless finishFrame itself latched an error); the boolean
			// only decides whether ProcessInput keeps looping.
			cont := d.finishFrame()
			if d.state == stateFinishing {
				d.state = stateReadingType
			}
			if !cont {
				return offset
			}

		case stateError:
			return offset
		}
	}
}

// maybeStartOnHeader invokes the *FrameStart callback for frame types whose
// start is tied to the header alone. done is false when currentType has no
// such callback (PUSH_PROMISE, CANCEL_PUSH, MAX_PUSH_ID, GOAWAY,
// DUPLICATE_PUSH and unknown/reserved types).
func (d *Decoder) maybeStartOnHeader() (ok bool, done bool) {
	switch d.currentType {
	case TypeData:
		ok = d.visitor.OnDataFrameStart(d.lengths())
	case TypeHeaders:
		ok = d.visitor.OnHeadersFrameStart(d.lengths())
	case TypeSettings:
		ok = d.visitor.OnSettingsFrameStart(d.lengths())
	case TypePriority:
		ok = d.visitor.OnPriorityFrameStart(d.lengths())
	default:
		return false, false
	}
	d.startCalled = true
	return ok, true
}

func (d *Decoder) lengths() Lengths {
	return Lengths{HeaderLength: d.typeFieldLen + d.lengthFieldLen, PayloadLength: d.currentLength}
}

// readPayload advances payload consumption for the frame currently being
// read. It returns false when the caller must stop (paused by the visitor,
// an error was raised, or no more input is available yet).
func (d *Decoder) readPayload(data []byte, offset *int) bool {
	switch d.currentType {
	case TypeData, TypeHeaders, TypePushPromise:
		return d.readStreamedPayload(data, offset)
	case TypePriority, TypeSettings, TypeCancelPush, TypeMaxPushID, TypeGoAway, TypeDuplicatePush:
		return d.readBufferedPayload(data, offset)
	default:
		return d.readDiscardedPayload(data, offset)
	}
}

func (d *Decoder) readStreamedPayload(data []byte, offset *int) bool {
	if d.currentType == TypePushPromise {
		if !d.pushIDDone {
			if !d.readPushID(data, offset) {
				return false
			}
		}
		if !d.startCalled {
			d.startCalled = true
			if !d.visitor.OnPushPromiseFrameStart(d.pushID) {
				return false
			}
		}
	}

	if d.remaining == 0 {
		d.state = stateFinishing
		return true
	}

	available := data[*offset:]
	if len(available) == 0 {
		return false
	}
	n := len(available)
	if uint64(n) > d.remaining {
		n = int(d.remaining)
	}
	chunk := available[:n]
	*offset += n
	d.remaining -= uint64(n)

	var ok bool
	switch d.currentType {
	case TypeData:
		ok = d.visitor.OnDataFramePayload(chunk)
	case TypeHeaders:
		ok = d.visitor.OnHeadersFramePayload(chunk)
	case TypePushPromise:
		ok = d.visitor.OnPushPromiseFramePayload(chunk)
	}
	if !ok {
		return false
	}
	if d.remaining == 0 {
		d.state = stateFinishing
	}
	return true
}

// readPushID parses the push_id varint at the start of a PUSH_PROMISE
// payload; its bytes count against remaining, per spec.
func (d *Decoder) readPushID(data []byte, offset *int) bool {
	available := data[*offset:]
	if d.pushIDScratchLen == 0 && len(available) == 0 {
		return false
	}
	var firstByte byte
	if d.pushIDScratchLen > 0 {
		firstByte = d.pushIDScratch[0]
	} else {
		firstByte = available[0]
	}
	n := varint.Len(firstByte)
	if uint64(n) > d.remaining {
		d.raiseError(InternalError, "PUSH_PROMISE push_id varint runs past declared payload length")
		return false
	}
	value, consumedLen, ok := readVarintField(&d.pushIDScratch, &d.pushIDScratchLen, data, offset)
	if !ok {
		return false
	}
	d.pushID = value
	d.pushIDDone = true
	d.remaining -= uint64(consumedLen)
	return true
}

func (d *Decoder) readBufferedPayload(data []byte, offset *int) bool {
	available := data[*offset:]
	if len(available) == 0 && d.remaining > 0 {
		return false
	}
	n := len(available)
	if uint64(n) > d.remaining {
		n = int(d.remaining)
	}
	d.payloadBuf = append(d.payloadBuf, available[:n]...)
	*offset += n
	d.remaining -= uint64(n)
	if d.remaining == 0 {
		d.state = stateFinishing
	}
	return true
}

func (d *Decoder) readDiscardedPayload(data []byte, offset *int) bool {
	available := data[*offset:]
	if len(available) == 0 && d.remaining > 0 {
		return false
	}
	n := len(available)
	if uint64(n) > d.remaining {
		n = int(d.remaining)
	}
	*offset += n
	d.remaining -= uint64(n)
	if d.remaining == 0 {
		d.state = stateFinishing
	}
	return true
}

// finishFrame emits the end-of-frame visitor callback and returns whether
// processing may continue within this ProcessInput call.
func (d *Decoder) finishFrame() bool {
	switch d.currentType {
	case TypeData:
		return d.visitor.OnDataFrameEnd()
	case TypeHeaders:
		return d.visitor.OnHeadersFrameEnd()
	case TypePushPromise:
		return d.visitor.OnPushPromiseFrameEnd()
	case TypePriority:
		return d.finishPriority()
	case TypeSettings:
		return d.finishSettings()
	case TypeCancelPush:
		return d.finishCancelPush()
	case TypeMaxPushID:
		return d.finishMaxPushID()
	case TypeGoAway:
		return d.finishGoAway()
	case TypeDuplicatePush:
		return d.finishDuplicatePush()
	default:
		// Unknown/reserved frame: drained silently, no visitor call.
		return true
	}
}

func (d *Decoder) finishPriority() bool {
	f, err := parsePriorityPayload(d.payloadBuf)
	if err != nil {
		d.raiseError(InternalError, err.Error())
		return false
	}
	return d.visitor.OnPriorityFrame(f)
}

func (d *Decoder) finishSettings() bool {
	f, err := parseSettingsPayload(d.payloadBuf)
	if err != nil {
		d.raiseError(InternalError, err.Error())
		return false
	}
	return d.visitor.OnSettingsFrame(f)
}

func (d *Decoder) finishCancelPush() bool {
	v, _, err := varint.Parse(d.payloadBuf)
	if err != nil {
		d.raiseError(InternalError, "CANCEL_PUSH frame payload is truncated")
		return false
	}
	return d.visitor.OnCancelPushFrame(CancelPushFrame{PushID: v})
}

func (d *Decoder) finishMaxPushID() bool {
	v, _, err := varint.Parse(d.payloadBuf)
	if err != nil {
		d.raiseError(InternalError, "MAX_PUSH_ID frame payload is truncated")
		return false
	}
	return d.visitor.OnMaxPushIDFrame(MaxPushIDFrame{PushID: v})
}

func (d *Decoder) finishGoAway() bool {
	v, _, err := varint.Parse(d.payloadBuf)
	if err != nil {
		d.raiseError(InternalError, "GOAWAY frame payload is truncated")
		return false
	}
	return d.visitor.OnGoAwayFrame(GoAwayFrame{StreamID: v})
}

func (d *Decoder) finishDuplicatePush() bool {
	v, _, err := varint.Parse(d.payloadBuf)
	if err != nil {
		d.raiseError(InternalError, "DUPLICATE_PUSH frame payload is truncated")
		return false
	}
	return d.visitor.OnDuplicatePushFrame(DuplicatePushFrame{PushID: v})
}

func (d *Decoder) raiseError(code ErrorCode, detail string) {
	if d.state == stateError {
		return
	}
	d.state = stateError
	d.errCode = code
	d.errDetail = detail
	d.visitor.OnError(d)
}

// readVarintField combines bytes already buffered in *scratch with fresh
// input to decode one complete varint field, buffering whatever is
// available and reporting ok=false when more input is needed. This is the
// mechanism backing type- and length-field reassembly across ProcessInput
// boundaries, and push_id reassembly within a PUSH_PROMISE payload.
func readVarintField(scratch *[8]byte, scratchLen *int, data []byte, offset *int) (value uint64, n int, ok bool) {
	available := data[*offset:]
	if *scratchLen == 0 && len(available) == 0 {
		return 0, 0, false
	}
	var firstByte byte
	if *scratchLen > 0 {
		firstByte = scratch[0]
	} else {
		firstByte = available[0]
	}
	n = varint.Len(firstByte)
	have := *scratchLen + len(available)
	if have < n {
		copy(scratch[*scratchLen:], available)
		*scratchLen += len(available)
		*offset += len(available)
		return 0, n, false
	}
	need := n - *scratchLen
	copy(scratch[*scratchLen:n], available[:need])
	*offset += need
	value, _, _ = varint.Parse(scratch[:n])
	*scratchLen = 0
	return value, n, true
}
