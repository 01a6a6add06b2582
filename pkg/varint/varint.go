// Package varint adapts github.com/quic-go/quic-go/quicvarint's
// QUIC variable-length integer codec (RFC 9000 section 16) to the
// buffer-oriented calling convention pkg/frame's incremental decoder
// needs: encode/decode against a []byte in hand, rather than quicvarint's
// io.ByteReader-driven Read.
package varint

import (
	"fmt"

	"github.com/quic-go/quic-go/quicvarint"
)

// MaxValue is the largest value representable in 62 bits, the widest
// QUIC varint form; mirrors quicvarint.Max.
const MaxValue = 1<<62 - 1

// EncodedLen returns the number of bytes the minimal encoding of n occupies.
// It panics if n does not fit in 62 bits.
func EncodedLen(n uint64) int {
	return int(quicvarint.Len(n))
}

// Append writes the minimal encoding of n to buf and returns the result.
// It panics if n does not fit in 62 bits.
func Append(buf []byte, n uint64) []byte {
	return quicvarint.Append(buf, n)
}

// Encode returns the minimal encoding of n as a freshly allocated slice.
func Encode(n uint64) []byte {
	return quicvarint.Append(make([]byte, 0, 8), n)
}

// Len returns the total wire length (including the first byte) implied by
// the two high bits of the first byte of an encoded varint, one of 1, 2, 4,
// or 8. The incremental decoder calls this to learn how many bytes it needs
// buffered before it can hand a complete varint to Parse; quicvarint has no
// equivalent, since its own Parse/Read always operate on a full buffer or
// io.ByteReader rather than a peeked leading byte.
func Len(firstByte byte) int {
	switch firstByte & 0xC0 {
	case 0x00:
		return 1
	case 0x40:
		return 2
	case 0x80:
		return 4
	default:
		return 8
	}
}

// Parse decodes a varint whose complete wire encoding is present in data. It
// returns the value and the number of bytes consumed. Parse does not pick
// the length by magnitude: it trusts the two high bits of the first byte, so
// a non-minimal (but otherwise valid) encoding is accepted as-is.
//
// ErrBufferTooShort is returned when data does not contain as many bytes as
// the first byte's length prefix demands. The frame decoder's field reader
// checks Len(data[0]) against its buffered byte count before calling Parse;
// the structured-frame payload parsers call Parse on a complete payload and
// treat this error as a truncated field.
func Parse(data []byte) (value uint64, consumed int, err error) {
	if len(data) == 0 {
		return 0, 0, ErrBufferTooShort
	}
	value, consumed, err = quicvarint.Parse(data)
	if err != nil {
		return 0, 0, ErrBufferTooShort
	}
	return value, consumed, nil
}

// ErrBufferTooShort is returned by Parse when the supplied bytes don't yet
// contain the full varint; the caller should buffer and retry with more
// data rather than treat it as a malformed encoding.
var ErrBufferTooShort = fmt.Errorf("varint: insufficient bytes buffered")
