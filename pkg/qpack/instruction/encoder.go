package instruction

import (
	"fmt"

	"golang.org/x/net/http/httpguts"
	"golang.org/x/net/http2/hpack"
)

// Encoder walks an Instruction's field list and appends its wire form to
// a caller-supplied buffer. Each exported Set* method stashes one field's
// value; Encode then drives the state machine and consumes them in field
// order. An Encoder is reusable across calls; state from one Encode call
// never leaks into the next.
type Encoder struct {
	sBit    bool
	varint  uint64
	varint2 uint64
	name    string
	value   string
}

// SetSBit sets the static/dynamic indexing flag consumed by a kindSBit
// field.
func (e *Encoder) SetSBit(v bool) *Encoder { e.sBit = v; return e }

// SetVarint sets the primary integer field (name index, capacity,
// duplicate index, increment, or stream ID depending on instruction).
func (e *Encoder) SetVarint(v uint64) *Encoder { e.varint = v; return e }

// SetVarint2 sets an instruction's secondary integer field; unused by
// every instruction defined in this package today, kept for symmetry
// with the encoder's origin and future instructions that need it.
func (e *Encoder) SetVarint2(v uint64) *Encoder { e.varint2 = v; return e }

// SetName sets the header name string field.
func (e *Encoder) SetName(v string) *Encoder { e.name = v; return e }

// SetValue sets the header value string field.
func (e *Encoder) SetValue(v string) *Encoder { e.value = v; return e }

// Encode appends instr's wire encoding, consuming the fields previously
// set on e, to dst and returns the extended slice. It rejects a value
// string that fails httpguts.ValidHeaderFieldValue before Huffman-coding
// it, the same guard applied to an inbound header field's value.
func (e *Encoder) Encode(instr *Instruction, dst []byte) ([]byte, error) {
	for _, f := range instr.fields {
		if f.kind == kindValue && !httpguts.ValidHeaderFieldValue(e.value) {
			err := fmt.Errorf("instruction: invalid header field value %q", e.value)
			*e = Encoder{}
			return nil, err
		}
	}

	leadByte := instr.opcode
	// The s-bit, if present, folds into the same leading byte as the
	// instruction's opcode before any prefix-coded integer is emitted,
	// since both occupy the instruction's first byte.
	for _, f := range instr.fields {
		if f.kind == kindSBit {
			if e.sBit {
				leadByte |= 1 << f.bit
			}
		}
	}

	for _, f := range instr.fields {
		switch f.kind {
		case kindSBit:
			// already folded into leadByte above.
		case kindVarint:
			dst = appendPrefixInt(dst, leadByte, f.bit, e.varint)
			leadByte = 0
		case kindVarint2:
			dst = appendPrefixInt(dst, leadByte, f.bit, e.varint2)
			leadByte = 0
		case kindName:
			dst = appendHuffmanOrRaw(dst, leadByte, f.bit, e.name)
			leadByte = 0
		case kindValue:
			dst = appendHuffmanOrRaw(dst, leadByte, f.bit, e.value)
			leadByte = 0
		}
	}

	*e = Encoder{}
	return dst, nil
}

// appendHuffmanOrRaw appends s's length-prefixed string encoding,
// choosing Huffman coding over the raw bytes whenever it is strictly
// shorter and setting the H flag at bit position huffmanBit to match.
func appendHuffmanOrRaw(dst []byte, leadByte byte, huffmanBit uint8, s string) []byte {
	if huffLen := hpack.HuffmanEncodeLength(s); huffLen < uint64(len(s)) {
		dst = appendPrefixInt(dst, leadByte|1<<huffmanBit, huffmanBit, uint64(huffLen))
		return hpack.AppendHuffmanString(dst, s)
	}
	dst = appendPrefixInt(dst, leadByte, huffmanBit, uint64(len(s)))
	return append(dst, s...)
}
