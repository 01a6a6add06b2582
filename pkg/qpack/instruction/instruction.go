// Package instruction implements the QPACK encoder-stream and
// decoder-stream instruction wire format (RFC 9204 section 4): a
// table-driven byte/string field encoder with HPACK-style prefix-coded
// integers and opportunistic Huffman string compression.
//
// Grounded on QpackInstructionEncoder (original_source/quic/core/qpack/
// qpack_instruction_encoder.cc): an explicit state machine -
// kOpcode/kStartField/kSbit/kVarintEncode/kStartString/kWriteString -
// that walks a fixed field list per instruction.
package instruction

// fieldKind identifies how a field's bits are produced.
type fieldKind int

const (
	kindSBit fieldKind = iota
	kindVarint
	kindVarint2
	kindName
	kindValue
)

// field describes one element of an instruction's fixed layout. bit is
// the meaning of the field's single numeric parameter, which differs by
// kind: for kindSBit it is the bit position the static/dynamic flag
// occupies in the opcode byte; for the others it is the number of low
// bits of the opcode byte reserved as the prefix of a prefix-coded
// integer (and, for strings, the same bit position doubles as the
// Huffman flag immediately above that prefix).
type field struct {
	kind fieldKind
	bit  uint8
}

// Instruction is the fixed field layout of one QPACK instruction. opcode
// holds the instruction's fixed high bits, already shifted into place;
// encoding ORs the variable fields into the low bits of its first byte.
type Instruction struct {
	opcode byte
	fields []field
}

// Encoder-stream instructions (RFC 9204 section 4.3).
var (
	InsertWithNameReference = &Instruction{
		opcode: 0x80,
		fields: []field{{kindSBit, 6}, {kindVarint, 6}, {kindValue, 7}},
	}
	InsertWithoutNameReference = &Instruction{
		opcode: 0x40,
		fields: []field{{kindName, 5}, {kindValue, 7}},
	}
	Duplicate = &Instruction{
		opcode: 0x00,
		fields: []field{{kindVarint, 5}},
	}
	SetDynamicTableCapacity = &Instruction{
		opcode: 0x20,
		fields: []field{{kindVarint, 5}},
	}
)

// Decoder-stream instructions (RFC 9204 section 4.4).
var (
	InsertCountIncrement = &Instruction{
		opcode: 0x00,
		fields: []field{{kindVarint, 6}},
	}
	HeaderAcknowledgement = &Instruction{
		opcode: 0x80,
		fields: []field{{kindVarint, 7}},
	}
	StreamCancellation = &Instruction{
		opcode: 0x40,
		fields: []field{{kindVarint, 6}},
	}
)
