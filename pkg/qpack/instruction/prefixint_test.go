package instruction

import "testing"

func decodePrefixInt(data []byte, prefixBits uint8) (uint64, int) {
	max := uint64(1)<<prefixBits - 1
	n := uint64(data[0]) & max
	if n < max {
		return n, 1
	}
	i := 1
	var m uint64
	for {
		b := data[i]
		n += uint64(b&0x7F) << m
		i++
		if b&0x80 == 0 {
			break
		}
		m += 7
	}
	return n, i
}

func TestAppendPrefixIntRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 30, 31, 32, 127, 128, 1000, 1 << 20}
	for _, prefixBits := range []uint8{5, 6, 7} {
		for _, n := range cases {
			encoded := appendPrefixInt(nil, 0, prefixBits, n)
			got, consumed := decodePrefixInt(encoded, prefixBits)
			if got != n {
				t.Fatalf("prefixBits=%d n=%d: round-tripped to %d", prefixBits, n, got)
			}
			if consumed != len(encoded) {
				t.Fatalf("prefixBits=%d n=%d: consumed %d, want %d", prefixBits, n, consumed, len(encoded))
			}
		}
	}
}

func TestAppendPrefixIntPreservesLeadBits(t *testing.T) {
	encoded := appendPrefixInt(nil, 0xC0, 6, 5)
	if encoded[0] != 0xC5 {
		t.Fatalf("lead byte = %#x, want %#x", encoded[0], 0xC5)
	}
}
