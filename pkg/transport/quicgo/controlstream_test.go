package quicgo

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

type chunkReader struct {
	chunks [][]byte
	err    error
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	chunk := r.chunks[0]
	r.chunks = r.chunks[1:]
	n := copy(p, chunk)
	return n, nil
}

func TestControlStreamAccumulatesAcrossReads(t *testing.T) {
	r := &chunkReader{chunks: [][]byte{[]byte("abc"), []byte("def")}}
	cs := newControlStreamFromReader(r)

	var seen []byte
	cs.Pump(func() {
		data, ok := cs.PeekRegion(uint64(len(seen)))
		if ok {
			seen = append(seen, data...)
		}
	})

	if !bytes.Equal(seen, []byte("abcdef")) {
		t.Fatalf("seen = %q, want %q", seen, "abcdef")
	}
	if !cs.ReadingStopped() {
		t.Fatalf("expected ReadingStopped after clean EOF")
	}
	if cs.WasReset() {
		t.Fatalf("did not expect a reset on clean EOF")
	}
}

func TestControlStreamPeekRegionNoDataYet(t *testing.T) {
	cs := newControlStreamFromReader(&chunkReader{err: errors.New("boom")})
	if _, ok := cs.PeekRegion(0); ok {
		t.Fatalf("expected no data available before any Pump call")
	}
}
