package sendstream

import (
	"bytes"
	"testing"
)

func TestWriteInstructionDataPrefixesTypeOnce(t *testing.T) {
	var buf bytes.Buffer
	s := New(TypeEncoderStream, &buf)

	if err := s.WriteInstructionData([]byte{0xAA}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := s.WriteInstructionData([]byte{0xBB}); err != nil {
		t.Fatalf("second write: %v", err)
	}

	want := []byte{byte(TypeEncoderStream), 0xAA, 0xBB}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("buf = %v, want %v", buf.Bytes(), want)
	}
}

type fakeResetter struct {
	resetCount int
}

func (r *fakeResetter) OnQpackStreamReset() { r.resetCount++ }

func TestOnStreamResetNotifiesResetter(t *testing.T) {
	s := New(TypeDecoderStream, &bytes.Buffer{})
	r := &fakeResetter{}
	s.OnStreamReset(r)

	if r.resetCount != 1 {
		t.Fatalf("resetCount = %d, want 1", r.resetCount)
	}
}
