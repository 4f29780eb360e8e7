package entropy

import (
	"bytes"
	"testing"
)

func TestFillLengths(t *testing.T) {
	for _, n := range []int{0, 1, 15, 16, 32, 64, 255, 256} {
		buf := make([]byte, MaxFill+8)
		for i := range buf {
			buf[i] = 0xaa
		}

		if err := Fill(buf[:n]); err != nil {
			t.Fatalf("fill of %d bytes failed: %s", n, err)
		}

		// everything beyond the request must be untouched
		for i := n; i < len(buf); i++ {
			if buf[i] != 0xaa {
				t.Fatalf("fill of %d bytes touched byte %d", n, i)
			}
		}
	}
}

func TestFillZeroDoesNotMutate(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	if err := Fill(buf[:0]); err != nil {
		t.Fatalf("zero-length fill failed: %s", err)
	}
	if !bytes.Equal(buf, []byte{1, 2, 3, 4}) {
		t.Error("zero-length fill mutated the buffer")
	}
}

func TestFillOversizePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("fill of MaxFill+1 bytes did not panic")
		}
	}()
	_ = Fill(make([]byte, MaxFill+1))
}

func TestFillDistinctness(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	seen := make(map[[32]byte]struct{}, 10000)
	var draw [32]byte
	for i := 0; i < 10000; i++ {
		if err := Fill(draw[:]); err != nil {
			t.Fatalf("fill %d failed: %s", i, err)
		}
		if _, collision := seen[draw]; collision {
			t.Fatalf("fill %d repeated an earlier 32-byte draw", i)
		}
		seen[draw] = struct{}{}
	}
}

func TestBytes(t *testing.T) {
	b, err := Bytes(32)
	if err != nil {
		t.Fatalf("Bytes failed: %s", err)
	}
	if len(b) != 32 {
		t.Errorf("Bytes returned %d bytes instead of 32", len(b))
	}
}

func TestNewSourceIndependence(t *testing.T) {
	a := NewSource()
	b := NewSource()

	bufA := make([]byte, 32)
	bufB := make([]byte, 32)
	if err := a.Fill(bufA); err != nil {
		t.Fatalf("fill failed: %s", err)
	}
	if err := b.Fill(bufB); err != nil {
		t.Fatalf("fill failed: %s", err)
	}
	if bytes.Equal(bufA, bufB) {
		t.Error("two sources produced identical 32-byte draws")
	}
}
