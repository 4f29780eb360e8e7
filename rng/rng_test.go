package rng

import (
	"bytes"
	"testing"
)

func init() {
	err := prep()
	if err != nil {
		panic(err)
	}

	err = Start()
	if err != nil {
		panic(err)
	}
}

func TestRNG(t *testing.T) {
	b := make([]byte, 32)
	_, err := Read(b)
	if err != nil {
		t.Errorf("Read failed: %s", err)
	}
	_, err = Reader.Read(b)
	if err != nil {
		t.Errorf("Read failed: %s", err)
	}

	_, err = Bytes(32)
	if err != nil {
		t.Errorf("Bytes failed: %s", err)
	}

	_, err = Salt(16)
	if err != nil {
		t.Errorf("Salt failed: %s", err)
	}
}

func TestReadChunking(t *testing.T) {
	// three full fills plus a remainder
	b := make([]byte, 800)
	n, err := Read(b)
	if err != nil {
		t.Fatalf("Read failed: %s", err)
	}
	if n != len(b) {
		t.Errorf("Read returned %d bytes instead of %d", n, len(b))
	}
	if bytes.Equal(b[:256], b[256:512]) {
		t.Error("consecutive fill chunks are identical")
	}
}

func TestNotReady(t *testing.T) {
	sourceLock.Lock()
	sourceReady = false
	sourceLock.Unlock()
	defer func() {
		sourceLock.Lock()
		sourceReady = true
		sourceLock.Unlock()
	}()

	if _, err := Read(make([]byte, 8)); err == nil {
		t.Error("Read must fail before the module is started")
	}
	if _, err := Bytes(8); err == nil {
		t.Error("Bytes must fail before the module is started")
	}
}

func TestUUID(t *testing.T) {
	u, err := UUID()
	if err != nil {
		t.Fatalf("UUID failed: %s", err)
	}
	if u.Version() != 4 {
		t.Errorf("unexpected UUID version: %d", u.Version())
	}

	u2, err := UUID()
	if err != nil {
		t.Fatalf("UUID failed: %s", err)
	}
	if u == u2 {
		t.Error("two UUIDs are identical")
	}
}
