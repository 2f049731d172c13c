package wire

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeFrame(t *testing.T) {
	body := []byte("hello world")

	var buf bytes.Buffer
	if err := EncodeFrame(&buf, body); err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}

	decoded, err := DecodeFrame(&buf)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if !bytes.Equal(decoded, body) {
		t.Errorf("body mismatch: got %s, want %s", decoded, body)
	}
}

func TestDecodeFrameEmptyBody(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeFrame(&buf, nil); err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}

	decoded, err := DecodeFrame(&buf)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("expected empty body, got length %d", len(decoded))
	}
}

func TestDecodeFrameShortRead(t *testing.T) {
	// Announce 100 bytes but only supply 3.
	var buf bytes.Buffer
	if err := EncodeFrame(&buf, make([]byte, 100)); err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	truncated := bytes.NewReader(buf.Bytes()[:LengthPrefixSize+3])

	if _, err := DecodeFrame(truncated); err == nil {
		t.Fatal("expected an error for a short read, got nil")
	}
}

func TestEncodeDecodeFrameLargeBody(t *testing.T) {
	large := make([]byte, 1024*1024)
	for i := range large {
		large[i] = byte(i % 256)
	}

	var buf bytes.Buffer
	if err := EncodeFrame(&buf, large); err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	decoded, err := DecodeFrame(&buf)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if !bytes.Equal(decoded, large) {
		t.Errorf("large body mismatch")
	}
}
