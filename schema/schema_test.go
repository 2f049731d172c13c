package schema

import (
	"bytes"
	"testing"
)

func TestReadBlockRequestRoundTrip(t *testing.T) {
	req := &ReadBlockRequest{NBOffset: 0, NBlocks: 2}
	data, err := req.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded ReadBlockRequest
	if err := decoded.Unmarshal(data); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded != *req {
		t.Errorf("round-trip mismatch: got %+v, want %+v", decoded, *req)
	}
}

func TestReadBlockResponseRoundTrip(t *testing.T) {
	resp := &ReadBlockResponse{Result: Ok, Data: []byte{1, 2, 3, 4}}
	data, err := resp.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded ReadBlockResponse
	if err := decoded.Unmarshal(data); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Result != resp.Result || !bytes.Equal(decoded.Data, resp.Data) {
		t.Errorf("round-trip mismatch: got %+v, want %+v", decoded, *resp)
	}
}

func TestPostBufferOutOfBoundsResultCarriesError(t *testing.T) {
	resp := &PostBufferResponse{Result: Err("region out of bounds")}
	data, err := resp.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded PostBufferResponse
	if err := decoded.Unmarshal(data); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Result.Success {
		t.Error("expected Success=false")
	}
	if decoded.Result.Error == "" {
		t.Error("expected a non-empty error string")
	}
}
