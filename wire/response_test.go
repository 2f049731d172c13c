package wire

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeResponse(t *testing.T) {
	payload := EncodeResponse(9, Ok, []byte("payload"))

	resp, err := DecodeResponse(payload)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if resp.CallID != 9 {
		t.Errorf("call_id = %d, want 9", resp.CallID)
	}
	if resp.ResultCode != Ok {
		t.Errorf("result_code = %v, want Ok", resp.ResultCode)
	}
	if !bytes.Equal(resp.Data, []byte("payload")) {
		t.Errorf("data = %q, want %q", resp.Data, "payload")
	}
}

func TestEncodeDecodeResponseNoData(t *testing.T) {
	payload := EncodeResponse(1, ServerInvalidFunction, nil)

	resp, err := DecodeResponse(payload)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if resp.ResultCode != ServerInvalidFunction {
		t.Errorf("result_code = %v, want ServerInvalidFunction", resp.ResultCode)
	}
	if len(resp.Data) != 0 {
		t.Errorf("expected no data, got %d bytes", len(resp.Data))
	}
}

func TestDecodeResponseBadMagic(t *testing.T) {
	payload := EncodeResponse(1, Ok, nil)
	corrupted := append([]byte{}, payload...)
	corrupted[0] ^= 0xff

	if _, err := DecodeResponse(corrupted); err != ErrBadMagic {
		t.Errorf("expected ErrBadMagic, got %v", err)
	}
}

func TestDecodeResponseTruncated(t *testing.T) {
	if _, err := DecodeResponse([]byte{1, 2, 3}); err != ErrTruncated {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestDecodeResponseUnknownResultCode(t *testing.T) {
	payload := EncodeResponse(1, CallidMismatch, nil)
	// result_code sits at byte offset 8..12, little-endian.
	payload[8] = 0xFF
	payload[9] = 0x00
	payload[10] = 0x00
	payload[11] = 0x00

	if _, err := DecodeResponse(payload); err != ErrUnknownResult {
		t.Errorf("expected ErrUnknownResult, got %v", err)
	}
}

func TestDecodeResponseDataSizeExceedsPayload(t *testing.T) {
	payload := EncodeResponse(1, Ok, []byte("abcd"))
	// Cut the payload short so data_size (offset 12..20, little-endian, still 4)
	// exceeds the 2 data bytes left.
	truncated := payload[:len(payload)-2]

	if _, err := DecodeResponse(truncated); err != ErrTruncated {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestResultCodeRoundTripAllValues(t *testing.T) {
	codes := []ResultCode{
		Ok, ServerInvalidFunction, ServerInvalidArgCount, ServerInternalError,
		InvalidArg, ClientInvalidArgspec, ClientWriteFailed, ClientReadFailed,
		CallidMismatch,
	}
	for _, c := range codes {
		payload := EncodeResponse(1, c, nil)
		resp, err := DecodeResponse(payload)
		if err != nil {
			t.Fatalf("result code %v: DecodeResponse failed: %v", c, err)
		}
		if resp.ResultCode != c {
			t.Errorf("result code round-trip: got %v, want %v", resp.ResultCode, c)
		}
	}
}
