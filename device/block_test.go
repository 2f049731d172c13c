package device

import (
	"bytes"
	"testing"

	"github.com/moodyhunter/virtiod/schema"
	"github.com/moodyhunter/virtiod/virtio"
)

func TestBlockServerReadWriteRoundTrip(t *testing.T) {
	dev := virtio.NewFakeBlockDevice(blockSize, 4)
	srv := NewBlockServer(dev)

	data := bytes.Repeat([]byte{0xab}, blockSize*2)
	writeReq := &schema.WriteBlockRequest{NBOffset: 0, Data: data}
	reqBytes, err := writeReq.Marshal()
	if err != nil {
		t.Fatalf("marshal write request: %v", err)
	}
	respBytes, err := srv.handleWrite(reqBytes)
	if err != nil {
		t.Fatalf("handleWrite returned error: %v", err)
	}
	var writeResp schema.WriteBlockResponse
	if err := writeResp.Unmarshal(respBytes); err != nil {
		t.Fatalf("unmarshal write response: %v", err)
	}
	if !writeResp.Result.Success {
		t.Fatalf("write failed: %s", writeResp.Result.Error)
	}

	readReq := &schema.ReadBlockRequest{NBOffset: 0, NBlocks: 2}
	reqBytes, err = readReq.Marshal()
	if err != nil {
		t.Fatalf("marshal read request: %v", err)
	}
	respBytes, err = srv.handleRead(reqBytes)
	if err != nil {
		t.Fatalf("handleRead returned error: %v", err)
	}
	var readResp schema.ReadBlockResponse
	if err := readResp.Unmarshal(respBytes); err != nil {
		t.Fatalf("unmarshal read response: %v", err)
	}
	if !readResp.Result.Success {
		t.Fatalf("read failed: %s", readResp.Result.Error)
	}
	if !bytes.Equal(readResp.Data, data) {
		t.Errorf("read data = %x, want %x", readResp.Data, data)
	}
}

func TestBlockServerWriteSizeMismatchIsDomainError(t *testing.T) {
	dev := virtio.NewFakeBlockDevice(blockSize, 4)
	srv := NewBlockServer(dev)

	req := &schema.WriteBlockRequest{NBOffset: 0, Data: make([]byte, blockSize-1)}
	reqBytes, err := req.Marshal()
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	respBytes, err := srv.handleWrite(reqBytes)
	if err != nil {
		t.Fatalf("handleWrite should not return a Go error: %v", err)
	}
	var resp schema.WriteBlockResponse
	if err := resp.Unmarshal(respBytes); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Result.Success {
		t.Fatal("expected a domain error for a size mismatch, got success")
	}
	if resp.Result.Error == "" {
		t.Error("expected a non-empty error message")
	}
}

func TestBlockServerReadOutOfRange(t *testing.T) {
	dev := virtio.NewFakeBlockDevice(blockSize, 2)
	srv := NewBlockServer(dev)

	req := &schema.ReadBlockRequest{NBOffset: 10, NBlocks: 1}
	reqBytes, err := req.Marshal()
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	respBytes, err := srv.handleRead(reqBytes)
	if err != nil {
		t.Fatalf("handleRead should not return a Go error: %v", err)
	}
	var resp schema.ReadBlockResponse
	if err := resp.Unmarshal(respBytes); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Result.Success {
		t.Fatal("expected a domain error for an out-of-range read, got success")
	}
}
