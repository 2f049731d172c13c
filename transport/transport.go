//go:build !mos

// Package transport implements the byte-stream Server/Channel contract
// (spec §4.1) on top of host-OS UNIX-domain sockets.
//
// A Server binds a well-known name under /tmp and accepts inbound Channels;
// a Channel sends and receives whole length-prefixed frames using the wire
// package's frame codec. Differences between backends (host UNIX sockets vs
// the target microkernel's named IPC endpoints) are confined to this
// package — callers only ever see Server and Channel.
package transport

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/moodyhunter/virtiod/wire"
)

// socketDir is where host-backend endpoints are rooted, per spec §6.
const socketDir = "/tmp"

// Server accepts inbound Channels on a named endpoint.
type Server struct {
	name     string
	listener net.Listener
}

// Bind creates or takes over the named endpoint. Any stale socket file left
// behind by a crashed prior instance is removed first — standard
// UNIX-socket-server hygiene.
func Bind(name string) (*Server, error) {
	path := endpointPath(name)

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("transport: removing stale endpoint %s: %w", path, err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("transport: bind %s: %w", name, err)
	}

	return &Server{name: name, listener: listener}, nil
}

// Accept blocks for an inbound connection. It returns (nil, nil) only on
// clean shutdown (the listener was closed by Close).
func (s *Server) Accept() (*Channel, error) {
	conn, err := s.listener.Accept()
	if err != nil {
		if errors.Is(err, net.ErrClosed) {
			return nil, nil
		}
		return nil, err
	}
	return &Channel{conn: conn}, nil
}

// Close shuts down the listener; any in-flight Accept returns (nil, nil).
func (s *Server) Close() error {
	return s.listener.Close()
}

// Name returns the endpoint name this server was bound to.
func (s *Server) Name() string { return s.name }

// Channel is a single-reader/single-writer bidirectional byte stream with
// framed messages (spec §3 "Connection").
type Channel struct {
	conn net.Conn
}

// Connect dials the named endpoint.
func Connect(name string) (*Channel, error) {
	conn, err := net.Dial("unix", endpointPath(name))
	if err != nil {
		return nil, fmt.Errorf("transport: connect %s: %w", name, err)
	}
	return &Channel{conn: conn}, nil
}

// Send writes one length-prefixed frame. The write is all-or-error; a
// partial write makes the channel unusable (spec §4.1 Failure).
func (c *Channel) Send(payload []byte) error {
	return wire.EncodeFrame(c.conn, payload)
}

// Recv reads one length-prefixed frame. A short read of the length prefix or
// the body surfaces as io.ErrUnexpectedEOF via wire.DecodeFrame (io.EOF when
// the peer closes before any byte of the next frame), fatal to the channel.
func (c *Channel) Recv() ([]byte, error) {
	return wire.DecodeFrame(c.conn)
}

// Close closes the underlying connection.
func (c *Channel) Close() error {
	return c.conn.Close()
}

func endpointPath(name string) string {
	return filepath.Join(socketDir, name)
}
