//go:build mos

package transport

import "errors"

// ErrNotImplemented is returned by every operation on this build tag. The
// target microkernel backend (named IPC endpoints under /sys/ipc/<name>,
// with accept implemented by reading a file descriptor from a byte stream)
// is declared but not implemented here — it is specific to the microkernel
// runtime and out of scope per spec §1 and §9's Open Questions.
var ErrNotImplemented = errors.New("transport: microkernel backend not implemented")

type Server struct{}

func Bind(name string) (*Server, error) {
	return nil, ErrNotImplemented
}

func (s *Server) Accept() (*Channel, error) {
	return nil, ErrNotImplemented
}

func (s *Server) Close() error {
	return ErrNotImplemented
}

func (s *Server) Name() string { return "" }

type Channel struct{}

func Connect(name string) (*Channel, error) {
	return nil, ErrNotImplemented
}

func (c *Channel) Send(payload []byte) error {
	return ErrNotImplemented
}

func (c *Channel) Recv() ([]byte, error) {
	return nil, ErrNotImplemented
}

func (c *Channel) Close() error {
	return ErrNotImplemented
}
