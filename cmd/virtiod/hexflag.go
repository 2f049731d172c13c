package main

import (
	"strconv"
	"strings"
)

// parseHex parses a hexadecimal number accepting either a "0x"/"0X"-prefixed
// or bare hex string (spec §6: "All numeric flags accept 0x-prefixed or
// bare hexadecimal"), grounded on
// _examples/original_source/userspace/drivers/virtiod/src/utils.rs's
// parse_hex16/32/64 trio.
func parseHex(s string, bitSize int) (uint64, error) {
	trimmed := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		trimmed = s[2:]
	}
	return strconv.ParseUint(trimmed, 16, bitSize)
}

// hexU32Value is a pflag.Value that always parses as hexadecimal.
type hexU32Value uint32

func newHexU32Value(val uint32, p *uint32) *hexU32Value {
	*p = val
	return (*hexU32Value)(p)
}

func (v *hexU32Value) Set(s string) error {
	n, err := parseHex(s, 32)
	if err != nil {
		return err
	}
	*v = hexU32Value(n)
	return nil
}

func (v *hexU32Value) Type() string   { return "hex32" }
func (v *hexU32Value) String() string { return strconv.FormatUint(uint64(*v), 16) }

// hexU64Value is a pflag.Value that always parses as hexadecimal.
type hexU64Value uint64

func newHexU64Value(val uint64, p *uint64) *hexU64Value {
	*p = val
	return (*hexU64Value)(p)
}

func (v *hexU64Value) Set(s string) error {
	n, err := parseHex(s, 64)
	if err != nil {
		return err
	}
	*v = hexU64Value(n)
	return nil
}

func (v *hexU64Value) Type() string   { return "hex64" }
func (v *hexU64Value) String() string { return strconv.FormatUint(uint64(*v), 16) }
