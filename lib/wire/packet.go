// Package wire implements the length-prefixed binary framing protocol and
// the socket I/O primitives (listen, accept, connect, send, recv) that the
// manager and worker lifecycle state machines are built on. Payloads are
// opaque byte slices; wire never interprets them.
package wire

import (
	"encoding/binary"
	"distr/lib/core"
)

// HeaderSize is the fixed size, in bytes, of a packet's header: one byte
// of type, four bytes of big-endian length.
const HeaderSize = 5

// MaxPayloadSize is the module-wide payload capacity shared by every sender
// and receiver. The wire format recommends >= 900 bytes (spec.md §6); this
// module fixes one constant above that floor so the example integrator's
// fixed-size structs have headroom without desynchronizing sender and
// receiver capacities (spec.md §9, open question (c)).
const MaxPayloadSize = 1024

// EncodeHeader writes a packet's 5-byte header (type, then big-endian
// length) into the first HeaderSize bytes of buf, which must have length
// >= HeaderSize.
func EncodeHeader(buf []byte, t core.PacketType, payloadLen int) {
	buf[0] = byte(t)
	binary.BigEndian.PutUint32(buf[1:5], uint32(payloadLen))
}

// DecodeHeader reads a packet's type and declared payload length from the
// first HeaderSize bytes of buf, which must have length >= HeaderSize.
func DecodeHeader(buf []byte) (t core.PacketType, payloadLen uint32) {
	return core.PacketType(buf[0]), binary.BigEndian.Uint32(buf[1:5])
}
